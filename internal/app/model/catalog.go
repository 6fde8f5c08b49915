package model

// CategoryAll selects every product regardless of category.
const CategoryAll = "all"

// Catalog is the product list fetched for one page load. A nil or empty
// catalog is valid and behaves as "no products".
type Catalog struct {
	products []Product
}

func NewCatalog(products []Product) *Catalog {
	cp := make([]Product, len(products))
	copy(cp, products)
	return &Catalog{products: cp}
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}

// Products returns every product in catalog order.
func (c *Catalog) Products() []Product {
	if c == nil {
		return []Product{}
	}
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Find looks a product up by id.
func (c *Catalog) Find(id ProductID) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// ByCategory filters by exact category key; CategoryAll or "" returns everything.
func (c *Catalog) ByCategory(category string) []Product {
	if category == "" || category == CategoryAll {
		return c.Products()
	}
	return c.filter(func(p Product) bool { return p.Category == category })
}

func (c *Catalog) Featured() []Product {
	return c.filter(func(p Product) bool { return p.Featured })
}

// Categories lists distinct non-empty categories in first-seen order.
func (c *Catalog) Categories() []string {
	out := []string{}
	if c == nil {
		return out
	}
	seen := make(map[string]bool)
	for _, p := range c.products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

func (c *Catalog) filter(keep func(Product) bool) []Product {
	out := []Product{}
	if c == nil {
		return out
	}
	for _, p := range c.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
