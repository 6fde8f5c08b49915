package view

import "github.com/norsbakery/storefront/internal/app/model"

// CartView is everything the cart sidebar and checkout summary display.
type CartView struct {
	ItemCount int
	ShowBadge bool
	Empty     bool
	Lines     []CartLineView
	Total     string
}

type CartLineView struct {
	LineID    string
	ProductID string
	Name      string
	ImageURL  string
	UnitPrice string
	Quantity  int
	Subtotal  string
	// Decrease and Increase are the absolute quantities the -/+ buttons set.
	Decrease int
	Increase int
}

// NewCartView projects a cart. Prices come from each line's embedded
// product, never from the live catalog.
func NewCartView(cart *model.Cart) CartView {
	if cart == nil {
		cart = model.NewCart()
	}

	count := cart.ItemCount()
	v := CartView{
		ItemCount: count,
		ShowBadge: count > 0,
		Empty:     cart.IsEmpty(),
		Lines:     make([]CartLineView, 0, len(cart.Items)),
		Total:     FormatPrice(cart.Total()),
	}
	for _, item := range cart.Items {
		v.Lines = append(v.Lines, CartLineView{
			LineID:    item.ID,
			ProductID: item.ProductID.String(),
			Name:      item.Product.Name,
			ImageURL:  item.Product.ImageURL,
			UnitPrice: FormatPrice(item.Product.Price),
			Quantity:  item.Quantity,
			Subtotal:  FormatPrice(item.Subtotal()),
			Decrease:  item.Quantity - 1,
			Increase:  item.Quantity + 1,
		})
	}
	return v
}
