package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxLineQuantity caps a single line item.
const MaxLineQuantity = 999

var (
	ErrInvalidQuantity  = errors.New("quantity must be between 1 and 999")
	ErrLineItemNotFound = errors.New("cart line item not found")
)

// CartLineItem is one product-plus-quantity entry. Product is the snapshot
// taken when the line was first added; totals are computed from it, not from
// the live catalog.
type CartLineItem struct {
	ID        string    `json:"id"`
	ProductID ProductID `json:"productId"`
	Quantity  int       `json:"quantity"`
	Product   Product   `json:"product"`
}

func (item CartLineItem) Subtotal() decimal.Decimal {
	return item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Cart holds line items in insertion order, which is also display order.
// There is at most one line item per product id.
type Cart struct {
	Items []CartLineItem
}

func NewCart(items ...CartLineItem) *Cart {
	return &Cart{Items: append([]CartLineItem{}, items...)}
}

// MarshalJSON writes the cart as a bare array of line items, the persisted
// snapshot shape.
func (c Cart) MarshalJSON() ([]byte, error) {
	items := c.Items
	if items == nil {
		items = []CartLineItem{}
	}
	return json.Marshal(items)
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	var items []CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	if items == nil {
		items = []CartLineItem{}
	}
	c.Items = items
	return nil
}

// Validate checks the invariants a restored snapshot must satisfy.
func (c *Cart) Validate() error {
	seen := make(map[ProductID]bool, len(c.Items))
	for i, item := range c.Items {
		if item.ProductID == "" {
			return fmt.Errorf("line %d: missing product id", i)
		}
		if item.Quantity < 1 || item.Quantity > MaxLineQuantity {
			return fmt.Errorf("line %d: %w", i, ErrInvalidQuantity)
		}
		if seen[item.ProductID] {
			return fmt.Errorf("line %d: duplicate product id %s", i, item.ProductID)
		}
		seen[item.ProductID] = true
	}
	return nil
}

func (c *Cart) index(productID ProductID) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Find returns a copy of the line item for productID.
func (c *Cart) Find(productID ProductID) (CartLineItem, bool) {
	if i := c.index(productID); i >= 0 {
		return c.Items[i], true
	}
	return CartLineItem{}, false
}

// Add increments an existing line by quantity or appends a new line with an
// id from newID and a copy of product. The cart is left unchanged when the
// line would exceed MaxLineQuantity.
func (c *Cart) Add(product Product, quantity int, newID func() string) (CartLineItem, error) {
	if quantity < 1 || quantity > MaxLineQuantity {
		return CartLineItem{}, ErrInvalidQuantity
	}
	if i := c.index(product.ID); i >= 0 {
		if quantity > MaxLineQuantity-c.Items[i].Quantity {
			return CartLineItem{}, ErrInvalidQuantity
		}
		c.Items[i].Quantity += quantity
		return c.Items[i], nil
	}
	item := CartLineItem{
		ID:        newID(),
		ProductID: product.ID,
		Quantity:  quantity,
		Product:   product,
	}
	c.Items = append(c.Items, item)
	return item, nil
}

// SetQuantity sets an absolute quantity. A quantity of zero or less removes
// the line; removed reports whether that happened.
func (c *Cart) SetQuantity(productID ProductID, quantity int) (removed bool, err error) {
	i := c.index(productID)
	if i < 0 {
		return false, ErrLineItemNotFound
	}
	if quantity <= 0 {
		c.Remove(productID)
		return true, nil
	}
	if quantity > MaxLineQuantity {
		return false, ErrInvalidQuantity
	}
	c.Items[i].Quantity = quantity
	return false, nil
}

// Remove drops the line for productID and reports whether one existed.
func (c *Cart) Remove(productID ProductID) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i:i], c.Items[i+1:]...)
	return true
}

func (c *Cart) Clear() {
	c.Items = []CartLineItem{}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount is the sum of quantities across lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Total is the sum of quantity × embedded product price.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}
