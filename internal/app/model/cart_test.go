package model

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("line-%d", n)
	}
}

func testProduct(id, price string) Product {
	return Product{
		ID:       ProductID(id),
		Name:     "Product " + id,
		Price:    decimal.RequireFromString(price),
		Category: "bread",
	}
}

func TestCart_AddAccumulatesQuantity(t *testing.T) {
	cart := NewCart()
	newID := sequentialIDs()
	p := testProduct("1", "10.00")

	_, err := cart.Add(p, 1, newID)
	require.NoError(t, err)
	item, err := cart.Add(p, 2, newID)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, "line-1", cart.Items[0].ID)
}

func TestCart_AddRejectsQuantityOverLimit(t *testing.T) {
	cart := NewCart()
	newID := sequentialIDs()

	_, err := cart.Add(testProduct("2", "4.35"), 1, newID)
	require.NoError(t, err)
	_, err = cart.Add(testProduct("1", "10.00"), MaxLineQuantity, newID)
	require.NoError(t, err)

	for _, q := range []int{1, math.MaxInt} {
		_, err = cart.Add(testProduct("1", "10.00"), q, newID)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}

	_, err = cart.Add(testProduct("3", "1.00"), MaxLineQuantity+1, newID)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, MaxLineQuantity, cart.Items[1].Quantity)
	assert.NoError(t, cart.Validate())
}

func TestCart_AddAppendsInInsertionOrder(t *testing.T) {
	cart := NewCart()
	newID := sequentialIDs()

	for _, id := range []string{"3", "1", "2"} {
		_, err := cart.Add(testProduct(id, "1.00"), 1, newID)
		require.NoError(t, err)
	}

	ids := []ProductID{}
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	assert.Equal(t, []ProductID{"3", "1", "2"}, ids)
}

func TestCart_AddRejectsNonPositiveQuantity(t *testing.T) {
	cart := NewCart()

	_, err := cart.Add(testProduct("1", "1.00"), 0, sequentialIDs())
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.True(t, cart.IsEmpty())
}

func TestCart_SetQuantityIsAbsolute(t *testing.T) {
	cart := NewCart()
	_, _ = cart.Add(testProduct("1", "2.50"), 4, sequentialIDs())

	removed, err := cart.SetQuantity("1", 2)
	require.NoError(t, err)
	assert.False(t, removed)

	item, ok := cart.Find("1")
	require.True(t, ok)
	assert.Equal(t, 2, item.Quantity)
}

func TestCart_SetQuantityZeroOrNegativeRemoves(t *testing.T) {
	for _, q := range []int{0, -1, -10} {
		t.Run(fmt.Sprintf("quantity %d", q), func(t *testing.T) {
			viaSet := NewCart()
			viaRemove := NewCart()
			newID := sequentialIDs()
			_, _ = viaSet.Add(testProduct("1", "1.00"), 2, newID)
			_, _ = viaSet.Add(testProduct("2", "1.00"), 1, newID)
			viaRemove.Items = append([]CartLineItem{}, viaSet.Items...)

			removed, err := viaSet.SetQuantity("1", q)
			require.NoError(t, err)
			assert.True(t, removed)
			viaRemove.Remove("1")

			assert.Equal(t, viaRemove.Items, viaSet.Items)
		})
	}
}

func TestCart_SetQuantityRejectsOverLimit(t *testing.T) {
	cart := NewCart()
	_, err := cart.Add(testProduct("1", "1.00"), 2, sequentialIDs())
	require.NoError(t, err)

	removed, err := cart.SetQuantity("1", MaxLineQuantity+1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.False(t, removed)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCart_SetQuantityMissingLine(t *testing.T) {
	cart := NewCart()

	_, err := cart.SetQuantity("nope", 3)
	assert.ErrorIs(t, err, ErrLineItemNotFound)
}

func TestCart_RemoveAbsentLeavesCartUnchanged(t *testing.T) {
	cart := NewCart()
	_, _ = cart.Add(testProduct("1", "1.00"), 1, sequentialIDs())
	before := append([]CartLineItem{}, cart.Items...)

	assert.False(t, cart.Remove("42"))
	assert.Equal(t, before, cart.Items)
}

func TestCart_RemoveDoesNotAliasPreviousSlice(t *testing.T) {
	cart := NewCart()
	newID := sequentialIDs()
	for _, id := range []string{"1", "2", "3"} {
		_, _ = cart.Add(testProduct(id, "1.00"), 1, newID)
	}
	snapshot := cart.Items

	require.True(t, cart.Remove("2"))

	assert.Len(t, cart.Items, 2)
	assert.Equal(t, ProductID("2"), snapshot[1].ProductID)
}

func TestCart_Totals(t *testing.T) {
	cart := NewCart()
	newID := sequentialIDs()
	_, _ = cart.Add(testProduct("1", "10.00"), 2, newID)
	_, _ = cart.Add(testProduct("2", "3.35"), 3, newID)

	assert.Equal(t, 5, cart.ItemCount())
	assert.Equal(t, "30.05", cart.Total().StringFixed(2))
}

func TestCart_TotalUsesEmbeddedSnapshot(t *testing.T) {
	cart := NewCart()
	p := testProduct("1", "10.00")
	_, _ = cart.Add(p, 1, sequentialIDs())

	p.Price = decimal.RequireFromString("99.00")

	assert.Equal(t, "10.00", cart.Total().StringFixed(2))
}

func TestCart_Clear(t *testing.T) {
	cart := NewCart()
	_, _ = cart.Add(testProduct("1", "1.00"), 1, sequentialIDs())

	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0, cart.ItemCount())
	assert.True(t, cart.Total().IsZero())
}

func TestCart_JSONRoundTripPreservesOrder(t *testing.T) {
	cart := NewCart()
	newID := sequentialIDs()
	_, _ = cart.Add(testProduct("2", "4.50"), 2, newID)
	_, _ = cart.Add(testProduct("1", "10.00"), 1, newID)

	data, err := json.Marshal(cart)
	require.NoError(t, err)
	assert.Equal(t, byte('['), data[0])

	var restored Cart
	require.NoError(t, json.Unmarshal(data, &restored))

	require.Len(t, restored.Items, 2)
	for i := range cart.Items {
		assert.Equal(t, cart.Items[i].ID, restored.Items[i].ID)
		assert.Equal(t, cart.Items[i].ProductID, restored.Items[i].ProductID)
		assert.Equal(t, cart.Items[i].Quantity, restored.Items[i].Quantity)
		assert.True(t, cart.Items[i].Product.Price.Equal(restored.Items[i].Product.Price))
	}
	assert.True(t, cart.Total().Equal(restored.Total()))
}

func TestCart_UnmarshalNullIsEmpty(t *testing.T) {
	var cart Cart
	require.NoError(t, json.Unmarshal([]byte("null"), &cart))
	assert.NotNil(t, cart.Items)
	assert.True(t, cart.IsEmpty())
}

func TestCart_UnmarshalBrowserSnapshot(t *testing.T) {
	raw := `[{"id":"1718000000000","productId":"7","quantity":2,
		"product":{"id":7,"name":"Kaya Puff","description":"flaky","price":"3.50",
		"image_url":"/img/kaya.jpg","category":"pastry","featured":true}}]`

	var cart Cart
	require.NoError(t, json.Unmarshal([]byte(raw), &cart))
	require.NoError(t, cart.Validate())

	require.Len(t, cart.Items, 1)
	assert.Equal(t, ProductID("7"), cart.Items[0].Product.ID)
	assert.Equal(t, "7.00", cart.Total().StringFixed(2))
}

func TestCart_Validate(t *testing.T) {
	tests := []struct {
		name  string
		items []CartLineItem
	}{
		{"zero quantity", []CartLineItem{{ID: "a", ProductID: "1", Quantity: 0}}},
		{"quantity over limit", []CartLineItem{{ID: "a", ProductID: "1", Quantity: MaxLineQuantity + 1}}},
		{"missing product id", []CartLineItem{{ID: "a", Quantity: 1}}},
		{"duplicate product", []CartLineItem{
			{ID: "a", ProductID: "1", Quantity: 1},
			{ID: "b", ProductID: "1", Quantity: 2},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, NewCart(tt.items...).Validate())
		})
	}
}
