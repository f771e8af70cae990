package domain

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/foodhub/internal/pricing"
)

func item(id string, price string) Item {
	return Item{
		MenuItemID:     id,
		Name:           "item " + id,
		UnitPrice:      decimal.RequireFromString(price),
		RestaurantID:   "1",
		RestaurantName: "Tokyo Sushi Bar",
		Image:          "img",
	}
}

func TestAddItemDistinct(t *testing.T) {
	for _, n := range []int{1, 2, 5, 20} {
		t.Run(fmt.Sprintf("given %d distinct items", n), func(t *testing.T) {
			cart := New("c")
			for i := range n {
				cart.AddItem(item(fmt.Sprintf("m%d", i), "1.00"))
			}
			assert.Equal(t, n, cart.ItemCount())
			assert.Len(t, cart.Lines, n)
		})
	}
}

func TestAddItemSameMenuItemIsAdditive(t *testing.T) {
	cart := New("c")
	first := cart.AddItem(item("m1", "12.99"))
	second := cart.AddItem(item("m1", "12.99"))

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, cart.ItemCount())
}

func TestAddItemKeepsInsertionOrder(t *testing.T) {
	cart := New("c")
	cart.AddItem(item("m3", "1"))
	cart.AddItem(item("m1", "1"))
	cart.AddItem(item("m3", "1"))
	cart.AddItem(item("m2", "1"))

	ids := []string{}
	for _, l := range cart.Lines {
		ids = append(ids, l.MenuItemID)
	}
	assert.Equal(t, []string{"m3", "m1", "m2"}, ids)
}

func TestUpdateQuantity(t *testing.T) {
	tests := []struct {
		name          string
		quantity      int
		expectedLines int
		expectedCount int
	}{
		{name: "given zero should remove line", quantity: 0, expectedLines: 0, expectedCount: 0},
		{name: "given negative should remove line", quantity: -5, expectedLines: 0, expectedCount: 0},
		{name: "given positive should set quantity", quantity: 7, expectedLines: 1, expectedCount: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := New("c")
			line := cart.AddItem(item("m1", "1"))

			assert.True(t, cart.UpdateQuantity(line.ID, tt.quantity))
			assert.Len(t, cart.Lines, tt.expectedLines)
			assert.Equal(t, tt.expectedCount, cart.ItemCount())
		})
	}
}

func TestUpdateQuantityUnknownLine(t *testing.T) {
	cart := New("c")
	cart.AddItem(item("m1", "1"))
	before := cart.Clone()

	assert.False(t, cart.UpdateQuantity(uuid.New(), 3))
	assert.Equal(t, before, cart)
}

func TestRemoveItem(t *testing.T) {
	cart := New("c")
	keep := cart.AddItem(item("m1", "1"))
	drop := cart.AddItem(item("m2", "1"))

	assert.True(t, cart.RemoveItem(drop.ID))
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, keep.ID, cart.Lines[0].ID)

	before := cart.Clone()
	assert.False(t, cart.RemoveItem(uuid.New()))
	assert.Equal(t, before, cart)
}

func TestClearKeepsOpenFlag(t *testing.T) {
	for _, open := range []bool{true, false} {
		t.Run(fmt.Sprintf("given isOpen=%t", open), func(t *testing.T) {
			cart := New("c")
			cart.IsOpen = open
			cart.AddItem(item("m1", "1"))
			cart.AddItem(item("m2", "1"))

			cart.Clear()
			assert.Equal(t, 0, cart.ItemCount())
			assert.Empty(t, cart.Lines)
			assert.Equal(t, open, cart.IsOpen)
		})
	}
}

func TestOpenClose(t *testing.T) {
	cart := New("c")
	assert.False(t, cart.IsOpen)
	cart.Open()
	assert.True(t, cart.IsOpen)
	cart.Close()
	assert.False(t, cart.IsOpen)
}

func TestTotals(t *testing.T) {
	cart := New("c")
	cart.AddItem(item("m1", "12.99"))
	cart.AddItem(item("m1", "12.99"))

	totals := cart.Totals(pricing.Default())
	assert.Equal(t, "25.98", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "2.99", totals.DeliveryFee.StringFixed(2))
	assert.Equal(t, "2.31", totals.Tax.StringFixed(2))
	assert.Equal(t, "31.28", totals.Total.StringFixed(2))
	assert.True(t, cart.Total(pricing.Default()).Equal(totals.Total))
}

func TestTotalIsSumOfRoundedTerms(t *testing.T) {
	prices := []string{"0.99", "1.13", "7.77", "13.99", "16.99"}
	p := pricing.Default()
	cart := New("c")
	for i, price := range prices {
		cart.AddItem(item(fmt.Sprintf("m%d", i), price))
		s := cart.Subtotal()
		expected := s.Round(2).
			Add(decimal.RequireFromString("2.99").Round(2)).
			Add(s.Mul(decimal.RequireFromString("0.08875")).Round(2))
		assert.True(t, expected.Equal(cart.Total(p)), "subtotal=%s", s)
	}
}

func TestSubtotalHasNoFloatDrift(t *testing.T) {
	cart := New("c")
	for i := range 10 {
		cart.AddItem(item(fmt.Sprintf("m%d", i), "0.10"))
	}
	assert.True(t, decimal.RequireFromString("1.00").Equal(cart.Subtotal()))
}

func TestRestaurantIDs(t *testing.T) {
	cart := New("c")
	cart.AddItem(item("m1", "1"))
	other := item("m3", "1")
	other.RestaurantID = "2"
	cart.AddItem(other)
	cart.AddItem(item("m2", "1"))

	assert.Equal(t, []string{"1", "2"}, cart.RestaurantIDs())
}

func TestOrder(t *testing.T) {
	cart := New("c")
	cart.AddItem(item("m1", "12.99"))
	cart.AddItem(item("m1", "12.99"))

	order := cart.Order("user-1")
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, "1", order.RestaurantID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
}
