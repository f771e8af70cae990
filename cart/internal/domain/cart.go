// Package domain holds the cart engine: an ordered set of lines keyed by menu item with
// derived totals.
//
// A cart never holds two lines for the same menu item and never keeps a line whose quantity
// dropped to zero. Totals are derived on read and never stored.
package domain

import (
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Alturino/foodhub/internal/pricing"
)

type Line struct {
	ID             uuid.UUID       `json:"id"`
	MenuItemID     string          `json:"menuItemId"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"price"`
	Quantity       int             `json:"quantity"`
	RestaurantID   string          `json:"restaurantId"`
	RestaurantName string          `json:"restaurantName"`
	Image          string          `json:"image"`
}

// Item is what gets added to a cart.
type Item struct {
	MenuItemID     string
	Name           string
	UnitPrice      decimal.Decimal
	RestaurantID   string
	RestaurantName string
	Image          string
}

type Cart struct {
	ID     string `json:"id"`
	Lines  []Line `json:"lines"`
	IsOpen bool   `json:"isOpen"`
}

func New(id string) Cart {
	return Cart{ID: id, Lines: []Line{}}
}

func (c *Cart) Clone() Cart {
	clone := *c
	clone.Lines = slices.Clone(c.Lines)
	if clone.Lines == nil {
		clone.Lines = []Line{}
	}
	return clone
}

// AddItem increments the line holding item.MenuItemID or appends a new line with quantity 1.
func (c *Cart) AddItem(item Item) Line {
	if i := c.indexOfMenuItem(item.MenuItemID); i >= 0 {
		c.Lines[i].Quantity++
		return c.Lines[i]
	}
	line := Line{
		ID:             uuid.New(),
		MenuItemID:     item.MenuItemID,
		Name:           item.Name,
		UnitPrice:      item.UnitPrice,
		Quantity:       1,
		RestaurantID:   item.RestaurantID,
		RestaurantName: item.RestaurantName,
		Image:          item.Image,
	}
	c.Lines = append(c.Lines, line)
	return line
}

// RemoveItem reports whether a line was removed. An unknown lineID is a no-op.
func (c *Cart) RemoveItem(lineID uuid.UUID) bool {
	i := c.indexOfLine(lineID)
	if i < 0 {
		return false
	}
	c.Lines = slices.Delete(c.Lines, i, i+1)
	return true
}

// UpdateQuantity sets the quantity of lineID, removing the line when quantity <= 0.
func (c *Cart) UpdateQuantity(lineID uuid.UUID, quantity int) bool {
	if quantity <= 0 {
		return c.RemoveItem(lineID)
	}
	i := c.indexOfLine(lineID)
	if i < 0 {
		return false
	}
	c.Lines[i].Quantity = quantity
	return true
}

// Clear empties the cart and leaves IsOpen untouched.
func (c *Cart) Clear() {
	c.Lines = []Line{}
}

func (c *Cart) Open() {
	c.IsOpen = true
}

func (c *Cart) Close() {
	c.IsOpen = false
}

// Subtotal is the exact sum of unit price times quantity. It is not rounded.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range c.Lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return subtotal
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

func (c *Cart) Totals(p pricing.Pricing) pricing.Totals {
	return p.Totals(c.Subtotal())
}

func (c *Cart) Total(p pricing.Pricing) decimal.Decimal {
	return c.Totals(p).Total
}

// RestaurantIDs lists the distinct restaurants in line order.
func (c *Cart) RestaurantIDs() []string {
	ids := []string{}
	for _, l := range c.Lines {
		if !slices.Contains(ids, l.RestaurantID) {
			ids = append(ids, l.RestaurantID)
		}
	}
	return ids
}

func (c *Cart) indexOfMenuItem(menuItemID string) int {
	return slices.IndexFunc(c.Lines, func(l Line) bool { return l.MenuItemID == menuItemID })
}

func (c *Cart) indexOfLine(lineID uuid.UUID) int {
	return slices.IndexFunc(c.Lines, func(l Line) bool { return l.ID == lineID })
}
