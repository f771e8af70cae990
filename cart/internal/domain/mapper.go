package domain

import (
	"github.com/Alturino/foodhub/cart/pkg/response"
	"github.com/Alturino/foodhub/internal/pricing"
	"github.com/Alturino/foodhub/order/pkg/request"
)

func (c *Cart) Response(p pricing.Pricing) response.Cart {
	lines := make([]response.Line, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, response.Line{
			ID:             l.ID,
			MenuItemID:     l.MenuItemID,
			Name:           l.Name,
			Price:          l.UnitPrice,
			Quantity:       l.Quantity,
			RestaurantID:   l.RestaurantID,
			RestaurantName: l.RestaurantName,
			Image:          l.Image,
		})
	}
	totals := c.Totals(p)
	return response.Cart{
		ID:          c.ID,
		Lines:       lines,
		IsOpen:      c.IsOpen,
		ItemCount:   c.ItemCount(),
		Subtotal:    totals.Subtotal,
		DeliveryFee: totals.DeliveryFee,
		Tax:         totals.Tax,
		Total:       totals.Total,
	}
}

// Order maps a single restaurant cart onto an order request for userId.
func (c *Cart) Order(userId string) request.CreateOrder {
	items := make([]request.OrderItem, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, request.OrderItem{
			MenuItemID: l.MenuItemID,
			Name:       l.Name,
			Price:      l.UnitPrice,
			Quantity:   l.Quantity,
		})
	}
	restaurantId := ""
	if len(c.Lines) > 0 {
		restaurantId = c.Lines[0].RestaurantID
	}
	return request.CreateOrder{UserID: userId, RestaurantID: restaurantId, Items: items}
}
