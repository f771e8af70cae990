package response

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Cart struct {
	ID          string          `json:"id"`
	Lines       []Line          `json:"lines"`
	IsOpen      bool            `json:"isOpen"`
	ItemCount   int             `json:"itemCount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

type Line struct {
	ID             uuid.UUID       `json:"id"`
	MenuItemID     string          `json:"menuItemId"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Quantity       int             `json:"quantity"`
	RestaurantID   string          `json:"restaurantId"`
	RestaurantName string          `json:"restaurantName"`
	Image          string          `json:"image"`
}
