package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const StatusPending = "pending"

type Order struct {
	ID           uuid.UUID       `json:"id"`
	UserID       string          `json:"userId"`
	RestaurantID string          `json:"restaurantId"`
	Items        []OrderItem     `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	DeliveryFee  decimal.Decimal `json:"deliveryFee"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type OrderItem struct {
	MenuItemID string          `json:"menuItemId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
}
