package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const RoutingKeyOrderCreated = "order.created"

type OrderCreated struct {
	OrderID      uuid.UUID       `json:"orderId"`
	UserID       string          `json:"userId"`
	RestaurantID string          `json:"restaurantId"`
	ItemCount    int             `json:"itemCount"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}
