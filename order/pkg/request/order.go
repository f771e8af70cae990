package request

import "github.com/shopspring/decimal"

type CreateOrder struct {
	UserID       string      `validate:"required"              json:"userId"`
	RestaurantID string      `validate:"required"              json:"restaurantId"`
	Items        []OrderItem `validate:"required,min=1,dive"   json:"items"`
	Status       string      `validate:"omitempty,oneof=pending confirmed preparing delivering delivered cancelled" json:"status,omitempty"`
}

type OrderItem struct {
	MenuItemID string          `validate:"required"       json:"menuItemId"`
	Name       string          `validate:"required"       json:"name"`
	Price      decimal.Decimal `validate:"gt=0"           json:"price"`
	Quantity   int             `validate:"required,gte=1" json:"quantity"`
}
