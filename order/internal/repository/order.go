package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Alturino/foodhub/order/pkg/response"
)

type OrderRepository interface {
	InsertOrder(c context.Context, order response.Order) error
	// FindOrderById returns errors.ErrOrderNotFound for an unknown id.
	FindOrderById(c context.Context, orderId uuid.UUID) (response.Order, error)
	// FindOrdersByUserId returns orders in creation order, empty for an unknown user.
	FindOrdersByUserId(c context.Context, userId string) ([]response.Order, error)
}
