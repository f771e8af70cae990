package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	inErrors "github.com/Alturino/foodhub/internal/errors"
	"github.com/Alturino/foodhub/order/internal/otel"
	"github.com/Alturino/foodhub/order/pkg/response"
)

type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]response.Order
	byUser map[string][]uuid.UUID
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: map[uuid.UUID]response.Order{},
		byUser: map[string][]uuid.UUID{},
	}
}

func (r *MemoryOrderRepository) InsertOrder(c context.Context, order response.Order) error {
	_, span := otel.Tracer.Start(c, "MemoryOrderRepository InsertOrder")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	order.Items = slices.Clone(order.Items)
	r.orders[order.ID] = order
	r.byUser[order.UserID] = append(r.byUser[order.UserID], order.ID)
	return nil
}

func (r *MemoryOrderRepository) FindOrderById(
	c context.Context,
	orderId uuid.UUID,
) (response.Order, error) {
	_, span := otel.Tracer.Start(c, "MemoryOrderRepository FindOrderById")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderId]
	if !ok {
		return response.Order{}, fmt.Errorf("orderId=%s: %w", orderId, inErrors.ErrOrderNotFound)
	}
	order.Items = slices.Clone(order.Items)
	return order, nil
}

func (r *MemoryOrderRepository) FindOrdersByUserId(
	c context.Context,
	userId string,
) ([]response.Order, error) {
	_, span := otel.Tracer.Start(c, "MemoryOrderRepository FindOrdersByUserId")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byUser[userId]
	orders := make([]response.Order, 0, len(ids))
	for _, id := range ids {
		order := r.orders[id]
		order.Items = slices.Clone(order.Items)
		orders = append(orders, order)
	}
	return orders, nil
}
