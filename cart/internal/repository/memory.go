package repository

import (
	"context"
	"sync"

	"github.com/Alturino/foodhub/cart/internal/domain"
	"github.com/Alturino/foodhub/cart/internal/otel"
)

type MemoryCartRepository struct {
	mu    sync.Mutex
	carts map[string]domain.Cart
}

func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{carts: map[string]domain.Cart{}}
}

func (r *MemoryCartRepository) FindCartById(c context.Context, cartId string) (domain.Cart, error) {
	_, span := otel.Tracer.Start(c, "MemoryCartRepository FindCartById")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[cartId]
	if !ok {
		return domain.New(cartId), nil
	}
	return cart.Clone(), nil
}

func (r *MemoryCartRepository) Update(
	c context.Context,
	cartId string,
	fn func(cart *domain.Cart) error,
) (domain.Cart, error) {
	_, span := otel.Tracer.Start(c, "MemoryCartRepository Update")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[cartId]
	if ok {
		cart = cart.Clone()
	} else {
		cart = domain.New(cartId)
	}
	if err := fn(&cart); err != nil {
		return domain.Cart{}, err
	}
	r.carts[cartId] = cart
	return cart.Clone(), nil
}
