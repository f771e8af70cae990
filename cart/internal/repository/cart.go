package repository

import (
	"context"

	"github.com/Alturino/foodhub/cart/internal/domain"
)

// CartRepository stores carts by client chosen id. An unknown id reads as a new empty cart.
type CartRepository interface {
	FindCartById(c context.Context, cartId string) (domain.Cart, error)
	// Update applies fn to the stored cart atomically and returns the result. Nothing is stored
	// when fn returns an error.
	Update(c context.Context, cartId string, fn func(cart *domain.Cart) error) (domain.Cart, error)
}
