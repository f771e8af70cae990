package errors

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("not found")
	ErrExternalService = errors.New("external service error")
	ErrStorage         = errors.New("storage error")
)

var (
	ErrEmptyQuery          = fmt.Errorf("%w: search query is required", ErrValidation)
	ErrEmptyMessage        = fmt.Errorf("%w: message is required", ErrValidation)
	ErrEmptySessionID      = fmt.Errorf("%w: session id is required", ErrValidation)
	ErrEmptyUserID         = fmt.Errorf("%w: user id is required", ErrValidation)
	ErrEmptyCart           = fmt.Errorf("%w: cart is empty", ErrValidation)
	ErrMixedRestaurantCart = fmt.Errorf("%w: cart contains items from more than one restaurant", ErrValidation)
	ErrRestaurantNotFound  = fmt.Errorf("%w: restaurant not found", ErrNotFound)
	ErrMenuItemNotFound    = fmt.Errorf("%w: menu item not found", ErrNotFound)
	ErrOrderNotFound       = fmt.Errorf("%w: order not found", ErrNotFound)
)

func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func NewStorageError(err error) error {
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

func NewExternalServiceError(err error) error {
	return fmt.Errorf("%w: %w", ErrExternalService, err)
}
