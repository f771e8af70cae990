package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{name: "empty query is a validation error", input: ErrEmptyQuery, expected: ErrValidation},
		{name: "mixed cart is a validation error", input: ErrMixedRestaurantCart, expected: ErrValidation},
		{name: "restaurant not found is a not found error", input: ErrRestaurantNotFound, expected: ErrNotFound},
		{name: "order not found is a not found error", input: ErrOrderNotFound, expected: ErrNotFound},
		{name: "formatted validation error", input: NewValidationError("quantity=%d", -1), expected: ErrValidation},
		{name: "storage error keeps cause", input: NewStorageError(errors.New("boom")), expected: ErrStorage},
		{name: "external service error", input: NewExternalServiceError(errors.New("quota")), expected: ErrExternalService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.input, tt.expected)
		})
	}
}

func TestNewStorageErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorageError(cause)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrStorage)
}
