package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/foodhub/internal/errors"
	"github.com/Alturino/foodhub/internal/pricing"
	"github.com/Alturino/foodhub/order/internal/repository"
	"github.com/Alturino/foodhub/order/pkg/event"
	"github.com/Alturino/foodhub/order/pkg/request"
	"github.com/Alturino/foodhub/order/pkg/response"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateOrder(t *testing.T) {
	tests := []struct {
		name          string
		input         request.CreateOrder
		expectedTotal decimal.Decimal
		expectedTax   decimal.Decimal
		expectedErr   error
	}{
		{
			name: "given two rolls should price with pre rounded tax",
			input: request.CreateOrder{
				UserID:       "user-1",
				RestaurantID: "1",
				Items: []request.OrderItem{
					{MenuItemID: "m1", Name: "Salmon Avocado Roll", Price: d("12.99"), Quantity: 2},
				},
			},
			expectedTotal: d("31.28"),
			expectedTax:   d("2.31"),
		},
		{
			name: "given several items should sum lines",
			input: request.CreateOrder{
				UserID:       "user-1",
				RestaurantID: "2",
				Items: []request.OrderItem{
					{MenuItemID: "m3", Name: "Margherita Pizza", Price: d("16.99"), Quantity: 1},
					{MenuItemID: "m4", Name: "Pepperoni Pizza", Price: d("18.99"), Quantity: 1},
				},
			},
			// 35.98 + 2.99 + round(3.193225)
			expectedTotal: d("42.16"),
			expectedTax:   d("3.19"),
		},
		{
			name:        "given no items should fail validation",
			input:       request.CreateOrder{UserID: "user-1", RestaurantID: "1"},
			expectedErr: inErrors.ErrValidation,
		},
		{
			name: "given missing user should fail validation",
			input: request.CreateOrder{
				RestaurantID: "1",
				Items:        []request.OrderItem{{MenuItemID: "m1", Name: "roll", Price: d("1"), Quantity: 1}},
			},
			expectedErr: inErrors.ErrValidation,
		},
		{
			name: "given zero quantity should fail validation",
			input: request.CreateOrder{
				UserID:       "user-1",
				RestaurantID: "1",
				Items:        []request.OrderItem{{MenuItemID: "m1", Name: "roll", Price: d("1"), Quantity: 0}},
			},
			expectedErr: inErrors.ErrValidation,
		},
		{
			name: "given non positive price should fail validation",
			input: request.CreateOrder{
				UserID:       "user-1",
				RestaurantID: "1",
				Items:        []request.OrderItem{{MenuItemID: "m1", Name: "roll", Price: d("0"), Quantity: 1}},
			},
			expectedErr: inErrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := make(chan event.OrderCreated, 1)
			svc := NewOrderService(repository.NewMemoryOrderRepository(), pricing.Default(), nil, events)

			actual, err := svc.CreateOrder(context.Background(), tt.input)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, events)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, response.StatusPending, actual.Status)
			assert.NotEqual(t, uuid.Nil, actual.ID)
			assert.True(t, tt.expectedTotal.Equal(actual.Total), "total=%s", actual.Total)
			assert.True(t, tt.expectedTax.Equal(actual.Tax), "tax=%s", actual.Tax)
			assert.True(t, d("2.99").Equal(actual.DeliveryFee))

			require.Len(t, events, 1)
			evt := <-events
			assert.Equal(t, actual.ID, evt.OrderID)
			assert.True(t, actual.Total.Equal(evt.Total))

			found, err := svc.FindOrderById(context.Background(), actual.ID)
			require.NoError(t, err)
			assert.Equal(t, actual.ID, found.ID)
		})
	}
}

func TestCreateOrderWithoutEventQueue(t *testing.T) {
	svc := NewOrderService(repository.NewMemoryOrderRepository(), pricing.Default(), nil, nil)
	_, err := svc.CreateOrder(context.Background(), request.CreateOrder{
		UserID:       "user-1",
		RestaurantID: "3",
		Items:        []request.OrderItem{{MenuItemID: "m5", Name: "Classic Burger", Price: d("13.99"), Quantity: 1}},
	})
	assert.NoError(t, err)
}

func TestFindOrdersByUserId(t *testing.T) {
	c := context.Background()
	svc := NewOrderService(repository.NewMemoryOrderRepository(), pricing.Default(), nil, nil)
	for range 3 {
		_, err := svc.CreateOrder(c, request.CreateOrder{
			UserID:       "user-1",
			RestaurantID: "4",
			Items:        []request.OrderItem{{MenuItemID: "m8", Name: "Mediterranean Wrap", Price: d("12.99"), Quantity: 1}},
		})
		require.NoError(t, err)
	}

	orders, err := svc.FindOrdersByUserId(c, "user-1")
	require.NoError(t, err)
	assert.Len(t, orders, 3)

	orders, err = svc.FindOrdersByUserId(c, "user-2")
	require.NoError(t, err)
	assert.Empty(t, orders)

	_, err = svc.FindOrdersByUserId(c, "")
	assert.ErrorIs(t, err, inErrors.ErrEmptyUserID)

	_, err = svc.FindOrderById(c, uuid.New())
	assert.ErrorIs(t, err, inErrors.ErrOrderNotFound)
}
