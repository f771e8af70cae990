package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/foodhub/internal/errors"
	"github.com/Alturino/foodhub/internal/testutil"
	"github.com/Alturino/foodhub/order/pkg/response"
)

func newOrder(userId string) response.Order {
	return response.Order{
		ID:           uuid.New(),
		UserID:       userId,
		RestaurantID: "1",
		Items: []response.OrderItem{
			{MenuItemID: "m1", Name: "Salmon Avocado Roll", Price: decimal.RequireFromString("12.99"), Quantity: 2},
		},
		Subtotal:    decimal.RequireFromString("25.98"),
		DeliveryFee: decimal.RequireFromString("2.99"),
		Tax:         decimal.RequireFromString("2.31"),
		Total:       decimal.RequireFromString("31.28"),
		Status:      response.StatusPending,
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}
}

func testOrderRepository(t *testing.T, repo OrderRepository) {
	c := context.Background()

	first := newOrder("user-1")
	second := newOrder("user-1")
	other := newOrder("user-2")
	for _, o := range []response.Order{first, second, other} {
		require.NoError(t, repo.InsertOrder(c, o))
	}

	actual, err := repo.FindOrderById(c, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, actual.ID)
	assert.True(t, first.Total.Equal(actual.Total))
	assert.True(t, first.CreatedAt.Equal(actual.CreatedAt))
	require.Len(t, actual.Items, 1)
	assert.Equal(t, 2, actual.Items[0].Quantity)

	_, err = repo.FindOrderById(c, uuid.New())
	assert.ErrorIs(t, err, inErrors.ErrOrderNotFound)

	orders, err := repo.FindOrdersByUserId(c, "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, first.ID, orders[0].ID)
	assert.Equal(t, second.ID, orders[1].ID)

	orders, err = repo.FindOrdersByUserId(c, "nobody")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestMemoryOrderRepository(t *testing.T) {
	testOrderRepository(t, NewMemoryOrderRepository())
}

func TestRedisOrderRepository(t *testing.T) {
	testOrderRepository(t, NewRedisOrderRepository(testutil.StartRedis(t)))
}
