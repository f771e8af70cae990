package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	inErrors "github.com/Alturino/foodhub/internal/errors"
	inOtel "github.com/Alturino/foodhub/internal/otel"
	"github.com/Alturino/foodhub/order/internal/otel"
	"github.com/Alturino/foodhub/order/pkg/response"
)

const (
	KeyOrder      = "orders:%s"
	KeyUserOrders = "orders:user:%s"
)

type RedisOrderRepository struct {
	cache *redis.Client
}

func NewRedisOrderRepository(cache *redis.Client) *RedisOrderRepository {
	return &RedisOrderRepository{cache: cache}
}

func (r *RedisOrderRepository) InsertOrder(c context.Context, order response.Order) error {
	c, span := otel.Tracer.Start(c, "RedisOrderRepository InsertOrder")
	defer span.End()

	body, err := json.Marshal(order)
	if err != nil {
		err = fmt.Errorf("failed marshalling orderId=%s with error=%w", order.ID, err)
		inOtel.RecordError(err, span)
		return inErrors.NewStorageError(err)
	}

	_, err = r.cache.TxPipelined(c, func(pipe redis.Pipeliner) error {
		pipe.Set(c, fmt.Sprintf(KeyOrder, order.ID), body, 0)
		pipe.RPush(c, fmt.Sprintf(KeyUserOrders, order.UserID), order.ID.String())
		return nil
	})
	if err != nil {
		err = fmt.Errorf("failed inserting orderId=%s with error=%w", order.ID, err)
		inOtel.RecordError(err, span)
		return inErrors.NewStorageError(err)
	}
	return nil
}

func (r *RedisOrderRepository) FindOrderById(
	c context.Context,
	orderId uuid.UUID,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "RedisOrderRepository FindOrderById")
	defer span.End()

	body, err := r.cache.Get(c, fmt.Sprintf(KeyOrder, orderId)).Bytes()
	if errors.Is(err, redis.Nil) {
		return response.Order{}, fmt.Errorf("orderId=%s: %w", orderId, inErrors.ErrOrderNotFound)
	}
	if err != nil {
		err = fmt.Errorf("failed getting orderId=%s with error=%w", orderId, err)
		inOtel.RecordError(err, span)
		return response.Order{}, inErrors.NewStorageError(err)
	}

	order := response.Order{}
	if err = json.Unmarshal(body, &order); err != nil {
		err = fmt.Errorf("failed unmarshalling orderId=%s with error=%w", orderId, err)
		inOtel.RecordError(err, span)
		return response.Order{}, inErrors.NewStorageError(err)
	}
	return order, nil
}

func (r *RedisOrderRepository) FindOrdersByUserId(
	c context.Context,
	userId string,
) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "RedisOrderRepository FindOrdersByUserId")
	defer span.End()

	ids, err := r.cache.LRange(c, fmt.Sprintf(KeyUserOrders, userId), 0, -1).Result()
	if err != nil {
		err = fmt.Errorf("failed listing orders of userId=%s with error=%w", userId, err)
		inOtel.RecordError(err, span)
		return nil, inErrors.NewStorageError(err)
	}
	if len(ids) == 0 {
		return []response.Order{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, fmt.Sprintf(KeyOrder, id))
	}
	values, err := r.cache.MGet(c, keys...).Result()
	if err != nil {
		err = fmt.Errorf("failed getting orders of userId=%s with error=%w", userId, err)
		inOtel.RecordError(err, span)
		return nil, inErrors.NewStorageError(err)
	}

	orders := make([]response.Order, 0, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		order := response.Order{}
		if err = json.Unmarshal([]byte(s), &order); err != nil {
			err = fmt.Errorf("failed unmarshalling key=%s with error=%w", keys[i], err)
			inOtel.RecordError(err, span)
			return nil, inErrors.NewStorageError(err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}
