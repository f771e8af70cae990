package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Alturino/foodhub/cart/internal/domain"
	"github.com/Alturino/foodhub/cart/internal/otel"
	inErrors "github.com/Alturino/foodhub/internal/errors"
	"github.com/Alturino/foodhub/internal/infra"
	inOtel "github.com/Alturino/foodhub/internal/otel"
)

const KeyCart = "carts:%s"

type RedisCartRepository struct {
	cache *redis.Client
}

func NewRedisCartRepository(cache *redis.Client) *RedisCartRepository {
	return &RedisCartRepository{cache: cache}
}

func (r *RedisCartRepository) FindCartById(c context.Context, cartId string) (domain.Cart, error) {
	c, span := otel.Tracer.Start(c, "RedisCartRepository FindCartById")
	defer span.End()

	cart, err := getCart(c, r.cache, cartId)
	if err != nil {
		inOtel.RecordError(err, span)
		return domain.Cart{}, inErrors.NewStorageError(err)
	}
	return cart, nil
}

func (r *RedisCartRepository) Update(
	c context.Context,
	cartId string,
	fn func(cart *domain.Cart) error,
) (domain.Cart, error) {
	c, span := otel.Tracer.Start(c, "RedisCartRepository Update")
	defer span.End()

	key := fmt.Sprintf(KeyCart, cartId)
	var (
		updated domain.Cart
		fnErr   error
	)
	err := infra.Transact(c, r.cache, func(tx *redis.Tx) error {
		cart, err := getCart(c, tx, cartId)
		if err != nil {
			return err
		}
		if fnErr = fn(&cart); fnErr != nil {
			return fnErr
		}
		body, err := json.Marshal(cart)
		if err != nil {
			return fmt.Errorf("failed marshalling cartId=%s with error=%w", cartId, err)
		}
		_, err = tx.TxPipelined(c, func(pipe redis.Pipeliner) error {
			pipe.Set(c, key, body, 0)
			return nil
		})
		if err != nil {
			return err
		}
		updated = cart
		return nil
	}, key)
	if fnErr != nil {
		return domain.Cart{}, fnErr
	}
	if err != nil {
		err = fmt.Errorf("failed updating cartId=%s with error=%w", cartId, err)
		inOtel.RecordError(err, span)
		return domain.Cart{}, inErrors.NewStorageError(err)
	}
	return updated, nil
}

type getter interface {
	Get(c context.Context, key string) *redis.StringCmd
}

func getCart(c context.Context, cmd getter, cartId string) (domain.Cart, error) {
	body, err := cmd.Get(c, fmt.Sprintf(KeyCart, cartId)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.New(cartId), nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("failed getting cartId=%s with error=%w", cartId, err)
	}
	cart := domain.New(cartId)
	if err = json.Unmarshal(body, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("failed unmarshalling cartId=%s with error=%w", cartId, err)
	}
	return cart, nil
}
