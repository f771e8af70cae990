package infra

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const MaxTxAttempts = 3

// Transact runs fn under WATCH on keys. A transaction aborted by a concurrent write to a watched
// key is re-run, up to MaxTxAttempts times, before redis.TxFailedErr is returned.
func Transact(
	c context.Context,
	client *redis.Client,
	fn func(tx *redis.Tx) error,
	keys ...string,
) error {
	for range MaxTxAttempts {
		err := client.Watch(c, fn, keys...)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return redis.TxFailedErr
}
