package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/foodhub/internal/log"
	"github.com/Alturino/foodhub/order/pkg/event"
)

const (
	DefaultInterval  = 300 * time.Millisecond
	DefaultBatchSize = 50
	DefaultQueueSize = 256
)

type Publisher interface {
	Publish(c context.Context, routingKey string, body []byte) error
}

// OrderEventWorker drains the order event queue and publishes events in batches every
// interval. A failed publish is logged and the event is dropped.
type OrderEventWorker struct {
	publisher Publisher
	queue     <-chan event.OrderCreated
	interval  time.Duration
	batchSize int
}

func NewOrderEventWorker(
	publisher Publisher,
	queue <-chan event.OrderCreated,
	interval time.Duration,
) *OrderEventWorker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &OrderEventWorker{
		publisher: publisher,
		queue:     queue,
		interval:  interval,
		batchSize: DefaultBatchSize,
	}
}

func (wrk *OrderEventWorker) StartWorker(c context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderEventWorker StartWorker").
		Str(log.KeyProcess, "publishing order events").
		Logger()

	ticker := time.NewTicker(wrk.interval)
	defer ticker.Stop()
	batch := make([]event.OrderCreated, 0, wrk.batchSize)

	for {
		select {
		case <-c.Done():
			if len(batch) > 0 {
				logger.Info().Int(log.KeyBatchSize, len(batch)).Msg("flushing order events before stopping")
				wrk.publishBatch(logger.WithContext(context.WithoutCancel(c)), batch)
			}
			logger.Info().Msg("stopped order event worker")
			return
		case <-ticker.C:
			if len(batch) == 0 {
				continue
			}
			wrk.publishBatch(logger.WithContext(c), batch)
			batch = batch[:0]
		case evt := <-wrk.queue:
			batch = append(batch, evt)
			if len(batch) >= wrk.batchSize {
				wrk.publishBatch(logger.WithContext(c), batch)
				batch = batch[:0]
			}
		}
	}
}

func (wrk *OrderEventWorker) publishBatch(c context.Context, batch []event.OrderCreated) {
	requestID := uuid.NewString()
	c = log.AttachRequestIDToContext(c, requestID)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyRequestID, requestID).
		Int(log.KeyBatchSize, len(batch)).
		Logger()

	logger.Info().Msg("start publishing order events")
	published := 0
	for _, evt := range batch {
		body, err := json.Marshal(evt)
		if err != nil {
			err = fmt.Errorf("failed marshalling orderId=%s with error=%w", evt.OrderID, err)
			logger.Error().Err(err).Msg(err.Error())
			continue
		}
		if err = wrk.publisher.Publish(c, event.RoutingKeyOrderCreated, body); err != nil {
			err = fmt.Errorf("failed publishing orderId=%s with error=%w", evt.OrderID, err)
			logger.Error().Err(err).Msg(err.Error())
			continue
		}
		published++
	}
	logger.Info().Msgf("published %d of %d order events", published, len(batch))
}
