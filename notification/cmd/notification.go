package cmd

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/Alturino/foodhub/internal/log"
	inOtel "github.com/Alturino/foodhub/internal/otel"
	"github.com/Alturino/foodhub/notification/internal/consumer"
	"github.com/Alturino/foodhub/notification/internal/otel"
)

const (
	ConsumerName = "notification"
	Prefetch     = 10
)

type DeliverySource interface {
	Consume(consumer string, prefetch int) (<-chan amqp.Delivery, error)
}

// AttachNotification starts consuming order events from source. The consumer stops when c is
// done or the delivery channel closes; wait on wg to drain it.
func AttachNotification(c context.Context, wg *sync.WaitGroup, source DeliverySource) error {
	c, span := otel.Tracer.Start(c, "AttachNotification")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main AttachNotification").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "subscribing to order events").Logger()
	logger.Info().Msg("subscribing to order events")
	deliveries, err := source.Consume(ConsumerName, Prefetch)
	if err != nil {
		err = fmt.Errorf("failed subscribing to order events with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("subscribed to order events")

	oc := consumer.NewOrderConsumer(consumer.LogNotifier{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		oc.Consume(logger.WithContext(c), deliveries)
	}()

	return nil
}
