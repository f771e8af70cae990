package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	otelApi "go.opentelemetry.io/otel"

	"github.com/Alturino/foodhub/internal/infra"
	"github.com/Alturino/foodhub/internal/log"
	inOtel "github.com/Alturino/foodhub/internal/otel"
	"github.com/Alturino/foodhub/notification/internal/otel"
	"github.com/Alturino/foodhub/order/pkg/event"
)

// Notifier tells a user about their order.
type Notifier interface {
	NotifyOrderCreated(c context.Context, e event.OrderCreated) error
}

// LogNotifier writes the notification to the context logger.
type LogNotifier struct{}

func (LogNotifier) NotifyOrderCreated(c context.Context, e event.OrderCreated) error {
	zerolog.Ctx(c).
		Info().
		Str(log.KeyTag, "LogNotifier NotifyOrderCreated").
		Str(log.KeyOrderID, e.OrderID.String()).
		Str(log.KeyUserID, e.UserID).
		Str(log.KeyRestaurantID, e.RestaurantID).
		Msgf("order of %d items totalling %s is %s", e.ItemCount, e.Total.StringFixed(2), e.Status)
	return nil
}

type OrderConsumer struct {
	notifier Notifier
}

func NewOrderConsumer(notifier Notifier) *OrderConsumer {
	return &OrderConsumer{notifier: notifier}
}

// Consume handles deliveries until c is done or the channel is closed.
func (oc *OrderConsumer) Consume(c context.Context, deliveries <-chan amqp.Delivery) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderConsumer Consume").
		Str(log.KeyProcess, "consuming order events").
		Logger()

	logger.Info().Msg("consuming order events")
	for {
		select {
		case <-c.Done():
			logger.Info().Msg("stopped consuming order events")
			return
		case d, ok := <-deliveries:
			if !ok {
				logger.Warn().Msg("delivery channel closed")
				return
			}
			_ = oc.Handle(logger.WithContext(c), d)
		}
	}
}

// Handle acks a delivery once its user is notified. Otherwise the delivery is rejected without
// requeue; redelivery is left to the broker's dead letter policy.
func (oc *OrderConsumer) Handle(c context.Context, d amqp.Delivery) error {
	c = otelApi.GetTextMapPropagator().Extract(c, infra.HeaderCarrier(d.Headers))
	c, span := otel.Tracer.Start(c, "OrderConsumer Handle")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderConsumer Handle").
		Uint64("deliveryTag", d.DeliveryTag).
		Str("routingKey", d.RoutingKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding event").Logger()
	logger.Trace().Msg("decoding event")
	e := event.OrderCreated{}
	if err := json.Unmarshal(d.Body, &e); err != nil {
		err = fmt.Errorf("failed decoding event with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		if nackErr := d.Nack(false, false); nackErr != nil {
			logger.Error().Err(nackErr).Msg("failed rejecting delivery")
		}
		return err
	}
	logger = logger.With().Str(log.KeyOrderID, e.OrderID.String()).Logger()
	logger.Trace().Msg("decoded event")

	logger = logger.With().Str(log.KeyProcess, "notifying user").Logger()
	logger.Trace().Msg("notifying user")
	if err := oc.notifier.NotifyOrderCreated(logger.WithContext(c), e); err != nil {
		err = fmt.Errorf("failed notifying orderId=%s with error=%w", e.OrderID, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		if nackErr := d.Nack(false, false); nackErr != nil {
			logger.Error().Err(nackErr).Msg("failed rejecting delivery")
		}
		return err
	}
	logger.Info().Msg("notified user")

	if err := d.Ack(false); err != nil {
		err = fmt.Errorf("failed acking delivery with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	return nil
}
