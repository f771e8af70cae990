package infra

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	otelApi "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/Alturino/foodhub/internal/config"
	"github.com/Alturino/foodhub/internal/log"
	"github.com/Alturino/foodhub/internal/otel"
)

const (
	ExchangeKindTopic = "topic"
	ContentTypeJson   = "application/json"
)

// Broker is a single amqp connection with one channel. Publish is serialized because amqp
// channels must not be shared between goroutines.
type Broker struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	mu   sync.Mutex
	cfg  config.Broker
}

func NewBroker(c context.Context, cfg config.Broker) (*Broker, error) {
	c, span := otel.Tracer.Start(c, "NewBroker")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "NewBroker").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "dialing broker").Logger()
	logger.Info().Msg("dialing broker")
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		err = fmt.Errorf("failed dialing broker with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("dialed broker")

	logger = logger.With().Str(log.KeyProcess, "opening channel").Logger()
	logger.Info().Msg("opening channel")
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		err = fmt.Errorf("failed opening channel with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("opened channel")

	b := &Broker{conn: conn, ch: ch, cfg: cfg}

	logger = logger.With().Str(log.KeyProcess, "declaring topology").Logger()
	logger.Info().Msg("declaring topology")
	if err = b.declare(); err != nil {
		b.Close()
		err = fmt.Errorf("failed declaring topology with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("declared topology")

	return b, nil
}

func (b *Broker) declare() error {
	err := b.ch.ExchangeDeclare(b.cfg.Exchange, ExchangeKindTopic, true, false, false, false, nil)
	if err != nil {
		return err
	}
	if _, err = b.ch.QueueDeclare(b.cfg.Queue, true, false, false, false, nil); err != nil {
		return err
	}
	return b.ch.QueueBind(b.cfg.Queue, "order.*", b.cfg.Exchange, false, nil)
}

func (b *Broker) Publish(c context.Context, routingKey string, body []byte) error {
	c, span := otel.Tracer.Start(c, "Broker Publish")
	defer span.End()

	headers := amqp.Table{}
	otelApi.GetTextMapPropagator().Inject(c, HeaderCarrier(headers))

	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.ch.PublishWithContext(c, b.cfg.Exchange, routingKey, false, false, amqp.Publishing{
		Headers:      headers,
		DeliveryMode: amqp.Persistent,
		ContentType:  ContentTypeJson,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		err = fmt.Errorf("failed publishing routingKey=%s with error=%w", routingKey, err)
		otel.RecordError(err, span)
		return err
	}
	return nil
}

func (b *Broker) Consume(consumer string, prefetch int) (<-chan amqp.Delivery, error) {
	if err := b.ch.Qos(prefetch, 0, false); err != nil {
		return nil, fmt.Errorf("failed setting qos with error=%w", err)
	}
	deliveries, err := b.ch.Consume(b.cfg.Queue, consumer, false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("failed consuming queue=%s with error=%w", b.cfg.Queue, err)
	}
	return deliveries, nil
}

func (b *Broker) Close() {
	if b == nil {
		return
	}
	if b.ch != nil {
		_ = b.ch.Close()
	}
	if b.conn != nil {
		_ = b.conn.Close()
	}
}

// HeaderCarrier carries trace context in amqp message headers.
type HeaderCarrier amqp.Table

var _ propagation.TextMapCarrier = HeaderCarrier{}

func (h HeaderCarrier) Get(key string) string {
	v, ok := h[key].(string)
	if !ok {
		return ""
	}
	return v
}

func (h HeaderCarrier) Set(key string, value string) {
	h[key] = value
}

func (h HeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	return keys
}
