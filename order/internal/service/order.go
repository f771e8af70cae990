package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	inErrors "github.com/Alturino/foodhub/internal/errors"
	"github.com/Alturino/foodhub/internal/log"
	"github.com/Alturino/foodhub/internal/metrics"
	inOtel "github.com/Alturino/foodhub/internal/otel"
	"github.com/Alturino/foodhub/internal/pricing"
	"github.com/Alturino/foodhub/internal/validate"
	"github.com/Alturino/foodhub/order/internal/otel"
	"github.com/Alturino/foodhub/order/internal/repository"
	"github.com/Alturino/foodhub/order/pkg/event"
	"github.com/Alturino/foodhub/order/pkg/request"
	"github.com/Alturino/foodhub/order/pkg/response"
)

type OrderService struct {
	repo     repository.OrderRepository
	pricing  pricing.Pricing
	validate *validator.Validate
	metrics  *metrics.Metrics
	events   chan<- event.OrderCreated
}

// NewOrderService builds the service. events may be nil when order events are not published.
func NewOrderService(
	repo repository.OrderRepository,
	p pricing.Pricing,
	m *metrics.Metrics,
	events chan<- event.OrderCreated,
) *OrderService {
	return &OrderService{repo: repo, pricing: p, validate: validate.New(), metrics: m, events: events}
}

// CreateOrder prices the order server side and stores it with status pending unless the request
// names another status.
func (s *OrderService) CreateOrder(
	c context.Context,
	param request.CreateOrder,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService CreateOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService CreateOrder").
		Str(log.KeyUserID, param.UserID).
		Str(log.KeyRestaurantID, param.RestaurantID).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating order").Logger()
	logger.Trace().Msg("validating order")
	if err := s.validate.StructCtx(c, param); err != nil {
		err = inErrors.NewValidationError("invalid order data: %s", err.Error())
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Trace().Msg("validated order")

	logger = logger.With().Str(log.KeyProcess, "pricing order").Logger()
	logger.Trace().Msg("pricing order")
	subtotal := decimal.Zero
	items := make([]response.OrderItem, 0, len(param.Items))
	for _, it := range param.Items {
		subtotal = subtotal.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		items = append(items, response.OrderItem{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Price:      it.Price,
			Quantity:   it.Quantity,
		})
	}
	totals := s.pricing.Totals(subtotal)
	status := param.Status
	if status == "" {
		status = response.StatusPending
	}
	order := response.Order{
		ID:           uuid.New(),
		UserID:       param.UserID,
		RestaurantID: param.RestaurantID,
		Items:        items,
		Subtotal:     totals.Subtotal,
		DeliveryFee:  totals.DeliveryFee,
		Tax:          totals.Tax,
		Total:        totals.Total,
		Status:       status,
		CreatedAt:    time.Now().UTC(),
	}
	logger = logger.With().Str(log.KeyOrderID, order.ID.String()).Logger()
	logger.Trace().Msgf("priced order total=%s", order.Total)

	logger = logger.With().Str(log.KeyProcess, "inserting order").Logger()
	logger.Trace().Msg("inserting order")
	if err := s.repo.InsertOrder(c, order); err != nil {
		err = fmt.Errorf("failed inserting order with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	s.metrics.OrderCreated()
	logger.Info().Msg("inserted order")

	s.enqueue(c, order)

	return order, nil
}

func (s *OrderService) enqueue(c context.Context, order response.Order) {
	if s.events == nil {
		return
	}

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService enqueue").
		Str(log.KeyOrderID, order.ID.String()).
		Logger()

	itemCount := 0
	for _, it := range order.Items {
		itemCount += it.Quantity
	}
	evt := event.OrderCreated{
		OrderID:      order.ID,
		UserID:       order.UserID,
		RestaurantID: order.RestaurantID,
		ItemCount:    itemCount,
		Total:        order.Total,
		Status:       order.Status,
		CreatedAt:    order.CreatedAt,
	}
	select {
	case s.events <- evt:
		logger.Trace().Msg("enqueued order created event")
	default:
		logger.Warn().Msg("order event queue is full, dropping order created event")
	}
}

func (s *OrderService) FindOrderById(
	c context.Context,
	orderId uuid.UUID,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrderById").
		Str(log.KeyOrderID, orderId.String()).
		Str(log.KeyProcess, "finding order").
		Logger()

	logger.Trace().Msg("finding order")
	order, err := s.repo.FindOrderById(c, orderId)
	if err != nil {
		err = fmt.Errorf("failed finding orderId=%s with error=%w", orderId, err)
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Trace().Msg("found order")

	return order, nil
}

func (s *OrderService) FindOrdersByUserId(
	c context.Context,
	userId string,
) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrdersByUserId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrdersByUserId").
		Str(log.KeyUserID, userId).
		Str(log.KeyProcess, "finding orders").
		Logger()

	if userId == "" {
		err := inErrors.ErrEmptyUserID
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return nil, err
	}

	logger.Trace().Msg("finding orders")
	orders, err := s.repo.FindOrdersByUserId(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding orders of userId=%s with error=%w", userId, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Trace().Msgf("found %d orders", len(orders))

	return orders, nil
}
