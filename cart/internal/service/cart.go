package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/foodhub/cart/internal/domain"
	"github.com/Alturino/foodhub/cart/internal/otel"
	"github.com/Alturino/foodhub/cart/internal/repository"
	"github.com/Alturino/foodhub/cart/pkg/request"
	"github.com/Alturino/foodhub/cart/pkg/response"
	catalogResponse "github.com/Alturino/foodhub/catalog/pkg/response"
	inErrors "github.com/Alturino/foodhub/internal/errors"
	"github.com/Alturino/foodhub/internal/log"
	"github.com/Alturino/foodhub/internal/metrics"
	inOtel "github.com/Alturino/foodhub/internal/otel"
	"github.com/Alturino/foodhub/internal/pricing"
	"github.com/Alturino/foodhub/internal/validate"
	orderRequest "github.com/Alturino/foodhub/order/pkg/request"
	orderResponse "github.com/Alturino/foodhub/order/pkg/response"
)

const (
	OperationAdd            = "add"
	OperationRemove         = "remove"
	OperationUpdateQuantity = "update_quantity"
	OperationClear          = "clear"
	OperationOpen           = "open"
	OperationClose          = "close"
	OperationCheckout       = "checkout"
)

type MenuCatalog interface {
	FindMenuItemById(c context.Context, menuItemId string) (catalogResponse.MenuItem, error)
	FindRestaurantById(c context.Context, restaurantId string) (catalogResponse.Restaurant, error)
}

type OrderCreator interface {
	CreateOrder(c context.Context, param orderRequest.CreateOrder) (orderResponse.Order, error)
}

type CartService struct {
	repo     repository.CartRepository
	catalog  MenuCatalog
	orders   OrderCreator
	pricing  pricing.Pricing
	validate *validator.Validate
	metrics  *metrics.Metrics
}

func NewCartService(
	repo repository.CartRepository,
	catalog MenuCatalog,
	orders OrderCreator,
	p pricing.Pricing,
	m *metrics.Metrics,
) *CartService {
	return &CartService{
		repo:     repo,
		catalog:  catalog,
		orders:   orders,
		pricing:  p,
		validate: validate.New(),
		metrics:  m,
	}
}

func (s *CartService) FindCartById(c context.Context, cartId string) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService FindCartById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FindCartById").
		Str(log.KeyCartID, cartId).
		Str(log.KeyProcess, "finding cart").
		Logger()

	logger.Trace().Msg("finding cart")
	cart, err := s.repo.FindCartById(c, cartId)
	if err != nil {
		err = fmt.Errorf("failed finding cartId=%s with error=%w", cartId, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Trace().Msg("found cart")

	return cart.Response(s.pricing), nil
}

// AddItem adds one unit of a catalog menu item, copying its name, price and restaurant onto
// the line.
func (s *CartService) AddItem(
	c context.Context,
	cartId string,
	param request.AddItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddItem").
		Str(log.KeyCartID, cartId).
		Str(log.KeyMenuItemID, param.MenuItemID).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request").Logger()
	if err := s.validate.StructCtx(c, param); err != nil {
		err = inErrors.NewValidationError("invalid cart item: %s", err.Error())
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding menu item").Logger()
	logger.Trace().Msg("finding menu item")
	c = logger.WithContext(c)
	menuItem, err := s.catalog.FindMenuItemById(c, param.MenuItemID)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if !menuItem.IsAvailable {
		err = inErrors.NewValidationError("menuItemId=%s is not available", menuItem.ID)
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Trace().Msg("found menu item")

	logger = logger.With().Str(log.KeyProcess, "finding restaurant").Logger()
	logger.Trace().Msg("finding restaurant")
	restaurant, err := s.catalog.FindRestaurantById(c, menuItem.RestaurantID)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Trace().Msg("found restaurant")

	logger = logger.With().Str(log.KeyProcess, "adding item to cart").Logger()
	logger.Trace().Msg("adding item to cart")
	cart, err := s.repo.Update(c, cartId, func(cart *domain.Cart) error {
		line := cart.AddItem(domain.Item{
			MenuItemID:     menuItem.ID,
			Name:           menuItem.Name,
			UnitPrice:      menuItem.Price,
			RestaurantID:   restaurant.ID,
			RestaurantName: restaurant.Name,
			Image:          menuItem.Image,
		})
		logger.Trace().
			Str(log.KeyLineID, line.ID.String()).
			Int(log.KeyQuantity, line.Quantity).
			Msg("added item to cart")
		return nil
	})
	if err != nil {
		err = fmt.Errorf("failed adding item to cartId=%s with error=%w", cartId, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	s.metrics.CartMutation(OperationAdd)

	return cart.Response(s.pricing), nil
}

// UpdateQuantity sets the quantity of a line. Zero or less removes it, an unknown line is left
// alone.
func (s *CartService) UpdateQuantity(
	c context.Context,
	cartId string,
	lineId uuid.UUID,
	param request.UpdateQuantity,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService UpdateQuantity")
	defer span.End()

	if err := s.validate.StructCtx(c, param); err != nil {
		err = inErrors.NewValidationError("invalid quantity: %s", err.Error())
		inOtel.RecordError(err, span)
		return response.Cart{}, err
	}

	return s.mutate(c, cartId, OperationUpdateQuantity, func(cart *domain.Cart) {
		cart.UpdateQuantity(lineId, *param.Quantity)
	})
}

func (s *CartService) RemoveItem(
	c context.Context,
	cartId string,
	lineId uuid.UUID,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveItem")
	defer span.End()

	return s.mutate(c, cartId, OperationRemove, func(cart *domain.Cart) {
		cart.RemoveItem(lineId)
	})
}

func (s *CartService) Clear(c context.Context, cartId string) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService Clear")
	defer span.End()

	return s.mutate(c, cartId, OperationClear, (*domain.Cart).Clear)
}

func (s *CartService) Open(c context.Context, cartId string) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService Open")
	defer span.End()

	return s.mutate(c, cartId, OperationOpen, (*domain.Cart).Open)
}

func (s *CartService) Close(c context.Context, cartId string) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService Close")
	defer span.End()

	return s.mutate(c, cartId, OperationClose, (*domain.Cart).Close)
}

func (s *CartService) mutate(
	c context.Context,
	cartId string,
	operation string,
	fn func(cart *domain.Cart),
) (response.Cart, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService mutate").
		Str(log.KeyCartID, cartId).
		Str(log.KeyProcess, operation).
		Logger()

	logger.Trace().Msgf("applying %s to cart", operation)
	cart, err := s.repo.Update(c, cartId, func(cart *domain.Cart) error {
		fn(cart)
		return nil
	})
	if err != nil {
		err = fmt.Errorf("failed applying %s to cartId=%s with error=%w", operation, cartId, err)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	s.metrics.CartMutation(operation)
	logger.Trace().Msgf("applied %s to cart", operation)

	return cart.Response(s.pricing), nil
}

// Checkout turns a single restaurant cart into an order for the user, then clears and closes the
// cart.
func (s *CartService) Checkout(
	c context.Context,
	cartId string,
	param request.Checkout,
) (orderResponse.Order, error) {
	c, span := otel.Tracer.Start(c, "CartService Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService Checkout").
		Str(log.KeyCartID, cartId).
		Str(log.KeyUserID, param.UserID).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request").Logger()
	if err := s.validate.StructCtx(c, param); err != nil {
		err = fmt.Errorf("%w: %s", inErrors.ErrEmptyUserID, err.Error())
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Trace().Msg("finding cart")
	cart, err := s.repo.FindCartById(c, cartId)
	if err != nil {
		err = fmt.Errorf("failed finding cartId=%s with error=%w", cartId, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	logger.Trace().Msg("found cart")

	logger = logger.With().Str(log.KeyProcess, "validating cart").Logger()
	if len(cart.Lines) == 0 {
		err = inErrors.ErrEmptyCart
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	if len(cart.RestaurantIDs()) > 1 {
		err = inErrors.ErrMixedRestaurantCart
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "creating order").Logger()
	logger.Trace().Msg("creating order")
	c = logger.WithContext(c)
	order, err := s.orders.CreateOrder(c, cart.Order(param.UserID))
	if err != nil {
		err = fmt.Errorf("failed creating order from cartId=%s with error=%w", cartId, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	logger = logger.With().Str(log.KeyOrderID, order.ID.String()).Logger()
	logger.Info().Msg("created order")

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Trace().Msg("clearing cart")
	_, err = s.repo.Update(c, cartId, func(cart *domain.Cart) error {
		cart.Clear()
		cart.Close()
		return nil
	})
	if err != nil {
		// The order exists at this point; the stale cart is only logged.
		err = fmt.Errorf("failed clearing cartId=%s after checkout with error=%w", cartId, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
	s.metrics.CartMutation(OperationCheckout)
	logger.Trace().Msg("cleared cart")

	return order, nil
}
