package cmd

import (
	"context"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/foodhub/cart/internal/controller"
	"github.com/Alturino/foodhub/cart/internal/otel"
	"github.com/Alturino/foodhub/cart/internal/repository"
	"github.com/Alturino/foodhub/cart/internal/service"
	"github.com/Alturino/foodhub/internal/log"
	"github.com/Alturino/foodhub/internal/metrics"
	"github.com/Alturino/foodhub/internal/pricing"
)

type Dependencies struct {
	// Cache selects the redis repository when set, the in-memory one otherwise.
	Cache   *redis.Client
	Pricing pricing.Pricing
	Metrics *metrics.Metrics
}

func AttachCart(
	c context.Context,
	deps Dependencies,
	catalog service.MenuCatalog,
	orders service.OrderCreator,
	routers ...*mux.Router,
) *service.CartService {
	c, span := otel.Tracer.Start(c, "AttachCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main AttachCart").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing cart repository").Logger()
	logger.Info().Msg("initializing cart repository")
	var repo repository.CartRepository = repository.NewMemoryCartRepository()
	if deps.Cache != nil {
		repo = repository.NewRedisCartRepository(deps.Cache)
	}
	logger.Info().Msgf("initialized cart repository %T", repo)

	logger = logger.With().Str(log.KeyProcess, "initializing cart controller").Logger()
	logger.Info().Msg("initializing cart controller")
	svc := service.NewCartService(repo, catalog, orders, deps.Pricing, deps.Metrics)
	for _, router := range routers {
		controller.AttachCartController(router, svc)
	}
	logger.Info().Msg("initialized cart controller")

	return svc
}
