package cmd

import (
	"context"
	"sync"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/foodhub/internal/log"
	"github.com/Alturino/foodhub/internal/metrics"
	"github.com/Alturino/foodhub/internal/pricing"
	"github.com/Alturino/foodhub/order/internal/controller"
	"github.com/Alturino/foodhub/order/internal/otel"
	"github.com/Alturino/foodhub/order/internal/repository"
	"github.com/Alturino/foodhub/order/internal/service"
	"github.com/Alturino/foodhub/order/internal/worker"
	"github.com/Alturino/foodhub/order/pkg/event"
)

type Dependencies struct {
	// Cache selects the redis repository when set, the in-memory one otherwise.
	Cache   *redis.Client
	Pricing pricing.Pricing
	Metrics *metrics.Metrics
	// Publisher enables order events when set.
	Publisher worker.Publisher
}

// AttachOrder mounts the order routes on every router and, when a publisher is configured,
// starts the order event worker. The worker stops when c is done; wait on wg to drain it.
func AttachOrder(
	c context.Context,
	wg *sync.WaitGroup,
	deps Dependencies,
	routers ...*mux.Router,
) *service.OrderService {
	c, span := otel.Tracer.Start(c, "AttachOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main AttachOrder").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing order repository").Logger()
	logger.Info().Msg("initializing order repository")
	var repo repository.OrderRepository = repository.NewMemoryOrderRepository()
	if deps.Cache != nil {
		repo = repository.NewRedisOrderRepository(deps.Cache)
	}
	logger.Info().Msgf("initialized order repository %T", repo)

	var events chan event.OrderCreated
	if deps.Publisher != nil {
		logger = logger.With().Str(log.KeyProcess, "starting order event worker").Logger()
		logger.Info().Msg("starting order event worker")
		events = make(chan event.OrderCreated, worker.DefaultQueueSize)
		wrk := worker.NewOrderEventWorker(deps.Publisher, events, worker.DefaultInterval)
		wg.Add(1)
		go wrk.StartWorker(logger.WithContext(c), wg)
		logger.Info().Msg("started order event worker")
	}

	logger = logger.With().Str(log.KeyProcess, "initializing order controller").Logger()
	logger.Info().Msg("initializing order controller")
	svc := service.NewOrderService(repo, deps.Pricing, deps.Metrics, events)
	for _, router := range routers {
		controller.AttachOrderController(router, svc)
	}
	logger.Info().Msg("initialized order controller")

	return svc
}
