package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	cartCmd "github.com/Alturino/foodhub/cart/cmd"
	catalogCmd "github.com/Alturino/foodhub/catalog/cmd"
	chatCmd "github.com/Alturino/foodhub/chat/cmd"
	"github.com/Alturino/foodhub/internal/config"
	"github.com/Alturino/foodhub/internal/infra"
	"github.com/Alturino/foodhub/internal/log"
	"github.com/Alturino/foodhub/internal/metrics"
	"github.com/Alturino/foodhub/internal/middleware"
	"github.com/Alturino/foodhub/internal/otel"
	"github.com/Alturino/foodhub/internal/pricing"
	orderCmd "github.com/Alturino/foodhub/order/cmd"
)

const shutdownTimeout = 15 * time.Second

func runServer(c context.Context, cfg *config.Config) {
	c, span := otel.Tracer.Start(c, "runServer")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main runServer").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	otelShutdowns, err := otel.InitOtelSdk(c, AppName, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer func() {
		logger.Info().Msg("shutting down otel")
		if err := otel.ShutdownOtel(context.WithoutCancel(c), otelShutdowns); err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown otel")
	}()
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().Str(log.KeyProcess, "initializing pricing").Logger()
	logger.Info().Msg("initializing pricing")
	p, err := pricing.FromConfig(cfg.Pricing)
	if err != nil {
		err = fmt.Errorf("failed initializing pricing with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msgf("initialized pricing deliveryFee=%s taxRate=%s", p.DeliveryFee, p.TaxRate)

	var cache *redis.Client
	if cfg.Storage.Driver == config.StorageRedis {
		logger = logger.With().Str(log.KeyProcess, "initializing cache").Logger()
		logger.Info().Msg("initializing cache")
		c = logger.WithContext(c)
		cache, err = infra.NewCacheClient(c, cfg.Cache)
		if err != nil {
			err = fmt.Errorf("failed initializing cache with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		defer func() {
			logger.Info().Msg("shutting down cache")
			if err := cache.Close(); err != nil {
				err = fmt.Errorf("failed shutting down cache with error=%w", err)
				logger.Error().Err(err).Msg(err.Error())
				return
			}
			logger.Info().Msg("shutdown cache")
		}()
		logger.Info().Msg("initialized cache")
	}

	logger = logger.With().Str(log.KeyProcess, "initializing metrics").Logger()
	logger.Info().Msg("initializing metrics")
	m := metrics.New(prometheus.DefaultRegisterer)
	logger.Info().Msg("initialized metrics")

	orderDeps := orderCmd.Dependencies{Cache: cache, Pricing: p, Metrics: m}
	if cfg.Broker.Enabled {
		logger = logger.With().Str(log.KeyProcess, "initializing broker").Logger()
		logger.Info().Msg("initializing broker")
		c = logger.WithContext(c)
		broker, err := infra.NewBroker(c, cfg.Broker)
		if err != nil {
			err = fmt.Errorf("failed initializing broker with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		defer func() {
			logger.Info().Msg("shutting down broker")
			broker.Close()
			logger.Info().Msg("shutdown broker")
		}()
		orderDeps.Publisher = broker
		logger.Info().Msg("initialized broker")
	}

	logger = logger.With().Str(log.KeyProcess, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := mux.NewRouter()
	router.Use(otelmux.Middleware(AppName), middleware.Logging, middleware.RecoverPanic)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	api := router.PathPrefix("/api").Subrouter()
	logger.Info().Msg("initialized router")

	workers := sync.WaitGroup{}
	workerCtx, stopWorkers := context.WithCancel(logger.WithContext(c))
	defer stopWorkers()
	c = logger.WithContext(c)
	catalog := catalogCmd.AttachCatalog(c, router, api)
	orders := orderCmd.AttachOrder(workerCtx, &workers, orderDeps, router, api)
	cartCmd.AttachCart(
		c,
		cartCmd.Dependencies{Cache: cache, Pricing: p, Metrics: m},
		catalog,
		orders,
		router,
		api,
	)
	chatCmd.AttachChat(
		c,
		chatCmd.Dependencies{Cache: cache, Recommender: cfg.Recommender, Metrics: m},
		catalog,
		router,
		api,
	)

	logger = logger.With().Str(log.KeyProcess, "initializing server").Logger()
	logger.Info().Msg("initializing server")
	httpServer := http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Application.Host, cfg.Application.Port),
		BaseContext:  func(net.Listener) context.Context { return c },
		Handler:      router,
		ReadTimeout:  cfg.Application.ReadTimeout,
		WriteTimeout: cfg.Application.WriteTimeout,
	}
	logger.Info().Msg("initialized server")

	serverErr := make(chan error, 1)
	go func() {
		logger := logger.With().Str(log.KeyProcess, "start server").Logger()
		logger.Info().Msgf("start listening request at %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("error=%w occured while server is running", err)
		}
		close(serverErr)
	}()

	select {
	case <-c.Done():
		logger = logger.With().Str(log.KeyProcess, "shutdown server").Logger()
		logger.Info().Msg("received interuption signal shutting down")
	case err = <-serverErr:
		logger = logger.With().Str(log.KeyProcess, "shutdown server").Logger()
		if err != nil {
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
		}
	}

	logger.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(c), shutdownTimeout)
	defer cancel()
	if err = httpServer.Shutdown(shutdownCtx); err != nil {
		err = fmt.Errorf("failed shutting down http server with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("shutdown http server")

	logger.Info().Msg("waiting for workers")
	stopWorkers()
	workers.Wait()
	logger.Info().Msg("workers stopped")
}
