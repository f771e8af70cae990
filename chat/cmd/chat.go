package cmd

import (
	"context"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/foodhub/chat/internal/controller"
	"github.com/Alturino/foodhub/chat/internal/otel"
	"github.com/Alturino/foodhub/chat/internal/recommender"
	"github.com/Alturino/foodhub/chat/internal/repository"
	"github.com/Alturino/foodhub/chat/internal/service"
	"github.com/Alturino/foodhub/internal/config"
	"github.com/Alturino/foodhub/internal/log"
	"github.com/Alturino/foodhub/internal/metrics"
)

type Dependencies struct {
	// Cache selects the redis repository when set, the in-memory one otherwise.
	Cache       *redis.Client
	Recommender config.Recommender
	Metrics     *metrics.Metrics
}

func AttachChat(
	c context.Context,
	deps Dependencies,
	catalog service.CatalogProvider,
	routers ...*mux.Router,
) *service.ChatService {
	c, span := otel.Tracer.Start(c, "AttachChat")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main AttachChat").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing message repository").Logger()
	logger.Info().Msg("initializing message repository")
	var repo repository.MessageRepository = repository.NewMemoryMessageRepository()
	if deps.Cache != nil {
		repo = repository.NewRedisMessageRepository(deps.Cache)
	}
	logger.Info().Msgf("initialized message repository %T", repo)

	logger = logger.With().
		Str(log.KeyProcess, "initializing recommender").
		Str(log.KeyModel, deps.Recommender.Model).
		Logger()
	logger.Info().Msg("initializing recommender")
	if deps.Recommender.APIKey == "" {
		logger.Warn().Msg("recommender api key is empty, every reply will be the fallback")
	}
	rec := recommender.NewOpenAIRecommender(deps.Recommender)
	logger.Info().Msg("initialized recommender")

	logger = logger.With().Str(log.KeyProcess, "initializing chat controller").Logger()
	logger.Info().Msg("initializing chat controller")
	svc := service.NewChatService(
		service.NewSessionService(repo, deps.Metrics),
		rec,
		catalog,
		service.Options{Timeout: deps.Recommender.Timeout, WindowSize: deps.Recommender.HistoryLimit},
		deps.Metrics,
	)
	for _, router := range routers {
		controller.AttachChatController(router, svc)
	}
	logger.Info().Msg("initialized chat controller")

	return svc
}
