package cmd

import (
	"context"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/foodhub/catalog/internal/controller"
	"github.com/Alturino/foodhub/catalog/internal/otel"
	"github.com/Alturino/foodhub/catalog/internal/repository"
	"github.com/Alturino/foodhub/catalog/internal/service"
	"github.com/Alturino/foodhub/internal/log"
)

// AttachCatalog seeds the catalog and mounts its routes on every router. The returned service is
// read by the cart and chat components.
func AttachCatalog(c context.Context, routers ...*mux.Router) *service.CatalogService {
	c, span := otel.Tracer.Start(c, "AttachCatalog")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main AttachCatalog").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing catalog service").Logger()
	logger.Info().Msg("initializing catalog service")
	svc := service.NewCatalogService(repository.NewCatalogRepository())
	logger.Info().Msg("initialized catalog service")

	logger = logger.With().Str(log.KeyProcess, "initializing catalog controller").Logger()
	logger.Info().Msg("initializing catalog controller")
	for _, router := range routers {
		controller.AttachCatalogController(router, svc)
	}
	logger.Info().Msg("initialized catalog controller")

	return svc
}
