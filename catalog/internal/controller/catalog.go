package controller

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/foodhub/catalog/internal/otel"
	"github.com/Alturino/foodhub/catalog/internal/service"
	inHttp "github.com/Alturino/foodhub/internal/http"
	"github.com/Alturino/foodhub/internal/log"
	inOtel "github.com/Alturino/foodhub/internal/otel"
)

type CatalogController struct {
	service *service.CatalogService
}

func AttachCatalogController(router *mux.Router, service *service.CatalogService) {
	controller := CatalogController{service: service}

	restaurants := router.PathPrefix("/restaurants").Subrouter()
	restaurants.HandleFunc("", controller.FindRestaurants).Methods(http.MethodGet)
	restaurants.HandleFunc("/{restaurantId}", controller.FindRestaurantById).Methods(http.MethodGet)
	restaurants.HandleFunc("/{restaurantId}/menu", controller.FindMenuByRestaurantId).
		Methods(http.MethodGet)

	search := router.PathPrefix("/search").Subrouter()
	search.HandleFunc("/restaurants", controller.SearchRestaurants).Methods(http.MethodGet)
	search.HandleFunc("/menu-items", controller.SearchMenuItems).Methods(http.MethodGet)
}

func (ctrl CatalogController) FindRestaurants(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController FindRestaurants")
	defer span.End()

	category := r.URL.Query().Get("category")
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogController FindRestaurants").
		Str(log.KeyCategory, category).
		Str(log.KeyProcess, "finding restaurants").
		Logger()

	logger.Info().Msg("finding restaurants")
	c = logger.WithContext(c)
	restaurants, err := ctrl.service.FindRestaurants(c, category)
	if err != nil {
		err = fmt.Errorf("failed finding restaurants with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "Failed to fetch restaurants")
		return
	}
	logger.Info().Msg("found restaurants")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK, restaurants)
}

func (ctrl CatalogController) FindRestaurantById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController FindRestaurantById")
	defer span.End()

	restaurantId := mux.Vars(r)["restaurantId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogController FindRestaurantById").
		Str(log.KeyRestaurantID, restaurantId).
		Str(log.KeyProcess, "finding restaurant").
		Logger()

	logger.Info().Msgf("finding restaurantId=%s", restaurantId)
	c = logger.WithContext(c)
	restaurant, err := ctrl.service.FindRestaurantById(c, restaurantId)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "Failed to fetch restaurant")
		return
	}
	logger.Info().Msgf("found restaurantId=%s", restaurantId)

	inHttp.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK, restaurant)
}

func (ctrl CatalogController) FindMenuByRestaurantId(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController FindMenuByRestaurantId")
	defer span.End()

	restaurantId := mux.Vars(r)["restaurantId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogController FindMenuByRestaurantId").
		Str(log.KeyRestaurantID, restaurantId).
		Str(log.KeyProcess, "finding menu").
		Logger()

	logger.Info().Msgf("finding menu of restaurantId=%s", restaurantId)
	c = logger.WithContext(c)
	items, err := ctrl.service.FindMenuByRestaurantId(c, restaurantId)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "Failed to fetch menu items")
		return
	}
	logger.Info().Msgf("found menu of restaurantId=%s", restaurantId)

	inHttp.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK, items)
}

func (ctrl CatalogController) SearchRestaurants(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController SearchRestaurants")
	defer span.End()

	query := r.URL.Query().Get("q")
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogController SearchRestaurants").
		Str(log.KeyQuery, query).
		Str(log.KeyProcess, "searching restaurants").
		Logger()

	logger.Info().Msg("searching restaurants")
	c = logger.WithContext(c)
	restaurants, err := ctrl.service.SearchRestaurants(c, query)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "Failed to search restaurants")
		return
	}
	logger.Info().Msg("searched restaurants")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK, restaurants)
}

func (ctrl CatalogController) SearchMenuItems(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController SearchMenuItems")
	defer span.End()

	query := r.URL.Query().Get("q")
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogController SearchMenuItems").
		Str(log.KeyQuery, query).
		Str(log.KeyProcess, "searching menu items").
		Logger()

	logger.Info().Msg("searching menu items")
	c = logger.WithContext(c)
	items, err := ctrl.service.SearchMenuItems(c, query)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "Failed to search menu items")
		return
	}
	logger.Info().Msg("searched menu items")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK, items)
}
