package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/foodhub/cart/internal/otel"
	"github.com/Alturino/foodhub/cart/internal/service"
	"github.com/Alturino/foodhub/cart/pkg/request"
	"github.com/Alturino/foodhub/cart/pkg/response"
	inErrors "github.com/Alturino/foodhub/internal/errors"
	inHttp "github.com/Alturino/foodhub/internal/http"
	"github.com/Alturino/foodhub/internal/log"
	inOtel "github.com/Alturino/foodhub/internal/otel"
)

type CartController struct {
	service *service.CartService
}

func AttachCartController(router *mux.Router, service *service.CartService) {
	controller := CartController{service: service}

	carts := router.PathPrefix("/carts").Subrouter()
	carts.HandleFunc("/{cartId}", controller.FindCartById).Methods(http.MethodGet)
	carts.HandleFunc("/{cartId}", controller.Clear).Methods(http.MethodDelete)
	carts.HandleFunc("/{cartId}/items", controller.AddItem).Methods(http.MethodPost)
	carts.HandleFunc("/{cartId}/items/{lineId}", controller.UpdateQuantity).Methods(http.MethodPut)
	carts.HandleFunc("/{cartId}/items/{lineId}", controller.RemoveItem).Methods(http.MethodDelete)
	carts.HandleFunc("/{cartId}/open", controller.Open).Methods(http.MethodPost)
	carts.HandleFunc("/{cartId}/close", controller.Close).Methods(http.MethodPost)
	carts.HandleFunc("/{cartId}/checkout", controller.Checkout).Methods(http.MethodPost)
}

func (ctrl CartController) FindCartById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCartById")
	defer span.End()

	cartId := mux.Vars(r)["cartId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController FindCartById").
		Str(log.KeyCartID, cartId).
		Str(log.KeyProcess, "finding cart").
		Logger()

	logger.Info().Msgf("finding cartId=%s", cartId)
	c = logger.WithContext(c)
	cart, err := ctrl.service.FindCartById(c, cartId)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "Failed to fetch cart")
		return
	}
	logger.Info().Msgf("found cartId=%s", cartId)

	inHttp.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK, cart)
}

func (ctrl CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddItem")
	defer span.End()

	cartId := mux.Vars(r)["cartId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddItem").
		Str(log.KeyCartID, cartId).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	reqBody := request.AddItem{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = inErrors.NewValidationError("invalid request body: %s", err.Error())
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "")
		return
	}
	logger.Trace().Msg("decoded request body")

	logger = logger.With().
		Str(log.KeyProcess, "adding item").
		Str(log.KeyMenuItemID, reqBody.MenuItemID).
		Logger()
	logger.Info().Msg("adding item")
	c = logger.WithContext(c)
	cart, err := ctrl.service.AddItem(c, cartId, reqBody)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "Failed to add item to cart")
		return
	}
	logger.Info().Msg("added item")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK, cart)
}

func (ctrl CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController UpdateQuantity")
	defer span.End()

	cartId := mux.Vars(r)["cartId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController UpdateQuantity").
		Str(log.KeyCartID, cartId).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating lineId").Logger()
	lineId, err := parseLineId(r)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "")
		return
	}
	logger = logger.With().Str(log.KeyLineID, lineId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	reqBody := request.UpdateQuantity{}
	if err = json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = inErrors.NewValidationError("invalid request body: %s", err.Error())
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "")
		return
	}
	logger.Trace().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "updating quantity").Logger()
	logger.Info().Msg("updating quantity")
	c = logger.WithContext(c)
	cart, err := ctrl.service.UpdateQuantity(c, cartId, lineId, reqBody)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "Failed to update cart")
		return
	}
	logger.Info().Msg("updated quantity")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK, cart)
}

func (ctrl CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveItem")
	defer span.End()

	cartId := mux.Vars(r)["cartId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveItem").
		Str(log.KeyCartID, cartId).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating lineId").Logger()
	lineId, err := parseLineId(r)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "")
		return
	}

	logger = logger.With().
		Str(log.KeyProcess, "removing item").
		Str(log.KeyLineID, lineId.String()).
		Logger()
	logger.Info().Msg("removing item")
	c = logger.WithContext(c)
	cart, err := ctrl.service.RemoveItem(c, cartId, lineId)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "Failed to update cart")
		return
	}
	logger.Info().Msg("removed item")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK, cart)
}

func (ctrl CartController) Clear(w http.ResponseWriter, r *http.Request) {
	ctrl.toggle(w, r, "Clear", ctrl.service.Clear)
}

func (ctrl CartController) Open(w http.ResponseWriter, r *http.Request) {
	ctrl.toggle(w, r, "Open", ctrl.service.Open)
}

func (ctrl CartController) Close(w http.ResponseWriter, r *http.Request) {
	ctrl.toggle(w, r, "Close", ctrl.service.Close)
}

func (ctrl CartController) toggle(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	fn func(c context.Context, cartId string) (response.Cart, error),
) {
	tag := "CartController " + name
	c, span := otel.Tracer.Start(r.Context(), tag)
	defer span.End()

	cartId := mux.Vars(r)["cartId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, tag).
		Str(log.KeyCartID, cartId).
		Str(log.KeyProcess, name).
		Logger()

	logger.Info().Msgf("applying %s to cartId=%s", name, cartId)
	c = logger.WithContext(c)
	cart, err := fn(c, cartId)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "Failed to update cart")
		return
	}
	logger.Info().Msgf("applied %s to cartId=%s", name, cartId)

	inHttp.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK, cart)
}

func (ctrl CartController) Checkout(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController Checkout")
	defer span.End()

	cartId := mux.Vars(r)["cartId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController Checkout").
		Str(log.KeyCartID, cartId).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	reqBody := request.Checkout{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = inErrors.NewValidationError("invalid request body: %s", err.Error())
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "")
		return
	}
	logger.Trace().Msg("decoded request body")

	logger = logger.With().
		Str(log.KeyProcess, "checking out cart").
		Str(log.KeyUserID, reqBody.UserID).
		Logger()
	logger.Info().Msg("checking out cart")
	c = logger.WithContext(c)
	order, err := ctrl.service.Checkout(c, cartId, reqBody)
	if err != nil {
		err = fmt.Errorf("failed checking out cartId=%s with error=%w", cartId, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "Failed to create order")
		return
	}
	logger.Info().Str(log.KeyOrderID, order.ID.String()).Msg("checked out cart")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK, order)
}

func parseLineId(r *http.Request) (uuid.UUID, error) {
	raw := mux.Vars(r)["lineId"]
	lineId, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, inErrors.NewValidationError("invalid lineId=%s", raw)
	}
	return lineId, nil
}
