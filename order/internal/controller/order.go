package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/foodhub/internal/errors"
	inHttp "github.com/Alturino/foodhub/internal/http"
	"github.com/Alturino/foodhub/internal/log"
	inOtel "github.com/Alturino/foodhub/internal/otel"
	"github.com/Alturino/foodhub/order/internal/otel"
	"github.com/Alturino/foodhub/order/internal/service"
	"github.com/Alturino/foodhub/order/pkg/request"
)

type OrderController struct {
	service *service.OrderService
}

func AttachOrderController(router *mux.Router, service *service.OrderService) {
	controller := OrderController{service: service}

	orders := router.PathPrefix("/orders").Subrouter()
	orders.HandleFunc("", controller.CreateOrder).Methods(http.MethodPost)
	orders.HandleFunc("", controller.FindOrdersByUserId).Methods(http.MethodGet)
	orders.HandleFunc("/{orderId}", controller.FindOrderById).Methods(http.MethodGet)
}

func (ctrl OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController CreateOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController CreateOrder").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	reqBody := request.CreateOrder{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = inErrors.NewValidationError("invalid order data: %s", err.Error())
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "")
		return
	}
	logger.Trace().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "creating order").Logger()
	logger.Info().Msg("creating order")
	c = logger.WithContext(c)
	order, err := ctrl.service.CreateOrder(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed creating order with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "Failed to create order")
		return
	}
	logger.Info().Str(log.KeyOrderID, order.ID.String()).Msg("created order")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK, order)
}

func (ctrl OrderController) FindOrdersByUserId(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrdersByUserId")
	defer span.End()

	userId := r.URL.Query().Get("userId")
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrdersByUserId").
		Str(log.KeyUserID, userId).
		Str(log.KeyProcess, "finding orders").
		Logger()

	logger.Info().Msgf("finding orders of userId=%s", userId)
	c = logger.WithContext(c)
	orders, err := ctrl.service.FindOrdersByUserId(c, userId)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "Failed to fetch orders")
		return
	}
	logger.Info().Msgf("found orders of userId=%s", userId)

	inHttp.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK, orders)
}

func (ctrl OrderController) FindOrderById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrderById").
		Str(log.KeyProcess, "validating orderId").
		Logger()

	logger.Trace().Msg("validating orderId")
	orderId, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		err = inErrors.NewValidationError("invalid orderId=%s", mux.Vars(r)["orderId"])
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "")
		return
	}
	logger = logger.With().Str(log.KeyOrderID, orderId.String()).Logger()
	logger.Trace().Msg("validated orderId")

	logger = logger.With().Str(log.KeyProcess, "finding order").Logger()
	logger.Info().Msg("finding order")
	c = logger.WithContext(c)
	order, err := ctrl.service.FindOrderById(c, orderId)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "Failed to fetch order")
		return
	}
	logger.Info().Msg("found order")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK, order)
}
