package controller

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/foodhub/chat/internal/otel"
	"github.com/Alturino/foodhub/chat/internal/service"
	"github.com/Alturino/foodhub/chat/pkg/request"
	inErrors "github.com/Alturino/foodhub/internal/errors"
	inHttp "github.com/Alturino/foodhub/internal/http"
	"github.com/Alturino/foodhub/internal/log"
	inOtel "github.com/Alturino/foodhub/internal/otel"
)

type ChatController struct {
	service *service.ChatService
}

func AttachChatController(router *mux.Router, service *service.ChatService) {
	controller := ChatController{service: service}

	router.HandleFunc("/chat", controller.SendMessage).Methods(http.MethodPost)
	router.HandleFunc("/chat/{sessionId}", controller.GetHistory).Methods(http.MethodGet)
	router.HandleFunc("/recommendations", controller.Recommend).Methods(http.MethodPost)
}

func (ctrl ChatController) SendMessage(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ChatController SendMessage")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChatController SendMessage").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	reqBody := request.Chat{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = inErrors.NewValidationError("invalid request body: %s", err.Error())
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "")
		return
	}
	logger.Trace().Msg("decoded request body")

	logger = logger.With().
		Str(log.KeyProcess, "sending message").
		Str(log.KeySessionID, reqBody.SessionID).
		Logger()
	logger.Info().Msg("sending message")
	c = logger.WithContext(c)
	msg, err := ctrl.service.SendMessage(c, reqBody)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "Failed to process chat message")
		return
	}
	logger.Info().Str(log.KeyMessageID, msg.ID.String()).Msg("sent message")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK, msg)
}

func (ctrl ChatController) GetHistory(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ChatController GetHistory")
	defer span.End()

	sessionId := mux.Vars(r)["sessionId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChatController GetHistory").
		Str(log.KeySessionID, sessionId).
		Str(log.KeyProcess, "finding chat history").
		Logger()

	logger.Info().Msg("finding chat history")
	c = logger.WithContext(c)
	messages, err := ctrl.service.GetHistory(c, sessionId)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "Failed to fetch chat history")
		return
	}
	logger.Info().Msgf("found %d messages", len(messages))

	inHttp.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK, messages)
}

func (ctrl ChatController) Recommend(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ChatController Recommend")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChatController Recommend").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	reqBody := request.Recommend{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = inErrors.NewValidationError("invalid request body: %s", err.Error())
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "")
		return
	}
	logger.Trace().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "recommending").Logger()
	logger.Info().Msg("recommending")
	c = logger.WithContext(c)
	result, err := ctrl.service.Recommend(c, reqBody)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err, "Failed to get recommendations")
		return
	}
	logger.Info().Msgf("recommended %d suggestions", len(result.Suggestions))

	inHttp.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK, result)
}
