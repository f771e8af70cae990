package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/foodhub/internal/errors"
	"github.com/Alturino/foodhub/internal/log"
	"github.com/Alturino/foodhub/internal/otel"
)

const MessageInternalServerError = "Internal Server Error"

type ErrorResponse struct {
	Message string `json:"message"`
}

func WriteJsonResponse(
	c context.Context,
	w http.ResponseWriter,
	header map[string]string,
	statusCode int,
	body any,
) {
	c, span := otel.Tracer.Start(c, "WriteJsonResponse")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "WriteJsonResponse").Logger()

	w.Header().Set(HeaderContentType, HeaderValueJson)
	for k, v := range header {
		w.Header().Add(k, v)
	}
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msgf("failed encode response body with error=%s", err.Error())
	}
}

// StatusCode maps an error of the domain taxonomy onto an HTTP status.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, inErrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, inErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, inErrors.ErrExternalService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage returns the user facing message for err. Server side failures never leak
// their cause.
func ErrorMessage(err error, fallback string) string {
	switch StatusCode(err) {
	case http.StatusBadRequest, http.StatusNotFound:
		return err.Error()
	default:
		if fallback == "" {
			return MessageInternalServerError
		}
		return fallback
	}
}

func WriteErrorResponse(c context.Context, w http.ResponseWriter, err error, fallback string) {
	WriteJsonResponse(
		c,
		w,
		map[string]string{},
		StatusCode(err),
		ErrorResponse{Message: ErrorMessage(err, fallback)},
	)
}
