package middleware

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	inHttp "github.com/Alturino/foodhub/internal/http"
	"github.com/Alturino/foodhub/internal/log"
	"github.com/Alturino/foodhub/internal/otel"
)

func RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, span := otel.Tracer.Start(r.Context(), "middleware RecoverPanic")
		defer span.End()

		logger := zerolog.Ctx(c).With().Str(log.KeyTag, "middleware RecoverPanic").Logger()
		defer func() {
			if rec := recover(); rec != nil {
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				err = fmt.Errorf("recovered from panic with error=%w", err)
				otel.RecordError(err, span)
				logger.Error().Err(err).Stack().Msg(err.Error())
				inHttp.WriteJsonResponse(
					c,
					w,
					map[string]string{},
					http.StatusInternalServerError,
					inHttp.ErrorResponse{Message: inHttp.MessageInternalServerError},
				)
			}
		}()

		next.ServeHTTP(w, r.WithContext(c))
	})
}
