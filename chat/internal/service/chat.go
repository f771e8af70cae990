package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Alturino/foodhub/chat/internal/otel"
	"github.com/Alturino/foodhub/chat/internal/recommender"
	"github.com/Alturino/foodhub/chat/pkg/request"
	"github.com/Alturino/foodhub/chat/pkg/response"
	catalogResponse "github.com/Alturino/foodhub/catalog/pkg/response"
	inErrors "github.com/Alturino/foodhub/internal/errors"
	"github.com/Alturino/foodhub/internal/log"
	"github.com/Alturino/foodhub/internal/metrics"
	inOtel "github.com/Alturino/foodhub/internal/otel"
	"github.com/Alturino/foodhub/internal/validate"
)

const (
	FallbackReply     = "I'm having trouble right now, but I'm here to help you find great food! Try asking about specific cuisines or restaurants."
	FallbackRationale = "I'm having trouble processing your request right now. Please try asking about specific cuisines or dietary preferences!"

	OperationChat      = "chat"
	OperationRecommend = "recommend"
)

var errBlankReply = errors.New("recommender returned a blank reply")

type CatalogProvider interface {
	FindRestaurants(c context.Context, category string) ([]catalogResponse.Restaurant, error)
	FindMenuItems(c context.Context) ([]catalogResponse.MenuItem, error)
}

type Options struct {
	// Timeout bounds each recommender call. Zero means no bound beyond the request context.
	Timeout    time.Duration
	WindowSize int
}

type ChatService struct {
	sessions    *SessionService
	recommender recommender.Recommender
	catalog     CatalogProvider
	options     Options
	validate    *validator.Validate
	metrics     *metrics.Metrics
}

func NewChatService(
	sessions *SessionService,
	rec recommender.Recommender,
	catalog CatalogProvider,
	options Options,
	m *metrics.Metrics,
) *ChatService {
	if options.WindowSize <= 0 {
		options.WindowSize = DefaultWindowSize
	}
	return &ChatService{
		sessions:    sessions,
		recommender: rec,
		catalog:     catalog,
		options:     options,
		validate:    validate.New(),
		metrics:     m,
	}
}

func (s *ChatService) withTimeout(c context.Context) (context.Context, context.CancelFunc) {
	if s.options.Timeout <= 0 {
		return context.WithCancel(c)
	}
	return context.WithTimeout(c, s.options.Timeout)
}

// SendMessage stores the user message, asks the recommender for a reply and stores that reply.
// A recommender failure or a blank reply is absorbed: the fallback reply is stored and returned
// instead.
func (s *ChatService) SendMessage(c context.Context, param request.Chat) (response.Message, error) {
	c, span := otel.Tracer.Start(c, "ChatService SendMessage")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChatService SendMessage").
		Str(log.KeySessionID, param.SessionID).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request").Logger()
	if err := s.validate.StructCtx(c, param); err != nil {
		err = inErrors.NewValidationError("message and session id are required")
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return response.Message{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "appending user message").Logger()
	c = logger.WithContext(c)
	if _, err := s.sessions.AppendUserMessage(c, param.SessionID, param.Message); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Message{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "building conversation window").Logger()
	window, err := s.sessions.GetRecentWindow(c, param.SessionID, s.options.WindowSize)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Message{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "generating reply").Logger()
	logger.Trace().Msg("generating reply")
	rc, cancel := s.withTimeout(logger.WithContext(c))
	reply, err := s.recommender.Reply(rc, param.Message, window)
	cancel()
	if err == nil && strings.TrimSpace(reply) == "" {
		err = errBlankReply
	}
	if err != nil {
		err = fmt.Errorf("failed generating reply with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg("using fallback reply")
		s.metrics.RecommenderFailure(OperationChat)
		reply = FallbackReply
	} else {
		logger.Trace().Msg("generated reply")
	}

	logger = logger.With().Str(log.KeyProcess, "appending assistant message").Logger()
	msg, err := s.sessions.AppendAssistantMessage(c, param.SessionID, reply)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Message{}, err
	}
	logger.Info().Str(log.KeyMessageID, msg.ID.String()).Msg("appended assistant message")

	return msg, nil
}

func (s *ChatService) GetHistory(c context.Context, sessionId string) ([]response.Message, error) {
	return s.sessions.GetHistory(c, sessionId)
}

// Recommend asks the recommender for suggestions with the whole catalog as context. A recommender
// failure yields the fallback rationale and no suggestions.
func (s *ChatService) Recommend(
	c context.Context,
	param request.Recommend,
) (response.Recommendation, error) {
	c, span := otel.Tracer.Start(c, "ChatService Recommend")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChatService Recommend").
		Str(log.KeySessionID, param.SessionID).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request").Logger()
	if err := s.validate.StructCtx(c, param); err != nil {
		err = inErrors.ErrEmptyMessage
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return response.Recommendation{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "building catalog context").Logger()
	logger.Trace().Msg("building catalog context")
	c = logger.WithContext(c)
	restaurants, err := s.catalog.FindRestaurants(c, "")
	if err != nil {
		err = fmt.Errorf("failed finding restaurants with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Recommendation{}, err
	}
	menuItems, err := s.catalog.FindMenuItems(c)
	if err != nil {
		err = fmt.Errorf("failed finding menu items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Recommendation{}, err
	}
	catalog := &recommender.CatalogContext{Restaurants: restaurants, MenuItems: menuItems}
	logger.Trace().Msgf("built catalog context of %d restaurants and %d menu items", len(restaurants), len(menuItems))

	var window []recommender.Turn
	if param.SessionID != "" {
		logger = logger.With().Str(log.KeyProcess, "building conversation window").Logger()
		window, err = s.sessions.GetRecentWindow(c, param.SessionID, s.options.WindowSize)
		if err != nil {
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Recommendation{}, err
		}
	}

	logger = logger.With().Str(log.KeyProcess, "generating recommendation").Logger()
	logger.Trace().Msg("generating recommendation")
	rc, cancel := s.withTimeout(logger.WithContext(c))
	defer cancel()
	result, err := s.recommender.Recommend(rc, param.Message, window, catalog)
	if err != nil {
		err = fmt.Errorf("failed generating recommendation with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg("using fallback recommendation")
		s.metrics.RecommenderFailure(OperationRecommend)
		return response.Recommendation{Suggestions: []string{}, Rationale: FallbackRationale}, nil
	}
	logger.Info().Msgf("generated %d suggestions", len(result.Suggestions))

	return result, nil
}
