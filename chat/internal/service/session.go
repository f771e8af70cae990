package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Alturino/foodhub/chat/internal/otel"
	"github.com/Alturino/foodhub/chat/internal/recommender"
	"github.com/Alturino/foodhub/chat/internal/repository"
	"github.com/Alturino/foodhub/chat/pkg/response"
	inErrors "github.com/Alturino/foodhub/internal/errors"
	"github.com/Alturino/foodhub/internal/log"
	"github.com/Alturino/foodhub/internal/metrics"
	inOtel "github.com/Alturino/foodhub/internal/otel"
)

const DefaultWindowSize = 10

type SessionService struct {
	repo    repository.MessageRepository
	metrics *metrics.Metrics
}

func NewSessionService(repo repository.MessageRepository, m *metrics.Metrics) *SessionService {
	return &SessionService{repo: repo, metrics: m}
}

func (s *SessionService) AppendUserMessage(
	c context.Context,
	sessionId string,
	body string,
) (response.Message, error) {
	c, span := otel.Tracer.Start(c, "SessionService AppendUserMessage")
	defer span.End()

	return s.append(c, sessionId, body, false)
}

func (s *SessionService) AppendAssistantMessage(
	c context.Context,
	sessionId string,
	body string,
) (response.Message, error) {
	c, span := otel.Tracer.Start(c, "SessionService AppendAssistantMessage")
	defer span.End()

	return s.append(c, sessionId, body, true)
}

func (s *SessionService) append(
	c context.Context,
	sessionId string,
	body string,
	isBot bool,
) (response.Message, error) {
	role := metrics.RoleUser
	if isBot {
		role = metrics.RoleAssistant
	}

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SessionService append").
		Str(log.KeySessionID, sessionId).
		Str(log.KeyProcess, "appending "+role+" message").
		Logger()

	if strings.TrimSpace(sessionId) == "" {
		logger.Info().Err(inErrors.ErrEmptySessionID).Msg(inErrors.ErrEmptySessionID.Error())
		return response.Message{}, inErrors.ErrEmptySessionID
	}
	if strings.TrimSpace(body) == "" {
		logger.Info().Err(inErrors.ErrEmptyMessage).Msg(inErrors.ErrEmptyMessage.Error())
		return response.Message{}, inErrors.ErrEmptyMessage
	}

	logger.Trace().Msgf("appending %s message", role)
	msg, err := s.repo.Append(c, sessionId, body, isBot)
	if err != nil {
		err = fmt.Errorf("failed appending %s message with error=%w", role, err)
		logger.Error().Err(err).Msg(err.Error())
		return response.Message{}, err
	}
	s.metrics.ChatMessage(role)
	logger.Trace().Str(log.KeyMessageID, msg.ID.String()).Msgf("appended %s message", role)

	return msg, nil
}

// GetHistory returns every message of the session, oldest first. An unknown session has an empty
// history.
func (s *SessionService) GetHistory(c context.Context, sessionId string) ([]response.Message, error) {
	c, span := otel.Tracer.Start(c, "SessionService GetHistory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SessionService GetHistory").
		Str(log.KeySessionID, sessionId).
		Str(log.KeyProcess, "finding messages").
		Logger()

	logger.Trace().Msg("finding messages")
	messages, err := s.repo.FindBySessionId(c, sessionId)
	if err != nil {
		err = fmt.Errorf("failed finding messages with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Trace().Msgf("found %d messages", len(messages))

	return messages, nil
}

// GetRecentWindow returns the last limit messages as model turns, oldest first. A limit of zero or
// less uses DefaultWindowSize.
func (s *SessionService) GetRecentWindow(
	c context.Context,
	sessionId string,
	limit int,
) ([]recommender.Turn, error) {
	c, span := otel.Tracer.Start(c, "SessionService GetRecentWindow")
	defer span.End()

	if limit <= 0 {
		limit = DefaultWindowSize
	}

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SessionService GetRecentWindow").
		Str(log.KeySessionID, sessionId).
		Int(log.KeyWindowSize, limit).
		Str(log.KeyProcess, "finding recent messages").
		Logger()

	logger.Trace().Msg("finding recent messages")
	messages, err := s.repo.FindRecentBySessionId(c, sessionId, limit)
	if err != nil {
		err = fmt.Errorf("failed finding recent messages with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Trace().Msgf("found %d recent messages", len(messages))

	window := make([]recommender.Turn, 0, len(messages))
	for _, msg := range messages {
		role := recommender.RoleUser
		if msg.IsBot {
			role = recommender.RoleAssistant
		}
		window = append(window, recommender.Turn{Role: role, Content: msg.Body})
	}
	return window, nil
}
