package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Alturino/foodhub/chat/pkg/response"
)

// MessageRepository keeps append-only message histories per session. Appends to one session are
// serialized and a message's createdAt is never earlier than the one before it.
type MessageRepository interface {
	Append(c context.Context, sessionId string, body string, isBot bool) (response.Message, error)
	FindBySessionId(c context.Context, sessionId string) ([]response.Message, error)
	FindRecentBySessionId(c context.Context, sessionId string, limit int) ([]response.Message, error)
}

func newMessage(
	sessionId string,
	body string,
	isBot bool,
	now time.Time,
	last *response.Message,
) response.Message {
	if last != nil && now.Before(last.CreatedAt) {
		now = last.CreatedAt
	}
	return response.Message{
		ID:        uuid.New(),
		SessionID: sessionId,
		Body:      body,
		IsBot:     isBot,
		CreatedAt: now,
	}
}
