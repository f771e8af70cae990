package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Alturino/foodhub/chat/internal/otel"
	"github.com/Alturino/foodhub/chat/pkg/response"
)

type session struct {
	mu       sync.RWMutex
	messages []response.Message
}

type MemoryMessageRepository struct {
	mu       sync.RWMutex
	sessions map[string]*session
	now      func() time.Time
}

func NewMemoryMessageRepository() *MemoryMessageRepository {
	return &MemoryMessageRepository{sessions: map[string]*session{}, now: time.Now}
}

func (r *MemoryMessageRepository) lookup(sessionId string, create bool) *session {
	r.mu.RLock()
	s, ok := r.sessions[sessionId]
	r.mu.RUnlock()
	if ok || !create {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok = r.sessions[sessionId]; ok {
		return s
	}
	s = &session{}
	r.sessions[sessionId] = s
	return s
}

func (r *MemoryMessageRepository) Append(
	c context.Context,
	sessionId string,
	body string,
	isBot bool,
) (response.Message, error) {
	_, span := otel.Tracer.Start(c, "MemoryMessageRepository Append")
	defer span.End()

	s := r.lookup(sessionId, true)
	s.mu.Lock()
	defer s.mu.Unlock()

	var last *response.Message
	if n := len(s.messages); n > 0 {
		last = &s.messages[n-1]
	}
	msg := newMessage(sessionId, body, isBot, r.now(), last)
	s.messages = append(s.messages, msg)
	return msg, nil
}

func (r *MemoryMessageRepository) FindBySessionId(
	c context.Context,
	sessionId string,
) ([]response.Message, error) {
	return r.FindRecentBySessionId(c, sessionId, 0)
}

// FindRecentBySessionId returns the last limit messages, oldest first. A limit of zero or less
// returns the whole history.
func (r *MemoryMessageRepository) FindRecentBySessionId(
	c context.Context,
	sessionId string,
	limit int,
) ([]response.Message, error) {
	_, span := otel.Tracer.Start(c, "MemoryMessageRepository FindRecentBySessionId")
	defer span.End()

	s := r.lookup(sessionId, false)
	if s == nil {
		return []response.Message{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	start := 0
	if limit > 0 && len(s.messages) > limit {
		start = len(s.messages) - limit
	}
	messages := slices.Clone(s.messages[start:])
	if messages == nil {
		messages = []response.Message{}
	}
	return messages, nil
}
