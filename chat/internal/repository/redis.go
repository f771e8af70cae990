package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Alturino/foodhub/chat/internal/otel"
	"github.com/Alturino/foodhub/chat/pkg/response"
	inErrors "github.com/Alturino/foodhub/internal/errors"
	inOtel "github.com/Alturino/foodhub/internal/otel"
)

const KeySession = "chat:sessions:%s"

// appendScript pushes ARGV[2] wrapped in a storedMessage whose ts is ARGV[1] clamped to the ts of
// the last element, and returns that ts. The script runs atomically, so appends to one session
// are serialized.
var appendScript = redis.NewScript(`
local ts = tonumber(ARGV[1])
local last = redis.call('LINDEX', KEYS[1], -1)
if last then
  local prev = cjson.decode(last).ts
  if prev > ts then ts = prev end
end
redis.call('RPUSH', KEYS[1], '{"ts":' .. string.format('%.0f', ts) .. ',"message":' .. ARGV[2] .. '}')
return ts
`)

// storedMessage is a list element. Ts is the message's createdAt in unix microseconds and
// overrides the createdAt inside Message.
type storedMessage struct {
	Ts      int64            `json:"ts"`
	Message response.Message `json:"message"`
}

func (s storedMessage) message() response.Message {
	msg := s.Message
	msg.CreatedAt = time.UnixMicro(s.Ts).UTC()
	return msg
}

// RedisMessageRepository stores each session as a list of JSON encoded messages.
type RedisMessageRepository struct {
	cache *redis.Client
	now   func() time.Time
}

func NewRedisMessageRepository(cache *redis.Client) *RedisMessageRepository {
	return &RedisMessageRepository{cache: cache, now: time.Now}
}

func (r *RedisMessageRepository) Append(
	c context.Context,
	sessionId string,
	body string,
	isBot bool,
) (response.Message, error) {
	c, span := otel.Tracer.Start(c, "RedisMessageRepository Append")
	defer span.End()

	msg := newMessage(sessionId, body, isBot, r.now(), nil)
	encoded, err := json.Marshal(msg)
	if err != nil {
		err = fmt.Errorf("failed marshalling messageId=%s with error=%w", msg.ID, err)
		inOtel.RecordError(err, span)
		return response.Message{}, inErrors.NewStorageError(err)
	}

	key := fmt.Sprintf(KeySession, sessionId)
	ts, err := appendScript.Run(c, r.cache, []string{key}, msg.CreatedAt.UnixMicro(), encoded).Int64()
	if err != nil {
		err = fmt.Errorf("failed appending message to sessionId=%s with error=%w", sessionId, err)
		inOtel.RecordError(err, span)
		return response.Message{}, inErrors.NewStorageError(err)
	}
	return storedMessage{Ts: ts, Message: msg}.message(), nil
}

func (r *RedisMessageRepository) FindBySessionId(
	c context.Context,
	sessionId string,
) ([]response.Message, error) {
	return r.FindRecentBySessionId(c, sessionId, 0)
}

func (r *RedisMessageRepository) FindRecentBySessionId(
	c context.Context,
	sessionId string,
	limit int,
) ([]response.Message, error) {
	c, span := otel.Tracer.Start(c, "RedisMessageRepository FindRecentBySessionId")
	defer span.End()

	start := int64(0)
	if limit > 0 {
		start = -int64(limit)
	}
	values, err := r.cache.LRange(c, fmt.Sprintf(KeySession, sessionId), start, -1).Result()
	if err != nil {
		err = fmt.Errorf("failed listing messages of sessionId=%s with error=%w", sessionId, err)
		inOtel.RecordError(err, span)
		return nil, inErrors.NewStorageError(err)
	}

	messages := make([]response.Message, 0, len(values))
	for _, v := range values {
		stored := storedMessage{}
		if err = json.Unmarshal([]byte(v), &stored); err != nil {
			err = fmt.Errorf("failed unmarshalling message of sessionId=%s with error=%w", sessionId, err)
			inOtel.RecordError(err, span)
			return nil, inErrors.NewStorageError(err)
		}
		messages = append(messages, stored.message())
	}
	return messages, nil
}
