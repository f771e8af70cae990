package response

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID        uuid.UUID `json:"id"`
	SessionID string    `json:"sessionId"`
	Body      string    `json:"message"`
	IsBot     bool      `json:"isBot"`
	CreatedAt time.Time `json:"createdAt"`
}

type Recommendation struct {
	Suggestions []string `json:"suggestions"`
	Rationale   string   `json:"rationale"`
}
