package request

type Chat struct {
	SessionID string `json:"sessionId" validate:"required"`
	Message   string `json:"message"   validate:"required"`
}

// Recommend asks for suggestions. SessionID is optional; when present the recent messages of that
// session are sent along as conversation context.
type Recommend struct {
	SessionID string `json:"sessionId,omitempty"`
	Message   string `json:"message"             validate:"required"`
}
