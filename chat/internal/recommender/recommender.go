package recommender

import (
	"context"

	"github.com/sashabaranov/go-openai"

	"github.com/Alturino/foodhub/chat/pkg/response"
	catalogResponse "github.com/Alturino/foodhub/catalog/pkg/response"
)

const (
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

// Turn is one message of the conversation window sent to the model.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CatalogContext struct {
	Restaurants []catalogResponse.Restaurant `json:"restaurants"`
	MenuItems   []catalogResponse.MenuItem   `json:"menuItems"`
}

// Recommender is the language model behind the chat widget. Any error it returns is treated by
// callers as an external service failure.
type Recommender interface {
	Reply(c context.Context, message string, window []Turn) (string, error)
	Recommend(
		c context.Context,
		message string,
		window []Turn,
		catalog *CatalogContext,
	) (response.Recommendation, error)
}
