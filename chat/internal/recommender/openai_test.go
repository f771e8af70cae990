package recommender

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogResponse "github.com/Alturino/foodhub/catalog/pkg/response"
	"github.com/Alturino/foodhub/internal/config"
	inErrors "github.com/Alturino/foodhub/internal/errors"
)

type fakeCompletions struct {
	mu       sync.Mutex
	status   int
	content  string
	requests []openai.ChatCompletionRequest
}

func (f *fakeCompletions) received() []openai.ChatCompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

func (f *fakeCompletions) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := openai.ChatCompletionRequest{}
	_ = json.NewDecoder(r.Body).Decode(&req)
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if f.status != http.StatusOK {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded","type":"insufficient_quota"}}`))
		return
	}
	_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
		ID:    "chatcmpl-1",
		Model: req.Model,
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Role: RoleAssistant, Content: f.content},
		}},
	})
}

func newRecommender(t *testing.T, fake *fakeCompletions) *OpenAIRecommender {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return NewOpenAIRecommender(config.Recommender{
		APIKey:        "test",
		BaseURL:       srv.URL,
		Model:         "gpt-4o",
		ChatMaxTokens: 200,
	})
}

func TestReply(t *testing.T) {
	tests := []struct {
		name             string
		content          string
		window           []Turn
		expected         string
		expectedMessages int
	}{
		{
			name:             "given window ending with the message should not repeat it",
			content:          "Try the Spicy Tuna Roll!",
			window:           []Turn{{Role: RoleUser, Content: "hi"}, {Role: RoleAssistant, Content: "hello"}, {Role: RoleUser, Content: "sushi?"}},
			expected:         "Try the Spicy Tuna Roll!",
			expectedMessages: 4,
		},
		{
			name:             "given empty window should append the message",
			content:          "Pizza it is.",
			expected:         "Pizza it is.",
			expectedMessages: 2,
		},
		{
			name:             "given empty completion should be the default reply",
			window:           []Turn{{Role: RoleUser, Content: "sushi?"}},
			expected:         DefaultReply,
			expectedMessages: 2,
		},
		{
			name:             "given whitespace completion should be the default reply",
			content:          "  \n",
			window:           []Turn{{Role: RoleUser, Content: "sushi?"}},
			expected:         DefaultReply,
			expectedMessages: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCompletions{status: http.StatusOK, content: tt.content}
			rec := newRecommender(t, fake)

			message := "sushi?"
			if len(tt.window) == 0 {
				message = "pizza?"
			}
			reply, err := rec.Reply(context.Background(), message, tt.window)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, reply)

			requests := fake.received()
			require.Len(t, requests, 1)
			req := requests[0]
			assert.Equal(t, "gpt-4o", req.Model)
			assert.Equal(t, 200, req.MaxTokens)
			require.Len(t, req.Messages, tt.expectedMessages)
			assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
			assert.Equal(t, message, req.Messages[len(req.Messages)-1].Content)
		})
	}
}

func TestReplyFailure(t *testing.T) {
	rec := newRecommender(t, &fakeCompletions{status: http.StatusTooManyRequests})
	_, err := rec.Reply(context.Background(), "sushi?", nil)
	assert.ErrorIs(t, err, inErrors.ErrExternalService)
}

func TestRecommend(t *testing.T) {
	catalog := &CatalogContext{
		Restaurants: []catalogResponse.Restaurant{{ID: "1", Name: "Tokyo Sushi Bar", Cuisine: "Japanese"}},
		MenuItems:   []catalogResponse.MenuItem{{ID: "m1", RestaurantID: "1", Name: "Salmon Avocado Roll"}},
	}

	tests := []struct {
		name              string
		content           string
		catalog           *CatalogContext
		expected          []string
		expectedRationale string
	}{
		{
			name:              "given full answer should map suggestions and rationale",
			content:           `{"recommendations":["Salmon Avocado Roll"],"reasoning":"Fresh and light."}`,
			catalog:           catalog,
			expected:          []string{"Salmon Avocado Roll"},
			expectedRationale: "Fresh and light.",
		},
		{
			name:              "given missing fields should use defaults",
			content:           `{}`,
			expected:          []string{},
			expectedRationale: DefaultRationale,
		},
		{
			name:              "given empty completion should use defaults",
			expected:          []string{},
			expectedRationale: DefaultRationale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCompletions{status: http.StatusOK, content: tt.content}
			rec := newRecommender(t, fake)

			result, err := rec.Recommend(context.Background(), "something light", nil, tt.catalog)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Suggestions)
			assert.Equal(t, tt.expectedRationale, result.Rationale)

			requests := fake.received()
			require.Len(t, requests, 1)
			req := requests[0]
			require.NotNil(t, req.ResponseFormat)
			assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, req.ResponseFormat.Type)
			system := req.Messages[0].Content
			if tt.catalog != nil {
				assert.Contains(t, system, "Tokyo Sushi Bar")
			} else {
				assert.Contains(t, system, noCatalogContext)
			}
		})
	}
}

func TestRecommendFailure(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeCompletions
	}{
		{name: "given api error should fail", fake: &fakeCompletions{status: http.StatusInternalServerError}},
		{name: "given malformed json should fail", fake: &fakeCompletions{status: http.StatusOK, content: "not json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecommender(t, tt.fake)
			_, err := rec.Recommend(context.Background(), "something light", nil, nil)
			assert.ErrorIs(t, err, inErrors.ErrExternalService)
		})
	}
}
