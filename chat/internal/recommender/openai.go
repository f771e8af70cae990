package recommender

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Alturino/foodhub/chat/internal/otel"
	"github.com/Alturino/foodhub/chat/pkg/response"
	"github.com/Alturino/foodhub/internal/config"
	inErrors "github.com/Alturino/foodhub/internal/errors"
	"github.com/Alturino/foodhub/internal/log"
	inOtel "github.com/Alturino/foodhub/internal/otel"
)

var errEmptyChoices = errors.New("completion has no choices")

type OpenAIRecommender struct {
	client        *openai.Client
	model         string
	chatMaxTokens int
}

func NewOpenAIRecommender(cfg config.Recommender) *OpenAIRecommender {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

	return &OpenAIRecommender{
		client:        openai.NewClientWithConfig(clientConfig),
		model:         cfg.Model,
		chatMaxTokens: cfg.ChatMaxTokens,
	}
}

// Reply answers a free form chat message. The window is sent as prior turns; message is appended
// as the final user turn unless the window already ends with it.
func (r *OpenAIRecommender) Reply(c context.Context, message string, window []Turn) (string, error) {
	c, span := otel.Tracer.Start(c, "OpenAIRecommender Reply")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OpenAIRecommender Reply").
		Str(log.KeyModel, r.model).
		Int(log.KeyWindowSize, len(window)).
		Logger()

	messages := make([]openai.ChatCompletionMessage, 0, len(window)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: chatSystemPrompt,
	})
	for _, turn := range window {
		messages = append(messages, openai.ChatCompletionMessage{Role: turn.Role, Content: turn.Content})
	}
	if n := len(window); n == 0 || window[n-1].Role != RoleUser || window[n-1].Content != message {
		messages = append(messages, openai.ChatCompletionMessage{Role: RoleUser, Content: message})
	}

	logger = logger.With().Str(log.KeyProcess, "creating chat completion").Logger()
	logger.Trace().Msg("creating chat completion")
	resp, err := r.client.CreateChatCompletion(c, openai.ChatCompletionRequest{
		Model:     r.model,
		Messages:  messages,
		MaxTokens: r.chatMaxTokens,
	})
	if err != nil {
		err = fmt.Errorf("failed creating chat completion with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", inErrors.NewExternalServiceError(err)
	}
	if len(resp.Choices) == 0 {
		err = inErrors.NewExternalServiceError(errEmptyChoices)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Trace().Msg("created chat completion")

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return DefaultReply, nil
	}
	return content, nil
}

type completionRecommendation struct {
	Recommendations []string `json:"recommendations"`
	Reasoning       string   `json:"reasoning"`
}

// Recommend asks the model for a JSON object of suggestions grounded on the catalog. A nil catalog
// falls back to the model's general food knowledge.
func (r *OpenAIRecommender) Recommend(
	c context.Context,
	message string,
	window []Turn,
	catalog *CatalogContext,
) (response.Recommendation, error) {
	c, span := otel.Tracer.Start(c, "OpenAIRecommender Recommend")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OpenAIRecommender Recommend").
		Str(log.KeyModel, r.model).
		Int(log.KeyWindowSize, len(window)).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "building prompt").Logger()
	catalogPrompt := noCatalogContext
	if catalog != nil {
		body, err := json.Marshal(catalog)
		if err != nil {
			err = fmt.Errorf("failed marshalling catalog context with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Recommendation{}, inErrors.NewExternalServiceError(err)
		}
		catalogPrompt = string(body)
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(window)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: fmt.Sprintf(recommendSystemPrompt, catalogPrompt),
	})
	for _, turn := range window {
		messages = append(messages, openai.ChatCompletionMessage{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: RoleUser, Content: message})

	logger = logger.With().Str(log.KeyProcess, "creating recommendation completion").Logger()
	logger.Trace().Msg("creating recommendation completion")
	resp, err := r.client.CreateChatCompletion(c, openai.ChatCompletionRequest{
		Model:    r.model,
		Messages: messages,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		err = fmt.Errorf("failed creating recommendation completion with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Recommendation{}, inErrors.NewExternalServiceError(err)
	}
	if len(resp.Choices) == 0 {
		err = inErrors.NewExternalServiceError(errEmptyChoices)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Recommendation{}, err
	}
	logger.Trace().Msg("created recommendation completion")

	logger = logger.With().Str(log.KeyProcess, "parsing recommendation").Logger()
	content := resp.Choices[0].Message.Content
	if content == "" {
		content = "{}"
	}
	parsed := completionRecommendation{}
	if err = json.Unmarshal([]byte(content), &parsed); err != nil {
		err = fmt.Errorf("failed parsing recommendation with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Recommendation{}, inErrors.NewExternalServiceError(err)
	}

	result := response.Recommendation{
		Suggestions: parsed.Recommendations,
		Rationale:   parsed.Reasoning,
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	if result.Rationale == "" {
		result.Rationale = DefaultRationale
	}
	logger.Trace().Msgf("parsed %d suggestions", len(result.Suggestions))

	return result, nil
}
