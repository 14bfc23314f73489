// Package llm calls an OpenAI-compatible completion endpoint and recovers a
// structured summary from whatever text the model returns.
package llm

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/temirov/repolens/internal/apperr"
)

// Completer produces raw model output for a system and user prompt pair.
type Completer interface {
	Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

// Config carries the completion endpoint settings.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// Client is a Completer backed by the go-openai SDK.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	maxTokens   int
	configured  bool
}

// NewClient constructs a Client for the configured endpoint. A missing API
// key or model is reported on the first Complete call so construction never
// fails during startup.
func NewClient(config Config) *Client {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(config.BaseURL, "/")
	}
	if config.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}
	}
	return &Client{
		api:         openai.NewClientWithConfig(clientConfig),
		model:       config.Model,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
		configured:  config.APIKey != "" && config.Model != "",
	}
}

// Complete sends the prompts to the model and returns the raw response text.
// Reasoning models sometimes leave the content field empty and place the
// answer in the reasoning content instead; both locations are consulted
// before the response counts as empty.
func (client *Client) Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	if !client.configured {
		return "", apperr.New(apperr.KindModel, http.StatusInternalServerError, "LLM API key or model is not configured.")
	}

	response, completionErr := client.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: client.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: client.temperature,
		MaxTokens:   client.maxTokens,
	})
	if completionErr != nil {
		return "", classifyCompletionError(completionErr)
	}

	if len(response.Choices) == 0 {
		return "", apperr.New(apperr.KindModel, http.StatusBadGateway, "LLM returned an empty response.")
	}

	message := response.Choices[0].Message
	rawText := strings.TrimSpace(message.Content)
	if rawText == "" {
		rawText = strings.TrimSpace(message.ReasoningContent)
	}
	if rawText == "" {
		return "", apperr.New(apperr.KindModel, http.StatusBadGateway, "LLM returned an empty response (no content or reasoning).")
	}
	return rawText, nil
}

func classifyCompletionError(completionErr error) error {
	var netError net.Error
	if errors.Is(completionErr, context.DeadlineExceeded) || (errors.As(completionErr, &netError) && netError.Timeout()) {
		return apperr.Wrap(apperr.KindModel, http.StatusGatewayTimeout,
			"LLM request timed out. The repository may be too large, or the service is temporarily unavailable.", completionErr)
	}

	var apiError *openai.APIError
	if errors.As(completionErr, &apiError) {
		statusCode := apiError.HTTPStatusCode
		if statusCode == 0 {
			statusCode = http.StatusBadGateway
		}
		return apperr.Wrap(apperr.KindModel, statusCode, "LLM service error: "+apiError.Message, completionErr)
	}

	var requestError *openai.RequestError
	if errors.As(completionErr, &requestError) {
		statusCode := requestError.HTTPStatusCode
		if statusCode == 0 {
			statusCode = http.StatusBadGateway
		}
		return apperr.Wrap(apperr.KindModel, statusCode, "LLM service error.", completionErr)
	}

	return apperr.Wrap(apperr.KindModel, http.StatusBadGateway,
		"Could not connect to the LLM service. Please check your network connection.", completionErr)
}

var _ Completer = (*Client)(nil)
