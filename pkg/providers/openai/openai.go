package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nerdneilsfield/go-doc-humanizer/pkg/providers"
	openai "github.com/sashabaranov/go-openai"
)

// Config holds the OpenAI-compatible client configuration. Any endpoint
// speaking the chat completions API works, not just api.openai.com.
type Config struct {
	providers.BaseConfig
	Model        string  `json:"model"`
	Temperature  float64 `json:"temperature"`
	MaxTokens    int     `json:"max_tokens"`
	SystemPrompt string  `json:"system_prompt"`
}

// DefaultConfig returns the default OpenAI configuration.
func DefaultConfig() Config {
	return Config{
		BaseConfig:  providers.DefaultConfig(),
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		MaxTokens:   2000,
	}
}

// Provider rewrites text through an OpenAI-compatible chat endpoint.
type Provider struct {
	config Config
	client *openai.Client
}

// New creates an OpenAI provider.
func New(config Config) *Provider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.APIEndpoint != "" {
		clientConfig.BaseURL = config.APIEndpoint
	}
	if config.Timeout > 0 {
		clientConfig.HTTPClient.Timeout = config.Timeout
	} else {
		clientConfig.HTTPClient.Timeout = 2 * time.Minute
	}

	return &Provider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// GetName returns the backend name.
func (p *Provider) GetName() string {
	return "openai"
}

// Rewrite sends the text through the chat completions API.
func (p *Provider) Rewrite(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", providers.ErrEmptyText
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.config.Model,
		Temperature: float32(p.config.Temperature),
		MaxTokens:   p.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.config.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Rewrite this text:\n\n" + text},
		},
	})
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in completion", providers.ErrMalformedResponse)
	}
	rewritten := strings.TrimSpace(resp.Choices[0].Message.Content)
	if rewritten == "" {
		return "", fmt.Errorf("%w: empty completion content", providers.ErrMalformedResponse)
	}
	return rewritten, nil
}

// classifyError maps go-openai errors onto the shared failure taxonomy.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &providers.BackendError{StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &providers.BackendError{StatusCode: reqErr.HTTPStatusCode, Body: reqErr.Error()}
	}
	return providers.ClassifyTransportError(err)
}
