package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nerdneilsfield/go-doc-humanizer/pkg/providers"
)

// Config holds the Ollama client configuration.
type Config struct {
	providers.BaseConfig
	Model        string  `json:"model"`
	Temperature  float64 `json:"temperature"`
	MaxTokens    int     `json:"max_tokens"`
	SystemPrompt string  `json:"system_prompt"`

	// UseChatAPI selects /api/chat with system+user messages; when false
	// the prompt is flattened into a single /api/generate request.
	UseChatAPI bool `json:"use_chat_api"`
}

// DefaultConfig returns the default Ollama configuration.
func DefaultConfig() Config {
	return Config{
		BaseConfig:  providers.DefaultConfig(),
		Model:       "llama2",
		Temperature: 0.7,
		MaxTokens:   2000,
		UseChatAPI:  true,
	}
}

// Provider talks to a locally hosted Ollama instance. One Provider is
// shared by all workers; it keeps no mutable state after construction.
type Provider struct {
	config     Config
	httpClient *http.Client
}

// New creates an Ollama provider.
func New(config Config) *Provider {
	if config.APIEndpoint == "" {
		config.APIEndpoint = "http://localhost:11434"
	}
	if config.Timeout <= 0 {
		config.Timeout = 2 * time.Minute
	}

	return &Provider{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// GetName returns the backend name.
func (p *Provider) GetName() string {
	return "ollama"
}

// Rewrite sends the text to the model and returns the rewritten version.
func (p *Provider) Rewrite(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", providers.ErrEmptyText
	}

	body, err := p.buildRequestBody(text, false)
	if err != nil {
		return "", err
	}

	respBody, err := p.post(ctx, p.endpoint(), body)
	if err != nil {
		return "", err
	}

	return p.extractText(respBody)
}

// RewriteStream is the streaming variant. onChunk observes each delta in
// delivery order; the returned string is the concatenation of all chunks.
func (p *Provider) RewriteStream(ctx context.Context, text string, onChunk func(chunk string)) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", providers.ErrEmptyText
	}

	body, err := p.buildRequestBody(text, true)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", providers.ClassifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(resp.Body)
		return "", &providers.BackendError{StatusCode: resp.StatusCode, Body: string(errBody)}
	}

	var full strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var chunk streamChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			continue
		}

		delta := chunk.Response
		if p.config.UseChatAPI {
			delta = chunk.Message.Content
		}
		if delta != "" {
			full.WriteString(delta)
			if onChunk != nil {
				onChunk(delta)
			}
		}
		if chunk.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", providers.ClassifyTransportError(err)
	}

	result := strings.TrimSpace(full.String())
	if result == "" {
		return "", fmt.Errorf("%w: stream ended without content", providers.ErrMalformedResponse)
	}
	return result, nil
}

// HealthCheck verifies the backend answers at all.
func (p *Provider) HealthCheck(ctx context.Context) error {
	_, err := p.ListModels(ctx)
	return err
}

// endpoint picks the API path matching the configured mode.
func (p *Provider) endpoint() string {
	if p.config.UseChatAPI {
		return p.config.APIEndpoint + "/api/chat"
	}
	return p.config.APIEndpoint + "/api/generate"
}

// buildRequestBody encodes a chat or generate request for the given text.
func (p *Provider) buildRequestBody(text string, stream bool) ([]byte, error) {
	options := map[string]interface{}{
		"temperature": p.config.Temperature,
	}
	if p.config.MaxTokens > 0 {
		options["num_predict"] = p.config.MaxTokens
	}

	var payload interface{}
	if p.config.UseChatAPI {
		payload = chatRequest{
			Model: p.config.Model,
			Messages: []chatMessage{
				{Role: "system", Content: p.config.SystemPrompt},
				{Role: "user", Content: "Rewrite this text:\n\n" + text},
			},
			Stream:  stream,
			Options: options,
		}
	} else {
		payload = generateRequest{
			Model:   p.config.Model,
			Prompt:  fmt.Sprintf("%s\n\nText to rewrite:\n%s\n\nRewritten text:", p.config.SystemPrompt, text),
			Stream:  stream,
			Options: options,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return body, nil
}

// post executes the request with retries for transient failures. Client
// errors and malformed responses are returned immediately.
func (p *Provider) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	var respBody []byte

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
			}
			req.Header.Set("Content-Type", "application/json")
			for k, v := range p.config.Headers {
				req.Header.Set(k, v)
			}

			resp, err := p.httpClient.Do(req)
			if err != nil {
				return providers.ClassifyTransportError(err)
			}
			defer resp.Body.Close()

			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return providers.ClassifyTransportError(err)
			}

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				backendErr := &providers.BackendError{StatusCode: resp.StatusCode, Body: string(data)}
				if !providers.IsRetryable(backendErr) {
					return retry.Unrecoverable(backendErr)
				}
				return backendErr
			}

			respBody = data
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(p.config.MaxRetries)),
		retry.Delay(p.config.RetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return respBody, nil
}

// extractText pulls the rewritten text out of a non-streaming response.
func (p *Provider) extractText(body []byte) (string, error) {
	if p.config.UseChatAPI {
		var resp chatResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("%w: %v", providers.ErrMalformedResponse, err)
		}
		text := strings.TrimSpace(resp.Message.Content)
		if text == "" {
			return "", fmt.Errorf("%w: missing message content", providers.ErrMalformedResponse)
		}
		return text, nil
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", providers.ErrMalformedResponse, err)
	}
	text := strings.TrimSpace(resp.Response)
	if text == "" {
		return "", fmt.Errorf("%w: missing response field", providers.ErrMalformedResponse)
	}
	return text, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string                 `json:"model"`
	Messages []chatMessage          `json:"messages"`
	Stream   bool                   `json:"stream"`
	Options  map[string]interface{} `json:"options,omitempty"`
}

type chatResponse struct {
	Model     string      `json:"model"`
	CreatedAt time.Time   `json:"created_at"`
	Message   chatMessage `json:"message"`
	Done      bool        `json:"done"`
}

type generateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

type generateResponse struct {
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	Response  string    `json:"response"`
	Done      bool      `json:"done"`
}

// streamChunk covers both chat and generate streaming lines.
type streamChunk struct {
	Message  chatMessage `json:"message"`
	Response string      `json:"response"`
	Done     bool        `json:"done"`
}
