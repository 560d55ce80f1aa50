package providers

import (
	"context"
	"time"
)

// Rewriter is the contract every rewriting backend fulfills: text in,
// rewritten text out, or an error classifying why the backend could not
// serve the request. Implementations must be safe for concurrent use;
// the worker pool calls Rewrite from multiple goroutines sharing one client.
type Rewriter interface {
	// Rewrite sends the text to the backend and returns the rewritten
	// version. The input must be non-empty.
	Rewrite(ctx context.Context, text string) (string, error)

	// GetName returns the backend name for logs and reports.
	GetName() string
}

// StreamingRewriter is implemented by backends that can deliver the
// rewritten text incrementally. Chunks arrive in delivery order and their
// concatenation equals the returned final text.
type StreamingRewriter interface {
	Rewriter

	RewriteStream(ctx context.Context, text string, onChunk func(chunk string)) (string, error)
}

// BaseConfig carries the settings shared by all backends.
type BaseConfig struct {
	APIKey      string            `json:"api_key,omitempty"`
	APIEndpoint string            `json:"api_endpoint,omitempty"`
	Timeout     time.Duration     `json:"timeout"`
	MaxRetries  int               `json:"max_retries"`
	RetryDelay  time.Duration     `json:"retry_delay"`
	Headers     map[string]string `json:"headers,omitempty"`
}

// DefaultConfig returns the shared defaults. The two-minute timeout bounds
// a single model invocation end to end.
func DefaultConfig() BaseConfig {
	return BaseConfig{
		Timeout:    2 * time.Minute,
		MaxRetries: 3,
		RetryDelay: time.Second,
		Headers:    make(map[string]string),
	}
}
