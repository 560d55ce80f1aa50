package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds every knob the humanizer understands. Values come from an
// optional config file, HUMANIZER_* environment variables, and CLI flags,
// in increasing order of precedence.
type Config struct {
	Provider    string  `mapstructure:"provider"`     // rewriter backend: "ollama" or "openai"
	Model       string  `mapstructure:"model"`        // model identifier passed to the backend
	OllamaURL   string  `mapstructure:"ollama_url"`   // base URL of the Ollama API
	OpenAIURL   string  `mapstructure:"openai_url"`   // base URL for OpenAI-compatible endpoints
	OpenAIKey   string  `mapstructure:"openai_key"`   // API key for OpenAI-compatible endpoints
	Temperature float64 `mapstructure:"temperature"`  // sampling temperature, 0.0-1.0
	MaxTokens   int     `mapstructure:"max_tokens"`   // response token budget per request
	Timeout     int     `mapstructure:"timeout"`      // per-request timeout in seconds
	Threads     int     `mapstructure:"threads"`      // worker pool size
	PromptFile  string  `mapstructure:"prompt_file"`  // system prompt file, embedded default if absent
	UseChatAPI  bool    `mapstructure:"use_chat_api"` // chat endpoint vs plain generate endpoint

	PreserveFormatting bool `mapstructure:"preserve_formatting"`
	Debug              bool `mapstructure:"debug"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Provider:           "ollama",
		Model:              "cogito-2.1:671b-cloud",
		OllamaURL:          "http://localhost:11434",
		Temperature:        0.7,
		MaxTokens:          2000,
		Timeout:            120,
		Threads:            4,
		PromptFile:         "humanizer.txt",
		UseChatAPI:         true,
		PreserveFormatting: true,
	}
}

// Load reads configuration from the given file path. An empty path falls
// back to the default search locations; a missing default file is not an
// error, only an explicitly named one is.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	cfg := Default()
	v.SetDefault("provider", cfg.Provider)
	v.SetDefault("model", cfg.Model)
	v.SetDefault("ollama_url", cfg.OllamaURL)
	v.SetDefault("temperature", cfg.Temperature)
	v.SetDefault("max_tokens", cfg.MaxTokens)
	v.SetDefault("timeout", cfg.Timeout)
	v.SetDefault("threads", cfg.Threads)
	v.SetDefault("prompt_file", cfg.PromptFile)
	v.SetDefault("use_chat_api", cfg.UseChatAPI)
	v.SetDefault("preserve_formatting", cfg.PreserveFormatting)

	v.SetEnvPrefix("HUMANIZER")
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
	} else {
		v.SetConfigName("humanizer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "humanizer"))
		}
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the ranges the rewriter contract relies on.
func (c *Config) Validate() error {
	switch c.Provider {
	case "ollama", "openai":
	default:
		return fmt.Errorf("unknown provider %q (expected ollama or openai)", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature %.2f out of range [0, 1]", c.Temperature)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", c.Timeout)
	}
	if c.Threads <= 0 {
		return fmt.Errorf("threads must be positive, got %d", c.Threads)
	}
	return nil
}

// RequestTimeout returns the per-request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
