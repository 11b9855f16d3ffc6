// Package ai abstracts the generative-text providers used to write
// the daily market brief.
package ai

import (
	"context"
	"errors"
)

// Provider is a completion backend. Complete returns the raw model
// output, which callers parse as a JSON document.
type Provider interface {
	// Name returns the provider name.
	Name() string
	// Complete generates a single non-streaming response.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config selects and configures a provider.
type Config struct {
	Provider string // openai or anthropic
	APIKey   string
	BaseURL  string // optional override
	Model    string
}

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

var (
	ErrInvalidProvider = errors.New("invalid provider")
	ErrMissingAPIKey   = errors.New("API key is required")
	ErrMissingModel    = errors.New("model is required")
)

// NewProvider builds a provider from the config.
func NewProvider(cfg Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		return nil, ErrMissingModel
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	default:
		return nil, ErrInvalidProvider
	}
}
