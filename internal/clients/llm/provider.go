package llm

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-forge/internal/errors"
)

// Providers
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Providers lists the supported provider names
var Providers = []string{ProviderOpenAI, ProviderGemini}

// Config selects and configures a provider
type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Logger   *zap.Logger
}

// Validate checks the provider name and key
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	errors.ValidateEnum("Provider", c.Provider, Providers, vb)
	errors.ValidateRequired("APIKey", c.APIKey, vb)
	return vb.Build()
}

// New creates the client for cfg.Provider
func New(ctx context.Context, cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid llm config")
	}

	switch cfg.Provider {
	case ProviderGemini:
		return NewGemini(ctx, &GeminiConfig{
			APIKey: cfg.APIKey,
			Model:  cfg.Model,
			Logger: cfg.Logger,
		})
	default:
		return NewOpenAI(&OpenAIConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Logger:  cfg.Logger,
		})
	}
}
