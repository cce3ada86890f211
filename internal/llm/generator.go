// Package llm wraps the hosted language models used for price guesses and
// shopping suggestions.
package llm

import (
	"context"
	"errors"
	"fmt"

	"grocery-assistant/internal/common/config"
	"grocery-assistant/internal/common/logger"
)

var ErrEmptyResponse = errors.New("LLM_EMPTY_RESPONSE")

// Generator completes a single prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Provider() string
}

// New returns the generator selected by cfg, or nil when no provider or key
// is configured.
func New(ctx context.Context, cfg config.LLMConfig, log logger.Logger) (Generator, error) {
	if !cfg.LLMEnabled() {
		return nil, nil
	}
	switch cfg.Provider {
	case config.ProviderHuggingFace:
		return NewHuggingFace(cfg, log), nil
	case config.ProviderGemini:
		return NewGemini(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
