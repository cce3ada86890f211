package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"grocery-assistant/internal/common/config"
	apperrors "grocery-assistant/internal/common/errors"
	"grocery-assistant/internal/common/logger"
)

// Gemini calls Google's generative language API.
type Gemini struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout int
	logger  logger.Logger
}

func NewGemini(ctx context.Context, cfg config.LLMConfig, log logger.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(cfg.Temperature)

	return &Gemini{
		client:  client,
		model:   model,
		timeout: cfg.Timeout,
		logger:  log.WithFields(map[string]interface{}{"provider": config.ProviderGemini}),
	}, nil
}

func (g *Gemini) Provider() string {
	return config.ProviderGemini
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.GetDuration(g.timeout))
		defer cancel()
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		g.logger.Warn("generate content failed", map[string]interface{}{"error": err.Error()})
		if ctx.Err() != nil {
			return "", apperrors.NewLLMTimeoutError(g.Provider(), err)
		}
		return "", apperrors.NewLLMFailedError(g.Provider(), err)
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return "", apperrors.NewLLMFailedError(g.Provider(), ErrEmptyResponse)
	}
	return text, nil
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		break
	}
	return b.String()
}
