package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"grocery-assistant/internal/common/config"
	apperrors "grocery-assistant/internal/common/errors"
	httpclient "grocery-assistant/internal/common/http"
	"grocery-assistant/internal/common/logger"
)

// HuggingFace calls the hosted inference API.
type HuggingFace struct {
	client *httpclient.Client
	url    string
	apiKey string
	logger logger.Logger
}

type hfRequest struct {
	Inputs string `json:"inputs"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
	Error         string `json:"error"`
}

func NewHuggingFace(cfg config.LLMConfig, log logger.Logger) *HuggingFace {
	return &HuggingFace{
		client: httpclient.NewClient(config.GetDuration(cfg.Timeout), cfg.MaxRetries),
		url:    strings.TrimRight(cfg.BaseURL, "/") + "/models/" + cfg.Model,
		apiKey: cfg.APIKey,
		logger: log.WithFields(map[string]interface{}{"provider": config.ProviderHuggingFace}),
	}
}

func (h *HuggingFace) Provider() string {
	return config.ProviderHuggingFace
}

// Generate posts {inputs} and returns the first generated text. The API
// answers with an array of generations, a single generation or a bare string.
func (h *HuggingFace) Generate(ctx context.Context, prompt string) (string, error) {
	var raw json.RawMessage
	headers := map[string]string{"Authorization": "Bearer " + h.apiKey}

	if err := h.client.PostJSON(ctx, h.url, headers, hfRequest{Inputs: prompt}, &raw); err != nil {
		h.logger.Warn("inference request failed", map[string]interface{}{"error": err.Error()})
		if errors.Is(err, httpclient.ErrTimeout) {
			return "", apperrors.NewLLMTimeoutError(h.Provider(), err)
		}
		return "", apperrors.NewLLMFailedError(h.Provider(), err)
	}

	text, err := parseGeneration(raw)
	if err != nil {
		return "", apperrors.NewLLMFailedError(h.Provider(), err)
	}
	return text, nil
}

func parseGeneration(raw json.RawMessage) (string, error) {
	var list []hfGeneration
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 || strings.TrimSpace(list[0].GeneratedText) == "" {
			return "", ErrEmptyResponse
		}
		return list[0].GeneratedText, nil
	}

	var single hfGeneration
	if err := json.Unmarshal(raw, &single); err == nil {
		if single.Error != "" {
			return "", fmt.Errorf("inference error: %s", single.Error)
		}
		if strings.TrimSpace(single.GeneratedText) == "" {
			return "", ErrEmptyResponse
		}
		return single.GeneratedText, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if strings.TrimSpace(text) == "" {
			return "", ErrEmptyResponse
		}
		return text, nil
	}
	return "", fmt.Errorf("%w: unexpected inference payload", httpclient.ErrMalformedResponse)
}
