package suggest

import (
	"context"
	"errors"
	"strings"

	"grocery-assistant/internal/common/config"
	apperrors "grocery-assistant/internal/common/errors"
	httpclient "grocery-assistant/internal/common/http"
	"grocery-assistant/internal/common/logger"
)

// Client calls a remote suggestion service at POST <base_url>/suggest.
type Client struct {
	http   *httpclient.Client
	url    string
	logger logger.Logger
}

type suggestRequest struct {
	Input string `json:"input"`
}

func NewClient(cfg config.EndpointConfig, log logger.Logger) *Client {
	return &Client{
		http:   httpclient.NewClient(config.GetDuration(cfg.Timeout), cfg.MaxRetries),
		url:    strings.TrimRight(cfg.BaseURL, "/") + "/suggest",
		logger: log.WithFields(map[string]interface{}{"collaborator": "suggestion"}),
	}
}

func (c *Client) Suggest(ctx context.Context, input string) (Result, error) {
	var res Result
	if err := c.http.PostJSON(ctx, c.url, nil, suggestRequest{Input: input}, &res); err != nil {
		if errors.Is(err, httpclient.ErrTimeout) {
			return Result{}, apperrors.NewSuggestionTimeoutError(err)
		}
		return Result{}, apperrors.NewSuggestionUnavailableError(err)
	}
	c.logger.Debug("suggestions received", map[string]interface{}{"count": len(res.Suggestions)})
	return res, nil
}
