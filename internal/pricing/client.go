package pricing

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
	"grocery-assistant/internal/models"
)

// Client calls a remote pricing service at POST <base_url>/price.
type Client struct {
	http   *httpclient.Client
	url    string
	logger logger.Logger
}

type quoteRequest struct {
	Item string `json:"item"`
}

type quoteResponse struct {
	Item  string          `json:"item"`
	Price json.RawMessage `json:"price"`
}

func NewClient(cfg config.EndpointConfig, log logger.Logger) *Client {
	return &Client{
		http:   httpclient.NewClient(config.GetDuration(cfg.Timeout), cfg.MaxRetries),
		url:    strings.TrimRight(cfg.BaseURL, "/") + "/price",
		logger: log.WithFields(map[string]interface{}{"collaborator": "pricing"}),
	}
}

// Quote returns an error unless the response carries a numeric,
// non-negative price.
func (c *Client) Quote(ctx context.Context, item string) (Quote, error) {
	var resp quoteResponse
	if err := c.http.PostJSON(ctx, c.url, nil, quoteRequest{Item: item}, &resp); err != nil {
		if errors.Is(err, httpclient.ErrTimeout) {
			return Quote{}, apperrors.NewPricingTimeoutError(err)
		}
		return Quote{}, apperrors.NewPricingUnavailableError(err)
	}

	price, ok := models.ParsePrice(resp.Price)
	if !ok {
		return Quote{}, apperrors.NewPricingUnavailableError(
			fmt.Errorf("%w: %s", ErrUnusablePrice, string(resp.Price)))
	}

	c.logger.Debug("price quoted", map[string]interface{}{"item": item, "price": price})
	return Quote{Item: resp.Item, Price: price, Source: models.PriceSourceService}, nil
}
