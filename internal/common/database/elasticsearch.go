// internal/common/database/elasticsearch.go
package database

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"grocery-assistant/internal/common/config"

	"github.com/elastic/go-elasticsearch/v8"
)

const (
	defaultCatalogIndex = "catalog"
	defaultESTimeout    = 5 * time.Second
)

// ElasticsearchClient is a client bound to the catalog index.
type ElasticsearchClient struct {
	Client  *elasticsearch.Client
	Index   string
	Timeout time.Duration
}

// NewElasticsearch builds a client for cfg. It does not dial; an empty
// index falls back to "catalog" and a zero timeout to five seconds.
func NewElasticsearch(cfg config.ElasticsearchConfig) (*ElasticsearchClient, error) {
	if len(cfg.Addresses) == 0 {
		return nil, errors.New("elasticsearch addresses are required")
	}

	esCfg := elasticsearch.Config{
		Addresses:  cfg.Addresses,
		MaxRetries: 2,
	}
	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	c := &ElasticsearchClient{
		Client:  es,
		Index:   cfg.Index,
		Timeout: config.GetDuration(cfg.Timeout),
	}
	if c.Index == "" {
		c.Index = defaultCatalogIndex
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultESTimeout
	}
	return c, nil
}

// Ping checks that the cluster answers.
func (c *ElasticsearchClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	res, err := c.Client.Ping(c.Client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping error: %s", res.Status())
	}
	return nil
}

// IndexReady checks that the catalog index exists, so find fallbacks have
// documents to search.
func (c *ElasticsearchClient) IndexReady(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	res, err := c.Client.Indices.Exists([]string{c.Index}, c.Client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch index check failed: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return fmt.Errorf("catalog index %q does not exist", c.Index)
	case res.IsError():
		return fmt.Errorf("elasticsearch index check error: %s", res.Status())
	}
	return nil
}
