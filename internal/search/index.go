// Package search mirrors the catalog into Elasticsearch so find commands
// can fall back to fuzzy full-text matching.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"grocery-assistant/internal/catalog"
	apperrors "grocery-assistant/internal/common/errors"
	"grocery-assistant/internal/common/logger"
	"grocery-assistant/internal/models"
)

const maxResults = 20

// Index searches catalog documents stored in one Elasticsearch index.
type Index struct {
	client  *elasticsearch.Client
	index   string
	timeout time.Duration
	logger  logger.Logger
}

type document struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Category string `json:"category"`
	Seasonal []int  `json:"seasonal,omitempty"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source document `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type bulkResponse struct {
	Errors bool `json:"errors"`
}

func NewIndex(client *elasticsearch.Client, index string, timeout time.Duration, log logger.Logger) *Index {
	return &Index{
		client:  client,
		index:   index,
		timeout: timeout,
		logger:  log.WithFields(map[string]interface{}{"component": "catalog-search", "index": index}),
	}
}

// IndexCatalog upserts every catalog entry, keyed by name.
func (i *Index) IndexCatalog(ctx context.Context, cat *catalog.Catalog) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, e := range cat.Entries() {
		meta := map[string]interface{}{"index": map[string]interface{}{"_index": i.index, "_id": e.Name}}
		if err := enc.Encode(meta); err != nil {
			return apperrors.NewSearchFailedError(err)
		}
		if err := enc.Encode(toDocument(e)); err != nil {
			return apperrors.NewSearchFailedError(err)
		}
	}

	req := esapi.BulkRequest{
		Body:    &buf,
		Refresh: "true",
	}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		return apperrors.NewSearchFailedError(fmt.Errorf("bulk index: %w", err))
	}
	defer res.Body.Close()

	if res.IsError() {
		return apperrors.NewSearchFailedError(fmt.Errorf("bulk index failed: %s", res.String()))
	}
	var br bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&br); err != nil {
		return apperrors.NewSearchFailedError(fmt.Errorf("decode bulk response: %w", err))
	}
	if br.Errors {
		return apperrors.NewSearchFailedError(fmt.Errorf("bulk index reported item errors"))
	}

	i.logger.Info("catalog indexed", map[string]interface{}{"entries": cat.Len()})
	return nil
}

// Search runs a fuzzy name match restricted by the optional price filter.
// A range takes precedence over a cap.
func (i *Index) Search(ctx context.Context, phrase string, priceCap *int, priceRange *models.PriceRange) ([]models.CatalogEntry, error) {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	body, _ := json.Marshal(buildQuery(phrase, priceCap, priceRange))
	req := esapi.SearchRequest{
		Index: []string{i.index},
		Body:  strings.NewReader(string(body)),
	}

	res, err := req.Do(ctx, i.client)
	if err != nil {
		return nil, apperrors.NewSearchFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, apperrors.NewSearchFailedError(fmt.Errorf("search failed: %s", res.String()))
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, apperrors.NewSearchFailedError(fmt.Errorf("decode search response: %w", err))
	}

	entries := make([]models.CatalogEntry, 0, len(sr.Hits.Hits))
	for _, hit := range sr.Hits.Hits {
		entries = append(entries, fromDocument(hit.Source))
	}
	return entries, nil
}

func buildQuery(phrase string, priceCap *int, priceRange *models.PriceRange) map[string]interface{} {
	boolQuery := map[string]interface{}{
		"must": []interface{}{
			map[string]interface{}{
				"match": map[string]interface{}{
					"name": map[string]interface{}{"query": phrase, "fuzziness": "AUTO"},
				},
			},
		},
	}

	switch {
	case priceRange != nil:
		boolQuery["filter"] = []interface{}{
			map[string]interface{}{"range": map[string]interface{}{
				"price": map[string]interface{}{"gte": priceRange.Min, "lte": priceRange.Max},
			}},
		}
	case priceCap != nil:
		boolQuery["filter"] = []interface{}{
			map[string]interface{}{"range": map[string]interface{}{
				"price": map[string]interface{}{"lte": *priceCap},
			}},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
		"size":  maxResults,
	}
}

func toDocument(e models.CatalogEntry) document {
	d := document{Name: e.Name, Price: e.Price, Category: e.Category}
	for _, m := range e.Seasonal {
		d.Seasonal = append(d.Seasonal, int(m))
	}
	return d
}

func fromDocument(d document) models.CatalogEntry {
	e := models.CatalogEntry{Name: d.Name, Price: d.Price, Category: d.Category}
	for _, m := range d.Seasonal {
		e.Seasonal = append(e.Seasonal, time.Month(m))
	}
	return e
}
