package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-assistant/internal/catalog"
	apperrors "grocery-assistant/internal/common/errors"
	"grocery-assistant/internal/common/logger"
	"grocery-assistant/internal/models"
)

func newTestIndex(t *testing.T, handler http.HandlerFunc) *Index {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)
	return NewIndex(client, "catalog", time.Second, logger.NewTestLogger(t))
}

func TestIndex_Search(t *testing.T) {
	var query map[string]interface{}
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/catalog/_search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&query))
		_, _ = w.Write([]byte(`{"hits":{"hits":[
			{"_source":{"name":"toothpaste","price":95,"category":"Personal Care"}},
			{"_source":{"name":"mango","price":120,"category":"Produce","seasonal":[4,5]}}
		]}}`))
	})

	priceCap := 150
	entries, err := idx.Search(context.Background(), "toothpast", &priceCap, nil)
	require.NoError(t, err)
	assert.Equal(t, []models.CatalogEntry{
		{Name: "toothpaste", Price: 95, Category: "Personal Care"},
		{Name: "mango", Price: 120, Category: "Produce", Seasonal: []time.Month{time.April, time.May}},
	}, entries)

	boolQuery := query["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filter := boolQuery["filter"].([]interface{})[0].(map[string]interface{})
	price := filter["range"].(map[string]interface{})["price"].(map[string]interface{})
	assert.Equal(t, float64(150), price["lte"])
	assert.NotContains(t, price, "gte")
}

func TestBuildQuery_RangeWins(t *testing.T) {
	priceCap := 50
	q := buildQuery("milk", &priceCap, &models.PriceRange{Min: 30, Max: 60})

	boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filter := boolQuery["filter"].([]interface{})[0].(map[string]interface{})
	price := filter["range"].(map[string]interface{})["price"].(map[string]interface{})
	assert.Equal(t, 30, price["gte"])
	assert.Equal(t, 60, price["lte"])

	noFilter := buildQuery("milk", nil, nil)
	assert.NotContains(t, noFilter["query"].(map[string]interface{})["bool"], "filter")
}

func TestIndex_Search_Error(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"index_not_found_exception"},"status":404}`))
	})

	_, err := idx.Search(context.Background(), "milk", nil, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSearchFailed, apperrors.AsStandardError(err).Code)
}

func TestIndex_IndexCatalog(t *testing.T) {
	var lines []string
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/_bulk", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("refresh"))
		body, _ := io.ReadAll(r.Body)
		lines = strings.Split(strings.TrimSpace(string(body)), "\n")
		_, _ = w.Write([]byte(`{"errors":false,"items":[]}`))
	})

	cat := catalog.Default()
	require.NoError(t, idx.IndexCatalog(context.Background(), cat))
	require.Len(t, lines, 2*cat.Len())
	assert.JSONEq(t, `{"index":{"_index":"catalog","_id":"milk"}}`, lines[0])
	assert.JSONEq(t, `{"name":"milk","price":58,"category":"Dairy"}`, lines[1])
}

func TestIndex_IndexCatalog_ItemErrors(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":true,"items":[]}`))
	})

	err := idx.IndexCatalog(context.Background(), catalog.Default())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSearchFailed, apperrors.AsStandardError(err).Code)
}
