package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-assistant/internal/assistant"
	"grocery-assistant/internal/cart"
	"grocery-assistant/internal/catalog"
	"grocery-assistant/internal/common/config"
	apperrors "grocery-assistant/internal/common/errors"
	"grocery-assistant/internal/common/logger"
	"grocery-assistant/internal/models"
	"grocery-assistant/internal/pricing"
	"grocery-assistant/internal/suggest"
)

func newTestServer(t *testing.T, cfg config.ServerConfig, checks map[string]Check) *Server {
	log := logger.NewTestLogger(t)
	cat := catalog.Default()
	rules := catalog.DefaultRules()

	estimator := pricing.NewEstimator(cat, nil, nil, time.Hour, log).WithRandom(func(int) int { return 0 })
	prices := pricing.NewResolver(cat, estimator, time.Second, log)
	recommender := suggest.NewRecommender(cat, rules, nil, log)

	a := assistant.New(assistant.Config{SuggestionTimeout: time.Second}, assistant.Dependencies{
		Catalog: cat,
		Rules:   rules,
		Prices:  prices,
		Cart:    cart.NewMemoryStore(),
	}, log)

	return NewServer(cfg, Dependencies{
		Assistant:   a,
		Prices:      estimator,
		Suggestions: recommender,
		Checks:      checks,
	}, log)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
}

func TestCommand(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{}, nil)

	rec := do(t, s, http.MethodPost, "/command", `{"text":"add 2 milk"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string               `json:"message"`
		Command models.ParsedCommand `json:"command"`
		Cart    []models.CartItem    `json:"cart"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, "2 × milk added", resp.Message)
	assert.Equal(t, models.IntentAdd, resp.Command.Intent)
	require.Len(t, resp.Cart, 1)
	assert.Equal(t, "milk", resp.Cart[0].Name)
	assert.Equal(t, 2, resp.Cart[0].Quantity)
	assert.Equal(t, 58, resp.Cart[0].Price)
}

func TestCommand_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing text", `{}`},
		{"blank text", `{"text":"   "}`},
		{"wrong type", `{"text":7}`},
		{"not json", `{"text":`},
	}

	s := newTestServer(t, config.ServerConfig{}, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/command", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var stdErr apperrors.StandardError
			decode(t, rec, &stdErr)
			assert.Equal(t, apperrors.ErrCodeInvalidRequest, stdErr.Code)
		})
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		status   int
		expected priceResponse
	}{
		{
			name:     "catalog item",
			body:     `{"item":"Milk"}`,
			status:   http.StatusOK,
			expected: priceResponse{Item: "milk", Price: 58, Source: models.PriceSourceCatalog},
		},
		{
			name:     "plural resolves to catalog",
			body:     `{"item":"bananas"}`,
			status:   http.StatusOK,
			expected: priceResponse{Item: "banana", Price: 60, Source: models.PriceSourceCatalog},
		},
		{
			name:     "unknown item gets random price",
			body:     `{"item":"jaggery"}`,
			status:   http.StatusOK,
			expected: priceResponse{Item: "jaggery", Price: 20, Source: models.PriceSourceRandom},
		},
		{
			name:   "missing item",
			body:   `{"name":"milk"}`,
			status: http.StatusBadRequest,
		},
	}

	s := newTestServer(t, config.ServerConfig{}, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/price", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status != http.StatusOK {
				return
			}
			var got priceResponse
			decode(t, rec, &got)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSuggest(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{}, nil)

	rec := do(t, s, http.MethodPost, "/suggest", `{"input":"milk, bread"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res suggest.Result
	decode(t, rec, &res)
	assert.Equal(t, suggest.InfoLocal, res.Info)
	require.NotEmpty(t, res.Suggestions)
	assert.Equal(t, "almond milk", res.Suggestions[0].Name)
	assert.LessOrEqual(t, len(res.Suggestions), suggest.MaxSuggestions)
}

func TestSuggestions(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{}, nil)
	do(t, s, http.MethodPost, "/command", `{"text":"add milk"}`)

	rec := do(t, s, http.MethodGet, "/suggestions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list assistant.SuggestionList
	decode(t, rec, &list)
	assert.Equal(t, suggest.LabelFallback, list.Label)
	require.NotEmpty(t, list.Items)
	assert.Equal(t, "almond milk", list.Items[0].Name)
	assert.Equal(t, 120, list.Items[0].Price)
}

func TestCartRoutes(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{}, nil)
	do(t, s, http.MethodPost, "/command", `{"text":"add 2 milk and bread"}`)

	rec := do(t, s, http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed cartResponse
	decode(t, rec, &listed)
	require.Len(t, listed.Items, 2)
	assert.Equal(t, 2*58+2*45, listed.Total)

	id := listed.Items[0].ID

	t.Run("set quantity", func(t *testing.T) {
		rec := do(t, s, http.MethodPut, "/cart/"+id, `{"quantity":5}`)
		require.Equal(t, http.StatusOK, rec.Code)
		var item models.CartItem
		decode(t, rec, &item)
		assert.Equal(t, 5, item.Quantity)
	})

	t.Run("quantity below minimum", func(t *testing.T) {
		rec := do(t, s, http.MethodPut, "/cart/"+id, `{"quantity":0}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("set quantity of unknown line", func(t *testing.T) {
		rec := do(t, s, http.MethodPut, "/cart/nope", `{"quantity":2}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("remove line", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/cart/"+id, "").Code)
		assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, "/cart/"+id, "").Code)
	})

	t.Run("clear", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/cart", "").Code)
		var empty cartResponse
		decode(t, do(t, s, http.MethodGet, "/cart", ""), &empty)
		assert.Empty(t, empty.Items)
		assert.Zero(t, empty.Total)
	})
}

func TestHealthReadyMetrics(t *testing.T) {
	t.Run("health", func(t *testing.T) {
		s := newTestServer(t, config.ServerConfig{}, nil)
		rec := do(t, s, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "healthy")
	})

	t.Run("ready", func(t *testing.T) {
		s := newTestServer(t, config.ServerConfig{}, map[string]Check{
			"redis": func(context.Context) error { return nil },
		})
		assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/ready", "").Code)
	})

	t.Run("not ready", func(t *testing.T) {
		s := newTestServer(t, config.ServerConfig{}, map[string]Check{
			"redis":         func(context.Context) error { return nil },
			"elasticsearch": func(context.Context) error { return errors.New("connection refused") },
		})
		rec := do(t, s, http.MethodGet, "/ready", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body struct {
			Checks map[string]string `json:"checks"`
		}
		decode(t, rec, &body)
		assert.Equal(t, map[string]string{"elasticsearch": "connection refused"}, body.Checks)
	})

	t.Run("metrics", func(t *testing.T) {
		s := newTestServer(t, config.ServerConfig{}, nil)
		do(t, s, http.MethodGet, "/health", "")
		rec := do(t, s, http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "assistant_http_requests_total")
	})
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{}, nil)

	rec := do(t, s, http.MethodGet, "/health", "")
	assert.NotEmpty(t, rec.Header().Get(headerRequestID))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(headerRequestID, "abc-123")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(headerRequestID))
}

func TestRateLimiter(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{RateLimit: 1, Burst: 1}, nil)

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/cart", "").Code)

	rec := do(t, s, http.MethodGet, "/cart", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Too many requests", rec.Body.String())

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", "").Code)
}

func TestRateLimiter_EvictsIdleVisitors(t *testing.T) {
	now := time.Now()
	l := NewRateLimiter(1, 1)
	l.now = func() time.Time { return now }

	l.limiterFor("10.0.0.1")
	require.Len(t, l.visitors, 1)

	now = now.Add(2 * limiterIdleTTL)
	l.limiterFor("10.0.0.2")
	assert.Len(t, l.visitors, 1)
	assert.Contains(t, l.visitors, "10.0.0.2")
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{}, nil)
	rec := do(t, s, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code     apperrors.ErrorCode
		expected int
	}{
		{apperrors.ErrCodeInvalidRequest, http.StatusBadRequest},
		{apperrors.ErrCodeItemNotFound, http.StatusNotFound},
		{apperrors.ErrCodeUnrecognizedCommand, http.StatusUnprocessableEntity},
		{apperrors.ErrCodePricingTimeout, http.StatusGatewayTimeout},
		{apperrors.ErrCodeSuggestionUnavailable, http.StatusBadGateway},
		{apperrors.ErrCodeCatalogLoadFailed, http.StatusServiceUnavailable},
		{apperrors.ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusFor(tt.code))
		})
	}
}
