package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"grocery-assistant/internal/catalog"
	apperrors "grocery-assistant/internal/common/errors"
	"grocery-assistant/internal/common/logger"
	"grocery-assistant/internal/llm"
	"grocery-assistant/internal/models"
	"grocery-assistant/internal/nlp"
)

const pricePrompt = `Assign a realistic price in INR (just a number, no text) for this grocery item: "%s"`

// Model answers at or below this are treated as noise.
const minModelPrice = 5

var digitsPattern = regexp.MustCompile(`\d+`)

// Estimator is the in-process pricing service. It answers from the catalog,
// then the price cache, then a language model, then a random guess; model
// and random answers are cached so an item keeps its price.
type Estimator struct {
	catalog *catalog.Catalog
	redis   *redis.Client
	model   llm.Generator
	ttl     time.Duration
	intn    IntN
	logger  logger.Logger
}

type cachedPrice struct {
	Item   string             `json:"item"`
	Price  int                `json:"price"`
	Source models.PriceSource `json:"source"`
}

// NewEstimator accepts a nil redis client or model; the matching tier is
// then skipped.
func NewEstimator(cat *catalog.Catalog, redisClient *redis.Client, model llm.Generator, ttl time.Duration, log logger.Logger) *Estimator {
	return &Estimator{
		catalog: cat,
		redis:   redisClient,
		model:   model,
		ttl:     ttl,
		intn:    defaultIntN,
		logger:  log.WithFields(map[string]interface{}{"component": "price-estimator"}),
	}
}

// WithRandom replaces the random source.
func (e *Estimator) WithRandom(intn IntN) *Estimator {
	e.intn = intn
	return e
}

func (e *Estimator) Quote(ctx context.Context, item string) (Quote, error) {
	name := nlp.Canonicalize(item)
	if name == "" {
		return Quote{}, apperrors.NewInvalidRequestError("item is required")
	}

	for _, candidate := range []string{nlp.Normalize(item), name} {
		if entry, ok := e.catalog.Exact(candidate); ok {
			return Quote{Item: entry.Name, Price: entry.Price, Source: models.PriceSourceCatalog}, nil
		}
	}

	cacheKey := "price:" + name
	if e.redis != nil {
		if val, err := e.redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached cachedPrice
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return Quote{Item: cached.Item, Price: cached.Price, Source: models.PriceSourceCache}, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			e.logger.Warn("price cache read failed", map[string]interface{}{
				"key":   cacheKey,
				"error": apperrors.NewCacheFailedError("get", err).Error(),
			})
		}
	}

	quote := Quote{Item: name, Source: models.PriceSourceRandom}
	if price, ok := e.askModel(ctx, name); ok {
		quote.Price, quote.Source = price, models.PriceSourceModel
	} else {
		quote.Price = RandomPrice(e.intn)
	}

	if e.redis != nil {
		data, _ := json.Marshal(cachedPrice{Item: quote.Item, Price: quote.Price, Source: quote.Source})
		if err := e.redis.Set(ctx, cacheKey, data, e.ttl).Err(); err != nil {
			e.logger.Warn("price cache write failed", map[string]interface{}{
				"key":   cacheKey,
				"error": apperrors.NewCacheFailedError("set", err).Error(),
			})
		}
	}
	return quote, nil
}

func (e *Estimator) askModel(ctx context.Context, name string) (int, bool) {
	if e.model == nil {
		return 0, false
	}
	out, err := e.model.Generate(ctx, fmt.Sprintf(pricePrompt, name))
	if err != nil {
		e.logger.Warn("model price guess failed", map[string]interface{}{"item": name, "error": err.Error()})
		return 0, false
	}
	digits := digitsPattern.FindString(out)
	price, err := strconv.Atoi(digits)
	if err != nil || price <= minModelPrice {
		e.logger.Debug("model price discarded", map[string]interface{}{"item": name, "output": out})
		return 0, false
	}
	return price, true
}
