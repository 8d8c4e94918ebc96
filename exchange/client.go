// Package exchange looks up the LKR to USD rate used to convert financial reports.
package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"partnersync/metrics"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	cacheKey       = "exchange:LKR:USD"
	requestTimeout = 5 * time.Second
)

// ErrRateUnavailable is returned when no rate could be obtained.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

type Client struct {
	url        string
	httpClient *http.Client
	cache      *redis.Client
	ttl        time.Duration
	log        *zap.Logger
}

// NewClient creates a rate client for url. cache may be nil to disable caching.
func NewClient(url string, cache *redis.Client, ttl time.Duration, log *zap.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// LKRToUSD returns how many USD one LKR buys. A cached rate is served when present;
// cache failures fall through to the API.
func (c *Client) LKRToUSD(ctx context.Context) (float64, error) {
	if rate, ok := c.cached(ctx); ok {
		metrics.IncrementExchangeRateLookup("cache")
		return rate, nil
	}

	rate, err := c.fetch(ctx)
	if err != nil {
		metrics.IncrementExchangeRateLookup("error")
		c.log.Warn("Exchange rate API failed", zap.Error(err))
		return 0, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}
	metrics.IncrementExchangeRateLookup("api")

	c.store(ctx, rate)
	return rate, nil
}

func (c *Client) fetch(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate service returned %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode rates: %w", err)
	}

	rate, ok := body.Rates["USD"]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("USD rate missing from response")
	}
	return rate, nil
}

func (c *Client) cached(ctx context.Context) (float64, bool) {
	if c.cache == nil {
		return 0, false
	}

	val, err := c.cache.Get(ctx, cacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Exchange rate cache read failed", zap.Error(err))
		}
		return 0, false
	}

	rate, err := strconv.ParseFloat(val, 64)
	if err != nil || rate <= 0 {
		return 0, false
	}
	return rate, true
}

func (c *Client) store(ctx context.Context, rate float64) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, cacheKey, strconv.FormatFloat(rate, 'f', -1, 64), c.ttl).Err(); err != nil {
		c.log.Warn("Exchange rate cache write failed", zap.Error(err))
	}
}

// ConvertLKR converts an LKR amount at rate, rounded to cents.
func ConvertLKR(amountLKR, rate float64) float64 {
	return math.Round(amountLKR*rate*100) / 100
}
