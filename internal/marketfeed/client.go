// Package marketfeed fetches the spot gold price used for the daily rate.
package marketfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"pawnledger-backend/internal/logger"
)

var ErrFeedUnavailable = errors.New("market feed unavailable")

// Quote is the feed payload. The feed quotes 24k fine gold per gram.
type Quote struct {
	Currency       string          `json:"currency"`
	PricePerGram24 decimal.Decimal `json:"price_per_gram_24k"`
	Timestamp      time.Time       `json:"timestamp"`
}

// Client calls the feed with a bounded timeout and at most requestsPerMinute calls.
type Client struct {
	url        string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(url string, timeout time.Duration, requestsPerMinute int) *Client {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 1
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
	}
}

// Price24k returns the current 24k per-gram price.
func (c *Client) Price24k(ctx context.Context) (decimal.Decimal, error) {
	if !c.limiter.Allow() {
		return decimal.Zero, fmt.Errorf("%w: request throttled", ErrFeedUnavailable)
	}

	logger.ExternalServiceCall("MarketFeed", "GET", "url", c.url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
		logger.ExternalServiceResult("MarketFeed", "GET", err)
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("%w: status %d", ErrFeedUnavailable, resp.StatusCode)
		logger.ExternalServiceResult("MarketFeed", "GET", err)
		return decimal.Zero, err
	}

	var q Quote
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		err = fmt.Errorf("%w: malformed quote: %v", ErrFeedUnavailable, err)
		logger.ExternalServiceResult("MarketFeed", "GET", err)
		return decimal.Zero, err
	}
	if !q.PricePerGram24.IsPositive() {
		err := fmt.Errorf("%w: non-positive price %s", ErrFeedUnavailable, q.PricePerGram24)
		logger.ExternalServiceResult("MarketFeed", "GET", err)
		return decimal.Zero, err
	}

	logger.ExternalServiceResult("MarketFeed", "GET", nil, "price_24k", q.PricePerGram24.String())
	return q.PricePerGram24, nil
}
