package market

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Default endpoints. The price URL is configurable; trending is best-effort.
const (
	defaultTrendingURL = "https://api.coingecko.com/api/v3/search/trending"

	// Solana base fee per signature. The price API has no gas endpoint, so
	// the snapshot carries the protocol constant.
	solBaseFee = 0.000005

	maxFetchAttempts = 3
)

// Client fetches market data over HTTP with adaptive pacing: the request
// rate steps up on success and halves on failure, so a rate-limited API
// backs us off without hard errors.
type Client struct {
	priceURL    string
	trendingURL string
	http        *http.Client
	limiter     *rate.Limiter
	log         zerolog.Logger

	mu        sync.Mutex
	prevPrice float64
	prevAt    time.Time
}

// NewClient creates a client for the given price endpoint.
func NewClient(priceURL string, log zerolog.Logger) *Client {
	return &Client{
		priceURL:    priceURL,
		trendingURL: defaultTrendingURL,
		http:        &http.Client{Timeout: 10 * time.Second},
		limiter:     rate.NewLimiter(rate.Limit(1), 2),
		log:         log,
	}
}

// priceResponse matches the coingecko simple/price shape.
type priceResponse map[string]struct {
	USD          float64 `json:"usd"`
	USDMarketCap float64 `json:"usd_market_cap"`
	USD24hVol    float64 `json:"usd_24h_vol"`
	USD24hChange float64 `json:"usd_24h_change"`
}

type trendingResponse struct {
	Coins []struct {
		Item struct {
			Symbol string `json:"symbol"`
		} `json:"item"`
	} `json:"coins"`
}

// Fetch implements Provider. Trending tokens are optional: a failed
// trending request degrades to an empty list, not an error.
func (c *Client) Fetch(ctx context.Context) (*Snapshot, error) {
	var pr priceResponse
	if err := c.getJSON(ctx, c.priceURL, &pr); err != nil {
		return nil, fmt.Errorf("market price fetch: %w", err)
	}
	sol, ok := pr["solana"]
	if !ok {
		return nil, fmt.Errorf("market price fetch: no solana entry in response")
	}

	now := time.Now()
	snap := &Snapshot{
		SolPrice:     sol.USD,
		SolChange24h: sol.USD24hChange,
		SolChange1h:  c.estimateChange1h(sol.USD, now),
		MarketCapB:   sol.USDMarketCap / 1e9,
		Volume24hM:   sol.USD24hVol / 1e6,
		GasFees:      solBaseFee,
		FetchedAt:    now,
	}

	var tr trendingResponse
	if err := c.getJSON(ctx, c.trendingURL, &tr); err != nil {
		c.log.Debug().Err(err).Msg("trending fetch failed, continuing without")
	} else {
		for _, coin := range tr.Coins {
			if coin.Item.Symbol != "" {
				snap.TrendingTokens = append(snap.TrendingTokens, coin.Item.Symbol)
			}
			if len(snap.TrendingTokens) >= 5 {
				break
			}
		}
	}

	return snap, nil
}

// estimateChange1h approximates the 1h change from the previous sample when
// it is 5..90 minutes old. The API's simple endpoint has no 1h field.
func (c *Client) estimateChange1h(price float64, now time.Time) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var change float64
	age := now.Sub(c.prevAt)
	if c.prevPrice > 0 && age >= 5*time.Minute && age <= 90*time.Minute {
		change = (price - c.prevPrice) / c.prevPrice * 100
	}
	if c.prevAt.IsZero() || age >= 30*time.Minute {
		c.prevPrice = price
		c.prevAt = now
	}
	return change
}

// getJSON performs a GET with retry and adaptive rate adjustment.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	var lastErr error
	for attempt := 0; attempt < maxFetchAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 500 * time.Millisecond
			backoff += time.Duration(rand.Int63n(int64(250 * time.Millisecond)))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := c.doGet(ctx, url, out); err != nil {
			lastErr = err
			c.adjustLimit(false)
			continue
		}
		c.adjustLimit(true)
		return nil
	}
	return lastErr
}

func (c *Client) doGet(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// adjustLimit steps the rate up on success, halves it on failure.
// Bounds: 0.1 .. 2 requests per second.
func (c *Client) adjustLimit(success bool) {
	cur := c.limiter.Limit()
	if success {
		next := cur + 0.1
		if next > 2 {
			next = 2
		}
		c.limiter.SetLimit(next)
		return
	}
	next := cur / 2
	if next < 0.1 {
		next = 0.1
	}
	c.limiter.SetLimit(next)
}
