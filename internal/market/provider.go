// Package market supplies the cached market-data snapshot consumed by the
// context builder. One Provider fetch per TTL window; everything downstream
// treats the data as read-only and possibly a minute stale.
package market

import (
	"context"
	"time"
)

// Snapshot is one read of the external market data.
type Snapshot struct {
	SolPrice       float64   `json:"sol_price"`
	SolChange24h   float64   `json:"sol_change_24h"`
	SolChange1h    float64   `json:"sol_change_1h"`
	MarketCapB     float64   `json:"market_cap_b"`  // billions USD
	Volume24hM     float64   `json:"volume_24h_m"`  // millions USD
	GasFees        float64   `json:"gas_fees"`      // SOL per signature
	TrendingTokens []string  `json:"trending_tokens"`
	FetchedAt      time.Time `json:"fetched_at"`
}

// Mood buckets the 24h change into bullish / bearish / crabbing.
func (s *Snapshot) Mood() string {
	switch {
	case s == nil:
		return "crabbing"
	case s.SolChange24h > 2:
		return "bullish"
	case s.SolChange24h < -2:
		return "bearish"
	default:
		return "crabbing"
	}
}

// Provider fetches fresh market data. Implementations own their timeout
// policy; the cache just propagates ctx.
type Provider interface {
	Fetch(ctx context.Context) (*Snapshot, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (*Snapshot, error)

// Fetch implements Provider.
func (f ProviderFunc) Fetch(ctx context.Context) (*Snapshot, error) { return f(ctx) }
