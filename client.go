// Package seller is a profit-taking bot for Coinbase Advanced Trade: it
// periodically scans held assets, reconstructs their moving-average cost
// basis from fill history, and liquidates any position whose unrealized gain
// clears a configured threshold.
package seller

import (
	"net/http"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/JSPierceColorado/coinbase-seller/pkg/advtrade"
	"github.com/JSPierceColorado/coinbase-seller/pkg/auth"
	"github.com/JSPierceColorado/coinbase-seller/pkg/transport"
)

// Client aggregates service clients behind a shared configuration.
type Client struct {
	Config Config

	AdvTrade advtrade.Client
}

// NewClient creates a new root client with optional overrides.
func NewClient(opts ...Option) *Client {
	// 1. Initialize with default configuration
	c := &Client{Config: DefaultConfig()}

	// 2. Apply Options (Config overrides)
	for _, opt := range opts {
		opt(c)
	}

	// 3. Ensure a default HTTP client with timeout if none was provided.
	if c.Config.HTTPClient == nil && c.Config.Timeout > 0 {
		c.Config.HTTPClient = &http.Client{Timeout: c.Config.Timeout}
	}

	// 4. Initialize default transports and clients (if not overridden)
	if c.AdvTrade == nil {
		t := transport.NewClient(c.Config.HTTPClient, c.Config.BaseURLs.AdvTrade)
		t.SetUserAgent(c.Config.UserAgent)
		if c.Config.APIKey != "" && c.Config.APISecret != "" {
			t.SetSigner(auth.NewHMACSigner(c.Config.APIKey, c.Config.APISecret))
		}
		if c.Config.RatePerSecond > 0 {
			burst := c.Config.RateBurst
			if burst < 1 {
				burst = 1
			}
			t.SetLimiter(rate.NewLimiter(rate.Limit(c.Config.RatePerSecond), burst))
		}
		if n := c.Config.BreakerFailures; n > 0 {
			t.SetBreaker(gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
				Name: "advtrade",
				ReadyToTrip: func(counts gobreaker.Counts) bool {
					return counts.ConsecutiveFailures >= n
				},
			}))
		}
		c.AdvTrade = advtrade.NewClient(t)
	}

	return c
}
