package seller

import (
	"time"

	"github.com/JSPierceColorado/coinbase-seller/pkg/advtrade"
	"github.com/JSPierceColorado/coinbase-seller/pkg/transport"
)

// Option mutates the root client during construction.
type Option func(*Client)

// WithHTTPClient overrides the HTTP execution layer for every sub-client.
func WithHTTPClient(doer transport.Doer) Option {
	return func(c *Client) { c.Config.HTTPClient = doer }
}

// WithBaseURL overrides the Advanced Trade API endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.Config.BaseURLs.AdvTrade = url }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.Config.UserAgent = ua }
}

// WithTimeout sets the default HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.Config.Timeout = d }
}

// WithCredentials attaches API key credentials for request signing.
func WithCredentials(key, secret string) Option {
	return func(c *Client) {
		c.Config.APIKey = key
		c.Config.APISecret = secret
	}
}

// WithRateLimit overrides the client-side request rate cap. A zero rate
// disables the limiter.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		c.Config.RatePerSecond = perSecond
		c.Config.RateBurst = burst
	}
}

// WithBreakerFailures sets how many consecutive transport failures open the
// circuit. Zero disables the breaker.
func WithBreakerFailures(n uint32) Option {
	return func(c *Client) { c.Config.BreakerFailures = n }
}

// WithAdvTrade replaces the Advanced Trade sub-client entirely.
func WithAdvTrade(client advtrade.Client) Option {
	return func(c *Client) { c.AdvTrade = client }
}
