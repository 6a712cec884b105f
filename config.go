package seller

import (
	"time"

	"github.com/JSPierceColorado/coinbase-seller/pkg/transport"
)

// BaseURLs defines per-service base endpoints.
type BaseURLs struct {
	AdvTrade string
}

// Config holds shared client configuration.
type Config struct {
	BaseURLs   BaseURLs
	HTTPClient transport.Doer
	UserAgent  string
	Timeout    time.Duration

	// APIKey and APISecret sign private endpoints. Leaving them empty
	// produces an unauthenticated client usable for public market data.
	APIKey    string
	APISecret string

	// RatePerSecond caps outgoing request rate client-side; zero disables
	// the limiter.
	RatePerSecond float64
	RateBurst     int

	// BreakerFailures opens the circuit after that many consecutive
	// transport failures; zero disables the breaker.
	BreakerFailures uint32
}

// DefaultConfig returns default endpoints and conservative client-side limits.
func DefaultConfig() Config {
	return Config{
		BaseURLs: BaseURLs{
			AdvTrade: "https://api.coinbase.com",
		},
		UserAgent:       "github.com/JSPierceColorado/coinbase-seller",
		Timeout:         30 * time.Second,
		RatePerSecond:   10,
		RateBurst:       20,
		BreakerFailures: 5,
	}
}
