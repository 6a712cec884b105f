package seller

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BaseURLs.AdvTrade != "https://api.coinbase.com" {
		t.Errorf("unexpected default endpoint: %s", cfg.BaseURLs.AdvTrade)
	}
	if cfg.Timeout <= 0 {
		t.Errorf("default timeout must be positive")
	}
	if cfg.UserAgent == "" {
		t.Errorf("default user agent must be set")
	}
	if cfg.RatePerSecond <= 0 || cfg.RateBurst <= 0 {
		t.Errorf("default rate limit must be enabled")
	}
}
