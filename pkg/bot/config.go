package bot

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config controls scanning, pricing, and execution behavior.
type Config struct {
	// Threshold is the unrealized gain fraction at which a position is
	// liquidated; the boundary is inclusive.
	Threshold decimal.Decimal
	// QuoteCurrency is the settlement currency code (e.g. "USD").
	QuoteCurrency string
	// PortfolioID scopes the scan to one portfolio UUID. When empty,
	// PortfolioName is resolved via the portfolios endpoint instead.
	PortfolioID   string
	PortfolioName string
	// FallbackToLastBuy substitutes the most recent buy price when the
	// moving average is unknown (depleted or absent history).
	FallbackToLastBuy bool

	FillPageSize int
	MaxFillPages int

	RequestTimeout time.Duration
	SleepInterval  time.Duration

	// DryRun evaluates and logs but never submits orders.
	DryRun bool
	Debug  bool
}

func DefaultConfig() Config {
	return Config{
		Threshold:         decimal.RequireFromString("0.10"),
		QuoteCurrency:     "USD",
		PortfolioName:     "bot",
		FallbackToLastBuy: false,
		FillPageSize:      250,
		MaxFillPages:      20,
		RequestTimeout:    12 * time.Second,
		SleepInterval:     60 * time.Second,
		DryRun:            false,
		Debug:             false,
	}
}

func (c Config) Validate() error {
	if c.Threshold.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("threshold must be > 0")
	}
	if c.QuoteCurrency == "" {
		return fmt.Errorf("quote currency is required")
	}
	if c.FillPageSize <= 0 {
		return fmt.Errorf("fill page size must be > 0")
	}
	if c.MaxFillPages <= 0 {
		return fmt.Errorf("max fill pages must be > 0")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be > 0")
	}
	if c.SleepInterval <= 0 {
		return fmt.Errorf("sleep interval must be > 0")
	}
	return nil
}

// MergeEnv allows easy ops without recompiling. Env names match the
// deployment convention: TARGET_PROFIT_PCT, SLEEP_SEC, QUOTE_CURRENCY,
// PORTFOLIO_UUID, PORTFOLIO_NAME, FALLBACK_TO_LAST_BUY, DEBUG, plus
// SELLER_* knobs for paging, timeouts, and dry-run.
func (c Config) MergeEnv() Config {
	if v := strings.TrimSpace(os.Getenv("TARGET_PROFIT_PCT")); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && d.GreaterThan(decimal.Zero) {
			c.Threshold = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("SLEEP_SEC")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.SleepInterval = time.Duration(n) * time.Second
		}
	}
	if v := strings.TrimSpace(os.Getenv("QUOTE_CURRENCY")); v != "" {
		c.QuoteCurrency = strings.ToUpper(v)
	}
	if v := strings.TrimSpace(os.Getenv("PORTFOLIO_UUID")); v != "" {
		c.PortfolioID = v
	}
	if v := strings.TrimSpace(os.Getenv("PORTFOLIO_NAME")); v != "" {
		c.PortfolioName = v
	}
	if v := strings.TrimSpace(os.Getenv("FALLBACK_TO_LAST_BUY")); v != "" {
		c.FallbackToLastBuy = envTrue(v)
	}
	if v := strings.TrimSpace(os.Getenv("DEBUG")); v != "" {
		c.Debug = envTrue(v)
	}
	if v := strings.TrimSpace(os.Getenv("SELLER_FILL_PAGE_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.FillPageSize = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("SELLER_MAX_FILL_PAGES")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxFillPages = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("SELLER_REQUEST_TIMEOUT_SEC")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RequestTimeout = time.Duration(n) * time.Second
		}
	}
	if v := strings.TrimSpace(os.Getenv("SELLER_DRY_RUN")); v != "" {
		c.DryRun = envTrue(v)
	}
	return c
}

func envTrue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "no":
		return false
	}
	return true
}
