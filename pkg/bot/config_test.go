package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero threshold", func(c *Config) { c.Threshold = dec("0") }},
		{"negative threshold", func(c *Config) { c.Threshold = dec("-0.1") }},
		{"empty quote currency", func(c *Config) { c.QuoteCurrency = "" }},
		{"zero page size", func(c *Config) { c.FillPageSize = 0 }},
		{"zero page cap", func(c *Config) { c.MaxFillPages = 0 }},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }},
		{"zero sleep", func(c *Config) { c.SleepInterval = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestMergeEnvOverrides(t *testing.T) {
	t.Setenv("TARGET_PROFIT_PCT", "0.25")
	t.Setenv("SLEEP_SEC", "120")
	t.Setenv("QUOTE_CURRENCY", "usdc")
	t.Setenv("PORTFOLIO_UUID", "pf-env")
	t.Setenv("FALLBACK_TO_LAST_BUY", "true")
	t.Setenv("SELLER_MAX_FILL_PAGES", "5")
	t.Setenv("SELLER_DRY_RUN", "1")

	cfg := DefaultConfig().MergeEnv()

	assert.True(t, cfg.Threshold.Equal(dec("0.25")))
	assert.Equal(t, 120*time.Second, cfg.SleepInterval)
	assert.Equal(t, "USDC", cfg.QuoteCurrency)
	assert.Equal(t, "pf-env", cfg.PortfolioID)
	assert.True(t, cfg.FallbackToLastBuy)
	assert.Equal(t, 5, cfg.MaxFillPages)
	assert.True(t, cfg.DryRun)
}

func TestMergeEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("TARGET_PROFIT_PCT", "not-a-number")
	t.Setenv("SLEEP_SEC", "-5")
	t.Setenv("SELLER_FILL_PAGE_SIZE", "zero")

	cfg := DefaultConfig().MergeEnv()

	assert.True(t, cfg.Threshold.Equal(dec("0.10")))
	assert.Equal(t, 60*time.Second, cfg.SleepInterval)
	assert.Equal(t, 250, cfg.FillPageSize)
}

func TestEnvTrue(t *testing.T) {
	assert.True(t, envTrue("true"))
	assert.True(t, envTrue("1"))
	assert.True(t, envTrue("YES"))
	assert.False(t, envTrue("false"))
	assert.False(t, envTrue("0"))
	assert.False(t, envTrue("no"))
	assert.False(t, envTrue(""))
}
