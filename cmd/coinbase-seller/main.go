package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	seller "github.com/JSPierceColorado/coinbase-seller"
	"github.com/JSPierceColorado/coinbase-seller/pkg/bot"
)

func main() {
	var (
		once   = flag.Bool("once", false, "Run a single scan cycle and exit")
		dryRun = flag.Bool("dry-run", false, "Evaluate and log but never submit orders")
	)
	flag.Parse()

	// Optional .env for local runs; deployed environments set real env vars.
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("create logger failed: %v", err)
	}
	defer logger.Sync()

	apiKey := strings.TrimSpace(os.Getenv("COINBASE_API_KEY"))
	apiSecret := strings.TrimSpace(os.Getenv("COINBASE_API_SECRET"))
	if apiKey == "" || apiSecret == "" {
		logger.Fatal("missing COINBASE_API_KEY / COINBASE_API_SECRET")
	}

	client := seller.NewClient(
		seller.WithCredentials(apiKey, apiSecret),
	)

	cfg := bot.DefaultConfig()
	if *dryRun {
		cfg.DryRun = true
	}
	engine, err := bot.NewEngine(client.AdvTrade, cfg, logger)
	if err != nil {
		logger.Fatal("create engine failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		sum, err := engine.RunOnce(ctx)
		if err != nil {
			logger.Fatal("scan failed", zap.Error(err))
		}
		logger.Info("scan complete",
			zap.Int("inspected", sum.Inspected),
			zap.Int("nonzero", sum.NonZero),
			zap.Int("sold", sum.Sold),
		)
		return
	}

	if err := engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("engine stopped", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if strings.EqualFold(strings.TrimSpace(os.Getenv("DEBUG")), "true") {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
