// Package bot contains the end-to-end scan/evaluate/execute flow: ledger
// reconstruction, moving-average cost basis, the price waterfall, the
// decision engine, and idempotent liquidation.
package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/JSPierceColorado/coinbase-seller/pkg/advtrade"
	"github.com/JSPierceColorado/coinbase-seller/pkg/advtrade/advtypes"
)

// Cycles always pause at least this long, regardless of configuration.
const minSleep = 5 * time.Second

// Engine drives the periodic scan across held assets.
type Engine struct {
	client advtrade.Client
	cfg    Config
	log    *zap.Logger
}

// NewEngine builds an engine over a brokerage client. The config is merged
// with the environment and validated; a nil logger disables logging.
func NewEngine(client advtrade.Client, cfg Config, logger *zap.Logger) (*Engine, error) {
	cfg = cfg.MergeEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{client: client, cfg: cfg, log: logger}, nil
}

// ScanSummary counts what one cycle saw.
type ScanSummary struct {
	Inspected int
	NonZero   int
	Sold      int
}

// Run resolves the portfolio scope once, then scans in an unbounded loop
// with a fixed inter-cycle delay until the context is cancelled. Cycles
// never overlap: the next begins only after the previous fully completes or
// errors.
func (e *Engine) Run(ctx context.Context) error {
	portfolioID := e.resolvePortfolio(ctx)
	scope := portfolioID
	if scope == "" {
		scope = "ALL"
	}
	sleep := e.cfg.SleepInterval
	if sleep < minSleep {
		sleep = minSleep
	}
	e.log.Info("started",
		zap.String("threshold_pct", pct(e.cfg.Threshold)),
		zap.String("quote_currency", e.cfg.QuoteCurrency),
		zap.String("portfolio", scope),
		zap.Bool("dry_run", e.cfg.DryRun),
	)

	for loop := 1; ; loop++ {
		e.log.Info("heartbeat",
			zap.Int("loop", loop),
			zap.Duration("sleep", sleep),
			zap.Bool("debug", e.cfg.Debug),
		)
		e.runCycle(ctx, portfolioID)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
	}
}

// RunOnce resolves the portfolio scope and performs a single scan.
func (e *Engine) RunOnce(ctx context.Context) (ScanSummary, error) {
	return e.ScanOnce(ctx, e.resolvePortfolio(ctx))
}

// runCycle isolates one scan so a failure or panic never terminates the loop.
func (e *Engine) runCycle(ctx context.Context, portfolioID string) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("cycle panic recovered", zap.Any("panic", r))
		}
	}()

	summary, err := e.ScanOnce(ctx, portfolioID)
	if err != nil {
		e.log.Error("scan failed", zap.Error(err))
		return
	}
	e.log.Info("scan summary",
		zap.Int("inspected", summary.Inspected),
		zap.Int("nonzero", summary.NonZero),
		zap.Int("sold", summary.Sold),
	)
}

// resolvePortfolio prefers the configured UUID, then a name lookup; when
// neither resolves, the scan covers all portfolios.
func (e *Engine) resolvePortfolio(ctx context.Context) string {
	if e.cfg.PortfolioID != "" {
		return e.cfg.PortfolioID
	}
	if e.cfg.PortfolioName == "" {
		return ""
	}
	cctx, cancel := context.WithTimeout(ctx, e.cfg.RequestTimeout)
	defer cancel()
	ports, err := e.client.Portfolios(cctx)
	if err != nil {
		e.log.Warn("portfolio lookup failed; scanning all portfolios", zap.Error(err))
		return ""
	}
	for _, p := range ports {
		if strings.EqualFold(strings.TrimSpace(p.Name), e.cfg.PortfolioName) && p.UUID != "" {
			e.log.Info("using portfolio", zap.String("name", p.Name), zap.String("uuid", p.UUID))
			return p.UUID
		}
	}
	e.log.Warn("portfolio not found; scanning all portfolios", zap.String("name", e.cfg.PortfolioName))
	return ""
}

// ScanOnce runs one sequential pass over held assets.
func (e *Engine) ScanOnce(ctx context.Context, portfolioID string) (ScanSummary, error) {
	accounts, err := e.listAccounts(ctx, portfolioID)
	if err != nil {
		return ScanSummary{}, &FetchError{Op: "list accounts", Err: err}
	}

	var sum ScanSummary
	for _, acct := range accounts {
		// Filter on portfolio only when the account states one and it mismatches.
		if portfolioID != "" && acct.RetailPortfolioID != "" && acct.RetailPortfolioID != portfolioID {
			continue
		}
		sym := strings.ToUpper(strings.TrimSpace(acct.Currency))
		if sym == "" {
			continue
		}
		sum.Inspected++

		if sym == e.cfg.QuoteCurrency {
			e.debug("settlement currency; skip", zap.String("symbol", sym))
			continue
		}
		bal := acct.AvailableBalance.Value
		if !bal.Valid {
			e.debug("unparsable balance; skip", zap.String("symbol", sym))
			continue
		}
		if !bal.Decimal.IsPositive() {
			continue
		}
		sum.NonZero++

		pos := Position{
			Symbol:    sym,
			ProductID: sym + "-" + e.cfg.QuoteCurrency,
			Balance:   bal.Decimal,
		}
		if e.evaluatePosition(ctx, pos, portfolioID) {
			sum.Sold++
		}
	}
	return sum, nil
}

// evaluatePosition runs the evaluate→re-verify→execute pipeline for one
// asset and reports whether an order was submitted.
func (e *Engine) evaluatePosition(ctx context.Context, pos Position, portfolioID string) bool {
	product, err := e.fetchProduct(ctx, pos.ProductID)
	if err != nil {
		e.log.Warn("no tradable product; skip",
			zap.String("product_id", pos.ProductID), zap.Error(err))
		return false
	}

	var basis CostBasis
	execs, err := e.collectExecutions(ctx, pos.ProductID, portfolioID)
	if err != nil {
		// Cost basis stays unknown for this cycle; not fatal to the scan.
		e.log.Warn("fill history unavailable",
			zap.String("product_id", pos.ProductID), zap.Error(err))
	} else {
		basis = ComputeCostBasis(execs)
	}

	quote, quoteKnown := e.fetchQuote(ctx, pos.ProductID)
	dec := Evaluate(pos, basis, quote, quoteKnown, e.cfg)
	e.logDecision(dec, basis)
	if dec.Action != ActionSell {
		return false
	}

	order, err := e.executeSell(ctx, dec, product, portfolioID)
	switch {
	case err == nil:
		e.log.Info("order submitted",
			zap.String("product_id", order.ProductID),
			zap.String("size", order.Size.String()),
			zap.String("order_id", order.OrderID),
			zap.String("client_order_id", order.ClientOrderID),
		)
		return true
	case errors.Is(err, ErrDryRun):
		// Counted as sold so dry-run summaries show what a live run would do.
		e.log.Info("dry run: sell suppressed",
			zap.String("product_id", dec.ProductID),
			zap.String("size", order.Size.String()),
		)
		return true
	case errors.Is(err, ErrStaleDecision):
		e.log.Info("order aborted",
			zap.String("product_id", dec.ProductID), zap.Error(err))
	case errors.Is(err, ErrNothingToSell):
		e.log.Info("nothing to sell at product increment",
			zap.String("product_id", dec.ProductID))
	default:
		e.log.Error("order submission failed",
			zap.String("product_id", dec.ProductID), zap.Error(err))
	}
	return false
}

// listAccounts prefers the portfolio-scoped listing and falls back to the
// unscoped one when the scoped call fails or comes back empty.
func (e *Engine) listAccounts(ctx context.Context, portfolioID string) ([]advtypes.Account, error) {
	if portfolioID != "" {
		accounts, err := e.accountsAll(ctx, portfolioID)
		if err == nil && len(accounts) > 0 {
			return accounts, nil
		}
		if err != nil {
			e.debug("scoped account listing failed; trying unscoped", zap.Error(err))
		} else {
			e.debug("scoped account listing empty; trying unscoped")
		}
	}
	return e.accountsAll(ctx, "")
}

func (e *Engine) accountsAll(ctx context.Context, portfolioID string) ([]advtypes.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.RequestTimeout)
	defer cancel()
	return e.client.AccountsAll(ctx, &advtypes.AccountsRequest{
		Limit:             250,
		RetailPortfolioID: portfolioID,
	})
}

func (e *Engine) fetchProduct(ctx context.Context, productID string) (*advtypes.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.RequestTimeout)
	defer cancel()
	return e.client.Product(ctx, productID)
}

// baseBalance finds the available balance for one currency, honoring the
// portfolio filter the same way the scan does.
func (e *Engine) baseBalance(ctx context.Context, currency, portfolioID string) (decimal.Decimal, error) {
	accounts, err := e.listAccounts(ctx, portfolioID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	for _, acct := range accounts {
		if portfolioID != "" && acct.RetailPortfolioID != "" && acct.RetailPortfolioID != portfolioID {
			continue
		}
		if strings.EqualFold(acct.Currency, currency) {
			if acct.AvailableBalance.Value.Valid {
				return acct.AvailableBalance.Value.Decimal, nil
			}
			return decimal.Zero, nil
		}
	}
	return decimal.Zero, nil
}

func (e *Engine) logDecision(dec Decision, basis CostBasis) {
	avg := "unknown"
	if dec.AvgCostKnown {
		avg = dec.AvgCost.StringFixed(8)
	}
	price := "unknown"
	if dec.QuoteKnown {
		price = dec.Quote.Price.StringFixed(8)
	}
	fields := []zap.Field{
		zap.String("product_id", dec.ProductID),
		zap.String("balance", dec.Balance.String()),
		zap.String("avg_cost", avg),
		zap.String("price", price),
		zap.String("gain_pct", pct(dec.Gain)),
		zap.String("threshold_pct", pct(e.cfg.Threshold)),
		zap.Int("fills", basis.FillsConsumed),
		zap.String("action", string(dec.Action)),
	}
	if dec.QuoteKnown {
		fields = append(fields, zap.String("price_source", string(dec.Quote.Source)))
	}
	if dec.SkipReason != "" {
		fields = append(fields, zap.String("reason", string(dec.SkipReason)))
	}
	e.log.Info("evaluated", fields...)
}

func (e *Engine) debug(msg string, fields ...zap.Field) {
	if e.cfg.Debug {
		e.log.Debug(msg, fields...)
	}
}

func pct(f decimal.Decimal) string {
	return f.Mul(decimal.NewFromInt(100)).StringFixed(2)
}
