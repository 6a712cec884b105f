package bot

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/JSPierceColorado/coinbase-seller/pkg/advtrade/advtypes"
)

// executeSell is the confirm-then-act step for a SELL decision. The
// evaluation that produced the decision may be stale: reconstructing cost
// basis can take dozens of paginated calls, long enough for the price to
// move. So the balance and quote are re-fetched immediately before acting,
// the gain is recomputed, and the order is aborted if it no longer clears
// the threshold.
//
// Exactly one submission attempt is made per trigger, tagged with a fresh
// idempotency key so a transport-level retry cannot double-execute. A failed
// submission is not retried this cycle; the asset is re-evaluated fresh next
// cycle.
func (e *Engine) executeSell(ctx context.Context, dec Decision, product *advtypes.Product, portfolioID string) (Order, error) {
	balance, err := e.baseBalance(ctx, product.BaseCurrencyID, portfolioID)
	if err != nil {
		return Order{}, &FetchError{Op: "re-fetch balance", Err: err}
	}
	quote, ok := e.fetchQuote(ctx, dec.ProductID)
	if !ok {
		return Order{}, fmt.Errorf("%w: no fresh quote", ErrStaleDecision)
	}
	gain := quote.Price.Sub(dec.AvgCost).Div(dec.AvgCost)
	if gain.LessThan(e.cfg.Threshold) {
		return Order{}, fmt.Errorf("%w: fresh gain %s%% vs threshold %s%%",
			ErrStaleDecision, pct(gain), pct(e.cfg.Threshold))
	}

	size := sizeToIncrement(balance, product.BaseIncrement.Decimal)
	if !size.IsPositive() {
		return Order{}, ErrNothingToSell
	}
	if e.cfg.DryRun {
		return Order{ProductID: dec.ProductID, Size: size}, ErrDryRun
	}

	order := Order{
		ClientOrderID: uuid.NewString(),
		ProductID:     dec.ProductID,
		Size:          size,
	}
	cctx, cancel := context.WithTimeout(ctx, e.cfg.RequestTimeout)
	defer cancel()
	resp, err := e.client.CreateOrder(cctx, &advtypes.CreateOrderRequest{
		ClientOrderID: order.ClientOrderID,
		ProductID:     order.ProductID,
		Side:          string(SideSell),
		OrderConfiguration: advtypes.OrderConfiguration{
			MarketMarketIOC: &advtypes.MarketIOC{BaseSize: size.String()},
		},
		RetailPortfolioID: portfolioID,
	})
	if err != nil {
		return Order{}, fmt.Errorf("submit order: %w", err)
	}
	order.OrderID = resp.ResolvedOrderID()
	return order, nil
}
