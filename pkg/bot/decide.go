package bot

import "github.com/shopspring/decimal"

// Evaluate combines a position, its reconstructed cost basis, and a quote
// into a SELL/SKIP decision. Pure and side-effect free.
//
// gain = (quote - avg) / avg. SELL requires a known positive average cost, a
// known quote, a positive balance, and gain >= threshold; the boundary is
// inclusive. When the average is unknown and the fallback is configured, the
// most recent buy price substitutes for it — whether the position was fully
// sold or history was simply absent.
func Evaluate(pos Position, basis CostBasis, quote Quote, quoteKnown bool, cfg Config) Decision {
	dec := Decision{
		ProductID:  pos.ProductID,
		Balance:    pos.Balance,
		Quote:      quote,
		QuoteKnown: quoteKnown,
	}

	avg, avgKnown := basis.AvgCost, basis.Known
	if !avgKnown && cfg.FallbackToLastBuy && basis.LastBuyKnown {
		avg, avgKnown = basis.LastBuy, true
	}
	dec.AvgCost, dec.AvgCostKnown = avg, avgKnown

	switch {
	case !avgKnown || !avg.IsPositive():
		dec.Action, dec.SkipReason = ActionSkip, SkipUnknownCostBasis
	case !quoteKnown:
		dec.Action, dec.SkipReason = ActionSkip, SkipUnknownPrice
	case !pos.Balance.IsPositive():
		dec.Action, dec.SkipReason = ActionSkip, SkipZeroBalance
	default:
		dec.Gain = quote.Price.Sub(avg).Div(avg)
		if dec.Gain.GreaterThanOrEqual(cfg.Threshold) {
			dec.Action = ActionSell
		} else {
			dec.Action, dec.SkipReason = ActionSkip, SkipBelowThreshold
		}
	}
	return dec
}

// sizeToIncrement floors a balance to the product's minimum tradable
// increment. A non-positive increment leaves the balance untouched.
func sizeToIncrement(balance, increment decimal.Decimal) decimal.Decimal {
	if !increment.IsPositive() {
		return balance
	}
	q, _ := balance.QuoRem(increment, 0)
	return q.Mul(increment)
}
