package bot

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is the direction of an execution.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Execution is one historical fill, oldest-first once the ledger reader has
// sorted it. Unparsable numeric fields arrive as zero values and are
// discarded by the cost-basis engine.
type Execution struct {
	Side     Side
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Time     time.Time
}

// CostBasis is the result of replaying an execution sequence through
// moving-average inventory accounting.
type CostBasis struct {
	AvgCost       decimal.Decimal
	Known         bool
	FillsConsumed int
	LastBuy       decimal.Decimal
	LastBuyKnown  bool
}

// QuoteSource tags which waterfall strategy produced a price.
type QuoteSource string

const (
	QuoteSourceTicker    QuoteSource = "ticker"
	QuoteSourceBookMid   QuoteSource = "book_mid"
	QuoteSourceLastTrade QuoteSource = "last_trade"
)

// Quote is a usable current price and where it came from.
type Quote struct {
	Price  decimal.Decimal
	Source QuoteSource
}

// Position is one held asset priced in the settlement currency.
type Position struct {
	Symbol    string
	ProductID string
	Balance   decimal.Decimal
}

// Action is the outcome of evaluating a position.
type Action string

const (
	ActionSell Action = "SELL"
	ActionSkip Action = "SKIP"
)

// SkipReason explains a SKIP decision.
type SkipReason string

const (
	SkipUnknownCostBasis SkipReason = "unknown cost basis"
	SkipUnknownPrice     SkipReason = "unknown price"
	SkipZeroBalance      SkipReason = "zero balance"
	SkipBelowThreshold   SkipReason = "below threshold"
)

// Decision is the evaluation result for one position.
type Decision struct {
	ProductID    string
	Balance      decimal.Decimal
	AvgCost      decimal.Decimal
	AvgCostKnown bool
	Quote        Quote
	QuoteKnown   bool
	Gain         decimal.Decimal
	Action       Action
	SkipReason   SkipReason
}

// Order records one submitted liquidation.
type Order struct {
	ClientOrderID string
	ProductID     string
	Size          decimal.Decimal
	OrderID       string
}
