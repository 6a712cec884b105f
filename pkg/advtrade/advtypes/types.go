// Package advtypes defines the wire types for the Advanced Trade API.
//
// The API emits the same logical fields under varying shapes depending on
// endpoint and account age: numbers arrive as JSON numbers or strings,
// balances as objects or bare values, book levels as objects or tuples, and
// some payloads nest under a wrapper key. All of that variance is absorbed
// here so callers only ever see one shape.
package advtypes

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// Number is a decimal field tolerant of the numeric shapes the API emits:
// JSON numbers, numeric strings, and strings with text around the numeral.
// Unparsable values decode as invalid rather than failing the payload.
type Number struct {
	Decimal decimal.Decimal
	Valid   bool
}

// NewNumber wraps a decimal in a valid Number.
func NewNumber(d decimal.Decimal) Number {
	return Number{Decimal: d, Valid: true}
}

func (n *Number) UnmarshalJSON(raw []byte) error {
	n.Decimal, n.Valid = decimal.Decimal{}, false
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil
		}
		n.Decimal, n.Valid = parseLoose(s)
		return nil
	}
	d, err := decimal.NewFromString(string(trimmed))
	if err != nil {
		return nil
	}
	n.Decimal, n.Valid = d, true
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Decimal.String())
}

// Positive reports whether the number parsed and is strictly greater than zero.
func (n Number) Positive() bool {
	return n.Valid && n.Decimal.IsPositive()
}

func parseLoose(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d, true
	}
	m := numberPattern.FindString(s)
	if m == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func firstValid(nums ...Number) Number {
	for _, n := range nums {
		if n.Valid {
			return n
		}
	}
	return Number{}
}

// Timestamp parses the timestamp layouts seen across endpoints. Unparsable
// values decode as the zero time instead of failing the payload.
type Timestamp struct {
	time.Time
}

func (ts *Timestamp) UnmarshalJSON(raw []byte) error {
	ts.Time = time.Time{}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t
			return nil
		}
	}
	return nil
}

func firstTime(stamps ...Timestamp) Timestamp {
	for _, t := range stamps {
		if !t.IsZero() {
			return t
		}
	}
	return Timestamp{}
}

// Balance is an account balance, delivered either as an object
// {"value": "...", "currency": "..."} or as a bare value.
type Balance struct {
	Value    Number
	Currency string
}

func (b *Balance) UnmarshalJSON(raw []byte) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var aux struct {
			Value    Number `json:"value"`
			Currency string `json:"currency"`
		}
		if err := json.Unmarshal(trimmed, &aux); err != nil {
			return err
		}
		b.Value, b.Currency = aux.Value, aux.Currency
		return nil
	}
	var n Number
	_ = n.UnmarshalJSON(trimmed)
	b.Value = n
	b.Currency = ""
	return nil
}

// Portfolio identifies an ownership scope.
type Portfolio struct {
	Name string `json:"name"`
	UUID string `json:"uuid"`
	Type string `json:"type"`
}

// PortfoliosResponse lists portfolios; some gateway versions key the list as
// "data" instead of "portfolios".
type PortfoliosResponse struct {
	Portfolios []Portfolio
}

func (r *PortfoliosResponse) UnmarshalJSON(raw []byte) error {
	var aux struct {
		Portfolios []Portfolio `json:"portfolios"`
		Data       []Portfolio `json:"data"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return err
	}
	r.Portfolios = aux.Portfolios
	if len(r.Portfolios) == 0 {
		r.Portfolios = aux.Data
	}
	return nil
}

// Account is a single-currency holding.
type Account struct {
	UUID              string  `json:"uuid"`
	Name              string  `json:"name"`
	Currency          string  `json:"currency"`
	AvailableBalance  Balance `json:"available_balance"`
	RetailPortfolioID string  `json:"retail_portfolio_id"`
}

// AccountsRequest parameterizes the paginated accounts listing.
type AccountsRequest struct {
	Limit             int
	Cursor            string
	RetailPortfolioID string
}

// AccountsResponse is one page of the accounts listing.
type AccountsResponse struct {
	Accounts []Account `json:"accounts"`
	HasNext  bool      `json:"has_next"`
	Cursor   string    `json:"cursor"`
}

// Product is trading-pair metadata.
type Product struct {
	ProductID       string `json:"product_id"`
	BaseIncrement   Number `json:"base_increment"`
	QuoteIncrement  Number `json:"quote_increment"`
	BaseCurrencyID  string `json:"base_currency_id"`
	QuoteCurrencyID string `json:"quote_currency_id"`
	Status          string `json:"status"`
}

// Trade is one public market trade.
type Trade struct {
	TradeID   string    `json:"trade_id"`
	ProductID string    `json:"product_id"`
	Price     Number    `json:"price"`
	Size      Number    `json:"size"`
	Side      string    `json:"side"`
	Time      Timestamp `json:"time"`
}

// TickerResponse carries a direct quote plus recent trades. Some gateway
// versions nest the quote under a "ticker" key and name the touch either
// bid/ask or best_bid/best_ask.
type TickerResponse struct {
	Price  Number
	Bid    Number
	Ask    Number
	Trades []Trade
}

func (t *TickerResponse) UnmarshalJSON(raw []byte) error {
	var aux struct {
		Price   Number  `json:"price"`
		Bid     Number  `json:"bid"`
		Ask     Number  `json:"ask"`
		BestBid Number  `json:"best_bid"`
		BestAsk Number  `json:"best_ask"`
		Trades  []Trade `json:"trades"`
		Ticker  *struct {
			Price Number `json:"price"`
			Bid   Number `json:"bid"`
			Ask   Number `json:"ask"`
		} `json:"ticker"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return err
	}
	t.Price = aux.Price
	t.Bid = firstValid(aux.Bid, aux.BestBid)
	t.Ask = firstValid(aux.Ask, aux.BestAsk)
	t.Trades = aux.Trades
	if aux.Ticker != nil {
		t.Price = firstValid(t.Price, aux.Ticker.Price)
		t.Bid = firstValid(t.Bid, aux.Ticker.Bid)
		t.Ask = firstValid(t.Ask, aux.Ticker.Ask)
	}
	return nil
}

// PriceLevel is one book level, delivered as an object or a [price, size] tuple.
type PriceLevel struct {
	Price Number
	Size  Number
}

func (l *PriceLevel) UnmarshalJSON(raw []byte) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tuple []Number
		if err := json.Unmarshal(trimmed, &tuple); err != nil {
			return err
		}
		if len(tuple) > 0 {
			l.Price = tuple[0]
		}
		if len(tuple) > 1 {
			l.Size = tuple[1]
		}
		return nil
	}
	var aux struct {
		Price Number `json:"price"`
		Size  Number `json:"size"`
	}
	if err := json.Unmarshal(trimmed, &aux); err != nil {
		return err
	}
	l.Price, l.Size = aux.Price, aux.Size
	return nil
}

// BookResponse is an order-book snapshot; levels appear either at the top
// level or under a "pricebook" wrapper.
type BookResponse struct {
	Bids []PriceLevel
	Asks []PriceLevel
}

func (b *BookResponse) UnmarshalJSON(raw []byte) error {
	var aux struct {
		Bids      []PriceLevel `json:"bids"`
		Asks      []PriceLevel `json:"asks"`
		Pricebook *struct {
			Bids []PriceLevel `json:"bids"`
			Asks []PriceLevel `json:"asks"`
		} `json:"pricebook"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return err
	}
	b.Bids, b.Asks = aux.Bids, aux.Asks
	if len(b.Bids) == 0 && len(b.Asks) == 0 && aux.Pricebook != nil {
		b.Bids, b.Asks = aux.Pricebook.Bids, aux.Pricebook.Asks
	}
	return nil
}

// Fill is one historical execution. Size and timestamp arrive under several
// alternate keys depending on gateway version.
type Fill struct {
	EntryID   string
	TradeID   string
	OrderID   string
	ProductID string
	Side      string
	Price     Number
	Size      Number
	TradeTime Timestamp
}

func (f *Fill) UnmarshalJSON(raw []byte) error {
	var aux struct {
		EntryID    string    `json:"entry_id"`
		TradeID    string    `json:"trade_id"`
		OrderID    string    `json:"order_id"`
		ProductID  string    `json:"product_id"`
		Side       string    `json:"side"`
		Price      Number    `json:"price"`
		Size       Number    `json:"size"`
		BaseSize   Number    `json:"base_size"`
		FilledSize Number    `json:"filled_size"`
		TradeTime  Timestamp `json:"trade_time"`
		CreatedAt  Timestamp `json:"created_at"`
		Time       Timestamp `json:"time"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return err
	}
	f.EntryID = aux.EntryID
	f.TradeID = aux.TradeID
	f.OrderID = aux.OrderID
	f.ProductID = aux.ProductID
	f.Side = aux.Side
	f.Price = aux.Price
	f.Size = firstValid(aux.Size, aux.BaseSize, aux.FilledSize)
	f.TradeTime = firstTime(aux.TradeTime, aux.CreatedAt, aux.Time)
	return nil
}

// FillsRequest parameterizes the paginated fills listing.
type FillsRequest struct {
	ProductID         string
	Limit             int
	Cursor            string
	RetailPortfolioID string
}

// FillsResponse is one page of the fills listing; the continuation token is
// keyed "cursor" or "next_cursor" depending on gateway version.
type FillsResponse struct {
	Fills  []Fill
	Cursor string
}

func (r *FillsResponse) UnmarshalJSON(raw []byte) error {
	var aux struct {
		Fills      []Fill `json:"fills"`
		Data       []Fill `json:"data"`
		Cursor     string `json:"cursor"`
		NextCursor string `json:"next_cursor"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return err
	}
	r.Fills = aux.Fills
	if len(r.Fills) == 0 {
		r.Fills = aux.Data
	}
	r.Cursor = aux.Cursor
	if r.Cursor == "" {
		r.Cursor = aux.NextCursor
	}
	return nil
}

// MarketIOC configures a market immediate-or-cancel order.
type MarketIOC struct {
	BaseSize string `json:"base_size"`
}

// OrderConfiguration selects the order type; only market IOC is used here.
type OrderConfiguration struct {
	MarketMarketIOC *MarketIOC `json:"market_market_ioc,omitempty"`
}

// CreateOrderRequest submits an order. ClientOrderID is the idempotency key:
// the venue deduplicates retried submissions carrying the same value.
type CreateOrderRequest struct {
	ClientOrderID      string             `json:"client_order_id"`
	ProductID          string             `json:"product_id"`
	Side               string             `json:"side"`
	OrderConfiguration OrderConfiguration `json:"order_configuration"`
	RetailPortfolioID  string             `json:"retail_portfolio_id,omitempty"`
}

// OrderSuccess is the success branch of an order submission.
type OrderSuccess struct {
	OrderID       string `json:"order_id"`
	ProductID     string `json:"product_id"`
	Side          string `json:"side"`
	ClientOrderID string `json:"client_order_id"`
}

// OrderFailure is the error branch of an order submission.
type OrderFailure struct {
	Error                 string `json:"error"`
	Message               string `json:"message"`
	ErrorDetails          string `json:"error_details"`
	PreviewFailureReason  string `json:"preview_failure_reason"`
	NewOrderFailureReason string `json:"new_order_failure_reason"`
}

// CreateOrderResponse is the order submission envelope.
type CreateOrderResponse struct {
	Success         bool          `json:"success"`
	OrderID         string        `json:"order_id"`
	SuccessResponse *OrderSuccess `json:"success_response"`
	ErrorResponse   *OrderFailure `json:"error_response"`
}

// ResolvedOrderID returns the order identifier wherever the envelope put it.
func (r CreateOrderResponse) ResolvedOrderID() string {
	if r.OrderID != "" {
		return r.OrderID
	}
	if r.SuccessResponse != nil {
		return r.SuccessResponse.OrderID
	}
	return ""
}
