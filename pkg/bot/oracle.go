package bot

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// fetchQuote walks the price waterfall and returns the first usable price:
// direct ticker quote, then order-book midpoint, then most recent trade.
// Each source failure is a local outcome and the next source is tried; there
// are no retries and nothing is cached, so every call reflects the market at
// call time.
func (e *Engine) fetchQuote(ctx context.Context, productID string) (Quote, bool) {
	sources := []struct {
		source QuoteSource
		fetch  func(context.Context, string) (decimal.Decimal, bool)
	}{
		{QuoteSourceTicker, e.tickerPrice},
		{QuoteSourceBookMid, e.bookMidPrice},
		{QuoteSourceLastTrade, e.lastTradePrice},
	}
	for _, s := range sources {
		if px, ok := s.fetch(ctx, productID); ok && px.IsPositive() {
			return Quote{Price: px, Source: s.source}, true
		}
	}
	return Quote{}, false
}

// tickerPrice uses the direct quoted price, falling back to the ticker's own
// bid/ask midpoint when the quote field is absent.
func (e *Engine) tickerPrice(ctx context.Context, productID string) (decimal.Decimal, bool) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.RequestTimeout)
	defer cancel()

	ticker, err := e.client.Ticker(ctx, productID, 1)
	if err != nil {
		e.debug("ticker fetch failed", zap.String("product_id", productID), zap.Error(err))
		return decimal.Decimal{}, false
	}
	if ticker.Price.Positive() {
		return ticker.Price.Decimal, true
	}
	if ticker.Bid.Positive() && ticker.Ask.Positive() {
		return midpoint(ticker.Bid.Decimal, ticker.Ask.Decimal), true
	}
	return decimal.Decimal{}, false
}

// bookMidPrice uses the midpoint of the best bid and best ask from an
// order-book snapshot.
func (e *Engine) bookMidPrice(ctx context.Context, productID string) (decimal.Decimal, bool) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.RequestTimeout)
	defer cancel()

	book, err := e.client.ProductBook(ctx, productID, 1)
	if err != nil {
		e.debug("book fetch failed", zap.String("product_id", productID), zap.Error(err))
		return decimal.Decimal{}, false
	}
	if len(book.Bids) == 0 || len(book.Asks) == 0 {
		return decimal.Decimal{}, false
	}
	bid, ask := book.Bids[0].Price, book.Asks[0].Price
	if !bid.Positive() || !ask.Positive() {
		return decimal.Decimal{}, false
	}
	return midpoint(bid.Decimal, ask.Decimal), true
}

// lastTradePrice uses the price of the most recent public trade.
func (e *Engine) lastTradePrice(ctx context.Context, productID string) (decimal.Decimal, bool) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.RequestTimeout)
	defer cancel()

	ticker, err := e.client.Ticker(ctx, productID, 1)
	if err != nil {
		e.debug("trades fetch failed", zap.String("product_id", productID), zap.Error(err))
		return decimal.Decimal{}, false
	}
	for _, trade := range ticker.Trades {
		if trade.Price.Positive() {
			return trade.Price.Decimal, true
		}
	}
	return decimal.Decimal{}, false
}

func midpoint(bid, ask decimal.Decimal) decimal.Decimal {
	return bid.Add(ask).Div(decimal.NewFromInt(2))
}
