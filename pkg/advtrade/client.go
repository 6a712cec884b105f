// Package advtrade provides the client for the Coinbase Advanced Trade
// brokerage API: portfolio scoping, account balances, product metadata,
// market data, historical fills, and order submission.
package advtrade

import (
	"context"

	"github.com/JSPierceColorado/coinbase-seller/pkg/advtrade/advtypes"
	"github.com/JSPierceColorado/coinbase-seller/pkg/transport"
)

// Client defines the brokerage surface the bot consumes.
type Client interface {
	// -- Scoping --

	// Portfolios lists the portfolios visible to the credentials, used to
	// resolve a portfolio name to its UUID.
	Portfolios(ctx context.Context) ([]advtypes.Portfolio, error)

	// -- Balances --

	// Accounts returns one page of the account listing, optionally scoped to
	// a retail portfolio.
	Accounts(ctx context.Context, req *advtypes.AccountsRequest) (advtypes.AccountsResponse, error)
	// AccountsAll iterates the cursor until exhaustion and returns every account.
	AccountsAll(ctx context.Context, req *advtypes.AccountsRequest) ([]advtypes.Account, error)

	// -- Products & market data --

	// Product retrieves trading-pair metadata (increments, currency codes).
	Product(ctx context.Context, productID string) (*advtypes.Product, error)
	// Ticker retrieves the direct quote and most recent trades for a product.
	Ticker(ctx context.Context, productID string, limit int) (advtypes.TickerResponse, error)
	// ProductBook retrieves an order-book snapshot for a product.
	ProductBook(ctx context.Context, productID string, limit int) (advtypes.BookResponse, error)

	// -- Fills --

	// Fills returns one page of the historical execution listing.
	Fills(ctx context.Context, req *advtypes.FillsRequest) (advtypes.FillsResponse, error)

	// -- Orders --

	// CreateOrder submits one order. The request's ClientOrderID is the
	// idempotency key; a rejected submission is returned as a typed error.
	CreateOrder(ctx context.Context, req *advtypes.CreateOrderRequest) (advtypes.CreateOrderResponse, error)
}

// NewClient creates an Advanced Trade client over the given transport.
func NewClient(httpClient *transport.Client) Client {
	return &clientImpl{httpClient: httpClient}
}
