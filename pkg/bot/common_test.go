package bot

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/JSPierceColorado/coinbase-seller/pkg/advtrade/advtypes"
)

// fakeClient implements advtrade.Client with pluggable behavior per endpoint.
type fakeClient struct {
	portfoliosFn  func(ctx context.Context) ([]advtypes.Portfolio, error)
	accountsFn    func(ctx context.Context, req *advtypes.AccountsRequest) (advtypes.AccountsResponse, error)
	productFn     func(ctx context.Context, productID string) (*advtypes.Product, error)
	tickerFn      func(ctx context.Context, productID string, limit int) (advtypes.TickerResponse, error)
	bookFn        func(ctx context.Context, productID string, limit int) (advtypes.BookResponse, error)
	fillsFn       func(ctx context.Context, req *advtypes.FillsRequest) (advtypes.FillsResponse, error)
	createOrderFn func(ctx context.Context, req *advtypes.CreateOrderRequest) (advtypes.CreateOrderResponse, error)
}

func (f *fakeClient) Portfolios(ctx context.Context) ([]advtypes.Portfolio, error) {
	if f.portfoliosFn == nil {
		return nil, fmt.Errorf("portfolios: not stubbed")
	}
	return f.portfoliosFn(ctx)
}

func (f *fakeClient) Accounts(ctx context.Context, req *advtypes.AccountsRequest) (advtypes.AccountsResponse, error) {
	if f.accountsFn == nil {
		return advtypes.AccountsResponse{}, fmt.Errorf("accounts: not stubbed")
	}
	return f.accountsFn(ctx, req)
}

func (f *fakeClient) AccountsAll(ctx context.Context, req *advtypes.AccountsRequest) ([]advtypes.Account, error) {
	page := advtypes.AccountsRequest{}
	if req != nil {
		page = *req
	}
	var all []advtypes.Account
	for {
		resp, err := f.Accounts(ctx, &page)
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Accounts...)
		if !resp.HasNext || resp.Cursor == "" {
			return all, nil
		}
		page.Cursor = resp.Cursor
	}
}

func (f *fakeClient) Product(ctx context.Context, productID string) (*advtypes.Product, error) {
	if f.productFn == nil {
		return nil, fmt.Errorf("product: not stubbed")
	}
	return f.productFn(ctx, productID)
}

func (f *fakeClient) Ticker(ctx context.Context, productID string, limit int) (advtypes.TickerResponse, error) {
	if f.tickerFn == nil {
		return advtypes.TickerResponse{}, fmt.Errorf("ticker: not stubbed")
	}
	return f.tickerFn(ctx, productID, limit)
}

func (f *fakeClient) ProductBook(ctx context.Context, productID string, limit int) (advtypes.BookResponse, error) {
	if f.bookFn == nil {
		return advtypes.BookResponse{}, fmt.Errorf("book: not stubbed")
	}
	return f.bookFn(ctx, productID, limit)
}

func (f *fakeClient) Fills(ctx context.Context, req *advtypes.FillsRequest) (advtypes.FillsResponse, error) {
	if f.fillsFn == nil {
		return advtypes.FillsResponse{}, fmt.Errorf("fills: not stubbed")
	}
	return f.fillsFn(ctx, req)
}

func (f *fakeClient) CreateOrder(ctx context.Context, req *advtypes.CreateOrderRequest) (advtypes.CreateOrderResponse, error) {
	if f.createOrderFn == nil {
		return advtypes.CreateOrderResponse{}, fmt.Errorf("create order: not stubbed")
	}
	return f.createOrderFn(ctx, req)
}

// newTestEngine bypasses MergeEnv so ambient env vars cannot skew tests.
func newTestEngine(client *fakeClient, cfg Config) *Engine {
	return &Engine{client: client, cfg: cfg, log: zap.NewNop()}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.RequestTimeout = 2 * time.Second
	return cfg
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
