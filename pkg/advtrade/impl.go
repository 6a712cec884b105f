package advtrade

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/JSPierceColorado/coinbase-seller/pkg/advtrade/advtradeerrors"
	"github.com/JSPierceColorado/coinbase-seller/pkg/advtrade/advtypes"
	"github.com/JSPierceColorado/coinbase-seller/pkg/transport"
)

const brokeragePrefix = "/api/v3/brokerage"

type clientImpl struct {
	httpClient *transport.Client
}

func (c *clientImpl) Portfolios(ctx context.Context) ([]advtypes.Portfolio, error) {
	var resp advtypes.PortfoliosResponse
	if err := c.httpClient.Get(ctx, brokeragePrefix+"/portfolios", nil, &resp); err != nil {
		return nil, advtradeerrors.FromStatus(err)
	}
	return resp.Portfolios, nil
}

func (c *clientImpl) Accounts(ctx context.Context, req *advtypes.AccountsRequest) (advtypes.AccountsResponse, error) {
	q := url.Values{}
	if req != nil {
		if req.Limit > 0 {
			q.Set("limit", strconv.Itoa(req.Limit))
		}
		if req.Cursor != "" {
			q.Set("cursor", req.Cursor)
		}
		if req.RetailPortfolioID != "" {
			q.Set("retail_portfolio_id", req.RetailPortfolioID)
		}
	}
	var resp advtypes.AccountsResponse
	if err := c.httpClient.Get(ctx, brokeragePrefix+"/accounts", q, &resp); err != nil {
		return advtypes.AccountsResponse{}, advtradeerrors.FromStatus(err)
	}
	return resp, nil
}

func (c *clientImpl) AccountsAll(ctx context.Context, req *advtypes.AccountsRequest) ([]advtypes.Account, error) {
	page := advtypes.AccountsRequest{}
	if req != nil {
		page = *req
	}
	var all []advtypes.Account
	for {
		resp, err := c.Accounts(ctx, &page)
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

func (c *clientImpl) Product(ctx context.Context, productID string) (*advtypes.Product, error) {
	if productID == "" {
		return nil, fmt.Errorf("product id is required")
	}
	var resp advtypes.Product
	if err := c.httpClient.Get(ctx, brokeragePrefix+"/products/"+productID, nil, &resp); err != nil {
		return nil, advtradeerrors.FromStatus(err)
	}
	return &resp, nil
}

func (c *clientImpl) Ticker(ctx context.Context, productID string, limit int) (advtypes.TickerResponse, error) {
	if productID == "" {
		return advtypes.TickerResponse{}, fmt.Errorf("product id is required")
	}
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var resp advtypes.TickerResponse
	if err := c.httpClient.Get(ctx, brokeragePrefix+"/products/"+productID+"/ticker", q, &resp); err != nil {
		return advtypes.TickerResponse{}, advtradeerrors.FromStatus(err)
	}
	return resp, nil
}

func (c *clientImpl) ProductBook(ctx context.Context, productID string, limit int) (advtypes.BookResponse, error) {
	if productID == "" {
		return advtypes.BookResponse{}, fmt.Errorf("product id is required")
	}
	q := url.Values{"product_id": {productID}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var resp advtypes.BookResponse
	if err := c.httpClient.Get(ctx, brokeragePrefix+"/product_book", q, &resp); err != nil {
		return advtypes.BookResponse{}, advtradeerrors.FromStatus(err)
	}
	return resp, nil
}

func (c *clientImpl) Fills(ctx context.Context, req *advtypes.FillsRequest) (advtypes.FillsResponse, error) {
	if req == nil || req.ProductID == "" {
		return advtypes.FillsResponse{}, fmt.Errorf("product id is required")
	}
	q := url.Values{"product_id": {req.ProductID}}
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.Cursor != "" {
		q.Set("cursor", req.Cursor)
	}
	// The fills endpoint filters on retail_portfolio_id, not portfolio_id.
	if req.RetailPortfolioID != "" {
		q.Set("retail_portfolio_id", req.RetailPortfolioID)
	}
	var resp advtypes.FillsResponse
	if err := c.httpClient.Get(ctx, brokeragePrefix+"/orders/historical/fills", q, &resp); err != nil {
		return advtypes.FillsResponse{}, advtradeerrors.FromStatus(err)
	}
	return resp, nil
}

func (c *clientImpl) CreateOrder(ctx context.Context, req *advtypes.CreateOrderRequest) (advtypes.CreateOrderResponse, error) {
	if req == nil {
		return advtypes.CreateOrderResponse{}, fmt.Errorf("order request is required")
	}
	if req.ClientOrderID == "" {
		return advtypes.CreateOrderResponse{}, fmt.Errorf("client order id is required")
	}
	var resp advtypes.CreateOrderResponse
	if err := c.httpClient.Post(ctx, brokeragePrefix+"/orders", req, &resp); err != nil {
		return advtypes.CreateOrderResponse{}, advtradeerrors.FromStatus(err)
	}
	// Legacy envelopes omit the success flag and put order_id at the top
	// level; only treat the response as a rejection when no id came back.
	if !resp.Success && resp.ResolvedOrderID() == "" {
		return resp, advtradeerrors.FromOrderFailure(resp.ErrorResponse)
	}
	return resp, nil
}
