package bot

import (
	"context"
	"sort"
	"strings"

	"github.com/JSPierceColorado/coinbase-seller/pkg/advtrade/advtypes"
)

// collectExecutions retrieves the asset's historical fills: every page up to
// the configured cap is fetched and concatenated, then the whole set is
// sorted once by trade time. Pages are never assumed to arrive in
// chronological order, so reconstruction must not start until the full
// retrieval is done; an early exit on positive inventory would compute the
// moving average over an ordering-inconsistent subset.
//
// Any page failure aborts reconstruction for this asset for the current
// cycle; the caller treats the cost basis as unknown.
func (e *Engine) collectExecutions(ctx context.Context, productID, portfolioID string) ([]Execution, error) {
	var fills []advtypes.Fill
	cursor := ""
	for page := 0; page < e.cfg.MaxFillPages; page++ {
		resp, err := e.fetchFillsPage(ctx, productID, portfolioID, cursor)
		if err != nil {
			return nil, &FetchError{Op: "fetch fills page", Err: err}
		}
		if len(resp.Fills) == 0 {
			break
		}
		fills = append(fills, resp.Fills...)
		if resp.Cursor == "" {
			break
		}
		cursor = resp.Cursor
	}

	execs := make([]Execution, 0, len(fills))
	for _, f := range fills {
		execs = append(execs, Execution{
			Side:     Side(strings.ToUpper(f.Side)),
			Quantity: f.Size.Decimal,
			Price:    f.Price.Decimal,
			Time:     f.TradeTime.Time,
		})
	}
	sort.SliceStable(execs, func(i, j int) bool {
		return execs[i].Time.Before(execs[j].Time)
	})
	return execs, nil
}

func (e *Engine) fetchFillsPage(ctx context.Context, productID, portfolioID, cursor string) (advtypes.FillsResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.RequestTimeout)
	defer cancel()
	return e.client.Fills(ctx, &advtypes.FillsRequest{
		ProductID:         productID,
		Limit:             e.cfg.FillPageSize,
		Cursor:            cursor,
		RetailPortfolioID: portfolioID,
	})
}
