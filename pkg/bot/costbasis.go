package bot

import "github.com/shopspring/decimal"

// ComputeCostBasis replays an oldest-to-newest execution sequence through
// moving-average inventory accounting.
//
// Buys add quantity*price to the running cost; sells remove units at the
// current average, with quantity clipped to held units so inventory never
// goes negative. Records with non-positive quantity or price are discarded
// and not counted toward FillsConsumed. The function is pure: identical
// input always yields identical output.
func ComputeCostBasis(execs []Execution) CostBasis {
	units := decimal.Zero
	cost := decimal.Zero
	basis := CostBasis{}

	for _, ex := range execs {
		if !ex.Quantity.IsPositive() || !ex.Price.IsPositive() {
			continue
		}
		basis.FillsConsumed++

		switch ex.Side {
		case SideBuy:
			units = units.Add(ex.Quantity)
			cost = cost.Add(ex.Quantity.Mul(ex.Price))
			basis.LastBuy = ex.Price
			basis.LastBuyKnown = true
		case SideSell:
			if !units.IsPositive() {
				continue
			}
			avg := cost.Div(units)
			consume := decimal.Min(ex.Quantity, units)
			cost = cost.Sub(avg.Mul(consume))
			units = units.Sub(consume)
			// A full consumption leaves no units; drop any division residue
			// so a later buy starts from a clean slate. With dust units left,
			// the rounded average times consume can exceed the aggregate;
			// clamp so cost never goes negative.
			if !units.IsPositive() {
				units = decimal.Zero
				cost = decimal.Zero
			} else if cost.IsNegative() {
				cost = decimal.Zero
			}
		}
	}

	// Dust units whose cost was clamped away have no usable average.
	if units.IsPositive() && cost.IsPositive() {
		basis.AvgCost = cost.Div(units)
		basis.Known = true
	}
	return basis
}
