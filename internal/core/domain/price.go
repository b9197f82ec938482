package domain

// PriceScale is the fixed-point scale of Price.Value: quote whole units per
// one whole collateral unit, multiplied by 1e8.
const PriceScale uint64 = 100_000_000

// Price is an oracle reading for a collateral/quote pair.
type Price struct {
	Pair  string `json:"pair"`
	Value uint64 `json:"value"`
	AsOf  int64  `json:"as_of"`
}

// CollateralValue converts a collateral amount into quote smallest units.
func (p Price) CollateralValue(collateralAmount uint64) (uint64, error) {
	return MulDiv(
		[]uint64{collateralAmount, p.Value, Pow10(QuoteDecimals)},
		[]uint64{Pow10(CollateralDecimals), PriceScale},
	)
}

// MaxPrincipal returns the largest principal (quote smallest units) that
// collateralAmount can back at ratioBps. The division happens once.
func (p Price) MaxPrincipal(collateralAmount, ratioBps uint64) (uint64, error) {
	return MulDiv(
		[]uint64{collateralAmount, p.Value, Pow10(QuoteDecimals), BasisPoints},
		[]uint64{Pow10(CollateralDecimals), PriceScale, ratioBps},
	)
}

// HealthRatioBps returns collateral value / debt in basis points, truncated.
func (p Price) HealthRatioBps(collateralAmount, debt uint64) (uint64, error) {
	return MulDiv(
		[]uint64{collateralAmount, p.Value, Pow10(QuoteDecimals), BasisPoints},
		[]uint64{Pow10(CollateralDecimals), PriceScale, debt},
	)
}

// BelowThreshold reports whether collateral value / debt < thresholdBps,
// compared exactly by cross-multiplication.
func (p Price) BelowThreshold(collateralAmount, debt, thresholdBps uint64) (bool, error) {
	cmp, err := CompareProducts(
		[]uint64{collateralAmount, p.Value, Pow10(QuoteDecimals), BasisPoints},
		[]uint64{thresholdBps, debt, Pow10(CollateralDecimals), PriceScale},
	)
	if err != nil {
		return false, err
	}
	return cmp < 0, nil
}
