package domain

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Asset identifies one of the two fungible tokens tracked by the ledger.
type Asset string

const (
	AssetCollateral Asset = "COLLATERAL" // BTC-pegged token
	AssetQuote      Asset = "QUOTE"      // stablecoin
)

const (
	CollateralDecimals = 8
	QuoteDecimals      = 6
)

// Assets lists every supported asset in a stable order.
var Assets = []Asset{AssetCollateral, AssetQuote}

// ParseAsset validates a textual asset identifier.
func ParseAsset(s string) (Asset, error) {
	switch Asset(s) {
	case AssetCollateral, AssetQuote:
		return Asset(s), nil
	}
	return "", fmt.Errorf("unknown asset %q", s)
}

// Decimals returns the fixed precision of the asset.
func (a Asset) Decimals() int32 {
	if a == AssetCollateral {
		return CollateralDecimals
	}
	return QuoteDecimals
}

// Format renders an amount in smallest units as a whole-unit decimal string.
func (a Asset) Format(amount uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -a.Decimals()).StringFixed(a.Decimals())
}

// ParseAmount converts a whole-unit decimal string into smallest units.
// Fractions beyond the asset precision are rejected rather than rounded.
func (a Asset) ParseAmount(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse amount: %w", err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount %s is negative", s)
	}
	scaled := d.Shift(a.Decimals())
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("amount %s exceeds %d decimals", s, a.Decimals())
	}
	bi := scaled.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("amount %s overflows", s)
	}
	return bi.Uint64(), nil
}
