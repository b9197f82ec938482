package domain

import (
	"errors"

	"github.com/holiman/uint256"
)

const (
	// BasisPoints is 100% expressed in basis points.
	BasisPoints uint64 = 10_000
	// SecondsPerYear is the simple-interest year (365 days).
	SecondsPerYear uint64 = 365 * 24 * 60 * 60
)

var (
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	ErrDivisionByZero     = errors.New("division by zero")
)

// product multiplies factors at 256-bit width. ok is false when the
// product does not fit in 256 bits.
func product(factors ...uint64) (*uint256.Int, bool) {
	acc := uint256.NewInt(1)
	for _, f := range factors {
		var overflow bool
		acc, overflow = new(uint256.Int).MulOverflow(acc, uint256.NewInt(f))
		if overflow {
			return nil, false
		}
	}
	return acc, true
}

// MulDiv computes (n1*n2*...)/(d1*d2*...) at 256-bit width, truncating
// toward zero once, at the final division.
func MulDiv(nums []uint64, dens []uint64) (uint64, error) {
	n, ok := product(nums...)
	if !ok {
		return 0, ErrArithmeticOverflow
	}
	d, ok := product(dens...)
	if !ok {
		return 0, ErrArithmeticOverflow
	}
	if d.IsZero() {
		return 0, ErrDivisionByZero
	}
	q := new(uint256.Int).Div(n, d)
	if !q.IsUint64() {
		return 0, ErrArithmeticOverflow
	}
	return q.Uint64(), nil
}

// CompareProducts returns -1, 0 or +1 as Πlhs is less than, equal to or
// greater than Πrhs. It never divides, so no precision is lost.
func CompareProducts(lhs []uint64, rhs []uint64) (int, error) {
	l, ok := product(lhs...)
	if !ok {
		return 0, ErrArithmeticOverflow
	}
	r, ok := product(rhs...)
	if !ok {
		return 0, ErrArithmeticOverflow
	}
	return l.Cmp(r), nil
}

// AddChecked returns a+b, with ok false when the sum overflows uint64.
func AddChecked(a, b uint64) (uint64, bool) {
	sum := new(uint256.Int).Add(uint256.NewInt(a), uint256.NewInt(b))
	return sum.Uint64(), sum.IsUint64()
}

// Pow10 returns 10^n for the small exponents used by asset decimals.
func Pow10(n int32) uint64 {
	v := uint64(1)
	for i := int32(0); i < n; i++ {
		v *= 10
	}
	return v
}
