package service

import (
	"context"
	"errors"
	"time"

	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports"
	"bitpesa-lending/pkg/apperror"
)

// PriceOracleImpl implements ports.PriceOracle on top of a raw feed,
// enforcing the staleness bound. It does not retry.
type PriceOracleImpl struct {
	feed         ports.PriceFeed
	clock        ports.Clock
	maxStaleness int64
}

// NewPriceOracle creates a new PriceOracleImpl.
func NewPriceOracle(feed ports.PriceFeed, clock ports.Clock, maxStaleness time.Duration) *PriceOracleImpl {
	return &PriceOracleImpl{
		feed:         feed,
		clock:        clock,
		maxStaleness: int64(maxStaleness / time.Second),
	}
}

// GetPrice returns the latest price for pair, failing with OracleUnavailable
// when the feed errors or reports a zero price and StalePrice when the
// reading is older than the staleness bound.
func (o *PriceOracleImpl) GetPrice(ctx context.Context, pair string) (domain.Price, error) {
	p, err := o.feed.Latest(ctx, pair)
	if err != nil {
		return domain.Price{}, apperror.ErrOracleUnavailable(err)
	}
	if p.Value == 0 {
		return domain.Price{}, apperror.ErrOracleUnavailable(errors.New("non-positive price"))
	}

	age := o.clock.Now() - p.AsOf
	if age > o.maxStaleness {
		return domain.Price{}, apperror.ErrStalePrice(age, o.maxStaleness)
	}
	if p.Pair == "" {
		p.Pair = pair
	}
	return p, nil
}
