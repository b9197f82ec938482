package domain

import (
	"errors"
	"fmt"
	"sort"
)

// RateTier applies RateBps to loans whose duration is at most MaxDurationSeconds.
type RateTier struct {
	MaxDurationSeconds int64  `json:"max_duration_seconds"`
	RateBps            uint64 `json:"rate_bps"`
}

// RateSchedule is the duration-indexed annual rate table. Rates never
// decrease as durations grow.
type RateSchedule struct {
	tiers []RateTier
}

// NewRateSchedule sorts and validates tiers.
func NewRateSchedule(tiers []RateTier) (RateSchedule, error) {
	if len(tiers) == 0 {
		return RateSchedule{}, errors.New("rate schedule is empty")
	}
	sorted := append([]RateTier(nil), tiers...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MaxDurationSeconds < sorted[j].MaxDurationSeconds
	})
	for i, t := range sorted {
		if t.MaxDurationSeconds <= 0 {
			return RateSchedule{}, fmt.Errorf("tier %d: duration must be positive", i)
		}
		if i == 0 {
			continue
		}
		prev := sorted[i-1]
		if prev.MaxDurationSeconds == t.MaxDurationSeconds {
			return RateSchedule{}, fmt.Errorf("duplicate tier for %ds", t.MaxDurationSeconds)
		}
		if t.RateBps < prev.RateBps {
			return RateSchedule{}, fmt.Errorf("tier %ds rate %d is below shorter tier rate %d",
				t.MaxDurationSeconds, t.RateBps, prev.RateBps)
		}
	}
	return RateSchedule{tiers: sorted}, nil
}

// RateFor returns the rate of the shortest tier covering durationSeconds.
func (s RateSchedule) RateFor(durationSeconds int64) (uint64, bool) {
	for _, t := range s.tiers {
		if durationSeconds <= t.MaxDurationSeconds {
			return t.RateBps, true
		}
	}
	return 0, false
}

// Tiers returns a copy of the sorted tiers.
func (s RateSchedule) Tiers() []RateTier {
	return append([]RateTier(nil), s.tiers...)
}
