package pricing

import (
	"errors"
	"fmt"
)

var (
	ErrMissingHourlyBands = errors.New("hourly band table must cover 2h through 13h")
	ErrBandsNotAscending  = errors.New("hourly band table must be non-decreasing")
	ErrNonPositiveRate    = errors.New("rates must be positive")
	ErrInvalidPercentage  = errors.New("percentage must be within [0,100)")
)

const (
	minBandHours   = 2
	maxBandHours   = 13
	hoursPerBlock  = 24
	hourlyBandSize = maxBandHours - minBandHours + 1
)

// Config mirrors the static pricing configuration; the bootstrap layer
// maps environment config onto it.
type Config struct {
	HourlyBandCents    []int64
	DayBlockCents      int64
	StandardNightCents int64
	PromoNightCents    int64
	WeeklyDiscountPct  float64
	ServiceFeePct      float64
}

// RateTable is the validated form of Config. Band prices ascend and top
// out at the day block price, which keeps hourly pricing monotonically
// non-decreasing in duration.
type RateTable struct {
	hourlyBands        []int64 // index 0 = 2h band
	dayBlockCents      int64
	standardNightCents int64
	promoNightCents    int64
	weeklyDiscountPct  float64
	serviceFeePct      float64
}

func NewRateTable(cfg Config) (*RateTable, error) {
	if len(cfg.HourlyBandCents) != hourlyBandSize {
		return nil, fmt.Errorf("%w: got %d bands, want %d", ErrMissingHourlyBands, len(cfg.HourlyBandCents), hourlyBandSize)
	}
	prev := int64(0)
	for i, p := range cfg.HourlyBandCents {
		if p <= 0 {
			return nil, ErrNonPositiveRate
		}
		if p < prev {
			return nil, fmt.Errorf("%w: band %dh", ErrBandsNotAscending, minBandHours+i)
		}
		prev = p
	}
	if cfg.DayBlockCents < prev {
		return nil, fmt.Errorf("%w: day block below 13h band", ErrBandsNotAscending)
	}
	if cfg.DayBlockCents <= 0 || cfg.StandardNightCents <= 0 || cfg.PromoNightCents <= 0 {
		return nil, ErrNonPositiveRate
	}
	if cfg.WeeklyDiscountPct < 0 || cfg.WeeklyDiscountPct >= 100 {
		return nil, ErrInvalidPercentage
	}
	if cfg.ServiceFeePct < 0 || cfg.ServiceFeePct >= 100 {
		return nil, ErrInvalidPercentage
	}

	bands := make([]int64, hourlyBandSize)
	copy(bands, cfg.HourlyBandCents)
	return &RateTable{
		hourlyBands:        bands,
		dayBlockCents:      cfg.DayBlockCents,
		standardNightCents: cfg.StandardNightCents,
		promoNightCents:    cfg.PromoNightCents,
		weeklyDiscountPct:  cfg.WeeklyDiscountPct,
		serviceFeePct:      cfg.ServiceFeePct,
	}, nil
}

// HourlyPriceCents maps a whole-hour duration onto the step table:
// distinct flat prices for 2..13h, one flat price for 14-24h, and past
// 24h a decomposition into full day blocks plus a remainder band. A
// remainder longer than 13h rounds up to a full extra block.
func (t *RateTable) HourlyPriceCents(hours int) (int64, error) {
	if hours < minBandHours {
		return 0, fmt.Errorf("hourly duration below minimum: %dh", hours)
	}
	if hours <= hoursPerBlock {
		return t.bandPrice(hours), nil
	}
	blocks := int64(hours / hoursPerBlock)
	remainder := hours % hoursPerBlock
	return blocks*t.dayBlockCents + t.remainderPrice(remainder), nil
}

func (t *RateTable) bandPrice(hours int) int64 {
	if hours <= maxBandHours {
		return t.hourlyBands[hours-minBandHours]
	}
	return t.dayBlockCents
}

func (t *RateTable) remainderPrice(hours int) int64 {
	switch {
	case hours == 0:
		return 0
	case hours < minBandHours:
		return t.hourlyBands[0]
	case hours <= maxBandHours:
		return t.hourlyBands[hours-minBandHours]
	default:
		// >13h remainder counts as a full extra block
		return t.dayBlockCents
	}
}

func (t *RateTable) StandardNightCents() int64 { return t.standardNightCents }
func (t *RateTable) PromoNightCents() int64    { return t.promoNightCents }
func (t *RateTable) WeeklyDiscountPct() float64 {
	return t.weeklyDiscountPct
}
func (t *RateTable) ServiceFeePct() float64 { return t.serviceFeePct }
