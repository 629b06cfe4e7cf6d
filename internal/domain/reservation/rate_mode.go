package reservation

import "errors"

var (
	ErrUnknownRateMode  = errors.New("unknown rate mode")
	ErrHourlyTooShort   = errors.New("hourly stay must be at least 2 hours")
	ErrHourlyTooLong    = errors.New("hourly stay cannot exceed 30 days")
	ErrHourlyNeedsHours = errors.New("hourly mode requires a duration in hours")
)

const (
	MinHourlyDuration = 2
	MaxHourlyDuration = 24 * 30
)

type rateKind uint8

const (
	kindStandard rateKind = iota
	kindNightPromo
	kindHourly
)

// RateMode is a closed variant: Standard, NightPromo, or Hourly with a
// duration. Invalid modes are unrepresentable; construct through the
// functions below.
type RateMode struct {
	kind  rateKind
	hours int
}

func StandardRate() RateMode {
	return RateMode{kind: kindStandard}
}

func NightPromoRate() RateMode {
	return RateMode{kind: kindNightPromo}
}

func HourlyRate(hours int) (RateMode, error) {
	if hours < MinHourlyDuration {
		return RateMode{}, ErrHourlyTooShort
	}
	if hours > MaxHourlyDuration {
		return RateMode{}, ErrHourlyTooLong
	}
	return RateMode{kind: kindHourly, hours: hours}, nil
}

func (m RateMode) IsStandard() bool   { return m.kind == kindStandard }
func (m RateMode) IsNightPromo() bool { return m.kind == kindNightPromo }
func (m RateMode) IsHourly() bool     { return m.kind == kindHourly }

// Hours returns the requested duration for hourly mode, zero otherwise.
func (m RateMode) Hours() int {
	if m.kind != kindHourly {
		return 0
	}
	return m.hours
}

func (m RateMode) String() string {
	switch m.kind {
	case kindNightPromo:
		return "night-promo"
	case kindHourly:
		return "hourly"
	default:
		return "standard"
	}
}

// ParseStoredRateMode rebuilds a RateMode from its persisted form.
func ParseStoredRateMode(s string, hours *int) (RateMode, error) {
	switch s {
	case "standard":
		return StandardRate(), nil
	case "night-promo":
		return NightPromoRate(), nil
	case "hourly":
		if hours == nil {
			return RateMode{}, ErrHourlyNeedsHours
		}
		return HourlyRate(*hours)
	default:
		return RateMode{}, ErrUnknownRateMode
	}
}

// ResolveRateMode applies the promo auto-selection policy to a caller
// preference. An explicit hourly request is honored unconditionally; a
// one-night stay is forced to night-promo; any other night count is
// forced to standard even if promo was asked for. The second return
// value reports whether the preference was overridden, so callers can
// surface the price-changing adjustment.
func ResolveRateMode(preferred RateMode, period StayPeriod) (RateMode, bool) {
	if preferred.IsHourly() {
		return preferred, false
	}
	if period.Nights() == 1 {
		return NightPromoRate(), !preferred.IsNightPromo()
	}
	return StandardRate(), !preferred.IsStandard()
}
