package pricing

import (
	"errors"
	"math"

	"lodgestay/internal/domain/reservation"
)

var (
	ErrPromoRequiresOneNight = errors.New("night-promo rate is only valid for exactly one night")
	ErrNoNights              = errors.New("stay must cover at least one night")
)

// MinNightsForWeeklyDiscount is the threshold at which the multi-night
// discount kicks in, regardless of nightly rate mode.
const MinNightsForWeeklyDiscount = 7

// Calculator prices a resolved rate mode against the rate table. It
// implements reservation.PriceCalculator.
//
// Rounding happens once, at the service-fee step: subtotal and discount
// are carried at full precision and combined before the fee is rounded
// to the nearest cent. The discount recorded in the breakdown is the
// exact difference between the subtotal and the rounded post-discount
// amount, so subtotal - discount + fee == total holds without drift
// against stored historical totals.
type Calculator struct {
	table *RateTable
}

func NewCalculator(table *RateTable) *Calculator {
	return &Calculator{table: table}
}

func (c *Calculator) Quote(mode reservation.RateMode, period reservation.StayPeriod) (reservation.Charge, error) {
	if mode.IsHourly() {
		return c.quoteHourly(mode.Hours())
	}
	return c.quoteNightly(mode, period)
}

func (c *Calculator) quoteHourly(hours int) (reservation.Charge, error) {
	price, err := c.table.HourlyPriceCents(hours)
	if err != nil {
		return reservation.Charge{}, err
	}

	// Hourly stays are flat-priced per band; no discount applies.
	subtotal, err := reservation.NewMoney(price)
	if err != nil {
		return reservation.Charge{}, err
	}
	fee, err := reservation.NewMoney(roundCents(float64(price) * c.table.ServiceFeePct() / 100))
	if err != nil {
		return reservation.Charge{}, err
	}
	zero, _ := reservation.NewMoney(0)
	return reservation.NewCharge(subtotal, subtotal, zero, fee)
}

func (c *Calculator) quoteNightly(mode reservation.RateMode, period reservation.StayPeriod) (reservation.Charge, error) {
	nights := period.Nights()
	if nights < 1 {
		return reservation.Charge{}, ErrNoNights
	}

	var unitCents int64
	if mode.IsNightPromo() {
		if nights != 1 {
			return reservation.Charge{}, ErrPromoRequiresOneNight
		}
		unitCents = c.table.PromoNightCents()
	} else {
		unitCents = c.table.StandardNightCents()
	}

	subtotalCents := unitCents * int64(nights)
	postDiscount := float64(subtotalCents)
	if nights >= MinNightsForWeeklyDiscount {
		postDiscount = float64(subtotalCents) * (100 - c.table.WeeklyDiscountPct()) / 100
	}

	feeCents := roundCents(postDiscount * c.table.ServiceFeePct() / 100)
	discountCents := subtotalCents - roundCents(postDiscount)

	unitRate, err := reservation.NewMoney(unitCents)
	if err != nil {
		return reservation.Charge{}, err
	}
	subtotal, err := reservation.NewMoney(subtotalCents)
	if err != nil {
		return reservation.Charge{}, err
	}
	discount, err := reservation.NewMoney(discountCents)
	if err != nil {
		return reservation.Charge{}, err
	}
	fee, err := reservation.NewMoney(feeCents)
	if err != nil {
		return reservation.Charge{}, err
	}
	return reservation.NewCharge(unitRate, subtotal, discount, fee)
}

func roundCents(v float64) int64 {
	return int64(math.Round(v))
}
