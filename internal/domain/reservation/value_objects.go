package reservation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidStayPeriod   = errors.New("check-out must be after check-in")
	ErrEmptyGuestName      = errors.New("guest name cannot be empty")
	ErrGuestNameTooLong    = errors.New("guest name is too long (max 120 characters)")
	ErrInvalidGuestContact = errors.New("guest contact number is malformed")
	ErrInvalidGuestCount   = errors.New("guest count must be positive")
)

const nightLength = 24 * time.Hour

// StayPeriod is the half-open interval [checkIn, checkOut). The check-out
// instant is excluded, so back-to-back stays sharing a boundary never
// overlap.
type StayPeriod struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayPeriod(checkIn, checkOut time.Time) (StayPeriod, error) {
	if !checkOut.After(checkIn) {
		return StayPeriod{}, ErrInvalidStayPeriod
	}
	return StayPeriod{checkIn: checkIn, checkOut: checkOut}, nil
}

// NewHourlyStay derives the check-out from a duration in whole hours.
func NewHourlyStay(checkIn time.Time, hours int) (StayPeriod, error) {
	if hours < MinHourlyDuration {
		return StayPeriod{}, ErrHourlyTooShort
	}
	if hours > MaxHourlyDuration {
		return StayPeriod{}, ErrHourlyTooLong
	}
	checkOut := checkIn.Add(time.Duration(hours) * time.Hour)
	if !checkOut.After(checkIn) {
		return StayPeriod{}, ErrInvalidStayPeriod
	}
	return StayPeriod{checkIn: checkIn, checkOut: checkOut}, nil
}

func (p StayPeriod) CheckIn() time.Time {
	return p.checkIn
}

func (p StayPeriod) CheckOut() time.Time {
	return p.checkOut
}

func (p StayPeriod) Duration() time.Duration {
	return p.checkOut.Sub(p.checkIn)
}

func (p StayPeriod) IsZero() bool {
	return p.checkIn.IsZero() && p.checkOut.IsZero()
}

// Overlaps tests two half-open intervals: [a1,a2) and [b1,b2) overlap
// iff a1 < b2 && b1 < a2.
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return p.checkIn.Before(other.checkOut) && other.checkIn.Before(p.checkOut)
}

// Nights counts billable nights: ceil(duration / 24h).
func (p StayPeriod) Nights() int {
	d := p.Duration()
	nights := int(d / nightLength)
	if d%nightLength != 0 {
		nights++
	}
	return nights
}

func (p StayPeriod) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", p.checkIn.Format(time.RFC3339), p.checkOut.Format(time.RFC3339))
}

// Money is an amount in cents of the configured currency.
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errors.New("money cannot be negative")
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Charge is the monetary breakdown of a reservation. The invariant
// subtotal - discount + serviceFee == total holds by construction.
type Charge struct {
	unitRate   Money
	subtotal   Money
	discount   Money
	serviceFee Money
}

func NewCharge(unitRate, subtotal, discount, serviceFee Money) (Charge, error) {
	if discount.Cents() > subtotal.Cents() {
		return Charge{}, errors.New("discount cannot exceed subtotal")
	}
	return Charge{
		unitRate:   unitRate,
		subtotal:   subtotal,
		discount:   discount,
		serviceFee: serviceFee,
	}, nil
}

func (c Charge) UnitRate() Money   { return c.unitRate }
func (c Charge) Subtotal() Money   { return c.subtotal }
func (c Charge) Discount() Money   { return c.discount }
func (c Charge) ServiceFee() Money { return c.serviceFee }

func (c Charge) Total() Money {
	return Money{cents: c.subtotal.cents - c.discount.cents + c.serviceFee.cents}
}

var guestPhonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,19}$`)

// Guest carries contact details and head count for a single reservation.
type Guest struct {
	name  string
	phone string
	count int
}

func NewGuest(name, phone string, count int) (Guest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Guest{}, ErrEmptyGuestName
	}
	if len(name) > 120 {
		return Guest{}, ErrGuestNameTooLong
	}
	if !guestPhonePattern.MatchString(strings.TrimSpace(phone)) {
		return Guest{}, ErrInvalidGuestContact
	}
	if count <= 0 {
		return Guest{}, ErrInvalidGuestCount
	}
	return Guest{name: name, phone: strings.TrimSpace(phone), count: count}, nil
}

func (g Guest) Name() string  { return g.name }
func (g Guest) Phone() string { return g.phone }
func (g Guest) Count() int    { return g.count }
