package reservation

import (
	"errors"

	"lodgestay/internal/domain/room"
	"lodgestay/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrTooManyGuests = errors.New("guest count exceeds room capacity")
	ErrNegativePrice = errors.New("price cannot be negative")
)

// PriceCalculator derives the monetary breakdown for an already-resolved
// rate mode. Implemented by the pricing package from the configured rate
// table.
type PriceCalculator interface {
	Quote(mode RateMode, period StayPeriod) (Charge, error)
}

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
	}
}

// CreateReservation builds a new pending reservation for an accepted
// candidate. The conflict check is the caller's responsibility; this is
// where capacity and pricing invariants are enforced.
func (f *Factory) CreateReservation(
	roomEntity *room.Room,
	period StayPeriod,
	mode RateMode,
	guest Guest,
	channel Channel,
) (*Reservation, error) {
	if !roomEntity.CanHost(guest.Count()) {
		return nil, ErrTooManyGuests
	}
	if !channel.IsValid() {
		return nil, errors.New("invalid acquisition channel")
	}

	charge, err := f.PriceCalculator.Quote(mode, period)
	if err != nil {
		return nil, err
	}

	now := f.Clock.Now()
	return &Reservation{
		id:        uuid.New(),
		roomID:    roomEntity.ID(),
		period:    period,
		rateMode:  mode,
		status:    StatusPending,
		channel:   channel,
		guest:     guest,
		charge:    charge,
		createdAt: now,
		updatedAt: now,
	}, nil
}
