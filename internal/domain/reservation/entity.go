package reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidTransition = errors.New("invalid status transition")

type Reservation struct {
	id        uuid.UUID
	roomID    uuid.UUID
	period    StayPeriod
	rateMode  RateMode
	status    Status
	channel   Channel
	guest     Guest
	charge    Charge
	createdAt time.Time
	updatedAt time.Time
}

func ReconstructReservation(
	id, roomID uuid.UUID,
	period StayPeriod,
	rateMode RateMode,
	status Status,
	channel Channel,
	guest Guest,
	charge Charge,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		roomID:    roomID,
		period:    period,
		rateMode:  rateMode,
		status:    status,
		channel:   channel,
		guest:     guest,
		charge:    charge,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Blocks reports whether this reservation occupies its room for conflict
// checking purposes.
func (r *Reservation) Blocks() bool {
	return r.status.Blocks()
}

func (r *Reservation) TransitionTo(next Status) error {
	if !next.IsValid() {
		return ErrInvalidTransition
	}
	if !r.status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.status, next)
	}
	r.status = next
	return nil
}

func (r *Reservation) Cancel() error {
	return r.TransitionTo(StatusCancelled)
}

func (r *Reservation) HasEnded(now time.Time) bool {
	return !now.Before(r.period.CheckOut())
}

func (r *Reservation) ID() uuid.UUID      { return r.id }
func (r *Reservation) RoomID() uuid.UUID  { return r.roomID }
func (r *Reservation) Period() StayPeriod { return r.period }
func (r *Reservation) RateMode() RateMode { return r.rateMode }
func (r *Reservation) Status() Status     { return r.status }
func (r *Reservation) Channel() Channel   { return r.channel }
func (r *Reservation) Guest() Guest       { return r.guest }
func (r *Reservation) Charge() Charge     { return r.charge }

func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }
