package queries

import (
	"context"
	"time"

	"lodgestay/internal/domain/reservation"
	"lodgestay/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidProbePeriod = errs.New("check-out must be after check-in")

type ConflictView struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
}

type AvailabilityView struct {
	RoomID    uuid.UUID     `json:"room_id"`
	CheckIn   time.Time     `json:"check_in"`
	CheckOut  time.Time     `json:"check_out"`
	Available bool          `json:"available"`
	Conflict  *ConflictView `json:"conflict,omitempty"`
}

type ActiveStayReadStore interface {
	FindActiveByRoom(ctx context.Context, roomID uuid.UUID) ([]reservation.Summary, error)
}

type AvailabilityQueries interface {
	Probe(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	store ActiveStayReadStore
}

func NewAvailabilityQueries(store ActiveStayReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{store: store}
}

// Probe is advisory only: a clear answer can be stale by the time a
// reservation is attempted. The write path re-validates atomically.
func (q *availabilityQueriesImpl) Probe(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (*AvailabilityView, error) {
	period, err := reservation.NewStayPeriod(checkIn, checkOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidProbePeriod)
	}

	existing, err := q.store.FindActiveByRoom(ctx, roomID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load active reservations")
	}

	result := reservation.CheckAvailability(period, existing)
	view := &AvailabilityView{
		RoomID:    roomID,
		CheckIn:   period.CheckIn(),
		CheckOut:  period.CheckOut(),
		Available: result.Available,
	}
	if result.Conflict != nil {
		view.Conflict = &ConflictView{
			ReservationID: result.Conflict.ReservationID,
			CheckIn:       result.Conflict.Period.CheckIn(),
			CheckOut:      result.Conflict.Period.CheckOut(),
		}
	}
	return view, nil
}
