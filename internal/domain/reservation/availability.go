package reservation

import (
	"github.com/google/uuid"
)

// Summary is the read model the conflict check runs against: identity,
// canonical interval, status. The repository normalizes stored rows into
// this shape and drops rows whose dates cannot be recovered.
type Summary struct {
	ID      uuid.UUID
	Period  StayPeriod
	Status  Status
	Channel Channel
}

// Conflict identifies the blocking reservation that rejected a candidate.
// No ordering is guaranteed beyond "some blocking reservation".
type Conflict struct {
	ReservationID uuid.UUID
	Period        StayPeriod
}

type AvailabilityResult struct {
	Available bool
	Conflict  *Conflict
}

// CheckAvailability decides whether a candidate interval may be accepted
// against the existing reservations of a room. Half-open semantics: a
// candidate that exactly touches an existing boundary is not a conflict.
// Non-blocking statuses and degenerate stored periods are skipped; the
// caller is responsible for rejecting invalid candidates before calling.
func CheckAvailability(candidate StayPeriod, existing []Summary) AvailabilityResult {
	for _, s := range existing {
		if !s.Status.Blocks() {
			continue
		}
		if s.Period.IsZero() || !s.Period.CheckOut().After(s.Period.CheckIn()) {
			continue
		}
		if candidate.Overlaps(s.Period) {
			c := Conflict{ReservationID: s.ID, Period: s.Period}
			return AvailabilityResult{Available: false, Conflict: &c}
		}
	}
	return AvailabilityResult{Available: true}
}
