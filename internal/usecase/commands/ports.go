package commands

import (
	"context"
	"time"

	"lodgestay/internal/domain/reservation"
	"lodgestay/internal/domain/room"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types.
type RoomSnapshot struct {
	ID        uuid.UUID
	Number    string
	RoomType  room.Type
	LodgeID   uuid.UUID
	MaxGuests int
}

type ReservationSnapshot struct {
	ID       uuid.UUID
	RoomID   uuid.UUID
	Status   reservation.Status
	CheckIn  time.Time
	CheckOut time.Time
}

type RoomReads interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
}

// ActiveReservationReads exposes the blocking reservations of a room as
// canonical interval summaries.
type ActiveReservationReads interface {
	FindActiveByRoom(ctx context.Context, roomID uuid.UUID) ([]reservation.Summary, error)
}

type ReservationRepository interface {
	// Insert persists a new reservation, re-validating non-overlap
	// against blocking rows atomically at write time. A conflict is
	// reported as infra.KindConflict.
	Insert(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error)
	// UpdateStatus transitions id from the expected current status;
	// returns false when the row was not in that status anymore.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to reservation.Status) (bool, error)
	FindSnapshot(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
}
