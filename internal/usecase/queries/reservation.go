package queries

import (
	"context"
	"time"

	"lodgestay/internal/infra"
	"lodgestay/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrReservationNotFound = errs.New("reservation not found")

// Read models (DTO for read side)
type ReservationView struct {
	ID              uuid.UUID  `json:"id"`
	RoomID          uuid.UUID  `json:"room_id"`
	RoomNumber      string     `json:"room_number"`
	CheckIn         time.Time  `json:"check_in"`
	CheckOut        time.Time  `json:"check_out"`
	RateMode        string     `json:"rate_mode"`
	HourlyDuration  *int32     `json:"hourly_duration,omitempty"`
	Status          string     `json:"status"`
	Channel         string     `json:"channel"`
	GuestName       string     `json:"guest_name"`
	GuestPhone      string     `json:"guest_phone"`
	GuestCount      int32      `json:"guest_count"`
	UnitRateCents   int64      `json:"unit_rate_cents"`
	SubtotalCents   int64      `json:"subtotal_cents"`
	DiscountCents   int64      `json:"discount_cents"`
	ServiceFeeCents int64      `json:"service_fee_cents"`
	TotalCents      int64      `json:"total_cents"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type ReservationListItem struct {
	ID         uuid.UUID `json:"id"`
	RoomID     uuid.UUID `json:"room_id"`
	RoomNumber string    `json:"room_number"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	RateMode   string    `json:"rate_mode"`
	Status     string    `json:"status"`
	Channel    string    `json:"channel"`
	TotalCents int64     `json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
}

type RoomView struct {
	ID        uuid.UUID `json:"id"`
	Number    string    `json:"number"`
	RoomType  string    `json:"room_type"`
	LodgeID   uuid.UUID `json:"lodge_id"`
	MaxGuests int32     `json:"max_guests"`
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error)
}

type RoomQueries interface {
	ListByLodge(ctx context.Context, lodgeID uuid.UUID) ([]*RoomView, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByRoomFirstPage(ctx context.Context, roomID uuid.UUID, limit int32) ([]*ReservationListItem, error)
	FindByRoomKeyset(ctx context.Context, roomID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*ReservationListItem, error)
}

type RoomReadStore interface {
	ListByLodge(ctx context.Context, lodgeID uuid.UUID) ([]*RoomView, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReservationNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByRoom(ctx context.Context, roomID uuid.UUID, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var (
		rows []*ReservationListItem
		err  error
	)
	if after == nil || after.After == "" {
		rows, err = q.store.FindByRoomFirstPage(ctx, roomID, int32(limit))
	} else {
		lastCreatedAt, lastID, decodeErr := DecodeAfterCursor(after.After)
		if decodeErr != nil {
			return nil, nil, errs.Mark(decodeErr, ErrInvalidCursor)
		}
		rows, err = q.store.FindByRoomKeyset(ctx, roomID, lastCreatedAt, lastID, int32(limit))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) == limit {
		last := rows[len(rows)-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}
	return rows, next, nil
}

type roomQueriesImpl struct {
	store RoomReadStore
}

func NewRoomQueries(store RoomReadStore) RoomQueries {
	return &roomQueriesImpl{store: store}
}

func (q *roomQueriesImpl) ListByLodge(ctx context.Context, lodgeID uuid.UUID) ([]*RoomView, error) {
	return q.store.ListByLodge(ctx, lodgeID)
}
