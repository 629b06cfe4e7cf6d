package readstore

import (
	"context"
	"log/slog"
	"time"

	"lodgestay/internal/domain/reservation"
	"lodgestay/internal/infra"
	"lodgestay/internal/pkg/pgconv"
	"lodgestay/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const findActiveByRoomSQL = `
SELECT id, check_in, check_out, status, channel
FROM reservations
WHERE room_id = $1
  AND status IN ('pending', 'confirmed', 'checked-in')
ORDER BY check_in
`

const listForDateRangeSQL = `
SELECT id, room_id, check_in, check_out, status, channel
FROM reservations
WHERE room_id = ANY($1::uuid[])
  AND status IN ('pending', 'confirmed', 'checked-in')
  AND check_in < $3
  AND $2 < check_out
ORDER BY room_id, check_in
`

const findReservationViewSQL = `
SELECT r.id, r.room_id, rm.number, r.check_in, r.check_out,
       r.rate_mode, r.hourly_duration, r.status, r.channel,
       r.guest_name, r.guest_phone, r.guest_count,
       r.unit_rate_cents, r.subtotal_cents, r.discount_cents,
       r.service_fee_cents, r.total_cents,
       r.created_at, r.updated_at
FROM reservations r
JOIN rooms rm ON rm.id = r.room_id
WHERE r.id = $1
`

const listByRoomFirstPageSQL = `
SELECT r.id, r.room_id, rm.number, r.check_in, r.check_out,
       r.rate_mode, r.status, r.channel, r.total_cents, r.created_at
FROM reservations r
JOIN rooms rm ON rm.id = r.room_id
WHERE r.room_id = $1
ORDER BY r.created_at DESC, r.id DESC
LIMIT $2
`

const listByRoomKeysetSQL = `
SELECT r.id, r.room_id, rm.number, r.check_in, r.check_out,
       r.rate_mode, r.status, r.channel, r.total_cents, r.created_at
FROM reservations r
JOIN rooms rm ON rm.id = r.room_id
WHERE r.room_id = $1
  AND (r.created_at, r.id) < ($2, $3)
ORDER BY r.created_at DESC, r.id DESC
LIMIT $4
`

// ReservationReadStore normalizes stored rows into canonical interval
// types at this boundary; the layers above never guess at a date's
// representation. Rows whose interval cannot be recovered are skipped
// with a warning so historical garbage never blocks new bookings.
type ReservationReadStore struct {
	db *pgxpool.Pool
}

func NewReservationReadStore(db *pgxpool.Pool) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

func (s *ReservationReadStore) FindActiveByRoom(ctx context.Context, roomID uuid.UUID) ([]reservation.Summary, error) {
	rows, err := s.db.Query(ctx, findActiveByRoomSQL, pgconv.UUIDToPgtype(roomID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active reservations", err)
	}
	defer rows.Close()

	var summaries []reservation.Summary
	for rows.Next() {
		var (
			id       pgtype.UUID
			checkIn  pgtype.Timestamptz
			checkOut pgtype.Timestamptz
			status   string
			channel  string
		)
		if err := rows.Scan(&id, &checkIn, &checkOut, &status, &channel); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}

		period, ok := canonicalPeriod(uuid.UUID(id.Bytes), checkIn, checkOut)
		if !ok {
			continue
		}
		summaries = append(summaries, reservation.Summary{
			ID:      uuid.UUID(id.Bytes),
			Period:  period,
			Status:  reservation.Status(status),
			Channel: reservation.Channel(channel),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rows", err)
	}

	return summaries, nil
}

func (s *ReservationReadStore) ListForDateRange(ctx context.Context, roomIDs []uuid.UUID, from, to time.Time) ([]queries.StayRecord, error) {
	ids := make([]string, len(roomIDs))
	for i, id := range roomIDs {
		ids[i] = id.String()
	}

	rows, err := s.db.Query(ctx, listForDateRangeSQL, ids, pgconv.TimeToPgtype(from), pgconv.TimeToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations for range", err)
	}
	defer rows.Close()

	var records []queries.StayRecord
	for rows.Next() {
		var (
			id       pgtype.UUID
			roomID   pgtype.UUID
			checkIn  pgtype.Timestamptz
			checkOut pgtype.Timestamptz
			status   string
			channel  string
		)
		if err := rows.Scan(&id, &roomID, &checkIn, &checkOut, &status, &channel); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}

		period, ok := canonicalPeriod(uuid.UUID(id.Bytes), checkIn, checkOut)
		if !ok {
			continue
		}
		records = append(records, queries.StayRecord{
			ID:      uuid.UUID(id.Bytes),
			RoomID:  uuid.UUID(roomID.Bytes),
			Period:  period,
			Status:  reservation.Status(status),
			Channel: reservation.Channel(channel),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rows", err)
	}

	return records, nil
}

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	var (
		rowID    pgtype.UUID
		roomID   pgtype.UUID
		number   string
		checkIn  pgtype.Timestamptz
		checkOut pgtype.Timestamptz
		rateMode string
		hourly   pgtype.Int4
		status   string
		channel  string
		name     string
		phone    string
		count    int32
		unit     int64
		subtotal int64
		discount int64
		fee      int64
		total    int64
		created  pgtype.Timestamptz
		updated  pgtype.Timestamptz
	)
	err := s.db.QueryRow(ctx, findReservationViewSQL, pgconv.UUIDToPgtype(id)).Scan(
		&rowID, &roomID, &number, &checkIn, &checkOut,
		&rateMode, &hourly, &status, &channel,
		&name, &phone, &count,
		&unit, &subtotal, &discount, &fee, &total,
		&created, &updated,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return &queries.ReservationView{
		ID:              uuid.UUID(rowID.Bytes),
		RoomID:          uuid.UUID(roomID.Bytes),
		RoomNumber:      number,
		CheckIn:         pgconv.TimeFromPgtype(checkIn),
		CheckOut:        pgconv.TimeFromPgtype(checkOut),
		RateMode:        rateMode,
		HourlyDuration:  pgconv.Int32PtrFromPgtype(hourly),
		Status:          status,
		Channel:         channel,
		GuestName:       name,
		GuestPhone:      phone,
		GuestCount:      count,
		UnitRateCents:   unit,
		SubtotalCents:   subtotal,
		DiscountCents:   discount,
		ServiceFeeCents: fee,
		TotalCents:      total,
		CreatedAt:       pgconv.TimeFromPgtype(created),
		UpdatedAt:       pgconv.TimeFromPgtype(updated),
	}, nil
}

func (s *ReservationReadStore) FindByRoomFirstPage(ctx context.Context, roomID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := s.db.Query(ctx, listByRoomFirstPageSQL, pgconv.UUIDToPgtype(roomID), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations first page", err)
	}
	defer rows.Close()
	return scanListItems(rows)
}

func (s *ReservationReadStore) FindByRoomKeyset(ctx context.Context, roomID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := s.db.Query(ctx, listByRoomKeysetSQL,
		pgconv.UUIDToPgtype(roomID), pgconv.TimeToPgtype(lastCreatedAt), pgconv.UUIDToPgtype(lastID), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations keyset", err)
	}
	defer rows.Close()
	return scanListItems(rows)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanListItems(rows pgxRows) ([]*queries.ReservationListItem, error) {
	var items []*queries.ReservationListItem
	for rows.Next() {
		var (
			id       pgtype.UUID
			roomID   pgtype.UUID
			number   string
			checkIn  pgtype.Timestamptz
			checkOut pgtype.Timestamptz
			rateMode string
			status   string
			channel  string
			total    int64
			created  pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &roomID, &number, &checkIn, &checkOut, &rateMode, &status, &channel, &total, &created); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		items = append(items, &queries.ReservationListItem{
			ID:         uuid.UUID(id.Bytes),
			RoomID:     uuid.UUID(roomID.Bytes),
			RoomNumber: number,
			CheckIn:    pgconv.TimeFromPgtype(checkIn),
			CheckOut:   pgconv.TimeFromPgtype(checkOut),
			RateMode:   rateMode,
			Status:     status,
			Channel:    channel,
			TotalCents: total,
			CreatedAt:  pgconv.TimeFromPgtype(created),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rows", err)
	}
	return items, nil
}

// canonicalPeriod rebuilds the half-open interval from a stored row.
// Missing or inverted dates are a data anomaly: warn and skip, never
// fail the whole read.
func canonicalPeriod(id uuid.UUID, checkIn, checkOut pgtype.Timestamptz) (reservation.StayPeriod, bool) {
	if !checkIn.Valid || !checkOut.Valid {
		slog.Warn("skipping reservation with missing dates", "reservation_id", id)
		return reservation.StayPeriod{}, false
	}
	period, err := reservation.NewStayPeriod(checkIn.Time, checkOut.Time)
	if err != nil {
		slog.Warn("skipping reservation with invalid interval",
			"reservation_id", id, "check_in", checkIn.Time, "check_out", checkOut.Time)
		return reservation.StayPeriod{}, false
	}
	return period, true
}
