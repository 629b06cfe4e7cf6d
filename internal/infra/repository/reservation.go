package repository

import (
	"context"
	"errors"

	"lodgestay/internal/domain/reservation"
	"lodgestay/internal/infra"
	"lodgestay/internal/pkg/pgconv"
	"lodgestay/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeExclusionViolation  = "23P01"
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

// Blocking statuses inlined in SQL so the write-time re-validation and
// the read-side conflict check agree on what occupies a room.
const insertReservationSQL = `
INSERT INTO reservations (
	id, room_id, check_in, check_out, rate_mode, hourly_duration,
	status, channel, guest_name, guest_phone, guest_count,
	unit_rate_cents, subtotal_cents, discount_cents, service_fee_cents, total_cents,
	created_at, updated_at
)
SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $17
WHERE NOT EXISTS (
	SELECT 1 FROM reservations r
	WHERE r.room_id = $2
	  AND r.status IN ('pending', 'confirmed', 'checked-in')
	  AND r.check_in < $4
	  AND $3 < r.check_out
)
RETURNING id
`

const updateReservationStatusSQL = `
UPDATE reservations
SET status = $3, updated_at = now()
WHERE id = $1 AND status = $2
`

const findReservationSnapshotSQL = `
SELECT id, room_id, status, check_in, check_out
FROM reservations
WHERE id = $1
`

// ReservationRepository is the write side. The conditional insert plus
// the room/stay exclusion constraint in the schema give the atomic
// accept-or-conflict the booking flow relies on; no cross-process lock.
type ReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Insert(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	charge := res.Charge()

	var hourly pgtype.Int4
	if res.RateMode().IsHourly() {
		hourly = pgtype.Int4{Int32: int32(res.RateMode().Hours()), Valid: true}
	}

	var id pgtype.UUID
	err := r.db.QueryRow(ctx, insertReservationSQL,
		pgconv.UUIDToPgtype(res.ID()),
		pgconv.UUIDToPgtype(res.RoomID()),
		pgconv.TimeToPgtype(res.Period().CheckIn()),
		pgconv.TimeToPgtype(res.Period().CheckOut()),
		res.RateMode().String(),
		hourly,
		res.Status().String(),
		res.Channel().String(),
		res.Guest().Name(),
		res.Guest().Phone(),
		int32(res.Guest().Count()),
		charge.UnitRate().Cents(),
		charge.Subtotal().Cents(),
		charge.Discount().Cents(),
		charge.ServiceFee().Cents(),
		charge.Total().Cents(),
		pgconv.TimeToPgtype(res.CreatedAt()),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Re-validation found an overlap; the insert was rejected.
			return uuid.Nil, infra.WrapRepoErr("reservation overlaps an existing stay", err, infra.KindConflict)
		}
		return uuid.Nil, classifyPgErr("failed to create reservation", err)
	}

	return uuid.UUID(id.Bytes), nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to reservation.Status) (bool, error) {
	tag, err := r.db.Exec(ctx, updateReservationStatusSQL,
		pgconv.UUIDToPgtype(id), from.String(), to.String())
	if err != nil {
		return false, classifyPgErr("failed to update reservation status", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ReservationRepository) FindSnapshot(ctx context.Context, id uuid.UUID) (*commands.ReservationSnapshot, error) {
	var (
		rowID    pgtype.UUID
		roomID   pgtype.UUID
		status   string
		checkIn  pgtype.Timestamptz
		checkOut pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findReservationSnapshotSQL, pgconv.UUIDToPgtype(id)).
		Scan(&rowID, &roomID, &status, &checkIn, &checkOut)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	return &commands.ReservationSnapshot{
		ID:       uuid.UUID(rowID.Bytes),
		RoomID:   uuid.UUID(roomID.Bytes),
		Status:   reservation.Status(status),
		CheckIn:  pgconv.TimeFromPgtype(checkIn),
		CheckOut: pgconv.TimeFromPgtype(checkOut),
	}, nil
}

func classifyPgErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeExclusionViolation:
			return infra.WrapRepoErr(msg, err, infra.KindConflict)
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case pgErrCodeForeignKeyViolation:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		}
	}
	return infra.WrapRepoErr(msg, err)
}
