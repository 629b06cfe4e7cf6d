package readstore

import (
	"context"

	"lodgestay/internal/domain/room"
	"lodgestay/internal/infra"
	"lodgestay/internal/pkg/pgconv"
	"lodgestay/internal/usecase/commands"
	"lodgestay/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const findRoomByIDSQL = `
SELECT id, number, room_type, lodge_id, max_guests
FROM rooms
WHERE id = $1
`

const listRoomsByLodgeSQL = `
SELECT id, number, room_type, lodge_id, max_guests
FROM rooms
WHERE lodge_id = $1
ORDER BY number
`

type RoomReadStore struct {
	db *pgxpool.Pool
}

func NewRoomReadStore(db *pgxpool.Pool) *RoomReadStore {
	return &RoomReadStore{db: db}
}

func (s *RoomReadStore) RoomByID(ctx context.Context, id uuid.UUID) (*commands.RoomSnapshot, error) {
	var (
		rowID     pgtype.UUID
		number    string
		roomType  string
		lodgeID   pgtype.UUID
		maxGuests int32
	)
	err := s.db.QueryRow(ctx, findRoomByIDSQL, pgconv.UUIDToPgtype(id)).Scan(
		&rowID, &number, &roomType, &lodgeID, &maxGuests,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by ID", err)
	}

	return &commands.RoomSnapshot{
		ID:        uuid.UUID(rowID.Bytes),
		Number:    number,
		RoomType:  room.Type(roomType),
		LodgeID:   uuid.UUID(lodgeID.Bytes),
		MaxGuests: int(maxGuests),
	}, nil
}

func (s *RoomReadStore) ListByLodge(ctx context.Context, lodgeID uuid.UUID) ([]*queries.RoomView, error) {
	rows, err := s.db.Query(ctx, listRoomsByLodgeSQL, pgconv.UUIDToPgtype(lodgeID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	var views []*queries.RoomView
	for rows.Next() {
		var (
			rowID     pgtype.UUID
			number    string
			roomType  string
			rowLodge  pgtype.UUID
			maxGuests int32
		)
		if err := rows.Scan(&rowID, &number, &roomType, &rowLodge, &maxGuests); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}
		views = append(views, &queries.RoomView{
			ID:        uuid.UUID(rowID.Bytes),
			Number:    number,
			RoomType:  roomType,
			LodgeID:   uuid.UUID(rowLodge.Bytes),
			MaxGuests: maxGuests,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read room rows", err)
	}

	return views, nil
}
