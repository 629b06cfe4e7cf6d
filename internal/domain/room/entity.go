package room

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyRoomNumber   = errors.New("room number cannot be empty")
	ErrInvalidRoomType   = errors.New("invalid room type")
	ErrInvalidMaxGuests  = errors.New("max guests must be positive")
	ErrRoomNumberTooLong = errors.New("room number is too long (max 16 characters)")
)

const (
	MaxRoomNumberLength = 16
)

type Type string

const (
	TypeStandard Type = "standard"
	TypeDeluxe   Type = "deluxe"
	TypeSuite    Type = "suite"
	TypeFamily   Type = "family"
)

func NewType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", ErrInvalidRoomType
	}
	return t, nil
}

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeStandard, TypeDeluxe, TypeSuite, TypeFamily:
		return true
	default:
		return false
	}
}

// Room is inventory owned by an external process; the engine only reads it.
// Capacity for conflict purposes is implicitly one reservation at a time,
// maxGuests bounds the head count of a single reservation.
type Room struct {
	id        uuid.UUID
	number    string
	roomType  Type
	lodgeID   uuid.UUID
	maxGuests int
}

func NewRoom(id uuid.UUID, number string, roomType Type, lodgeID uuid.UUID, maxGuests int) (*Room, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, ErrEmptyRoomNumber
	}
	if len(number) > MaxRoomNumberLength {
		return nil, ErrRoomNumberTooLong
	}
	if !roomType.IsValid() {
		return nil, ErrInvalidRoomType
	}
	if maxGuests <= 0 {
		return nil, ErrInvalidMaxGuests
	}

	return &Room{
		id:        id,
		number:    number,
		roomType:  roomType,
		lodgeID:   lodgeID,
		maxGuests: maxGuests,
	}, nil
}

func (r *Room) CanHost(guestCount int) bool {
	return guestCount > 0 && guestCount <= r.maxGuests
}

func (r *Room) ID() uuid.UUID      { return r.id }
func (r *Room) Number() string     { return r.number }
func (r *Room) RoomType() Type     { return r.roomType }
func (r *Room) LodgeID() uuid.UUID { return r.lodgeID }
func (r *Room) MaxGuests() int     { return r.maxGuests }
