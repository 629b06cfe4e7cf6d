package response

import (
	"lodgestay/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomResponse struct {
	ID        uuid.UUID `json:"id"`
	Number    string    `json:"number"`
	RoomType  string    `json:"roomType"`
	LodgeID   uuid.UUID `json:"lodgeId"`
	MaxGuests int32     `json:"maxGuests"`
}

func FromRoomViews(views []*queries.RoomView) []RoomResponse {
	resp := make([]RoomResponse, len(views))
	for i, v := range views {
		resp[i] = RoomResponse{
			ID:        v.ID,
			Number:    v.Number,
			RoomType:  v.RoomType,
			LodgeID:   v.LodgeID,
			MaxGuests: v.MaxGuests,
		}
	}
	return resp
}
