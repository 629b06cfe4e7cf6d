package request

import (
	"strings"
	"time"

	"lodgestay/internal/domain/reservation"
	"lodgestay/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RoomID         uuid.UUID `json:"room_id" binding:"required"`
	CheckIn        time.Time `json:"check_in" binding:"required"`
	CheckOut       time.Time `json:"check_out"`
	HourlyDuration *int      `json:"hourly_duration,omitempty"`
	RateMode       string    `json:"rate_mode,omitempty"`
	GuestName      string    `json:"guest_name" binding:"required"`
	GuestPhone     string    `json:"guest_phone" binding:"required"`
	GuestCount     int       `json:"guest_count" binding:"required"`
}

func (r CreateReservationRequest) ToInput(channel reservation.Channel) commands.ReserveInput {
	return commands.ReserveInput{
		RoomID:         r.RoomID,
		CheckIn:        r.CheckIn,
		CheckOut:       r.CheckOut,
		HourlyDuration: r.HourlyDuration,
		RatePreference: strings.TrimSpace(strings.ToLower(r.RateMode)),
		GuestName:      strings.TrimSpace(r.GuestName),
		GuestPhone:     strings.TrimSpace(r.GuestPhone),
		GuestCount:     r.GuestCount,
		Channel:        channel,
	}
}

type ListReservationsRequest struct {
	After string `form:"after"`
	Limit int    `form:"limit"`
}

type AvailabilityProbeRequest struct {
	CheckIn  time.Time `form:"check_in" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	CheckOut time.Time `form:"check_out" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

type OccupancyReportRequest struct {
	From         time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To           time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
	ForceRefresh bool      `form:"force_refresh"`
}
