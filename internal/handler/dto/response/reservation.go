package response

import (
	"time"

	"lodgestay/internal/usecase/commands"
	"lodgestay/internal/usecase/queries"

	"github.com/google/uuid"
)

type PriceBreakdownResponse struct {
	UnitRateCents   int64 `json:"unitRateCents"`
	SubtotalCents   int64 `json:"subtotalCents"`
	DiscountCents   int64 `json:"discountCents"`
	ServiceFeeCents int64 `json:"serviceFeeCents"`
	TotalCents      int64 `json:"totalCents"`
}

type CreateReservationResponse struct {
	ID               uuid.UUID              `json:"id"`
	Status           string                 `json:"status"`
	RateMode         string                 `json:"rateMode"`
	RateModeAdjusted bool                   `json:"rateModeAdjusted"`
	CheckIn          time.Time              `json:"checkIn"`
	CheckOut         time.Time              `json:"checkOut"`
	Breakdown        PriceBreakdownResponse `json:"breakdown"`
}

type ReservationResponse struct {
	ID              uuid.UUID `json:"id"`
	RoomID          uuid.UUID `json:"roomId"`
	RoomNumber      string    `json:"roomNumber"`
	CheckIn         time.Time `json:"checkIn"`
	CheckOut        time.Time `json:"checkOut"`
	RateMode        string    `json:"rateMode"`
	HourlyDuration  *int32    `json:"hourlyDuration,omitempty"`
	Status          string    `json:"status"`
	Channel         string    `json:"channel"`
	GuestName       string    `json:"guestName"`
	GuestPhone      string    `json:"guestPhone"`
	GuestCount      int32     `json:"guestCount"`
	UnitRateCents   int64     `json:"unitRateCents"`
	SubtotalCents   int64     `json:"subtotalCents"`
	DiscountCents   int64     `json:"discountCents"`
	ServiceFeeCents int64     `json:"serviceFeeCents"`
	TotalCents      int64     `json:"totalCents"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type ReservationListResponse struct {
	Items []ReservationListItemResponse `json:"items"`
	Next  string                        `json:"next,omitempty"`
}

type ReservationListItemResponse struct {
	ID         uuid.UUID `json:"id"`
	RoomID     uuid.UUID `json:"roomId"`
	RoomNumber string    `json:"roomNumber"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	RateMode   string    `json:"rateMode"`
	Status     string    `json:"status"`
	Channel    string    `json:"channel"`
	TotalCents int64     `json:"totalCents"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromReserveResult(r *commands.ReserveResult) *CreateReservationResponse {
	return &CreateReservationResponse{
		ID:               r.ReservationID,
		Status:           string(r.Status),
		RateMode:         r.EffectiveMode,
		RateModeAdjusted: r.RateModeAdjusted,
		CheckIn:          r.CheckIn,
		CheckOut:         r.CheckOut,
		Breakdown: PriceBreakdownResponse{
			UnitRateCents:   r.Breakdown.UnitRateCents,
			SubtotalCents:   r.Breakdown.SubtotalCents,
			DiscountCents:   r.Breakdown.DiscountCents,
			ServiceFeeCents: r.Breakdown.ServiceFeeCents,
			TotalCents:      r.Breakdown.TotalCents,
		},
	}
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:              rm.ID,
		RoomID:          rm.RoomID,
		RoomNumber:      rm.RoomNumber,
		CheckIn:         rm.CheckIn,
		CheckOut:        rm.CheckOut,
		RateMode:        rm.RateMode,
		HourlyDuration:  rm.HourlyDuration,
		Status:          rm.Status,
		Channel:         rm.Channel,
		GuestName:       rm.GuestName,
		GuestPhone:      rm.GuestPhone,
		GuestCount:      rm.GuestCount,
		UnitRateCents:   rm.UnitRateCents,
		SubtotalCents:   rm.SubtotalCents,
		DiscountCents:   rm.DiscountCents,
		ServiceFeeCents: rm.ServiceFeeCents,
		TotalCents:      rm.TotalCents,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}

func FromReservationList(items []*queries.ReservationListItem, next *queries.Cursor) *ReservationListResponse {
	resp := &ReservationListResponse{
		Items: make([]ReservationListItemResponse, len(items)),
	}
	for i, item := range items {
		resp.Items[i] = ReservationListItemResponse{
			ID:         item.ID,
			RoomID:     item.RoomID,
			RoomNumber: item.RoomNumber,
			CheckIn:    item.CheckIn,
			CheckOut:   item.CheckOut,
			RateMode:   item.RateMode,
			Status:     item.Status,
			Channel:    item.Channel,
			TotalCents: item.TotalCents,
			CreatedAt:  item.CreatedAt,
		}
	}
	if next != nil {
		resp.Next = next.After
	}
	return resp
}
