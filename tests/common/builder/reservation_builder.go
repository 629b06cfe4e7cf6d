//go:build unit || e2e

package builder

import (
	"time"

	"lodgestay/internal/domain/reservation"
	reqdto "lodgestay/internal/handler/dto/request"
	"lodgestay/internal/usecase/commands"
	"lodgestay/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID             uuid.UUID
	RoomID         uuid.UUID
	RoomNumber     string
	CheckIn        time.Time
	CheckOut       time.Time
	HourlyDuration *int
	RateMode       string
	Status         string
	Channel        string
	GuestName      string
	GuestPhone     string
	GuestCount     int
	UnitRateCents  int64
	SubtotalCents  int64
	DiscountCents  int64
	FeeCents       int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		ID:            uuid.New(),
		RoomID:        uuid.New(),
		RoomNumber:    "101",
		CheckIn:       time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 6, 12, 11, 0, 0, 0, time.UTC),
		RateMode:      "standard",
		Status:        string(reservation.StatusPending),
		Channel:       string(reservation.ChannelOnline),
		GuestName:     "Somchai Jaidee",
		GuestPhone:    "+66 81 234 5678",
		GuestCount:    2,
		UnitRateCents: 42000,
		SubtotalCents: 84000,
		DiscountCents: 0,
		FeeCents:      5880,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) TotalCents() int64 {
	return r.SubtotalCents - r.DiscountCents + r.FeeCents
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		RoomID:         r.RoomID,
		CheckIn:        r.CheckIn,
		CheckOut:       r.CheckOut,
		HourlyDuration: r.HourlyDuration,
		RateMode:       r.RateMode,
		GuestName:      r.GuestName,
		GuestPhone:     r.GuestPhone,
		GuestCount:     r.GuestCount,
	}
}

func (r *ReservationBuilder) BuildReserveResult() *commands.ReserveResult {
	return &commands.ReserveResult{
		ReservationID: r.ID,
		Status:        reservation.Status(r.Status),
		EffectiveMode: r.RateMode,
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
		Breakdown: commands.PriceBreakdown{
			UnitRateCents:   r.UnitRateCents,
			SubtotalCents:   r.SubtotalCents,
			DiscountCents:   r.DiscountCents,
			ServiceFeeCents: r.FeeCents,
			TotalCents:      r.TotalCents(),
		},
	}
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	var hourly *int32
	if r.HourlyDuration != nil {
		h := int32(*r.HourlyDuration)
		hourly = &h
	}
	return &queries.ReservationView{
		ID:              r.ID,
		RoomID:          r.RoomID,
		RoomNumber:      r.RoomNumber,
		CheckIn:         r.CheckIn,
		CheckOut:        r.CheckOut,
		RateMode:        r.RateMode,
		HourlyDuration:  hourly,
		Status:          r.Status,
		Channel:         r.Channel,
		GuestName:       r.GuestName,
		GuestPhone:      r.GuestPhone,
		GuestCount:      int32(r.GuestCount),
		UnitRateCents:   r.UnitRateCents,
		SubtotalCents:   r.SubtotalCents,
		DiscountCents:   r.DiscountCents,
		ServiceFeeCents: r.FeeCents,
		TotalCents:      r.TotalCents(),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func (r *ReservationBuilder) BuildListItem() *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:         r.ID,
		RoomID:     r.RoomID,
		RoomNumber: r.RoomNumber,
		CheckIn:    r.CheckIn,
		CheckOut:   r.CheckOut,
		RateMode:   r.RateMode,
		Status:     r.Status,
		Channel:    r.Channel,
		TotalCents: r.TotalCents(),
		CreatedAt:  r.CreatedAt,
	}
}

func (r *ReservationBuilder) BuildSummary() reservation.Summary {
	period, _ := reservation.NewStayPeriod(r.CheckIn, r.CheckOut)
	return reservation.Summary{
		ID:      r.ID,
		Period:  period,
		Status:  reservation.Status(r.Status),
		Channel: reservation.Channel(r.Channel),
	}
}

func (r *ReservationBuilder) BuildStayRecord() queries.StayRecord {
	period, _ := reservation.NewStayPeriod(r.CheckIn, r.CheckOut)
	return queries.StayRecord{
		ID:      r.ID,
		RoomID:  r.RoomID,
		Period:  period,
		Status:  reservation.Status(r.Status),
		Channel: reservation.Channel(r.Channel),
	}
}
