package commands

import (
	"context"
	"fmt"
	"time"

	"lodgestay/internal/domain/reservation"
	"lodgestay/internal/domain/room"
	"lodgestay/internal/infra"
	"lodgestay/internal/pkg/clock"
	"lodgestay/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound         = errs.New("room not found")
	ErrInvalidInput         = errs.New("invalid input")
	ErrUnavailable          = errs.New("room unavailable for requested period")
	ErrPersistenceFailed    = errs.New("persistence failure")
	ErrReservationNotFound  = errs.New("reservation not found")
	ErrTransitionNotAllowed = errs.New("status transition not allowed")
	ErrTransitionRaced      = errs.New("status changed concurrently, retry")
)

// InvalidInputError names the offending field so callers can surface it.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func invalidInput(field, reason string) error {
	return errs.Mark(&InvalidInputError{Field: field, Reason: reason}, ErrInvalidInput)
}

// ConflictError carries the blocking interval so the caller can offer
// alternative dates.
type ConflictError struct {
	RoomID        uuid.UUID
	ReservationID uuid.UUID
	CheckIn       time.Time
	CheckOut      time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room %s is blocked %s - %s by reservation %s",
		e.RoomID, e.CheckIn.Format(time.RFC3339), e.CheckOut.Format(time.RFC3339), e.ReservationID)
}

type ReserveInput struct {
	RoomID         uuid.UUID
	CheckIn        time.Time
	CheckOut       time.Time // ignored for hourly mode
	HourlyDuration *int      // whole hours, hourly mode only
	RatePreference string    // "standard" | "night-promo" | "hourly" | ""
	GuestName      string
	GuestPhone     string
	GuestCount     int
	Channel        reservation.Channel
}

type PriceBreakdown struct {
	UnitRateCents   int64
	SubtotalCents   int64
	DiscountCents   int64
	ServiceFeeCents int64
	TotalCents      int64
}

type ReserveResult struct {
	ReservationID    uuid.UUID
	Status           reservation.Status
	EffectiveMode    string
	RateModeAdjusted bool // promo auto-selection overrode the preference
	CheckIn          time.Time
	CheckOut         time.Time
	Breakdown        PriceBreakdown
}

type ReservationCommands interface {
	Reserve(ctx context.Context, in ReserveInput) (*ReserveResult, error)
	Transition(ctx context.Context, id uuid.UUID, to reservation.Status) error
}

type reservationCommandsImpl struct {
	reservationRepo ReservationRepository
	roomReads       RoomReads
	activeReads     ActiveReservationReads
	factory         *reservation.Factory
	clock           clock.Clock
}

func NewReservationCommands(
	reservationRepo ReservationRepository,
	roomReads RoomReads,
	activeReads ActiveReservationReads,
	factory *reservation.Factory,
	clock clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		reservationRepo: reservationRepo,
		roomReads:       roomReads,
		activeReads:     activeReads,
		factory:         factory,
		clock:           clock,
	}
}

// Reserve is the single mutation point for reservation creation:
// validate -> resolve effective rate mode -> availability -> price ->
// persist pending. The persist step re-validates non-overlap atomically,
// so two racing calls for overlapping intervals on one room end with
// exactly one success and one conflict.
func (c *reservationCommandsImpl) Reserve(ctx context.Context, in ReserveInput) (*ReserveResult, error) {
	guest, err := reservation.NewGuest(in.GuestName, in.GuestPhone, in.GuestCount)
	if err != nil {
		return nil, guestInputError(err)
	}

	period, mode, adjusted, err := c.resolvePeriodAndMode(in)
	if err != nil {
		return nil, err
	}

	roomEntity, err := c.loadRoom(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	if !roomEntity.CanHost(guest.Count()) {
		return nil, invalidInput("guest_count", fmt.Sprintf("room holds at most %d guests", roomEntity.MaxGuests()))
	}

	if err := c.checkAvailability(ctx, in.RoomID, period); err != nil {
		return nil, err
	}

	res, err := c.factory.CreateReservation(roomEntity, period, mode, guest, in.Channel)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInput)
	}

	id, err := c.reservationRepo.Insert(ctx, res)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			// Lost the race between check and write; report the winner.
			return nil, c.conflictFor(ctx, in.RoomID, period)
		}
		return nil, errs.Mark(err, ErrPersistenceFailed)
	}

	charge := res.Charge()
	return &ReserveResult{
		ReservationID:    id,
		Status:           res.Status(),
		EffectiveMode:    mode.String(),
		RateModeAdjusted: adjusted,
		CheckIn:          period.CheckIn(),
		CheckOut:         period.CheckOut(),
		Breakdown: PriceBreakdown{
			UnitRateCents:   charge.UnitRate().Cents(),
			SubtotalCents:   charge.Subtotal().Cents(),
			DiscountCents:   charge.Discount().Cents(),
			ServiceFeeCents: charge.ServiceFee().Cents(),
			TotalCents:      charge.Total().Cents(),
		},
	}, nil
}

// Transition drives the front-desk lifecycle. The expected-status update
// keeps concurrent desk operations from skipping a step.
func (c *reservationCommandsImpl) Transition(ctx context.Context, id uuid.UUID, to reservation.Status) error {
	if !to.IsValid() {
		return invalidInput("status", "unknown status")
	}

	snap, err := c.reservationRepo.FindSnapshot(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrReservationNotFound
		}
		return errs.Mark(err, ErrPersistenceFailed)
	}

	if !snap.Status.CanTransitionTo(to) {
		return errs.Mark(
			fmt.Errorf("%s -> %s", snap.Status, to),
			ErrTransitionNotAllowed,
		)
	}

	ok, err := c.reservationRepo.UpdateStatus(ctx, id, snap.Status, to)
	if err != nil {
		return errs.Mark(err, ErrPersistenceFailed)
	}
	if !ok {
		return ErrTransitionRaced
	}
	return nil
}

func (c *reservationCommandsImpl) resolvePeriodAndMode(in ReserveInput) (reservation.StayPeriod, reservation.RateMode, bool, error) {
	var zero reservation.StayPeriod

	if in.RatePreference == "hourly" {
		if in.HourlyDuration == nil {
			return zero, reservation.RateMode{}, false, invalidInput("hourly_duration", "required for hourly mode")
		}
		mode, err := reservation.HourlyRate(*in.HourlyDuration)
		if err != nil {
			return zero, reservation.RateMode{}, false, invalidInput("hourly_duration", err.Error())
		}
		period, err := reservation.NewHourlyStay(in.CheckIn, *in.HourlyDuration)
		if err != nil {
			return zero, reservation.RateMode{}, false, invalidInput("check_in", err.Error())
		}
		// Explicit hourly preference is honored unconditionally.
		return period, mode, false, nil
	}

	var preferred reservation.RateMode
	switch in.RatePreference {
	case "", "standard":
		preferred = reservation.StandardRate()
	case "night-promo":
		preferred = reservation.NightPromoRate()
	default:
		return zero, reservation.RateMode{}, false, invalidInput("rate_mode", "must be standard, night-promo or hourly")
	}

	period, err := reservation.NewStayPeriod(in.CheckIn, in.CheckOut)
	if err != nil {
		return zero, reservation.RateMode{}, false, invalidInput("check_out", err.Error())
	}

	mode, adjusted := reservation.ResolveRateMode(preferred, period)
	return period, mode, adjusted, nil
}

func (c *reservationCommandsImpl) loadRoom(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	snap, err := c.roomReads.RoomByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrPersistenceFailed)
	}
	return room.NewRoom(snap.ID, snap.Number, snap.RoomType, snap.LodgeID, snap.MaxGuests)
}

func (c *reservationCommandsImpl) checkAvailability(ctx context.Context, roomID uuid.UUID, period reservation.StayPeriod) error {
	existing, err := c.activeReads.FindActiveByRoom(ctx, roomID)
	if err != nil {
		// Repository failure is not a scheduling conflict; keep the two
		// distinguishable so callers retry the right way.
		return errs.Mark(err, ErrPersistenceFailed)
	}

	result := reservation.CheckAvailability(period, existing)
	if result.Available {
		return nil
	}
	return errs.Mark(&ConflictError{
		RoomID:        roomID,
		ReservationID: result.Conflict.ReservationID,
		CheckIn:       result.Conflict.Period.CheckIn(),
		CheckOut:      result.Conflict.Period.CheckOut(),
	}, ErrUnavailable)
}

// conflictFor rebuilds a conflict summary from a consistent re-read after
// the write-time re-validation rejected the insert.
func (c *reservationCommandsImpl) conflictFor(ctx context.Context, roomID uuid.UUID, period reservation.StayPeriod) error {
	if err := c.checkAvailability(ctx, roomID, period); err != nil {
		return err
	}
	// The winner is already gone again (e.g. cancelled between write and
	// re-read); still a conflict at write time, without a summary.
	return ErrUnavailable
}

func guestInputError(err error) error {
	field := "guest"
	switch err {
	case reservation.ErrEmptyGuestName, reservation.ErrGuestNameTooLong:
		field = "guest_name"
	case reservation.ErrInvalidGuestContact:
		field = "guest_phone"
	case reservation.ErrInvalidGuestCount:
		field = "guest_count"
	}
	return invalidInput(field, err.Error())
}
