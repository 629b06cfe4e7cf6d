//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"lodgestay/internal/domain/pricing"
	"lodgestay/internal/domain/reservation"
	"lodgestay/internal/domain/room"
	"lodgestay/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCalculator(t *testing.T) reservation.PriceCalculator {
	t.Helper()
	table, err := pricing.NewRateTable(pricing.Config{
		HourlyBandCents:    []int64{6000, 8000, 10000, 11500, 13000, 14500, 16000, 17000, 18000, 19000, 20000, 21000},
		DayBlockCents:      25000,
		StandardNightCents: 42000,
		PromoNightCents:    35000,
		WeeklyDiscountPct:  10,
		ServiceFeePct:      7,
	})
	require.NoError(t, err)
	return pricing.NewCalculator(table)
}

func testRoom(t *testing.T, maxGuests int) *room.Room {
	t.Helper()
	r, err := room.NewRoom(uuid.New(), "101", room.TypeStandard, uuid.New(), maxGuests)
	require.NoError(t, err)
	return r
}

func TestFactoryCreateReservation(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	mockClock := clock.NewMockClock(now)
	factory := reservation.NewFactory(mockClock, testCalculator(t))

	guest, err := reservation.NewGuest("Somchai Jaidee", "+66 81 234 5678", 2)
	require.NoError(t, err)
	period := mustPeriod(t, day(10, 15), day(12, 11))

	t.Run("creates pending reservation with priced charge", func(t *testing.T) {
		res, err := factory.CreateReservation(testRoom(t, 2), period, reservation.StandardRate(), guest, reservation.ChannelOnline)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, res.ID())
		assert.Equal(t, reservation.StatusPending, res.Status())
		assert.True(t, res.Blocks())
		assert.Equal(t, now, res.CreatedAt())
		assert.Equal(t, now, res.UpdatedAt())
		// 2 nights at the standard rate, 7% fee
		assert.Equal(t, int64(84000), res.Charge().Subtotal().Cents())
		assert.Equal(t, int64(89880), res.Charge().Total().Cents())
	})

	t.Run("rejects guest count above capacity", func(t *testing.T) {
		_, err := factory.CreateReservation(testRoom(t, 1), period, reservation.StandardRate(), guest, reservation.ChannelOnline)
		assert.ErrorIs(t, err, reservation.ErrTooManyGuests)
	})

	t.Run("propagates pricing failure", func(t *testing.T) {
		_, err := factory.CreateReservation(testRoom(t, 2), period, reservation.NightPromoRate(), guest, reservation.ChannelOnline)
		assert.ErrorIs(t, err, pricing.ErrPromoRequiresOneNight)
	})
}

func TestReservationTransitionTo(t *testing.T) {
	build := func(t *testing.T, status reservation.Status) *reservation.Reservation {
		t.Helper()
		guest, err := reservation.NewGuest("Somchai Jaidee", "+66 81 234 5678", 2)
		require.NoError(t, err)
		charge, err := mustCharge(42000, 84000, 0, 5880)
		require.NoError(t, err)
		now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
		return reservation.ReconstructReservation(
			uuid.New(), uuid.New(),
			mustPeriod(t, day(10, 15), day(12, 11)),
			reservation.StandardRate(),
			status,
			reservation.ChannelOnline,
			guest, charge, now, now,
		)
	}

	t.Run("full lifecycle", func(t *testing.T) {
		res := build(t, reservation.StatusPending)
		require.NoError(t, res.TransitionTo(reservation.StatusConfirmed))
		require.NoError(t, res.TransitionTo(reservation.StatusCheckedIn))
		require.NoError(t, res.TransitionTo(reservation.StatusCompleted))
		assert.False(t, res.Blocks())
	})

	t.Run("cancel from any non-terminal state", func(t *testing.T) {
		for _, status := range []reservation.Status{
			reservation.StatusPending,
			reservation.StatusConfirmed,
			reservation.StatusCheckedIn,
		} {
			res := build(t, status)
			require.NoError(t, res.Cancel(), "cancel from %s", status)
			assert.Equal(t, reservation.StatusCancelled, res.Status())
		}
	})

	t.Run("terminal states are frozen", func(t *testing.T) {
		res := build(t, reservation.StatusCompleted)
		assert.ErrorIs(t, res.Cancel(), reservation.ErrInvalidTransition)
		assert.ErrorIs(t, res.TransitionTo(reservation.StatusConfirmed), reservation.ErrInvalidTransition)
	})

	t.Run("skipping a step is rejected", func(t *testing.T) {
		res := build(t, reservation.StatusPending)
		assert.ErrorIs(t, res.TransitionTo(reservation.StatusCheckedIn), reservation.ErrInvalidTransition)
	})
}

func mustCharge(unit, subtotal, discount, fee int64) (reservation.Charge, error) {
	u, err := reservation.NewMoney(unit)
	if err != nil {
		return reservation.Charge{}, err
	}
	s, err := reservation.NewMoney(subtotal)
	if err != nil {
		return reservation.Charge{}, err
	}
	d, err := reservation.NewMoney(discount)
	if err != nil {
		return reservation.Charge{}, err
	}
	f, err := reservation.NewMoney(fee)
	if err != nil {
		return reservation.Charge{}, err
	}
	return reservation.NewCharge(u, s, d, f)
}
