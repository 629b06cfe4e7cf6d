//go:build unit

package reservation_test

import (
	"testing"

	"lodgestay/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summary(t *testing.T, status reservation.Status, d1, d2 int) reservation.Summary {
	t.Helper()
	return reservation.Summary{
		ID:      uuid.New(),
		Period:  mustPeriod(t, day(d1, 0), day(d2, 0)),
		Status:  status,
		Channel: reservation.ChannelOnline,
	}
}

func TestCheckAvailability(t *testing.T) {
	candidate := mustPeriod(t, day(10, 0), day(12, 0))

	t.Run("no existing reservations", func(t *testing.T) {
		result := reservation.CheckAvailability(candidate, nil)
		assert.True(t, result.Available)
		assert.Nil(t, result.Conflict)
	})

	t.Run("blocking overlap is reported with its interval", func(t *testing.T) {
		existing := summary(t, reservation.StatusConfirmed, 11, 13)
		result := reservation.CheckAvailability(candidate, []reservation.Summary{existing})
		assert.False(t, result.Available)
		require.NotNil(t, result.Conflict)
		assert.Equal(t, existing.ID, result.Conflict.ReservationID)
		assert.Equal(t, day(11, 0), result.Conflict.Period.CheckIn())
	})

	t.Run("cancelled and completed do not block", func(t *testing.T) {
		existing := []reservation.Summary{
			summary(t, reservation.StatusCancelled, 10, 12),
			summary(t, reservation.StatusCompleted, 10, 12),
		}
		result := reservation.CheckAvailability(candidate, existing)
		assert.True(t, result.Available)
	})

	t.Run("every blocking status conflicts", func(t *testing.T) {
		for _, status := range []reservation.Status{
			reservation.StatusPending,
			reservation.StatusConfirmed,
			reservation.StatusCheckedIn,
		} {
			result := reservation.CheckAvailability(candidate, []reservation.Summary{
				summary(t, status, 10, 12),
			})
			assert.False(t, result.Available, "status %s should block", status)
		}
	})

	t.Run("boundary touch is not a conflict", func(t *testing.T) {
		existing := []reservation.Summary{
			summary(t, reservation.StatusConfirmed, 8, 10),
			summary(t, reservation.StatusConfirmed, 12, 14),
		}
		result := reservation.CheckAvailability(candidate, existing)
		assert.True(t, result.Available)
	})

	t.Run("first conflict wins when several overlap", func(t *testing.T) {
		first := summary(t, reservation.StatusPending, 9, 11)
		second := summary(t, reservation.StatusConfirmed, 11, 13)
		result := reservation.CheckAvailability(candidate, []reservation.Summary{first, second})
		require.NotNil(t, result.Conflict)
		assert.Equal(t, first.ID, result.Conflict.ReservationID)
	})

	t.Run("degenerate stored interval is skipped", func(t *testing.T) {
		broken := reservation.Summary{
			ID:     uuid.New(),
			Status: reservation.StatusConfirmed,
		}
		result := reservation.CheckAvailability(candidate, []reservation.Summary{broken})
		assert.True(t, result.Available)
	})
}
