//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"lodgestay/internal/domain/reservation"
	"lodgestay/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeActiveStayReadStore struct {
	summaries []reservation.Summary
	err       error
}

func (f *fakeActiveStayReadStore) FindActiveByRoom(_ context.Context, _ uuid.UUID) ([]reservation.Summary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.summaries, nil
}

func TestProbe(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()
	checkIn := time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 6, 12, 11, 0, 0, 0, time.UTC)

	stay := func(d1, d2 int, status reservation.Status) reservation.Summary {
		period, err := reservation.NewStayPeriod(
			time.Date(2026, 6, d1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 6, d2, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		return reservation.Summary{
			ID:      uuid.New(),
			Period:  period,
			Status:  status,
			Channel: reservation.ChannelOnline,
		}
	}

	t.Run("no stays means available", func(t *testing.T) {
		uc := queries.NewAvailabilityQueries(&fakeActiveStayReadStore{})

		view, err := uc.Probe(ctx, roomID, checkIn, checkOut)
		require.NoError(t, err)
		assert.True(t, view.Available)
		assert.Nil(t, view.Conflict)
		assert.Equal(t, roomID, view.RoomID)
	})

	t.Run("blocking overlap reports the conflicting interval", func(t *testing.T) {
		blocking := stay(11, 13, reservation.StatusConfirmed)
		uc := queries.NewAvailabilityQueries(&fakeActiveStayReadStore{
			summaries: []reservation.Summary{blocking},
		})

		view, err := uc.Probe(ctx, roomID, checkIn, checkOut)
		require.NoError(t, err)
		assert.False(t, view.Available)
		require.NotNil(t, view.Conflict)
		assert.Equal(t, blocking.ID, view.Conflict.ReservationID)
		assert.Equal(t, blocking.Period.CheckIn(), view.Conflict.CheckIn)
		assert.Equal(t, blocking.Period.CheckOut(), view.Conflict.CheckOut)
	})

	t.Run("terminal stays do not count", func(t *testing.T) {
		uc := queries.NewAvailabilityQueries(&fakeActiveStayReadStore{
			summaries: []reservation.Summary{
				stay(10, 12, reservation.StatusCancelled),
				stay(10, 12, reservation.StatusCompleted),
			},
		})

		view, err := uc.Probe(ctx, roomID, checkIn, checkOut)
		require.NoError(t, err)
		assert.True(t, view.Available)
	})

	t.Run("degenerate probe period", func(t *testing.T) {
		uc := queries.NewAvailabilityQueries(&fakeActiveStayReadStore{})

		_, err := uc.Probe(ctx, roomID, checkIn, checkIn)
		assert.ErrorIs(t, err, queries.ErrInvalidProbePeriod)
	})

	t.Run("read failure propagates", func(t *testing.T) {
		uc := queries.NewAvailabilityQueries(&fakeActiveStayReadStore{err: errors.New("connection reset")})

		_, err := uc.Probe(ctx, roomID, checkIn, checkOut)
		assert.Error(t, err)
	})
}
