//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"lodgestay/internal/domain/pricing"
	"lodgestay/internal/domain/reservation"
	"lodgestay/internal/domain/room"
	"lodgestay/internal/infra"
	"lodgestay/internal/pkg/clock"
	"lodgestay/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory stand-in for the reservation persistence
// ports. Insert re-validates non-overlap under the same lock that
// appends, mirroring the conditional-insert semantics of the real
// repository.
type fakeStore struct {
	mu           sync.Mutex
	rooms        map[uuid.UUID]*commands.RoomSnapshot
	rows         map[uuid.UUID]*storedRow
	readErr      error
	insertErr    error
	beforeUpdate func()
}

type storedRow struct {
	id      uuid.UUID
	roomID  uuid.UUID
	period  reservation.StayPeriod
	status  reservation.Status
	channel reservation.Channel
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rooms: make(map[uuid.UUID]*commands.RoomSnapshot),
		rows:  make(map[uuid.UUID]*storedRow),
	}
}

func (f *fakeStore) addRoom(maxGuests int) uuid.UUID {
	id := uuid.New()
	f.rooms[id] = &commands.RoomSnapshot{
		ID:        id,
		Number:    "101",
		RoomType:  room.TypeStandard,
		LodgeID:   uuid.New(),
		MaxGuests: maxGuests,
	}
	return id
}

func (f *fakeStore) addReservation(roomID uuid.UUID, period reservation.StayPeriod, status reservation.Status) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.rows[id] = &storedRow{
		id:      id,
		roomID:  roomID,
		period:  period,
		status:  status,
		channel: reservation.ChannelOnline,
	}
	return id
}

func (f *fakeStore) RoomByID(_ context.Context, id uuid.UUID) (*commands.RoomSnapshot, error) {
	snap, ok := f.rooms[id]
	if !ok {
		return nil, infra.WrapRepoErr("room not found", errors.New("no rows"), infra.KindNotFound)
	}
	return snap, nil
}

func (f *fakeStore) FindActiveByRoom(_ context.Context, roomID uuid.UUID) ([]reservation.Summary, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []reservation.Summary
	for _, row := range f.rows {
		if row.roomID != roomID || !row.status.Blocks() {
			continue
		}
		out = append(out, reservation.Summary{
			ID:      row.id,
			Period:  row.period,
			Status:  row.status,
			Channel: row.channel,
		})
	}
	return out, nil
}

func (f *fakeStore) Insert(_ context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	if f.insertErr != nil {
		return uuid.Nil, f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.roomID == res.RoomID() && row.status.Blocks() && row.period.Overlaps(res.Period()) {
			return uuid.Nil, infra.WrapRepoErr("reservation overlaps an existing stay", errors.New("no rows"), infra.KindConflict)
		}
	}
	f.rows[res.ID()] = &storedRow{
		id:      res.ID(),
		roomID:  res.RoomID(),
		period:  res.Period(),
		status:  res.Status(),
		channel: res.Channel(),
	}
	return res.ID(), nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id uuid.UUID, from, to reservation.Status) (bool, error) {
	if f.beforeUpdate != nil {
		f.beforeUpdate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok || row.status != from {
		return false, nil
	}
	row.status = to
	return true, nil
}

func (f *fakeStore) FindSnapshot(_ context.Context, id uuid.UUID) (*commands.ReservationSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", errors.New("no rows"), infra.KindNotFound)
	}
	return &commands.ReservationSnapshot{
		ID:       row.id,
		RoomID:   row.roomID,
		Status:   row.status,
		CheckIn:  row.period.CheckIn(),
		CheckOut: row.period.CheckOut(),
	}, nil
}

func newCommands(t *testing.T, store *fakeStore) commands.ReservationCommands {
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
	mockClock := clock.NewMockClock(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
	factory := reservation.NewFactory(mockClock, pricing.NewCalculator(table))
	return commands.NewReservationCommands(store, store, store, factory, mockClock)
}

func validInput(roomID uuid.UUID) commands.ReserveInput {
	return commands.ReserveInput{
		RoomID:     roomID,
		CheckIn:    time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 6, 12, 11, 0, 0, 0, time.UTC),
		GuestName:  "Somchai Jaidee",
		GuestPhone: "+66 81 234 5678",
		GuestCount: 2,
		Channel:    reservation.ChannelOnline,
	}
}

func mustStay(t *testing.T, d1, d2 int) reservation.StayPeriod {
	t.Helper()
	p, err := reservation.NewStayPeriod(
		time.Date(2026, 6, d1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, d2, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return p
}

func TestReserve(t *testing.T) {
	ctx := context.Background()

	t.Run("two-night standard stay", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(2)
		uc := newCommands(t, store)

		result, err := uc.Reserve(ctx, validInput(roomID))
		require.NoError(t, err)

		assert.Equal(t, reservation.StatusPending, result.Status)
		assert.Equal(t, "standard", result.EffectiveMode)
		assert.False(t, result.RateModeAdjusted)
		assert.Equal(t, int64(84000), result.Breakdown.SubtotalCents)
		assert.Equal(t, int64(5880), result.Breakdown.ServiceFeeCents)
		assert.Equal(t, int64(89880), result.Breakdown.TotalCents)
	})

	t.Run("one-night stay auto-selects the promo rate", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(2)
		uc := newCommands(t, store)

		in := validInput(roomID)
		in.CheckOut = time.Date(2026, 6, 11, 11, 0, 0, 0, time.UTC)

		result, err := uc.Reserve(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "night-promo", result.EffectiveMode)
		assert.True(t, result.RateModeAdjusted, "auto-selection changes the price and must be surfaced")
		assert.Equal(t, int64(35000), result.Breakdown.UnitRateCents)
		assert.Equal(t, int64(37450), result.Breakdown.TotalCents)
	})

	t.Run("hourly preference is honored and derives the check-out", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(2)
		uc := newCommands(t, store)

		hours := 3
		in := validInput(roomID)
		in.RatePreference = "hourly"
		in.HourlyDuration = &hours
		in.CheckOut = time.Time{}

		result, err := uc.Reserve(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "hourly", result.EffectiveMode)
		assert.False(t, result.RateModeAdjusted)
		assert.Equal(t, in.CheckIn.Add(3*time.Hour), result.CheckOut)
		assert.Equal(t, int64(8000), result.Breakdown.SubtotalCents)
		assert.Equal(t, int64(8560), result.Breakdown.TotalCents)
	})

	t.Run("input validation", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(2)
		uc := newCommands(t, store)

		tests := []struct {
			name   string
			mutate func(*commands.ReserveInput)
			field  string
		}{
			{"empty guest name", func(in *commands.ReserveInput) { in.GuestName = " " }, "guest_name"},
			{"malformed phone", func(in *commands.ReserveInput) { in.GuestPhone = "call me" }, "guest_phone"},
			{"zero guests", func(in *commands.ReserveInput) { in.GuestCount = 0 }, "guest_count"},
			{"unknown rate mode", func(in *commands.ReserveInput) { in.RatePreference = "weekly" }, "rate_mode"},
			{"inverted period", func(in *commands.ReserveInput) { in.CheckOut = in.CheckIn }, "check_out"},
			{"hourly without duration", func(in *commands.ReserveInput) { in.RatePreference = "hourly" }, "hourly_duration"},
			{"hourly below minimum", func(in *commands.ReserveInput) {
				one := 1
				in.RatePreference = "hourly"
				in.HourlyDuration = &one
			}, "hourly_duration"},
			{"hourly duration overflows into the past", func(in *commands.ReserveInput) {
				huge := 3_000_000
				in.RatePreference = "hourly"
				in.HourlyDuration = &huge
			}, "hourly_duration"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				in := validInput(roomID)
				tt.mutate(&in)

				_, err := uc.Reserve(ctx, in)
				require.ErrorIs(t, err, commands.ErrInvalidInput)

				var fieldErr *commands.InvalidInputError
				require.ErrorAs(t, err, &fieldErr)
				assert.Equal(t, tt.field, fieldErr.Field)
			})
		}
	})

	t.Run("unknown room", func(t *testing.T) {
		store := newFakeStore()
		uc := newCommands(t, store)

		_, err := uc.Reserve(ctx, validInput(uuid.New()))
		assert.ErrorIs(t, err, commands.ErrRoomNotFound)
	})

	t.Run("guest count above room capacity", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(1)
		uc := newCommands(t, store)

		_, err := uc.Reserve(ctx, validInput(roomID))
		require.ErrorIs(t, err, commands.ErrInvalidInput)
		var fieldErr *commands.InvalidInputError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "guest_count", fieldErr.Field)
	})

	t.Run("overlapping blocking reservation conflicts with details", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(2)
		existing := store.addReservation(roomID, mustStay(t, 11, 13), reservation.StatusConfirmed)
		uc := newCommands(t, store)

		_, err := uc.Reserve(ctx, validInput(roomID))
		require.ErrorIs(t, err, commands.ErrUnavailable)

		var conflict *commands.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, existing, conflict.ReservationID)
		assert.Equal(t, roomID, conflict.RoomID)
	})

	t.Run("back-to-back stays are accepted", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(2)
		uc := newCommands(t, store)

		in := validInput(roomID)
		// Existing stay ends exactly when the new one begins, and
		// another starts exactly at the new check-out.
		before, err := reservation.NewStayPeriod(in.CheckIn.AddDate(0, 0, -2), in.CheckIn)
		require.NoError(t, err)
		after, err := reservation.NewStayPeriod(in.CheckOut, in.CheckOut.AddDate(0, 0, 2))
		require.NoError(t, err)
		store.addReservation(roomID, before, reservation.StatusConfirmed)
		store.addReservation(roomID, after, reservation.StatusPending)

		_, err = uc.Reserve(ctx, in)
		assert.NoError(t, err)
	})

	t.Run("cancelled and completed stays do not block", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(2)
		store.addReservation(roomID, mustStay(t, 10, 12), reservation.StatusCancelled)
		store.addReservation(roomID, mustStay(t, 10, 12), reservation.StatusCompleted)
		uc := newCommands(t, store)

		_, err := uc.Reserve(ctx, validInput(roomID))
		assert.NoError(t, err)
	})

	t.Run("read failure is not reported as a conflict", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(2)
		store.readErr = infra.WrapRepoErr("connection lost", errors.New("boom"))
		uc := newCommands(t, store)

		_, err := uc.Reserve(ctx, validInput(roomID))
		assert.ErrorIs(t, err, commands.ErrPersistenceFailed)
		assert.NotErrorIs(t, err, commands.ErrUnavailable)
	})

	t.Run("racing requests: exactly one wins", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(2)
		uc := newCommands(t, store)

		var wg sync.WaitGroup
		results := make(chan error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := uc.Reserve(ctx, validInput(roomID))
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		var wins, conflicts int
		for err := range results {
			switch {
			case err == nil:
				wins++
			case errors.Is(err, commands.ErrUnavailable):
				conflicts++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, wins)
		assert.Equal(t, 1, conflicts)
	})
}

func TestTransition(t *testing.T) {
	ctx := context.Background()

	t.Run("confirm a pending reservation", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(2)
		id := store.addReservation(roomID, mustStay(t, 10, 12), reservation.StatusPending)
		uc := newCommands(t, store)

		require.NoError(t, uc.Transition(ctx, id, reservation.StatusConfirmed))

		snap, err := store.FindSnapshot(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusConfirmed, snap.Status)
	})

	t.Run("skipping a lifecycle step", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(2)
		id := store.addReservation(roomID, mustStay(t, 10, 12), reservation.StatusPending)
		uc := newCommands(t, store)

		err := uc.Transition(ctx, id, reservation.StatusCheckedIn)
		assert.ErrorIs(t, err, commands.ErrTransitionNotAllowed)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		store := newFakeStore()
		uc := newCommands(t, store)

		err := uc.Transition(ctx, uuid.New(), reservation.StatusConfirmed)
		assert.ErrorIs(t, err, commands.ErrReservationNotFound)
	})

	t.Run("concurrent status change is surfaced as a race", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(2)
		id := store.addReservation(roomID, mustStay(t, 10, 12), reservation.StatusPending)
		uc := newCommands(t, store)

		// Another desk cancels between the snapshot read and the
		// expected-status update.
		store.beforeUpdate = func() {
			store.mu.Lock()
			store.rows[id].status = reservation.StatusCancelled
			store.mu.Unlock()
		}

		err := uc.Transition(ctx, id, reservation.StatusConfirmed)
		assert.ErrorIs(t, err, commands.ErrTransitionRaced)
	})
}
