//go:build unit

package reservation_test

import (
	"testing"

	"lodgestay/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
)

func TestStatusBlocks(t *testing.T) {
	blocking := map[reservation.Status]bool{
		reservation.StatusPending:   true,
		reservation.StatusConfirmed: true,
		reservation.StatusCheckedIn: true,
		reservation.StatusCompleted: false,
		reservation.StatusCancelled: false,
	}
	for status, want := range blocking {
		assert.Equal(t, want, status.Blocks(), "status %s", status)
	}
}

func TestStatusCanTransitionTo(t *testing.T) {
	allowed := map[reservation.Status][]reservation.Status{
		reservation.StatusPending:   {reservation.StatusConfirmed, reservation.StatusCancelled},
		reservation.StatusConfirmed: {reservation.StatusCheckedIn, reservation.StatusCancelled},
		reservation.StatusCheckedIn: {reservation.StatusCompleted, reservation.StatusCancelled},
		reservation.StatusCompleted: {},
		reservation.StatusCancelled: {},
	}

	all := []reservation.Status{
		reservation.StatusPending,
		reservation.StatusConfirmed,
		reservation.StatusCheckedIn,
		reservation.StatusCompleted,
		reservation.StatusCancelled,
	}

	for from, nexts := range allowed {
		permitted := make(map[reservation.Status]bool, len(nexts))
		for _, n := range nexts {
			permitted[n] = true
		}
		for _, to := range all {
			assert.Equal(t, permitted[to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, reservation.StatusCompleted.IsTerminal())
	assert.True(t, reservation.StatusCancelled.IsTerminal())
	assert.False(t, reservation.StatusPending.IsTerminal())
	assert.False(t, reservation.StatusConfirmed.IsTerminal())
	assert.False(t, reservation.StatusCheckedIn.IsTerminal())
}

func TestChannelIsValid(t *testing.T) {
	assert.True(t, reservation.ChannelManual.IsValid())
	assert.True(t, reservation.ChannelOnline.IsValid())
	assert.False(t, reservation.Channel("walk-in").IsValid())
}
