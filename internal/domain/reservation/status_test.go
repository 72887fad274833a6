package reservation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reservation "github.com/whatsport/whatsport-api/internal/domain/reservation"
	"github.com/whatsport/whatsport-api/internal/httperr"
)

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, reservation.StatusPending, reservation.InitialStatus())
}

func TestActiveStatuses(t *testing.T) {
	assert.ElementsMatch(t, []string{"pending", "approved"}, reservation.ActiveStatuses())
}

func TestCanApprove(t *testing.T) {
	require.NoError(t, reservation.CanApprove(reservation.StatusPending))

	for _, s := range []reservation.Status{
		reservation.StatusApproved,
		reservation.StatusRejected,
		reservation.StatusCanceled,
		reservation.StatusCompleted,
	} {
		err := reservation.CanApprove(s)
		require.Error(t, err, "status %s", s)

		var be httperr.BusinessError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, "invalid_status_transition", be.Code)
		assert.Contains(t, be.Message, string(s))
	}
}

func TestCanReject(t *testing.T) {
	require.NoError(t, reservation.CanReject(reservation.StatusPending))
	assert.Error(t, reservation.CanReject(reservation.StatusApproved))
	assert.Error(t, reservation.CanReject(reservation.StatusRejected))
}

func TestCanCancel(t *testing.T) {
	require.NoError(t, reservation.CanCancel(reservation.StatusPending))
	require.NoError(t, reservation.CanCancel(reservation.StatusApproved))
	assert.Error(t, reservation.CanCancel(reservation.StatusCanceled))
	assert.Error(t, reservation.CanCancel(reservation.StatusCompleted))
	assert.Error(t, reservation.CanCancel(reservation.StatusRejected))
}

func TestCanComplete(t *testing.T) {
	now := time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC)

	t.Run("approved and finished", func(t *testing.T) {
		require.NoError(t, reservation.CanComplete(
			reservation.StatusApproved, now.Add(-time.Hour), now))
	})

	t.Run("end exactly at now", func(t *testing.T) {
		require.NoError(t, reservation.CanComplete(
			reservation.StatusApproved, now, now))
	})

	t.Run("still running", func(t *testing.T) {
		err := reservation.CanComplete(
			reservation.StatusApproved, now.Add(time.Hour), now)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "reservation_not_finished"))
	})

	t.Run("wrong status", func(t *testing.T) {
		err := reservation.CanComplete(
			reservation.StatusPending, now.Add(-time.Hour), now)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "invalid_status_transition"))
	})
}
