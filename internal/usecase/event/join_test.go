package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whatsport/whatsport-api/internal/clock"
	"github.com/whatsport/whatsport-api/internal/httperr"
	ucevent "github.com/whatsport/whatsport-api/internal/usecase/event"
)

func TestJoinAndLeaveEvent(t *testing.T) {
	ctx := context.Background()
	player := ucevent.Actor{ID: "player-1", Name: "Carlos", Email: "carlos@example.com"}

	seed := func(t *testing.T, in ucevent.CreateEventInput) (*fakeRepo, string) {
		repo := newFakeRepo()
		create := ucevent.NewCreateEvent(repo, testDispatcher(), clock.Fixed(testNow))
		ev, err := create.Execute(ctx, organizer, in)
		require.NoError(t, err)
		return repo, ev.ID
	}

	t.Run("join then leave", func(t *testing.T) {
		repo, eventID := seed(t, createInput(2*time.Hour, 4*time.Hour))
		join := ucevent.NewJoinEvent(repo, testDispatcher(), clock.Fixed(testNow))
		leave := ucevent.NewLeaveEvent(repo, testDispatcher(), clock.Fixed(testNow))

		p, err := join.Execute(ctx, player, eventID, "")
		require.NoError(t, err)
		assert.True(t, p.Confirmed)

		ev, err := repo.GetEvent(ctx, eventID)
		require.NoError(t, err)
		assert.Len(t, ev.Participants, 1)

		require.NoError(t, leave.Execute(ctx, player, eventID))

		ev, err = repo.GetEvent(ctx, eventID)
		require.NoError(t, err)
		assert.Empty(t, ev.Participants)
	})

	t.Run("joining twice conflicts", func(t *testing.T) {
		repo, eventID := seed(t, createInput(2*time.Hour, 4*time.Hour))
		join := ucevent.NewJoinEvent(repo, testDispatcher(), clock.Fixed(testNow))

		_, err := join.Execute(ctx, player, eventID, "")
		require.NoError(t, err)

		_, err = join.Execute(ctx, player, eventID, "")
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "already_participant"))
	})

	t.Run("capacity of two admits exactly two", func(t *testing.T) {
		in := createInput(2*time.Hour, 4*time.Hour)
		in.MaxParticipants = 2
		repo, eventID := seed(t, in)
		join := ucevent.NewJoinEvent(repo, testDispatcher(), clock.Fixed(testNow))

		_, err := join.Execute(ctx, ucevent.Actor{ID: "p1"}, eventID, "")
		require.NoError(t, err)
		_, err = join.Execute(ctx, ucevent.Actor{ID: "p2"}, eventID, "")
		require.NoError(t, err)

		_, err = join.Execute(ctx, ucevent.Actor{ID: "p3"}, eventID, "")
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "event_full"))
	})

	t.Run("single-slot position fills after one join", func(t *testing.T) {
		in := createInput(2*time.Hour, 4*time.Hour)
		in.Positions = []ucevent.PositionInput{{Name: "goalkeeper", Quantity: 1}}
		repo, eventID := seed(t, in)
		join := ucevent.NewJoinEvent(repo, testDispatcher(), clock.Fixed(testNow))

		p, err := join.Execute(ctx, ucevent.Actor{ID: "p1"}, eventID, "goalkeeper")
		require.NoError(t, err)
		require.NotNil(t, p.PositionID)

		_, err = join.Execute(ctx, ucevent.Actor{ID: "p2"}, eventID, "goalkeeper")
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "position_full"))
	})

	t.Run("joining a started event fails", func(t *testing.T) {
		repo, eventID := seed(t, createInput(2*time.Hour, 4*time.Hour))
		late := clock.Fixed(testNow.Add(3 * time.Hour))
		join := ucevent.NewJoinEvent(repo, testDispatcher(), late)

		_, err := join.Execute(ctx, player, eventID, "")
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "event_already_started"))
	})

	t.Run("leaving without joining", func(t *testing.T) {
		repo, eventID := seed(t, createInput(2*time.Hour, 4*time.Hour))
		leave := ucevent.NewLeaveEvent(repo, testDispatcher(), clock.Fixed(testNow))

		err := leave.Execute(ctx, player, eventID)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "not_participant"))
	})
}
