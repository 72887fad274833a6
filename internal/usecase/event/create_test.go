package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whatsport/whatsport-api/internal/clock"
	"github.com/whatsport/whatsport-api/internal/httperr"
	"github.com/whatsport/whatsport-api/internal/models"
	"github.com/whatsport/whatsport-api/internal/notify"
	ucevent "github.com/whatsport/whatsport-api/internal/usecase/event"
)

var (
	testNow   = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	organizer = ucevent.Actor{ID: "org-1", Name: "Ana", Email: "ana@example.com"}
)

func testDispatcher() *notify.Dispatcher {
	return notify.NewDispatcher(notify.NewSink(nil))
}

func createInput(startOffset, endOffset time.Duration) ucevent.CreateEventInput {
	return ucevent.CreateEventInput{
		Title:           "Weekend futsal",
		SportType:       "futsal",
		StartTime:       testNow.Add(startOffset),
		EndTime:         testNow.Add(endOffset),
		MaxParticipants: 10,
	}
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("organizer is not auto-enrolled", func(t *testing.T) {
		repo := newFakeRepo()
		uc := ucevent.NewCreateEvent(repo, testDispatcher(), clock.Fixed(testNow))

		ev, err := uc.Execute(ctx, organizer, createInput(2*time.Hour, 4*time.Hour))
		require.NoError(t, err)

		assert.Equal(t, organizer.ID, ev.OrganizerID)
		assert.Empty(t, ev.Participants)
	})

	t.Run("invalid interval", func(t *testing.T) {
		repo := newFakeRepo()
		uc := ucevent.NewCreateEvent(repo, testDispatcher(), clock.Fixed(testNow))

		_, err := uc.Execute(ctx, organizer, createInput(4*time.Hour, 2*time.Hour))
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "invalid_interval"))
	})

	t.Run("unknown space", func(t *testing.T) {
		repo := newFakeRepo()
		uc := ucevent.NewCreateEvent(repo, testDispatcher(), clock.Fixed(testNow))

		in := createInput(2*time.Hour, 4*time.Hour)
		missing := "no-such-space"
		in.SpaceID = &missing

		_, err := uc.Execute(ctx, organizer, in)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "space_not_found"))
	})

	t.Run("space name is snapshotted", func(t *testing.T) {
		repo := newFakeRepo()
		repo.spaces["sp-1"] = &models.Space{ID: "sp-1", Name: "Arena Central"}
		uc := ucevent.NewCreateEvent(repo, testDispatcher(), clock.Fixed(testNow))

		in := createInput(2*time.Hour, 4*time.Hour)
		spaceID := "sp-1"
		in.SpaceID = &spaceID

		ev, err := uc.Execute(ctx, organizer, in)
		require.NoError(t, err)
		assert.Equal(t, "Arena Central", ev.SpaceName)
	})

	t.Run("overlapping event from same organizer conflicts", func(t *testing.T) {
		repo := newFakeRepo()
		uc := ucevent.NewCreateEvent(repo, testDispatcher(), clock.Fixed(testNow))

		_, err := uc.Execute(ctx, organizer, createInput(2*time.Hour, 4*time.Hour))
		require.NoError(t, err)

		_, err = uc.Execute(ctx, organizer, createInput(3*time.Hour, 5*time.Hour))
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "event_time_conflict"))

		// a different organizer can book the same window
		other := ucevent.Actor{ID: "org-2", Name: "Bia"}
		_, err = uc.Execute(ctx, other, createInput(3*time.Hour, 5*time.Hour))
		require.NoError(t, err)

		// back-to-back is fine for the same organizer
		_, err = uc.Execute(ctx, organizer, createInput(4*time.Hour, 6*time.Hour))
		require.NoError(t, err)
	})

	t.Run("position quantities validated", func(t *testing.T) {
		repo := newFakeRepo()
		uc := ucevent.NewCreateEvent(repo, testDispatcher(), clock.Fixed(testNow))

		in := createInput(2*time.Hour, 4*time.Hour)
		in.Positions = []ucevent.PositionInput{{Name: "goalkeeper", Quantity: 0}}

		_, err := uc.Execute(ctx, organizer, in)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "invalid_position_quantity"))
	})
}

func TestUpdateEvent(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*fakeRepo, *models.Event) {
		repo := newFakeRepo()
		create := ucevent.NewCreateEvent(repo, testDispatcher(), clock.Fixed(testNow))
		ev, err := create.Execute(ctx, organizer, createInput(2*time.Hour, 4*time.Hour))
		require.NoError(t, err)
		return repo, ev
	}

	t.Run("only the organizer may update", func(t *testing.T) {
		repo, ev := seed(t)
		uc := ucevent.NewUpdateEvent(repo, testDispatcher(), clock.Fixed(testNow))

		title := "new title"
		_, err := uc.Execute(ctx, ucevent.Actor{ID: "someone-else"}, ev.ID, ucevent.UpdateEventInput{Title: &title})
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "not_organizer"))
	})

	t.Run("rescheduling ignores the event's own window", func(t *testing.T) {
		repo, ev := seed(t)
		uc := ucevent.NewUpdateEvent(repo, testDispatcher(), clock.Fixed(testNow))

		// shift by 30 minutes, overlapping the old slot
		start := ev.StartTime.Add(30 * time.Minute)
		end := ev.EndTime.Add(30 * time.Minute)

		updated, err := uc.Execute(ctx, organizer, ev.ID, ucevent.UpdateEventInput{
			StartTime: &start,
			EndTime:   &end,
		})
		require.NoError(t, err)
		assert.True(t, updated.StartTime.Equal(start))
		assert.True(t, updated.EndTime.Equal(end))
	})

	t.Run("rescheduling onto another event conflicts", func(t *testing.T) {
		repo, ev := seed(t)
		create := ucevent.NewCreateEvent(repo, testDispatcher(), clock.Fixed(testNow))
		_, err := create.Execute(ctx, organizer, createInput(6*time.Hour, 8*time.Hour))
		require.NoError(t, err)

		uc := ucevent.NewUpdateEvent(repo, testDispatcher(), clock.Fixed(testNow))
		start := testNow.Add(7 * time.Hour)
		end := testNow.Add(9 * time.Hour)

		_, err = uc.Execute(ctx, organizer, ev.ID, ucevent.UpdateEventInput{
			StartTime: &start,
			EndTime:   &end,
		})
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "event_time_conflict"))
	})

	t.Run("patch without interval keeps the window", func(t *testing.T) {
		repo, ev := seed(t)
		uc := ucevent.NewUpdateEvent(repo, testDispatcher(), clock.Fixed(testNow))

		title := "renamed"
		updated, err := uc.Execute(ctx, organizer, ev.ID, ucevent.UpdateEventInput{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Title)
		assert.True(t, updated.StartTime.Equal(ev.StartTime))
	})
}
