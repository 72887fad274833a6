package reservation_test

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
	ucres "github.com/whatsport/whatsport-api/internal/usecase/reservation"
)

// 2026-03-02 is a Monday.
var testNow = time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)

var player = ucres.Actor{ID: "player-1", Name: "Carlos", Email: "carlos@example.com", Phone: "11999990000"}

func testDispatcher() *notify.Dispatcher {
	return notify.NewDispatcher(notify.NewSink(nil))
}

func seedSpace(repo *fakeRepo) *models.Space {
	space := &models.Space{
		ID:        "sp-1",
		ManagerID: "manager-1",
		Name:      "Arena Central",
		AvailableSports: []models.SpaceSport{
			{ID: "sport-1", SpaceID: "sp-1", SportType: "futsal", PricePerHour: 100},
		},
		OpeningHours: []models.SpaceHours{
			{SpaceID: "sp-1", Weekday: int(time.Monday), OpensAt: "08:00", ClosesAt: "22:00"},
		},
	}
	repo.spaces[space.ID] = space
	return space
}

func monday(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, time.UTC)
}

func input(start, end time.Time) ucres.CreateReservationInput {
	return ucres.CreateReservationInput{
		SpaceID:           "sp-1",
		SportType:         "futsal",
		StartTime:         start,
		EndTime:           end,
		ParticipantsCount: 4,
	}
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()

	newUC := func(repo *fakeRepo) *ucres.CreateReservation {
		return ucres.NewCreateReservation(repo, testDispatcher(), clock.Fixed(testNow))
	}

	t.Run("prices fractional hours times headcount", func(t *testing.T) {
		repo := newFakeRepo()
		seedSpace(repo)

		res, err := newUC(repo).Execute(ctx, player, input(monday(10, 0), monday(11, 30)))
		require.NoError(t, err)

		assert.InDelta(t, 600, res.TotalPrice, 1e-9) // 100 * 1.5h * 4
		assert.Equal(t, "pending", res.Status)
		assert.Equal(t, "Arena Central", res.SpaceName)
		assert.Equal(t, player.Phone, res.OrganizerPhone)
	})

	t.Run("unknown space", func(t *testing.T) {
		repo := newFakeRepo()

		_, err := newUC(repo).Execute(ctx, player, input(monday(10, 0), monday(11, 0)))
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "space_not_found"))
	})

	t.Run("sport not offered at the space", func(t *testing.T) {
		repo := newFakeRepo()
		seedSpace(repo)

		in := input(monday(10, 0), monday(11, 0))
		in.SportType = "tennis"

		_, err := newUC(repo).Execute(ctx, player, in)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "sport_not_available"))
	})

	t.Run("outside opening hours", func(t *testing.T) {
		repo := newFakeRepo()
		seedSpace(repo)

		_, err := newUC(repo).Execute(ctx, player, input(monday(7, 0), monday(9, 0)))
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "outside_opening_hours"))
	})

	t.Run("closed weekday", func(t *testing.T) {
		repo := newFakeRepo()
		seedSpace(repo)

		tuesday := monday(10, 0).AddDate(0, 0, 1)
		_, err := newUC(repo).Execute(ctx, player, input(tuesday, tuesday.Add(time.Hour)))
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "closed_on_day"))
	})

	t.Run("overlapping active reservation conflicts", func(t *testing.T) {
		repo := newFakeRepo()
		seedSpace(repo)
		uc := newUC(repo)

		_, err := uc.Execute(ctx, player, input(monday(10, 0), monday(12, 0)))
		require.NoError(t, err)

		other := ucres.Actor{ID: "player-2", Name: "Dani"}
		_, err = uc.Execute(ctx, other, input(monday(11, 0), monday(13, 0)))
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "reservation_time_conflict"))

		// back-to-back bookings do not collide
		_, err = uc.Execute(ctx, other, input(monday(12, 0), monday(14, 0)))
		require.NoError(t, err)
	})

	t.Run("canceled reservations release the slot", func(t *testing.T) {
		repo := newFakeRepo()
		seedSpace(repo)
		uc := newUC(repo)

		first, err := uc.Execute(ctx, player, input(monday(10, 0), monday(12, 0)))
		require.NoError(t, err)

		first.Status = "canceled"
		require.NoError(t, repo.UpdateReservation(ctx, first))

		_, err = uc.Execute(ctx, ucres.Actor{ID: "player-2"}, input(monday(10, 0), monday(12, 0)))
		require.NoError(t, err)
	})

	t.Run("event reservations require the event organizer", func(t *testing.T) {
		repo := newFakeRepo()
		seedSpace(repo)
		repo.events["ev-1"] = &models.Event{ID: "ev-1", OrganizerID: "someone-else"}

		in := input(monday(10, 0), monday(11, 0))
		eventID := "ev-1"
		in.EventID = &eventID

		_, err := newUC(repo).Execute(ctx, player, in)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "not_event_organizer"))
	})
}
