package reservation_test

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/whatsport/whatsport-api/internal/domain/reservation"
	"github.com/whatsport/whatsport-api/internal/domain/schedule"
	"github.com/whatsport/whatsport-api/internal/httperr"
	"github.com/whatsport/whatsport-api/internal/models"
)

// fakeRepo mirrors the SQL repository's conflict rule: pending and
// approved reservations on the same space block overlapping windows.
type fakeRepo struct {
	spaces       map[string]*models.Space
	events       map[string]*models.Event
	reservations map[string]*models.Reservation

	counters map[string]int

	incrementErr error
	nextID       int
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		spaces:       map[string]*models.Space{},
		events:       map[string]*models.Event{},
		reservations: map[string]*models.Reservation{},
		counters:     map[string]int{},
	}
}

func (f *fakeRepo) GetSpace(_ context.Context, id string) (*models.Space, error) {
	s, ok := f.spaces[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (f *fakeRepo) GetEvent(_ context.Context, id string) (*models.Event, error) {
	ev, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ev, nil
}

func (f *fakeRepo) CreateReservationNoConflict(_ context.Context, r *models.Reservation) error {
	active := map[string]bool{}
	for _, s := range domain.ActiveStatuses() {
		active[s] = true
	}

	iv := schedule.Interval{Start: r.StartTime, End: r.EndTime}
	for _, other := range f.reservations {
		if other.SpaceID != r.SpaceID || !active[other.Status] {
			continue
		}
		if schedule.Overlaps(iv, schedule.Interval{Start: other.StartTime, End: other.EndTime}) {
			return httperr.ErrConflict("reservation_time_conflict", "The space is already booked in this window.")
		}
	}

	if r.ID == "" {
		f.nextID++
		r.ID = fmt.Sprintf("res-%d", f.nextID)
	}
	cp := *r
	f.reservations[r.ID] = &cp
	return nil
}

func (f *fakeRepo) GetReservation(_ context.Context, id string) (*models.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) UpdateReservation(_ context.Context, r *models.Reservation) error {
	if _, ok := f.reservations[r.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *r
	f.reservations[r.ID] = &cp
	return nil
}

func (f *fakeRepo) ListForOrganizer(_ context.Context, organizerID string, fl domain.ListFilter) ([]models.Reservation, int64, error) {
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.OrganizerID != organizerID {
			continue
		}
		if fl.Status != "" && r.Status != fl.Status {
			continue
		}
		if fl.Upcoming && !r.EndTime.After(fl.Now) {
			continue
		}
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) ListForSpace(_ context.Context, spaceID string, fl domain.ListFilter) ([]models.Reservation, int64, error) {
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.SpaceID != spaceID {
			continue
		}
		if fl.Status != "" && r.Status != fl.Status {
			continue
		}
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) IncrementEventsParticipated(_ context.Context, userID string) error {
	if f.incrementErr != nil {
		return f.incrementErr
	}
	f.counters[userID]++
	return nil
}
