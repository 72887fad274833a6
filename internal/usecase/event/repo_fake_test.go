package event_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	domain "github.com/whatsport/whatsport-api/internal/domain/event"
	"github.com/whatsport/whatsport-api/internal/domain/schedule"
	"github.com/whatsport/whatsport-api/internal/httperr"
	"github.com/whatsport/whatsport-api/internal/models"
)

// fakeRepo is an in-memory stand-in implementing the same conflict
// semantics as the SQL repository: per-organizer overlap, excluding the
// event being updated.
type fakeRepo struct {
	spaces map[string]*models.Space
	events map[string]*models.Event
	nextID int
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		spaces: map[string]*models.Space{},
		events: map[string]*models.Event{},
	}
}

func (f *fakeRepo) id() string {
	f.nextID++
	return fmt.Sprintf("id-%d", f.nextID)
}

func (f *fakeRepo) GetSpace(_ context.Context, id string) (*models.Space, error) {
	s, ok := f.spaces[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (f *fakeRepo) conflicts(organizerID, excludeID string, iv schedule.Interval) bool {
	for _, other := range f.events {
		if other.OrganizerID != organizerID || other.ID == excludeID {
			continue
		}
		if schedule.Overlaps(iv, schedule.Interval{Start: other.StartTime, End: other.EndTime}) {
			return true
		}
	}
	return false
}

func (f *fakeRepo) CreateEventNoConflict(_ context.Context, ev *models.Event) error {
	if f.conflicts(ev.OrganizerID, "", schedule.Interval{Start: ev.StartTime, End: ev.EndTime}) {
		return httperr.ErrConflict("event_time_conflict", "You already organize an event in this window.")
	}
	if ev.ID == "" {
		ev.ID = f.id()
	}
	for i := range ev.Positions {
		if ev.Positions[i].ID == "" {
			ev.Positions[i].ID = f.id()
		}
		ev.Positions[i].EventID = ev.ID
	}
	cp := *ev
	f.events[ev.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateEventNoConflict(
	_ context.Context,
	ev *models.Event,
	fields map[string]any,
	start time.Time,
	end time.Time,
) error {
	if f.conflicts(ev.OrganizerID, ev.ID, schedule.Interval{Start: start, End: end}) {
		return httperr.ErrConflict("event_time_conflict", "You already organize an event in this window.")
	}
	stored := f.events[ev.ID]
	stored.StartTime = start
	stored.EndTime = end
	f.applyFields(stored, fields)
	return nil
}

func (f *fakeRepo) UpdateEventFields(_ context.Context, eventID string, fields map[string]any) error {
	stored, ok := f.events[eventID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.applyFields(stored, fields)
	return nil
}

func (f *fakeRepo) applyFields(ev *models.Event, fields map[string]any) {
	for k, v := range fields {
		switch k {
		case "title":
			ev.Title = v.(string)
		case "description":
			ev.Description = v.(string)
		case "sport_type":
			ev.SportType = v.(string)
		case "skill_level":
			ev.SkillLevel = v.(string)
		case "max_participants":
			ev.MaxParticipants = v.(int)
		case "price_per_person":
			ev.PricePerPerson = v.(float64)
		case "is_private":
			ev.IsPrivate = v.(bool)
		case "space_id":
			id := v.(string)
			ev.SpaceID = &id
		case "space_name":
			ev.SpaceName = v.(string)
		case "start_time":
			ev.StartTime = v.(time.Time)
		case "end_time":
			ev.EndTime = v.(time.Time)
		case "updated_at":
			ev.UpdatedAt = v.(time.Time)
		}
	}
}

func (f *fakeRepo) GetEvent(_ context.Context, id string) (*models.Event, error) {
	ev, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ev
	return &cp, nil
}

func (f *fakeRepo) DeleteEvent(_ context.Context, id string) error {
	delete(f.events, id)
	return nil
}

func (f *fakeRepo) AddParticipant(_ context.Context, p *models.EventParticipant) error {
	ev, ok := f.events[p.EventID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if p.ID == "" {
		p.ID = f.id()
	}
	ev.Participants = append(ev.Participants, *p)
	return nil
}

func (f *fakeRepo) RemoveParticipant(_ context.Context, eventID string, userID string) error {
	ev, ok := f.events[eventID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i, p := range ev.Participants {
		if p.UserID == userID {
			ev.Participants = append(ev.Participants[:i], ev.Participants[i+1:]...)
			return nil
		}
	}
	return httperr.ErrValidation("not_participant", "You are not participating in this event.")
}

func (f *fakeRepo) ListEvents(_ context.Context, fl domain.ListFilter) ([]models.Event, int64, error) {
	var out []models.Event
	for _, ev := range f.events {
		if !domain.VisibleTo(ev, fl.ViewerID) {
			continue
		}
		if fl.Upcoming && !ev.StartTime.After(fl.Now) {
			continue
		}
		if fl.SportType != "" && ev.SportType != fl.SportType {
			continue
		}
		out = append(out, *ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, int64(len(out)), nil
}

func (f *fakeRepo) ListUpcomingVisible(_ context.Context, viewerID string, now time.Time) ([]models.Event, error) {
	var out []models.Event
	for _, ev := range f.events {
		if !domain.VisibleTo(ev, viewerID) {
			continue
		}
		if !ev.StartTime.After(now) {
			continue
		}
		out = append(out, *ev)
	}
	return out, nil
}
