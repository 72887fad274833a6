package event

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/whatsport/whatsport-api/internal/clock"
	"github.com/whatsport/whatsport-api/internal/domain/schedule"
	domain "github.com/whatsport/whatsport-api/internal/domain/event"
	"github.com/whatsport/whatsport-api/internal/httperr"
	"github.com/whatsport/whatsport-api/internal/models"
	"github.com/whatsport/whatsport-api/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

// UpdateEventInput is a patch: nil fields are left untouched.
type UpdateEventInput struct {
	Title       *string
	Description *string
	SportType   *string
	SkillLevel  *string

	StartTime *time.Time
	EndTime   *time.Time

	Location        *models.Location
	MaxParticipants *int

	SpaceID        *string
	PricePerPerson *float64
	IsPrivate      *bool
}

// ======================================================
// USE CASE
// ======================================================

type UpdateEvent struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	clock  clock.Clock
}

func NewUpdateEvent(
	repo domain.Repository,
	notify *notify.Dispatcher,
	clk clock.Clock,
) *UpdateEvent {
	return &UpdateEvent{
		repo:   repo,
		notify: notify,
		clock:  clk,
	}
}

func (uc *UpdateEvent) Execute(
	ctx context.Context,
	caller Actor,
	eventID string,
	in UpdateEventInput,
) (*models.Event, error) {

	ev, err := uc.repo.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("event_not_found", "Event not found.")
		}
		return nil, err
	}

	if ev.OrganizerID != caller.ID {
		return nil, httperr.ErrForbidden("not_organizer", "Only the organizer can update the event.")
	}

	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.SportType != nil {
		fields["sport_type"] = *in.SportType
	}
	if in.SkillLevel != nil {
		fields["skill_level"] = *in.SkillLevel
	}
	if in.MaxParticipants != nil {
		if *in.MaxParticipants < 1 {
			return nil, httperr.ErrValidation("invalid_max_participants", "An event needs at least one participant slot.")
		}
		fields["max_participants"] = *in.MaxParticipants
	}
	if in.PricePerPerson != nil {
		fields["price_per_person"] = *in.PricePerPerson
	}
	if in.IsPrivate != nil {
		fields["is_private"] = *in.IsPrivate
	}

	locationChanged := in.Location != nil
	if locationChanged {
		fields["location_lat"] = in.Location.Lat
		fields["location_lng"] = in.Location.Lng
		fields["location_address"] = in.Location.Address
		fields["location_city"] = in.Location.City
		fields["location_state"] = in.Location.State
		fields["location_postal_code"] = in.Location.PostalCode
	}

	if in.SpaceID != nil && *in.SpaceID != "" {
		space, err := uc.repo.GetSpace(ctx, *in.SpaceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrNotFound("space_not_found", "Space not found.")
			}
			return nil, err
		}
		fields["space_id"] = *in.SpaceID
		fields["space_name"] = space.Name
	}

	intervalChanged := in.StartTime != nil || in.EndTime != nil
	start, end := ev.StartTime, ev.EndTime
	if in.StartTime != nil {
		start = *in.StartTime
		fields["start_time"] = start
	}
	if in.EndTime != nil {
		end = *in.EndTime
		fields["end_time"] = end
	}

	fields["updated_at"] = uc.clock.Now()

	if intervalChanged {
		iv := schedule.Interval{Start: start, End: end}
		if err := iv.Validate(); err != nil {
			return nil, err
		}
		if err := uc.repo.UpdateEventNoConflict(ctx, ev, fields, start, end); err != nil {
			return nil, err
		}
	} else {
		if err := uc.repo.UpdateEventFields(ctx, ev.ID, fields); err != nil {
			return nil, err
		}
	}

	if intervalChanged || locationChanged {
		for _, p := range ev.Participants {
			uc.notify.Dispatch(notify.Notification{
				UserID:    p.UserID,
				Type:      models.NotificationEventUpdated,
				Title:     "Event updated",
				Message:   "The event " + ev.Title + " changed its time or location.",
				RelatedID: ev.ID,
			})
		}
	}

	return uc.repo.GetEvent(ctx, ev.ID)
}
