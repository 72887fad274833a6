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

// Actor is the authenticated caller as the use cases see it.
type Actor struct {
	ID    string
	Name  string
	Email string
}

// ======================================================
// INPUT
// ======================================================

type PositionInput struct {
	Name        string
	Description string
	Quantity    int
}

type CreateEventInput struct {
	Title       string
	Description string
	SportType   string
	SkillLevel  string

	StartTime time.Time
	EndTime   time.Time

	Location        models.Location
	MaxParticipants int

	SpaceID        *string
	PricePerPerson float64
	IsPrivate      bool

	Positions []PositionInput
}

// ======================================================
// USE CASE
// ======================================================

type CreateEvent struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	clock  clock.Clock
}

func NewCreateEvent(
	repo domain.Repository,
	notify *notify.Dispatcher,
	clk clock.Clock,
) *CreateEvent {
	return &CreateEvent{
		repo:   repo,
		notify: notify,
		clock:  clk,
	}
}

func (uc *CreateEvent) Execute(
	ctx context.Context,
	organizer Actor,
	in CreateEventInput,
) (*models.Event, error) {

	iv := schedule.Interval{Start: in.StartTime, End: in.EndTime}
	if err := iv.Validate(); err != nil {
		return nil, err
	}

	if in.MaxParticipants < 1 {
		return nil, httperr.ErrValidation("invalid_max_participants", "An event needs at least one participant slot.")
	}
	for _, p := range in.Positions {
		if p.Quantity < 1 {
			return nil, httperr.ErrValidation("invalid_position_quantity", "Position quantity must be at least 1.")
		}
	}

	// Snapshot the space name; the copy is not kept in sync afterwards.
	var spaceName string
	if in.SpaceID != nil && *in.SpaceID != "" {
		space, err := uc.repo.GetSpace(ctx, *in.SpaceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrNotFound("space_not_found", "Space not found.")
			}
			return nil, err
		}
		spaceName = space.Name
	}

	ev := &models.Event{
		Title:           in.Title,
		Description:     in.Description,
		SportType:       in.SportType,
		SkillLevel:      in.SkillLevel,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		Location:        in.Location,
		MaxParticipants: in.MaxParticipants,
		OrganizerID:     organizer.ID,
		OrganizerName:   organizer.Name,
		SpaceID:         in.SpaceID,
		SpaceName:       spaceName,
		PricePerPerson:  in.PricePerPerson,
		IsPrivate:       in.IsPrivate,
		// The organizer is not auto-enrolled as a participant.
		Participants: nil,
	}
	for _, p := range in.Positions {
		ev.Positions = append(ev.Positions, models.EventPosition{
			Name:        p.Name,
			Description: p.Description,
			Quantity:    p.Quantity,
		})
	}

	if err := uc.repo.CreateEventNoConflict(ctx, ev); err != nil {
		return nil, err
	}

	uc.notify.Dispatch(notify.Notification{
		UserID:    organizer.ID,
		Type:      models.NotificationEventCreated,
		Title:     "Event created",
		Message:   "Your event " + ev.Title + " was created.",
		RelatedID: ev.ID,
	})

	return ev, nil
}
