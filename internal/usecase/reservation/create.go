package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/whatsport/whatsport-api/internal/clock"
	domain "github.com/whatsport/whatsport-api/internal/domain/reservation"
	"github.com/whatsport/whatsport-api/internal/domain/schedule"
	"github.com/whatsport/whatsport-api/internal/httperr"
	"github.com/whatsport/whatsport-api/internal/models"
	"github.com/whatsport/whatsport-api/internal/notify"
)

// Actor is the authenticated caller as the use cases see it.
type Actor struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// ======================================================
// INPUT
// ======================================================

type CreateReservationInput struct {
	SpaceID string
	EventID *string

	SportType string

	StartTime time.Time
	EndTime   time.Time

	ParticipantsCount int
	Notes             string
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	clock  clock.Clock
}

func NewCreateReservation(
	repo domain.Repository,
	notify *notify.Dispatcher,
	clk clock.Clock,
) *CreateReservation {
	return &CreateReservation{
		repo:   repo,
		notify: notify,
		clock:  clk,
	}
}

func (uc *CreateReservation) Execute(
	ctx context.Context,
	organizer Actor,
	in CreateReservationInput,
) (*models.Reservation, error) {

	iv := schedule.Interval{Start: in.StartTime, End: in.EndTime}
	if err := iv.Validate(); err != nil {
		return nil, err
	}
	if in.ParticipantsCount < 1 {
		return nil, httperr.ErrValidation("invalid_participants_count", "Participant count must be at least 1.")
	}

	space, err := uc.repo.GetSpace(ctx, in.SpaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("space_not_found", "Space not found.")
		}
		return nil, err
	}

	// A reservation tied to an event must come from that event's organizer.
	if in.EventID != nil && *in.EventID != "" {
		ev, err := uc.repo.GetEvent(ctx, *in.EventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrNotFound("event_not_found", "Event not found.")
			}
			return nil, err
		}
		if ev.OrganizerID != organizer.ID {
			return nil, httperr.ErrForbidden(
				"not_event_organizer",
				"Only the event organizer can make reservations for it.",
			)
		}
	}

	if err := schedule.WithinHours(openingHoursMap(space), iv); err != nil {
		return nil, err
	}

	sport := findSport(space, in.SportType)
	if sport == nil {
		return nil, httperr.ErrNotFound(
			"sport_not_available",
			fmt.Sprintf("The sport %s is not available at this space.", in.SportType),
		)
	}

	res := &models.Reservation{
		SpaceID:           space.ID,
		SpaceName:         space.Name,
		EventID:           in.EventID,
		OrganizerID:       organizer.ID,
		OrganizerName:     organizer.Name,
		OrganizerEmail:    organizer.Email,
		OrganizerPhone:    organizer.Phone,
		SportType:         in.SportType,
		StartTime:         in.StartTime,
		EndTime:           in.EndTime,
		ParticipantsCount: in.ParticipantsCount,
		TotalPrice:        domain.TotalPrice(sport.PricePerHour, iv, in.ParticipantsCount),
		Status:            string(domain.InitialStatus()),
		Notes:             in.Notes,
	}

	if err := uc.repo.CreateReservationNoConflict(ctx, res); err != nil {
		return nil, err
	}

	uc.notify.Dispatch(notify.Notification{
		UserID:    space.ManagerID,
		Type:      models.NotificationReservationRequest,
		Title:     "New reservation request",
		Message:   fmt.Sprintf("New reservation from %s for %s at %s", organizer.Name, in.SportType, space.Name),
		RelatedID: res.ID,
		ActionURL: "/manager/reservations/" + res.ID,
	})

	return res, nil
}

func openingHoursMap(space *models.Space) map[int]schedule.DayHours {
	hours := make(map[int]schedule.DayHours, len(space.OpeningHours))
	for _, h := range space.OpeningHours {
		hours[h.Weekday] = schedule.DayHours{
			OpensAt:  h.OpensAt,
			ClosesAt: h.ClosesAt,
		}
	}
	return hours
}

func findSport(space *models.Space, sportType string) *models.SpaceSport {
	for i := range space.AvailableSports {
		if space.AvailableSports[i].SportType == sportType {
			return &space.AvailableSports[i]
		}
	}
	return nil
}
