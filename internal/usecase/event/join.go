package event

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/whatsport/whatsport-api/internal/clock"
	domain "github.com/whatsport/whatsport-api/internal/domain/event"
	"github.com/whatsport/whatsport-api/internal/httperr"
	"github.com/whatsport/whatsport-api/internal/models"
	"github.com/whatsport/whatsport-api/internal/notify"
)

type JoinEvent struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	clock  clock.Clock
}

func NewJoinEvent(
	repo domain.Repository,
	notify *notify.Dispatcher,
	clk clock.Clock,
) *JoinEvent {
	return &JoinEvent{
		repo:   repo,
		notify: notify,
		clock:  clk,
	}
}

func (uc *JoinEvent) Execute(
	ctx context.Context,
	user Actor,
	eventID string,
	positionID string,
) (*models.EventParticipant, error) {

	ev, err := uc.repo.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("event_not_found", "Event not found.")
		}
		return nil, err
	}

	if err := domain.CanJoin(ev, user.ID, uc.clock.Now()); err != nil {
		return nil, err
	}

	participant := &models.EventParticipant{
		EventID:   ev.ID,
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		Confirmed: true, // participation is auto-confirmed, no approval step
		JoinedAt:  uc.clock.Now(),
	}

	if positionID != "" {
		pos, err := domain.ResolvePosition(ev, positionID)
		if err != nil {
			return nil, err
		}
		if err := domain.PositionHasSlot(ev, pos); err != nil {
			return nil, err
		}
		posID := pos.ID
		participant.PositionID = &posID
		participant.PositionName = pos.Name
	}

	if err := uc.repo.AddParticipant(ctx, participant); err != nil {
		return nil, err
	}

	uc.notify.Dispatch(notify.Notification{
		UserID:    ev.OrganizerID,
		Type:      models.NotificationEventNewParticipant,
		Title:     "New participant",
		Message:   user.Name + " joined your event " + ev.Title + ".",
		RelatedID: ev.ID,
	})

	return participant, nil
}
