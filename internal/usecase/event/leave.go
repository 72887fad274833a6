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

type LeaveEvent struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	clock  clock.Clock
}

func NewLeaveEvent(
	repo domain.Repository,
	notify *notify.Dispatcher,
	clk clock.Clock,
) *LeaveEvent {
	return &LeaveEvent{
		repo:   repo,
		notify: notify,
		clock:  clk,
	}
}

func (uc *LeaveEvent) Execute(
	ctx context.Context,
	user Actor,
	eventID string,
) error {

	ev, err := uc.repo.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrNotFound("event_not_found", "Event not found.")
		}
		return err
	}

	if err := domain.CanLeave(ev, user.ID, uc.clock.Now()); err != nil {
		return err
	}

	if err := uc.repo.RemoveParticipant(ctx, ev.ID, user.ID); err != nil {
		return err
	}

	uc.notify.Dispatch(notify.Notification{
		UserID:    ev.OrganizerID,
		Type:      models.NotificationEventParticipantLeft,
		Title:     "Participant left",
		Message:   user.Name + " left your event " + ev.Title + ".",
		RelatedID: ev.ID,
	})

	return nil
}
