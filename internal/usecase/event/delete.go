package event

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/whatsport/whatsport-api/internal/domain/event"
	"github.com/whatsport/whatsport-api/internal/httperr"
	"github.com/whatsport/whatsport-api/internal/models"
	"github.com/whatsport/whatsport-api/internal/notify"
)

type DeleteEvent struct {
	repo   domain.Repository
	notify *notify.Dispatcher
}

func NewDeleteEvent(
	repo domain.Repository,
	notify *notify.Dispatcher,
) *DeleteEvent {
	return &DeleteEvent{
		repo:   repo,
		notify: notify,
	}
}

func (uc *DeleteEvent) Execute(
	ctx context.Context,
	caller Actor,
	eventID string,
) error {

	ev, err := uc.repo.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrNotFound("event_not_found", "Event not found.")
		}
		return err
	}

	if ev.OrganizerID != caller.ID {
		return httperr.ErrForbidden("not_organizer", "Only the organizer can delete the event.")
	}

	// Participants hear about the cancellation before the record goes away.
	for _, p := range ev.Participants {
		uc.notify.Dispatch(notify.Notification{
			UserID:    p.UserID,
			Type:      models.NotificationEventCanceled,
			Title:     "Event canceled",
			Message:   "The event " + ev.Title + " was canceled by the organizer.",
			RelatedID: ev.ID,
		})
	}

	return uc.repo.DeleteEvent(ctx, ev.ID)
}
