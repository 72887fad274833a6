package reservation

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/whatsport/whatsport-api/internal/clock"
	domain "github.com/whatsport/whatsport-api/internal/domain/reservation"
	"github.com/whatsport/whatsport-api/internal/models"
	"github.com/whatsport/whatsport-api/internal/notify"
)

type CancelReservation struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	clock  clock.Clock
}

func NewCancelReservation(
	repo domain.Repository,
	notify *notify.Dispatcher,
	clk clock.Clock,
) *CancelReservation {
	return &CancelReservation{
		repo:   repo,
		notify: notify,
		clock:  clk,
	}
}

func (uc *CancelReservation) Execute(
	ctx context.Context,
	organizer Actor,
	reservationID string,
) (*models.Reservation, error) {

	res, err := getReservationForOrganizer(ctx, uc.repo, organizer.ID, reservationID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanCancel(domain.Status(res.Status)); err != nil {
		return nil, err
	}

	res.Status = string(domain.StatusCanceled)
	res.UpdatedAt = uc.clock.Now()

	if err := uc.repo.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	// The space may have been deleted since; the manager notification is
	// skipped in that case, not an error.
	space, err := uc.repo.GetSpace(ctx, res.SpaceID)
	if err == nil {
		uc.notify.Dispatch(notify.Notification{
			UserID:    space.ManagerID,
			Type:      models.NotificationReservationCanceled,
			Title:     "Reservation canceled",
			Message:   fmt.Sprintf("The reservation from %s for %s at %s was canceled by the organizer", res.OrganizerName, res.SportType, space.Name),
			RelatedID: res.ID,
		})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return res, nil
}
