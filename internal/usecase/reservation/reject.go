package reservation

import (
	"context"
	"fmt"

	"github.com/whatsport/whatsport-api/internal/clock"
	domain "github.com/whatsport/whatsport-api/internal/domain/reservation"
	"github.com/whatsport/whatsport-api/internal/httperr"
	"github.com/whatsport/whatsport-api/internal/models"
	"github.com/whatsport/whatsport-api/internal/notify"
)

type RejectReservation struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	clock  clock.Clock
}

func NewRejectReservation(
	repo domain.Repository,
	notify *notify.Dispatcher,
	clk clock.Clock,
) *RejectReservation {
	return &RejectReservation{
		repo:   repo,
		notify: notify,
		clock:  clk,
	}
}

func (uc *RejectReservation) Execute(
	ctx context.Context,
	manager Actor,
	reservationID string,
	reason string,
) (*models.Reservation, error) {

	if reason == "" {
		return nil, httperr.ErrValidation("missing_rejection_reason", "A rejection reason is required.")
	}

	res, space, err := getReservationForManager(ctx, uc.repo, manager.ID, reservationID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanReject(domain.Status(res.Status)); err != nil {
		return nil, err
	}

	res.Status = string(domain.StatusRejected)
	res.RejectionReason = reason
	res.UpdatedAt = uc.clock.Now()

	if err := uc.repo.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	uc.notify.Dispatch(notify.Notification{
		UserID:    res.OrganizerID,
		Type:      models.NotificationReservationRejected,
		Title:     "Reservation rejected",
		Message:   fmt.Sprintf("Your reservation for %s at %s was rejected. Reason: %s", res.SportType, space.Name, reason),
		RelatedID: res.ID,
		ActionURL: "/player/reservations/" + res.ID,
	})

	return res, nil
}
