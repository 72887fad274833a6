package reservation

import (
	"context"
	"log"

	"github.com/whatsport/whatsport-api/internal/clock"
	domain "github.com/whatsport/whatsport-api/internal/domain/reservation"
	"github.com/whatsport/whatsport-api/internal/models"
)

type CompleteReservation struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewCompleteReservation(
	repo domain.Repository,
	clk clock.Clock,
) *CompleteReservation {
	return &CompleteReservation{
		repo:  repo,
		clock: clk,
	}
}

func (uc *CompleteReservation) Execute(
	ctx context.Context,
	manager Actor,
	reservationID string,
) (*models.Reservation, error) {

	res, _, err := getReservationForManager(ctx, uc.repo, manager.ID, reservationID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanComplete(domain.Status(res.Status), res.EndTime, uc.clock.Now()); err != nil {
		return nil, err
	}

	res.Status = string(domain.StatusCompleted)
	res.UpdatedAt = uc.clock.Now()

	if err := uc.repo.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	// Best-effort: a missing player profile never fails the completion.
	if err := uc.repo.IncrementEventsParticipated(ctx, res.OrganizerID); err != nil {
		log.Println("events_participated increment error:", err)
	}

	return res, nil
}
