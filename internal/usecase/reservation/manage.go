package reservation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/whatsport/whatsport-api/internal/domain/reservation"
	"github.com/whatsport/whatsport-api/internal/httperr"
	"github.com/whatsport/whatsport-api/internal/models"
)

// getReservationForManager resolves a reservation together with its space
// and checks that the caller manages that space. The space is a weak
// reference; a dangling one reads as forbidden, same as a foreign space.
func getReservationForManager(
	ctx context.Context,
	repo domain.Repository,
	managerID string,
	reservationID string,
) (*models.Reservation, *models.Space, error) {

	res, err := repo.GetReservation(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, httperr.ErrNotFound("reservation_not_found", "Reservation not found.")
		}
		return nil, nil, err
	}

	space, err := repo.GetSpace(ctx, res.SpaceID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}
	if space == nil || space.ManagerID != managerID {
		return nil, nil, httperr.ErrForbidden("not_space_manager", "You do not manage this reservation's space.")
	}

	return res, space, nil
}

func getReservationForOrganizer(
	ctx context.Context,
	repo domain.Repository,
	organizerID string,
	reservationID string,
) (*models.Reservation, error) {

	res, err := repo.GetReservation(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("reservation_not_found", "Reservation not found.")
		}
		return nil, err
	}

	if res.OrganizerID != organizerID {
		return nil, httperr.ErrForbidden("not_reservation_organizer", "You do not own this reservation.")
	}

	return res, nil
}
