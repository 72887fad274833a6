package reservation

import (
	"context"
	"errors"

	"github.com/whatsport/whatsport-api/internal/clock"
	domain "github.com/whatsport/whatsport-api/internal/domain/reservation"
	"github.com/whatsport/whatsport-api/internal/httperr"
	"github.com/whatsport/whatsport-api/internal/models"
	"gorm.io/gorm"
)

type ListReservationsInput struct {
	Status   string
	Upcoming bool
	Page     int
	PerPage  int
}

func (in *ListReservationsInput) normalize() {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PerPage < 1 {
		in.PerPage = 10
	}
	if in.PerPage > 100 {
		in.PerPage = 100
	}
}

// ListMyReservations lists the reservations a player has requested.
type ListMyReservations struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewListMyReservations(repo domain.Repository, clk clock.Clock) *ListMyReservations {
	return &ListMyReservations{repo: repo, clock: clk}
}

func (uc *ListMyReservations) Execute(
	ctx context.Context,
	organizerID string,
	input ListReservationsInput,
) ([]models.Reservation, int64, error) {

	input.normalize()
	return uc.repo.ListForOrganizer(ctx, organizerID, domain.ListFilter{
		Status:   input.Status,
		Upcoming: input.Upcoming,
		Now:      uc.clock.Now(),
		Page:     input.Page,
		PerPage:  input.PerPage,
	})
}

// ListSpaceReservations lists the reservations made against one of the
// manager's spaces.
type ListSpaceReservations struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewListSpaceReservations(repo domain.Repository, clk clock.Clock) *ListSpaceReservations {
	return &ListSpaceReservations{repo: repo, clock: clk}
}

func (uc *ListSpaceReservations) Execute(
	ctx context.Context,
	manager Actor,
	spaceID string,
	input ListReservationsInput,
) ([]models.Reservation, int64, error) {

	space, err := uc.repo.GetSpace(ctx, spaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, httperr.ErrNotFound("space_not_found", "Space not found.")
		}
		return nil, 0, err
	}
	if space.ManagerID != manager.ID {
		return nil, 0, httperr.ErrForbidden("not_space_manager", "You do not manage this space.")
	}

	input.normalize()
	return uc.repo.ListForSpace(ctx, spaceID, domain.ListFilter{
		Status:   input.Status,
		Upcoming: input.Upcoming,
		Now:      uc.clock.Now(),
		Page:     input.Page,
		PerPage:  input.PerPage,
	})
}

type GetReservation struct {
	repo domain.Repository
}

func NewGetReservation(repo domain.Repository) *GetReservation {
	return &GetReservation{repo: repo}
}

// Execute returns the reservation when the caller is either its
// organizer or the manager of its space.
func (uc *GetReservation) Execute(
	ctx context.Context,
	callerID string,
	reservationID string,
) (*models.Reservation, error) {

	res, err := uc.repo.GetReservation(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("reservation_not_found", "Reservation not found.")
		}
		return nil, err
	}

	if res.OrganizerID == callerID {
		return res, nil
	}

	space, err := uc.repo.GetSpace(ctx, res.SpaceID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if space != nil && space.ManagerID == callerID {
		return res, nil
	}

	return nil, httperr.ErrForbidden("not_reservation_party", "You are not a party to this reservation.")
}
