package reservation

import (
	"context"
	"time"

	"github.com/whatsport/whatsport-api/internal/models"
)

type ListFilter struct {
	Status   string
	Upcoming bool
	Now      time.Time
	Page     int
	PerPage  int
}

type Repository interface {
	// -------- Weak-ref resolution --------
	GetSpace(ctx context.Context, id string) (*models.Space, error)

	GetEvent(ctx context.Context, id string) (*models.Event, error)

	// -------- Reservation --------
	CreateReservationNoConflict(ctx context.Context, r *models.Reservation) error

	GetReservation(ctx context.Context, id string) (*models.Reservation, error)

	UpdateReservation(ctx context.Context, r *models.Reservation) error

	ListForOrganizer(ctx context.Context, organizerID string, f ListFilter) ([]models.Reservation, int64, error)

	ListForSpace(ctx context.Context, spaceID string, f ListFilter) ([]models.Reservation, int64, error)

	// IncrementEventsParticipated is best-effort bookkeeping on the
	// organizer's player profile; a missing profile is not an error.
	IncrementEventsParticipated(ctx context.Context, userID string) error
}
