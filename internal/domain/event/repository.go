package event

import (
	"context"
	"time"

	"github.com/whatsport/whatsport-api/internal/models"
)

type ListFilter struct {
	ViewerID    string
	Participant bool
	Upcoming    bool
	SportType   string
	SkillLevel  string
	Now         time.Time
	Page        int
	PerPage     int
}

type Repository interface {
	// -------- Space (weak-ref resolution) --------
	GetSpace(ctx context.Context, id string) (*models.Space, error)

	// -------- Event (create / update with conflict scope) --------
	CreateEventNoConflict(ctx context.Context, ev *models.Event) error

	UpdateEventNoConflict(
		ctx context.Context,
		ev *models.Event,
		fields map[string]any,
		start time.Time,
		end time.Time,
	) error

	UpdateEventFields(ctx context.Context, eventID string, fields map[string]any) error

	GetEvent(ctx context.Context, id string) (*models.Event, error)

	DeleteEvent(ctx context.Context, id string) error

	// -------- Roster --------
	AddParticipant(ctx context.Context, p *models.EventParticipant) error

	RemoveParticipant(ctx context.Context, eventID string, userID string) error

	// -------- Listings --------
	ListEvents(ctx context.Context, f ListFilter) ([]models.Event, int64, error)

	ListUpcomingVisible(ctx context.Context, viewerID string, now time.Time) ([]models.Event, error)
}
