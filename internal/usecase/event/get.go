package event

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/whatsport/whatsport-api/internal/clock"
	domain "github.com/whatsport/whatsport-api/internal/domain/event"
	"github.com/whatsport/whatsport-api/internal/httperr"
	"github.com/whatsport/whatsport-api/internal/models"
)

type GetEvent struct {
	repo domain.Repository
}

func NewGetEvent(repo domain.Repository) *GetEvent {
	return &GetEvent{repo: repo}
}

// Execute resolves an event by id. Private events confirm their existence
// to outsiders but refuse access (403, not 404).
func (uc *GetEvent) Execute(
	ctx context.Context,
	caller Actor,
	eventID string,
) (*models.Event, error) {

	ev, err := uc.repo.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("event_not_found", "Event not found.")
		}
		return nil, err
	}

	if err := domain.CanView(ev, caller.ID); err != nil {
		return nil, err
	}

	return ev, nil
}

type ListEvents struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewListEvents(repo domain.Repository, clk clock.Clock) *ListEvents {
	return &ListEvents{repo: repo, clock: clk}
}

type ListEventsInput struct {
	Participant bool
	Upcoming    bool
	SportType   string
	SkillLevel  string
	Page        int
	PerPage     int
}

func (uc *ListEvents) Execute(
	ctx context.Context,
	caller Actor,
	in ListEventsInput,
) ([]models.Event, int64, error) {

	page := in.Page
	if page < 1 {
		page = 1
	}
	perPage := in.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	return uc.repo.ListEvents(ctx, domain.ListFilter{
		ViewerID:    caller.ID,
		Participant: in.Participant,
		Upcoming:    in.Upcoming,
		SportType:   in.SportType,
		SkillLevel:  in.SkillLevel,
		Now:         uc.clock.Now(),
		Page:        page,
		PerPage:     perPage,
	})
}
