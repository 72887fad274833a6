package event

import (
	"context"
	"sort"

	"github.com/whatsport/whatsport-api/internal/clock"
	domain "github.com/whatsport/whatsport-api/internal/domain/event"
	"github.com/whatsport/whatsport-api/internal/domain/schedule"
	"github.com/whatsport/whatsport-api/internal/httperr"
	"github.com/whatsport/whatsport-api/internal/models"
)

type NearbyEvent struct {
	models.Event
	DistanceKm float64 `json:"distance_km"`
}

type NearbyInput struct {
	Lat      float64
	Lng      float64
	RadiusKm float64
	Page     int
	PerPage  int
}

type ListNearbyEvents struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewListNearbyEvents(repo domain.Repository, clk clock.Clock) *ListNearbyEvents {
	return &ListNearbyEvents{repo: repo, clock: clk}
}

// Execute filters future visible events by great-circle distance and sorts
// ascending before paginating. Events without coordinates are skipped, not
// treated as errors.
func (uc *ListNearbyEvents) Execute(
	ctx context.Context,
	caller Actor,
	in NearbyInput,
) ([]NearbyEvent, int64, error) {

	if in.RadiusKm <= 0 {
		return nil, 0, httperr.ErrValidation("invalid_radius", "Radius must be positive.")
	}

	events, err := uc.repo.ListUpcomingVisible(ctx, caller.ID, uc.clock.Now())
	if err != nil {
		return nil, 0, err
	}

	nearby := make([]NearbyEvent, 0, len(events))
	for _, ev := range events {
		if ev.Location.Lat == nil || ev.Location.Lng == nil {
			continue
		}
		d := schedule.DistanceKm(in.Lat, in.Lng, *ev.Location.Lat, *ev.Location.Lng)
		if d <= in.RadiusKm {
			nearby = append(nearby, NearbyEvent{Event: ev, DistanceKm: d})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	total := int64(len(nearby))

	page := in.Page
	if page < 1 {
		page = 1
	}
	perPage := in.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	start := (page - 1) * perPage
	if start >= len(nearby) {
		return []NearbyEvent{}, total, nil
	}
	end := start + perPage
	if end > len(nearby) {
		end = len(nearby)
	}

	return nearby[start:end], total, nil
}
