package event

import (
	"fmt"
	"time"

	"github.com/whatsport/whatsport-api/internal/httperr"
	"github.com/whatsport/whatsport-api/internal/models"
)

// VisibleTo implements the listing visibility rule: public events are
// visible to everyone, private ones only to the organizer and participants.
func VisibleTo(ev *models.Event, userID string) bool {
	if !ev.IsPrivate {
		return true
	}
	if ev.OrganizerID == userID {
		return true
	}
	return IsParticipant(ev, userID)
}

// CanView gates direct-id lookups. A private event confirms its existence
// to outsiders but refuses access.
func CanView(ev *models.Event, userID string) error {
	if VisibleTo(ev, userID) {
		return nil
	}
	return httperr.ErrForbidden("private_event", "This is a private event.")
}

func IsParticipant(ev *models.Event, userID string) bool {
	for _, p := range ev.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

func CanJoin(ev *models.Event, userID string, now time.Time) error {
	if ev.StartTime.Before(now) {
		return httperr.ErrConflict("event_already_started", "This event has already started or passed.")
	}
	if IsParticipant(ev, userID) {
		return httperr.ErrConflict("already_participant", "You are already participating in this event.")
	}
	if len(ev.Participants) >= ev.MaxParticipants {
		return httperr.ErrConflict("event_full", "This event has reached its participant limit.")
	}
	return nil
}

func CanLeave(ev *models.Event, userID string, now time.Time) error {
	if ev.StartTime.Before(now) {
		return httperr.ErrConflict("event_already_started", "This event has already started or passed.")
	}
	if !IsParticipant(ev, userID) {
		return httperr.ErrValidation("not_participant", "You are not participating in this event.")
	}
	return nil
}

// ResolvePosition matches by id first, then by name, mirroring how
// clients historically sent either.
func ResolvePosition(ev *models.Event, positionID string) (*models.EventPosition, error) {
	for i := range ev.Positions {
		if ev.Positions[i].ID == positionID {
			return &ev.Positions[i], nil
		}
	}
	for i := range ev.Positions {
		if ev.Positions[i].Name == positionID {
			return &ev.Positions[i], nil
		}
	}
	return nil, httperr.ErrNotFound("position_not_found", "Position not found in this event.")
}

// PositionHasSlot checks the per-position quantity against current holders.
func PositionHasSlot(ev *models.Event, pos *models.EventPosition) error {
	held := 0
	for _, p := range ev.Participants {
		if p.PositionID != nil && *p.PositionID == pos.ID {
			held++
		}
	}
	if held >= pos.Quantity {
		return httperr.ErrConflict(
			"position_full",
			fmt.Sprintf("No slots left for position %q.", pos.Name),
		)
	}
	return nil
}
