package reservation

import (
	"fmt"
	"time"

	"github.com/whatsport/whatsport-api/internal/httperr"
)

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCanceled  Status = "canceled"
	StatusCompleted Status = "completed"
)

func InitialStatus() Status {
	return StatusPending
}

// ActiveStatuses are the statuses that block the slot for conflict checks.
func ActiveStatuses() []string {
	return []string{string(StatusPending), string(StatusApproved)}
}

// ===============================
// Transitions
// ===============================

func CanApprove(current Status) error {
	if current != StatusPending {
		return transitionError("approve", current)
	}
	return nil
}

func CanReject(current Status) error {
	if current != StatusPending {
		return transitionError("reject", current)
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusApproved {
		return transitionError("cancel", current)
	}
	return nil
}

// CanComplete additionally requires the reserved window to have ended.
func CanComplete(current Status, end time.Time, now time.Time) error {
	if current != StatusApproved {
		return transitionError("complete", current)
	}
	if end.After(now) {
		return httperr.ErrConflict(
			"reservation_not_finished",
			"The reservation cannot be completed before its end time.",
		)
	}
	return nil
}

func transitionError(action string, current Status) error {
	return httperr.ErrConflict(
		"invalid_status_transition",
		fmt.Sprintf("Cannot %s a reservation with status %s.", action, current),
	)
}
