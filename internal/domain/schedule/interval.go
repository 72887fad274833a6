package schedule

import (
	"time"

	"github.com/whatsport/whatsport-api/internal/httperr"
)

// Interval is a half-open time window [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (iv Interval) Validate() error {
	if !iv.Start.Before(iv.End) {
		return httperr.ErrValidation("invalid_interval", "End time must be after start time.")
	}
	return nil
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps is the single conflict predicate. Two half-open intervals
// overlap iff each starts before the other ends.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}
