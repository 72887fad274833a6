package schedule

import (
	"fmt"
	"time"

	"github.com/whatsport/whatsport-api/internal/httperr"
)

// DayHours is a wall-clock opening window for one weekday, "15:04" format.
type DayHours struct {
	OpensAt  string
	ClosesAt string
}

// WithinHours decides whether iv fits the declared opening hours.
// The weekday key comes from iv.Start (time.Weekday, 0 = Sunday).
// Bookings may not span a weekday boundary; those are rejected outright
// rather than truncated.
func WithinHours(hours map[int]DayHours, iv Interval) error {
	y1, m1, d1 := iv.Start.Date()
	y2, m2, d2 := iv.End.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return httperr.ErrValidation(
			"cross_day_booking",
			"Bookings must start and end on the same day.",
		)
	}

	day, ok := hours[int(iv.Start.Weekday())]
	if !ok {
		return httperr.ErrValidation(
			"closed_on_day",
			"The space is not open on this day of the week.",
		)
	}

	opens, err := parseWallClock(day.OpensAt, iv.Start)
	if err != nil {
		return err
	}
	closes, err := parseWallClock(day.ClosesAt, iv.Start)
	if err != nil {
		return err
	}

	if iv.Start.Before(opens) || iv.End.After(closes) {
		return httperr.ErrValidation(
			"outside_opening_hours",
			fmt.Sprintf("The space is only open from %s to %s on this day.", day.OpensAt, day.ClosesAt),
		)
	}

	return nil
}

func parseWallClock(hm string, ref time.Time) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_opening_hours", "Opening hours are malformed.")
	}
	return time.Date(
		ref.Year(), ref.Month(), ref.Day(),
		t.Hour(), t.Minute(), 0, 0,
		ref.Location(),
	), nil
}
