package reservation

import "github.com/whatsport/whatsport-api/internal/domain/schedule"

// TotalPrice is hourly rate times fractional hours times headcount.
// No rounding; fractional hours are billed as-is.
func TotalPrice(pricePerHour float64, iv schedule.Interval, participants int) float64 {
	return pricePerHour * iv.Duration().Hours() * float64(participants)
}
