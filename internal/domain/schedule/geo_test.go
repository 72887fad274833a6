package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/whatsport/whatsport-api/internal/domain/schedule"
)

func TestDistanceKm(t *testing.T) {
	// São Paulo and Rio de Janeiro city centers.
	spLat, spLng := -23.5505, -46.6333
	rjLat, rjLng := -22.9068, -43.1729

	t.Run("same point is zero", func(t *testing.T) {
		assert.Zero(t, schedule.DistanceKm(spLat, spLng, spLat, spLng))
	})

	t.Run("symmetric", func(t *testing.T) {
		there := schedule.DistanceKm(spLat, spLng, rjLat, rjLng)
		back := schedule.DistanceKm(rjLat, rjLng, spLat, spLng)
		assert.InDelta(t, there, back, 1e-9)
	})

	t.Run("known distance", func(t *testing.T) {
		d := schedule.DistanceKm(spLat, spLng, rjLat, rjLng)
		assert.InDelta(t, 361, d, 5)
	})

	t.Run("short distance", func(t *testing.T) {
		// roughly 1.11km per 0.01 degree of latitude
		d := schedule.DistanceKm(spLat, spLng, spLat+0.01, spLng)
		assert.InDelta(t, 1.11, d, 0.02)
	})
}
