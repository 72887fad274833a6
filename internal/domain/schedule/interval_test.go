package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whatsport/whatsport-api/internal/domain/schedule"
	"github.com/whatsport/whatsport-api/internal/httperr"
)

func iv(startHour, endHour int) schedule.Interval {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return schedule.Interval{
		Start: day.Add(time.Duration(startHour) * time.Hour),
		End:   day.Add(time.Duration(endHour) * time.Hour),
	}
}

func TestIntervalValidate(t *testing.T) {
	require.NoError(t, iv(10, 12).Validate())

	err := iv(12, 10).Validate()
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_interval"))

	// zero-length windows are invalid too
	err = iv(10, 10).Validate()
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_interval"))
}

func TestIntervalDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, schedule.Interval{
		Start: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 11, 30, 0, 0, time.UTC),
	}.Duration())
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b schedule.Interval
		want bool
	}{
		{"identical", iv(10, 12), iv(10, 12), true},
		{"partial overlap", iv(10, 12), iv(11, 13), true},
		{"contained", iv(10, 14), iv(11, 12), true},
		{"touching end to start", iv(10, 12), iv(12, 14), false},
		{"touching start to end", iv(12, 14), iv(10, 12), false},
		{"disjoint", iv(8, 9), iv(10, 11), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, schedule.Overlaps(tc.a, tc.b))
			// the predicate is symmetric
			assert.Equal(t, tc.want, schedule.Overlaps(tc.b, tc.a))
		})
	}
}
