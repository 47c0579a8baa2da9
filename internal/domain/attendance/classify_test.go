package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyClockIn(t *testing.T) {
	day := func(hour, min int) time.Time {
		return time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
	}

	tests := []struct {
		name    string
		clockIn time.Time
		want    Status
	}{
		{"well before start", day(8, 30), StatusPresent},
		{"exactly at start", day(9, 0), StatusPresent},
		{"inside tolerance", day(9, 10), StatusPresent},
		{"at tolerance boundary", day(9, 15), StatusPresent},
		{"one minute past tolerance", day(9, 16), StatusLate},
		{"afternoon", day(14, 0), StatusLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassifyClockIn(tt.clockIn, "09:00", 15*time.Minute)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyClockInInvalidWorkStart(t *testing.T) {
	_, err := ClassifyClockIn(time.Now(), "nine", 15*time.Minute)
	assert.Error(t, err)
}

func TestWorkedHours(t *testing.T) {
	in := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	out := time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC)
	assert.InDelta(t, 8.5, WorkedHours(in, out), 0.001)
}

func TestExpectedWorkdays(t *testing.T) {
	// March 2025 has 21 weekdays.
	ref := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 21, ExpectedWorkdays(2025, time.March, ref))

	// Current month counts only up to the reference day.
	ref = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 6, ExpectedWorkdays(2025, time.March, ref))

	// Reference on the last day of the month counts the whole month.
	ref = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 21, ExpectedWorkdays(2025, time.March, ref))
}

func TestClockRequestValidate(t *testing.T) {
	lat, lng := -6.16, 106.87
	evidence := "attendance/abc.jpg"

	valid := func(kind, mode string) ClockRequest {
		return ClockRequest{Kind: kind, Mode: mode, Latitude: &lat, Longitude: &lng, EvidenceRef: &evidence}
	}

	t.Run("valid office clock-in", func(t *testing.T) {
		req := valid("in", "office")
		assert.NoError(t, req.Validate())
	})

	t.Run("valid remote clock-out", func(t *testing.T) {
		req := valid("out", "remote")
		assert.NoError(t, req.Validate())
	})

	t.Run("office without evidence", func(t *testing.T) {
		req := valid("in", "office")
		req.EvidenceRef = nil
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "evidence")
	})

	t.Run("remote without coordinates", func(t *testing.T) {
		req := valid("in", "remote")
		req.Latitude, req.Longitude = nil, nil
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})

	t.Run("empty evidence reference", func(t *testing.T) {
		blank := "   "
		req := valid("in", "client_visit")
		req.EvidenceRef = &blank
		assert.Error(t, req.Validate())
	})

	t.Run("unknown kind", func(t *testing.T) {
		req := valid("pause", "office")
		assert.Error(t, req.Validate())
	})

	t.Run("unknown mode", func(t *testing.T) {
		req := valid("in", "beach")
		assert.Error(t, req.Validate())
	})

	t.Run("latitude out of range", func(t *testing.T) {
		badLat := 120.0
		req := valid("in", "office")
		req.Latitude = &badLat
		assert.Error(t, req.Validate())
	})
}
