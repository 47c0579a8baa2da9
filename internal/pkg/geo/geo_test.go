package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("zero distance", func(t *testing.T) {
		assert.Zero(t, HaversineDistance(-6.1617, 106.8751, -6.1617, 106.8751))
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		// Roughly 111 km per degree of latitude.
		d := HaversineDistance(0, 0, 1, 0)
		assert.InDelta(t, 111194, d, 500)
	})

	t.Run("short hop stays inside a 100m geofence", func(t *testing.T) {
		// ~55m north of the reference point.
		d := HaversineDistance(-6.161777, 106.875199, -6.161277, 106.875199)
		assert.Less(t, d, 100.0)
		assert.Greater(t, d, 30.0)
	})
}
