package geo_test

import (
	"testing"

	"go-dogwalking-backend/pkg/geo"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	t.Run("Identical points have zero distance", func(t *testing.T) {
		assert.Equal(t, 0.0, geo.DistanceKm(52.52, 13.405, 52.52, 13.405))
	})

	t.Run("Is symmetric", func(t *testing.T) {
		d1 := geo.DistanceKm(48.8566, 2.3522, 51.5074, -0.1278) // Paris -> London
		d2 := geo.DistanceKm(51.5074, -0.1278, 48.8566, 2.3522) // London -> Paris
		assert.Equal(t, d1, d2)
	})

	t.Run("Paris to London is roughly 344km", func(t *testing.T) {
		d := geo.DistanceKm(48.8566, 2.3522, 51.5074, -0.1278)
		assert.InDelta(t, 344, d, 2)
	})

	t.Run("Never negative", func(t *testing.T) {
		d := geo.DistanceKm(-33.8688, 151.2093, 40.7128, -74.0060)
		assert.Greater(t, d, 0.0)
	})

	t.Run("Small coordinate delta gives small distance", func(t *testing.T) {
		// ~0.001 degrees of latitude is about 111 meters
		d := geo.DistanceKm(52.5200, 13.4050, 52.5210, 13.4050)
		assert.InDelta(t, 0.111, d, 0.01)
	})

	t.Run("Distance grows with separation", func(t *testing.T) {
		near := geo.DistanceKm(52.52, 13.405, 52.53, 13.405)
		far := geo.DistanceKm(52.52, 13.405, 52.60, 13.405)
		assert.Less(t, near, far)
	})
}
