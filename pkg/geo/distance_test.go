package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversine(t *testing.T) {
	// Aachen Markt to Cologne Cathedral, roughly 64 km
	d := CalculateHaversineDistance(50.7762, 6.0838, 50.9413, 6.9583)
	assert.InDelta(t, 64.3, d, 1.0)

	assert.Equal(t, 0.0, HaversineMeters(NewCoordinate(50.7762, 6.0838), NewCoordinate(50.7762, 6.0838)))
}

func TestBearingTo(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{"north", 0, 0, 1, 0, 0},
		{"east", 0, 0, 0, 1, 90},
		{"south", 1, 0, 0, 0, 180},
		{"west", 0, 1, 0, 0, 270},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, BearingTo(tc.lat1, tc.lon1, tc.lat2, tc.lon2), 1e-9)
		})
	}
}

func TestBoundingBoxAround(t *testing.T) {
	minLat, minLon, maxLat, maxLon, ok := BoundingBoxAround(50.7762, 6.0838, 1)
	require.True(t, ok)
	assert.Less(t, minLat, 50.7762)
	assert.Less(t, minLon, 6.0838)
	assert.Greater(t, maxLat, 50.7762)
	assert.Greater(t, maxLon, 6.0838)

	// every corner of the box is at least radius away from the center along an axis
	assert.GreaterOrEqual(t, CalculateHaversineDistance(50.7762, 6.0838, maxLat, 6.0838), 0.999)
	assert.GreaterOrEqual(t, CalculateHaversineDistance(50.7762, 6.0838, 50.7762, maxLon), 0.999)
}

func TestPolylineRoundTrip(t *testing.T) {
	coords := []Coordinate{NewCoordinate(50.77620, 6.08380), NewCoordinate(50.78110, 6.07960)}
	decoded, err := CoordsFromPolyline(PolylineFromCoords(coords))
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	for i := range coords {
		assert.InDelta(t, coords[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, coords[i].Lon, decoded[i].Lon, 1e-5)
	}
}

func TestBoundsOf(t *testing.T) {
	b, ok := BoundsOf([]Coordinate{NewCoordinate(50.77, 6.08), NewCoordinate(50.78, 6.07)})
	require.True(t, ok)
	assert.InDelta(t, 50.77, b.Min.Lat, 1e-9)
	assert.InDelta(t, 6.07, b.Min.Lon, 1e-9)
	assert.InDelta(t, 50.78, b.Max.Lat, 1e-9)
	assert.InDelta(t, 6.08, b.Max.Lon, 1e-9)

	_, ok = BoundsOf(nil)
	assert.False(t, ok)
}

func TestNewBounds(t *testing.T) {
	b := NewBounds(50.0, 6.0, 50.2, 6.2)
	assert.InDelta(t, 50.1, b.Center.Lat, 1e-9)
	assert.InDelta(t, 6.1, b.Center.Lon, 1e-9)
	assert.True(t, b.Contains(NewCoordinate(50.1, 6.1)))
	assert.True(t, b.Contains(NewCoordinate(50.0, 6.2)))
	assert.False(t, b.Contains(NewCoordinate(50.3, 6.1)))
}
