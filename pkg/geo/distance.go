package geo

import (
	"math"

	"github.com/lintang-b-s/routefinder/pkg/util"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

// Valid. lat within [-90, 90], lon within [-180, 180], no NaN.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

const (
	earthRadiusKM = 6371.0
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

// CalculateHaversineDistance. calculate haversine distance in km
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = util.DegreeToRadians(latOne)
	longOne = util.DegreeToRadians(longOne)
	latTwo = util.DegreeToRadians(latTwo)
	longTwo = util.DegreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(math.Min(a, 1.0)))
	return earthRadiusKM * c
}

// HaversineMeters. haversine distance between two coordinates in meters
func HaversineMeters(a, b Coordinate) float64 {
	return CalculateHaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon) * 1000
}

func radToDeg(r float64) float64 {
	return 180.0 * r / math.Pi
}

// GetDestinationPoint returns the destination point given the starting point, bearing and distance
// dist in km
func GetDestinationPoint(lat1, lon1 float64, bearing float64, dist float64) (float64, float64) {

	dr := dist / earthRadiusKM

	bearing = util.DegreeToRadians(bearing)

	lat1 = util.DegreeToRadians(lat1)
	lon1 = util.DegreeToRadians(lon1)

	lat2Part1 := math.Sin(lat1) * math.Cos(dr)
	lat2Part2 := math.Cos(lat1) * math.Sin(dr) * math.Cos(bearing)

	lat2 := math.Asin(lat2Part1 + lat2Part2)

	lon2Part1 := math.Sin(bearing) * math.Sin(dr) * math.Cos(lat1)
	lon2Part2 := math.Cos(dr) - (math.Sin(lat1) * math.Sin(lat2))

	lon2 := lon1 + math.Atan2(lon2Part1, lon2Part2)

	return radToDeg(lat2), normalizeLongitude(radToDeg(lon2))
}

/*
BoundingBoxAround. smallest lat/lon box containing every point within radius (km) of (lat, lon).
http://janmatuschek.de/LatitudeLongitudeBoundingCoordinates

ok is false when the circle touches a pole or crosses the antimeridian, the caller must then fall back to
a search that does not rely on the box.
*/
func BoundingBoxAround(lat, lon, radius float64) (minLat, minLon, maxLat, maxLon float64, ok bool) {
	r := radius / earthRadiusKM
	latR := util.DegreeToRadians(lat)
	lonR := util.DegreeToRadians(lon)

	minLatR := latR - r
	maxLatR := latR + r
	if minLatR <= -math.Pi/2 || maxLatR >= math.Pi/2 {
		return 0, 0, 0, 0, false
	}

	s := math.Sin(r) / math.Cos(latR)
	if s >= 1 {
		return 0, 0, 0, 0, false
	}
	dLon := math.Asin(s)
	minLonR := lonR - dLon
	maxLonR := lonR + dLon
	if minLonR < -math.Pi || maxLonR > math.Pi {
		return 0, 0, 0, 0, false
	}

	return radToDeg(minLatR), radToDeg(minLonR), radToDeg(maxLatR), radToDeg(maxLonR), true
}

// normalizeLongitude. long in degree
func normalizeLongitude(long float64) float64 {
	return math.Mod((long+540), 360) - 180.0
}
