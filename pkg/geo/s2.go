package geo

import (
	"github.com/golang/geo/s2"
)

type Bounds struct {
	Min    Coordinate `json:"min"`
	Max    Coordinate `json:"max"`
	Center Coordinate `json:"center"`
}

// BoundsOf. smallest lat/lon rectangle containing all coords, plus its center.
// empty input gives the zero Bounds and false.
func BoundsOf(coords []Coordinate) (Bounds, bool) {
	rect := s2.EmptyRect()
	for _, c := range coords {
		rect = rect.AddPoint(s2.LatLngFromDegrees(c.Lat, c.Lon))
	}
	if rect.IsEmpty() {
		return Bounds{}, false
	}

	lo, hi, center := rect.Lo(), rect.Hi(), rect.Center()
	return Bounds{
		Min:    NewCoordinate(lo.Lat.Degrees(), lo.Lng.Degrees()),
		Max:    NewCoordinate(hi.Lat.Degrees(), hi.Lng.Degrees()),
		Center: NewCoordinate(center.Lat.Degrees(), center.Lng.Degrees()),
	}, true
}

// NewBounds. rectangle from its corners, Center is the midpoint of the corners.
func NewBounds(minLat, minLon, maxLat, maxLon float64) Bounds {
	return Bounds{
		Min:    NewCoordinate(minLat, minLon),
		Max:    NewCoordinate(maxLat, maxLon),
		Center: NewCoordinate((minLat+maxLat)/2, (minLon+maxLon)/2),
	}
}

func (b Bounds) Contains(c Coordinate) bool {
	return c.Lat >= b.Min.Lat && c.Lat <= b.Max.Lat && c.Lon >= b.Min.Lon && c.Lon <= b.Max.Lon
}
