package geo

import (
	"math"

	"github.com/lintang-b-s/routefinder/pkg/util"
)

// BearingTo. initial bearing from p1 to p2 in degrees, clockwise from north in [0, 360)
func BearingTo(p1Lat, p1Lon, p2Lat, p2Lon float64) float64 {
	dLon := util.DegreeToRadians(p2Lon - p1Lon)

	lat1 := util.DegreeToRadians(p1Lat)
	lat2 := util.DegreeToRadians(p2Lat)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return math.Mod(util.RadiansToDegree(math.Atan2(y, x))+360, 360.0)
}
