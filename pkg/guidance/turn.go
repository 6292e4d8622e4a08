package guidance

import (
	"math"

	"github.com/lintang-b-s/routefinder/pkg/geo"
)

/*
deltaBearing. signed change of heading from prevBearing to bearing in degrees, in (-180, 180].
negative is a left turn.

	   \
	    \ bearing (350°)
	    /
	   /  prevBearing (20°)

350° - 20° = 330° is a 30° left turn, not a right turn.
*/
func deltaBearing(prevBearing, bearing float64) float64 {
	delta := bearing - prevBearing
	if delta > 180 {
		delta -= 360
	} else if delta <= -180 {
		delta += 360
	}
	return delta
}

func getTurnDirection(prevBearing, bearing float64) int {
	delta := deltaBearing(prevBearing, bearing)
	absDelta := math.Abs(delta)
	if absDelta < 12 {
		return CONTINUE_ON_STREET
	} else if absDelta < 40 {
		if delta < 0 {
			return TURN_SLIGHT_LEFT
		}
		return TURN_SLIGHT_RIGHT
	} else if absDelta < 105 {
		if delta < 0 {
			return TURN_LEFT
		}
		return TURN_RIGHT
	} else if absDelta > 170 {
		return U_TURN
	} else if delta < 0 {
		return TURN_SHARP_LEFT
	}
	return TURN_SHARP_RIGHT
}

func edgeBearing(from, to geo.Coordinate) float64 {
	return geo.BearingTo(from.Lat, from.Lon, to.Lat, to.Lon)
}
