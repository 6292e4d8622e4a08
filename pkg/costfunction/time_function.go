package costfunction

import (
	"github.com/lintang-b-s/routefinder/pkg"
	da "github.com/lintang-b-s/routefinder/pkg/datastructure"
)

const (
	defaultSpeed = 20.0 // km/h
)

// free flow speed (km/h) per road class, used to estimate travel time of a route found by length.
var highwaySpeed = map[pkg.OsmHighwayType]float64{
	pkg.MOTORWAY:       100,
	pkg.MOTORROAD:      90,
	pkg.TRUNK:          80,
	pkg.PRIMARY:        60,
	pkg.SECONDARY:      50,
	pkg.TERTIARY:       40,
	pkg.UNCLASSIFIED:   30,
	pkg.RESIDENTIAL:    30,
	pkg.MOTORWAY_LINK:  60,
	pkg.TRUNK_LINK:     50,
	pkg.PRIMARY_LINK:   40,
	pkg.SECONDARY_LINK: 35,
	pkg.TERTIARY_LINK:  30,
	pkg.SERVICE:        15,
	pkg.LIVING_STREET:  10,
	pkg.ROAD:           25,
	pkg.TRACK:          10,
}

// TimeFunction. edge weight is the free flow travel time in seconds.
type TimeFunction struct {
	speeds map[pkg.OsmHighwayType]float64
}

func NewTimeCostFunction() *TimeFunction {
	return &TimeFunction{speeds: highwaySpeed}
}

// Speed. km/h assumed on a road of class hwType
func (tf *TimeFunction) Speed(hwType pkg.OsmHighwayType) float64 {
	if speed, ok := tf.speeds[hwType]; ok {
		return speed
	}
	return defaultSpeed
}

func (tf *TimeFunction) GetWeight(e *da.Edge) float64 {
	return e.GetLength() / (tf.Speed(e.GetHighwayType()) * 1000 / 3600)
}
