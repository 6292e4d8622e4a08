package guidance

import (
	"fmt"
	"strings"

	da "github.com/lintang-b-s/routefinder/pkg/datastructure"
	"github.com/lintang-b-s/routefinder/pkg/geo"
)

const (
	U_TURN             = -98
	TURN_SHARP_LEFT    = -3
	TURN_LEFT          = -2
	TURN_SLIGHT_LEFT   = -1
	CONTINUE_ON_STREET = 0
	TURN_SLIGHT_RIGHT  = 1
	TURN_RIGHT         = 2
	TURN_SHARP_RIGHT   = 3
	FINISH             = 4
	START              = 101
)

// Direction. one step of the turn by turn directions. Distance (meter) and TravelTime (seconds) cover the road
// driven after the maneuver.
type Direction struct {
	Instruction string         `json:"instruction"`
	TurnType    string         `json:"turn_type"`
	StreetName  string         `json:"street_name"`
	Point       geo.Coordinate `json:"point"`
	Distance    float64        `json:"distance"`
	TravelTime  float64        `json:"travel_time"`
	Bearing     float64        `json:"bearing"`
	EdgeIDs     []da.Index     `json:"edge_ids"`
	Polyline    string         `json:"polyline"`

	sign   int
	points []geo.Coordinate
}

func (d *Direction) GetTurnSign() int {
	return d.sign
}

func bearingToCompass(bearing float64) string {
	if bearing < 22.5 {
		return "North"
	} else if bearing < 67.5 {
		return "North East"
	} else if bearing < 112.5 {
		return "East"
	} else if bearing < 157.5 {
		return "South East"
	} else if bearing < 202.5 {
		return "South"
	} else if bearing < 247.5 {
		return "South West"
	} else if bearing < 292.5 {
		return "West"
	} else if bearing < 337.5 {
		return "North West"
	} else {
		return "North"
	}
}

func isEmpty(str string) bool {
	return strings.TrimSpace(str) == ""
}

func turnType(sign int) (string, string) {
	switch sign {
	case U_TURN:
		return "Make a U-turn", "U_TURN"
	case TURN_SHARP_LEFT:
		return "Turn sharp left", "TURN_SHARP_LEFT"
	case TURN_LEFT:
		return "Turn left", "TURN_LEFT"
	case TURN_SLIGHT_LEFT:
		return "Turn slight left", "TURN_SLIGHT_LEFT"
	case CONTINUE_ON_STREET:
		return "Continue", "CONTINUE_ON_STREET"
	case TURN_SLIGHT_RIGHT:
		return "Turn slight right", "TURN_SLIGHT_RIGHT"
	case TURN_RIGHT:
		return "Turn right", "TURN_RIGHT"
	case TURN_SHARP_RIGHT:
		return "Turn sharp right", "TURN_SHARP_RIGHT"
	case FINISH:
		return "You have arrived at your destination", "FINISH"
	case START:
		return "Head", "START"
	default:
		return "", ""
	}
}

func describe(d *Direction) string {
	dir, _ := turnType(d.sign)
	switch d.sign {
	case START:
		if isEmpty(d.StreetName) {
			return fmt.Sprintf("Head %s", bearingToCompass(d.Bearing))
		}
		return fmt.Sprintf("Head %s on %s", bearingToCompass(d.Bearing), d.StreetName)
	case FINISH:
		return dir
	default:
		if isEmpty(d.StreetName) {
			return dir
		}
		return fmt.Sprintf("%s onto %s", dir, d.StreetName)
	}
}
