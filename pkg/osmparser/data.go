package osmparser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/osm"
)

type NetworkType string

const (
	NetworkDrive        NetworkType = "drive"
	NetworkDriveService NetworkType = "drive_service"
	NetworkAll          NetworkType = "all"
)

var ErrUnknownNetworkType = errors.New("unknown network type")

func ParseNetworkType(s string) (NetworkType, error) {
	switch nt := NetworkType(strings.ToLower(strings.TrimSpace(s))); nt {
	case NetworkDrive, NetworkDriveService, NetworkAll:
		return nt, nil
	case "":
		return NetworkDrive, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownNetworkType, s)
	}
}

func (nt NetworkType) String() string {
	return string(nt)
}

var (
	// https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
	driveHighway = map[string]struct{}{
		"motorway":         {},
		"motorway_link":    {},
		"trunk":            {},
		"trunk_link":       {},
		"primary":          {},
		"primary_link":     {},
		"secondary":        {},
		"secondary_link":   {},
		"tertiary":         {},
		"tertiary_link":    {},
		"residential":      {},
		"residential_link": {},
		"unclassified":     {},
		"living_street":    {},
		"road":             {},
		"motorroad":        {},
	}

	// highway values that never carry traffic of any kind
	skipHighway = map[string]struct{}{
		"abandoned":    {},
		"construction": {},
		"proposed":     {},
		"planned":      {},
		"platform":     {},
		"raceway":      {},
		"bus_stop":     {},
		"elevator":     {},
		"street_lamp":  {},
		"crossing":     {},
		"stop":         {},
		"give_way":     {},
		"milestone":    {},
		"speed_camera": {},
	}

	// service=* values that are dropped from drive_service
	skipService = map[string]struct{}{
		"parking":          {},
		"parking_aisle":    {},
		"driveway":         {},
		"private":          {},
		"emergency_access": {},
	}

	//https://wiki.openstreetmap.org/wiki/Key:barrier
	// a barrier node with access=no splits the street into two disconnected parts
	acceptedBarrierType = map[string]struct{}{
		"bollard":        {},
		"swing_gate":     {},
		"jersey_barrier": {},
		"lift_gate":      {},
		"block":          {},
		"gate":           {},
	}
)

// Accepts. whether a way with these tags belongs to the network
func (nt NetworkType) Accepts(tags osm.Tags) bool {
	highway := tags.Find("highway")
	if highway == "" {
		return false
	}
	if _, skip := skipHighway[highway]; skip {
		return false
	}
	if tags.Find("area") == "yes" {
		return false
	}

	if nt == NetworkAll {
		return true
	}

	if isRestricted(tags.Find("access")) || tags.Find("access") == "private" ||
		isRestricted(tags.Find("motor_vehicle")) || isRestricted(tags.Find("motorcar")) {
		return false
	}

	if _, ok := driveHighway[highway]; ok {
		return true
	}
	if nt == NetworkDriveService && highway == "service" {
		_, skip := skipService[tags.Find("service")]
		return !skip
	}
	return false
}

func isRestricted(value string) bool {
	return value == "no" || value == "restricted"
}

// wayDirection. allowed travel directions along the node order of a way
func wayDirection(tags osm.Tags) (forward, backward bool) {
	oneway := tags.Find("oneway")
	switch oneway {
	case "-1", "reverse":
		return false, true
	case "yes", "true", "1":
		return true, false
	case "no", "false", "0":
		return true, true
	}

	if isRestricted(tags.Find("vehicle:forward")) || isRestricted(tags.Find("motor_vehicle:forward")) {
		return false, true
	}
	if isRestricted(tags.Find("vehicle:backward")) || isRestricted(tags.Find("motor_vehicle:backward")) {
		return true, false
	}

	junction := tags.Find("junction")
	if junction == "roundabout" || junction == "circular" || tags.Find("highway") == "motorway" {
		return true, false
	}
	return true, true
}
