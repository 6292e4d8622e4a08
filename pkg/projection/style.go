package projection

import (
	"encoding/json"
	"strings"
)

type MapStyle uint8

const (
	Default MapStyle = iota
	Satellite
	OpenStreetMap
	Terrain
)

// TileLayer. xyz tile source of a map style
type TileLayer struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

const (
	cartoAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors &copy; <a href="https://carto.com/attributions">CARTO</a>`
	osmAttribution   = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
	stamenAttr       = "Map tiles by Stamen Design, under CC BY 3.0. Data by OpenStreetMap, under ODbL."
)

var tileLayers = map[MapStyle]TileLayer{
	Default: {
		Name:        "cartodb positron",
		URL:         "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png",
		Attribution: cartoAttribution,
	},
	Satellite: {
		Name:        "cartodb positron",
		URL:         "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png",
		Attribution: cartoAttribution,
	},
	OpenStreetMap: {
		Name:        "OpenStreetMap",
		URL:         "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: osmAttribution,
	},
	Terrain: {
		Name:        "Stamen Terrain",
		URL:         "https://tiles.stadiamaps.com/tiles/stamen_terrain/{z}/{x}/{y}{r}.png",
		Attribution: stamenAttr,
	},
}

// ParseMapStyle. case insensitive, unknown or empty names give Default.
func ParseMapStyle(s string) MapStyle {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "satellite":
		return Satellite
	case "openstreetmap", "osm":
		return OpenStreetMap
	case "terrain", "stamen terrain", "stamen-terrain":
		return Terrain
	default:
		return Default
	}
}

func (s MapStyle) String() string {
	switch s {
	case Satellite:
		return "Satellite"
	case OpenStreetMap:
		return "OpenStreetMap"
	case Terrain:
		return "Terrain"
	default:
		return "Default"
	}
}

func (s MapStyle) TileLayer() TileLayer {
	if layer, ok := tileLayers[s]; ok {
		return layer
	}
	return tileLayers[Default]
}

func (s MapStyle) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *MapStyle) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*s = ParseMapStyle(name)
	return nil
}
