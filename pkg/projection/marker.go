package projection

import (
	"github.com/lintang-b-s/routefinder/pkg/geo"
	geojson "github.com/paulmach/go.geojson"
)

type MarkerKind string

const (
	StartMarker MarkerKind = "start"
	EndMarker   MarkerKind = "end"
)

type Marker struct {
	Kind     MarkerKind     `json:"kind"`
	Location geo.Coordinate `json:"location"`
	Popup    string         `json:"popup"`
	Color    string         `json:"color"`
}

// Markers. start (green) and end (red) markers, popups show the addresses the user typed.
func Markers(start, end geo.Coordinate, startLabel, endLabel string) []Marker {
	return []Marker{
		{Kind: StartMarker, Location: start, Popup: "Start: " + startLabel, Color: "green"},
		{Kind: EndMarker, Location: end, Popup: "End: " + endLabel, Color: "red"},
	}
}

func MarkersFeatureCollection(markers []Marker) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, m := range markers {
		f := geojson.NewPointFeature([]float64{m.Location.Lon, m.Location.Lat})
		f.SetProperty("kind", string(m.Kind))
		f.SetProperty("popup", m.Popup)
		f.SetProperty("color", m.Color)
		fc.AddFeature(f)
	}
	return fc
}
