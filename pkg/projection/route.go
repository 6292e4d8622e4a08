package projection

import (
	"errors"
	"fmt"
	"math"

	da "github.com/lintang-b-s/routefinder/pkg/datastructure"
	"github.com/lintang-b-s/routefinder/pkg/geo"
	"github.com/lintang-b-s/routefinder/pkg/util"
	geojson "github.com/paulmach/go.geojson"
)

const (
	DefaultZoom = 14
	minZoom     = 3
)

var (
	ErrEmptyPath     = errors.New("path has no vertices")
	ErrUnknownVertex = errors.New("path vertex is not in the graph")
	ErrMalformedPath = errors.New("path edges do not connect its vertices")
)

// LineStyle. how a renderer should draw the route line
type LineStyle struct {
	Color   string  `json:"color"`
	Weight  int     `json:"weight"`
	Opacity float64 `json:"opacity"`
}

var DefaultRouteStyle = LineStyle{Color: "red", Weight: 5, Opacity: 0.7}

type RouteEdge struct {
	EdgeID da.Index       `json:"edge_id"`
	From   geo.Coordinate `json:"from"`
	To     geo.Coordinate `json:"to"`
	Length float64        `json:"length"`
	Name   string         `json:"name,omitempty"`
}

// RouteGeometry. renderable form of a path. Center is the midpoint between the first and last coordinate.
type RouteGeometry struct {
	Coordinates []geo.Coordinate `json:"coordinates"`
	Polyline    string           `json:"polyline"`
	Bounds      geo.Bounds       `json:"bounds"`
	Center      geo.Coordinate   `json:"center"`
	Zoom        int              `json:"zoom"`
	Length      float64          `json:"length"`
	Edges       []RouteEdge      `json:"edges"`
	Style       LineStyle        `json:"style"`
	Feature     *geojson.Feature `json:"geojson"`
}

// Project. coordinates of the path vertices in travel order, plus the derived geometry.
func Project(graph *da.Graph, path *da.Path) (*RouteGeometry, error) {
	if path == nil || path.Len() == 0 {
		return nil, ErrEmptyPath
	}

	vertices := path.GetVertices()
	coords := make([]geo.Coordinate, len(vertices))
	lineString := make([][]float64, len(vertices))
	for i, v := range vertices {
		if !graph.IsValidVertex(v) {
			return nil, fmt.Errorf("vertex %d: %w", v, ErrUnknownVertex)
		}
		lat, lon := graph.GetVertexCoordinates(v)
		coords[i] = geo.NewCoordinate(lat, lon)
		lineString[i] = []float64{lon, lat}
	}

	pathEdges := path.GetEdges()
	if len(pathEdges) != len(vertices)-1 {
		return nil, fmt.Errorf("%d edges for %d vertices: %w", len(pathEdges), len(vertices), ErrMalformedPath)
	}
	edges := make([]RouteEdge, 0, len(pathEdges))
	for i, eId := range pathEdges {
		if int(eId) >= graph.NumberOfEdges() {
			return nil, fmt.Errorf("edge %d is not in the graph: %w", eId, ErrMalformedPath)
		}
		e := graph.GetEdge(eId)
		if e.GetTail() != vertices[i] || e.GetHead() != vertices[i+1] {
			return nil, fmt.Errorf("edge %d runs %d->%d, not %d->%d: %w", eId, e.GetTail(), e.GetHead(),
				vertices[i], vertices[i+1], ErrMalformedPath)
		}
		edges = append(edges, RouteEdge{
			EdgeID: eId,
			From:   coords[i],
			To:     coords[i+1],
			Length: e.GetLength(),
			Name:   e.GetName(),
		})
	}

	bounds, _ := geo.BoundsOf(coords)
	first, last := coords[0], coords[len(coords)-1]
	center := geo.NewCoordinate((first.Lat+last.Lat)/2, (first.Lon+last.Lon)/2)

	feature := geojson.NewLineStringFeature(lineString)
	if len(lineString) == 1 {
		feature = geojson.NewPointFeature(lineString[0])
	}
	feature.BoundingBox = []float64{bounds.Min.Lon, bounds.Min.Lat, bounds.Max.Lon, bounds.Max.Lat}
	feature.SetProperty("length", path.GetTotalLength())
	feature.SetProperty("name", "Route")

	return &RouteGeometry{
		Coordinates: coords,
		Polyline:    geo.PolylineFromCoords(coords),
		Bounds:      bounds,
		Center:      center,
		Zoom:        FitZoom(bounds),
		Length:      path.GetTotalLength(),
		Edges:       edges,
		Style:       DefaultRouteStyle,
		Feature:     feature,
	}, nil
}

// FitZoom. web mercator zoom level at which bounds fits a 256px tile, at most DefaultZoom.
func FitZoom(bounds geo.Bounds) int {
	span := math.Max(bounds.Max.Lat-bounds.Min.Lat, bounds.Max.Lon-bounds.Min.Lon)
	if span <= 0 {
		return DefaultZoom
	}
	return util.Clamp(int(math.Floor(math.Log2(360/span))), minZoom, DefaultZoom)
}
