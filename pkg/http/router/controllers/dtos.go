package controllers

import (
	"github.com/lintang-b-s/routefinder/pkg/datastructure"
	"github.com/lintang-b-s/routefinder/pkg/geo"
	"github.com/lintang-b-s/routefinder/pkg/guidance"
	"github.com/lintang-b-s/routefinder/pkg/http/usecases"
	"github.com/lintang-b-s/routefinder/pkg/projection"
	geojson "github.com/paulmach/go.geojson"
)

type routeRequest struct {
	StartAddress   string `json:"start_address" validate:"required,max=512"`
	EndAddress     string `json:"end_address" validate:"required,max=512"`
	MapStyle       string `json:"map_style" validate:"max=32"`
	IncludeNetwork bool   `json:"include_network"`
}

type reachabilityRequest struct {
	Address string `json:"address" validate:"required,max=512"`
}

type endpoint struct {
	Address    string              `json:"address"`
	Coordinate geo.Coordinate      `json:"coordinate"`
	Node       datastructure.Index `json:"node"`
}

type routeResponse struct {
	Start    endpoint                   `json:"start"`
	End      endpoint                   `json:"end"`
	Length   float64                    `json:"length"`
	Duration float64                    `json:"travel_time"`
	Center   geo.Coordinate             `json:"center"`
	Bounds   geo.Bounds                 `json:"bbox"`
	Zoom     int                        `json:"zoom"`
	Route    *projection.RouteGeometry  `json:"route"`
	Steps    []guidance.Direction       `json:"directions"`
	Markers  []projection.Marker        `json:"markers"`
	Style    projection.MapStyle        `json:"style"`
	Tiles    projection.TileLayer       `json:"tiles"`
	Network  *geojson.FeatureCollection `json:"network,omitempty"`
	Features *geojson.FeatureCollection `json:"marker_features"`
}

func NewRouteResponse(res *usecases.RouteResult) routeResponse {
	resp := routeResponse{
		Start: endpoint{
			Address:    res.StartAddress,
			Coordinate: res.StartCoordinate,
			Node:       res.StartNode,
		},
		End: endpoint{
			Address:    res.EndAddress,
			Coordinate: res.EndCoordinate,
			Node:       res.EndNode,
		},
		Length:   res.Route.Length,
		Duration: res.TravelTime,
		Center:   res.Route.Center,
		Bounds:   res.Route.Bounds,
		Zoom:     res.Route.Zoom,
		Route:    res.Route,
		Steps:    res.Directions,
		Markers:  res.Markers,
		Style:    res.Style,
		Tiles:    res.Tiles,
		Features: projection.MarkersFeatureCollection(res.Markers),
	}
	if res.Network != nil {
		resp.Network = res.Network.Features
	}
	return resp
}

type reachabilityResponse struct {
	Address           string              `json:"address"`
	Node              datastructure.Index `json:"node"`
	NumVertices       int                 `json:"num_vertices"`
	NumReachable      int                 `json:"num_reachable"`
	MutuallyReachable int                 `json:"mutually_reachable"`
	MaxDistance       float64             `json:"max_distance"`
	MaxDistanceTo     datastructure.Index `json:"max_distance_to"`
}

func NewReachabilityResponse(res *usecases.ReachabilityResult) reachabilityResponse {
	return reachabilityResponse{
		Address:           res.Address,
		Node:              res.Node,
		NumVertices:       res.NumVertices,
		NumReachable:      res.NumReachable,
		MutuallyReachable: res.MutuallyReachable,
		MaxDistance:       res.MaxDistance,
		MaxDistanceTo:     res.MaxDistanceTo,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
