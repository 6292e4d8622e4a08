package spatialindex

import (
	"math"

	"github.com/lintang-b-s/routefinder/pkg/datastructure"
	"github.com/lintang-b-s/routefinder/pkg/geo"
)

// LinearScan. O(n) nearest vertex search, same tie rule as Rtree.NearestNode
func LinearScan(graph *datastructure.Graph, qLat, qLon float64) (datastructure.Index, error) {
	if graph.NumberOfVertices() == 0 {
		return datastructure.INVALID_VERTEX_ID, ErrEmptyGraph
	}
	if !geo.NewCoordinate(qLat, qLon).Valid() {
		return datastructure.INVALID_VERTEX_ID, ErrInvalidCoordinate
	}

	best := datastructure.INVALID_VERTEX_ID
	bestDist := math.Inf(1)
	graph.ForVertices(func(v *datastructure.Vertex) {
		d := geo.CalculateHaversineDistance(qLat, qLon, v.GetLat(), v.GetLon())
		if d < bestDist {
			best = v.GetID()
			bestDist = d
		}
	})
	return best, nil
}

// LinearIndex. SpatialIndex backed by LinearScan, for small graphs
type LinearIndex struct {
	graph *datastructure.Graph
}

func NewLinearIndex(graph *datastructure.Graph) *LinearIndex {
	return &LinearIndex{graph: graph}
}

func (li *LinearIndex) NearestNode(qLat, qLon float64) (datastructure.Index, error) {
	return LinearScan(li.graph, qLat, qLon)
}
