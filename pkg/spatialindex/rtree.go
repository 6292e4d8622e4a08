package spatialindex

import (
	"errors"
	"math"

	"github.com/lintang-b-s/routefinder/pkg/datastructure"
	"github.com/lintang-b-s/routefinder/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

var (
	ErrEmptyGraph        = errors.New("graph has no vertices")
	ErrInvalidCoordinate = errors.New("query coordinate is out of range")
)

const (
	defaultInitialRadius = 0.05 // km
	maxRadius            = 20000.0
)

// Rtree. r-tree over vertex positions, answers nearest vertex queries
type Rtree struct {
	tr            *rtree.RTreeG[datastructure.Index]
	graph         *datastructure.Graph
	initialRadius float64
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[datastructure.Index]
	return &Rtree{
		tr:            &tr,
		initialRadius: defaultInitialRadius,
	}
}

// Build. insert every vertex of graph as a point. initialRadius (km) is the first search radius of NearestNode.
func (rt *Rtree) Build(graph *datastructure.Graph, initialRadius float64, log *zap.Logger) {
	log.Info("Building R-tree spatial index...", zap.Int("vertices", graph.NumberOfVertices()))
	rt.graph = graph
	if initialRadius > 0 {
		rt.initialRadius = initialRadius
	}

	graph.ForVertices(func(v *datastructure.Vertex) {
		p := [2]float64{v.GetLon(), v.GetLat()}
		rt.tr.Insert(p, p, v.GetID())
	})

	log.Info("R-tree spatial index built.")
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

/*
NearestNode. vertex with the smallest haversine distance to (qLat, qLon), ties go to the lowest vertex index.

search starts with a box around a circle of initialRadius and doubles the radius until a vertex is found
whose distance is within the searched radius. every vertex closer than that radius lies inside the box,
so the best candidate is the true nearest vertex. boxes that touch a pole or cross the antimeridian fall back to a scan.
*/
func (rt *Rtree) NearestNode(qLat, qLon float64) (datastructure.Index, error) {
	if rt.graph == nil || rt.graph.NumberOfVertices() == 0 {
		return datastructure.INVALID_VERTEX_ID, ErrEmptyGraph
	}
	if !geo.NewCoordinate(qLat, qLon).Valid() {
		return datastructure.INVALID_VERTEX_ID, ErrInvalidCoordinate
	}

	for radius := rt.initialRadius; radius < maxRadius; radius *= 2 {
		minLat, minLon, maxLat, maxLon, ok := geo.BoundingBoxAround(qLat, qLon, radius)
		if !ok {
			break
		}

		best := datastructure.INVALID_VERTEX_ID
		bestDist := math.Inf(1)
		rt.tr.Search([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat},
			func(min, max [2]float64, id datastructure.Index) bool {
				d := geo.CalculateHaversineDistance(qLat, qLon, min[1], min[0])
				if d < bestDist || (d == bestDist && id < best) {
					best = id
					bestDist = d
				}
				return true
			})

		if best != datastructure.INVALID_VERTEX_ID && bestDist <= radius {
			return best, nil
		}
	}

	return LinearScan(rt.graph, qLat, qLon)
}

// SearchWithinRadius. all vertices within radius (km) from (qLat, qLon), unordered.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []datastructure.Index {
	results := make([]datastructure.Index, 0, 10)
	minLat, minLon, maxLat, maxLon, ok := geo.BoundingBoxAround(qLat, qLon, radius)
	if !ok {
		rt.graph.ForVertices(func(v *datastructure.Vertex) {
			if geo.CalculateHaversineDistance(qLat, qLon, v.GetLat(), v.GetLon()) <= radius {
				results = append(results, v.GetID())
			}
		})
		return results
	}

	rt.tr.Search([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat},
		func(min, max [2]float64, id datastructure.Index) bool {
			if geo.CalculateHaversineDistance(qLat, qLon, min[1], min[0]) <= radius {
				results = append(results, id)
			}
			return true
		})
	return results
}
