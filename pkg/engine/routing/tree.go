package routing

import (
	"github.com/lintang-b-s/routefinder/pkg"
	da "github.com/lintang-b-s/routefinder/pkg/datastructure"
	"github.com/lintang-b-s/routefinder/pkg/util"
)

// ShortestPathTree. result of a one-to-all search. unreachable vertices keep INF_WEIGHT.
type ShortestPathTree struct {
	graph        *da.Graph
	source       da.Index
	dist         []float64
	parentEdge   []da.Index
	numReachable int
}

func (t *ShortestPathTree) Source() da.Index {
	return t.source
}

// Distance. shortest path length from the source to v in meters, false if v is unreachable.
func (t *ShortestPathTree) Distance(v da.Index) (float64, bool) {
	if !t.graph.IsValidVertex(v) || t.dist[v] == pkg.INF_WEIGHT {
		return pkg.INF_WEIGHT, false
	}
	return t.dist[v], true
}

func (t *ShortestPathTree) Reachable(v da.Index) bool {
	_, ok := t.Distance(v)
	return ok
}

// NumReachable. number of reachable vertices, the source included.
func (t *ShortestPathTree) NumReachable() int {
	return t.numReachable
}

func (t *ShortestPathTree) PathTo(v da.Index) (*da.Path, error) {
	if !t.graph.IsValidVertex(v) {
		return nil, ErrInvalidNode
	}
	if !t.Reachable(v) {
		return nil, &NoPathFoundError{Source: t.source, Target: v}
	}

	vertices := []da.Index{v}
	edges := make([]da.Index, 0)
	for cur := v; cur != t.source; {
		e := t.graph.GetEdge(t.parentEdge[cur])
		edges = append(edges, e.GetEdgeId())
		cur = e.GetTail()
		vertices = append(vertices, cur)
	}

	return da.NewPath(util.ReverseG(vertices), util.ReverseG(edges), t.dist[v]), nil
}
