package costfunction

import (
	da "github.com/lintang-b-s/routefinder/pkg/datastructure"
)

type CostFunction interface {
	GetWeight(e *da.Edge) float64
}

// LengthFunction. edge weight is its length in meter, the metric shortest paths are searched with.
type LengthFunction struct{}

func NewLengthCostFunction() *LengthFunction {
	return &LengthFunction{}
}

func (lf *LengthFunction) GetWeight(e *da.Edge) float64 {
	return e.GetLength()
}

// PathCost. sum of the weights of the path edges
func PathCost(graph *da.Graph, path *da.Path, cf CostFunction) float64 {
	var cost float64
	for _, eId := range path.GetEdges() {
		cost += cf.GetWeight(graph.GetEdge(eId))
	}
	return cost
}
