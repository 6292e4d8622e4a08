package usecases

import (
	"context"

	"github.com/lintang-b-s/routefinder/pkg/datastructure"
	"github.com/lintang-b-s/routefinder/pkg/engine/routing"
	"github.com/lintang-b-s/routefinder/pkg/geo"
)

type RoutingEngine interface {
	GetGraph() *datastructure.Graph
	NearestNode(lat, lon float64) (datastructure.Index, error)
	ShortestPath(ctx context.Context, s, t datastructure.Index) (*datastructure.Path, error)
	ShortestPathTree(ctx context.Context, s datastructure.Index) (*routing.ShortestPathTree, error)
}

// EngineSource. the routing engine of the currently loaded road network
type EngineSource interface {
	Current() (RoutingEngine, error)
}

type EngineSourceFunc func() (RoutingEngine, error)

func (f EngineSourceFunc) Current() (RoutingEngine, error) {
	return f()
}

type AddressResolver interface {
	Resolve(ctx context.Context, address string) (*geo.Coordinate, error)
}
