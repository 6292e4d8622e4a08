package engine

import (
	"context"
	"time"

	"github.com/lintang-b-s/routefinder/pkg/datastructure"
	"github.com/lintang-b-s/routefinder/pkg/engine/routing"
	"github.com/lintang-b-s/routefinder/pkg/metrics"
	"github.com/lintang-b-s/routefinder/pkg/spatialindex"
	"go.uber.org/zap"
)

// Engine. a frozen road network graph with its spatial index and routing engine. an Engine is never mutated,
// a refreshed graph gets a new Engine.
type Engine struct {
	graph         *datastructure.Graph
	spatialIndex  *spatialindex.Rtree
	routingEngine *routing.RoutingEngine
	area          string
	networkType   string
	builtAt       time.Time
}

func NewEngine(graph *datastructure.Graph, area, networkType string, initialRadius float64,
	metrics *metrics.Metrics, logger *zap.Logger) *Engine {
	logger.Info("Starting query engine...", zap.String("area", area), zap.String("network_type", networkType))

	rt := spatialindex.NewRtree()
	rt.Build(graph, initialRadius, logger)

	scc := graph.StronglyConnectedComponents()
	logger.Info("road network loaded", zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()), zap.Int("strongly_connected_components", scc.Count()),
		zap.Int("largest_component", scc.Largest()))

	return &Engine{
		graph:         graph,
		spatialIndex:  rt,
		routingEngine: routing.NewRoutingEngine(graph, metrics, logger),
		area:          area,
		networkType:   networkType,
		builtAt:       time.Now(),
	}
}

func (e *Engine) GetGraph() *datastructure.Graph {
	return e.graph
}

func (e *Engine) GetArea() string {
	return e.area
}

func (e *Engine) GetNetworkType() string {
	return e.networkType
}

func (e *Engine) GetBuiltAt() time.Time {
	return e.builtAt
}

func (e *Engine) NearestNode(lat, lon float64) (datastructure.Index, error) {
	return e.spatialIndex.NearestNode(lat, lon)
}

func (e *Engine) ShortestPath(ctx context.Context, s, t datastructure.Index) (*datastructure.Path, error) {
	return e.routingEngine.ShortestPath(ctx, s, t)
}

func (e *Engine) ShortestPathTree(ctx context.Context, s datastructure.Index) (*routing.ShortestPathTree, error) {
	return e.routingEngine.ShortestPathTree(ctx, s)
}
