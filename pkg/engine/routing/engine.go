package routing

import (
	"context"
	"sync"
	"time"

	da "github.com/lintang-b-s/routefinder/pkg/datastructure"
	met "github.com/lintang-b-s/routefinder/pkg/metrics"
	"go.uber.org/zap"
)

// RoutingEngine. answers shortest path queries on one frozen graph from many goroutines.
type RoutingEngine struct {
	graph      *da.Graph
	metrics    *met.Metrics
	logger     *zap.Logger
	searchPool sync.Pool
}

func NewRoutingEngine(graph *da.Graph, metrics *met.Metrics, logger *zap.Logger) *RoutingEngine {
	e := &RoutingEngine{
		graph:   graph,
		metrics: metrics,
		logger:  logger,
	}
	e.BuildSearchPool()
	return e
}

func (re *RoutingEngine) GetGraph() *da.Graph {
	return re.graph
}

// BuildSearchPool. searches allocate per-vertex labels once and are reused across queries.
func (re *RoutingEngine) BuildSearchPool() {
	re.searchPool = sync.Pool{
		New: func() any {
			return NewDijkstra(re.graph)
		},
	}
}

func (re *RoutingEngine) ShortestPath(ctx context.Context, s, t da.Index) (*da.Path, error) {
	search := re.searchPool.Get().(*Dijkstra)
	defer re.searchPool.Put(search)

	start := time.Now()
	path, err := search.ShortestPath(ctx, s, t)
	elapsed := time.Since(start)

	re.metrics.SearchSeconds.Observe(elapsed.Seconds())
	re.metrics.SettledNodes.Observe(float64(search.GetNumSettledNodes()))

	if err != nil {
		re.logger.Debug("shortest path search failed", zap.Uint32("source", uint32(s)),
			zap.Uint32("target", uint32(t)), zap.Error(err))
		return nil, err
	}

	re.logger.Debug("shortest path found", zap.Uint32("source", uint32(s)), zap.Uint32("target", uint32(t)),
		zap.Float64("length", path.GetTotalLength()), zap.Int("settled", search.GetNumSettledNodes()),
		zap.Duration("elapsed", elapsed))
	return path, nil
}

func (re *RoutingEngine) ShortestPathTree(ctx context.Context, s da.Index) (*ShortestPathTree, error) {
	search := re.searchPool.Get().(*Dijkstra)
	defer re.searchPool.Put(search)

	return search.ShortestPathTree(ctx, s)
}
