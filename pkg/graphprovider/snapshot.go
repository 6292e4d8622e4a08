package graphprovider

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lintang-b-s/routefinder/pkg/engine"
	"github.com/lintang-b-s/routefinder/pkg/metrics"
	"github.com/lintang-b-s/routefinder/pkg/osmparser"
	"go.uber.org/zap"
)

/*
Snapshot. the engine currently serving queries.

readers get the whole engine (graph, spatial index and router built from the same graph) with one atomic
load. Refresh builds a new engine and swaps it in, queries running on the old one finish undisturbed.
*/
type Snapshot struct {
	provider      Provider
	area          string
	networkType   osmparser.NetworkType
	initialRadius float64
	metrics       *metrics.Metrics
	logger        *zap.Logger

	current atomic.Pointer[engine.Engine]
	mu      sync.Mutex
}

func NewSnapshot(provider Provider, area string, networkType osmparser.NetworkType, initialRadius float64,
	metrics *metrics.Metrics, logger *zap.Logger) *Snapshot {
	return &Snapshot{
		provider:      provider,
		area:          area,
		networkType:   networkType,
		initialRadius: initialRadius,
		metrics:       metrics,
		logger:        logger,
	}
}

// Load. builds the engine if none is loaded yet.
func (s *Snapshot) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Load() != nil {
		return nil
	}
	return s.rebuild(ctx)
}

// Refresh. drops the cached graph and swaps in a freshly built engine. on failure the old engine stays.
func (s *Snapshot) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if inv, ok := s.provider.(Invalidator); ok {
		inv.Invalidate(s.area, s.networkType)
	}
	return s.rebuild(ctx)
}

func (s *Snapshot) rebuild(ctx context.Context) error {
	graph, err := s.provider.Graph(ctx, s.area, s.networkType)
	if err != nil {
		s.logger.Error("failed to load road network graph", zap.String("area", s.area),
			zap.String("network_type", s.networkType.String()), zap.Error(err))
		return err
	}

	s.current.Store(engine.NewEngine(graph, s.area, s.networkType.String(), s.initialRadius, s.metrics, s.logger))
	return nil
}

// Current. the engine serving queries, ErrGraphUnavailable before the first successful load.
func (s *Snapshot) Current() (*engine.Engine, error) {
	e := s.current.Load()
	if e == nil {
		return nil, ErrGraphUnavailable
	}
	return e, nil
}
