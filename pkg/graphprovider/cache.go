package graphprovider

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	da "github.com/lintang-b-s/routefinder/pkg/datastructure"
	"github.com/lintang-b-s/routefinder/pkg/metrics"
	"github.com/lintang-b-s/routefinder/pkg/osmparser"
	"github.com/lintang-b-s/routefinder/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Invalidator. providers that keep loaded graphs and can drop them
type Invalidator interface {
	Invalidate(area string, networkType osmparser.NetworkType) bool
}

// CachedProvider. keeps the most recently used graphs in memory, keyed by area and network type.
// concurrent loads of the same key share one call to the wrapped provider.
type CachedProvider struct {
	next    Provider
	cache   *lru.Cache[string, *da.Graph]
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewCachedProvider(next Provider, size int, metrics *metrics.Metrics, logger *zap.Logger) (*CachedProvider, error) {
	cache, err := lru.New[string, *da.Graph](size)
	if err != nil {
		return nil, err
	}
	return &CachedProvider{
		next:    next,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}, nil
}

func cacheKey(area string, networkType osmparser.NetworkType) string {
	return util.Slugify(area) + "|" + networkType.String()
}

func (c *CachedProvider) Graph(ctx context.Context, area string, networkType osmparser.NetworkType) (*da.Graph, error) {
	key := cacheKey(area, networkType)
	if graph, ok := c.cache.Get(key); ok {
		c.metrics.GraphLoads.WithLabelValues("cache").Inc()
		return graph, nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		graph, err := c.next.Graph(ctx, area, networkType)
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, graph)
		return graph, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("graph load shared with a concurrent request", zap.String("key", key))
	}
	return v.(*da.Graph), nil
}

func (c *CachedProvider) Invalidate(area string, networkType osmparser.NetworkType) bool {
	key := cacheKey(area, networkType)
	removed := c.cache.Remove(key)
	if removed {
		c.logger.Info("graph cache entry invalidated", zap.String("key", key))
	}
	return removed
}

func (c *CachedProvider) Purge() {
	c.cache.Purge()
}

func (c *CachedProvider) Len() int {
	return c.cache.Len()
}
