package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lintang-b-s/routefinder/pkg/geo"
	"github.com/lintang-b-s/routefinder/pkg/geocoding"
	"github.com/lintang-b-s/routefinder/pkg/graphprovider"
	"github.com/lintang-b-s/routefinder/pkg/http/usecases"
	"github.com/lintang-b-s/routefinder/pkg/metrics"
	"github.com/lintang-b-s/routefinder/pkg/osmparser"
	"github.com/lintang-b-s/routefinder/pkg/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	Area               string
	NetworkType        string
	DataDir            string
	GraphCacheSize     int
	SearchTimeout      time.Duration
	InitialRadius      float64
	GeocodingProvider  string
	GeocodingAPIKey    string
	GeocodingRateLimit int
	GeocodingTimeout   time.Duration
	GeocodingUserAgent string
	GeocodingBaseURL   string
	GeocodingCacheDSN  string
	GeocodingCacheTTL  time.Duration
	Gazetteer          map[string]geo.Coordinate
}

// ConfigFromViper. reads Config from the keys set up by util.ReadConfig
func ConfigFromViper() (Config, error) {
	cfg := Config{
		Area:               viper.GetString("AREA"),
		NetworkType:        viper.GetString("NETWORK_TYPE"),
		DataDir:            viper.GetString("DATA_DIR"),
		GraphCacheSize:     viper.GetInt("GRAPH_CACHE_SIZE"),
		SearchTimeout:      viper.GetDuration("SEARCH_TIMEOUT"),
		InitialRadius:      viper.GetFloat64("SPATIAL_INDEX_INITIAL_RADIUS_KM"),
		GeocodingProvider:  viper.GetString("GEOCODING_PROVIDER"),
		GeocodingAPIKey:    viper.GetString("GEOCODING_API_KEY"),
		GeocodingRateLimit: viper.GetInt("GEOCODING_RATE_LIMIT"),
		GeocodingTimeout:   viper.GetDuration("GEOCODING_TIMEOUT"),
		GeocodingUserAgent: viper.GetString("GEOCODING_USER_AGENT"),
		GeocodingBaseURL:   viper.GetString("GEOCODING_BASE_URL"),
		GeocodingCacheDSN:  viper.GetString("GEOCODING_CACHE_DSN"),
		GeocodingCacheTTL:  viper.GetDuration("GEOCODING_CACHE_TTL"),
	}
	if viper.IsSet("GAZETTEER") {
		if err := viper.UnmarshalKey("GAZETTEER", &cfg.Gazetteer); err != nil {
			return Config{}, fmt.Errorf("invalid gazetteer entries: %w", err)
		}
	}
	return cfg, nil
}

/*
App. everything a route query needs: the road network snapshot, the address resolver and the routing service.

Build loads the road network eagerly, so a returned App can answer queries right away.
*/
type App struct {
	Snapshot       *graphprovider.Snapshot
	Graphs         *graphprovider.CachedProvider
	Resolver       *geocoding.Resolver
	RoutingService *usecases.RoutingService
	Metrics        *metrics.Metrics

	pool *pgxpool.Pool
	log  *zap.Logger
}

func Build(ctx context.Context, cfg Config, log *zap.Logger, reg prometheus.Registerer) (*App, error) {
	networkType, err := osmparser.ParseNetworkType(cfg.NetworkType)
	if err != nil {
		return nil, err
	}

	m := metrics.NewMetrics(reg)
	a := &App{Metrics: m, log: log}

	a.Graphs, err = graphprovider.NewCachedProvider(graphprovider.NewOSMProvider(cfg.DataDir, m, log),
		cfg.GraphCacheSize, m, log)
	if err != nil {
		return nil, err
	}
	a.Snapshot = graphprovider.NewSnapshot(a.Graphs, cfg.Area, networkType, cfg.InitialRadius, m, log)
	if err := a.Snapshot.Load(ctx); err != nil {
		return nil, err
	}

	provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.GeocodingProvider),
		APIKey:    cfg.GeocodingAPIKey,
		RateLimit: cfg.GeocodingRateLimit,
		UserAgent: cfg.GeocodingUserAgent,
		BaseURL:   cfg.GeocodingBaseURL,
		Entries:   cfg.Gazetteer,
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}

	opts := []geocoding.ResolverOption{geocoding.WithTimeout(cfg.GeocodingTimeout)}
	if cfg.GeocodingCacheDSN != "" {
		cache, err := a.openGeocodeCache(ctx, cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, geocoding.WithCache(cache))
	}
	a.Resolver = geocoding.NewResolver(provider, cfg.GeocodingProvider, log, m, opts...)

	engines := usecases.EngineSourceFunc(func() (usecases.RoutingEngine, error) {
		eng, err := a.Snapshot.Current()
		if err != nil {
			return nil, err
		}
		return eng, nil
	})
	a.RoutingService = usecases.NewRoutingService(log, m, engines, a.Resolver, cfg.SearchTimeout)

	log.Info("routefinder ready", zap.String("area", cfg.Area), zap.String("network_type", networkType.String()),
		zap.String("geocoding_provider", cfg.GeocodingProvider))
	return a, nil
}

func (a *App) openGeocodeCache(ctx context.Context, cfg Config) (*repository.GeocodeCache, error) {
	pool, err := repository.NewPool(ctx, cfg.GeocodingCacheDSN)
	if err != nil {
		return nil, fmt.Errorf("geocode cache: %w", err)
	}
	cache := repository.NewGeocodeCache(pool, cfg.GeocodingCacheTTL, a.log)
	if err := cache.Migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("geocode cache: %w", err)
	}
	a.pool = pool
	return cache, nil
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
