package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RouteRequests  *prometheus.CounterVec
	GeocodeSeconds *prometheus.HistogramVec
	GeocodeErrors  *prometheus.CounterVec
	SearchSeconds  prometheus.Histogram
	SettledNodes   prometheus.Histogram
	GraphLoads     *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RouteRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "routefinder_route_requests_total",
			Help: "Total number of route requests by outcome.",
		}, []string{"outcome"}),
		GeocodeSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "routefinder_geocode_duration_seconds",
			Help:    "Duration of requests to the geocoding provider.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		GeocodeErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "routefinder_geocode_failures_total",
			Help: "Total number of failed address resolutions by reason.",
		}, []string{"reason"}),
		SearchSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "routefinder_shortest_path_duration_seconds",
			Help:    "Duration of shortest path searches.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
		}),
		SettledNodes: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "routefinder_shortest_path_settled_nodes",
			Help:    "Number of vertices settled per shortest path search.",
			Buckets: prometheus.ExponentialBuckets(16, 4, 8),
		}),
		GraphLoads: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "routefinder_graph_loads_total",
			Help: "Total number of road network graph loads by source.",
		}, []string{"source"}),
	}
}
