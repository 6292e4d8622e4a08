package http

import (
	"context"

	http_router "github.com/lintang-b-s/routefinder/pkg/http/router"
	"github.com/lintang-b-s/routefinder/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/routefinder/pkg/http/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Server struct {
	Log *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use. runs the http api until ctx is canceled or the server fails. rate limiting is enabled by useRateLimit.
func (s *Server) Use(
	ctx context.Context,
	useRateLimit bool,
	routingService controllers.RoutingService,
	gatherer prometheus.Gatherer,
) error {
	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}
	if useRateLimit {
		config.RateLimit = viper.GetFloat64("API_RATE_LIMIT")
		config.RateBurst = viper.GetInt("API_RATE_BURST")
	}

	return http_router.NewAPI(s.Log).Run(ctx, config, routingService, gatherer)
}
