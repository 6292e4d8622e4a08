package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	_ "github.com/lintang-b-s/routefinder/docs"
	"github.com/lintang-b-s/routefinder/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/routefinder/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/routefinder/pkg/http/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type API struct {
	log *zap.Logger
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

// Handler. router with the full middleware chain, rate limiting is applied when config.RateLimit > 0
func (api *API) Handler(config http_server.Config, routingService controllers.RoutingService,
	gatherer prometheus.Gatherer) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.GET("/doc/*any", swaggerHandler)
	router.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)
	router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	group := router_helper.NewRouteGroup(router, "/api")
	controllers.New(routingService, api.log).Routes(group)

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log), Labels}
	if config.RateLimit > 0 {
		mwChain = append(mwChain, Limit(config.RateLimit, config.RateBurst))
	}
	return alice.New(mwChain...).Then(router)
}

//	@title			routefinder API
//	@version		1.0
//	@description	shortest route by length between two addresses on an openstreetmap road network.

//	@license.name	BSD License
//	@license.url	https://opensource.org/license/bsd-2-clause

// @host		localhost:6060
// @BasePath	/api
//
// the docs package is generated with: swag init -g pkg/http/router/router.go -o docs
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	routingService controllers.RoutingService,
	gatherer prometheus.Gatherer,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(config, routingService, gatherer), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		api.log.Error("HTTP server stopped", zap.Error(err))
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
