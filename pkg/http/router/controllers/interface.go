package controllers

import (
	"context"

	"github.com/lintang-b-s/routefinder/pkg/http/usecases"
	"github.com/lintang-b-s/routefinder/pkg/projection"
)

type RoutingService interface {
	Route(ctx context.Context, req usecases.RouteRequest) (*usecases.RouteResult, error)
	Network(ctx context.Context) (*projection.NetworkGeometry, error)
	Reachability(ctx context.Context, address string) (*usecases.ReachabilityResult, error)
}
