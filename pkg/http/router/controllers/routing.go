package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/routefinder/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/routefinder/pkg/http/usecases"
	"github.com/lintang-b-s/routefinder/pkg/projection"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
	validate       *validator.Validate
	trans          ut.Translator
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &routingAPI{
		routingService: routingService,
		log:            log,
		validate:       validate,
		trans:          trans,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/route", api.route)
	group.GET("/network", api.network)
	group.GET("/reachability", api.reachability)
}

func (api *routingAPI) validateRequest(request any) error {
	if err := api.validate.Struct(request); err != nil {
		vv := translateError(err, api.trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		return fmt.Errorf("validation error: %v", vvString)
	}
	return nil
}

// route
//
//	@Summary		shortest route by length between two addresses
//	@Description	geocodes both addresses, snaps them to the nearest road network vertices and returns the shortest path by length.
//	@Tags			routing
//	@Param			start_address	query	string	true	"start address"
//	@Param			end_address		query	string	true	"end address"
//	@Param			map_style		query	string	false	"Satellite, OpenStreetMap, Terrain or Default"
//	@Param			include_network	query	bool	false	"include the whole road network"
//	@Produce		application/json
//	@Router			/route [get]
//	@Success		200	{object}	routeResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		500	{object}	errorResponse
//	@Failure		504	{object}	errorResponse
func (api *routingAPI) route(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request routeRequest
		err     error
	)

	query := r.URL.Query()
	request.StartAddress = query.Get("start_address")
	request.EndAddress = query.Get("end_address")
	request.MapStyle = query.Get("map_style")
	if raw := query.Get("include_network"); raw != "" {
		request.IncludeNetwork, err = strconv.ParseBool(raw)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("include_network must be a boolean"))
			return
		}
	}

	if err := api.validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.routingService.Route(r.Context(), usecases.RouteRequest{
		StartAddress:   request.StartAddress,
		EndAddress:     request.EndAddress,
		MapStyle:       projection.ParseMapStyle(request.MapStyle),
		IncludeNetwork: request.IncludeNetwork,
	})
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRouteResponse(res)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// network
//
//	@Summary		loaded road network
//	@Description	every edge of the loaded road network as a geojson feature collection.
//	@Tags			routing
//	@Produce		application/json
//	@Router			/network [get]
//	@Success		200	{object}	projection.NetworkGeometry
//	@Failure		500	{object}	errorResponse
func (api *routingAPI) network(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	network, err := api.routingService.Network(r.Context())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": network}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// reachability
//
//	@Summary		vertices reachable from an address
//	@Tags			routing
//	@Param			address	query	string	true	"address"
//	@Produce		application/json
//	@Router			/reachability [get]
//	@Success		200	{object}	reachabilityResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
func (api *routingAPI) reachability(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request := reachabilityRequest{Address: r.URL.Query().Get("address")}
	if err := api.validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.routingService.Reachability(r.Context(), request.Address)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewReachabilityResponse(res)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
