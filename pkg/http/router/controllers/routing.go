package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/Windnav/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/Windnav/pkg/http/usecases"
	"go.uber.org/zap"
)

const maxBatchBodyBytes = 1 << 20

type routingAPI struct {
	baseAPI
	routingService RoutingService
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		baseAPI:        newBaseAPI(log),
		routingService: routingService,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/computeRoutes", api.shortestPath)
	group.POST("/computeRoutes/batch", api.batchShortestPath)
	group.GET("/route.geojson", api.routeGeoJSON)
}

func (api *routingAPI) parseShortestPathRequest(r *http.Request) (shortestPathRequest, error) {
	var (
		request shortestPathRequest
		err     error
	)
	query := r.URL.Query()

	if request.OriginLat, err = parseFloatParam(query, "origin_lat"); err != nil {
		return request, err
	}
	if request.OriginLon, err = parseFloatParam(query, "origin_lon"); err != nil {
		return request, err
	}
	if request.DestinationLat, err = parseFloatParam(query, "destination_lat"); err != nil {
		return request, err
	}
	if request.DestinationLon, err = parseFloatParam(query, "destination_lon"); err != nil {
		return request, err
	}
	request.Connectivity = query.Get("connectivity")

	if err := api.validateStruct(request); err != nil {
		return request, err
	}
	return request, nil
}

//	@Summary		wind-aware shortest path between two points
//	@Description	origin and destination snap to the nearest tracked position; route and total_cost are null when no path exists
//	@Tags			routing
//	@Param			origin_lat		query	number	true	"origin latitude"
//	@Param			origin_lon		query	number	true	"origin longitude"
//	@Param			destination_lat	query	number	true	"destination latitude"
//	@Param			destination_lon	query	number	true	"destination longitude"
//	@Param			connectivity	query	string	false	"grid or proximity"
//	@Produce		application/json
//	@Router			/computeRoutes [get]
func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, err := api.parseShortestPathRequest(r)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	answer, err := api.routingService.ShortestPath(request.toQuery())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(answer)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

//	@Summary	up to 100 shortest path queries pinned to one snapshot
//	@Tags		routing
//	@Accept		application/json
//	@Produce	application/json
//	@Router		/computeRoutes/batch [post]
func (api *routingAPI) batchShortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request batchShortestPathRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBatchBodyBytes))
	if err := dec.Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	queries := make([]usecases.RouteQuery, len(request.Queries))
	for i, q := range request.Queries {
		queries[i] = q.toQuery()
	}
	answers := api.routingService.BatchShortestPath(queries)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewBatchResponse(answers)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

//	@Summary	shortest path as a GeoJSON FeatureCollection
//	@Tags		routing
//	@Produce	application/geo+json
//	@Router		/route.geojson [get]
func (api *routingAPI) routeGeoJSON(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, err := api.parseShortestPathRequest(r)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	answer, err := api.routingService.ShortestPath(request.toQuery())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeGeoJSON(w, NewRouteGeoJSON(answer)); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *baseAPI) writeGeoJSON(w http.ResponseWriter, fc json.Marshaler) error {
	js, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(js)
	return err
}
