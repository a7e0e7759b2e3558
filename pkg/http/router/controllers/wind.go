package controllers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/Windnav/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type windAPI struct {
	baseAPI
	windService WindService
}

func NewWindAPI(windService WindService, log *zap.Logger) *windAPI {
	return &windAPI{
		baseAPI:     newBaseAPI(log),
		windService: windService,
	}
}

func (api *windAPI) Routes(group *helper.RouteGroup) {
	group.GET("/wind", api.windField)
	group.GET("/wind.geojson", api.windFieldGeoJSON)
	group.GET("/snapshot", api.snapshot)
}

//	@Summary	wind vector, speed and direction at every tracked position of the latest snapshot
//	@Tags		wind
//	@Produce	application/json
//	@Router		/wind [get]
func (api *windAPI) windField(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	field, err := api.windService.WindField()
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewWindFieldResponse(field)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

//	@Summary	wind field as GeoJSON points
//	@Tags		wind
//	@Produce	application/geo+json
//	@Router		/wind.geojson [get]
func (api *windAPI) windFieldGeoJSON(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	field, err := api.windService.WindField()
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	if err := api.writeGeoJSON(w, NewWindFieldGeoJSON(field)); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

//	@Summary	version, fetch time and size of the published snapshot pair
//	@Tags		wind
//	@Produce	application/json
//	@Router		/snapshot [get]
func (api *windAPI) snapshot(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	info, err := api.windService.SnapshotInfo()
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewSnapshotResponse(info)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
