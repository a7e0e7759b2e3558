package controllers

import (
	"time"

	"github.com/lintang-b-s/Windnav/pkg/engine"
	"github.com/lintang-b-s/Windnav/pkg/geo"
	"github.com/lintang-b-s/Windnav/pkg/http/usecases"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type shortestPathRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
	Connectivity   string  `json:"connectivity,omitempty" validate:"omitempty,oneof=grid proximity"`
}

func (req shortestPathRequest) toQuery() usecases.RouteQuery {
	return usecases.RouteQuery{
		Origin:       geo.NewCoordinate(req.OriginLat, req.OriginLon),
		Destination:  geo.NewCoordinate(req.DestinationLat, req.DestinationLon),
		Connectivity: req.Connectivity,
	}
}

type batchShortestPathRequest struct {
	Queries []shortestPathRequest `json:"queries" validate:"required,min=1,max=100,dive"`
}

// shortestPathResponse. route, total_cost and polyline are null when no path exists.
type shortestPathResponse struct {
	Route           [][2]float64 `json:"route"`
	TotalCost       *float64     `json:"total_cost"`
	Polyline        *string      `json:"polyline"`
	OriginNode      [2]float64   `json:"origin_node"`
	DestinationNode [2]float64   `json:"destination_node"`
	SnapshotVersion uint64       `json:"snapshot_version"`
	Connectivity    string       `json:"connectivity"`
}

func latLon(c geo.Coordinate) [2]float64 {
	return [2]float64{c.Lat, c.Lon}
}

func NewShortestPathResponse(answer usecases.RouteAnswer) shortestPathResponse {
	resp := shortestPathResponse{
		OriginNode:      latLon(answer.Origin),
		DestinationNode: latLon(answer.Destination),
		SnapshotVersion: answer.SnapshotVersion,
		Connectivity:    answer.Connectivity,
	}
	if !answer.Route.Found {
		return resp
	}

	resp.Route = make([][2]float64, len(answer.Route.Path))
	for i, c := range answer.Route.Path {
		resp.Route[i] = latLon(c)
	}
	cost := answer.Route.TotalCost
	polyline := answer.Polyline
	resp.TotalCost = &cost
	resp.Polyline = &polyline
	return resp
}

type batchItemResponse struct {
	Data  *shortestPathResponse `json:"data,omitempty"`
	Error *errorBody            `json:"error,omitempty"`
}

func NewBatchResponse(answers []usecases.BatchAnswer) []batchItemResponse {
	items := make([]batchItemResponse, len(answers))
	for i, a := range answers {
		if a.Err != nil {
			body := errorBodyOf(a.Err)
			items[i].Error = &body
			continue
		}
		resp := NewShortestPathResponse(a.Answer)
		items[i].Data = &resp
	}
	return items
}

type windSampleResponse struct {
	Lat           float64  `json:"lat"`
	Lon           float64  `json:"lon"`
	U             float64  `json:"u"`
	V             float64  `json:"v"`
	W             *float64 `json:"w"`
	Speed         float64  `json:"speed"`
	Direction     float64  `json:"direction"`
	VerticalSpeed *float64 `json:"vertical_speed"`
}

type windFieldResponse struct {
	SnapshotVersion uint64               `json:"snapshot_version"`
	FetchedAt       time.Time            `json:"fetched_at"`
	Count           int                  `json:"count"`
	Samples         []windSampleResponse `json:"samples"`
}

func NewWindFieldResponse(field engine.WindField) windFieldResponse {
	samples := make([]windSampleResponse, len(field.Samples))
	for i, s := range field.Samples {
		samples[i] = windSampleResponse{
			Lat:       s.Coordinate.Lat,
			Lon:       s.Coordinate.Lon,
			U:         s.Wind.U,
			V:         s.Wind.V,
			Speed:     s.Speed.Speed,
			Direction: s.Speed.Direction,
		}
		if s.Wind.HasW {
			w := s.Wind.W
			samples[i].W = &w
			samples[i].VerticalSpeed = &w
		}
	}
	return windFieldResponse{
		SnapshotVersion: field.SnapshotVersion,
		FetchedAt:       field.FetchedAt,
		Count:           len(samples),
		Samples:         samples,
	}
}

type snapshotResponse struct {
	Version   uint64    `json:"version"`
	FetchedAt time.Time `json:"fetched_at"`
	Points    int       `json:"points"`
}

func NewSnapshotResponse(info engine.SnapshotInfo) snapshotResponse {
	return snapshotResponse{Version: info.Version, FetchedAt: info.FetchedAt, Points: info.Points}
}

// NewWindFieldGeoJSON. one point feature per sample, geometry in [lon, lat] order.
func NewWindFieldGeoJSON(field engine.WindField) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, s := range field.Samples {
		f := geojson.NewFeature(orb.Point{s.Coordinate.Lon, s.Coordinate.Lat})
		f.Properties["u"] = s.Wind.U
		f.Properties["v"] = s.Wind.V
		f.Properties["speed"] = s.Speed.Speed
		f.Properties["direction"] = s.Speed.Direction
		if s.Wind.HasW {
			f.Properties["w"] = s.Wind.W
		}
		fc.Append(f)
	}
	fc.ExtraMembers = geojson.Properties{"snapshot_version": field.SnapshotVersion}
	return fc
}

// NewRouteGeoJSON. the route as a LineString feature (a Point for a single-node route), empty
// collection when no path exists.
func NewRouteGeoJSON(answer usecases.RouteAnswer) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.ExtraMembers = geojson.Properties{"snapshot_version": answer.SnapshotVersion}
	if !answer.Route.Found {
		return fc
	}

	path := answer.Route.Path
	var f *geojson.Feature
	if len(path) == 1 {
		f = geojson.NewFeature(orb.Point{path[0].Lon, path[0].Lat})
	} else {
		ls := make(orb.LineString, len(path))
		for i, c := range path {
			ls[i] = orb.Point{c.Lon, c.Lat}
		}
		f = geojson.NewFeature(ls)
	}
	f.Properties["total_cost"] = answer.Route.TotalCost
	f.Properties["connectivity"] = answer.Connectivity
	fc.Append(f)
	return fc
}
