package engine

import (
	"errors"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/Windnav/pkg/costfunction"
	da "github.com/lintang-b-s/Windnav/pkg/datastructure"
	"github.com/lintang-b-s/Windnav/pkg/engine/routing"
	"github.com/lintang-b-s/Windnav/pkg/geo"
	"github.com/lintang-b-s/Windnav/pkg/graphbuilder"
	"github.com/lintang-b-s/Windnav/pkg/snapshot"
	"github.com/lintang-b-s/Windnav/pkg/spatialindex"
	"github.com/lintang-b-s/Windnav/pkg/util"
	"github.com/lintang-b-s/Windnav/pkg/wind"
	"go.uber.org/zap"
)

type SnapshotStore interface {
	Latest() (*snapshot.Pair, error)
}

// Airspace. an immutable graph built from one snapshot pair with one connectivity policy.
type Airspace struct {
	Pair         *snapshot.Pair
	Winds        []da.WindVector
	Nodes        []geo.Coordinate
	Graph        *da.Graph
	Connectivity string
}

type graphCacheKey struct {
	version      uint64
	connectivity string
}

type Engine struct {
	store               SnapshotStore
	estimator           *wind.Estimator
	costFunction        *costfunction.WindFunction
	cfg                 Config
	defaultConnectivity graphbuilder.Connectivity
	graphCache          *lru.Cache[graphCacheKey, *Airspace]
	buildMu             sync.Mutex
	log                 *zap.Logger
}

func NewEngine(store SnapshotStore, cfg Config, log *zap.Logger) (*Engine, error) {
	estimator, err := wind.NewEstimator(cfg.SamplingInterval)
	if err != nil {
		return nil, err
	}
	costFunction, err := costfunction.NewWindCostFunction(cfg.WindInfluence)
	if err != nil {
		return nil, err
	}
	conn, err := graphbuilder.NewConnectivity(cfg.Connectivity, cfg.GridStep, cfg.ProximityThreshold, cfg.MaxProximityNodes)
	if err != nil {
		return nil, err
	}
	if cfg.GraphCacheSize <= 0 {
		cfg.GraphCacheSize = 1
	}
	graphCache, err := lru.New[graphCacheKey, *Airspace](cfg.GraphCacheSize)
	if err != nil {
		return nil, err
	}

	log.Info("routing engine ready", zap.Float64("sampling_interval_s", cfg.SamplingInterval),
		zap.Float64("wind_influence", cfg.WindInfluence), zap.String("connectivity", conn.String()))
	return &Engine{
		store:               store,
		estimator:           estimator,
		costFunction:        costFunction,
		cfg:                 cfg,
		defaultConnectivity: conn,
		graphCache:          graphCache,
		log:                 log,
	}, nil
}

// ResolveConnectivity. empty name selects the configured policy. Grid step, threshold and node cap
// always come from the engine config.
func (e *Engine) ResolveConnectivity(name string) (graphbuilder.Connectivity, error) {
	if name == "" {
		return e.defaultConnectivity, nil
	}
	conn, err := graphbuilder.NewConnectivity(name, e.cfg.GridStep, e.cfg.ProximityThreshold, e.cfg.MaxProximityNodes)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "invalid connectivity %q", name)
	}
	return conn, nil
}

// LatestPair. the snapshot queries are currently answered against.
func (e *Engine) LatestPair() (*snapshot.Pair, error) {
	pair, err := e.store.Latest()
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrServiceUnavailable, "wind data unavailable")
	}
	return pair, nil
}

// Airspace. returns the graph for the latest snapshot, building it on the first request for a
// (snapshot version, connectivity) pair.
func (e *Engine) Airspace(conn graphbuilder.Connectivity) (*Airspace, error) {
	pair, err := e.LatestPair()
	if err != nil {
		return nil, err
	}
	return e.AirspaceOf(pair, conn)
}

// AirspaceOf. the graph of a given snapshot, pair must come from the engine's store.
func (e *Engine) AirspaceOf(pair *snapshot.Pair, conn graphbuilder.Connectivity) (*Airspace, error) {
	key := graphCacheKey{version: pair.Version, connectivity: conn.String()}
	if as, ok := e.graphCache.Get(key); ok {
		return as, nil
	}

	e.buildMu.Lock()
	defer e.buildMu.Unlock()
	if as, ok := e.graphCache.Get(key); ok {
		return as, nil
	}

	start := time.Now()
	winds, err := e.estimator.Estimate(pair.Previous, pair.Current)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "estimate winds")
	}
	graph, err := graphbuilder.NewBuilder(e.costFunction, conn, e.log).Build(pair.Current, winds)
	if err != nil {
		if errors.Is(err, graphbuilder.ErrPopulationCap) {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "cannot build %s graph over %d points",
				conn.String(), pair.Len())
		}
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "build graph")
	}

	as := &Airspace{
		Pair:         pair,
		Winds:        winds,
		Nodes:        da.Coordinates(pair.Current),
		Graph:        graph,
		Connectivity: conn.String(),
	}
	e.graphCache.Add(key, as)
	e.log.Info("airspace graph built", zap.Uint64("snapshot_version", pair.Version),
		zap.String("connectivity", as.Connectivity), zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()), zap.Duration("took", time.Since(start)))
	return as, nil
}

type RouteResult struct {
	Route           da.Route
	Origin          geo.Coordinate
	Destination     geo.Coordinate
	SnapshotVersion uint64
	Connectivity    string
}

/*
ShortestPath. snaps origin and destination to the nearest tracked position of the current
snapshot and runs Dijkstra over the cached airspace graph. An unreachable destination yields
Route.Found == false with a nil error.
*/
func (e *Engine) ShortestPath(origin, destination geo.Coordinate, connectivity string) (RouteResult, error) {
	pair, err := e.LatestPair()
	if err != nil {
		return RouteResult{}, err
	}
	return e.ShortestPathOn(pair, origin, destination, connectivity)
}

// ShortestPathOn. ShortestPath against a pinned snapshot, so that several queries see the same
// graph even when a newer pair is published in between.
func (e *Engine) ShortestPathOn(pair *snapshot.Pair, origin, destination geo.Coordinate,
	connectivity string) (RouteResult, error) {
	if !util.IsFinite(origin.Lat, origin.Lon, destination.Lat, destination.Lon) {
		return RouteResult{}, util.WrapErrorf(nil, util.ErrBadParamInput, "origin and destination must be finite")
	}
	conn, err := e.ResolveConnectivity(connectivity)
	if err != nil {
		return RouteResult{}, err
	}
	as, err := e.AirspaceOf(pair, conn)
	if err != nil {
		return RouteResult{}, err
	}

	_, start, err := spatialindex.NearestPoint(origin, as.Nodes)
	if err != nil {
		return RouteResult{}, util.WrapErrorf(err, util.ErrServiceUnavailable, "resolve origin")
	}
	_, end, err := spatialindex.NearestPoint(destination, as.Nodes)
	if err != nil {
		return RouteResult{}, util.WrapErrorf(err, util.ErrServiceUnavailable, "resolve destination")
	}

	route, err := routing.NewDijkstra(as.Graph).ShortestPath(start, end)
	if err != nil {
		return RouteResult{}, err
	}
	return RouteResult{
		Route:           route,
		Origin:          start,
		Destination:     end,
		SnapshotVersion: as.Pair.Version,
		Connectivity:    as.Connectivity,
	}, nil
}

type WindSample struct {
	Coordinate geo.Coordinate
	Wind       da.WindVector
	Speed      da.SpeedDirection
}

type WindField struct {
	SnapshotVersion uint64
	FetchedAt       time.Time
	Samples         []WindSample
}

// WindField. per-point wind of the latest snapshot, positioned at the current sample.
func (e *Engine) WindField() (WindField, error) {
	pair, err := e.LatestPair()
	if err != nil {
		return WindField{}, err
	}
	return e.WindFieldOf(pair)
}

func (e *Engine) WindFieldOf(pair *snapshot.Pair) (WindField, error) {
	winds, err := e.estimator.Estimate(pair.Previous, pair.Current)
	if err != nil {
		return WindField{}, util.WrapErrorf(err, util.ErrInternalServerError, "estimate winds")
	}
	speeds := wind.ComputeSpeedDirection(winds)

	samples := make([]WindSample, len(winds))
	for i := range winds {
		samples[i] = WindSample{
			Coordinate: pair.Current[i].Coordinate(),
			Wind:       winds[i],
			Speed:      speeds[i],
		}
	}
	return WindField{SnapshotVersion: pair.Version, FetchedAt: pair.FetchedAt, Samples: samples}, nil
}

type SnapshotInfo struct {
	Version   uint64
	FetchedAt time.Time
	Points    int
}

func (e *Engine) SnapshotInfo() (SnapshotInfo, error) {
	pair, err := e.LatestPair()
	if err != nil {
		return SnapshotInfo{}, err
	}
	return SnapshotInfo{Version: pair.Version, FetchedAt: pair.FetchedAt, Points: pair.Len()}, nil
}
