package usecases

import (
	"github.com/lintang-b-s/Windnav/pkg/concurrent"
	"github.com/lintang-b-s/Windnav/pkg/engine"
	"github.com/lintang-b-s/Windnav/pkg/geo"
	"github.com/lintang-b-s/Windnav/pkg/snapshot"
	"go.uber.org/zap"
)

const MaxBatchQueries = 100

type RouteQuery struct {
	Origin       geo.Coordinate
	Destination  geo.Coordinate
	Connectivity string
}

type RouteAnswer struct {
	engine.RouteResult
	Polyline string
}

type BatchAnswer struct {
	Answer RouteAnswer
	Err    error
}

type RoutingService struct {
	log         *zap.Logger
	engine      RoutingEngine
	batchWorker int
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, batchWorker int) *RoutingService {
	return &RoutingService{
		log:         log,
		engine:      engine,
		batchWorker: batchWorker,
	}
}

func (rs *RoutingService) ShortestPath(q RouteQuery) (RouteAnswer, error) {
	res, err := rs.engine.ShortestPath(q.Origin, q.Destination, q.Connectivity)
	if err != nil {
		return RouteAnswer{}, err
	}
	return rs.answer(res), nil
}

func (rs *RoutingService) answer(res engine.RouteResult) RouteAnswer {
	answer := RouteAnswer{RouteResult: res}
	if res.Route.Found {
		answer.Polyline = geo.PolylineFromCoords(res.Route.Path)
	}
	rs.log.Debug("route computed", zap.Bool("found", res.Route.Found), zap.Int("hops", len(res.Route.Path)),
		zap.Uint64("snapshot_version", res.SnapshotVersion))
	return answer
}

// BatchShortestPath. the snapshot is pinned once, so every query runs concurrently against the
// same immutable pair. Answers keep the query order.
func (rs *RoutingService) BatchShortestPath(queries []RouteQuery) []BatchAnswer {
	pair, err := rs.engine.LatestPair()
	if err != nil {
		answers := make([]BatchAnswer, len(queries))
		for i := range answers {
			answers[i].Err = err
		}
		return answers
	}
	return concurrent.Map(rs.batchWorker, queries, func(q RouteQuery) BatchAnswer {
		return rs.batchAnswer(pair, q)
	})
}

func (rs *RoutingService) batchAnswer(pair *snapshot.Pair, q RouteQuery) BatchAnswer {
	res, err := rs.engine.ShortestPathOn(pair, q.Origin, q.Destination, q.Connectivity)
	if err != nil {
		return BatchAnswer{Err: err}
	}
	return BatchAnswer{Answer: rs.answer(res)}
}
