package usecases

import (
	"github.com/lintang-b-s/Windnav/pkg/engine"
	"github.com/lintang-b-s/Windnav/pkg/geo"
	"github.com/lintang-b-s/Windnav/pkg/snapshot"
)

type RoutingEngine interface {
	LatestPair() (*snapshot.Pair, error)
	ShortestPath(origin, destination geo.Coordinate, connectivity string) (engine.RouteResult, error)
	ShortestPathOn(pair *snapshot.Pair, origin, destination geo.Coordinate, connectivity string) (engine.RouteResult, error)
}

type WindEngine interface {
	WindField() (engine.WindField, error)
	WindFieldOf(pair *snapshot.Pair) (engine.WindField, error)
	SnapshotInfo() (engine.SnapshotInfo, error)
}
