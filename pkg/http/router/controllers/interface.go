package controllers

import (
	"github.com/lintang-b-s/Windnav/pkg/engine"
	"github.com/lintang-b-s/Windnav/pkg/http/usecases"
	"github.com/lintang-b-s/Windnav/pkg/snapshot"
)

type RoutingService interface {
	ShortestPath(q usecases.RouteQuery) (usecases.RouteAnswer, error)
	BatchShortestPath(queries []usecases.RouteQuery) []usecases.BatchAnswer
}

type WindService interface {
	WindField() (engine.WindField, error)
	WindFieldOf(pair *snapshot.Pair) (engine.WindField, error)
	SnapshotInfo() (engine.SnapshotInfo, error)
}
