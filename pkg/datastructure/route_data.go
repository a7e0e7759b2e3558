package datastructure

import (
	"github.com/lintang-b-s/Windnav/pkg/geo"
)

// Route. result of a path query. Found is false when the target is unreachable, in that case
// Path is nil and TotalCost is meaningless.
type Route struct {
	Path      []geo.Coordinate
	TotalCost float64
	Found     bool
}

func NewRoute(path []geo.Coordinate, totalCost float64) Route {
	return Route{Path: path, TotalCost: totalCost, Found: true}
}

func NoRoute() Route {
	return Route{}
}
