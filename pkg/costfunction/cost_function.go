package costfunction

import (
	da "github.com/lintang-b-s/Windnav/pkg/datastructure"
	"github.com/lintang-b-s/Windnav/pkg/geo"
)

// CostFunction. directed edge cost between two waypoints given the wind observed at the tail.
// Implementations must return a weight >= 0 so that Dijkstra stays valid.
type CostFunction interface {
	GetWeight(tail, head geo.Coordinate, tailWind da.WindVector) (weight float64, dist float64)
}
