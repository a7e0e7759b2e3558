package routing

import (
	"errors"
	"math"
)

var INF_WEIGHT = math.Inf(1)

var ErrNodeNotInGraph = errors.New("coordinate is not a vertex of the graph")
