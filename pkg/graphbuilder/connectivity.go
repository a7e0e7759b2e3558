package graphbuilder

import (
	"errors"
	"fmt"
	"math"

	da "github.com/lintang-b-s/Windnav/pkg/datastructure"
	"github.com/lintang-b-s/Windnav/pkg/spatialindex"
	"github.com/lintang-b-s/Windnav/pkg/util"
	"go.uber.org/zap"
)

const (
	GRID      = "grid"
	PROXIMITY = "proximity"

	// gridResolution. grid lookups compare coordinates rounded to 1e-7 degree (about 1 cm) so that
	// lat+step lands on the stored neighbour despite float rounding.
	gridResolution = 1e7
)

var (
	ErrUnknownConnectivity = errors.New("unknown connectivity policy")
	ErrPopulationCap       = errors.New("too many nodes for the proximity connectivity policy")
	ErrInvalidParameter    = errors.New("connectivity parameter must be positive and finite")
)

// NeighborFunc. candidate neighbours of vertex u, never u itself.
type NeighborFunc func(u da.Index) []da.Index

// Connectivity. decides which vertex pairs get an edge. NeighborGenerator is called once per
// build on a graph whose vertices are final, and must not keep state across builds.
type Connectivity interface {
	NeighborGenerator(graph *da.Graph, log *zap.Logger) (NeighborFunc, error)
	String() string
}

// NewConnectivity. policy by name: "grid" uses gridStep, "proximity" uses threshold and maxNodes
// (maxNodes <= 0 disables the population cap).
func NewConnectivity(name string, gridStep, threshold float64, maxNodes int) (Connectivity, error) {
	switch name {
	case GRID:
		return NewGridAdjacency(gridStep)
	case PROXIMITY:
		return NewProximityThreshold(threshold, maxNodes)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownConnectivity, name)
	}
}

// GridAdjacency. connects a vertex to the vertices exactly one step north, south, east and west
// of it. Offset coordinates that are not vertices are skipped, never synthesised.
type GridAdjacency struct {
	step float64
}

func NewGridAdjacency(step float64) (*GridAdjacency, error) {
	if !util.IsFinite(step) || step <= 0 {
		return nil, fmt.Errorf("%w: grid step %v", ErrInvalidParameter, step)
	}
	return &GridAdjacency{step: step}, nil
}

func (ga *GridAdjacency) String() string {
	return fmt.Sprintf("%s(step=%g)", GRID, ga.step)
}

type gridKey struct {
	lat, lon int64
}

func newGridKey(lat, lon float64) gridKey {
	return gridKey{lat: int64(math.Round(lat * gridResolution)), lon: int64(math.Round(lon * gridResolution))}
}

func (ga *GridAdjacency) NeighborGenerator(graph *da.Graph, log *zap.Logger) (NeighborFunc, error) {
	lookup := make(map[gridKey]da.Index, graph.NumberOfVertices())
	graph.ForVertices(func(v *da.Vertex) {
		key := newGridKey(v.GetLat(), v.GetLon())
		if _, ok := lookup[key]; !ok {
			lookup[key] = v.GetID()
		}
	})

	return func(u da.Index) []da.Index {
		lat, lon := graph.GetVertexCoordinates(u)
		offsets := [4][2]float64{
			{lat + ga.step, lon}, // north
			{lat - ga.step, lon}, // south
			{lat, lon + ga.step}, // east
			{lat, lon - ga.step}, // west
		}

		neighbors := make([]da.Index, 0, 4)
		for _, off := range offsets {
			if v, ok := lookup[newGridKey(off[0], off[1])]; ok && v != u {
				neighbors = append(neighbors, v)
			}
		}
		return neighbors
	}, nil
}

// ProximityThreshold. connects every pair of vertices whose summed absolute latitude and
// longitude difference is within threshold degrees. Candidates come from an r-tree so a build
// does not compare every pair, and maxNodes bounds the worst case.
type ProximityThreshold struct {
	threshold float64
	maxNodes  int
}

func NewProximityThreshold(threshold float64, maxNodes int) (*ProximityThreshold, error) {
	if !util.IsFinite(threshold) || threshold <= 0 {
		return nil, fmt.Errorf("%w: proximity threshold %v", ErrInvalidParameter, threshold)
	}
	return &ProximityThreshold{threshold: threshold, maxNodes: maxNodes}, nil
}

func (pt *ProximityThreshold) String() string {
	return fmt.Sprintf("%s(threshold=%g,max=%d)", PROXIMITY, pt.threshold, pt.maxNodes)
}

func (pt *ProximityThreshold) NeighborGenerator(graph *da.Graph, log *zap.Logger) (NeighborFunc, error) {
	n := graph.NumberOfVertices()
	if pt.maxNodes > 0 && n > pt.maxNodes {
		return nil, fmt.Errorf("%w: %d nodes, cap %d", ErrPopulationCap, n, pt.maxNodes)
	}

	rt := spatialindex.NewRtree()
	rt.Build(graph, log)

	return func(u da.Index) []da.Index {
		lat, lon := graph.GetVertexCoordinates(u)
		found := rt.SearchWithinL1(lat, lon, pt.threshold)
		neighbors := found[:0]
		for _, v := range found {
			if v != u {
				neighbors = append(neighbors, v)
			}
		}
		return neighbors
	}, nil
}
