package spatialindex

import (
	"sort"

	da "github.com/lintang-b-s/Windnav/pkg/datastructure"
	"github.com/lintang-b-s/Windnav/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// boxPadding widens query rectangles so that float rounding of lat±r never excludes a point
// the exact distance filter would accept.
const boxPadding = 1e-9

type Rtree struct {
	tr    *rtree.RTreeG[da.Index]
	graph *da.Graph
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[da.Index]
	return &Rtree{
		tr: &tr,
	}
}

// Build. index every vertex of the graph as a point, keyed [lon, lat].
func (rt *Rtree) Build(graph *da.Graph, log *zap.Logger) {
	log.Debug("Building R-tree spatial index...", zap.Int("vertices", graph.NumberOfVertices()))
	rt.graph = graph
	graph.ForVertices(func(v *da.Vertex) {
		p := [2]float64{v.GetLon(), v.GetLat()}
		rt.tr.Insert(p, p, v.GetID())
	})
	log.Debug("R-tree spatial index built.")
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// SearchWithinL1 returns the ids of all indexed vertices whose summed absolute latitude and
// longitude difference to (qLat, qLon) is at most radius degrees, in ascending id order.
func (rt *Rtree) SearchWithinL1(qLat, qLon, radius float64) []da.Index {
	query := geo.NewCoordinate(qLat, qLon)
	r := radius + boxPadding

	results := make([]da.Index, 0, 16)
	rt.tr.Search([2]float64{qLon - r, qLat - r}, [2]float64{qLon + r, qLat + r},
		func(min, max [2]float64, data da.Index) bool {
			cand := geo.NewCoordinate(min[1], min[0])
			if geo.L1DegreeDistance(query, cand) <= radius {
				results = append(results, data)
			}
			return true
		})

	sort.Slice(results, func(i, j int) bool {
		return results[i] < results[j]
	})
	return results
}
