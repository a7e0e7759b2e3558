package routing

import (
	"math"
	"testing"

	"github.com/lintang-b-s/Windnav/pkg/costfunction"
	da "github.com/lintang-b-s/Windnav/pkg/datastructure"
	"github.com/lintang-b-s/Windnav/pkg/graphbuilder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// bellmanFord. single source distances by relaxing every edge |V|-1 times.
func bellmanFord(g *da.Graph, s da.Index) []float64 {
	dist := make([]float64, g.NumberOfVertices())
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[s] = 0
	for i := 1; i < g.NumberOfVertices(); i++ {
		changed := false
		g.ForEdges(func(tail da.Index, e *da.OutEdge) {
			if nd := dist[tail] + e.GetWeight(); nd < dist[e.GetHead()] {
				dist[e.GetHead()] = nd
				changed = true
			}
		})
		if !changed {
			break
		}
	}
	return dist
}

func TestShortestPathMatchesBellmanFord(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))

	for round := 0; round < 5; round++ {
		n := 40 + rng.Intn(40)
		nodes := make([]da.GeoPoint, n)
		winds := make([]da.WindVector, n)
		for i := range nodes {
			nodes[i] = da.NewGeoPoint(rng.Float64()*4-2, rng.Float64()*4-2)
			winds[i] = da.NewWindVector(rng.Float64()*40-20, rng.Float64()*40-20)
		}

		cf, err := costfunction.NewWindCostFunction(0.2)
		require.NoError(t, err)
		conn, err := graphbuilder.NewProximityThreshold(1.0, 0)
		require.NoError(t, err)
		g, err := graphbuilder.NewBuilder(cf, conn, zap.NewNop()).Build(nodes, winds)
		require.NoError(t, err)

		s := da.Index(rng.Intn(g.NumberOfVertices()))
		want := bellmanFord(g, s)
		solver := NewDijkstra(g)
		source := g.GetVertex(s).GetCoordinate()

		for v := 0; v < g.NumberOfVertices(); v++ {
			target := g.GetVertex(da.Index(v)).GetCoordinate()
			route, err := solver.ShortestPath(source, target)
			require.NoError(t, err)

			if math.IsInf(want[v], 1) {
				assert.False(t, route.Found, "round %d target %d", round, v)
				continue
			}
			require.True(t, route.Found, "round %d target %d", round, v)
			assert.InDelta(t, want[v], route.TotalCost, 1e-6*math.Max(1, want[v]))

			// the reported cost is the sum of the edge weights along the path
			sum := 0.0
			for i := 1; i < len(route.Path); i++ {
				tail, _ := g.GetVertexID(route.Path[i-1])
				head, _ := g.GetVertexID(route.Path[i])
				found := false
				g.ForOutEdgesOf(tail, func(e *da.OutEdge) {
					if e.GetHead() == head {
						sum += e.GetWeight()
						found = true
					}
				})
				require.True(t, found)
			}
			assert.InDelta(t, route.TotalCost, sum, 1e-6*math.Max(1, sum))
		}
	}
}
