package graphbuilder

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/Windnav/pkg/costfunction"
	da "github.com/lintang-b-s/Windnav/pkg/datastructure"
	"go.uber.org/zap"
)

var ErrWindLengthMismatch = errors.New("nodes and wind vectors differ in length")

type Builder struct {
	costFunction costfunction.CostFunction
	connectivity Connectivity
	log          *zap.Logger
}

func NewBuilder(costFunction costfunction.CostFunction, connectivity Connectivity, log *zap.Logger) *Builder {
	return &Builder{
		costFunction: costFunction,
		connectivity: connectivity,
		log:          log,
	}
}

func (b *Builder) Connectivity() Connectivity {
	return b.connectivity
}

/*
Build. builds a fresh graph: node i is tagged with winds[i], then every candidate pair (u, v)
produced by the connectivity policy gets both u->v and v->u, each weighted with the wind at its
own tail. Points that coincide exactly share one vertex; the later point's wind wins.
*/
func (b *Builder) Build(nodes []da.GeoPoint, winds []da.WindVector) (*da.Graph, error) {
	if len(nodes) != len(winds) {
		return nil, fmt.Errorf("%w: nodes=%d winds=%d", ErrWindLengthMismatch, len(nodes), len(winds))
	}

	graph := da.NewGraph(len(nodes))
	for i, p := range nodes {
		if !p.IsValid() {
			b.log.Warn("skipping invalid node", zap.Int("index", i),
				zap.Float64("lat", p.Lat), zap.Float64("lon", p.Lon))
			continue
		}
		graph.AddVertex(p.Coordinate(), winds[i])
	}

	neighborsOf, err := b.connectivity.NeighborGenerator(graph, b.log)
	if err != nil {
		return nil, err
	}

	for u := da.Index(0); u < da.Index(graph.NumberOfVertices()); u++ {
		for _, v := range neighborsOf(u) {
			b.addEdge(graph, u, v)
			b.addEdge(graph, v, u)
		}
	}

	b.log.Debug("graph built", zap.String("connectivity", b.connectivity.String()),
		zap.Int("vertices", graph.NumberOfVertices()), zap.Int("edges", graph.NumberOfEdges()))
	return graph, nil
}

func (b *Builder) addEdge(graph *da.Graph, tail, head da.Index) {
	if graph.HasEdge(tail, head) {
		return
	}
	t := graph.GetVertex(tail)
	weight, dist := b.costFunction.GetWeight(t.GetCoordinate(), graph.GetVertex(head).GetCoordinate(), t.GetWind())
	graph.AddEdge(tail, head, weight, dist)
}
