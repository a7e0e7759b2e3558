package routing

import (
	da "github.com/lintang-b-s/Windnav/pkg/datastructure"
	"github.com/lintang-b-s/Windnav/pkg/geo"
	"github.com/lintang-b-s/Windnav/pkg/util"
)

/*
Dijkstra. single-source single-target shortest path over a built wind graph. Edge weights are
strictly positive by construction of the cost function, so the first time the target is
extracted from the queue its distance is final.

Ties are pinned to coordinates: vertices of equal distance leave the queue in lexicographic
(lat, lon) order, and between two equally short ways into a vertex the one whose predecessor has
the smaller coordinate is kept. The graph is only read, so one Dijkstra can serve concurrent queries.
*/
type Dijkstra struct {
	graph *da.Graph
}

func NewDijkstra(graph *da.Graph) *Dijkstra {
	return &Dijkstra{graph: graph}
}

type dijkstraQuery struct {
	graph *da.Graph
	info  []*VertexInfo[da.Index]
	pq    *da.MinHeap[da.Index]
}

// ShortestPath. source and target must be exact vertex coordinates, otherwise the error wraps
// ErrNodeNotInGraph. An unreachable target is not an error: the route has Found == false.
func (d *Dijkstra) ShortestPath(source, target geo.Coordinate) (da.Route, error) {
	s, ok := d.graph.GetVertexID(source)
	if !ok {
		return da.NoRoute(), util.WrapErrorf(ErrNodeNotInGraph, util.ErrInternalServerError,
			"source %f,%f is not a graph vertex", source.Lat, source.Lon)
	}
	t, ok := d.graph.GetVertexID(target)
	if !ok {
		return da.NoRoute(), util.WrapErrorf(ErrNodeNotInGraph, util.ErrInternalServerError,
			"target %f,%f is not a graph vertex", target.Lat, target.Lon)
	}

	if s == t {
		return da.NewRoute([]geo.Coordinate{source}, 0), nil
	}

	q := d.newQuery()
	return q.search(s, t), nil
}

func (d *Dijkstra) newQuery() *dijkstraQuery {
	n := d.graph.NumberOfVertices()
	info := make([]*VertexInfo[da.Index], n)
	initInfWeightVertexInfo(info)

	graph := d.graph
	pq := da.NewFourAryHeap[da.Index](func(a, b da.Index) bool {
		return graph.GetVertex(a).GetCoordinate().Less(graph.GetVertex(b).GetCoordinate())
	})
	pq.Preallocate(n)

	return &dijkstraQuery{
		graph: graph,
		info:  info,
		pq:    pq,
	}
}

func (q *dijkstraQuery) search(s, t da.Index) da.Route {
	sNode := da.NewPriorityQueueNode(0, s)
	q.info[s].UpdateDist(0)
	q.info[s].SetHeapNode(sNode)
	q.pq.Insert(sNode)

	for !q.pq.IsEmpty() {
		item, _ := q.pq.ExtractMin()
		u := item.GetItem()
		q.info[u].Scan()

		if u == t {
			return q.buildRoute(s, t)
		}

		q.relaxOutEdges(u)
	}

	return da.NoRoute()
}

func (q *dijkstraQuery) relaxOutEdges(u da.Index) {
	uDist := q.info[u].GetDist()
	uCoord := q.graph.GetVertex(u).GetCoordinate()

	q.graph.ForOutEdgesOf(u, func(e *da.OutEdge) {
		v := e.GetHead()
		vInfo := q.info[v]
		if vInfo.IsScanned() {
			return
		}

		newDist := uDist + e.GetWeight()
		oldDist := vInfo.GetDist()

		switch {
		case newDist < oldDist:
			vInfo.UpdateDist(newDist)
			vInfo.UpdateParent(u)
			if hNode := vInfo.GetHeapNode(); hNode != nil {
				// v is already in the priority queue, decrease its key
				_ = q.pq.DecreaseKey(hNode, newDist)
				return
			}
			hNode := da.NewPriorityQueueNode(newDist, v)
			vInfo.SetHeapNode(hNode)
			q.pq.Insert(hNode)

		case newDist == oldDist:
			// equal cost: keep the predecessor with the smaller coordinate
			parentCoord := q.graph.GetVertex(vInfo.GetParent()).GetCoordinate()
			if uCoord.Less(parentCoord) {
				vInfo.UpdateParent(u)
			}
		}
	})
}

func (q *dijkstraQuery) buildRoute(s, t da.Index) da.Route {
	path := make([]geo.Coordinate, 0)
	for cur := t; ; cur = q.info[cur].GetParent() {
		path = append(path, q.graph.GetVertex(cur).GetCoordinate())
		if cur == s {
			break
		}
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return da.NewRoute(path, q.info[t].GetDist())
}
