// Package pathfind computes shortest routes over the starlane graph using a
// uniform-cost search. Lane weights are the euclidean distance between the
// connected systems.
package pathfind

import (
	"container/heap"
	"math"

	"stardrift/engine/internal/universe"
)

// LaneOracle restricts the lanes a search may traverse, typically to the
// lanes an empire has explored. A nil oracle allows every lane.
type LaneOracle interface {
	CanTraverse(empireID, fromSystem, toSystem int) bool
}

// Finder runs shortest-path queries against a universe.
type Finder struct {
	Oracle LaneOracle
}

type searchNode struct {
	systemID int
	dist     float64
	index    int
}

type nodeQueue []*searchNode

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool { return q[i].dist < q[j].dist }

func (q nodeQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *nodeQueue) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *nodeQueue) Pop() any {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	return n
}

// ShortestPath returns the system ids from fromSystem to toSystem inclusive,
// the total route length, and whether a route exists. empireID scopes the
// lane oracle; pass universe.InvalidID for an all-seeing query.
func (f *Finder) ShortestPath(from, to, empireID int, u *universe.Universe) ([]int, float64, bool) {
	if universe.GetSystem(u, from) == nil || universe.GetSystem(u, to) == nil {
		return nil, 0, false
	}
	if from == to {
		return []int{from}, 0, true
	}

	dist := map[int]float64{from: 0}
	prev := map[int]int{}
	nodes := map[int]*searchNode{}

	start := &searchNode{systemID: from}
	nodes[from] = start
	queue := nodeQueue{start}
	heap.Init(&queue)

	for queue.Len() > 0 {
		cur := heap.Pop(&queue).(*searchNode)
		if cur.systemID == to {
			break
		}
		if cur.dist > dist[cur.systemID] {
			continue
		}
		sys := universe.GetSystem(u, cur.systemID)
		if sys == nil {
			continue
		}
		for _, next := range sys.StarlaneIDs() {
			if f.Oracle != nil && !f.Oracle.CanTraverse(empireID, cur.systemID, next) {
				continue
			}
			ns := universe.GetSystem(u, next)
			if ns == nil {
				continue
			}
			d := cur.dist + laneLength(sys, ns)
			if best, seen := dist[next]; seen && d >= best {
				continue
			}
			dist[next] = d
			prev[next] = cur.systemID
			n := &searchNode{systemID: next, dist: d}
			nodes[next] = n
			heap.Push(&queue, n)
		}
	}

	total, ok := dist[to]
	if !ok {
		return nil, 0, false
	}
	var path []int
	for at := to; ; {
		path = append([]int{at}, path...)
		if at == from {
			break
		}
		at = prev[at]
	}
	return path, total, true
}

func laneLength(a, b *universe.System) float64 {
	dx := a.X() - b.X()
	dy := a.Y() - b.Y()
	return math.Hypot(dx, dy)
}

// ExploredLanes is a LaneOracle that only allows lanes whose far end the
// empire has explored. Queries with an invalid empire id pass everything.
type ExploredLanes struct {
	Explored func(empireID, systemID int) bool
}

func (o *ExploredLanes) CanTraverse(empireID, fromSystem, toSystem int) bool {
	if empireID == universe.InvalidID || o == nil || o.Explored == nil {
		return true
	}
	return o.Explored(empireID, toSystem)
}
