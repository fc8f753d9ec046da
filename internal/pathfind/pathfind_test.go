package pathfind

import (
	"testing"

	"stardrift/engine/internal/universe"
)

// buildChain lays out systems on a line and connects them per the lane list.
func buildChain(t *testing.T, coords [][2]float64, lanes [][2]int) (*universe.Universe, []*universe.System) {
	t.Helper()
	u := universe.New()
	var systems []*universe.System
	for _, c := range coords {
		s := universe.NewSystem("S", universe.StarTypeYellow)
		u.Insert(s)
		s.MoveTo(c[0], c[1])
		systems = append(systems, s)
	}
	for _, l := range lanes {
		u.AddStarlane(systems[l[0]].ID(), systems[l[1]].ID())
	}
	return u, systems
}

func TestShortestPathPrefersShorterTotal(t *testing.T) {
	// A square: 0 -> 3 directly is longer than the two-hop path over 1.
	u, systems := buildChain(t,
		[][2]float64{{0, 0}, {10, 0}, {0, 100}, {20, 0}},
		[][2]int{{0, 1}, {1, 3}, {0, 2}, {2, 3}},
	)
	f := &Finder{}

	path, length, ok := f.ShortestPath(systems[0].ID(), systems[3].ID(), universe.InvalidID, u)
	if !ok {
		t.Fatalf("no path found")
	}
	want := []int{systems[0].ID(), systems[1].ID(), systems[3].ID()}
	if len(path) != 3 || path[0] != want[0] || path[1] != want[1] || path[2] != want[2] {
		t.Fatalf("path = %v, want %v", path, want)
	}
	if length != 20 {
		t.Fatalf("length = %v, want 20", length)
	}
}

func TestShortestPathSameSystem(t *testing.T) {
	u, systems := buildChain(t, [][2]float64{{0, 0}}, nil)
	f := &Finder{}
	path, length, ok := f.ShortestPath(systems[0].ID(), systems[0].ID(), universe.InvalidID, u)
	if !ok || length != 0 || len(path) != 1 {
		t.Fatalf("path = %v length %v ok %v", path, length, ok)
	}
}

func TestShortestPathDisconnected(t *testing.T) {
	u, systems := buildChain(t, [][2]float64{{0, 0}, {10, 0}}, nil)
	f := &Finder{}
	if _, _, ok := f.ShortestPath(systems[0].ID(), systems[1].ID(), universe.InvalidID, u); ok {
		t.Fatalf("found a path with no lanes")
	}
}

func TestExploredLanesOracleGatesTraversal(t *testing.T) {
	u, systems := buildChain(t,
		[][2]float64{{0, 0}, {10, 0}, {20, 0}},
		[][2]int{{0, 1}, {1, 2}},
	)
	explored := map[int]struct{}{systems[1].ID(): {}}
	f := &Finder{Oracle: &ExploredLanes{
		Explored: func(empireID, systemID int) bool {
			_, ok := explored[systemID]
			return ok
		},
	}}

	if _, _, ok := f.ShortestPath(systems[0].ID(), systems[2].ID(), 1, u); ok {
		t.Fatalf("path crossed an unexplored system")
	}

	explored[systems[2].ID()] = struct{}{}
	path, _, ok := f.ShortestPath(systems[0].ID(), systems[2].ID(), 1, u)
	if !ok || len(path) != 3 {
		t.Fatalf("path = %v ok %v after exploring", path, ok)
	}

	// An all-seeing query ignores the oracle.
	delete(explored, systems[2].ID())
	if _, _, ok := f.ShortestPath(systems[0].ID(), systems[2].ID(), universe.InvalidID, u); !ok {
		t.Fatalf("invalid empire id did not bypass the oracle")
	}
}
