package effect

import (
	"math/rand"
	"testing"

	"stardrift/engine/internal/content"
	"stardrift/engine/internal/empire"
	"stardrift/engine/internal/pathfind"
	"stardrift/engine/internal/species"
	"stardrift/engine/internal/universe"
	"stardrift/engine/logging/sinks"
)

// fakeFloat is a hand-built float reference with controllable classification
// flags, standing in for compiled expressions.
type fakeFloat struct {
	fn        func(ctx *Context) float64
	invariant bool
	constant  bool
	simpleInc bool
	rhs       ValueRef[float64]
	negate    bool
	evals     *int
}

func (f *fakeFloat) Eval(ctx *Context) float64 {
	if f.evals != nil {
		*f.evals++
	}
	return f.fn(ctx)
}

func (f *fakeFloat) TargetInvariant() bool { return f.invariant }
func (f *fakeFloat) ConstantExpr() bool    { return f.constant }
func (f *fakeFloat) Dump() string          { return "fake" }

func (f *fakeFloat) SimpleIncrement() bool { return f.simpleInc }

func (f *fakeFloat) Increment() (ValueRef[float64], bool, bool) {
	return f.rhs, f.negate, f.rhs != nil
}

func constantFloat(v float64) *fakeFloat {
	return &fakeFloat{fn: func(*Context) float64 { return v }, invariant: true, constant: true}
}

// valuePlus builds a reference behaving like "Value + delta" without the
// increment classification.
func valuePlus(delta float64) *fakeFloat {
	return &fakeFloat{fn: func(ctx *Context) float64 {
		v, _ := ctx.CurrentValue.(float64)
		return v + delta
	}}
}

// incrementRef builds a reference classified as "Value + delta".
func incrementRef(delta float64) *fakeFloat {
	r := valuePlus(delta)
	r.simpleInc = true
	r.rhs = constantFloat(delta)
	return r
}

type fixture struct {
	ctx  *Context
	sink *sinks.MemorySink

	sys     *universe.System
	planets []*universe.Planet
}

// newFixture builds a universe with one system, three owned planets, two
// empires at war, and a deterministic random source.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	u := universe.New()
	empires := empire.NewManager()
	empires.Add(empire.New(1, "Concord"))
	empires.Add(empire.New(2, "Hegemony"))
	empires.SetStatus(1, 2, empire.StatusWar)

	sm := species.NewManager()
	sm.Add(species.Species{Name: "Thenari", DefaultFocus: "Industry", Foci: []string{"Industry", "Research"}})
	sm.Add(species.Species{Name: "Oroqin", DefaultFocus: "Research", Foci: []string{"Research"}})

	reg := content.NewRegistry()
	reg.AddTech(content.Tech{Name: "Subspace Drives", Category: "Propulsion", ResearchCost: 60})
	reg.AddBuildingType(content.BuildingType{Name: "Shipyard"})
	reg.AddFieldType(content.FieldType{Name: "Ion Storm"})

	sys := universe.NewSystem("Vantar", universe.StarTypeYellow)
	u.Insert(sys)
	sys.MoveTo(100, 200)

	var planets []*universe.Planet
	for i, name := range []string{"Vantar I", "Vantar II", "Vantar III"} {
		p := universe.NewPlanet(name, universe.PlanetTypeTerran, universe.PlanetSizeMedium)
		u.Insert(p)
		if !sys.Insert(p) {
			t.Fatalf("planet %d did not fit in system", i)
		}
		p.SetOwner(1)
		p.Meter(universe.MeterPopulation).SetCurrent(10)
		planets = append(planets, p)
	}

	sink := sinks.NewMemorySink()
	ctx := &Context{
		CurrentTurn: 5,
		Universe:    u,
		Empires:     empires,
		Species:     sm,
		Content:     reg,
		Pathfinder:  &pathfind.Finder{},
		Log:         sink,
		Rand:        rand.New(rand.NewSource(1)),
	}
	return &fixture{ctx: ctx, sink: sink, sys: sys, planets: planets}
}

func targetsOf(planets []*universe.Planet) TargetSet {
	out := make(TargetSet, 0, len(planets))
	for _, p := range planets {
		out = append(out, p)
	}
	return out
}

// addShipWithFleet inserts an armed or unarmed ship wrapped in its own fleet
// inside the fixture system.
func (f *fixture) addShipWithFleet(t *testing.T, name string, owner int, armed bool) (*universe.Ship, *universe.Fleet) {
	t.Helper()
	attack := 0.0
	if armed {
		attack = 5
	}
	design := &universe.ShipDesign{Name: name + " design", Attack: attack, Speed: 20}
	f.ctx.Universe.AddDesign(design)

	ship := universe.NewShip(name, design.ID)
	f.ctx.Universe.Insert(ship)
	ship.SetOwner(owner)
	f.sys.Insert(ship)
	ship.InitMetersFromDesign(design)

	fleet := universe.NewFleet(name + " fleet")
	f.ctx.Universe.Insert(fleet)
	fleet.SetOwner(owner)
	f.sys.Insert(fleet)
	fleet.AddShip(ship.ID())
	ship.SetFleetID(fleet.ID())
	return ship, fleet
}
