package effect

import (
	"testing"

	"stardrift/engine/internal/universe"
	logeffects "stardrift/engine/logging/effects"
)

func TestAddSpecialKeepsAddedTurnOnUpdate(t *testing.T) {
	f := newFixture(t)
	p := f.planets[0]

	e := &AddSpecial{Name: NewConstant("Ancient Ruins")}
	e.Execute(f.ctx.WithTarget(p))

	sp, ok := p.Specials()["Ancient Ruins"]
	if !ok {
		t.Fatalf("special not attached")
	}
	if sp.Capacity != 1 || sp.AddedTurn != 5 {
		t.Fatalf("special = %+v, want capacity 1 added turn 5", sp)
	}

	// A later pass grows the capacity from its prior value but keeps the
	// original attachment turn.
	f.ctx.CurrentTurn = 9
	e2 := &AddSpecial{Name: NewConstant("Ancient Ruins"), Capacity: valuePlus(2)}
	e2.Execute(f.ctx.WithTarget(p))

	sp = p.Specials()["Ancient Ruins"]
	if sp.Capacity != 3 {
		t.Fatalf("capacity = %v, want 3", sp.Capacity)
	}
	if sp.AddedTurn != 5 {
		t.Fatalf("added turn = %d, want 5 preserved", sp.AddedTurn)
	}
}

func TestRemoveSpecial(t *testing.T) {
	f := newFixture(t)
	p := f.planets[0]
	p.SetSpecialCapacity("Volcanic", 1, 1)

	e := &RemoveSpecial{Name: NewConstant("Volcanic")}
	e.Execute(f.ctx.WithTarget(p))

	if p.HasSpecial("Volcanic") {
		t.Fatalf("special still attached")
	}
}

func TestAddStarlanesConnectsSystems(t *testing.T) {
	f := newFixture(t)
	far := f.addSystem(t, "Rhea", 300, 400)
	farPlanet := universe.NewPlanet("Rhea I", universe.PlanetTypeTundra, universe.PlanetSizeSmall)
	f.ctx.Universe.Insert(farPlanet)
	far.Insert(farPlanet)

	// Both endpoints resolve to the same far system; the lane appears once.
	e := &AddStarlanes{Endpoints: &IDCondition{IDs: []int{far.ID(), farPlanet.ID()}}}
	e.Execute(f.ctx.WithTarget(f.planets[0]))

	if lanes := f.sys.StarlaneIDs(); len(lanes) != 1 || lanes[0] != far.ID() {
		t.Fatalf("lanes = %v, want [%d]", lanes, far.ID())
	}
	if lanes := far.StarlaneIDs(); len(lanes) != 1 || lanes[0] != f.sys.ID() {
		t.Fatalf("far lanes = %v, want [%d]", lanes, f.sys.ID())
	}

	r := &RemoveStarlanes{Endpoints: &IDCondition{IDs: []int{far.ID()}}}
	r.Execute(f.ctx.WithTarget(f.planets[0]))
	if lanes := f.sys.StarlaneIDs(); len(lanes) != 0 {
		t.Fatalf("lanes = %v after removal, want none", lanes)
	}
}

func TestDestroyRecordsProvenance(t *testing.T) {
	f := newFixture(t)
	f.ctx.Source = f.planets[0]
	ship, fleet := f.addShipWithFleet(t, "Doomed", 2, false)

	e := Destroy{}
	e.Execute(f.ctx.WithTarget(fleet))

	if f.ctx.Universe.Object(fleet.ID()) != nil {
		t.Fatalf("fleet survived destruction")
	}
	if f.ctx.Universe.Object(ship.ID()) != nil {
		t.Fatalf("contained ship survived destruction")
	}
	byID, ok := f.ctx.Universe.DestroyedBy(fleet.ID())
	if !ok || byID != f.planets[0].ID() {
		t.Fatalf("provenance = %d/%v, want %d", byID, ok, f.planets[0].ID())
	}
}

func TestVictoryRecordsWin(t *testing.T) {
	f := newFixture(t)
	e := &Victory{Reason: "CONQUEST"}
	e.Execute(f.ctx.WithTarget(f.planets[0]))
	e.Execute(f.ctx.WithTarget(f.planets[1]))

	emp := f.ctx.Empires.Empire(1)
	if !emp.HasWon() {
		t.Fatalf("empire did not win")
	}
	if reasons := emp.WinReasons(); len(reasons) != 1 || reasons[0] != "CONQUEST" {
		t.Fatalf("win reasons = %v, want single CONQUEST", reasons)
	}
}

func TestSetEmpireTechProgressSeesPrior(t *testing.T) {
	f := newFixture(t)
	f.ctx.Source = f.planets[0]
	emp := f.ctx.Empires.Empire(1)
	emp.SetTechProgress("Subspace Drives", 10)

	e := &SetEmpireTechProgress{
		TechName: NewConstant("Subspace Drives"),
		Progress: valuePlus(15),
	}
	e.Execute(f.ctx.WithTarget(f.planets[0]))

	if got := emp.TechProgress("Subspace Drives"); got != 25 {
		t.Fatalf("progress = %v, want 25", got)
	}

	bad := &SetEmpireTechProgress{
		TechName: NewConstant("Chronoportation"),
		Progress: constantFloat(1),
	}
	bad.Execute(f.ctx.WithTarget(f.planets[0]))
	if events := f.sink.EventsOfType(logeffects.EventMissingReferent); len(events) != 1 {
		t.Fatalf("expected 1 missing-referent event, got %d", len(events))
	}
}

func TestGiveEmpireTechLandsAtTurnBoundary(t *testing.T) {
	f := newFixture(t)
	f.ctx.Source = f.planets[0]
	emp := f.ctx.Empires.Empire(1)

	e := &GiveEmpireTech{TechName: NewConstant("Subspace Drives")}
	e.Execute(f.ctx.WithTarget(f.planets[0]))

	if got := emp.TechProgress("Subspace Drives"); got != 0 {
		t.Fatalf("tech granted before the turn boundary, progress = %v", got)
	}

	RunTurn(f.ctx, nil)

	if got := emp.TechProgress("Subspace Drives"); got != 60 {
		t.Fatalf("progress = %v, want full research cost 60", got)
	}
	if pending := emp.PendingTechs(); len(pending) != 0 {
		t.Fatalf("pending techs = %v, want drained", pending)
	}
}

func TestRunTurnCommitsMeterBaselines(t *testing.T) {
	f := newFixture(t)
	src := f.planets[0]
	group := &Group{
		Scope: planetScope(),
		Effects: []Effect{
			&SetMeter{MeterType: universe.MeterPopulation, Value: valuePlus(5)},
		},
	}
	group.SetTopLevelContent("Growth")

	acct := RunTurn(f.ctx, []SourcedGroup{{
		Group:  group,
		Source: src,
		Cause:  Cause{CauseType: CauseInherent, SpecificCause: "Growth"},
	}})

	for _, p := range f.planets {
		m := p.Meter(universe.MeterPopulation)
		if m.Current() != 15 {
			t.Fatalf("population = %v, want 15", m.Current())
		}
		if m.Initial() != 15 {
			t.Fatalf("baseline = %v, want committed 15", m.Initial())
		}
	}
	entries := acct.Entries(f.planets[0].ID(), universe.MeterPopulation)
	if len(entries) != 1 || entries[0].MeterChange != 5 {
		t.Fatalf("accounting entries = %+v, want one +5", entries)
	}
}
