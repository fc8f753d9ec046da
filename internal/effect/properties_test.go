package effect

import (
	"testing"

	"stardrift/engine/internal/universe"
	logeffects "stardrift/engine/logging/effects"
)

func TestSetOwnerMovesShipToNewFleet(t *testing.T) {
	f := newFixture(t)
	ship1, fleet := f.addShipWithFleet(t, "Alpha", 1, true)
	ship2 := universe.NewShip("Beta", ship1.DesignID())
	f.ctx.Universe.Insert(ship2)
	ship2.SetOwner(1)
	f.sys.Insert(ship2)
	fleet.AddShip(ship2.ID())
	ship2.SetFleetID(fleet.ID())
	fleet.SetAggression(universe.AggressionObstructive)
	fleet.SetNextAndPreviousSystems(7, 9)

	e := &SetOwner{Empire: NewConstant(2)}
	e.Execute(f.ctx.WithTarget(ship1))

	if ship1.Owner() != 2 {
		t.Fatalf("ship owner = %d, want 2", ship1.Owner())
	}
	if ship1.FleetID() == fleet.ID() {
		t.Fatalf("ship stayed in old fleet %d", fleet.ID())
	}
	newFleet := universe.GetFleet(f.ctx.Universe, ship1.FleetID())
	if newFleet == nil {
		t.Fatalf("new fleet %d not found", ship1.FleetID())
	}
	if newFleet.Owner() != 2 {
		t.Fatalf("new fleet owner = %d, want 2", newFleet.Owner())
	}
	// An armed ship carries the old fleet's posture across.
	if newFleet.Aggression() != universe.AggressionObstructive {
		t.Fatalf("new fleet aggression = %v, want Obstructive", newFleet.Aggression())
	}
	if newFleet.NextSystemID() != 7 || newFleet.PrevSystemID() != 9 {
		t.Fatalf("new fleet waypoints = %d/%d, want 7/9", newFleet.NextSystemID(), newFleet.PrevSystemID())
	}
	// The old fleet still holds Beta and survives.
	if universe.GetFleet(f.ctx.Universe, fleet.ID()) == nil {
		t.Fatalf("old fleet destroyed while still holding a ship")
	}
}

func TestSetOwnerDestroysEmptiedFleet(t *testing.T) {
	f := newFixture(t)
	ship, fleet := f.addShipWithFleet(t, "Solo", 1, false)

	e := &SetOwner{Empire: NewConstant(2)}
	e.Execute(f.ctx.WithTarget(ship))

	if universe.GetFleet(f.ctx.Universe, fleet.ID()) != nil {
		t.Fatalf("emptied fleet %d still exists", fleet.ID())
	}
	newFleet := universe.GetFleet(f.ctx.Universe, ship.FleetID())
	if newFleet == nil {
		t.Fatalf("transferred ship has no fleet")
	}
	// An unarmed ship defaults to a defensive posture.
	if newFleet.Aggression() != universe.AggressionDefensive {
		t.Fatalf("new fleet aggression = %v, want Defensive", newFleet.Aggression())
	}
}

func TestSetOwnerSameOwnerIsNoOp(t *testing.T) {
	f := newFixture(t)
	ship, fleet := f.addShipWithFleet(t, "Gamma", 1, false)
	e := &SetOwner{Empire: NewConstant(1)}
	e.Execute(f.ctx.WithTarget(ship))
	if ship.FleetID() != fleet.ID() {
		t.Fatalf("ship left its fleet on a same-owner transfer")
	}
}

func TestSetSpeciesRevalidatesFocus(t *testing.T) {
	f := newFixture(t)
	p := f.planets[0]
	p.SetSpecies("Thenari")
	p.SetFocus("Industry")

	// Oroqin cannot work an Industry focus; it falls to their default.
	e := &SetSpecies{Name: NewConstant("Oroqin")}
	e.Execute(f.ctx.WithTarget(p))
	if p.Species() != "Oroqin" {
		t.Fatalf("species = %q, want Oroqin", p.Species())
	}
	if p.Focus() != "Research" {
		t.Fatalf("focus = %q, want Research", p.Focus())
	}

	// Thenari support Research, so the focus is kept.
	e2 := &SetSpecies{Name: NewConstant("Thenari")}
	e2.Execute(f.ctx.WithTarget(p))
	if p.Focus() != "Research" {
		t.Fatalf("focus = %q, want Research kept", p.Focus())
	}
}

func TestSetSpeciesUnknownLogsMissingReferent(t *testing.T) {
	f := newFixture(t)
	e := &SetSpecies{Name: NewConstant("Xyleth")}
	e.Execute(f.ctx.WithTarget(f.planets[0]))
	if events := f.sink.EventsOfType(logeffects.EventMissingReferent); len(events) != 1 {
		t.Fatalf("expected 1 missing-referent event, got %d", len(events))
	}
}

func TestSetPlanetTypeCouplesSize(t *testing.T) {
	f := newFixture(t)
	p := f.planets[0]

	e := &SetPlanetType{Type: NewConstant(universe.PlanetTypeAsteroids)}
	e.Execute(f.ctx.WithTarget(p))
	if p.Size() != universe.PlanetSizeAsteroids {
		t.Fatalf("size = %v, want Asteroids after type change", p.Size())
	}

	e2 := &SetPlanetType{Type: NewConstant(universe.PlanetTypeOcean)}
	e2.Execute(f.ctx.WithTarget(p))
	if p.Size() != universe.PlanetSizeTiny {
		t.Fatalf("size = %v, want Tiny repaired from Asteroids", p.Size())
	}
}

func TestSetPlanetSizeCouplesType(t *testing.T) {
	f := newFixture(t)
	p := f.planets[0]

	e := &SetPlanetSize{Size: NewConstant(universe.PlanetSizeGasGiant)}
	e.Execute(f.ctx.WithTarget(p))
	if p.PlanetType() != universe.PlanetTypeGasGiant {
		t.Fatalf("type = %v, want GasGiant after size change", p.PlanetType())
	}

	e2 := &SetPlanetSize{Size: NewConstant(universe.PlanetSizeSmall)}
	e2.Execute(f.ctx.WithTarget(p))
	if p.PlanetType() != universe.PlanetTypeBarren {
		t.Fatalf("type = %v, want Barren repaired from GasGiant", p.PlanetType())
	}
}

func TestSetPlanetTypeSkipsNonPlanets(t *testing.T) {
	f := newFixture(t)
	e := &SetPlanetType{Type: NewConstant(universe.PlanetTypeOcean)}
	e.Execute(f.ctx.WithTarget(f.sys))
	if events := f.sink.EventsOfType(logeffects.EventSkipped); len(events) != 1 {
		t.Fatalf("expected 1 skip event, got %d", len(events))
	}
}

func TestSetEmpireCapital(t *testing.T) {
	f := newFixture(t)
	e := &SetEmpireCapital{}
	e.Execute(f.ctx.WithTarget(f.planets[1]))
	if got := f.ctx.Empires.Empire(1).CapitalID(); got != f.planets[1].ID() {
		t.Fatalf("capital = %d, want %d", got, f.planets[1].ID())
	}
}

func TestSetStarType(t *testing.T) {
	f := newFixture(t)
	e := &SetStarType{Type: NewConstant(universe.StarTypeNeutron)}
	e.Execute(f.ctx.WithTarget(f.sys))
	if f.sys.Star() != universe.StarTypeNeutron {
		t.Fatalf("star = %v, want Neutron", f.sys.Star())
	}
}

func TestSetSpeciesOpinions(t *testing.T) {
	f := newFixture(t)
	e := &SetSpeciesEmpireOpinion{
		Species: NewConstant("Thenari"),
		Empire:  NewConstant(2),
		Opinion: valuePlus(10),
	}
	e.Execute(f.ctx.WithTarget(f.planets[0]))
	e.Execute(f.ctx.WithTarget(f.planets[0]))
	if got := f.ctx.Species.EmpireOpinion("Thenari", 2); got != 20 {
		t.Fatalf("opinion = %v, want 20 after two +10 passes", got)
	}

	s := &SetSpeciesSpeciesOpinion{
		Rater:   NewConstant("Thenari"),
		Rated:   NewConstant("Oroqin"),
		Opinion: NewConstant(-5.0),
	}
	s.Execute(f.ctx.WithTarget(f.planets[0]))
	if got := f.ctx.Species.SpeciesOpinion("Thenari", "Oroqin"); got != -5 {
		t.Fatalf("species opinion = %v, want -5", got)
	}
}
