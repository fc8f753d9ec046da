package effect

import (
	"fmt"
	"testing"

	"stardrift/engine/internal/universe"
	logeffects "stardrift/engine/logging/effects"
)

func TestCreatePlanetNamesByOrbit(t *testing.T) {
	f := newFixture(t)
	e := &CreatePlanet{
		Type: NewConstant(universe.PlanetTypeOcean),
		Size: NewConstant(universe.PlanetSizeLarge),
	}
	e.Execute(f.ctx.WithTarget(f.planets[0]))

	var created *universe.Planet
	for _, p := range universe.All[*universe.Planet](f.ctx.Universe) {
		if p.PlanetType() == universe.PlanetTypeOcean {
			created = p
		}
	}
	if created == nil {
		t.Fatalf("no planet created")
	}
	if created.SystemID() != f.sys.ID() {
		t.Fatalf("created planet system = %d, want %d", created.SystemID(), f.sys.ID())
	}
	// Three fixture planets occupy orbits I through III.
	if created.Name() != "Vantar IV" {
		t.Fatalf("created planet name = %q, want %q", created.Name(), "Vantar IV")
	}
}

func TestCreatePlanetRequiresFreeOrbit(t *testing.T) {
	f := newFixture(t)
	for f.sys.HasFreeOrbit() {
		p := universe.NewPlanet("Filler", universe.PlanetTypeBarren, universe.PlanetSizeTiny)
		f.ctx.Universe.Insert(p)
		f.sys.Insert(p)
	}
	before := f.ctx.Universe.Count()

	e := &CreatePlanet{
		Type: NewConstant(universe.PlanetTypeOcean),
		Size: NewConstant(universe.PlanetSizeLarge),
	}
	e.Execute(f.ctx.WithTarget(f.planets[0]))

	if f.ctx.Universe.Count() != before {
		t.Fatalf("planet created in a full system")
	}
	if events := f.sink.EventsOfType(logeffects.EventMissingReferent); len(events) != 1 {
		t.Fatalf("expected 1 missing-referent event, got %d", len(events))
	}
}

func TestCreateBuildingSitesOnPlanet(t *testing.T) {
	f := newFixture(t)
	e := &CreateBuilding{BuildingType: NewConstant("Shipyard")}
	e.Execute(f.ctx.WithTarget(f.planets[0]))

	buildings := universe.All[*universe.Building](f.ctx.Universe)
	if len(buildings) != 1 {
		t.Fatalf("building count = %d, want 1", len(buildings))
	}
	b := buildings[0]
	if b.PlanetID() != f.planets[0].ID() {
		t.Fatalf("building planet = %d, want %d", b.PlanetID(), f.planets[0].ID())
	}
	if !f.planets[0].HasBuilding(b.ID()) {
		t.Fatalf("planet does not list the building")
	}
	if b.Owner() != 1 {
		t.Fatalf("building owner = %d, want planet owner 1", b.Owner())
	}
	if b.SystemID() != f.sys.ID() {
		t.Fatalf("building system = %d, want %d", b.SystemID(), f.sys.ID())
	}
}

func TestCreateBuildingRejectsUnknownType(t *testing.T) {
	f := newFixture(t)
	e := &CreateBuilding{BuildingType: NewConstant("Palace")}
	e.Execute(f.ctx.WithTarget(f.planets[0]))
	if n := len(universe.All[*universe.Building](f.ctx.Universe)); n != 0 {
		t.Fatalf("building count = %d, want 0", n)
	}
	if events := f.sink.EventsOfType(logeffects.EventMissingReferent); len(events) != 1 {
		t.Fatalf("expected 1 missing-referent event, got %d", len(events))
	}
}

func TestCreateShipBuildsFleetAndTeachesDesign(t *testing.T) {
	f := newFixture(t)
	design := &universe.ShipDesign{Name: "Corvette", Attack: 3, Speed: 40}
	f.ctx.Universe.AddDesign(design)

	e := &CreateShip{
		DesignName: NewConstant("Corvette"),
		Empire:     NewConstant(2),
	}
	e.Execute(f.ctx.WithTarget(f.planets[0]))

	ships := universe.All[*universe.Ship](f.ctx.Universe)
	if len(ships) != 1 {
		t.Fatalf("ship count = %d, want 1", len(ships))
	}
	ship := ships[0]
	if ship.Owner() != 2 {
		t.Fatalf("ship owner = %d, want 2", ship.Owner())
	}
	if ship.SystemID() != f.sys.ID() {
		t.Fatalf("ship system = %d, want %d", ship.SystemID(), f.sys.ID())
	}
	if got := ship.Meter(universe.MeterSpeed).Current(); got != 40 {
		t.Fatalf("ship speed meter = %v, want 40", got)
	}
	if ship.Name() != "Hegemony Ship 1" {
		t.Fatalf("ship name = %q, want %q", ship.Name(), "Hegemony Ship 1")
	}
	fleet := universe.GetFleet(f.ctx.Universe, ship.FleetID())
	if fleet == nil {
		t.Fatalf("ship has no fleet")
	}
	if fleet.SystemID() != f.sys.ID() {
		t.Fatalf("fleet system = %d, want %d", fleet.SystemID(), f.sys.ID())
	}
	// An armed design yields an aggressive fleet.
	if fleet.Aggression() != universe.AggressionAggressive {
		t.Fatalf("fleet aggression = %v, want Aggressive", fleet.Aggression())
	}
	if !f.ctx.Universe.EmpireKnowsDesign(2, design.ID) {
		t.Fatalf("empire 2 does not know the design it built")
	}
}

func TestCreateShipRejectsUnknownDesign(t *testing.T) {
	f := newFixture(t)
	e := &CreateShip{DesignID: NewConstant(99)}
	e.Execute(f.ctx.WithTarget(f.planets[0]))
	if n := len(universe.All[*universe.Ship](f.ctx.Universe)); n != 0 {
		t.Fatalf("ship count = %d, want 0", n)
	}
	if events := f.sink.EventsOfType(logeffects.EventMissingReferent); len(events) != 1 {
		t.Fatalf("expected 1 missing-referent event, got %d", len(events))
	}
}

func TestCreateFieldClampsSize(t *testing.T) {
	f := newFixture(t)
	e := &CreateField{
		FieldType: NewConstant("Ion Storm"),
		Size:      constantFloat(0.2),
	}
	e.Execute(f.ctx.WithTarget(f.planets[0]))

	fields := universe.All[*universe.Field](f.ctx.Universe)
	if len(fields) != 1 {
		t.Fatalf("field count = %d, want 1", len(fields))
	}
	if got := fields[0].Size(); got != 1 {
		t.Fatalf("field size = %v, want clamped to 1", got)
	}
	if events := f.sink.EventsOfType(logeffects.EventMissingReferent); len(events) != 1 {
		t.Fatalf("expected 1 size-warning event, got %d", len(events))
	}
}

func TestCreateFieldJoinsSystemAtCenter(t *testing.T) {
	f := newFixture(t)
	e := &CreateField{FieldType: NewConstant("Ion Storm")}
	e.Execute(f.ctx.WithTarget(f.sys))

	fields := universe.All[*universe.Field](f.ctx.Universe)
	if len(fields) != 1 {
		t.Fatalf("field count = %d, want 1", len(fields))
	}
	if fields[0].SystemID() != f.sys.ID() {
		t.Fatalf("field system = %d, want %d", fields[0].SystemID(), f.sys.ID())
	}

	// Off-center spawns stay outside the system.
	e2 := &CreateField{
		FieldType: NewConstant("Ion Storm"),
		X:         constantFloat(f.sys.X() + 50),
		Y:         constantFloat(f.sys.Y()),
	}
	e2.Execute(f.ctx.WithTarget(f.sys))
	fields = universe.All[*universe.Field](f.ctx.Universe)
	if len(fields) != 2 {
		t.Fatalf("field count = %d, want 2", len(fields))
	}
	for _, fd := range fields {
		if fd.SystemID() == f.sys.ID() {
			continue
		}
		if fd.X() != f.sys.X()+50 {
			t.Fatalf("free field x = %v, want %v", fd.X(), f.sys.X()+50)
		}
	}
}

func TestCreateSystemDefaultsNameFromID(t *testing.T) {
	f := newFixture(t)
	e := &CreateSystem{
		Star: NewConstant(universe.StarTypeBlue),
		X:    constantFloat(500),
		Y:    constantFloat(500),
	}
	e.Execute(f.ctx)

	var created *universe.System
	for _, s := range universe.All[*universe.System](f.ctx.Universe) {
		if s.ID() != f.sys.ID() {
			created = s
		}
	}
	if created == nil {
		t.Fatalf("no system created")
	}
	if created.Star() != universe.StarTypeBlue {
		t.Fatalf("star = %v, want Blue", created.Star())
	}
	if want := fmt.Sprintf("System %d", created.ID()); created.Name() != want {
		t.Fatalf("name = %q, want %q", created.Name(), want)
	}
}

func TestCreateShipRunsAfterEffects(t *testing.T) {
	f := newFixture(t)
	design := &universe.ShipDesign{Name: "Scout", Speed: 50}
	f.ctx.Universe.AddDesign(design)

	e := &CreateShip{
		DesignName: NewConstant("Scout"),
		Empire:     NewConstant(1),
		After: []Effect{
			&SetMeter{MeterType: universe.MeterFuel, Value: constantFloat(7)},
		},
	}
	e.Execute(f.ctx.WithTarget(f.planets[0]))

	ships := universe.All[*universe.Ship](f.ctx.Universe)
	if len(ships) != 1 {
		t.Fatalf("ship count = %d, want 1", len(ships))
	}
	if got := ships[0].Meter(universe.MeterFuel).Current(); got != 7 {
		t.Fatalf("fuel = %v, want 7 from after-effect", got)
	}
}
