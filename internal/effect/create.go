package effect

import (
	"fmt"

	"stardrift/engine/internal/universe"
	logeffects "stardrift/engine/logging/effects"
)

// runAfterEffects executes follow-up effects with the freshly created object
// bound as the target.
func runAfterEffects(ctx *Context, effects []Effect, created universe.Object) {
	if created == nil {
		return
	}
	nctx := ctx.WithTarget(created)
	for _, e := range effects {
		e.Execute(nctx)
	}
}

// romanSuffix labels planet orbits the way system charts do, orbit 0 being I.
func romanSuffix(orbit int) string {
	numerals := []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"}
	if orbit >= 0 && orbit < len(numerals) {
		return numerals[orbit]
	}
	return fmt.Sprintf("%d", orbit+1)
}

// CreatePlanet adds a planet to the target's system. When the target is
// itself a planet, its type and size seed the Value references.
type CreatePlanet struct {
	Type  ValueRef[universe.PlanetType]
	Size  ValueRef[universe.PlanetSize]
	Name  ValueRef[string]
	After []Effect
}

func (e *CreatePlanet) Categories() Category { return 0 }

func (e *CreatePlanet) Execute(ctx *Context) {
	if ctx.Target == nil || e.Type == nil || e.Size == nil {
		return
	}
	sys := universe.GetSystem(ctx.Universe, ctx.Target.SystemID())
	if sys == nil {
		missingReferent(ctx, logeffects.MissingReferentPayload{
			Effect: "CreatePlanet", Referent: "target system", ID: ctx.TargetID(),
		})
		return
	}
	var pt universe.PlanetType
	var ps universe.PlanetSize
	if tp, ok := ctx.Target.(*universe.Planet); ok {
		pt = e.Type.Eval(ctx.WithCurrentValue(tp.PlanetType()))
		ps = e.Size.Eval(ctx.WithCurrentValue(tp.Size()))
	} else {
		pt = e.Type.Eval(ctx)
		ps = e.Size.Eval(ctx)
	}
	if pt == universe.PlanetTypeInvalid || ps == universe.PlanetSizeInvalid || ps == universe.PlanetSizeNone {
		missingReferent(ctx, logeffects.MissingReferentPayload{
			Effect: "CreatePlanet", Referent: "planet type or size",
		})
		return
	}
	if !sys.HasFreeOrbit() {
		missingReferent(ctx, logeffects.MissingReferentPayload{
			Effect: "CreatePlanet", Referent: "free orbit", ID: sys.ID(),
		})
		return
	}
	planet := universe.NewPlanet("", pt, ps)
	ctx.Universe.Insert(planet)
	sys.Insert(planet)
	if e.Name != nil {
		planet.Rename(e.Name.Eval(ctx))
	} else {
		planet.Rename(fmt.Sprintf("%s %s", sys.Name(), romanSuffix(sys.OrbitOf(planet.ID()))))
	}
	runAfterEffects(ctx, e.After, planet)
}

func (e *CreatePlanet) Dump(indent int) string {
	return fmt.Sprintf("%sCreatePlanet type = %s size = %s\n",
		indentOf(indent), dumpRef(e.Type), dumpRef(e.Size))
}

// CreateBuilding sites a building on the target planet, or on the planet of
// a target building.
type CreateBuilding struct {
	BuildingType ValueRef[string]
	Name         ValueRef[string]
	After        []Effect
}

func (e *CreateBuilding) Categories() Category { return 0 }

func (e *CreateBuilding) Execute(ctx *Context) {
	if e.BuildingType == nil {
		return
	}
	var planet *universe.Planet
	switch t := ctx.Target.(type) {
	case *universe.Planet:
		planet = t
	case *universe.Building:
		planet = universe.GetPlanet(ctx.Universe, t.PlanetID())
	}
	if planet == nil {
		skipWrongKind(ctx, "CreateBuilding", "target has no planet")
		return
	}
	typeName := e.BuildingType.Eval(ctx)
	if ctx.Content.BuildingType(typeName) == nil {
		missingReferent(ctx, logeffects.MissingReferentPayload{
			Effect: "CreateBuilding", Referent: "building type", Name: typeName,
		})
		return
	}
	building := universe.NewBuilding(typeName, typeName)
	id := ctx.Universe.Insert(building)
	planet.AddBuilding(id)
	building.SetPlanetID(planet.ID())
	building.SetOwner(planet.Owner())
	if sys := universe.GetSystem(ctx.Universe, planet.SystemID()); sys != nil {
		sys.Insert(building)
	}
	if e.Name != nil {
		building.Rename(e.Name.Eval(ctx))
	}
	runAfterEffects(ctx, e.After, building)
}

func (e *CreateBuilding) Dump(indent int) string {
	return fmt.Sprintf("%sCreateBuilding type = %s\n", indentOf(indent), dumpRef(e.BuildingType))
}

// CreateShip builds a ship in the target's system from a design given by id
// or by name, wraps it in a new fleet, and teaches the owning empire the
// design.
type CreateShip struct {
	DesignID   ValueRef[int]
	DesignName ValueRef[string]
	Empire     ValueRef[int]
	Species    ValueRef[string]
	Name       ValueRef[string]
	After      []Effect
}

func (e *CreateShip) Categories() Category { return 0 }

func (e *CreateShip) Execute(ctx *Context) {
	if ctx.Target == nil {
		return
	}
	sys := universe.GetSystem(ctx.Universe, ctx.Target.SystemID())
	if sys == nil {
		missingReferent(ctx, logeffects.MissingReferentPayload{
			Effect: "CreateShip", Referent: "target system", ID: ctx.TargetID(),
		})
		return
	}
	var design *universe.ShipDesign
	switch {
	case e.DesignID != nil:
		id := e.DesignID.Eval(ctx)
		design = ctx.Universe.Design(id)
		if design == nil {
			missingReferent(ctx, logeffects.MissingReferentPayload{
				Effect: "CreateShip", Referent: "ship design", ID: id,
			})
			return
		}
	case e.DesignName != nil:
		name := e.DesignName.Eval(ctx)
		design = ctx.Universe.DesignByName(name)
		if design == nil {
			missingReferent(ctx, logeffects.MissingReferentPayload{
				Effect: "CreateShip", Referent: "ship design", Name: name,
			})
			return
		}
	default:
		return
	}

	empireID := universe.InvalidID
	if e.Empire != nil {
		empireID = e.Empire.Eval(ctx)
		if ctx.Empires.Empire(empireID) == nil {
			missingReferent(ctx, logeffects.MissingReferentPayload{
				Effect: "CreateShip", Referent: "empire", ID: empireID,
			})
			return
		}
	}
	speciesName := ""
	if e.Species != nil {
		speciesName = e.Species.Eval(ctx)
		if speciesName != "" && ctx.Species.Species(speciesName) == nil {
			missingReferent(ctx, logeffects.MissingReferentPayload{
				Effect: "CreateShip", Referent: "species", Name: speciesName,
			})
			return
		}
	}

	ship := universe.NewShip("", design.ID)
	ctx.Universe.Insert(ship)
	ship.SetOwner(empireID)
	ship.SetSpecies(speciesName)
	sys.Insert(ship)

	switch {
	case e.Name != nil:
		ship.Rename(e.Name.Eval(ctx))
	case empireID != universe.InvalidID:
		ship.Rename(ctx.Empires.Empire(empireID).NewShipName())
	default:
		ship.Rename(design.Name)
	}

	ship.InitMetersFromDesign(design)
	ctx.Universe.SetEmpireKnowledgeOfShipDesign(design.ID, empireID)
	newFleetInSystem(ctx, sys, ship, universe.AggressionInvalid)
	runAfterEffects(ctx, e.After, ship)
}

func (e *CreateShip) Dump(indent int) string {
	if e.DesignName != nil {
		return fmt.Sprintf("%sCreateShip designname = %s\n", indentOf(indent), dumpRef(e.DesignName))
	}
	return fmt.Sprintf("%sCreateShip designid = %s\n", indentOf(indent), dumpRef(e.DesignID))
}

// Field size bounds enforced by CreateField.
const (
	minFieldSize = 1.0
	maxFieldSize = 10000.0
)

// CreateField spawns a field, at the target's position unless coordinates
// are given. The field joins the target system only when the target is a
// system and the field spawns at its center.
type CreateField struct {
	FieldType ValueRef[string]
	Size      ValueRef[float64]
	X, Y      ValueRef[float64]
	Name      ValueRef[string]
	After     []Effect
}

func (e *CreateField) Categories() Category { return 0 }

func (e *CreateField) Execute(ctx *Context) {
	if ctx.Target == nil || e.FieldType == nil {
		return
	}
	typeName := e.FieldType.Eval(ctx)
	if ctx.Content.FieldType(typeName) == nil {
		missingReferent(ctx, logeffects.MissingReferentPayload{
			Effect: "CreateField", Referent: "field type", Name: typeName,
		})
		return
	}
	size := 10.0
	if e.Size != nil {
		size = e.Size.Eval(ctx)
	}
	if size < minFieldSize {
		missingReferent(ctx, logeffects.MissingReferentPayload{
			Effect: "CreateField", Referent: "field size", Name: fmt.Sprintf("%g too small", size),
		})
		size = minFieldSize
	} else if size > maxFieldSize {
		missingReferent(ctx, logeffects.MissingReferentPayload{
			Effect: "CreateField", Referent: "field size", Name: fmt.Sprintf("%g too large", size),
		})
		size = maxFieldSize
	}
	x, y := ctx.Target.X(), ctx.Target.Y()
	if e.X != nil {
		x = e.X.Eval(ctx)
	}
	if e.Y != nil {
		y = e.Y.Eval(ctx)
	}
	field := universe.NewField(typeName, typeName, size)
	ctx.Universe.Insert(field)
	field.MoveTo(x, y)
	if sys, ok := ctx.Target.(*universe.System); ok && sys.X() == x && sys.Y() == y {
		sys.Insert(field)
	}
	if e.Name != nil {
		field.Rename(e.Name.Eval(ctx))
	}
	runAfterEffects(ctx, e.After, field)
}

func (e *CreateField) Dump(indent int) string {
	return fmt.Sprintf("%sCreateField type = %s size = %s\n",
		indentOf(indent), dumpRef(e.FieldType), dumpRef(e.Size))
}

// CreateSystem places a new system at the given coordinates, rolling a
// random star class when none is scripted.
type CreateSystem struct {
	Star  ValueRef[universe.StarType]
	X, Y  ValueRef[float64]
	Name  ValueRef[string]
	After []Effect
}

func (e *CreateSystem) Categories() Category { return 0 }

func (e *CreateSystem) Execute(ctx *Context) {
	star := universe.StarTypeInvalid
	if e.Star != nil {
		star = e.Star.Eval(ctx)
	}
	if star == universe.StarTypeInvalid {
		star = universe.StarType(ctx.roll(int(universe.StarTypeNoStar) + 1))
	}
	var x, y float64
	if e.X != nil {
		x = e.X.Eval(ctx)
	}
	if e.Y != nil {
		y = e.Y.Eval(ctx)
	}
	sys := universe.NewSystem("", star)
	id := ctx.Universe.Insert(sys)
	sys.MoveTo(x, y)
	if e.Name != nil {
		sys.Rename(e.Name.Eval(ctx))
	} else {
		sys.Rename(fmt.Sprintf("System %d", id))
	}
	runAfterEffects(ctx, e.After, sys)
}

func (e *CreateSystem) Dump(indent int) string {
	return fmt.Sprintf("%sCreateSystem star = %s\n", indentOf(indent), dumpRef(e.Star))
}
