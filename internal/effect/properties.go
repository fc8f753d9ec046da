package effect

import (
	"fmt"

	"stardrift/engine/internal/universe"
	logeffects "stardrift/engine/logging/effects"
)

// SetPlanetType changes a planet's environment class. The planet keeps its
// size class consistent with the new type.
type SetPlanetType struct {
	Type ValueRef[universe.PlanetType]
}

func (e *SetPlanetType) Categories() Category { return 0 }

func (e *SetPlanetType) Execute(ctx *Context) {
	if e.Type == nil {
		return
	}
	planet, ok := ctx.Target.(*universe.Planet)
	if !ok {
		skipWrongKind(ctx, "SetPlanetType", "target is not a planet")
		return
	}
	planet.SetPlanetType(e.Type.Eval(ctx.WithCurrentValue(planet.PlanetType())))
}

func (e *SetPlanetType) Dump(indent int) string {
	return fmt.Sprintf("%sSetPlanetType type = %s\n", indentOf(indent), dumpRef(e.Type))
}

// SetPlanetSize changes a planet's size class, keeping the environment class
// consistent with it.
type SetPlanetSize struct {
	Size ValueRef[universe.PlanetSize]
}

func (e *SetPlanetSize) Categories() Category { return 0 }

func (e *SetPlanetSize) Execute(ctx *Context) {
	if e.Size == nil {
		return
	}
	planet, ok := ctx.Target.(*universe.Planet)
	if !ok {
		skipWrongKind(ctx, "SetPlanetSize", "target is not a planet")
		return
	}
	planet.SetSize(e.Size.Eval(ctx.WithCurrentValue(planet.Size())))
}

func (e *SetPlanetSize) Dump(indent int) string {
	return fmt.Sprintf("%sSetPlanetSize size = %s\n", indentOf(indent), dumpRef(e.Size))
}

// SetSpecies assigns a species to a planet or ship. On planets the focus is
// revalidated: the current focus is kept when the new species supports it,
// otherwise the species default applies, then the first available focus,
// then none.
type SetSpecies struct {
	Name ValueRef[string]
}

func (e *SetSpecies) Categories() Category { return 0 }

func (e *SetSpecies) Execute(ctx *Context) {
	if e.Name == nil {
		return
	}
	switch t := ctx.Target.(type) {
	case *universe.Planet:
		name := e.Name.Eval(ctx.WithCurrentValue(t.Species()))
		t.SetSpecies(name)
		def := ctx.Species.Species(name)
		if def == nil {
			missingReferent(ctx, logeffects.MissingReferentPayload{
				Effect: "SetSpecies", Referent: "species", Name: name,
			})
			return
		}
		switch {
		case def.HasFocus(t.Focus()):
			// keep current focus
		case def.HasFocus(def.DefaultFocus):
			t.SetFocus(def.DefaultFocus)
		case len(def.Foci) > 0:
			t.SetFocus(def.Foci[0])
		default:
			t.SetFocus("")
		}
	case *universe.Ship:
		t.SetSpecies(e.Name.Eval(ctx.WithCurrentValue(t.Species())))
	default:
		skipWrongKind(ctx, "SetSpecies", "target is not a planet or ship")
	}
}

func (e *SetSpecies) Dump(indent int) string {
	return fmt.Sprintf("%sSetSpecies name = %s\n", indentOf(indent), dumpRef(e.Name))
}

// SetOwner transfers an object to another empire. A transferred ship leaves
// its fleet for a new single-ship fleet owned by the new empire; a fleet
// emptied by the transfer is destroyed.
type SetOwner struct {
	Empire ValueRef[int]
}

func (e *SetOwner) Categories() Category { return 0 }

func (e *SetOwner) Execute(ctx *Context) {
	if ctx.Target == nil || e.Empire == nil {
		return
	}
	initialOwner := ctx.Target.Owner()
	newOwner := e.Empire.Eval(ctx.WithCurrentValue(initialOwner))
	if newOwner == initialOwner {
		return
	}
	ctx.Target.SetOwner(newOwner)

	ship, ok := ctx.Target.(*universe.Ship)
	if !ok {
		return
	}
	oldFleet := universe.GetFleet(ctx.Universe, ship.FleetID())
	if oldFleet == nil {
		return
	}
	if oldFleet.Owner() == newOwner {
		return
	}
	aggr := universe.AggressionInvalid
	if ctx.Universe.ShipIsArmed(ship) {
		aggr = oldFleet.Aggression()
	}
	var fleet *universe.Fleet
	if sys := universe.GetSystem(ctx.Universe, ship.SystemID()); sys != nil {
		fleet = newFleetInSystem(ctx, sys, ship, aggr)
	} else {
		fleet = newFleetAt(ctx, ship.X(), ship.Y(), ship, aggr)
	}
	if fleet != nil {
		fleet.SetNextAndPreviousSystems(oldFleet.NextSystemID(), oldFleet.PrevSystemID())
	}
	destroyIfEmpty(ctx, oldFleet.ID())
}

func (e *SetOwner) Dump(indent int) string {
	return fmt.Sprintf("%sSetOwner empire = %s\n", indentOf(indent), dumpRef(e.Empire))
}

// SetSpeciesEmpireOpinion adjusts what a species thinks of an empire. The
// opinion expression sees the prior opinion as Value.
type SetSpeciesEmpireOpinion struct {
	Species ValueRef[string]
	Empire  ValueRef[int]
	Opinion ValueRef[float64]
}

func (e *SetSpeciesEmpireOpinion) Categories() Category { return 0 }

func (e *SetSpeciesEmpireOpinion) Execute(ctx *Context) {
	if e.Species == nil || e.Empire == nil || e.Opinion == nil {
		return
	}
	name := e.Species.Eval(ctx)
	if name == "" {
		return
	}
	empireID := e.Empire.Eval(ctx)
	if ctx.Empires.Empire(empireID) == nil {
		missingReferent(ctx, logeffects.MissingReferentPayload{
			Effect: "SetSpeciesEmpireOpinion", Referent: "empire", ID: empireID,
		})
		return
	}
	prior := ctx.Species.EmpireOpinion(name, empireID)
	ctx.Species.SetEmpireOpinion(name, empireID, e.Opinion.Eval(ctx.WithCurrentValue(prior)))
}

func (e *SetSpeciesEmpireOpinion) Dump(indent int) string {
	return fmt.Sprintf("%sSetSpeciesEmpireOpinion species = %s empire = %s opinion = %s\n",
		indentOf(indent), dumpRef(e.Species), dumpRef(e.Empire), dumpRef(e.Opinion))
}

// SetSpeciesSpeciesOpinion adjusts what one species thinks of another.
type SetSpeciesSpeciesOpinion struct {
	Rater   ValueRef[string]
	Rated   ValueRef[string]
	Opinion ValueRef[float64]
}

func (e *SetSpeciesSpeciesOpinion) Categories() Category { return 0 }

func (e *SetSpeciesSpeciesOpinion) Execute(ctx *Context) {
	if e.Rater == nil || e.Rated == nil || e.Opinion == nil {
		return
	}
	rater := e.Rater.Eval(ctx)
	rated := e.Rated.Eval(ctx)
	if rater == "" || rated == "" {
		return
	}
	prior := ctx.Species.SpeciesOpinion(rater, rated)
	ctx.Species.SetSpeciesOpinion(rater, rated, e.Opinion.Eval(ctx.WithCurrentValue(prior)))
}

func (e *SetSpeciesSpeciesOpinion) Dump(indent int) string {
	return fmt.Sprintf("%sSetSpeciesSpeciesOpinion rater = %s rated = %s opinion = %s\n",
		indentOf(indent), dumpRef(e.Rater), dumpRef(e.Rated), dumpRef(e.Opinion))
}

// SetStarType changes a system's star class. The type expression sees the
// prior class as Value.
type SetStarType struct {
	Type ValueRef[universe.StarType]
}

func (e *SetStarType) Categories() Category { return 0 }

func (e *SetStarType) Execute(ctx *Context) {
	if e.Type == nil {
		return
	}
	sys, ok := ctx.Target.(*universe.System)
	if !ok {
		skipWrongKind(ctx, "SetStarType", "target is not a system")
		return
	}
	sys.SetStar(e.Type.Eval(ctx.WithCurrentValue(sys.Star())))
}

func (e *SetStarType) Dump(indent int) string {
	return fmt.Sprintf("%sSetStarType type = %s\n", indentOf(indent), dumpRef(e.Type))
}

// SetTexture changes a planet's rendering texture.
type SetTexture struct {
	Texture string
}

func (e *SetTexture) Categories() Category { return CategoryAppearance }

func (e *SetTexture) Execute(ctx *Context) {
	planet, ok := ctx.Target.(*universe.Planet)
	if !ok {
		skipWrongKind(ctx, "SetTexture", "target is not a planet")
		return
	}
	planet.SetTexture(e.Texture)
}

func (e *SetTexture) Dump(indent int) string {
	return fmt.Sprintf("%sSetTexture texture = %s\n", indentOf(indent), e.Texture)
}

// SetOverlayTexture places an overlay on a system, with a size defaulting
// to 1.
type SetOverlayTexture struct {
	Texture string
	Size    ValueRef[float64]
}

func (e *SetOverlayTexture) Categories() Category { return CategoryAppearance }

func (e *SetOverlayTexture) Execute(ctx *Context) {
	sys, ok := ctx.Target.(*universe.System)
	if !ok {
		skipWrongKind(ctx, "SetOverlayTexture", "target is not a system")
		return
	}
	size := 1.0
	if e.Size != nil {
		size = e.Size.Eval(ctx)
	}
	sys.SetOverlayTexture(e.Texture, size)
}

func (e *SetOverlayTexture) Dump(indent int) string {
	return fmt.Sprintf("%sSetOverlayTexture texture = %s size = %s\n",
		indentOf(indent), e.Texture, dumpRef(e.Size))
}

// SetEmpireCapital makes the target planet the capital of an empire,
// defaulting to the planet's owner.
type SetEmpireCapital struct {
	Empire ValueRef[int]
}

func (e *SetEmpireCapital) Categories() Category { return 0 }

func (e *SetEmpireCapital) Execute(ctx *Context) {
	planet, ok := ctx.Target.(*universe.Planet)
	if !ok {
		skipWrongKind(ctx, "SetEmpireCapital", "target is not a planet")
		return
	}
	empireID := resolveEmpireID(ctx, e.Empire)
	emp := ctx.Empires.Empire(empireID)
	if emp == nil {
		missingReferent(ctx, logeffects.MissingReferentPayload{
			Effect: "SetEmpireCapital", Referent: "empire", ID: empireID,
		})
		return
	}
	emp.SetCapitalID(planet.ID())
}

func (e *SetEmpireCapital) Dump(indent int) string {
	return fmt.Sprintf("%sSetEmpireCapital empire = %s\n", indentOf(indent), dumpRef(e.Empire))
}
