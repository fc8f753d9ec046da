package script

import (
	"stardrift/engine/internal/effect"
	"stardrift/engine/internal/universe"
)

// buildEnv assembles the evaluation environment for one run. Enum constants
// come last so expressions cannot shadow the live bindings.
func buildEnv(ctx *effect.Context, consts map[string]any) map[string]any {
	env := map[string]any{
		"Turn":   ctx.CurrentTurn,
		"Value":  normalizeValue(ctx.CurrentValue),
		"Target": objectView(ctx.Target),
		"Source": objectView(ctx.Source),
	}
	for name, v := range consts {
		env[name] = v
	}
	return env
}

// normalizeValue flattens enum-typed prior values to ints so they compare
// against the enum constants, and defaults an absent prior value to zero.
func normalizeValue(v any) any {
	switch n := v.(type) {
	case nil:
		return 0.0
	case universe.PlanetType:
		return int(n)
	case universe.PlanetSize:
		return int(n)
	case universe.StarType:
		return int(n)
	case universe.VisibilityLevel:
		return int(n)
	case universe.MeterType:
		return int(n)
	}
	return v
}

// objectView projects an object into the map shape expressions address. The
// object's meters appear under their meter names.
func objectView(o universe.Object) map[string]any {
	if o == nil {
		return map[string]any{
			"ID":       universe.InvalidID,
			"Owner":    universe.InvalidID,
			"SystemID": universe.InvalidID,
		}
	}
	view := map[string]any{
		"ID":       o.ID(),
		"Name":     o.Name(),
		"Kind":     o.Kind().String(),
		"Owner":    o.Owner(),
		"X":        o.X(),
		"Y":        o.Y(),
		"SystemID": o.SystemID(),
	}
	for _, mt := range universe.MeterTypes(o) {
		view[mt.String()] = o.Meter(mt).Current()
	}
	switch t := o.(type) {
	case *universe.Planet:
		view["PlanetType"] = int(t.PlanetType())
		view["PlanetSize"] = int(t.Size())
		view["Species"] = t.Species()
		view["Focus"] = t.Focus()
	case *universe.Ship:
		view["DesignID"] = t.DesignID()
		view["FleetID"] = t.FleetID()
		view["Species"] = t.Species()
	case *universe.Fleet:
		view["Aggression"] = int(t.Aggression())
		view["NextSystemID"] = t.NextSystemID()
		view["FinalDestinationID"] = t.FinalDestinationID()
	case *universe.System:
		view["StarType"] = int(t.Star())
	case *universe.Field:
		view["FieldType"] = t.FieldType()
	case *universe.Building:
		view["BuildingType"] = t.BuildingType()
		view["PlanetID"] = t.PlanetID()
	}
	specials := make(map[string]float64, len(o.Specials()))
	for name, sp := range o.Specials() {
		specials[name] = sp.Capacity
	}
	view["Specials"] = specials
	return view
}
