package effect

import (
	"context"
	"fmt"

	"stardrift/engine/internal/universe"
	logeffects "stardrift/engine/logging/effects"
)

// newFleetAt creates a fleet at free-space coordinates holding the given
// ship. aggr overrides the posture; pass AggressionInvalid to derive it from
// armament, aggressive when armed and defensive otherwise. The new fleet is
// fully stealthed so it inherits no visibility of its own.
func newFleetAt(ctx *Context, x, y float64, ship *universe.Ship, aggr universe.Aggression) *universe.Fleet {
	if ship == nil {
		return nil
	}
	fleet := universe.NewFleet("")
	id := ctx.Universe.Insert(fleet)
	fleet.Rename(fmt.Sprintf("Fleet %d", id))
	fleet.MoveTo(x, y)
	fleet.Meter(universe.MeterStealth).SetCurrent(universe.LargeValue)

	if old := universe.GetFleet(ctx.Universe, ship.FleetID()); old != nil {
		old.RemoveShip(ship.ID())
	}
	fleet.AddShip(ship.ID())
	ship.SetFleetID(id)
	fleet.SetOwner(ship.Owner())

	if aggr == universe.AggressionInvalid {
		if ctx.Universe.ShipIsArmed(ship) {
			aggr = universe.AggressionAggressive
		} else {
			aggr = universe.AggressionDefensive
		}
	}
	fleet.SetAggression(aggr)
	return fleet
}

// newFleetInSystem creates a fleet inside a system holding the given ship,
// relocating the ship between systems first when needed.
func newFleetInSystem(ctx *Context, sys *universe.System, ship *universe.Ship, aggr universe.Aggression) *universe.Fleet {
	if sys == nil || ship == nil {
		return nil
	}
	if ship.SystemID() != sys.ID() {
		if old := universe.GetSystem(ctx.Universe, ship.SystemID()); old != nil {
			old.Remove(ship)
		}
		sys.Insert(ship)
	}
	fleet := newFleetAt(ctx, sys.X(), sys.Y(), ship, aggr)
	if fleet != nil {
		sys.Insert(fleet)
	}
	return fleet
}

// destroyIfEmpty removes a fleet that no longer holds ships.
func destroyIfEmpty(ctx *Context, fleetID int) {
	if fleet := universe.GetFleet(ctx.Universe, fleetID); fleet != nil && fleet.Empty() {
		ctx.Universe.Destroy(fleetID, universe.InvalidID)
	}
}

// updateFleetRoute recomputes a fleet's travel route toward its recorded
// final destination after the fleet or the lane graph moved under it. next
// and prev pin the adjacent waypoints; pass universe.InvalidID for both to
// derive everything from the fleet's position.
func updateFleetRoute(ctx *Context, fleet *universe.Fleet, next, prev int) {
	if fleet == nil {
		return
	}
	if next != universe.InvalidID && universe.GetSystem(ctx.Universe, next) == nil {
		logeffects.RouteRejected(context.Background(), ctx.Publisher(), ctx.CurrentTurn, logeffects.RouteRejectedPayload{
			Effect: "UpdateFleetRoute", Reason: "next system does not exist", Fleet: fleet.ID(),
		})
		return
	}
	fleet.SetNextAndPreviousSystems(next, prev)

	dest := fleet.FinalDestinationID()
	start := fleet.SystemID()
	if start == universe.InvalidID {
		start = next
	}
	if dest == universe.InvalidID || start == universe.InvalidID {
		fleet.ClearRoute()
		fleet.SetNextAndPreviousSystems(next, prev)
		return
	}
	path, _, ok := ctx.Pathfinder.ShortestPath(start, dest, fleet.Owner(), ctx.Universe)
	if !ok || len(path) == 0 {
		if next != universe.InvalidID {
			path = []int{next}
		} else {
			fleet.ClearRoute()
			return
		}
	}
	fleet.SetRoute(path)
	fleet.SetNextAndPreviousSystems(next, prev)
}

// exploreSystemFor marks a system explored for the owner of the moved
// object. Unowned objects explore nothing.
func exploreSystemFor(ctx *Context, systemID int, mover universe.Object) {
	if mover == nil || mover.Unowned() {
		return
	}
	if emp := ctx.Empires.Empire(mover.Owner()); emp != nil {
		emp.AddExploredSystem(systemID)
	}
}
