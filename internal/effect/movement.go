package effect

import (
	"context"
	"fmt"
	"math"

	"stardrift/engine/internal/universe"
	logeffects "stardrift/engine/logging/effects"
)

// systemOf resolves the system an object is in, treating a system as its own
// location.
func systemOf(ctx *Context, o universe.Object) *universe.System {
	if o == nil {
		return nil
	}
	if sys, ok := o.(*universe.System); ok {
		return sys
	}
	return universe.GetSystem(ctx.Universe, o.SystemID())
}

// fleetOf resolves a fleet from an object that is a fleet or a ship.
func fleetOf(ctx *Context, o universe.Object) *universe.Fleet {
	switch t := o.(type) {
	case *universe.Fleet:
		return t
	case *universe.Ship:
		return universe.GetFleet(ctx.Universe, t.FleetID())
	}
	return nil
}

// MoveTo teleports the target to the first object its destination condition
// selects, reparenting containment as needed. Unreachable or empty
// destinations make the effect a no-op.
type MoveTo struct {
	Destination Condition
}

func (e *MoveTo) Categories() Category { return 0 }

func (e *MoveTo) Execute(ctx *Context) {
	if ctx.Target == nil || e.Destination == nil {
		return
	}
	matches, _ := e.Destination.Eval(ctx, nil)
	if len(matches) == 0 {
		return
	}
	dest := matches[0]
	if dest.ID() == ctx.Target.ID() {
		return
	}
	switch t := ctx.Target.(type) {
	case *universe.Fleet:
		e.moveFleet(ctx, t, dest)
	case *universe.Ship:
		e.moveShip(ctx, t, dest)
	case *universe.Planet:
		e.movePlanet(ctx, t, dest)
	case *universe.Building:
		e.moveBuilding(ctx, t, dest)
	case *universe.System:
		e.moveSystem(ctx, t, dest)
	case *universe.Field:
		e.moveField(ctx, t, dest)
	}
}

func (e *MoveTo) moveFleet(ctx *Context, fleet *universe.Fleet, dest universe.Object) {
	oldSys := universe.GetSystem(ctx.Universe, fleet.SystemID())
	destSys := systemOf(ctx, dest)
	if destSys != nil {
		if destSys.ID() == fleet.SystemID() {
			return
		}
		if oldSys != nil {
			oldSys.Remove(fleet)
		}
		destSys.Insert(fleet)
		for _, sid := range fleet.ShipIDs() {
			ship := universe.GetShip(ctx.Universe, sid)
			if ship == nil {
				continue
			}
			if oldSys != nil {
				oldSys.Remove(ship)
			}
			destSys.Insert(ship)
		}
		exploreSystemFor(ctx, destSys.ID(), fleet)
		updateFleetRoute(ctx, fleet, universe.InvalidID, universe.InvalidID)
		return
	}
	if oldSys != nil {
		oldSys.Remove(fleet)
	}
	fleet.MoveTo(dest.X(), dest.Y())
	for _, sid := range fleet.ShipIDs() {
		ship := universe.GetShip(ctx.Universe, sid)
		if ship == nil {
			continue
		}
		if oldSys != nil {
			oldSys.Remove(ship)
		}
		ship.MoveTo(dest.X(), dest.Y())
	}
	// A destination in transit lends the mover its waypoints so the route
	// stays coherent.
	if df := fleetOf(ctx, dest); df != nil {
		updateFleetRoute(ctx, fleet, df.NextSystemID(), df.PrevSystemID())
	} else {
		logeffects.RouteRejected(context.Background(), ctx.Publisher(), ctx.CurrentTurn,
			logeffects.RouteRejectedPayload{
				Effect: "MoveTo", Reason: "free-space destination has no route to inherit", Fleet: fleet.ID(),
			})
		fleet.ClearRoute()
	}
}

func (e *MoveTo) moveShip(ctx *Context, ship *universe.Ship, dest universe.Object) {
	oldFleetID := ship.FleetID()
	oldSys := universe.GetSystem(ctx.Universe, ship.SystemID())
	destSys := systemOf(ctx, dest)

	if df := fleetOf(ctx, dest); df != nil && df.Owner() == ship.Owner() && df.ID() != oldFleetID {
		if oldSys != nil {
			oldSys.Remove(ship)
		}
		if destSys != nil {
			destSys.Insert(ship)
			exploreSystemFor(ctx, destSys.ID(), ship)
		} else {
			ship.MoveTo(df.X(), df.Y())
		}
		if old := universe.GetFleet(ctx.Universe, oldFleetID); old != nil {
			old.RemoveShip(ship.ID())
		}
		df.AddShip(ship.ID())
		ship.SetFleetID(df.ID())
		destroyIfEmpty(ctx, oldFleetID)
		return
	}

	if destSys != nil && destSys.ID() == ship.SystemID() {
		return
	}
	if destSys == nil && dest.X() == ship.X() && dest.Y() == ship.Y() {
		return
	}
	if destSys != nil {
		newFleetInSystem(ctx, destSys, ship, universe.AggressionInvalid)
		exploreSystemFor(ctx, destSys.ID(), ship)
	} else {
		if oldSys != nil {
			oldSys.Remove(ship)
		}
		ship.MoveTo(dest.X(), dest.Y())
		newFleetAt(ctx, dest.X(), dest.Y(), ship, universe.AggressionInvalid)
	}
	destroyIfEmpty(ctx, oldFleetID)
}

func (e *MoveTo) movePlanet(ctx *Context, planet *universe.Planet, dest universe.Object) {
	destSys, ok := dest.(*universe.System)
	if !ok {
		skipWrongKind(ctx, "MoveTo", "planet destination is not a system")
		return
	}
	if destSys.ID() == planet.SystemID() {
		return
	}
	if !destSys.HasFreeOrbit() {
		skipWrongKind(ctx, "MoveTo", "destination system has no free orbit")
		return
	}
	oldSys := universe.GetSystem(ctx.Universe, planet.SystemID())
	if oldSys != nil {
		oldSys.Remove(planet)
	}
	destSys.Insert(planet)
	for _, bid := range planet.BuildingIDs() {
		building := universe.GetBuilding(ctx.Universe, bid)
		if building == nil {
			continue
		}
		if oldSys != nil {
			oldSys.Remove(building)
		}
		destSys.Insert(building)
	}
	exploreSystemFor(ctx, destSys.ID(), planet)
}

func (e *MoveTo) moveBuilding(ctx *Context, building *universe.Building, dest universe.Object) {
	var destPlanet *universe.Planet
	switch d := dest.(type) {
	case *universe.Planet:
		destPlanet = d
	case *universe.Building:
		destPlanet = universe.GetPlanet(ctx.Universe, d.PlanetID())
	}
	if destPlanet == nil {
		skipWrongKind(ctx, "MoveTo", "building destination is not a planet")
		return
	}
	if destPlanet.ID() == building.PlanetID() {
		return
	}
	if old := universe.GetPlanet(ctx.Universe, building.PlanetID()); old != nil {
		old.RemoveBuilding(building.ID())
	}
	if oldSys := universe.GetSystem(ctx.Universe, building.SystemID()); oldSys != nil {
		oldSys.Remove(building)
	}
	destPlanet.AddBuilding(building.ID())
	building.SetPlanetID(destPlanet.ID())
	if sys := universe.GetSystem(ctx.Universe, destPlanet.SystemID()); sys != nil {
		sys.Insert(building)
		exploreSystemFor(ctx, sys.ID(), building)
	}
}

func (e *MoveTo) moveSystem(ctx *Context, sys *universe.System, dest universe.Object) {
	// Systems only relocate to open space; a destination inside another
	// system is unreachable for them.
	if _, isSystem := dest.(*universe.System); isSystem || dest.SystemID() != universe.InvalidID {
		return
	}
	x, y := dest.X(), dest.Y()
	sys.MoveTo(x, y)
	for _, oid := range sys.ObjectIDs() {
		if o := ctx.Universe.Object(oid); o != nil {
			o.MoveTo(x, y)
		}
	}
	if field, ok := dest.(*universe.Field); ok {
		sys.Insert(field)
	}
	// Anything already parked at the destination point gets scooped up.
	for _, o := range ctx.Universe.Objects() {
		if o.SystemID() != universe.InvalidID || o.ID() == sys.ID() {
			continue
		}
		switch o.(type) {
		case *universe.Fleet, *universe.Ship:
			if o.X() == x && o.Y() == y {
				sys.Insert(o)
			}
		}
	}
}

func (e *MoveTo) moveField(ctx *Context, field *universe.Field, dest universe.Object) {
	if oldSys := universe.GetSystem(ctx.Universe, field.SystemID()); oldSys != nil {
		oldSys.Remove(field)
	}
	if destSys, ok := dest.(*universe.System); ok {
		destSys.Insert(field)
		return
	}
	field.MoveTo(dest.X(), dest.Y())
}

func (e *MoveTo) Dump(indent int) string {
	return fmt.Sprintf("%sMoveTo destination = %s\n", indentOf(indent), dumpCondition(e.Destination))
}

// focalPoint resolves the point movement effects steer relative to, from
// coordinate expressions or from the first match of a focus condition.
func focalPoint(ctx *Context, x, y ValueRef[float64], focus Condition) (fx, fy float64, ok bool) {
	if x != nil && y != nil {
		fx = x.Eval(ctx.WithCurrentValue(ctx.Target.X()))
		fy = y.Eval(ctx.WithCurrentValue(ctx.Target.Y()))
		return fx, fy, true
	}
	if focus == nil {
		return 0, 0, false
	}
	matches, _ := focus.Eval(ctx, nil)
	if len(matches) == 0 {
		return 0, 0, false
	}
	return matches[0].X(), matches[0].Y(), true
}

// detachForFreeMove pulls a mobile object out of its system so it can take
// up a free-space position.
func detachFromSystem(ctx *Context, o universe.Object) {
	if sys := universe.GetSystem(ctx.Universe, o.SystemID()); sys != nil {
		sys.Remove(o)
	}
}

// MoveInOrbit advances the target one step along a circular orbit around a
// focal point. Planets and buildings never move.
type MoveInOrbit struct {
	X, Y  ValueRef[float64]
	Focus Condition
	Speed ValueRef[float64]
}

func (e *MoveInOrbit) Categories() Category { return 0 }

func (e *MoveInOrbit) Execute(ctx *Context) {
	if ctx.Target == nil || e.Speed == nil {
		return
	}
	fx, fy, ok := focalPoint(ctx, e.X, e.Y, e.Focus)
	if !ok {
		return
	}
	speed := e.Speed.Eval(ctx)
	if speed <= 0 {
		return
	}
	dx := ctx.Target.X() - fx
	dy := ctx.Target.Y() - fy
	radius := math.Hypot(dx, dy)
	if radius < 1.0 {
		return
	}
	angle := math.Atan2(dy, dx) + speed/radius
	nx := fx + radius*math.Cos(angle)
	ny := fy + radius*math.Sin(angle)
	if nx == ctx.Target.X() && ny == ctx.Target.Y() {
		return
	}
	moveFreely(ctx, nx, ny, universe.AggressionInvalid, "MoveInOrbit")
}

func (e *MoveInOrbit) Dump(indent int) string {
	return fmt.Sprintf("%sMoveInOrbit speed = %s\n", indentOf(indent), dumpRef(e.Speed))
}

// MoveTowards advances the target straight toward a focal point, arriving
// exactly when within one step's reach.
type MoveTowards struct {
	X, Y  ValueRef[float64]
	Focus Condition
	Speed ValueRef[float64]
}

func (e *MoveTowards) Categories() Category { return 0 }

func (e *MoveTowards) Execute(ctx *Context) {
	if ctx.Target == nil || e.Speed == nil {
		return
	}
	fx, fy, ok := focalPoint(ctx, e.X, e.Y, e.Focus)
	if !ok {
		return
	}
	speed := e.Speed.Eval(ctx)
	if speed <= 0 {
		return
	}
	dx := fx - ctx.Target.X()
	dy := fy - ctx.Target.Y()
	dist := math.Hypot(dx, dy)
	var nx, ny float64
	if dist < speed {
		nx, ny = fx, fy
	} else {
		if dist < 1.0 {
			dist = 1.0
		}
		if dx == 0 && dy == 0 {
			dx = 1.0
		}
		nx = ctx.Target.X() + dx/dist*speed
		ny = ctx.Target.Y() + dy/dist*speed
	}
	if nx == ctx.Target.X() && ny == ctx.Target.Y() {
		return
	}
	if sys, ok := ctx.Target.(*universe.System); ok {
		// A drifting system drags its contents along without recontainment.
		sys.MoveTo(nx, ny)
		for _, oid := range sys.ObjectIDs() {
			if o := ctx.Universe.Object(oid); o != nil {
				o.MoveTo(nx, ny)
			}
		}
		return
	}
	aggr := universe.AggressionInvalid
	if ship, ok := ctx.Target.(*universe.Ship); ok && ctx.Universe.ShipIsArmed(ship) {
		if old := universe.GetFleet(ctx.Universe, ship.FleetID()); old != nil {
			aggr = old.Aggression()
		}
	}
	moveFreely(ctx, nx, ny, aggr, "MoveTowards")
}

func (e *MoveTowards) Dump(indent int) string {
	return fmt.Sprintf("%sMoveTowards speed = %s\n", indentOf(indent), dumpRef(e.Speed))
}

// moveFreely relocates a mobile target to a free-space point, handling the
// fleet bookkeeping each kind needs. Planets and buildings stay put.
func moveFreely(ctx *Context, x, y float64, shipAggr universe.Aggression, effectName string) {
	switch t := ctx.Target.(type) {
	case *universe.System:
		t.MoveTo(x, y)
		for _, oid := range t.ObjectIDs() {
			if o := ctx.Universe.Object(oid); o != nil {
				o.MoveTo(x, y)
			}
		}
	case *universe.Fleet:
		detachFromSystem(ctx, t)
		t.MoveTo(x, y)
		for _, sid := range t.ShipIDs() {
			ship := universe.GetShip(ctx.Universe, sid)
			if ship == nil {
				continue
			}
			detachFromSystem(ctx, ship)
			ship.MoveTo(x, y)
		}
		updateFleetRoute(ctx, t, universe.InvalidID, universe.InvalidID)
	case *universe.Ship:
		oldFleetID := t.FleetID()
		detachFromSystem(ctx, t)
		t.MoveTo(x, y)
		newFleetAt(ctx, x, y, t, shipAggr)
		destroyIfEmpty(ctx, oldFleetID)
	case *universe.Field:
		detachFromSystem(ctx, t)
		t.MoveTo(x, y)
	default:
		skipWrongKind(ctx, effectName, "target kind does not move")
	}
}

// SetDestination routes the target fleet to a randomly chosen match of the
// destination condition. Destinations outside any system, or with no
// reachable route, leave the fleet unchanged.
type SetDestination struct {
	Destination Condition
}

func (e *SetDestination) Categories() Category { return 0 }

func (e *SetDestination) Execute(ctx *Context) {
	if e.Destination == nil {
		return
	}
	fleet, ok := ctx.Target.(*universe.Fleet)
	if !ok {
		skipWrongKind(ctx, "SetDestination", "target is not a fleet")
		return
	}
	matches, _ := e.Destination.Eval(ctx, nil)
	if len(matches) == 0 {
		return
	}
	dest := matches[ctx.roll(len(matches))]
	destSysID := dest.SystemID()
	if sys, isSys := dest.(*universe.System); isSys {
		destSysID = sys.ID()
	}
	if destSysID == universe.InvalidID {
		logeffects.RouteRejected(context.Background(), ctx.Publisher(), ctx.CurrentTurn,
			logeffects.RouteRejectedPayload{Effect: "SetDestination", Reason: "destination not in a system", Fleet: fleet.ID()})
		return
	}
	start := fleet.SystemID()
	if start == universe.InvalidID {
		start = fleet.NextSystemID()
	}
	if start == universe.InvalidID {
		logeffects.RouteRejected(context.Background(), ctx.Publisher(), ctx.CurrentTurn,
			logeffects.RouteRejectedPayload{Effect: "SetDestination", Reason: "fleet has no route anchor", Fleet: fleet.ID()})
		return
	}
	path, length, ok := ctx.Pathfinder.ShortestPath(start, destSysID, fleet.Owner(), ctx.Universe)
	if !ok || len(path) == 0 {
		logeffects.RouteRejected(context.Background(), ctx.Publisher(), ctx.CurrentTurn,
			logeffects.RouteRejectedPayload{Effect: "SetDestination", Reason: "no route", Fleet: fleet.ID()})
		return
	}
	// ETA judges the fleet's installed route, so install first and roll
	// back when the trip turns out impossible.
	oldRoute, oldNext, oldPrev := fleet.Route(), fleet.NextSystemID(), fleet.PrevSystemID()
	fleet.SetRoute(path)
	eta := fleet.ETA(ctx.Universe, length)
	if eta == universe.ETANever || eta == universe.ETAOutOfRange {
		fleet.SetRoute(oldRoute)
		fleet.SetNextAndPreviousSystems(oldNext, oldPrev)
		logeffects.RouteRejected(context.Background(), ctx.Publisher(), ctx.CurrentTurn,
			logeffects.RouteRejectedPayload{Effect: "SetDestination", Reason: "destination unreachable", Fleet: fleet.ID()})
		return
	}
}

func (e *SetDestination) Dump(indent int) string {
	return fmt.Sprintf("%sSetDestination destination = %s\n", indentOf(indent), dumpCondition(e.Destination))
}

// SetAggression changes the combat posture of the target fleet.
type SetAggression struct {
	Aggression universe.Aggression
}

func (e *SetAggression) Categories() Category { return 0 }

func (e *SetAggression) Execute(ctx *Context) {
	fleet, ok := ctx.Target.(*universe.Fleet)
	if !ok {
		skipWrongKind(ctx, "SetAggression", "target is not a fleet")
		return
	}
	fleet.SetAggression(e.Aggression)
}

func (e *SetAggression) Dump(indent int) string {
	return fmt.Sprintf("%sSet%s\n", indentOf(indent), e.Aggression)
}
