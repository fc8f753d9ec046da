package universe

import "sort"

// Aggression is a fleet's combat posture.
type Aggression int

const (
	AggressionInvalid Aggression = iota - 1
	AggressionPassive
	AggressionDefensive
	AggressionObstructive
	AggressionAggressive
)

func (a Aggression) String() string {
	switch a {
	case AggressionPassive:
		return "Passive"
	case AggressionDefensive:
		return "Defensive"
	case AggressionObstructive:
		return "Obstructive"
	case AggressionAggressive:
		return "Aggressive"
	}
	return "Invalid"
}

// ETA sentinels returned by Fleet.ETA.
const (
	ETANever      = 1 << 30
	ETAOutOfRange = 1<<30 - 1
)

// Fleet groups ships that move together along a starlane route.
type Fleet struct {
	base
	shipIDs      map[int]struct{}
	aggression   Aggression
	route        []int
	nextSystemID int
	prevSystemID int
}

func NewFleet(name string) *Fleet {
	f := &Fleet{
		base:         newBase(name),
		shipIDs:      make(map[int]struct{}),
		aggression:   AggressionDefensive,
		nextSystemID: InvalidID,
		prevSystemID: InvalidID,
	}
	f.addMeter(MeterStealth)
	return f
}

func (f *Fleet) Kind() Kind { return KindFleet }

func (f *Fleet) ShipIDs() []int { return sortedIDs(f.shipIDs) }

func (f *Fleet) Empty() bool { return len(f.shipIDs) == 0 }

func (f *Fleet) AddShip(id int)    { f.shipIDs[id] = struct{}{} }
func (f *Fleet) RemoveShip(id int) { delete(f.shipIDs, id) }

func (f *Fleet) HasShip(id int) bool {
	_, ok := f.shipIDs[id]
	return ok
}

func (f *Fleet) Aggression() Aggression      { return f.aggression }
func (f *Fleet) SetAggression(a Aggression)  { f.aggression = a }

// Route is the ordered list of system ids the fleet will traverse. The last
// entry is the final destination.
func (f *Fleet) Route() []int { return f.route }

// SetRoute installs a travel route and derives the next and previous
// waypoints from it. An empty route clears movement state.
func (f *Fleet) SetRoute(route []int) {
	f.route = route
	if len(route) == 0 {
		f.nextSystemID = InvalidID
		f.prevSystemID = InvalidID
		return
	}
	if f.systemID != InvalidID && route[0] == f.systemID {
		f.prevSystemID = f.systemID
		if len(route) > 1 {
			f.nextSystemID = route[1]
		} else {
			f.nextSystemID = InvalidID
		}
		return
	}
	f.nextSystemID = route[0]
}

func (f *Fleet) FinalDestinationID() int {
	if len(f.route) == 0 {
		return InvalidID
	}
	return f.route[len(f.route)-1]
}

func (f *Fleet) NextSystemID() int { return f.nextSystemID }
func (f *Fleet) PrevSystemID() int { return f.prevSystemID }

// SetNextAndPreviousSystems pins the waypoints directly, bypassing route
// derivation.
func (f *Fleet) SetNextAndPreviousSystems(next, prev int) {
	f.nextSystemID = next
	f.prevSystemID = prev
}

// ClearRoute drops the route and waypoints, used when a fleet is relocated
// by an external force rather than by travel.
func (f *Fleet) ClearRoute() {
	f.route = nil
	f.nextSystemID = InvalidID
	f.prevSystemID = InvalidID
}

// Speed is the slowest ship's speed, the pace the whole fleet moves at. An
// empty fleet has speed zero.
func (f *Fleet) Speed(u *Universe) float64 {
	slowest := 0.0
	first := true
	for id := range f.shipIDs {
		ship := GetShip(u, id)
		if ship == nil {
			continue
		}
		s := ship.Speed()
		if first || s < slowest {
			slowest = s
			first = false
		}
	}
	if first {
		return 0
	}
	return slowest
}

// ETA estimates turns to the final destination. ETANever is returned when
// the fleet cannot move, ETAOutOfRange when no route exists.
func (f *Fleet) ETA(u *Universe, routeLength float64) int {
	if len(f.route) == 0 {
		return ETAOutOfRange
	}
	speed := f.Speed(u)
	if speed <= 0 {
		return ETANever
	}
	turns := int(routeLength / speed)
	if float64(turns)*speed < routeLength {
		turns++
	}
	if turns < 1 {
		turns = 1
	}
	return turns
}

func sortedIDs(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
