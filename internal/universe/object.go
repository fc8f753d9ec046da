// Package universe is the object arena for a game state: planets, ships,
// fleets, systems, fields and buildings, each addressed by an integer id.
// Containment between objects is modeled with id sets on the container, and
// every insert or remove goes through a single authoritative method pair so
// the two sides can never disagree.
package universe

import "sort"

// Kind identifies the concrete type of a game object.
type Kind int

const (
	KindInvalid Kind = iota
	KindPlanet
	KindShip
	KindFleet
	KindSystem
	KindField
	KindBuilding
)

func (k Kind) String() string {
	switch k {
	case KindPlanet:
		return "planet"
	case KindShip:
		return "ship"
	case KindFleet:
		return "fleet"
	case KindSystem:
		return "system"
	case KindField:
		return "field"
	case KindBuilding:
		return "building"
	}
	return "invalid"
}

// InvalidID marks an absent object or empire reference.
const InvalidID = -1

// Special is a named tag attached to an object, carrying the turn it was
// added and a scalar capacity.
type Special struct {
	AddedTurn int
	Capacity  float64
}

// Object is the behavior shared by everything stored in the arena.
// Kind-specific capabilities (orbits, routes, part meters) live on the
// concrete types and are reached by type switch or assertion.
type Object interface {
	ID() int
	SetID(id int)
	Kind() Kind
	Name() string
	Rename(name string)

	Owner() int
	SetOwner(empireID int)
	Unowned() bool

	X() float64
	Y() float64
	MoveTo(x, y float64)

	SystemID() int
	SetSystemID(id int)

	// Meter returns the meter of the given type, or nil when this object
	// does not carry it.
	Meter(mt MeterType) *Meter

	Specials() map[string]Special
	HasSpecial(name string) bool
	SetSpecialCapacity(name string, capacity float64, turn int)
	RemoveSpecial(name string)
}

// base carries the state common to all object kinds and is embedded by each
// concrete type.
type base struct {
	id       int
	name     string
	owner    int
	x, y     float64
	systemID int
	meters   map[MeterType]*Meter
	specials map[string]Special
}

func newBase(name string) base {
	return base{
		id:       InvalidID,
		name:     name,
		owner:    InvalidID,
		systemID: InvalidID,
		meters:   make(map[MeterType]*Meter),
		specials: make(map[string]Special),
	}
}

func (b *base) ID() int               { return b.id }
func (b *base) SetID(id int)          { b.id = id }
func (b *base) Name() string          { return b.name }
func (b *base) Rename(name string)    { b.name = name }
func (b *base) Owner() int            { return b.owner }
func (b *base) SetOwner(empireID int) { b.owner = empireID }
func (b *base) Unowned() bool         { return b.owner == InvalidID }
func (b *base) X() float64            { return b.x }
func (b *base) Y() float64            { return b.y }
func (b *base) MoveTo(x, y float64)   { b.x, b.y = x, y }
func (b *base) SystemID() int         { return b.systemID }
func (b *base) SetSystemID(id int)    { b.systemID = id }

func (b *base) Meter(mt MeterType) *Meter { return b.meters[mt] }

// addMeter installs a zero-valued meter if one is not already present and
// returns it.
func (b *base) addMeter(mt MeterType) *Meter {
	if m, ok := b.meters[mt]; ok {
		return m
	}
	m := NewMeter(0)
	b.meters[mt] = m
	return m
}

func (b *base) Specials() map[string]Special { return b.specials }

func (b *base) HasSpecial(name string) bool {
	_, ok := b.specials[name]
	return ok
}

// SetSpecialCapacity adds the special if absent, preserving the original
// AddedTurn when it already exists.
func (b *base) SetSpecialCapacity(name string, capacity float64, turn int) {
	sp, ok := b.specials[name]
	if !ok {
		sp = Special{AddedTurn: turn}
	}
	sp.Capacity = capacity
	b.specials[name] = sp
}

func (b *base) RemoveSpecial(name string) {
	delete(b.specials, name)
}

// MeterTypes reports the meter types present on the object in sorted order.
func MeterTypes(o Object) []MeterType {
	type metered interface {
		meterMap() map[MeterType]*Meter
	}
	m, ok := o.(metered)
	if !ok {
		return nil
	}
	out := make([]MeterType, 0, len(m.meterMap()))
	for mt := range m.meterMap() {
		out = append(out, mt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (b *base) meterMap() map[MeterType]*Meter { return b.meters }

// BackPropagateMeters commits every current meter value on the object as
// the next baseline.
func BackPropagateMeters(o Object) {
	type metered interface {
		meterMap() map[MeterType]*Meter
	}
	m, ok := o.(metered)
	if !ok {
		return
	}
	for _, meter := range m.meterMap() {
		meter.BackPropagate()
	}
}
