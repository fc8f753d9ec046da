package universe

import "sort"

// Universe is the arena holding every live game object plus the ship design
// table and destruction ledger. It is not safe for concurrent mutation; a
// single goroutine owns it during effect execution.
type Universe struct {
	objects map[int]Object
	nextID  int

	designs      map[int]*ShipDesign
	nextDesignID int

	// designKnowledge records which empires know which ship designs.
	designKnowledge map[int]map[int]struct{}

	// destroyed maps a destroyed object id to the id of the object whose
	// effect destroyed it, or InvalidID.
	destroyed map[int]int

	visibility           map[visKey]VisibilityLevel
	pendingVisDirectives []VisibilityDirective
}

func New() *Universe {
	return &Universe{
		objects:         make(map[int]Object),
		designs:         make(map[int]*ShipDesign),
		designKnowledge: make(map[int]map[int]struct{}),
		destroyed:       make(map[int]int),
		visibility:      make(map[visKey]VisibilityLevel),
	}
}

// Insert assigns the object a fresh id and stores it.
func (u *Universe) Insert(o Object) int {
	id := u.nextID
	u.nextID++
	o.SetID(id)
	u.objects[id] = o
	return id
}

// Object returns the live object with the given id, or nil.
func (u *Universe) Object(id int) Object {
	if u == nil {
		return nil
	}
	return u.objects[id]
}

// Count reports the number of live objects.
func (u *Universe) Count() int { return len(u.objects) }

// IDs returns every live object id in ascending order.
func (u *Universe) IDs() []int {
	out := make([]int, 0, len(u.objects))
	for id := range u.objects {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Get fetches the object with the given id as a concrete type, returning nil
// when the id is absent or the kind does not match.
func Get[T Object](u *Universe, id int) T {
	var zero T
	if u == nil {
		return zero
	}
	o, ok := u.objects[id]
	if !ok {
		return zero
	}
	t, ok := o.(T)
	if !ok {
		return zero
	}
	return t
}

// All returns every live object of the concrete type in ascending id order.
func All[T Object](u *Universe) []T {
	var out []T
	for _, id := range u.IDs() {
		if t, ok := u.objects[id].(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// Objects returns every live object in ascending id order.
func (u *Universe) Objects() []Object {
	out := make([]Object, 0, len(u.objects))
	for _, id := range u.IDs() {
		out = append(out, u.objects[id])
	}
	return out
}

// Convenience lookups for the common kinds.
func GetPlanet(u *Universe, id int) *Planet     { return Get[*Planet](u, id) }
func GetShip(u *Universe, id int) *Ship         { return Get[*Ship](u, id) }
func GetFleet(u *Universe, id int) *Fleet       { return Get[*Fleet](u, id) }
func GetSystem(u *Universe, id int) *System     { return Get[*System](u, id) }
func GetField(u *Universe, id int) *Field       { return Get[*Field](u, id) }
func GetBuilding(u *Universe, id int) *Building { return Get[*Building](u, id) }

// Destroy removes an object and everything it transitively contains,
// recording destroyedByID as the provenance for each removed object.
// It reports the ids actually removed.
func (u *Universe) Destroy(id, destroyedByID int) []int {
	o, ok := u.objects[id]
	if !ok {
		return nil
	}
	var removed []int
	// Detach from whatever contains it first so containers never hold a
	// dangling id.
	if sys := GetSystem(u, o.SystemID()); sys != nil && sys.id != id {
		sys.Remove(o)
	}
	switch t := o.(type) {
	case *Ship:
		if fl := GetFleet(u, t.FleetID()); fl != nil {
			fl.RemoveShip(id)
		}
	case *Building:
		if pl := GetPlanet(u, t.PlanetID()); pl != nil {
			pl.RemoveBuilding(id)
		}
	case *Fleet:
		for _, sid := range t.ShipIDs() {
			removed = append(removed, u.Destroy(sid, destroyedByID)...)
		}
	case *Planet:
		for _, bid := range t.BuildingIDs() {
			removed = append(removed, u.Destroy(bid, destroyedByID)...)
		}
	case *System:
		for _, oid := range t.ObjectIDs() {
			removed = append(removed, u.Destroy(oid, destroyedByID)...)
		}
		for _, other := range t.StarlaneIDs() {
			if os := GetSystem(u, other); os != nil {
				os.removeStarlane(id)
			}
		}
	}
	delete(u.objects, id)
	u.destroyed[id] = destroyedByID
	return append(removed, id)
}

// DestroyedBy reports the provenance of a destroyed object id. The second
// return is false for ids never destroyed.
func (u *Universe) DestroyedBy(id int) (int, bool) {
	by, ok := u.destroyed[id]
	return by, ok
}

// AddStarlane connects two systems bidirectionally. Self-lanes are ignored.
func (u *Universe) AddStarlane(a, b int) {
	if a == b {
		return
	}
	sa := GetSystem(u, a)
	sb := GetSystem(u, b)
	if sa == nil || sb == nil {
		return
	}
	sa.addStarlane(b)
	sb.addStarlane(a)
}

// RemoveStarlane disconnects two systems on both ends.
func (u *Universe) RemoveStarlane(a, b int) {
	if sa := GetSystem(u, a); sa != nil {
		sa.removeStarlane(b)
	}
	if sb := GetSystem(u, b); sb != nil {
		sb.removeStarlane(a)
	}
}

// AddDesign registers a ship design and returns its assigned id.
func (u *Universe) AddDesign(d *ShipDesign) int {
	d.ID = u.nextDesignID
	u.nextDesignID++
	u.designs[d.ID] = d
	return d.ID
}

func (u *Universe) Design(id int) *ShipDesign {
	if u == nil {
		return nil
	}
	return u.designs[id]
}

// DesignByName resolves a design by name, preferring the lowest id when
// names collide.
func (u *Universe) DesignByName(name string) *ShipDesign {
	var found *ShipDesign
	for _, d := range u.designs {
		if d.Name != name {
			continue
		}
		if found == nil || d.ID < found.ID {
			found = d
		}
	}
	return found
}

// SetEmpireKnowledgeOfShipDesign records that an empire knows a design.
func (u *Universe) SetEmpireKnowledgeOfShipDesign(designID, empireID int) {
	if empireID == InvalidID {
		return
	}
	if _, ok := u.designs[designID]; !ok {
		return
	}
	known, ok := u.designKnowledge[empireID]
	if !ok {
		known = make(map[int]struct{})
		u.designKnowledge[empireID] = known
	}
	known[designID] = struct{}{}
}

// EmpireKnowsDesign reports whether an empire knows a design.
func (u *Universe) EmpireKnowsDesign(empireID, designID int) bool {
	known, ok := u.designKnowledge[empireID]
	if !ok {
		return false
	}
	_, ok = known[designID]
	return ok
}

// ShipIsArmed reports whether the ship's design mounts weapons.
func (u *Universe) ShipIsArmed(s *Ship) bool {
	if s == nil {
		return false
	}
	return u.Design(s.DesignID()).IsArmed()
}
