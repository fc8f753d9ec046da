package universe

import "fmt"

// StarType is the star class of a system.
type StarType int

const (
	StarTypeInvalid StarType = iota - 1
	StarTypeBlue
	StarTypeWhite
	StarTypeYellow
	StarTypeOrange
	StarTypeRed
	StarTypeNeutron
	StarTypeBlackHole
	StarTypeNoStar
)

var starTypeNames = map[StarType]string{
	StarTypeBlue:      "Blue",
	StarTypeWhite:     "White",
	StarTypeYellow:    "Yellow",
	StarTypeOrange:    "Orange",
	StarTypeRed:       "Red",
	StarTypeNeutron:   "Neutron",
	StarTypeBlackHole: "BlackHole",
	StarTypeNoStar:    "NoStar",
}

func (st StarType) String() string {
	if name, ok := starTypeNames[st]; ok {
		return name
	}
	return fmt.Sprintf("StarType(%d)", int(st))
}

func StarTypeByName(name string) (StarType, bool) {
	for st, n := range starTypeNames {
		if n == name {
			return st, true
		}
	}
	return StarTypeInvalid, false
}

// DefaultOrbits is the orbit ring count of a newly created system.
const DefaultOrbits = 8

// System is a star system: a location that contains other objects, anchors
// planets in orbit rings, and connects to other systems by starlanes.
type System struct {
	base
	star           StarType
	objectIDs      map[int]struct{}
	orbits         []int // orbit index -> planet id or InvalidID
	starlanes      map[int]struct{}
	overlayTexture string
	overlaySize    float64
}

func NewSystem(name string, star StarType) *System {
	s := &System{
		base:      newBase(name),
		star:      star,
		objectIDs: make(map[int]struct{}),
		orbits:    make([]int, DefaultOrbits),
		starlanes: make(map[int]struct{}),
	}
	for i := range s.orbits {
		s.orbits[i] = InvalidID
	}
	s.addMeter(MeterStealth)
	return s
}

func (s *System) Kind() Kind { return KindSystem }

// A system is its own location.
func (s *System) SystemID() int { return s.id }

func (s *System) Star() StarType        { return s.star }
func (s *System) SetStar(st StarType)   { s.star = st }

func (s *System) ObjectIDs() []int { return sortedIDs(s.objectIDs) }

func (s *System) Contains(id int) bool {
	_, ok := s.objectIDs[id]
	return ok
}

// Insert places an object into the system, assigning planets the first free
// orbit. It reports false when a planet cannot be placed because every orbit
// is taken. Insert is the only way objects enter a system.
func (s *System) Insert(o Object) bool {
	if p, ok := o.(*Planet); ok {
		orbit := s.FreeOrbit()
		if orbit == InvalidID {
			return false
		}
		s.orbits[orbit] = p.ID()
	}
	s.objectIDs[o.ID()] = struct{}{}
	o.SetSystemID(s.id)
	o.MoveTo(s.x, s.y)
	return true
}

// Remove detaches the object with the given id, clearing any orbit it held.
// Remove is the only way objects leave a system.
func (s *System) Remove(o Object) {
	delete(s.objectIDs, o.ID())
	for i, pid := range s.orbits {
		if pid == o.ID() {
			s.orbits[i] = InvalidID
		}
	}
	if o.SystemID() == s.id {
		o.SetSystemID(InvalidID)
	}
}

// FreeOrbit returns the lowest unoccupied orbit index, or InvalidID when the
// system is full.
func (s *System) FreeOrbit() int {
	for i, pid := range s.orbits {
		if pid == InvalidID {
			return i
		}
	}
	return InvalidID
}

func (s *System) HasFreeOrbit() bool { return s.FreeOrbit() != InvalidID }

// OrbitOf reports the orbit index holding the given planet id, or InvalidID.
func (s *System) OrbitOf(planetID int) int {
	for i, pid := range s.orbits {
		if pid == planetID {
			return i
		}
	}
	return InvalidID
}

func (s *System) StarlaneIDs() []int { return sortedIDs(s.starlanes) }

func (s *System) HasStarlaneTo(id int) bool {
	_, ok := s.starlanes[id]
	return ok
}

func (s *System) addStarlane(id int)    { s.starlanes[id] = struct{}{} }
func (s *System) removeStarlane(id int) { delete(s.starlanes, id) }

func (s *System) OverlayTexture() (string, float64) { return s.overlayTexture, s.overlaySize }

func (s *System) SetOverlayTexture(texture string, size float64) {
	s.overlayTexture = texture
	s.overlaySize = size
}
