package universe

// ShipDesign describes the hull and parts a ship is built from. Designs are
// registered on the universe and referenced by id.
type ShipDesign struct {
	ID    int
	Name  string
	Hull  string
	Parts []string
	// Attack is the summed weapon strength of the design's parts.
	Attack float64
	Speed  float64
}

// IsArmed reports whether the design mounts any weapon.
func (d *ShipDesign) IsArmed() bool {
	return d != nil && d.Attack > 0
}

// partMeterKey addresses a per-part meter on a ship.
type partMeterKey struct {
	meterType MeterType
	partName  string
}

// Ship is a single vessel. Ships always belong to exactly one fleet.
type Ship struct {
	base
	designID   int
	fleetID    int
	species    string
	partMeters map[partMeterKey]*Meter
}

func NewShip(name string, designID int) *Ship {
	s := &Ship{
		base:       newBase(name),
		designID:   designID,
		fleetID:    InvalidID,
		partMeters: make(map[partMeterKey]*Meter),
	}
	for _, mt := range []MeterType{
		MeterFuel, MeterMaxFuel,
		MeterShield, MeterMaxShield,
		MeterStructure, MeterMaxStructure,
		MeterTroops, MeterMaxTroops,
		MeterStealth, MeterDetection, MeterSpeed,
	} {
		s.addMeter(mt)
	}
	return s
}

func (s *Ship) Kind() Kind { return KindShip }

func (s *Ship) DesignID() int      { return s.designID }
func (s *Ship) FleetID() int       { return s.fleetID }
func (s *Ship) SetFleetID(id int)  { s.fleetID = id }
func (s *Ship) Species() string    { return s.species }
func (s *Ship) SetSpecies(n string) { s.species = n }

// PartMeter returns the meter of the given type for the named part, creating
// it on first access so part meters spring into existence when content
// scripts first touch them.
func (s *Ship) PartMeter(mt MeterType, partName string) *Meter {
	key := partMeterKey{meterType: mt, partName: partName}
	if m, ok := s.partMeters[key]; ok {
		return m
	}
	m := NewMeter(0)
	s.partMeters[key] = m
	return m
}

// Speed reports the ship's current speed meter value.
func (s *Ship) Speed() float64 {
	if m := s.Meter(MeterSpeed); m != nil {
		return m.Current()
	}
	return 0
}

// InitMetersFromDesign seeds max meters from the design and fills the
// current meters to match, then commits the values as the turn baseline.
func (s *Ship) InitMetersFromDesign(d *ShipDesign) {
	if d == nil {
		return
	}
	s.Meter(MeterSpeed).SetCurrent(d.Speed)
	for _, mt := range []MeterType{MeterMaxFuel, MeterMaxShield, MeterMaxStructure, MeterMaxTroops} {
		max := s.Meter(mt)
		if cur := s.Meter(mt.AssociatedMeterType()); cur != nil {
			cur.SetCurrent(max.Current())
		}
	}
	BackPropagateMeters(s)
}
