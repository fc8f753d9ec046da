package universe

// Building is a structure sited on a planet.
type Building struct {
	base
	buildingType string
	planetID     int
}

func NewBuilding(name, buildingType string) *Building {
	b := &Building{
		base:         newBase(name),
		buildingType: buildingType,
		planetID:     InvalidID,
	}
	b.addMeter(MeterStealth)
	return b
}

func (b *Building) Kind() Kind { return KindBuilding }

func (b *Building) BuildingType() string { return b.buildingType }

func (b *Building) PlanetID() int      { return b.planetID }
func (b *Building) SetPlanetID(id int) { b.planetID = id }
