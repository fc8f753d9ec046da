package universe

import "fmt"

// PlanetType is the environment class of a planet body.
type PlanetType int

const (
	PlanetTypeInvalid PlanetType = iota - 1
	PlanetTypeSwamp
	PlanetTypeToxic
	PlanetTypeInferno
	PlanetTypeRadiated
	PlanetTypeBarren
	PlanetTypeTundra
	PlanetTypeDesert
	PlanetTypeTerran
	PlanetTypeOcean
	PlanetTypeAsteroids
	PlanetTypeGasGiant
)

var planetTypeNames = map[PlanetType]string{
	PlanetTypeSwamp:     "Swamp",
	PlanetTypeToxic:     "Toxic",
	PlanetTypeInferno:   "Inferno",
	PlanetTypeRadiated:  "Radiated",
	PlanetTypeBarren:    "Barren",
	PlanetTypeTundra:    "Tundra",
	PlanetTypeDesert:    "Desert",
	PlanetTypeTerran:    "Terran",
	PlanetTypeOcean:     "Ocean",
	PlanetTypeAsteroids: "Asteroids",
	PlanetTypeGasGiant:  "GasGiant",
}

func (pt PlanetType) String() string {
	if name, ok := planetTypeNames[pt]; ok {
		return name
	}
	return fmt.Sprintf("PlanetType(%d)", int(pt))
}

func PlanetTypeByName(name string) (PlanetType, bool) {
	for pt, n := range planetTypeNames {
		if n == name {
			return pt, true
		}
	}
	return PlanetTypeInvalid, false
}

// PlanetSize is the size class of a planet body.
type PlanetSize int

const (
	PlanetSizeInvalid PlanetSize = iota - 1
	PlanetSizeNone
	PlanetSizeTiny
	PlanetSizeSmall
	PlanetSizeMedium
	PlanetSizeLarge
	PlanetSizeHuge
	PlanetSizeAsteroids
	PlanetSizeGasGiant
)

var planetSizeNames = map[PlanetSize]string{
	PlanetSizeNone:      "None",
	PlanetSizeTiny:      "Tiny",
	PlanetSizeSmall:     "Small",
	PlanetSizeMedium:    "Medium",
	PlanetSizeLarge:     "Large",
	PlanetSizeHuge:      "Huge",
	PlanetSizeAsteroids: "Asteroids",
	PlanetSizeGasGiant:  "GasGiant",
}

func (ps PlanetSize) String() string {
	if name, ok := planetSizeNames[ps]; ok {
		return name
	}
	return fmt.Sprintf("PlanetSize(%d)", int(ps))
}

func PlanetSizeByName(name string) (PlanetSize, bool) {
	for ps, n := range planetSizeNames {
		if n == name {
			return ps, true
		}
	}
	return PlanetSizeInvalid, false
}

// Planet is a colonizable body inside a system.
type Planet struct {
	base
	planetType  PlanetType
	size        PlanetSize
	species     string
	focus       string
	texture     string
	buildingIDs map[int]struct{}
}

func NewPlanet(name string, pt PlanetType, size PlanetSize) *Planet {
	p := &Planet{
		base:        newBase(name),
		planetType:  pt,
		size:        size,
		buildingIDs: make(map[int]struct{}),
	}
	for _, mt := range []MeterType{
		MeterPopulation, MeterTargetPopulation,
		MeterIndustry, MeterTargetIndustry,
		MeterResearch, MeterTargetResearch,
		MeterConstruction, MeterTargetConstruction,
		MeterHappiness, MeterTargetHappiness,
		MeterShield, MeterMaxShield,
		MeterDefense, MeterMaxDefense,
		MeterTroops, MeterMaxTroops,
		MeterSupply, MeterMaxSupply,
		MeterStealth, MeterDetection,
	} {
		p.addMeter(mt)
	}
	return p
}

func (p *Planet) Kind() Kind { return KindPlanet }

func (p *Planet) PlanetType() PlanetType { return p.planetType }
func (p *Planet) Size() PlanetSize       { return p.size }

// SetPlanetType changes the environment class and keeps the size class
// consistent with it. Asteroids and gas giants force their matching size;
// leaving either of those types repairs a degenerate size to the nearest
// ordinary class.
func (p *Planet) SetPlanetType(pt PlanetType) {
	p.planetType = pt
	switch pt {
	case PlanetTypeAsteroids:
		p.size = PlanetSizeAsteroids
	case PlanetTypeGasGiant:
		p.size = PlanetSizeGasGiant
	default:
		switch p.size {
		case PlanetSizeAsteroids:
			p.size = PlanetSizeTiny
		case PlanetSizeGasGiant:
			p.size = PlanetSizeHuge
		}
	}
}

// SetSize changes the size class and keeps the environment class consistent
// with it, mirroring SetPlanetType.
func (p *Planet) SetSize(ps PlanetSize) {
	p.size = ps
	switch ps {
	case PlanetSizeAsteroids:
		p.planetType = PlanetTypeAsteroids
	case PlanetSizeGasGiant:
		p.planetType = PlanetTypeGasGiant
	default:
		switch p.planetType {
		case PlanetTypeAsteroids, PlanetTypeGasGiant:
			p.planetType = PlanetTypeBarren
		}
	}
}

func (p *Planet) Species() string { return p.species }

func (p *Planet) SetSpecies(name string) { p.species = name }

func (p *Planet) Focus() string         { return p.focus }
func (p *Planet) SetFocus(focus string) { p.focus = focus }

func (p *Planet) Texture() string           { return p.texture }
func (p *Planet) SetTexture(texture string) { p.texture = texture }

func (p *Planet) BuildingIDs() []int { return sortedIDs(p.buildingIDs) }

func (p *Planet) AddBuilding(id int) { p.buildingIDs[id] = struct{}{} }

func (p *Planet) RemoveBuilding(id int) { delete(p.buildingIDs, id) }

func (p *Planet) HasBuilding(id int) bool {
	_, ok := p.buildingIDs[id]
	return ok
}
