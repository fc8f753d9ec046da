// Package scenario loads game states from YAML documents: star systems with
// their contents, ship designs, species, empires and diplomacy, plus the
// content registry entries effects resolve against.
package scenario

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"stardrift/engine/internal/content"
	"stardrift/engine/internal/empire"
	"stardrift/engine/internal/species"
	"stardrift/engine/internal/universe"
)

// Document is the root of a scenario file.
type Document struct {
	Name      string         `yaml:"name" json:"name" jsonschema:"title=Scenario name"`
	Turn      int            `yaml:"turn,omitempty" json:"turn,omitempty"`
	Systems   []SystemDoc    `yaml:"systems" json:"systems"`
	Lanes     []LaneDoc      `yaml:"lanes,omitempty" json:"lanes,omitempty"`
	Designs   []DesignDoc    `yaml:"designs,omitempty" json:"designs,omitempty"`
	Species   []SpeciesDoc   `yaml:"species,omitempty" json:"species,omitempty"`
	Empires   []EmpireDoc    `yaml:"empires,omitempty" json:"empires,omitempty"`
	Diplomacy []DiplomacyDoc `yaml:"diplomacy,omitempty" json:"diplomacy,omitempty"`
	Techs     []TechDoc      `yaml:"techs,omitempty" json:"techs,omitempty"`
	Buildings []TypeDoc      `yaml:"building_types,omitempty" json:"building_types,omitempty"`
	Fields    []TypeDoc      `yaml:"field_types,omitempty" json:"field_types,omitempty"`
}

type SystemDoc struct {
	Name    string      `yaml:"name" json:"name"`
	Star    string      `yaml:"star,omitempty" json:"star,omitempty" jsonschema:"enum=Blue,enum=White,enum=Yellow,enum=Orange,enum=Red,enum=Neutron,enum=BlackHole,enum=NoStar"`
	X       float64     `yaml:"x" json:"x"`
	Y       float64     `yaml:"y" json:"y"`
	Planets []PlanetDoc `yaml:"planets,omitempty" json:"planets,omitempty"`
	Fleets  []FleetDoc  `yaml:"fleets,omitempty" json:"fleets,omitempty"`
	Fields  []FieldDoc  `yaml:"fields,omitempty" json:"fields,omitempty"`
}

type PlanetDoc struct {
	Name      string        `yaml:"name" json:"name"`
	Type      string        `yaml:"type" json:"type"`
	Size      string        `yaml:"size" json:"size"`
	Owner     string        `yaml:"owner,omitempty" json:"owner,omitempty"`
	Species   string        `yaml:"species,omitempty" json:"species,omitempty"`
	Focus     string        `yaml:"focus,omitempty" json:"focus,omitempty"`
	Capital   bool          `yaml:"capital,omitempty" json:"capital,omitempty"`
	Buildings []BuildingDoc `yaml:"buildings,omitempty" json:"buildings,omitempty"`
	Meters    map[string]float64 `yaml:"meters,omitempty" json:"meters,omitempty"`
}

type BuildingDoc struct {
	Type string `yaml:"type" json:"type"`
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
}

type FleetDoc struct {
	Name       string    `yaml:"name" json:"name"`
	Owner      string    `yaml:"owner,omitempty" json:"owner,omitempty"`
	Aggression string    `yaml:"aggression,omitempty" json:"aggression,omitempty" jsonschema:"enum=Passive,enum=Defensive,enum=Obstructive,enum=Aggressive"`
	Ships      []ShipDoc `yaml:"ships" json:"ships"`
}

type ShipDoc struct {
	Name    string `yaml:"name,omitempty" json:"name,omitempty"`
	Design  string `yaml:"design" json:"design"`
	Species string `yaml:"species,omitempty" json:"species,omitempty"`
}

type FieldDoc struct {
	Type string  `yaml:"type" json:"type"`
	Size float64 `yaml:"size,omitempty" json:"size,omitempty"`
}

type LaneDoc struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

type DesignDoc struct {
	Name   string   `yaml:"name" json:"name"`
	Hull   string   `yaml:"hull,omitempty" json:"hull,omitempty"`
	Parts  []string `yaml:"parts,omitempty" json:"parts,omitempty"`
	Attack float64  `yaml:"attack,omitempty" json:"attack,omitempty"`
	Speed  float64  `yaml:"speed,omitempty" json:"speed,omitempty"`
}

type SpeciesDoc struct {
	Name         string   `yaml:"name" json:"name"`
	DefaultFocus string   `yaml:"default_focus,omitempty" json:"default_focus,omitempty"`
	Foci         []string `yaml:"foci,omitempty" json:"foci,omitempty"`
}

type EmpireDoc struct {
	ID   int    `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

type DiplomacyDoc struct {
	A      string `yaml:"a" json:"a"`
	B      string `yaml:"b" json:"b"`
	Status string `yaml:"status" json:"status" jsonschema:"enum=War,enum=Peace,enum=Allied"`
}

type TechDoc struct {
	Name     string  `yaml:"name" json:"name"`
	Category string  `yaml:"category,omitempty" json:"category,omitempty"`
	Cost     float64 `yaml:"cost,omitempty" json:"cost,omitempty"`
}

type TypeDoc struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// State is a fully assembled game state.
type State struct {
	Name     string
	Turn     int
	Universe *universe.Universe
	Empires  *empire.Manager
	Species  *species.Manager
	Content  *content.Registry
}

// LoadFile reads and builds a scenario from a YAML file.
func LoadFile(path string) (*State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads and builds a scenario from YAML.
func Load(r io.Reader) (*State, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return Build(&doc)
}

// Build assembles a game state from a decoded document.
func Build(doc *Document) (*State, error) {
	st := &State{
		Name:     doc.Name,
		Turn:     doc.Turn,
		Universe: universe.New(),
		Empires:  empire.NewManager(),
		Species:  species.NewManager(),
		Content:  content.NewRegistry(),
	}
	if st.Turn < 1 {
		st.Turn = 1
	}

	for _, t := range doc.Techs {
		st.Content.AddTech(content.Tech{Name: t.Name, Category: t.Category, ResearchCost: t.Cost})
	}
	for _, b := range doc.Buildings {
		st.Content.AddBuildingType(content.BuildingType{Name: b.Name, Description: b.Description})
	}
	for _, f := range doc.Fields {
		st.Content.AddFieldType(content.FieldType{Name: f.Name, Description: f.Description})
	}
	for _, s := range doc.Species {
		st.Species.Add(species.Species{Name: s.Name, DefaultFocus: s.DefaultFocus, Foci: s.Foci})
	}

	empiresByName := make(map[string]*empire.Empire)
	for _, e := range doc.Empires {
		emp := empire.New(e.ID, e.Name)
		st.Empires.Add(emp)
		empiresByName[e.Name] = emp
	}
	for _, d := range doc.Diplomacy {
		a, okA := empiresByName[d.A]
		b, okB := empiresByName[d.B]
		if !okA || !okB {
			return nil, fmt.Errorf("diplomacy names unknown empire: %s / %s", d.A, d.B)
		}
		status, err := parseStatus(d.Status)
		if err != nil {
			return nil, err
		}
		st.Empires.SetStatus(a.ID(), b.ID(), status)
	}

	designsByName := make(map[string]*universe.ShipDesign)
	for _, d := range doc.Designs {
		design := &universe.ShipDesign{Name: d.Name, Hull: d.Hull, Parts: d.Parts, Attack: d.Attack, Speed: d.Speed}
		st.Universe.AddDesign(design)
		designsByName[d.Name] = design
	}

	ownerID := func(name string) (int, error) {
		if name == "" {
			return universe.InvalidID, nil
		}
		emp, ok := empiresByName[name]
		if !ok {
			return universe.InvalidID, fmt.Errorf("unknown empire %q", name)
		}
		return emp.ID(), nil
	}

	systemsByName := make(map[string]*universe.System)
	for _, sd := range doc.Systems {
		star := universe.StarTypeYellow
		if sd.Star != "" {
			var ok bool
			star, ok = universe.StarTypeByName(sd.Star)
			if !ok {
				return nil, fmt.Errorf("system %q: unknown star type %q", sd.Name, sd.Star)
			}
		}
		sys := universe.NewSystem(sd.Name, star)
		st.Universe.Insert(sys)
		sys.MoveTo(sd.X, sd.Y)
		if _, dup := systemsByName[sd.Name]; dup {
			return nil, fmt.Errorf("duplicate system name %q", sd.Name)
		}
		systemsByName[sd.Name] = sys

		for _, pd := range sd.Planets {
			if err := buildPlanet(st, sys, pd, ownerID, empiresByName); err != nil {
				return nil, err
			}
		}
		for _, fd := range sd.Fleets {
			if err := buildFleet(st, sys, fd, ownerID, designsByName); err != nil {
				return nil, err
			}
		}
		for _, fd := range sd.Fields {
			size := fd.Size
			if size <= 0 {
				size = 10
			}
			field := universe.NewField(fd.Type, fd.Type, size)
			st.Universe.Insert(field)
			sys.Insert(field)
		}
	}

	for _, lane := range doc.Lanes {
		from, okF := systemsByName[lane.From]
		to, okT := systemsByName[lane.To]
		if !okF || !okT {
			return nil, fmt.Errorf("lane references unknown system: %s - %s", lane.From, lane.To)
		}
		st.Universe.AddStarlane(from.ID(), to.ID())
	}
	return st, nil
}

func buildPlanet(st *State, sys *universe.System, pd PlanetDoc, ownerID func(string) (int, error), empires map[string]*empire.Empire) error {
	pt, ok := universe.PlanetTypeByName(pd.Type)
	if !ok {
		return fmt.Errorf("planet %q: unknown type %q", pd.Name, pd.Type)
	}
	ps, ok := universe.PlanetSizeByName(pd.Size)
	if !ok {
		return fmt.Errorf("planet %q: unknown size %q", pd.Name, pd.Size)
	}
	planet := universe.NewPlanet(pd.Name, pt, ps)
	st.Universe.Insert(planet)
	if !sys.Insert(planet) {
		return fmt.Errorf("planet %q: system %q has no free orbit", pd.Name, sys.Name())
	}
	owner, err := ownerID(pd.Owner)
	if err != nil {
		return fmt.Errorf("planet %q: %w", pd.Name, err)
	}
	planet.SetOwner(owner)
	planet.SetSpecies(pd.Species)
	planet.SetFocus(pd.Focus)
	for name, v := range pd.Meters {
		mt, ok := universe.MeterTypeByName(name)
		if !ok {
			return fmt.Errorf("planet %q: unknown meter %q", pd.Name, name)
		}
		m := planet.Meter(mt)
		if m == nil {
			return fmt.Errorf("planet %q: meter %q not carried by planets", pd.Name, name)
		}
		m.SetCurrent(v)
		m.BackPropagate()
	}
	if pd.Capital {
		if emp, ok := empires[pd.Owner]; ok {
			emp.SetCapitalID(planet.ID())
		}
	}
	for _, bd := range pd.Buildings {
		name := bd.Name
		if name == "" {
			name = bd.Type
		}
		building := universe.NewBuilding(name, bd.Type)
		st.Universe.Insert(building)
		building.SetPlanetID(planet.ID())
		building.SetOwner(planet.Owner())
		planet.AddBuilding(building.ID())
		sys.Insert(building)
	}
	return nil
}

func buildFleet(st *State, sys *universe.System, fd FleetDoc, ownerID func(string) (int, error), designs map[string]*universe.ShipDesign) error {
	fleet := universe.NewFleet(fd.Name)
	st.Universe.Insert(fleet)
	sys.Insert(fleet)
	owner, err := ownerID(fd.Owner)
	if err != nil {
		return fmt.Errorf("fleet %q: %w", fd.Name, err)
	}
	fleet.SetOwner(owner)
	if fd.Aggression != "" {
		aggr, err := parseAggression(fd.Aggression)
		if err != nil {
			return fmt.Errorf("fleet %q: %w", fd.Name, err)
		}
		fleet.SetAggression(aggr)
	}
	for _, sd := range fd.Ships {
		design, ok := designs[sd.Design]
		if !ok {
			return fmt.Errorf("fleet %q: unknown design %q", fd.Name, sd.Design)
		}
		name := sd.Name
		if name == "" {
			name = design.Name
		}
		ship := universe.NewShip(name, design.ID)
		st.Universe.Insert(ship)
		ship.SetOwner(owner)
		ship.SetSpecies(sd.Species)
		sys.Insert(ship)
		ship.InitMetersFromDesign(design)
		fleet.AddShip(ship.ID())
		ship.SetFleetID(fleet.ID())
		if owner != universe.InvalidID {
			st.Universe.SetEmpireKnowledgeOfShipDesign(design.ID, owner)
		}
	}
	return nil
}

func parseStatus(s string) (empire.DiplomaticStatus, error) {
	switch s {
	case "War":
		return empire.StatusWar, nil
	case "Peace", "":
		return empire.StatusPeace, nil
	case "Allied":
		return empire.StatusAllied, nil
	}
	return empire.StatusPeace, fmt.Errorf("unknown diplomatic status %q", s)
}

func parseAggression(s string) (universe.Aggression, error) {
	switch s {
	case "Passive":
		return universe.AggressionPassive, nil
	case "Defensive":
		return universe.AggressionDefensive, nil
	case "Obstructive":
		return universe.AggressionObstructive, nil
	case "Aggressive":
		return universe.AggressionAggressive, nil
	}
	return universe.AggressionInvalid, fmt.Errorf("unknown aggression %q", s)
}
