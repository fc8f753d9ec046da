package scenario

import (
	"strings"
	"testing"

	"stardrift/engine/internal/empire"
	"stardrift/engine/internal/universe"
)

const testScenario = `
name: Border Skirmish
turn: 3
empires:
  - id: 1
    name: Concord
  - id: 2
    name: Hegemony
diplomacy:
  - a: Concord
    b: Hegemony
    status: War
species:
  - name: Thenari
    default_focus: Industry
    foci: [Industry, Research]
techs:
  - name: Subspace Drives
    cost: 60
building_types:
  - name: Shipyard
field_types:
  - name: Ion Storm
designs:
  - name: Corvette
    attack: 5
    speed: 20
systems:
  - name: Vantar
    star: Yellow
    x: 100
    y: 200
    planets:
      - name: Vantar I
        type: Terran
        size: Medium
        owner: Concord
        species: Thenari
        focus: Industry
        capital: true
        meters:
          Population: 12
        buildings:
          - type: Shipyard
    fleets:
      - name: First Patrol
        owner: Hegemony
        aggression: Aggressive
        ships:
          - design: Corvette
  - name: Rhea
    star: Red
    x: 160
    y: 200
    fields:
      - type: Ion Storm
        size: 30
lanes:
  - from: Vantar
    to: Rhea
`

func TestLoadBuildsFullState(t *testing.T) {
	st, err := Load(strings.NewReader(testScenario))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.Name != "Border Skirmish" || st.Turn != 3 {
		t.Fatalf("state header = %q turn %d", st.Name, st.Turn)
	}

	systems := universe.All[*universe.System](st.Universe)
	if len(systems) != 2 {
		t.Fatalf("systems = %d, want 2", len(systems))
	}

	planets := universe.All[*universe.Planet](st.Universe)
	if len(planets) != 1 {
		t.Fatalf("planets = %d, want 1", len(planets))
	}
	p := planets[0]
	if p.Owner() != 1 || p.Species() != "Thenari" || p.Focus() != "Industry" {
		t.Fatalf("planet = owner %d species %q focus %q", p.Owner(), p.Species(), p.Focus())
	}
	m := p.Meter(universe.MeterPopulation)
	if m.Current() != 12 || m.Initial() != 12 {
		t.Fatalf("population = %v/%v, want 12 committed", m.Current(), m.Initial())
	}
	if st.Empires.Empire(1).CapitalID() != p.ID() {
		t.Fatalf("capital not recorded")
	}

	buildings := universe.All[*universe.Building](st.Universe)
	if len(buildings) != 1 || buildings[0].PlanetID() != p.ID() {
		t.Fatalf("building not sited on the planet")
	}

	ships := universe.All[*universe.Ship](st.Universe)
	if len(ships) != 1 {
		t.Fatalf("ships = %d, want 1", len(ships))
	}
	ship := ships[0]
	if ship.Owner() != 2 {
		t.Fatalf("ship owner = %d, want 2", ship.Owner())
	}
	if ship.Name() != "Corvette" {
		t.Fatalf("ship name = %q, want design name", ship.Name())
	}
	if got := ship.Meter(universe.MeterSpeed).Current(); got != 20 {
		t.Fatalf("ship speed = %v, want 20 from design", got)
	}
	design := st.Universe.DesignByName("Corvette")
	if design == nil || !st.Universe.EmpireKnowsDesign(2, design.ID) {
		t.Fatalf("owner does not know the design it fields")
	}

	fleets := universe.All[*universe.Fleet](st.Universe)
	if len(fleets) != 1 || fleets[0].Aggression() != universe.AggressionAggressive {
		t.Fatalf("fleet aggression not parsed")
	}

	fields := universe.All[*universe.Field](st.Universe)
	if len(fields) != 1 || fields[0].Size() != 30 {
		t.Fatalf("field size = %v, want 30", fields[0].Size())
	}

	var vantar *universe.System
	for _, s := range systems {
		if s.Name() == "Vantar" {
			vantar = s
		}
	}
	if len(vantar.StarlaneIDs()) != 1 {
		t.Fatalf("lane not built")
	}

	if st.Empires.Status(1, 2) != empire.StatusWar {
		t.Fatalf("diplomacy = %v, want war", st.Empires.Status(1, 2))
	}
	if st.Content.Tech("Subspace Drives") == nil {
		t.Fatalf("tech not registered")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader("name: X\nsystems: []\nwormholes: []\n"))
	if err == nil {
		t.Fatalf("unknown top-level key accepted")
	}
}

func TestBuildRejectsUnknownReferences(t *testing.T) {
	cases := []string{
		// unknown planet type
		"name: X\nsystems:\n  - name: A\n    x: 0\n    y: 0\n    planets:\n      - name: P\n        type: Molten\n        size: Medium\n",
		// unknown empire owner
		"name: X\nsystems:\n  - name: A\n    x: 0\n    y: 0\n    planets:\n      - name: P\n        type: Terran\n        size: Medium\n        owner: Nobody\n",
		// unknown ship design
		"name: X\nsystems:\n  - name: A\n    x: 0\n    y: 0\n    fleets:\n      - name: F\n        ships:\n          - design: Ghost\n",
		// lane to a missing system
		"name: X\nsystems:\n  - name: A\n    x: 0\n    y: 0\nlanes:\n  - from: A\n    to: B\n",
		// duplicate system name
		"name: X\nsystems:\n  - name: A\n    x: 0\n    y: 0\n  - name: A\n    x: 1\n    y: 1\n",
	}
	for i, src := range cases {
		if _, err := Load(strings.NewReader(src)); err == nil {
			t.Fatalf("case %d: invalid scenario accepted", i)
		}
	}
}
