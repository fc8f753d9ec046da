package scenario

import (
	"strings"
	"testing"

	"stardrift/engine/internal/effect"
	"stardrift/engine/internal/pathfind"
	"stardrift/engine/internal/universe"
	"stardrift/engine/logging/sinks"
)

const testRules = `
rules:
  - name: Population Growth
    scope: Target.Kind == "planet" && Target.Population > 0
    priority: 10
    accounting_label: Growth
    effects:
      - set_meter:
          meter: Population
          value: Value + 1
  - name: Crowding
    scope: Target.Kind == "planet"
    priority: 20
    effects:
      - conditional:
          condition: Target.Population > 12
          then:
            - add_special:
                name: Crowded
          else:
            - remove_special: Crowded
`

func TestBuildRulesCompilesGroups(t *testing.T) {
	sink := sinks.NewMemorySink()
	groups, err := LoadRules(strings.NewReader(testRules), sink)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if groups[0].ContentName() != "Population Growth" {
		t.Fatalf("content name = %q", groups[0].ContentName())
	}
	if groups[0].Priority != 10 || groups[1].Priority != 20 {
		t.Fatalf("priorities = %d/%d", groups[0].Priority, groups[1].Priority)
	}
}

func TestRulesDriveTurnExecution(t *testing.T) {
	st, err := Load(strings.NewReader(testScenario))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	sink := sinks.NewMemorySink()
	groups, err := LoadRules(strings.NewReader(testRules), sink)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}

	ctx := &effect.Context{
		CurrentTurn: st.Turn,
		Universe:    st.Universe,
		Empires:     st.Empires,
		Species:     st.Species,
		Content:     st.Content,
		Pathfinder:  &pathfind.Finder{},
		Log:         sink,
	}
	planet := universe.All[*universe.Planet](st.Universe)[0]
	var sourced []effect.SourcedGroup
	for _, g := range groups {
		sourced = append(sourced, effect.SourcedGroup{
			Group:  g,
			Source: planet,
			Cause:  effect.Cause{CauseType: effect.CauseInherent, SpecificCause: g.ContentName()},
		})
	}

	acct := effect.RunTurn(ctx, sourced)

	m := planet.Meter(universe.MeterPopulation)
	if m.Current() != 13 || m.Initial() != 13 {
		t.Fatalf("population = %v/%v, want 13 committed", m.Current(), m.Initial())
	}
	if !planet.HasSpecial("Crowded") {
		t.Fatalf("crowding rule did not fire after growth")
	}
	entries := acct.Entries(planet.ID(), universe.MeterPopulation)
	if len(entries) != 1 || entries[0].MeterChange != 1 {
		t.Fatalf("accounting = %+v, want one +1 entry", entries)
	}
	if entries[0].Cause.CustomLabel != "Growth" {
		t.Fatalf("accounting label = %q, want Growth", entries[0].Cause.CustomLabel)
	}

	// A second turn grows the committed baseline again.
	ctx.CurrentTurn++
	effect.RunTurn(ctx, sourced)
	if m.Current() != 14 {
		t.Fatalf("population = %v after second turn, want 14", m.Current())
	}
}

func TestBuildRulesRejectsBadInput(t *testing.T) {
	sink := sinks.NewMemorySink()
	cases := []string{
		"rules:\n  - name: NoScope\n    effects:\n      - destroy: true\n",
		"rules:\n  - name: BadMeter\n    scope: 'true'\n    effects:\n      - set_meter:\n          meter: Charisma\n          value: '1'\n",
		"rules:\n  - name: BadExpr\n    scope: 'Target.Population >'\n    effects:\n      - destroy: true\n",
		"rules:\n  - name: EmptyEffect\n    scope: 'true'\n    effects:\n      - {}\n",
	}
	for i, src := range cases {
		if _, err := LoadRules(strings.NewReader(src), sink); err == nil {
			t.Fatalf("case %d: invalid rules accepted", i)
		}
	}
}
