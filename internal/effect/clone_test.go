package effect

import (
	"testing"

	"stardrift/engine/internal/universe"
)

func nestedSample() *Conditional {
	return &Conditional{
		Condition: &KindCondition{Want: universe.KindPlanet},
		TrueEffects: []Effect{
			&SetMeter{MeterType: universe.MeterPopulation, Value: NewConstant(3.0)},
			&GenerateSitRepMessage{
				Template:    "GROWTH",
				Affiliation: AffiliationAny,
				Params:      []SitrepParam{{Tag: "planet", Value: NewConstant("Vantar I")}},
			},
		},
		FalseEffects: []Effect{
			&CreateBuilding{
				BuildingType: NewConstant("Shipyard"),
				After:        []Effect{&AddSpecial{Name: NewConstant("Fresh Foundations")}},
			},
			Destroy{},
		},
	}
}

func TestCloneDumpsIdentically(t *testing.T) {
	orig := nestedSample()
	clone := orig.Clone()
	if got, want := clone.Dump(0), orig.Dump(0); got != want {
		t.Fatalf("clone dump differs:\n%s\nwant:\n%s", got, want)
	}
	if !orig.Equal(clone) || !clone.Equal(orig) {
		t.Fatalf("clone not structurally equal to original")
	}
}

func TestCloneIsolatesNestedEffects(t *testing.T) {
	orig := nestedSample()
	clone := orig.Clone().(*Conditional)
	clone.SetTopLevelContent("Subspace Drives")

	sit := orig.TrueEffects[1].(*GenerateSitRepMessage)
	if sit.contentName != "" {
		t.Fatalf("original picked up clone provenance %q", sit.contentName)
	}
	if got := clone.TrueEffects[1].(*GenerateSitRepMessage).contentName; got != "Subspace Drives" {
		t.Fatalf("clone provenance = %q, want Subspace Drives", got)
	}

	clone.TrueEffects[0] = &SetMeter{MeterType: universe.MeterResearch, Value: NewConstant(1.0)}
	if orig.Equal(clone) {
		t.Fatalf("mutated clone still equal to original")
	}
}

func TestEqualComparesOperands(t *testing.T) {
	cases := []struct {
		name string
		a, b Effect
		want bool
	}{
		{"same constant", &SetMeter{MeterType: universe.MeterPopulation, Value: NewConstant(3.0)},
			&SetMeter{MeterType: universe.MeterPopulation, Value: NewConstant(3.0)}, true},
		{"different constant", &SetMeter{MeterType: universe.MeterPopulation, Value: NewConstant(3.0)},
			&SetMeter{MeterType: universe.MeterPopulation, Value: NewConstant(4.0)}, false},
		{"different meter", &SetMeter{MeterType: universe.MeterPopulation, Value: NewConstant(3.0)},
			&SetMeter{MeterType: universe.MeterIndustry, Value: NewConstant(3.0)}, false},
		{"both nil refs", &SetMeter{MeterType: universe.MeterPopulation},
			&SetMeter{MeterType: universe.MeterPopulation}, true},
		{"nil vs set ref", &SetMeter{MeterType: universe.MeterPopulation},
			&SetMeter{MeterType: universe.MeterPopulation, Value: NewConstant(3.0)}, false},
		{"different kinds", Destroy{}, NoOp{}, false},
		{"same kind no fields", Destroy{}, Destroy{}, true},
		{"different id conditions", &MoveTo{Destination: &IDCondition{IDs: []int{1}}},
			&MoveTo{Destination: &IDCondition{IDs: []int{2}}}, false},
	}
	for _, tc := range cases {
		if got := tc.a.Equal(tc.b); got != tc.want {
			t.Fatalf("%s: Equal = %v, want %v", tc.name, got, tc.want)
		}
	}
}
