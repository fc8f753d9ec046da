package species

import "testing"

func TestHasFocus(t *testing.T) {
	s := Species{Name: "Thenari", DefaultFocus: "Industry", Foci: []string{"Industry", "Research"}}
	if !s.HasFocus("Research") {
		t.Fatalf("Research not recognized")
	}
	if s.HasFocus("Influence") {
		t.Fatalf("unknown focus recognized")
	}
	if s.HasFocus("") {
		t.Fatalf("empty focus recognized")
	}
}

func TestOpinionsDefaultToZero(t *testing.T) {
	m := NewManager()
	m.Add(Species{Name: "Thenari"})

	if got := m.EmpireOpinion("Thenari", 1); got != 0 {
		t.Fatalf("unset empire opinion = %v, want 0", got)
	}
	m.SetEmpireOpinion("Thenari", 1, -12)
	if got := m.EmpireOpinion("Thenari", 1); got != -12 {
		t.Fatalf("empire opinion = %v, want -12", got)
	}

	m.SetSpeciesOpinion("Thenari", "Oroqin", 7)
	if got := m.SpeciesOpinion("Thenari", "Oroqin"); got != 7 {
		t.Fatalf("species opinion = %v, want 7", got)
	}
	// Opinions are directed, not mutual.
	if got := m.SpeciesOpinion("Oroqin", "Thenari"); got != 0 {
		t.Fatalf("reverse opinion = %v, want 0", got)
	}
}

func TestLookupUnknownSpecies(t *testing.T) {
	m := NewManager()
	if m.Species("Xyleth") != nil {
		t.Fatalf("unknown species resolved")
	}
}
