package empire

import "testing"

func TestPendingTechsApplyAtFullCost(t *testing.T) {
	e := New(1, "Concord")
	e.SetTechProgress("Lasers", 80)
	e.GrantTechAtStartOfNextTurn("Lasers")
	e.GrantTechAtStartOfNextTurn("Shields")
	e.GrantTechAtStartOfNextTurn("Shields")

	if got := len(e.PendingTechs()); got != 2 {
		t.Fatalf("pending = %d, want 2 with duplicates collapsed", got)
	}

	applied := e.ApplyPendingTechs(func(name string) float64 {
		if name == "Lasers" {
			return 50
		}
		return 30
	})
	if len(applied) != 2 {
		t.Fatalf("applied = %v, want both techs", applied)
	}
	// A grant never lowers progress already past the cost.
	if got := e.TechProgress("Lasers"); got != 80 {
		t.Fatalf("Lasers progress = %v, want 80 kept", got)
	}
	if got := e.TechProgress("Shields"); got != 30 {
		t.Fatalf("Shields progress = %v, want 30", got)
	}
	if len(e.PendingTechs()) != 0 {
		t.Fatalf("pending techs not drained")
	}
}

func TestMetersSpringIntoExistence(t *testing.T) {
	e := New(1, "Concord")
	if e.HasMeter("Influence") {
		t.Fatalf("meter exists before first touch")
	}
	e.Meter("Influence").SetCurrent(5)
	if !e.HasMeter("Influence") {
		t.Fatalf("meter missing after first touch")
	}
	if names := e.MeterNames(); len(names) != 1 || names[0] != "Influence" {
		t.Fatalf("meter names = %v", names)
	}
}

func TestWinReasonsDeduplicate(t *testing.T) {
	e := New(1, "Concord")
	e.Win("CONQUEST")
	e.Win("CONQUEST")
	e.Win("RESEARCH")
	if !e.HasWon() {
		t.Fatalf("empire has not won")
	}
	if got := e.WinReasons(); len(got) != 2 {
		t.Fatalf("win reasons = %v, want 2 distinct", got)
	}
}

func TestShipNamesCount(t *testing.T) {
	e := New(2, "Hegemony")
	if got := e.NewShipName(); got != "Hegemony Ship 1" {
		t.Fatalf("first name = %q", got)
	}
	if got := e.NewShipName(); got != "Hegemony Ship 2" {
		t.Fatalf("second name = %q", got)
	}
}

func TestDiplomaticStatusIsSymmetric(t *testing.T) {
	m := NewManager()
	m.Add(New(1, "Concord"))
	m.Add(New(2, "Hegemony"))
	m.Add(New(3, "Accord"))

	if m.Status(1, 2) != StatusPeace {
		t.Fatalf("default status = %v, want peace", m.Status(1, 2))
	}
	m.SetStatus(2, 1, StatusWar)
	if m.Status(1, 2) != StatusWar || m.Status(2, 1) != StatusWar {
		t.Fatalf("war not symmetric")
	}
	if m.Status(3, 3) != StatusAllied {
		t.Fatalf("self status = %v, want allied", m.Status(3, 3))
	}
}

func TestSitrepsGroupByTurn(t *testing.T) {
	e := New(1, "Concord")
	e.AddSitrep(Sitrep{Turn: 3, Template: "A"})
	e.AddSitrep(Sitrep{Turn: 4, Template: "B"})
	e.AddSitrep(Sitrep{Turn: 4, Template: "C"})

	if got := len(e.Sitreps()); got != 3 {
		t.Fatalf("sitreps = %d, want 3", got)
	}
	if got := len(e.SitrepsForTurn(4)); got != 2 {
		t.Fatalf("turn 4 sitreps = %d, want 2", got)
	}
	if got := len(e.SitrepsForTurn(9)); got != 0 {
		t.Fatalf("turn 9 sitreps = %d, want 0", got)
	}
}
