package empire

// Sitrep is one situation-report entry delivered to an empire's inbox.
// Parameters are evaluated by the sender before delivery so every recipient
// sees the same values.
type Sitrep struct {
	// Turn is the turn the entry becomes visible.
	Turn       int
	Template   string
	Icon       string
	Label      string
	Stringtable bool
	// Content names the tech, building or special the report came from.
	Content string
	Params  []SitrepParam
}

// SitrepParam is one tag/value pair interpolated into a sitrep template.
type SitrepParam struct {
	Tag   string
	Value string
}

// AddSitrep appends an entry to the empire's inbox.
func (e *Empire) AddSitrep(s Sitrep) {
	e.sitreps = append(e.sitreps, s)
}

// Sitreps returns the inbox in delivery order.
func (e *Empire) Sitreps() []Sitrep { return e.sitreps }

// SitrepsForTurn filters the inbox to entries visible on the given turn.
func (e *Empire) SitrepsForTurn(turn int) []Sitrep {
	var out []Sitrep
	for _, s := range e.sitreps {
		if s.Turn == turn {
			out = append(out, s)
		}
	}
	return out
}
