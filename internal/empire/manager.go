package empire

import "sort"

// DiplomaticStatus is the relation between two empires. Unrelated pairs
// default to peace.
type DiplomaticStatus int

const (
	StatusWar DiplomaticStatus = iota
	StatusPeace
	StatusAllied
)

func (s DiplomaticStatus) String() string {
	switch s {
	case StatusWar:
		return "War"
	case StatusAllied:
		return "Allied"
	}
	return "Peace"
}

type diploKey struct {
	lo, hi int
}

func makeDiploKey(a, b int) diploKey {
	if a > b {
		a, b = b, a
	}
	return diploKey{lo: a, hi: b}
}

// Manager owns every empire in a game and their pairwise diplomacy.
type Manager struct {
	empires map[int]*Empire
	diplo   map[diploKey]DiplomaticStatus
}

func NewManager() *Manager {
	return &Manager{
		empires: make(map[int]*Empire),
		diplo:   make(map[diploKey]DiplomaticStatus),
	}
}

func (m *Manager) Add(e *Empire) { m.empires[e.ID()] = e }

// Empire returns the empire with the given id, or nil.
func (m *Manager) Empire(id int) *Empire {
	if m == nil {
		return nil
	}
	return m.empires[id]
}

// IDs returns every empire id in ascending order.
func (m *Manager) IDs() []int {
	out := make([]int, 0, len(m.empires))
	for id := range m.empires {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// All returns every empire in ascending id order.
func (m *Manager) All() []*Empire {
	ids := m.IDs()
	out := make([]*Empire, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.empires[id])
	}
	return out
}

// Status reports the relation between two empires. An empire is allied with
// itself.
func (m *Manager) Status(a, b int) DiplomaticStatus {
	if a == b {
		return StatusAllied
	}
	if s, ok := m.diplo[makeDiploKey(a, b)]; ok {
		return s
	}
	return StatusPeace
}

func (m *Manager) SetStatus(a, b int, s DiplomaticStatus) {
	if a == b {
		return
	}
	m.diplo[makeDiploKey(a, b)] = s
}
