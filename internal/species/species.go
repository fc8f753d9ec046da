// Package species holds species definitions and the opinion tables species
// maintain about empires and about each other.
package species

// Species is a playable or native species definition.
type Species struct {
	Name         string
	DefaultFocus string
	// Foci lists the focus settings planets of this species may adopt.
	Foci []string
}

// HasFocus reports whether the named focus is available to the species.
func (s *Species) HasFocus(focus string) bool {
	if s == nil || focus == "" {
		return false
	}
	for _, f := range s.Foci {
		if f == focus {
			return true
		}
	}
	return false
}

type empireOpinionKey struct {
	species  string
	empireID int
}

type speciesOpinionKey struct {
	rater string
	rated string
}

// Manager is the registry of species plus their opinion state.
type Manager struct {
	species         map[string]*Species
	empireOpinions  map[empireOpinionKey]float64
	speciesOpinions map[speciesOpinionKey]float64
}

func NewManager() *Manager {
	return &Manager{
		species:         make(map[string]*Species),
		empireOpinions:  make(map[empireOpinionKey]float64),
		speciesOpinions: make(map[speciesOpinionKey]float64),
	}
}

func (m *Manager) Add(s Species) {
	m.species[s.Name] = &s
}

// Species returns the definition for the given name, or nil.
func (m *Manager) Species(name string) *Species {
	if m == nil {
		return nil
	}
	return m.species[name]
}

// EmpireOpinion reports what a species thinks of an empire. Unset pairs
// read as zero.
func (m *Manager) EmpireOpinion(species string, empireID int) float64 {
	return m.empireOpinions[empireOpinionKey{species, empireID}]
}

func (m *Manager) SetEmpireOpinion(species string, empireID int, opinion float64) {
	m.empireOpinions[empireOpinionKey{species, empireID}] = opinion
}

// SpeciesOpinion reports what the rater species thinks of the rated one.
func (m *Manager) SpeciesOpinion(rater, rated string) float64 {
	return m.speciesOpinions[speciesOpinionKey{rater, rated}]
}

func (m *Manager) SetSpeciesOpinion(rater, rated string, opinion float64) {
	m.speciesOpinions[speciesOpinionKey{rater, rated}] = opinion
}
