// Package empire models the players of a game: their named meters, resource
// stockpiles, research state, sitrep inboxes and diplomatic relations.
package empire

import (
	"fmt"
	"sort"

	"stardrift/engine/internal/universe"
)

// ResourceType identifies an empire stockpile.
type ResourceType int

const (
	ResourceInvalid ResourceType = iota - 1
	ResourceIndustry
	ResourceResearch
	ResourceInfluence
)

func (rt ResourceType) String() string {
	switch rt {
	case ResourceIndustry:
		return "Industry"
	case ResourceResearch:
		return "Research"
	case ResourceInfluence:
		return "Influence"
	}
	return "Invalid"
}

// Empire is one player's persistent state.
type Empire struct {
	id        int
	name      string
	capitalID int

	meters     map[string]*universe.Meter
	stockpiles map[ResourceType]float64

	techProgress map[string]float64
	// pendingTechs are granted at the start of the next turn.
	pendingTechs map[string]struct{}

	sitreps         []Sitrep
	exploredSystems map[int]struct{}

	shipNameCounter int

	won        bool
	winReasons []string
}

func New(id int, name string) *Empire {
	return &Empire{
		id:              id,
		name:            name,
		capitalID:       universe.InvalidID,
		meters:          make(map[string]*universe.Meter),
		stockpiles:      make(map[ResourceType]float64),
		techProgress:    make(map[string]float64),
		pendingTechs:    make(map[string]struct{}),
		exploredSystems: make(map[int]struct{}),
	}
}

func (e *Empire) ID() int      { return e.id }
func (e *Empire) Name() string { return e.name }

func (e *Empire) CapitalID() int      { return e.capitalID }
func (e *Empire) SetCapitalID(id int) { e.capitalID = id }

// Meter returns the named empire meter, creating it on first reference so
// content scripts can define new empire meters by writing to them.
func (e *Empire) Meter(name string) *universe.Meter {
	if m, ok := e.meters[name]; ok {
		return m
	}
	m := universe.NewMeter(0)
	e.meters[name] = m
	return m
}

// HasMeter reports whether the named meter already exists.
func (e *Empire) HasMeter(name string) bool {
	_, ok := e.meters[name]
	return ok
}

// MeterNames lists the existing meter names in sorted order.
func (e *Empire) MeterNames() []string {
	out := make([]string, 0, len(e.meters))
	for name := range e.meters {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (e *Empire) Stockpile(rt ResourceType) float64 { return e.stockpiles[rt] }

func (e *Empire) SetStockpile(rt ResourceType, v float64) { e.stockpiles[rt] = v }

// TechProgress reports accumulated research toward the named tech.
func (e *Empire) TechProgress(name string) float64 { return e.techProgress[name] }

func (e *Empire) SetTechProgress(name string, progress float64) {
	e.techProgress[name] = progress
}

// GrantTechAtStartOfNextTurn queues an immediate tech grant for the next
// turn boundary.
func (e *Empire) GrantTechAtStartOfNextTurn(name string) {
	e.pendingTechs[name] = struct{}{}
}

// PendingTechs lists queued grants in sorted order.
func (e *Empire) PendingTechs() []string {
	out := make([]string, 0, len(e.pendingTechs))
	for name := range e.pendingTechs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ApplyPendingTechs marks each queued tech fully researched and clears the
// queue, returning the granted names.
func (e *Empire) ApplyPendingTechs(cost func(name string) float64) []string {
	granted := e.PendingTechs()
	for _, name := range granted {
		c := 0.0
		if cost != nil {
			c = cost(name)
		}
		if c > e.techProgress[name] {
			e.techProgress[name] = c
		}
	}
	e.pendingTechs = make(map[string]struct{})
	return granted
}

// AddExploredSystem marks a system as explored by this empire.
func (e *Empire) AddExploredSystem(systemID int) {
	if systemID == universe.InvalidID {
		return
	}
	e.exploredSystems[systemID] = struct{}{}
}

func (e *Empire) HasExploredSystem(systemID int) bool {
	_, ok := e.exploredSystems[systemID]
	return ok
}

// NewShipName generates a name for a freshly built ship.
func (e *Empire) NewShipName() string {
	e.shipNameCounter++
	return fmt.Sprintf("%s Ship %d", e.name, e.shipNameCounter)
}

// Win records a victory for the stated reason. Repeat wins for the same
// reason collapse to one.
func (e *Empire) Win(reason string) {
	e.won = true
	for _, r := range e.winReasons {
		if r == reason {
			return
		}
	}
	e.winReasons = append(e.winReasons, reason)
}

func (e *Empire) HasWon() bool         { return e.won }
func (e *Empire) WinReasons() []string { return e.winReasons }
