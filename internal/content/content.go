// Package content holds the static definition tables the engine resolves
// names against: technologies, building types, field types and ship parts.
// Definitions are registered once at load time and read concurrently
// afterwards, so the registry has no locking.
package content

// Tech is a researchable technology definition.
type Tech struct {
	Name         string
	Category     string
	ResearchCost float64
}

// BuildingType describes a constructible building.
type BuildingType struct {
	Name        string
	Description string
}

// FieldType describes an ambient field (nebula, ion storm, molecular cloud).
type FieldType struct {
	Name        string
	Description string
}

// ShipPart describes a mountable ship part. Attack > 0 marks the part as a
// weapon for armament checks.
type ShipPart struct {
	Name   string
	Attack float64
}

// Registry is the lookup surface for all content definitions.
type Registry struct {
	techs     map[string]*Tech
	buildings map[string]*BuildingType
	fields    map[string]*FieldType
	parts     map[string]*ShipPart
}

func NewRegistry() *Registry {
	return &Registry{
		techs:     make(map[string]*Tech),
		buildings: make(map[string]*BuildingType),
		fields:    make(map[string]*FieldType),
		parts:     make(map[string]*ShipPart),
	}
}

func (r *Registry) AddTech(t Tech) {
	r.techs[t.Name] = &t
}

func (r *Registry) Tech(name string) *Tech {
	if r == nil {
		return nil
	}
	return r.techs[name]
}

func (r *Registry) AddBuildingType(b BuildingType) {
	r.buildings[b.Name] = &b
}

func (r *Registry) BuildingType(name string) *BuildingType {
	if r == nil {
		return nil
	}
	return r.buildings[name]
}

func (r *Registry) AddFieldType(f FieldType) {
	r.fields[f.Name] = &f
}

func (r *Registry) FieldType(name string) *FieldType {
	if r == nil {
		return nil
	}
	return r.fields[name]
}

func (r *Registry) AddShipPart(p ShipPart) {
	r.parts[p.Name] = &p
}

func (r *Registry) ShipPart(name string) *ShipPart {
	if r == nil {
		return nil
	}
	return r.parts[name]
}
