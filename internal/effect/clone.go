package effect

// CloneEffects deep-copies an effect list, preserving nil.
func CloneEffects(effects []Effect) []Effect {
	if effects == nil {
		return nil
	}
	out := make([]Effect, len(effects))
	for i, e := range effects {
		out[i] = e.Clone()
	}
	return out
}

// EffectsEqual reports pairwise structural equality of two effect lists.
func EffectsEqual(a, b []Effect) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// refsEqual compares two references structurally, nil equal only to nil.
// References dump their source form, so equal dumps mean equal expressions.
func refsEqual[T any](a, b ValueRef[T]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Dump() == b.Dump()
}

// condsEqual compares two conditions by their dumped form, nil equal only
// to nil.
func condsEqual(a, b Condition) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Dump() == b.Dump()
}

func sitrepParamsEqual(a, b []SitrepParam) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Tag != b[i].Tag || !refsEqual(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

func (e *SetMeter) Clone() Effect {
	c := *e
	return &c
}

func (e *SetMeter) Equal(other Effect) bool {
	o, ok := other.(*SetMeter)
	return ok && e.MeterType == o.MeterType && e.AccountingLabel == o.AccountingLabel &&
		refsEqual(e.Value, o.Value)
}

func (e *SetShipPartMeter) Clone() Effect {
	c := *e
	return &c
}

func (e *SetShipPartMeter) Equal(other Effect) bool {
	o, ok := other.(*SetShipPartMeter)
	return ok && e.MeterType == o.MeterType &&
		refsEqual(e.PartName, o.PartName) && refsEqual(e.Value, o.Value)
}

func (e *SetEmpireMeter) Clone() Effect {
	c := *e
	return &c
}

func (e *SetEmpireMeter) Equal(other Effect) bool {
	o, ok := other.(*SetEmpireMeter)
	return ok && e.Meter == o.Meter &&
		refsEqual(e.EmpireID, o.EmpireID) && refsEqual(e.Value, o.Value)
}

func (e *SetEmpireStockpile) Clone() Effect {
	c := *e
	return &c
}

func (e *SetEmpireStockpile) Equal(other Effect) bool {
	o, ok := other.(*SetEmpireStockpile)
	return ok && e.Resource == o.Resource &&
		refsEqual(e.EmpireID, o.EmpireID) && refsEqual(e.Value, o.Value)
}

func (e *SetPlanetType) Clone() Effect {
	c := *e
	return &c
}

func (e *SetPlanetType) Equal(other Effect) bool {
	o, ok := other.(*SetPlanetType)
	return ok && refsEqual(e.Type, o.Type)
}

func (e *SetPlanetSize) Clone() Effect {
	c := *e
	return &c
}

func (e *SetPlanetSize) Equal(other Effect) bool {
	o, ok := other.(*SetPlanetSize)
	return ok && refsEqual(e.Size, o.Size)
}

func (e *SetSpecies) Clone() Effect {
	c := *e
	return &c
}

func (e *SetSpecies) Equal(other Effect) bool {
	o, ok := other.(*SetSpecies)
	return ok && refsEqual(e.Name, o.Name)
}

func (e *SetOwner) Clone() Effect {
	c := *e
	return &c
}

func (e *SetOwner) Equal(other Effect) bool {
	o, ok := other.(*SetOwner)
	return ok && refsEqual(e.Empire, o.Empire)
}

func (e *SetSpeciesEmpireOpinion) Clone() Effect {
	c := *e
	return &c
}

func (e *SetSpeciesEmpireOpinion) Equal(other Effect) bool {
	o, ok := other.(*SetSpeciesEmpireOpinion)
	return ok && refsEqual(e.Species, o.Species) &&
		refsEqual(e.Empire, o.Empire) && refsEqual(e.Opinion, o.Opinion)
}

func (e *SetSpeciesSpeciesOpinion) Clone() Effect {
	c := *e
	return &c
}

func (e *SetSpeciesSpeciesOpinion) Equal(other Effect) bool {
	o, ok := other.(*SetSpeciesSpeciesOpinion)
	return ok && refsEqual(e.Rater, o.Rater) &&
		refsEqual(e.Rated, o.Rated) && refsEqual(e.Opinion, o.Opinion)
}

func (e *SetStarType) Clone() Effect {
	c := *e
	return &c
}

func (e *SetStarType) Equal(other Effect) bool {
	o, ok := other.(*SetStarType)
	return ok && refsEqual(e.Type, o.Type)
}

func (e *SetTexture) Clone() Effect {
	c := *e
	return &c
}

func (e *SetTexture) Equal(other Effect) bool {
	o, ok := other.(*SetTexture)
	return ok && e.Texture == o.Texture
}

func (e *SetOverlayTexture) Clone() Effect {
	c := *e
	return &c
}

func (e *SetOverlayTexture) Equal(other Effect) bool {
	o, ok := other.(*SetOverlayTexture)
	return ok && e.Texture == o.Texture && refsEqual(e.Size, o.Size)
}

func (e *SetEmpireCapital) Clone() Effect {
	c := *e
	return &c
}

func (e *SetEmpireCapital) Equal(other Effect) bool {
	o, ok := other.(*SetEmpireCapital)
	return ok && refsEqual(e.Empire, o.Empire)
}

func (e *CreatePlanet) Clone() Effect {
	c := *e
	c.After = CloneEffects(e.After)
	return &c
}

func (e *CreatePlanet) Equal(other Effect) bool {
	o, ok := other.(*CreatePlanet)
	return ok && refsEqual(e.Type, o.Type) && refsEqual(e.Size, o.Size) &&
		refsEqual(e.Name, o.Name) && EffectsEqual(e.After, o.After)
}

func (e *CreateBuilding) Clone() Effect {
	c := *e
	c.After = CloneEffects(e.After)
	return &c
}

func (e *CreateBuilding) Equal(other Effect) bool {
	o, ok := other.(*CreateBuilding)
	return ok && refsEqual(e.BuildingType, o.BuildingType) &&
		refsEqual(e.Name, o.Name) && EffectsEqual(e.After, o.After)
}

func (e *CreateShip) Clone() Effect {
	c := *e
	c.After = CloneEffects(e.After)
	return &c
}

func (e *CreateShip) Equal(other Effect) bool {
	o, ok := other.(*CreateShip)
	return ok && refsEqual(e.DesignID, o.DesignID) &&
		refsEqual(e.DesignName, o.DesignName) && refsEqual(e.Empire, o.Empire) &&
		refsEqual(e.Species, o.Species) && refsEqual(e.Name, o.Name) &&
		EffectsEqual(e.After, o.After)
}

func (e *CreateField) Clone() Effect {
	c := *e
	c.After = CloneEffects(e.After)
	return &c
}

func (e *CreateField) Equal(other Effect) bool {
	o, ok := other.(*CreateField)
	return ok && refsEqual(e.FieldType, o.FieldType) && refsEqual(e.Size, o.Size) &&
		refsEqual(e.X, o.X) && refsEqual(e.Y, o.Y) &&
		refsEqual(e.Name, o.Name) && EffectsEqual(e.After, o.After)
}

func (e *CreateSystem) Clone() Effect {
	c := *e
	c.After = CloneEffects(e.After)
	return &c
}

func (e *CreateSystem) Equal(other Effect) bool {
	o, ok := other.(*CreateSystem)
	return ok && refsEqual(e.Star, o.Star) &&
		refsEqual(e.X, o.X) && refsEqual(e.Y, o.Y) &&
		refsEqual(e.Name, o.Name) && EffectsEqual(e.After, o.After)
}

func (e *MoveTo) Clone() Effect {
	c := *e
	return &c
}

func (e *MoveTo) Equal(other Effect) bool {
	o, ok := other.(*MoveTo)
	return ok && condsEqual(e.Destination, o.Destination)
}

func (e *MoveInOrbit) Clone() Effect {
	c := *e
	return &c
}

func (e *MoveInOrbit) Equal(other Effect) bool {
	o, ok := other.(*MoveInOrbit)
	return ok && refsEqual(e.X, o.X) && refsEqual(e.Y, o.Y) &&
		condsEqual(e.Focus, o.Focus) && refsEqual(e.Speed, o.Speed)
}

func (e *MoveTowards) Clone() Effect {
	c := *e
	return &c
}

func (e *MoveTowards) Equal(other Effect) bool {
	o, ok := other.(*MoveTowards)
	return ok && refsEqual(e.X, o.X) && refsEqual(e.Y, o.Y) &&
		condsEqual(e.Focus, o.Focus) && refsEqual(e.Speed, o.Speed)
}

func (e *SetDestination) Clone() Effect {
	c := *e
	return &c
}

func (e *SetDestination) Equal(other Effect) bool {
	o, ok := other.(*SetDestination)
	return ok && condsEqual(e.Destination, o.Destination)
}

func (e *SetAggression) Clone() Effect {
	c := *e
	return &c
}

func (e *SetAggression) Equal(other Effect) bool {
	o, ok := other.(*SetAggression)
	return ok && e.Aggression == o.Aggression
}

func (Destroy) Clone() Effect { return Destroy{} }

func (Destroy) Equal(other Effect) bool {
	_, ok := other.(Destroy)
	return ok
}

func (NoOp) Clone() Effect { return NoOp{} }

func (NoOp) Equal(other Effect) bool {
	_, ok := other.(NoOp)
	return ok
}

func (e *AddSpecial) Clone() Effect {
	c := *e
	return &c
}

func (e *AddSpecial) Equal(other Effect) bool {
	o, ok := other.(*AddSpecial)
	return ok && refsEqual(e.Name, o.Name) && refsEqual(e.Capacity, o.Capacity)
}

func (e *RemoveSpecial) Clone() Effect {
	c := *e
	return &c
}

func (e *RemoveSpecial) Equal(other Effect) bool {
	o, ok := other.(*RemoveSpecial)
	return ok && refsEqual(e.Name, o.Name)
}

func (e *AddStarlanes) Clone() Effect {
	c := *e
	return &c
}

func (e *AddStarlanes) Equal(other Effect) bool {
	o, ok := other.(*AddStarlanes)
	return ok && condsEqual(e.Endpoints, o.Endpoints)
}

func (e *RemoveStarlanes) Clone() Effect {
	c := *e
	return &c
}

func (e *RemoveStarlanes) Equal(other Effect) bool {
	o, ok := other.(*RemoveStarlanes)
	return ok && condsEqual(e.Endpoints, o.Endpoints)
}

func (e *Victory) Clone() Effect {
	c := *e
	return &c
}

func (e *Victory) Equal(other Effect) bool {
	o, ok := other.(*Victory)
	return ok && e.Reason == o.Reason
}

func (e *SetEmpireTechProgress) Clone() Effect {
	c := *e
	return &c
}

func (e *SetEmpireTechProgress) Equal(other Effect) bool {
	o, ok := other.(*SetEmpireTechProgress)
	return ok && refsEqual(e.Empire, o.Empire) &&
		refsEqual(e.TechName, o.TechName) && refsEqual(e.Progress, o.Progress)
}

func (e *GiveEmpireTech) Clone() Effect {
	c := *e
	return &c
}

func (e *GiveEmpireTech) Equal(other Effect) bool {
	o, ok := other.(*GiveEmpireTech)
	return ok && refsEqual(e.Empire, o.Empire) && refsEqual(e.TechName, o.TechName)
}

func (e *GenerateSitRepMessage) Clone() Effect {
	c := *e
	c.Params = append([]SitrepParam(nil), e.Params...)
	return &c
}

// Equal compares message structure; provenance set later by
// SetTopLevelContent does not participate.
func (e *GenerateSitRepMessage) Equal(other Effect) bool {
	o, ok := other.(*GenerateSitRepMessage)
	return ok && e.Template == o.Template && e.Icon == o.Icon &&
		e.Label == o.Label && e.Stringtable == o.Stringtable &&
		e.Affiliation == o.Affiliation &&
		refsEqual(e.Recipient, o.Recipient) && condsEqual(e.Condition, o.Condition) &&
		sitrepParamsEqual(e.Params, o.Params)
}

func (e *SetVisibility) Clone() Effect {
	c := *e
	return &c
}

func (e *SetVisibility) Equal(other Effect) bool {
	o, ok := other.(*SetVisibility)
	return ok && e.Affiliation == o.Affiliation &&
		refsEqual(e.Level, o.Level) && refsEqual(e.Empire, o.Empire) &&
		condsEqual(e.OfObjects, o.OfObjects)
}

func (e *Conditional) Clone() Effect {
	c := *e
	c.TrueEffects = CloneEffects(e.TrueEffects)
	c.FalseEffects = CloneEffects(e.FalseEffects)
	return &c
}

func (e *Conditional) Equal(other Effect) bool {
	o, ok := other.(*Conditional)
	return ok && condsEqual(e.Condition, o.Condition) &&
		EffectsEqual(e.TrueEffects, o.TrueEffects) &&
		EffectsEqual(e.FalseEffects, o.FalseEffects)
}
