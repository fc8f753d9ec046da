package effect

import "stardrift/engine/internal/universe"

// CauseType classifies the kind of content an effect came from.
type CauseType int

const (
	CauseInvalid CauseType = iota - 1
	CauseUnknown
	CauseInherent
	CauseTech
	CauseBuilding
	CauseField
	CauseSpecial
	CauseSpecies
	CauseShipPart
	CauseShipHull
	CausePolicy
)

func (ct CauseType) String() string {
	switch ct {
	case CauseInherent:
		return "Inherent"
	case CauseTech:
		return "Tech"
	case CauseBuilding:
		return "Building"
	case CauseField:
		return "Field"
	case CauseSpecial:
		return "Special"
	case CauseSpecies:
		return "Species"
	case CauseShipPart:
		return "ShipPart"
	case CauseShipHull:
		return "ShipHull"
	case CausePolicy:
		return "Policy"
	case CauseUnknown:
		return "Unknown"
	}
	return "Invalid"
}

// Cause identifies the content responsible for a meter change.
type Cause struct {
	CauseType     CauseType
	SpecificCause string
	CustomLabel   string
}

// AccountingEntry records one meter adjustment for client display: who
// caused it, by how much, and the meter's running total afterwards.
type AccountingEntry struct {
	Cause        Cause
	SourceID     int
	MeterChange  float64
	RunningTotal float64
}

// AccountingMap collects entries per target object per meter.
type AccountingMap map[int]map[universe.MeterType][]AccountingEntry

// Record appends one entry, allocating the inner map on first touch. A nil
// map ignores the call so execution paths need no accounting guard.
func (am AccountingMap) Record(targetID int, mt universe.MeterType, entry AccountingEntry) {
	if am == nil {
		return
	}
	byMeter, ok := am[targetID]
	if !ok {
		byMeter = make(map[universe.MeterType][]AccountingEntry)
		am[targetID] = byMeter
	}
	byMeter[mt] = append(byMeter[mt], entry)
}

// Entries returns the recorded entries for one target and meter.
func (am AccountingMap) Entries(targetID int, mt universe.MeterType) []AccountingEntry {
	if am == nil {
		return nil
	}
	return am[targetID][mt]
}
