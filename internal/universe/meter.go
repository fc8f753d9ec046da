package universe

import "fmt"

// LargeValue is the sentinel magnitude used for meters that should be
// effectively unbounded, such as the stealth of a newly spawned fleet.
const LargeValue = 99999.0

// MeterType identifies one mutable statistic on a game object. Paired
// max/target meters cap or attract their associated current meter.
type MeterType int

const (
	MeterInvalid MeterType = iota - 1
	MeterPopulation
	MeterTargetPopulation
	MeterIndustry
	MeterTargetIndustry
	MeterResearch
	MeterTargetResearch
	MeterConstruction
	MeterTargetConstruction
	MeterHappiness
	MeterTargetHappiness
	MeterFuel
	MeterMaxFuel
	MeterShield
	MeterMaxShield
	MeterStructure
	MeterMaxStructure
	MeterDefense
	MeterMaxDefense
	MeterSupply
	MeterMaxSupply
	MeterTroops
	MeterMaxTroops
	MeterStealth
	MeterDetection
	MeterSpeed
	MeterCapacity
	MeterMaxCapacity
	MeterSecondaryStat
	MeterMaxSecondaryStat
	MeterSize
)

var meterNames = map[MeterType]string{
	MeterPopulation:       "Population",
	MeterTargetPopulation: "TargetPopulation",
	MeterIndustry:         "Industry",
	MeterTargetIndustry:   "TargetIndustry",
	MeterResearch:         "Research",
	MeterTargetResearch:   "TargetResearch",
	MeterConstruction:     "Construction",
	MeterTargetConstruction: "TargetConstruction",
	MeterHappiness:        "Happiness",
	MeterTargetHappiness:  "TargetHappiness",
	MeterFuel:             "Fuel",
	MeterMaxFuel:          "MaxFuel",
	MeterShield:           "Shield",
	MeterMaxShield:        "MaxShield",
	MeterStructure:        "Structure",
	MeterMaxStructure:     "MaxStructure",
	MeterDefense:          "Defense",
	MeterMaxDefense:       "MaxDefense",
	MeterSupply:           "Supply",
	MeterMaxSupply:        "MaxSupply",
	MeterTroops:           "Troops",
	MeterMaxTroops:        "MaxTroops",
	MeterStealth:          "Stealth",
	MeterDetection:        "Detection",
	MeterSpeed:            "Speed",
	MeterCapacity:         "Capacity",
	MeterMaxCapacity:      "MaxCapacity",
	MeterSecondaryStat:    "SecondaryStat",
	MeterMaxSecondaryStat: "MaxSecondaryStat",
	MeterSize:             "Size",
}

func (mt MeterType) String() string {
	if name, ok := meterNames[mt]; ok {
		return name
	}
	return fmt.Sprintf("Meter(%d)", int(mt))
}

// MeterTypeByName resolves a meter name as used in content scripts. The
// second return is false for unknown names.
func MeterTypeByName(name string) (MeterType, bool) {
	for mt, n := range meterNames {
		if n == name {
			return mt, true
		}
	}
	return MeterInvalid, false
}

// AssociatedMeterType maps a max or target meter to the current meter it
// governs, or MeterInvalid when the meter stands alone.
func (mt MeterType) AssociatedMeterType() MeterType {
	switch mt {
	case MeterTargetPopulation:
		return MeterPopulation
	case MeterTargetIndustry:
		return MeterIndustry
	case MeterTargetResearch:
		return MeterResearch
	case MeterTargetConstruction:
		return MeterConstruction
	case MeterTargetHappiness:
		return MeterHappiness
	case MeterMaxFuel:
		return MeterFuel
	case MeterMaxShield:
		return MeterShield
	case MeterMaxStructure:
		return MeterStructure
	case MeterMaxDefense:
		return MeterDefense
	case MeterMaxSupply:
		return MeterSupply
	case MeterMaxTroops:
		return MeterTroops
	case MeterMaxCapacity:
		return MeterCapacity
	case MeterMaxSecondaryStat:
		return MeterSecondaryStat
	}
	return MeterInvalid
}

// Meter tracks a current value plus the initial value it held at the start
// of the turn. Effects mutate Current; BackPropagate commits Current as the
// next turn's baseline.
type Meter struct {
	current float64
	initial float64
}

func NewMeter(value float64) *Meter {
	return &Meter{current: value, initial: value}
}

func (m *Meter) Current() float64 { return m.current }
func (m *Meter) Initial() float64 { return m.initial }

func (m *Meter) SetCurrent(v float64) { m.current = v }

func (m *Meter) AddToCurrent(delta float64) { m.current += delta }

// BackPropagate records the current value as the initial value for the next
// evaluation round.
func (m *Meter) BackPropagate() { m.initial = m.current }

// ResetCurrent rewinds the working value to the turn-start baseline.
func (m *Meter) ResetCurrent() { m.current = m.initial }
