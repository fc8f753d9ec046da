package scenario

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"stardrift/engine/internal/effect"
	"stardrift/engine/internal/script"
	"stardrift/engine/internal/universe"
	"stardrift/engine/logging"
)

// RulesDocument is the root of a rules file: scripted effect groups applied
// every turn.
type RulesDocument struct {
	Rules []RuleDoc `yaml:"rules" json:"rules"`
}

// RuleDoc is one effects group in YAML form.
type RuleDoc struct {
	Name            string      `yaml:"name,omitempty" json:"name,omitempty"`
	Scope           string      `yaml:"scope" json:"scope"`
	Activation      string      `yaml:"activation,omitempty" json:"activation,omitempty"`
	Priority        int         `yaml:"priority,omitempty" json:"priority,omitempty"`
	StackingGroup   string      `yaml:"stacking_group,omitempty" json:"stacking_group,omitempty"`
	AccountingLabel string      `yaml:"accounting_label,omitempty" json:"accounting_label,omitempty"`
	Effects         []EffectDoc `yaml:"effects" json:"effects"`
}

// EffectDoc is one effect in YAML form; exactly one field should be set.
type EffectDoc struct {
	SetMeter      *SetMeterDoc      `yaml:"set_meter,omitempty" json:"set_meter,omitempty"`
	AddSpecial    *AddSpecialDoc    `yaml:"add_special,omitempty" json:"add_special,omitempty"`
	RemoveSpecial string            `yaml:"remove_special,omitempty" json:"remove_special,omitempty"`
	Destroy       bool              `yaml:"destroy,omitempty" json:"destroy,omitempty"`
	Victory       string            `yaml:"victory,omitempty" json:"victory,omitempty"`
	Sitrep        *SitrepDoc        `yaml:"sitrep,omitempty" json:"sitrep,omitempty"`
	Conditional   *ConditionalDoc   `yaml:"conditional,omitempty" json:"conditional,omitempty"`
}

type SetMeterDoc struct {
	Meter string `yaml:"meter" json:"meter"`
	Value string `yaml:"value" json:"value"`
}

type AddSpecialDoc struct {
	Name     string `yaml:"name" json:"name"`
	Capacity string `yaml:"capacity,omitempty" json:"capacity,omitempty"`
}

type SitrepDoc struct {
	Template    string `yaml:"template" json:"template"`
	Icon        string `yaml:"icon,omitempty" json:"icon,omitempty"`
	Affiliation string `yaml:"affiliation,omitempty" json:"affiliation,omitempty" jsonschema:"enum=TheEmpire,enum=AllyOf,enum=PeaceWith,enum=EnemyOf,enum=CanSee,enum=None,enum=AnyEmpire"`
}

type ConditionalDoc struct {
	Condition string      `yaml:"condition" json:"condition"`
	Then      []EffectDoc `yaml:"then,omitempty" json:"then,omitempty"`
	Else      []EffectDoc `yaml:"else,omitempty" json:"else,omitempty"`
}

// LoadRulesFile reads and compiles a rules file.
func LoadRulesFile(path string, log logging.Publisher) ([]*effect.Group, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules: %w", err)
	}
	defer f.Close()
	return LoadRules(f, log)
}

// LoadRules reads and compiles rule groups from YAML.
func LoadRules(r io.Reader, log logging.Publisher) ([]*effect.Group, error) {
	var doc RulesDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	return BuildRules(&doc, log)
}

// BuildRules compiles a decoded rules document into effect groups.
func BuildRules(doc *RulesDocument, log logging.Publisher) ([]*effect.Group, error) {
	groups := make([]*effect.Group, 0, len(doc.Rules))
	for i, rd := range doc.Rules {
		name := rd.Name
		if name == "" {
			name = fmt.Sprintf("rule %d", i)
		}
		if rd.Scope == "" {
			return nil, fmt.Errorf("%s: scope is required", name)
		}
		scope, err := script.Condition(rd.Scope)
		if err != nil {
			return nil, fmt.Errorf("%s: scope: %w", name, err)
		}
		var activation effect.Condition
		if rd.Activation != "" {
			act, err := script.Condition(rd.Activation)
			if err != nil {
				return nil, fmt.Errorf("%s: activation: %w", name, err)
			}
			activation = act
		}
		effects, err := buildEffects(rd.Effects, name, log)
		if err != nil {
			return nil, err
		}
		group := &effect.Group{
			Scope:           scope,
			Activation:      activation,
			Priority:        rd.Priority,
			StackingGroup:   rd.StackingGroup,
			AccountingLabel: rd.AccountingLabel,
			Effects:         effects,
		}
		group.SetTopLevelContent(name)
		groups = append(groups, group)
	}
	return groups, nil
}

func buildEffects(docs []EffectDoc, ruleName string, log logging.Publisher) ([]effect.Effect, error) {
	var out []effect.Effect
	for _, ed := range docs {
		e, err := buildEffect(ed, ruleName, log)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func buildEffect(ed EffectDoc, ruleName string, log logging.Publisher) (effect.Effect, error) {
	switch {
	case ed.SetMeter != nil:
		mt, ok := universe.MeterTypeByName(ed.SetMeter.Meter)
		if !ok {
			return nil, fmt.Errorf("%s: unknown meter %q", ruleName, ed.SetMeter.Meter)
		}
		ref, err := script.Float(ed.SetMeter.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: set_meter: %w", ruleName, err)
		}
		return &effect.SetMeter{MeterType: mt, Value: ref}, nil
	case ed.AddSpecial != nil:
		var capacity effect.ValueRef[float64]
		if ed.AddSpecial.Capacity != "" {
			ref, err := script.Float(ed.AddSpecial.Capacity)
			if err != nil {
				return nil, fmt.Errorf("%s: add_special: %w", ruleName, err)
			}
			capacity = ref
		}
		return &effect.AddSpecial{
			Name:     effect.NewConstant(ed.AddSpecial.Name),
			Capacity: capacity,
		}, nil
	case ed.RemoveSpecial != "":
		return &effect.RemoveSpecial{Name: effect.NewConstant(ed.RemoveSpecial)}, nil
	case ed.Destroy:
		return effect.Destroy{}, nil
	case ed.Victory != "":
		return &effect.Victory{Reason: ed.Victory}, nil
	case ed.Sitrep != nil:
		affil, err := parseAffiliation(ed.Sitrep.Affiliation)
		if err != nil {
			return nil, fmt.Errorf("%s: sitrep: %w", ruleName, err)
		}
		return &effect.GenerateSitRepMessage{
			Template:    ed.Sitrep.Template,
			Icon:        ed.Sitrep.Icon,
			Affiliation: affil,
		}, nil
	case ed.Conditional != nil:
		cond, err := script.Condition(ed.Conditional.Condition)
		if err != nil {
			return nil, fmt.Errorf("%s: conditional: %w", ruleName, err)
		}
		thenEffects, err := buildEffects(ed.Conditional.Then, ruleName, log)
		if err != nil {
			return nil, err
		}
		elseEffects, err := buildEffects(ed.Conditional.Else, ruleName, log)
		if err != nil {
			return nil, err
		}
		return effect.NewConditional(cond, thenEffects, elseEffects, log), nil
	}
	return nil, fmt.Errorf("%s: effect entry sets no known kind", ruleName)
}

func parseAffiliation(s string) (effect.Affiliation, error) {
	switch s {
	case "TheEmpire":
		return effect.AffiliationSelf, nil
	case "AllyOf":
		return effect.AffiliationAlly, nil
	case "PeaceWith":
		return effect.AffiliationPeace, nil
	case "EnemyOf":
		return effect.AffiliationEnemy, nil
	case "CanSee":
		return effect.AffiliationCanSee, nil
	case "None":
		return effect.AffiliationNone, nil
	case "AnyEmpire", "":
		return effect.AffiliationAny, nil
	}
	return effect.AffiliationNone, fmt.Errorf("unknown affiliation %q", s)
}
