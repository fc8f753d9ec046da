package effect

import (
	"fmt"
	"strconv"

	"stardrift/engine/internal/empire"
	"stardrift/engine/internal/universe"
)

// Affiliation scopes which empires an effect addresses, relative to a
// designated empire or to a visibility test.
type Affiliation int

const (
	AffiliationSelf Affiliation = iota
	AffiliationAlly
	AffiliationPeace
	AffiliationEnemy
	AffiliationCanSee
	AffiliationNone
	AffiliationAny
)

func (a Affiliation) String() string {
	switch a {
	case AffiliationSelf:
		return "TheEmpire"
	case AffiliationAlly:
		return "AllyOf"
	case AffiliationPeace:
		return "PeaceWith"
	case AffiliationEnemy:
		return "EnemyOf"
	case AffiliationCanSee:
		return "CanSee"
	case AffiliationNone:
		return "None"
	}
	return "AnyEmpire"
}

// recipientEmpires resolves the empire ids an affiliation addresses.
// designated is the pivot empire for the relational affiliations; visProbe
// supplies the objects a CanSee test inspects.
func recipientEmpires(ctx *Context, affil Affiliation, designated int, visProbe []universe.Object) []int {
	var out []int
	switch affil {
	case AffiliationSelf:
		if ctx.Empires.Empire(designated) != nil {
			out = append(out, designated)
		}
	case AffiliationAlly, AffiliationPeace, AffiliationEnemy:
		want := empire.StatusAllied
		if affil == AffiliationPeace {
			want = empire.StatusPeace
		} else if affil == AffiliationEnemy {
			want = empire.StatusWar
		}
		for _, id := range ctx.Empires.IDs() {
			if id == designated {
				continue
			}
			if ctx.Empires.Status(designated, id) == want {
				out = append(out, id)
			}
		}
	case AffiliationCanSee:
		for _, id := range ctx.Empires.IDs() {
			for _, o := range visProbe {
				if ctx.Universe.Visibility(id, o.ID()) >= universe.VisibilityBasic {
					out = append(out, id)
					break
				}
			}
		}
	case AffiliationNone:
	default:
		out = append(out, ctx.Empires.IDs()...)
	}
	return out
}

// SitrepParam is one tag/value pair of a sitrep message. Values are
// evaluated once by the sender.
type SitrepParam struct {
	Tag   string
	Value ValueRef[string]
}

// shipDesignTag marks a sitrep parameter carrying a ship design id, which
// recipients must be taught so the message renders.
const shipDesignTag = "shipdesign"

// GenerateSitRepMessage delivers a situation report to every empire the
// affiliation selects. Messages become visible on the following turn.
type GenerateSitRepMessage struct {
	Template    string
	Icon        string
	Label       string
	Stringtable bool
	Params      []SitrepParam
	Affiliation Affiliation
	// Recipient pivots the relational affiliations; nil defaults to the
	// source owner.
	Recipient ValueRef[int]
	// Condition supplies the objects a CanSee affiliation probes; nil
	// probes the target.
	Condition Condition

	contentName string
}

// SetTopLevelContent records the content entry the message was parsed from.
// Delivered sitreps carry it so clients can attribute the report.
func (e *GenerateSitRepMessage) SetTopLevelContent(name string) {
	e.contentName = name
}

func (e *GenerateSitRepMessage) Categories() Category { return CategorySitrep }

func (e *GenerateSitRepMessage) Execute(ctx *Context) {
	params := make([]empire.SitrepParam, 0, len(e.Params))
	var designIDs []int
	for _, p := range e.Params {
		if p.Value == nil {
			continue
		}
		v := p.Value.Eval(ctx)
		params = append(params, empire.SitrepParam{Tag: p.Tag, Value: v})
		if p.Tag == shipDesignTag {
			if id, err := strconv.Atoi(v); err == nil {
				designIDs = append(designIDs, id)
			}
		}
	}

	designated := universe.InvalidID
	if e.Recipient != nil {
		designated = e.Recipient.Eval(ctx)
	} else if ctx.Source != nil {
		designated = ctx.Source.Owner()
	}

	probe := []universe.Object{}
	if e.Condition != nil {
		probe, _ = e.Condition.Eval(ctx, nil)
	} else if ctx.Target != nil {
		probe = append(probe, ctx.Target)
	}

	for _, id := range recipientEmpires(ctx, e.Affiliation, designated, probe) {
		emp := ctx.Empires.Empire(id)
		if emp == nil {
			continue
		}
		for _, designID := range designIDs {
			ctx.Universe.SetEmpireKnowledgeOfShipDesign(designID, id)
		}
		emp.AddSitrep(empire.Sitrep{
			Turn:        ctx.CurrentTurn + 1,
			Template:    e.Template,
			Icon:        e.Icon,
			Label:       e.Label,
			Stringtable: e.Stringtable,
			Content:     e.contentName,
			Params:      params,
		})
	}
}

func (e *GenerateSitRepMessage) Dump(indent int) string {
	return fmt.Sprintf("%sGenerateSitRepMessage message = %s affiliation = %s\n",
		indentOf(indent), e.Template, e.Affiliation)
}
