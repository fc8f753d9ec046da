package effect

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"stardrift/engine/internal/universe"
	logeffects "stardrift/engine/logging/effects"
)

// Group bundles effects behind a scope and an activation condition, the unit
// content scripts attach to techs, buildings, species and specials.
type Group struct {
	Scope      Condition
	Activation Condition
	// StackingGroup suppresses repeat application: within one pass, a
	// target takes effects from at most one group per non-empty stacking
	// group name.
	StackingGroup   string
	Priority        int
	Effects         []Effect
	AccountingLabel string
	Description     string

	contentName string
}

// SetTopLevelContent records the content entry the group was parsed from and
// propagates it to effects that track provenance.
func (g *Group) SetTopLevelContent(name string) {
	g.contentName = name
	for _, e := range g.Effects {
		if cn, ok := e.(ContentNamed); ok {
			cn.SetTopLevelContent(name)
		}
	}
}

func (g *Group) ContentName() string { return g.contentName }

// Active reports whether the group fires for the given source. A nil
// activation condition always fires; activation is tested against the
// source, not the targets.
func (g *Group) Active(ctx *Context) bool {
	if g.Activation == nil {
		return true
	}
	if ctx.Source == nil {
		return false
	}
	return g.Activation.Matches(ctx.WithTarget(ctx.Source))
}

// Targets computes the group's target set: nothing when inactive, otherwise
// every object the scope matches.
func (g *Group) Targets(ctx *Context) TargetSet {
	if !g.Active(ctx) || g.Scope == nil {
		return nil
	}
	matches, _ := g.Scope.Eval(ctx, nil)
	return matches
}

// Execute runs the group's effects in declaration order over the target
// set, skipping the ones the pass flags exclude.
func (g *Group) Execute(ctx *Context, targets TargetSet, acct AccountingMap, flags Flags, cause Cause) {
	if ctx.Source == nil {
		logeffects.GroupNoSource(context.Background(), ctx.Publisher(), ctx.CurrentTurn, g.contentName)
	}
	if g.AccountingLabel != "" {
		cause.CustomLabel = g.AccountingLabel
	}
	for _, e := range g.Effects {
		ApplyFull(e, ctx, targets, acct, flags, cause)
	}
}

// HasMeterEffects reports whether any effect touches object or empire
// meters.
func (g *Group) HasMeterEffects() bool {
	return g.categoriesUnion()&(CategoryMeter|CategoryEmpireMeter) != 0
}

func (g *Group) HasAppearanceEffects() bool {
	return g.categoriesUnion()&CategoryAppearance != 0
}

func (g *Group) HasSitrepEffects() bool {
	return g.categoriesUnion()&CategorySitrep != 0
}

func (g *Group) categoriesUnion() Category {
	var c Category
	for _, e := range g.Effects {
		c |= e.Categories()
	}
	return c
}

// Dump renders the group in the canonical script-like form.
func (g *Group) Dump(indent int) string {
	var b strings.Builder
	b.WriteString(indentOf(indent))
	b.WriteString("EffectsGroup")
	if g.contentName != "" {
		b.WriteString(fmt.Sprintf(" // from %s", g.contentName))
	}
	b.WriteString("\n")
	b.WriteString(indentOf(indent + 1))
	b.WriteString("scope =\n")
	b.WriteString(indentOf(indent + 2))
	b.WriteString(dumpCondition(g.Scope))
	b.WriteString("\n")
	if g.Activation != nil {
		b.WriteString(indentOf(indent + 1))
		b.WriteString("activation =\n")
		b.WriteString(indentOf(indent + 2))
		b.WriteString(g.Activation.Dump())
		b.WriteString("\n")
	}
	if g.StackingGroup != "" {
		b.WriteString(indentOf(indent + 1))
		b.WriteString(fmt.Sprintf("stackinggroup = %s\n", g.StackingGroup))
	}
	b.WriteString(DumpEffects(g.Effects, indent+1))
	return b.String()
}

// SourcedGroup pairs a group with the source object and cause it executes
// for in one pass.
type SourcedGroup struct {
	Group  *Group
	Source universe.Object
	Cause  Cause
}

// ExecuteGroups runs groups in ascending priority, preserving declaration
// order within a priority. Target sets are gathered for every group before
// any group executes, so each scope is judged against the pre-pass state
// rather than the mutations of earlier groups. Stacking groups are honored
// during gathering: once a target is claimed by a group with a non-empty
// stacking group name, later groups naming the same stacking group drop
// that target.
func ExecuteGroups(ctx *Context, groups []SourcedGroup, acct AccountingMap, flags Flags) {
	ordered := make([]SourcedGroup, len(groups))
	copy(ordered, groups)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Group.Priority < ordered[j].Group.Priority
	})

	type gathered struct {
		sg      SourcedGroup
		ctx     *Context
		targets TargetSet
	}
	plan := make([]gathered, 0, len(ordered))
	stacked := make(map[string]map[int]struct{})
	for _, sg := range ordered {
		gctx := ctx
		if sg.Source != nil {
			c := *ctx
			c.Source = sg.Source
			gctx = &c
		}
		targets := sg.Group.Targets(gctx)
		if name := sg.Group.StackingGroup; name != "" {
			taken, ok := stacked[name]
			if !ok {
				taken = make(map[int]struct{})
				stacked[name] = taken
			}
			var filtered TargetSet
			for _, t := range targets {
				if _, dup := taken[t.ID()]; dup {
					continue
				}
				taken[t.ID()] = struct{}{}
				filtered = append(filtered, t)
			}
			targets = filtered
		}
		plan = append(plan, gathered{sg: sg, ctx: gctx, targets: targets})
	}
	for _, g := range plan {
		g.sg.Group.Execute(g.ctx, g.targets, acct, flags, g.sg.Cause)
	}
}
