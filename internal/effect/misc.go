package effect

import (
	"fmt"

	"stardrift/engine/internal/universe"
	logeffects "stardrift/engine/logging/effects"
)

// Destroy removes the target and everything it contains, crediting the
// effect's source for the kill.
type Destroy struct{}

func (Destroy) Categories() Category { return 0 }

func (Destroy) Execute(ctx *Context) {
	if ctx.Target == nil {
		return
	}
	ctx.Universe.Destroy(ctx.Target.ID(), ctx.SourceID())
}

func (Destroy) Dump(indent int) string {
	return indentOf(indent) + "Destroy\n"
}

// NoOp does nothing, useful as a placeholder branch in conditionals.
type NoOp struct{}

func (NoOp) Categories() Category { return 0 }

func (NoOp) Execute(*Context) {}

func (NoOp) Dump(indent int) string { return indentOf(indent) + "NoOp\n" }

// AddSpecial attaches a named special to the target, or updates its capacity
// when already present. The capacity expression sees the prior capacity as
// Value, zero when the special is new.
type AddSpecial struct {
	Name     ValueRef[string]
	Capacity ValueRef[float64]
}

func (e *AddSpecial) Categories() Category { return 0 }

func (e *AddSpecial) Execute(ctx *Context) {
	if ctx.Target == nil || e.Name == nil {
		return
	}
	name := e.Name.Eval(ctx)
	prior := 0.0
	if sp, ok := ctx.Target.Specials()[name]; ok {
		prior = sp.Capacity
	}
	capacity := 1.0
	if e.Capacity != nil {
		capacity = e.Capacity.Eval(ctx.WithCurrentValue(prior))
	}
	ctx.Target.SetSpecialCapacity(name, capacity, ctx.CurrentTurn)
}

func (e *AddSpecial) Dump(indent int) string {
	return fmt.Sprintf("%sAddSpecial name = %s capacity = %s\n",
		indentOf(indent), dumpRef(e.Name), dumpRef(e.Capacity))
}

// RemoveSpecial detaches a named special from the target.
type RemoveSpecial struct {
	Name ValueRef[string]
}

func (e *RemoveSpecial) Categories() Category { return 0 }

func (e *RemoveSpecial) Execute(ctx *Context) {
	if ctx.Target == nil || e.Name == nil {
		return
	}
	ctx.Target.RemoveSpecial(e.Name.Eval(ctx))
}

func (e *RemoveSpecial) Dump(indent int) string {
	return fmt.Sprintf("%sRemoveSpecial name = %s\n", indentOf(indent), dumpRef(e.Name))
}

// AddStarlanes connects the target's system to the system of every object
// the endpoint condition selects. Lanes are bidirectional.
type AddStarlanes struct {
	Endpoints Condition
}

func (e *AddStarlanes) Categories() Category { return 0 }

func (e *AddStarlanes) Execute(ctx *Context) {
	applyLanes(ctx, e.Endpoints, "AddStarlanes", ctx.Universe.AddStarlane)
}

func (e *AddStarlanes) Dump(indent int) string {
	return fmt.Sprintf("%sAddStarlanes endpoints = %s\n", indentOf(indent), dumpCondition(e.Endpoints))
}

// RemoveStarlanes disconnects the target's system from the systems of the
// selected endpoints.
type RemoveStarlanes struct {
	Endpoints Condition
}

func (e *RemoveStarlanes) Categories() Category { return 0 }

func (e *RemoveStarlanes) Execute(ctx *Context) {
	applyLanes(ctx, e.Endpoints, "RemoveStarlanes", ctx.Universe.RemoveStarlane)
}

func (e *RemoveStarlanes) Dump(indent int) string {
	return fmt.Sprintf("%sRemoveStarlanes endpoints = %s\n", indentOf(indent), dumpCondition(e.Endpoints))
}

func applyLanes(ctx *Context, endpoints Condition, effectName string, lane func(a, b int)) {
	if ctx.Target == nil || endpoints == nil {
		return
	}
	sysID := ctx.Target.SystemID()
	if universe.GetSystem(ctx.Universe, sysID) == nil {
		skipWrongKind(ctx, effectName, "target is not in a system")
		return
	}
	matches, _ := endpoints.Eval(ctx, nil)
	seen := make(map[int]struct{})
	for _, o := range matches {
		otherID := o.SystemID()
		if otherID == universe.InvalidID || otherID == sysID {
			continue
		}
		if _, dup := seen[otherID]; dup {
			continue
		}
		seen[otherID] = struct{}{}
		lane(sysID, otherID)
	}
}

func dumpCondition(c Condition) string {
	if c == nil {
		return "(none)"
	}
	return c.Dump()
}

// Victory records a win for the target's owning empire.
type Victory struct {
	Reason string
}

func (e *Victory) Categories() Category { return 0 }

func (e *Victory) Execute(ctx *Context) {
	if ctx.Target == nil {
		return
	}
	emp := ctx.Empires.Empire(ctx.Target.Owner())
	if emp == nil {
		missingReferent(ctx, logeffects.MissingReferentPayload{
			Effect: "Victory", Referent: "empire", ID: ctx.Target.Owner(),
		})
		return
	}
	emp.Win(e.Reason)
}

func (e *Victory) Dump(indent int) string {
	return fmt.Sprintf("%sVictory reason = %s\n", indentOf(indent), e.Reason)
}

// SetEmpireTechProgress sets accumulated research toward a tech. The
// progress expression sees the prior progress as Value.
type SetEmpireTechProgress struct {
	Empire   ValueRef[int]
	TechName ValueRef[string]
	Progress ValueRef[float64]
}

func (e *SetEmpireTechProgress) Categories() Category { return 0 }

func (e *SetEmpireTechProgress) Execute(ctx *Context) {
	if e.TechName == nil || e.Progress == nil {
		return
	}
	empireID := resolveEmpireID(ctx, e.Empire)
	emp := ctx.Empires.Empire(empireID)
	if emp == nil {
		missingReferent(ctx, logeffects.MissingReferentPayload{
			Effect: "SetEmpireTechProgress", Referent: "empire", ID: empireID,
		})
		return
	}
	name := e.TechName.Eval(ctx)
	if ctx.Content.Tech(name) == nil {
		missingReferent(ctx, logeffects.MissingReferentPayload{
			Effect: "SetEmpireTechProgress", Referent: "tech", Name: name,
		})
		return
	}
	prior := emp.TechProgress(name)
	emp.SetTechProgress(name, e.Progress.Eval(ctx.WithCurrentValue(prior)))
}

func (e *SetEmpireTechProgress) Dump(indent int) string {
	return fmt.Sprintf("%sSetEmpireTechProgress tech = %s progress = %s\n",
		indentOf(indent), dumpRef(e.TechName), dumpRef(e.Progress))
}

// GiveEmpireTech queues a tech to be granted at the start of the next turn.
type GiveEmpireTech struct {
	Empire   ValueRef[int]
	TechName ValueRef[string]
}

func (e *GiveEmpireTech) Categories() Category { return 0 }

func (e *GiveEmpireTech) Execute(ctx *Context) {
	if e.TechName == nil {
		return
	}
	empireID := resolveEmpireID(ctx, e.Empire)
	emp := ctx.Empires.Empire(empireID)
	if emp == nil {
		missingReferent(ctx, logeffects.MissingReferentPayload{
			Effect: "GiveEmpireTech", Referent: "empire", ID: empireID,
		})
		return
	}
	name := e.TechName.Eval(ctx)
	if ctx.Content.Tech(name) == nil {
		missingReferent(ctx, logeffects.MissingReferentPayload{
			Effect: "GiveEmpireTech", Referent: "tech", Name: name,
		})
		return
	}
	emp.GrantTechAtStartOfNextTurn(name)
}

func (e *GiveEmpireTech) Dump(indent int) string {
	return fmt.Sprintf("%sGiveEmpireTech name = %s\n", indentOf(indent), dumpRef(e.TechName))
}
