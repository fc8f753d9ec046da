package effect

import (
	"fmt"

	"stardrift/engine/internal/empire"
	"stardrift/engine/internal/universe"
	logeffects "stardrift/engine/logging/effects"
)

// SetMeter replaces the current value of one meter on each target. The value
// expression sees the meter's prior value as Value.
type SetMeter struct {
	MeterType universe.MeterType
	Value     ValueRef[float64]
	// AccountingLabel overrides the cause label in accounting entries when
	// non-empty.
	AccountingLabel string
}

func (e *SetMeter) Categories() Category { return CategoryMeter }

func (e *SetMeter) Execute(ctx *Context) {
	if ctx.Target == nil || e.Value == nil {
		return
	}
	m := ctx.Target.Meter(e.MeterType)
	if m == nil {
		skipWrongKind(ctx, e.name(), "target lacks meter")
		return
	}
	m.SetCurrent(e.Value.Eval(ctx.WithCurrentValue(m.Current())))
}

// ExecuteTargets is the no-accounting batch path. A target-invariant value
// is evaluated once and assigned to every target; a simple increment is
// evaluated once and added to every target; anything else falls back to
// per-target evaluation.
func (e *SetMeter) ExecuteTargets(ctx *Context, targets TargetSet) {
	if e.Value == nil {
		return
	}
	if e.Value.TargetInvariant() {
		v := e.Value.Eval(ctx)
		for _, t := range targets {
			if m := t.Meter(e.MeterType); m != nil {
				m.SetCurrent(v)
			}
		}
		return
	}
	if inc, ok := e.Value.(Incrementable); ok && inc.SimpleIncrement() {
		rhs, negate, ok := inc.Increment()
		if !ok || rhs == nil || !rhs.TargetInvariant() {
			fallbackToGeneric(ctx, e.name(), "increment term unavailable or target-variant")
		} else {
			delta := rhs.Eval(ctx)
			if negate {
				delta = -delta
			}
			for _, t := range targets {
				if m := t.Meter(e.MeterType); m != nil {
					m.AddToCurrent(delta)
				}
			}
			return
		}
	}
	for _, t := range targets {
		e.Execute(ctx.WithTarget(t))
	}
}

// executeFull runs per target so each change can be recorded against the
// meter's running total.
func (e *SetMeter) executeFull(ctx *Context, targets TargetSet, acct AccountingMap, flags Flags, cause Cause) {
	if acct == nil {
		e.ExecuteTargets(ctx, targets)
		return
	}
	if e.AccountingLabel != "" {
		cause.CustomLabel = e.AccountingLabel
	}
	for _, t := range targets {
		m := t.Meter(e.MeterType)
		if m == nil {
			skipWrongKind(ctx.WithTarget(t), e.name(), "target lacks meter")
			continue
		}
		before := m.Current()
		e.Execute(ctx.WithTarget(t))
		after := m.Current()
		acct.Record(t.ID(), e.MeterType, AccountingEntry{
			Cause:        cause,
			SourceID:     ctx.SourceID(),
			MeterChange:  after - before,
			RunningTotal: after,
		})
	}
}

func (e *SetMeter) name() string { return "Set" + e.MeterType.String() }

func (e *SetMeter) Dump(indent int) string {
	return fmt.Sprintf("%s%s value = %s\n", indentOf(indent), e.name(), dumpRef(e.Value))
}

// SetShipPartMeter replaces a per-part meter on target ships. Targets that
// are not ships, or ships whose design does not mount the named part, are
// skipped.
type SetShipPartMeter struct {
	MeterType universe.MeterType
	PartName  ValueRef[string]
	Value     ValueRef[float64]
}

func (e *SetShipPartMeter) Categories() Category { return CategoryMeter }

func (e *SetShipPartMeter) Execute(ctx *Context) {
	if e.PartName == nil || e.Value == nil {
		return
	}
	ship, ok := ctx.Target.(*universe.Ship)
	if !ok {
		skipWrongKind(ctx, "SetShipPartMeter", "target is not a ship")
		return
	}
	part := e.PartName.Eval(ctx)
	if !designMountsPart(ctx.Universe, ship, part) {
		missingReferent(ctx, logeffects.MissingReferentPayload{
			Effect: "SetShipPartMeter", Referent: "ship part", Name: part, ID: ship.ID(),
		})
		return
	}
	m := ship.PartMeter(e.MeterType, part)
	m.SetCurrent(e.Value.Eval(ctx.WithCurrentValue(m.Current())))
}

// ExecuteTargets applies the batch shortcuts only when the part name itself
// is target-invariant. A per-target part name forces the generic path.
// TODO: partition targets by evaluated part name so variant names can still
// batch per partition.
func (e *SetShipPartMeter) ExecuteTargets(ctx *Context, targets TargetSet) {
	if e.PartName == nil || e.Value == nil {
		return
	}
	if !e.PartName.TargetInvariant() {
		debugEvent(ctx, logeffects.EventFallback, logeffects.FallbackPayload{
			Effect: "SetShipPartMeter", Reason: "part name varies per target",
		})
		for _, t := range targets {
			e.Execute(ctx.WithTarget(t))
		}
		return
	}
	part := e.PartName.Eval(ctx)
	assign := func(apply func(m *universe.Meter)) {
		for _, t := range targets {
			ship, ok := t.(*universe.Ship)
			if !ok {
				skipWrongKind(ctx.WithTarget(t), "SetShipPartMeter", "target is not a ship")
				continue
			}
			if !designMountsPart(ctx.Universe, ship, part) {
				missingReferent(ctx.WithTarget(t), logeffects.MissingReferentPayload{
					Effect: "SetShipPartMeter", Referent: "ship part", Name: part, ID: ship.ID(),
				})
				continue
			}
			apply(ship.PartMeter(e.MeterType, part))
		}
	}
	if e.Value.TargetInvariant() {
		v := e.Value.Eval(ctx)
		assign(func(m *universe.Meter) { m.SetCurrent(v) })
		return
	}
	if inc, ok := e.Value.(Incrementable); ok && inc.SimpleIncrement() {
		rhs, negate, ok := inc.Increment()
		if !ok || rhs == nil || !rhs.TargetInvariant() {
			fallbackToGeneric(ctx, "SetShipPartMeter", "increment term unavailable or target-variant")
		} else {
			delta := rhs.Eval(ctx)
			if negate {
				delta = -delta
			}
			assign(func(m *universe.Meter) { m.AddToCurrent(delta) })
			return
		}
	}
	for _, t := range targets {
		e.Execute(ctx.WithTarget(t))
	}
}

func (e *SetShipPartMeter) Dump(indent int) string {
	return fmt.Sprintf("%sSetShipPartMeter meter = %s partname = %s value = %s\n",
		indentOf(indent), e.MeterType, dumpRef(e.PartName), dumpRef(e.Value))
}

func designMountsPart(u *universe.Universe, ship *universe.Ship, part string) bool {
	d := u.Design(ship.DesignID())
	if d == nil {
		return false
	}
	for _, p := range d.Parts {
		if p == part {
			return true
		}
	}
	return false
}

// SetEmpireMeter replaces a named meter on an empire. With no empire
// reference the target's owner is used. The meter must already exist.
type SetEmpireMeter struct {
	EmpireID ValueRef[int]
	Meter    string
	Value    ValueRef[float64]
}

func (e *SetEmpireMeter) Categories() Category { return CategoryMeter | CategoryEmpireMeter }

func (e *SetEmpireMeter) Execute(ctx *Context) {
	if e.Value == nil {
		return
	}
	empireID := resolveEmpireID(ctx, e.EmpireID)
	emp := ctx.Empires.Empire(empireID)
	if emp == nil {
		missingReferent(ctx, logeffects.MissingReferentPayload{
			Effect: "SetEmpireMeter", Referent: "empire", ID: empireID,
		})
		return
	}
	if !emp.HasMeter(e.Meter) {
		missingReferent(ctx, logeffects.MissingReferentPayload{
			Effect: "SetEmpireMeter", Referent: "empire meter", Name: e.Meter, ID: empireID,
		})
		return
	}
	m := emp.Meter(e.Meter)
	m.SetCurrent(e.Value.Eval(ctx.WithCurrentValue(m.Current())))
}

// executeFull honors the empire-meter gate locally as well, so direct
// dispatch outside a group pass cannot move empire meters the pass excluded.
func (e *SetEmpireMeter) executeFull(ctx *Context, targets TargetSet, _ AccountingMap, flags Flags, _ Cause) {
	if !flags.IncludeEmpireMeters || flags.OnlyAppearance || flags.OnlySitreps {
		return
	}
	for _, t := range targets {
		e.Execute(ctx.WithTarget(t))
	}
}

func (e *SetEmpireMeter) Dump(indent int) string {
	return fmt.Sprintf("%sSetEmpireMeter empire = %s meter = %s value = %s\n",
		indentOf(indent), dumpRef(e.EmpireID), e.Meter, dumpRef(e.Value))
}

// SetEmpireStockpile replaces a resource stockpile on an empire. The value
// expression sees the prior stockpile as Value.
type SetEmpireStockpile struct {
	EmpireID ValueRef[int]
	Resource empire.ResourceType
	Value    ValueRef[float64]
}

func (e *SetEmpireStockpile) Categories() Category { return 0 }

func (e *SetEmpireStockpile) Execute(ctx *Context) {
	if e.Value == nil {
		return
	}
	empireID := resolveEmpireID(ctx, e.EmpireID)
	emp := ctx.Empires.Empire(empireID)
	if emp == nil {
		missingReferent(ctx, logeffects.MissingReferentPayload{
			Effect: "SetEmpireStockpile", Referent: "empire", ID: empireID,
		})
		return
	}
	prior := emp.Stockpile(e.Resource)
	emp.SetStockpile(e.Resource, e.Value.Eval(ctx.WithCurrentValue(prior)))
}

func (e *SetEmpireStockpile) Dump(indent int) string {
	return fmt.Sprintf("%sSetEmpireStockpile resource = %s value = %s\n",
		indentOf(indent), e.Resource, dumpRef(e.Value))
}

// resolveEmpireID evaluates an optional empire reference, defaulting to the
// target's owner.
func resolveEmpireID(ctx *Context, ref ValueRef[int]) int {
	if ref != nil {
		return ref.Eval(ctx)
	}
	if ctx.Target == nil {
		return universe.InvalidID
	}
	return ctx.Target.Owner()
}
