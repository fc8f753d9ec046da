package effect

import (
	"context"
	"strings"

	"stardrift/engine/logging"
	logeffects "stardrift/engine/logging/effects"
)

// Conditional branches between two effect lists per target. Conditions that
// read the target are legal but costly, since the target set must be
// partitioned on every execution; construction flags them once.
type Conditional struct {
	Condition    Condition
	TrueEffects  []Effect
	FalseEffects []Effect
}

// NewConditional builds a conditional, warning once when the branch
// condition is target-dependent.
func NewConditional(cond Condition, trueEffects, falseEffects []Effect, log logging.Publisher) *Conditional {
	if cond != nil && !cond.TargetInvariant() {
		logeffects.AuthoringWarning(context.Background(), orNop(log),
			"Conditional", "condition varies per target; every execution partitions the target set")
	}
	return &Conditional{Condition: cond, TrueEffects: trueEffects, FalseEffects: falseEffects}
}

func orNop(log logging.Publisher) logging.Publisher {
	if log == nil {
		return logging.NopPublisher()
	}
	return log
}

// Categories is the union of both branches, so pass filtering never skips a
// conditional whose branches still have matching work.
func (e *Conditional) Categories() Category {
	var c Category
	for _, eff := range e.TrueEffects {
		c |= eff.Categories()
	}
	for _, eff := range e.FalseEffects {
		c |= eff.Categories()
	}
	return c
}

func (e *Conditional) Execute(ctx *Context) {
	branch := e.TrueEffects
	if e.Condition != nil && !e.Condition.Matches(ctx) {
		branch = e.FalseEffects
	}
	for _, eff := range branch {
		eff.Execute(ctx)
	}
}

// ExecuteTargets partitions the targets once and dispatches each branch over
// its share.
func (e *Conditional) ExecuteTargets(ctx *Context, targets TargetSet) {
	matched, rest := e.partition(ctx, targets)
	for _, eff := range e.TrueEffects {
		ApplyToTargets(eff, ctx, matched)
	}
	for _, eff := range e.FalseEffects {
		ApplyToTargets(eff, ctx, rest)
	}
}

// SetTopLevelContent propagates provenance into both branches.
func (e *Conditional) SetTopLevelContent(name string) {
	for _, eff := range e.TrueEffects {
		if cn, ok := eff.(ContentNamed); ok {
			cn.SetTopLevelContent(name)
		}
	}
	for _, eff := range e.FalseEffects {
		if cn, ok := eff.(ContentNamed); ok {
			cn.SetTopLevelContent(name)
		}
	}
}

// executeFull keeps accounting and flags flowing into the branches. ApplyFull
// re-applies the pass gate per branch effect, so a pass that admitted the
// conditional by its category union still skips the branch effects it
// excludes.
func (e *Conditional) executeFull(ctx *Context, targets TargetSet, acct AccountingMap, flags Flags, cause Cause) {
	matched, rest := e.partition(ctx, targets)
	for _, eff := range e.TrueEffects {
		ApplyFull(eff, ctx, matched, acct, flags, cause)
	}
	for _, eff := range e.FalseEffects {
		ApplyFull(eff, ctx, rest, acct, flags, cause)
	}
}

func (e *Conditional) partition(ctx *Context, targets TargetSet) (TargetSet, TargetSet) {
	if e.Condition == nil {
		return targets, nil
	}
	return e.Condition.Eval(ctx, targets)
}

func (e *Conditional) Dump(indent int) string {
	var b strings.Builder
	b.WriteString(indentOf(indent))
	b.WriteString("If\n")
	b.WriteString(indentOf(indent + 1))
	b.WriteString("condition =\n")
	b.WriteString(indentOf(indent + 2))
	b.WriteString(dumpCondition(e.Condition))
	b.WriteString("\n")
	b.WriteString(DumpEffects(e.TrueEffects, indent+1))
	if len(e.FalseEffects) > 0 {
		b.WriteString(indentOf(indent + 1))
		b.WriteString("else =\n")
		b.WriteString(DumpEffects(e.FalseEffects, indent+2))
	}
	return b.String()
}
