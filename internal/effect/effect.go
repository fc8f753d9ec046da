package effect

import (
	"context"
	"strings"

	"stardrift/engine/internal/universe"
	"stardrift/engine/logging"
	logeffects "stardrift/engine/logging/effects"
)

// TargetSet is the objects a group's scope selected for one execution.
type TargetSet = []universe.Object

// Category classifies what an effect touches, used to filter execution
// passes.
type Category uint8

const (
	CategoryMeter Category = 1 << iota
	CategoryEmpireMeter
	CategoryAppearance
	CategorySitrep
)

// Flags narrow one execution pass to a subset of effect categories.
type Flags struct {
	OnlyMeters         bool
	OnlyAppearance     bool
	OnlySitreps        bool
	IncludeEmpireMeters bool
}

// Effect is one scripted mutation. Execute applies it to the single target
// bound in the context; batch and accounting behavior is layered on by
// ApplyToTargets and ApplyFull via optional interfaces.
//
// Clone returns a deep copy: nested effect lists are copied, while value
// references and conditions are immutable after construction and shared.
// Equal is structural, with nil operands equal only to nil operands.
type Effect interface {
	Execute(ctx *Context)
	Categories() Category
	Clone() Effect
	Equal(other Effect) bool
	Dump(indent int) string
}

// targetBatcher is implemented by effects with a batch execution cheaper
// than target-by-target dispatch.
type targetBatcher interface {
	ExecuteTargets(ctx *Context, targets TargetSet)
}

// fullExecutor is implemented by effects that participate in accounting or
// honor execution flags themselves.
type fullExecutor interface {
	executeFull(ctx *Context, targets TargetSet, acct AccountingMap, flags Flags, cause Cause)
}

// ContentNamed is implemented by effects that record the content entry they
// came from, used when wiring parsed definitions to their provenance.
type ContentNamed interface {
	SetTopLevelContent(name string)
}

// ApplyToTargets runs an effect over a target set without accounting,
// preferring the effect's own batch path when it has one.
func ApplyToTargets(e Effect, ctx *Context, targets TargetSet) {
	if len(targets) == 0 {
		return
	}
	if b, ok := e.(targetBatcher); ok {
		b.ExecuteTargets(ctx, targets)
		return
	}
	for _, t := range targets {
		e.Execute(ctx.WithTarget(t))
	}
}

// passAllows reports whether the pass flags admit an effect of the given
// categories. Group execution and nested dispatch share this one gate, so a
// conditional whose category union matched the pass still cannot smuggle an
// excluded branch effect through.
func passAllows(flags Flags, c Category) bool {
	if flags.OnlyAppearance && c&CategoryAppearance == 0 {
		return false
	}
	if flags.OnlyMeters && c&CategoryMeter == 0 {
		return false
	}
	if !flags.IncludeEmpireMeters && c&CategoryEmpireMeter != 0 {
		return false
	}
	if flags.OnlySitreps && c&CategorySitrep == 0 {
		return false
	}
	return true
}

// ApplyFull runs an effect over a target set with accounting and execution
// flags available, skipping effects the pass flags exclude. Effects that do
// not implement the full form fall back to ApplyToTargets.
func ApplyFull(e Effect, ctx *Context, targets TargetSet, acct AccountingMap, flags Flags, cause Cause) {
	if !passAllows(flags, e.Categories()) {
		return
	}
	if fe, ok := e.(fullExecutor); ok {
		fe.executeFull(ctx, targets, acct, flags, cause)
		return
	}
	ApplyToTargets(e, ctx, targets)
}

// skipWrongKind publishes the standard soft-skip event for a target of the
// wrong kind.
func skipWrongKind(ctx *Context, effectName string, reason string) {
	logeffects.Skipped(context.Background(), ctx.Publisher(), ctx.CurrentTurn,
		entityRef(ctx.Source), entityRef(ctx.Target), effectName, reason)
}

// missingReferent publishes the standard missing-referent event.
func missingReferent(ctx *Context, payload logeffects.MissingReferentPayload) {
	logeffects.MissingReferent(context.Background(), ctx.Publisher(), ctx.CurrentTurn,
		entityRef(ctx.Source), payload)
}

func fallbackToGeneric(ctx *Context, effectName, reason string) {
	logeffects.Fallback(context.Background(), ctx.Publisher(), ctx.CurrentTurn,
		entityRef(ctx.Source), effectName, reason)
}

func debugEvent(ctx *Context, eventType logging.EventType, payload any) {
	ctx.Publisher().Publish(context.Background(), logging.Event{
		Type:     eventType,
		Turn:     ctx.CurrentTurn,
		Actor:    entityRef(ctx.Source),
		Severity: logging.SeverityDebug,
		Category: logging.CategoryEffects,
		Payload:  payload,
	})
}

func indentOf(indent int) string {
	return strings.Repeat("    ", indent)
}

// DumpEffects renders a list of effects in the canonical multi-line form
// used by group dumps.
func DumpEffects(effects []Effect, indent int) string {
	var b strings.Builder
	if len(effects) == 1 {
		b.WriteString(indentOf(indent))
		b.WriteString("effects =\n")
		b.WriteString(effects[0].Dump(indent + 1))
		return b.String()
	}
	b.WriteString(indentOf(indent))
	b.WriteString("effects = [\n")
	for _, e := range effects {
		b.WriteString(e.Dump(indent + 1))
	}
	b.WriteString(indentOf(indent))
	b.WriteString("]\n")
	return b.String()
}
