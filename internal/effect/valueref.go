package effect

import (
	"fmt"

	"stardrift/engine/internal/universe"
)

// ValueRef is an evaluatable expression yielding a T. Implementations are
// immutable after construction, so effects share them freely.
//
// TargetInvariant reports that evaluation never reads the bound target, which
// lets callers evaluate once and reuse the result across a target set.
// ConstantExpr additionally reports independence from all game state.
type ValueRef[T any] interface {
	Eval(ctx *Context) T
	TargetInvariant() bool
	ConstantExpr() bool
	Dump() string
}

// Incrementable is implemented by float references whose expression is a
// plain adjustment of the prior value, "Value + k" or "Value - k". Increment
// returns the k term and whether it is subtracted. ok is false when the
// reference claimed the shape but cannot actually produce the term; callers
// must then fall back to generic evaluation.
type Incrementable interface {
	SimpleIncrement() bool
	Increment() (rhs ValueRef[float64], negate bool, ok bool)
}

// Constant is a fixed-value reference.
type Constant[T any] struct {
	value T
}

func NewConstant[T any](v T) Constant[T] { return Constant[T]{value: v} }

func (c Constant[T]) Eval(*Context) T        { return c.value }
func (c Constant[T]) TargetInvariant() bool  { return true }
func (c Constant[T]) ConstantExpr() bool     { return true }
func (c Constant[T]) Dump() string           { return fmt.Sprintf("%v", c.value) }

// OwnerRef evaluates to the target's owning empire id.
type OwnerRef struct{}

func (OwnerRef) Eval(ctx *Context) int {
	if ctx.Target == nil {
		return universe.InvalidID
	}
	return ctx.Target.Owner()
}

func (OwnerRef) TargetInvariant() bool { return false }
func (OwnerRef) ConstantExpr() bool    { return false }
func (OwnerRef) Dump() string          { return "Target.Owner" }

// SourceOwnerRef evaluates to the source's owning empire id.
type SourceOwnerRef struct{}

func (SourceOwnerRef) Eval(ctx *Context) int {
	if ctx.Source == nil {
		return universe.InvalidID
	}
	return ctx.Source.Owner()
}

func (SourceOwnerRef) TargetInvariant() bool { return true }
func (SourceOwnerRef) ConstantExpr() bool    { return false }
func (SourceOwnerRef) Dump() string          { return "Source.Owner" }

func dumpRef[T any](ref ValueRef[T]) string {
	if ref == nil {
		return "(none)"
	}
	return ref.Dump()
}
