package effect

import (
	"fmt"

	"stardrift/engine/internal/universe"
)

// Condition selects objects. Matches tests the context's bound target; Eval
// partitions a candidate slice, where nil candidates means the whole live
// object population.
type Condition interface {
	Matches(ctx *Context) bool
	Eval(ctx *Context, candidates []universe.Object) (matches, rest []universe.Object)
	TargetInvariant() bool
	Dump() string
}

// partitionByMatch is the generic Eval used by conditions defined in terms
// of Matches alone.
func partitionByMatch(c Condition, ctx *Context, candidates []universe.Object) (matches, rest []universe.Object) {
	if candidates == nil {
		candidates = ctx.Universe.Objects()
	}
	for _, o := range candidates {
		if c.Matches(ctx.WithTarget(o)) {
			matches = append(matches, o)
		} else {
			rest = append(rest, o)
		}
	}
	return matches, rest
}

// FuncCondition wraps a predicate over the bound target. TargetInvariant is
// false because the predicate inspects the target by definition.
type FuncCondition struct {
	Desc string
	Fn   func(ctx *Context) bool
}

func (c *FuncCondition) Matches(ctx *Context) bool {
	return c.Fn != nil && c.Fn(ctx)
}

func (c *FuncCondition) Eval(ctx *Context, candidates []universe.Object) ([]universe.Object, []universe.Object) {
	return partitionByMatch(c, ctx, candidates)
}

func (c *FuncCondition) TargetInvariant() bool { return false }

func (c *FuncCondition) Dump() string {
	if c.Desc == "" {
		return "Custom"
	}
	return c.Desc
}

// KindCondition matches objects of one concrete kind.
type KindCondition struct {
	Want universe.Kind
}

func (c *KindCondition) Matches(ctx *Context) bool {
	return ctx.Target != nil && ctx.Target.Kind() == c.Want
}

func (c *KindCondition) Eval(ctx *Context, candidates []universe.Object) ([]universe.Object, []universe.Object) {
	return partitionByMatch(c, ctx, candidates)
}

func (c *KindCondition) TargetInvariant() bool { return false }

func (c *KindCondition) Dump() string {
	name := c.Want.String()
	if name == "" {
		return "Kind"
	}
	return string(name[0]-'a'+'A') + name[1:]
}

// IDCondition matches exactly the objects whose ids appear in the list.
type IDCondition struct {
	IDs []int
}

func (c *IDCondition) Matches(ctx *Context) bool {
	if ctx.Target == nil {
		return false
	}
	for _, id := range c.IDs {
		if ctx.Target.ID() == id {
			return true
		}
	}
	return false
}

func (c *IDCondition) Eval(ctx *Context, candidates []universe.Object) ([]universe.Object, []universe.Object) {
	return partitionByMatch(c, ctx, candidates)
}

func (c *IDCondition) TargetInvariant() bool { return false }

func (c *IDCondition) Dump() string {
	return fmt.Sprintf("Object ids %v", c.IDs)
}

// AllCondition matches everything.
type AllCondition struct{}

func (AllCondition) Matches(ctx *Context) bool { return ctx.Target != nil }

func (AllCondition) Eval(ctx *Context, candidates []universe.Object) ([]universe.Object, []universe.Object) {
	if candidates == nil {
		candidates = ctx.Universe.Objects()
	}
	return candidates, nil
}

func (AllCondition) TargetInvariant() bool { return true }

func (AllCondition) Dump() string { return "All" }

// NoneCondition matches nothing.
type NoneCondition struct{}

func (NoneCondition) Matches(*Context) bool { return false }

func (NoneCondition) Eval(ctx *Context, candidates []universe.Object) ([]universe.Object, []universe.Object) {
	if candidates == nil {
		candidates = ctx.Universe.Objects()
	}
	return nil, candidates
}

func (NoneCondition) TargetInvariant() bool { return true }

func (NoneCondition) Dump() string { return "None" }
