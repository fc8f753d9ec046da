// Package effect implements scripted game effects: the atomic mutations that
// content scripts apply to planets, ships, fleets, systems, fields,
// buildings and empires, plus the groups that scope and order them.
package effect

import (
	"math/rand"

	"stardrift/engine/internal/content"
	"stardrift/engine/internal/empire"
	"stardrift/engine/internal/species"
	"stardrift/engine/internal/universe"
	"stardrift/engine/logging"
)

// Pathfinder computes starlane routes for movement effects.
type Pathfinder interface {
	ShortestPath(from, to, empireID int, u *universe.Universe) (path []int, length float64, ok bool)
}

// Context carries everything an effect needs to evaluate and execute. It is
// a value: execution derives per-target copies with WithTarget instead of
// mutating a shared instance, so no global state is consulted anywhere.
type Context struct {
	CurrentTurn int

	Universe *universe.Universe
	Empires  *empire.Manager
	Species  *species.Manager
	Content  *content.Registry

	Pathfinder Pathfinder
	Log        logging.Publisher
	Rand       *rand.Rand

	// Source is the object whose content produced the effect.
	Source universe.Object
	// Target is the object currently being acted on.
	Target universe.Object
	// CurrentValue seeds Value references during evaluation, typically the
	// meter or property value about to be replaced.
	CurrentValue any
}

// WithTarget returns a copy of the context bound to a different target.
func (ctx Context) WithTarget(t universe.Object) *Context {
	ctx.Target = t
	return &ctx
}

// WithCurrentValue returns a copy carrying a new prior value.
func (ctx Context) WithCurrentValue(v any) *Context {
	ctx.CurrentValue = v
	return &ctx
}

// SourceID is the source object's id, or universe.InvalidID when execution
// has no source bound.
func (ctx *Context) SourceID() int {
	if ctx.Source == nil {
		return universe.InvalidID
	}
	return ctx.Source.ID()
}

// TargetID is the target object's id, or universe.InvalidID.
func (ctx *Context) TargetID() int {
	if ctx.Target == nil {
		return universe.InvalidID
	}
	return ctx.Target.ID()
}

// Publisher returns the bound log publisher, never nil.
func (ctx *Context) Publisher() logging.Publisher {
	if ctx.Log == nil {
		return logging.NopPublisher()
	}
	return ctx.Log
}

// roll returns a pseudo-random int in [0, n) from the context's generator,
// falling back to the global source when none is bound.
func (ctx *Context) roll(n int) int {
	if n <= 1 {
		return 0
	}
	if ctx.Rand != nil {
		return ctx.Rand.Intn(n)
	}
	return rand.Intn(n)
}

// entityRef builds a log reference for an object, tolerating nil.
func entityRef(o universe.Object) logging.EntityRef {
	if o == nil {
		return logging.EntityRef{ID: universe.InvalidID}
	}
	return logging.EntityRef{ID: o.ID(), Kind: logging.EntityKind(o.Kind().String())}
}
