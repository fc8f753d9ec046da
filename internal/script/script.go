// Package script compiles content-authored expressions into value references
// and conditions for the effect engine. Expressions see the bound objects as
// Target and Source, the prior value as Value, and the turn as Turn.
//
// Compilation inspects the expression tree once to classify it: expressions
// that never read Target or Value are target-invariant and qualify for the
// evaluate-once batch shortcut, and "Value + k" / "Value - k" shapes qualify
// for the increment shortcut.
package script

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"

	"stardrift/engine/internal/effect"
	"stardrift/engine/internal/universe"
	"stardrift/engine/logging"
)

// Ref is a compiled expression yielding a T.
type Ref[T any] struct {
	src     string
	program *vm.Program
	conv    func(any) (T, bool)
	consts  map[string]any

	targetInvariant bool
	constant        bool

	simpleIncrement bool
	incRHS          effect.ValueRef[float64]
	incNegate       bool
}

type analysis struct {
	usesTarget  bool
	usesValue   bool
	usesAnyGame bool
}

// analyzer classifies identifier usage. Identifiers naming compile-time
// constants (enum names) do not count as game-state reads.
type analyzer struct {
	consts map[string]any
	result analysis
}

func (a *analyzer) Visit(node *ast.Node) {
	id, ok := (*node).(*ast.IdentifierNode)
	if !ok {
		return
	}
	if _, isConst := a.consts[id.Value]; isConst {
		return
	}
	switch id.Value {
	case "Target":
		a.result.usesTarget = true
		a.result.usesAnyGame = true
	case "Value":
		a.result.usesValue = true
		a.result.usesAnyGame = true
	default:
		a.result.usesAnyGame = true
	}
}

func compileRef[T any](src string, conv func(any) (T, bool), consts map[string]any) (*Ref[T], error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", src, err)
	}
	program, err := expr.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}
	a := &analyzer{consts: consts}
	ast.Walk(&tree.Node, a)

	r := &Ref[T]{
		src:             src,
		program:         program,
		conv:            conv,
		consts:          consts,
		targetInvariant: !a.result.usesTarget && !a.result.usesValue,
		constant:        !a.result.usesAnyGame,
	}
	r.detectIncrement(tree.Node)
	return r, nil
}

// detectIncrement recognizes the "Value + k" and "Value - k" shapes. The k
// term is recompiled from its printed form; when that fails the shape flag
// stays set with no term, which callers treat as a forced fallback.
func (r *Ref[T]) detectIncrement(root ast.Node) {
	bin, ok := root.(*ast.BinaryNode)
	if !ok || (bin.Operator != "+" && bin.Operator != "-") {
		return
	}
	lhs, ok := bin.Left.(*ast.IdentifierNode)
	if !ok || lhs.Value != "Value" {
		return
	}
	rhsA := &analyzer{consts: r.consts}
	node := bin.Right
	ast.Walk(&node, rhsA)
	if rhsA.result.usesTarget || rhsA.result.usesValue {
		return
	}
	r.simpleIncrement = true
	r.incNegate = bin.Operator == "-"
	rhs, err := compileRef(bin.Right.String(), toFloat, r.consts)
	if err != nil {
		return
	}
	r.incRHS = rhs
}

func (r *Ref[T]) Eval(ctx *effect.Context) T {
	var zero T
	env := buildEnv(ctx, r.consts)
	out, err := vm.Run(r.program, env)
	if err != nil {
		publishEvalError(ctx, r.src, err)
		return zero
	}
	v, ok := r.conv(out)
	if !ok {
		publishEvalError(ctx, r.src, fmt.Errorf("unexpected result type %T", out))
		return zero
	}
	return v
}

func (r *Ref[T]) TargetInvariant() bool { return r.targetInvariant }
func (r *Ref[T]) ConstantExpr() bool    { return r.constant }
func (r *Ref[T]) Dump() string          { return r.src }

// SimpleIncrement reports the "Value +/- k" shape.
func (r *Ref[T]) SimpleIncrement() bool { return r.simpleIncrement }

// Increment returns the k term. ok is false when the shape was recognized
// but the term could not be compiled.
func (r *Ref[T]) Increment() (effect.ValueRef[float64], bool, bool) {
	return r.incRHS, r.incNegate, r.incRHS != nil
}

func publishEvalError(ctx *effect.Context, src string, err error) {
	ctx.Publisher().Publish(context.Background(), logging.Event{
		Type:     "script.eval_error",
		Turn:     ctx.CurrentTurn,
		Severity: logging.SeverityError,
		Category: logging.CategoryEffects,
		Payload:  map[string]string{"expr": src, "error": err.Error()},
	})
}

// Float compiles an expression yielding a float64.
func Float(src string) (*Ref[float64], error) {
	return compileRef(src, toFloat, nil)
}

// Int compiles an expression yielding an int.
func Int(src string) (*Ref[int], error) {
	return compileRef(src, toInt, nil)
}

// String compiles an expression yielding a string.
func String(src string) (*Ref[string], error) {
	return compileRef(src, toString, nil)
}

// PlanetType compiles an expression yielding a planet type. Type names are
// available as constants.
func PlanetType(src string) (*Ref[universe.PlanetType], error) {
	return compileRef(src, enumConv(universe.PlanetType(0)), planetTypeConsts())
}

// PlanetSize compiles an expression yielding a planet size class.
func PlanetSize(src string) (*Ref[universe.PlanetSize], error) {
	return compileRef(src, enumConv(universe.PlanetSize(0)), planetSizeConsts())
}

// StarType compiles an expression yielding a star class.
func StarType(src string) (*Ref[universe.StarType], error) {
	return compileRef(src, enumConv(universe.StarType(0)), starTypeConsts())
}

// Visibility compiles an expression yielding a visibility level.
func Visibility(src string) (*Ref[universe.VisibilityLevel], error) {
	return compileRef(src, enumConv(universe.VisibilityLevel(0)), visibilityConsts())
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func toString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// enumConv builds a converter from the numeric result to the enum type.
func enumConv[E ~int](E) func(any) (E, bool) {
	return func(v any) (E, bool) {
		n, ok := toInt(v)
		if !ok {
			return E(-1), false
		}
		return E(n), true
	}
}

func planetTypeConsts() map[string]any {
	out := make(map[string]any)
	for pt := universe.PlanetTypeSwamp; pt <= universe.PlanetTypeGasGiant; pt++ {
		out[pt.String()] = int(pt)
	}
	return out
}

func planetSizeConsts() map[string]any {
	out := make(map[string]any)
	for ps := universe.PlanetSizeNone; ps <= universe.PlanetSizeGasGiant; ps++ {
		name := ps.String()
		// Asteroids and GasGiant collide with the planet type names, which
		// is harmless as the values are used in distinct expressions.
		out[name] = int(ps)
	}
	return out
}

func starTypeConsts() map[string]any {
	out := make(map[string]any)
	for st := universe.StarTypeBlue; st <= universe.StarTypeNoStar; st++ {
		out[st.String()] = int(st)
	}
	return out
}

func visibilityConsts() map[string]any {
	out := make(map[string]any)
	for v := universe.VisibilityNone; v <= universe.VisibilityFull; v++ {
		out[v.String()] = int(v)
	}
	return out
}
