package script

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"

	"stardrift/engine/internal/effect"
	"stardrift/engine/internal/universe"
)

// Cond is a compiled boolean expression over the bound target.
type Cond struct {
	src             string
	program         *vm.Program
	targetInvariant bool
}

// Condition compiles a boolean expression.
func Condition(src string) (*Cond, error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", src, err)
	}
	program, err := expr.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}
	a := &analyzer{}
	ast.Walk(&tree.Node, a)
	return &Cond{
		src:             src,
		program:         program,
		targetInvariant: !a.result.usesTarget && !a.result.usesValue,
	}, nil
}

func (c *Cond) Matches(ctx *effect.Context) bool {
	out, err := vm.Run(c.program, buildEnv(ctx, nil))
	if err != nil {
		publishEvalError(ctx, c.src, err)
		return false
	}
	b, ok := out.(bool)
	if !ok {
		publishEvalError(ctx, c.src, fmt.Errorf("condition yielded %T, want bool", out))
		return false
	}
	return b
}

// Eval partitions candidates, nil meaning the whole live population. A
// target-invariant condition is evaluated once for the whole set.
func (c *Cond) Eval(ctx *effect.Context, candidates []universe.Object) (matches, rest []universe.Object) {
	if candidates == nil {
		candidates = ctx.Universe.Objects()
	}
	if c.targetInvariant {
		if c.Matches(ctx) {
			return candidates, nil
		}
		return nil, candidates
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

func (c *Cond) TargetInvariant() bool { return c.targetInvariant }

func (c *Cond) Dump() string { return c.src }
