package effect

import (
	"context"
	"fmt"

	"stardrift/engine/internal/universe"
	logeffects "stardrift/engine/logging/effects"
)

// SetVisibility queues visibility overrides for the affected empires rather
// than applying them inline, so every directive from a pass resolves against
// the same pre-pass visibility state. The level expression sees the
// recipient's current level as Value when the directive is applied.
type SetVisibility struct {
	Level       ValueRef[universe.VisibilityLevel]
	Affiliation Affiliation
	// Empire pivots the relational affiliations; nil defaults to the source
	// owner.
	Empire ValueRef[int]
	// OfObjects selects what becomes visible; nil means the target itself.
	OfObjects Condition
}

func (e *SetVisibility) Categories() Category { return 0 }

func (e *SetVisibility) Execute(ctx *Context) {
	if e.Level == nil {
		return
	}
	if e.Affiliation == AffiliationCanSee {
		logeffects.AuthoringWarning(context.Background(), ctx.Publisher(),
			"SetVisibility", "CanSee affiliation is not supported here and selects nobody")
		return
	}
	designated := universe.InvalidID
	if e.Empire != nil {
		designated = e.Empire.Eval(ctx)
	} else if ctx.Source != nil {
		designated = ctx.Source.Owner()
	}

	var objects []universe.Object
	if e.OfObjects != nil {
		objects, _ = e.OfObjects.Eval(ctx, nil)
	} else if ctx.Target != nil {
		objects = append(objects, ctx.Target)
	}

	for _, empireID := range recipientEmpires(ctx, e.Affiliation, designated, nil) {
		for _, o := range objects {
			octx := ctx.WithTarget(o)
			level := e.Level
			ctx.Universe.QueueVisibilityDirective(universe.VisibilityDirective{
				EmpireID: empireID,
				ObjectID: o.ID(),
				SourceID: ctx.SourceID(),
				Eval: func(current universe.VisibilityLevel) universe.VisibilityLevel {
					return level.Eval(octx.WithCurrentValue(current))
				},
			})
		}
	}
}

func (e *SetVisibility) Dump(indent int) string {
	return fmt.Sprintf("%sSetVisibility affiliation = %s level = %s\n",
		indentOf(indent), e.Affiliation, dumpRef(e.Level))
}
