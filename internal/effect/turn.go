package effect

import "stardrift/engine/internal/universe"

// RunTurn executes one full effects pass and the end-of-turn bookkeeping:
// groups fire in priority order with accounting, queued visibility
// directives resolve against the pre-pass state, every meter commits its new
// baseline, and queued tech grants land. The context's CurrentTurn is not
// advanced; that is the caller's clock.
func RunTurn(ctx *Context, groups []SourcedGroup) AccountingMap {
	acct := make(AccountingMap)
	ExecuteGroups(ctx, groups, acct, Flags{IncludeEmpireMeters: true})

	ctx.Universe.ApplyVisibilityDirectives()

	for _, o := range ctx.Universe.Objects() {
		universe.BackPropagateMeters(o)
	}
	for _, emp := range ctx.Empires.All() {
		for _, name := range emp.MeterNames() {
			emp.Meter(name).BackPropagate()
		}
		emp.ApplyPendingTechs(func(name string) float64 {
			if t := ctx.Content.Tech(name); t != nil {
				return t.ResearchCost
			}
			return 0
		})
	}
	return acct
}
