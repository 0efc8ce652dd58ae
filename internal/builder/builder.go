// Package builder implements the recursive search that turns a catalog, a
// set of constraints, and a starting seed into a finished kingdom
// selection.
package builder

import (
	"fmt"

	"kingdomgen/internal/apperrors"
	"kingdomgen/internal/catalog"
	"kingdomgen/internal/cost"
	"kingdomgen/internal/pile"
	"kingdomgen/internal/property"
	"kingdomgen/internal/randstream"
	"kingdomgen/internal/selection"
)

const (
	haveCostPenalty = -3.0
	voteThreshold   = 0.5
	// 0.2 produced non-deterministic results across runs with identical
	// seeds; 0.21 does not.
	voteTolerance = 0.21
)

// Builder runs the recursive search over a fixed catalog.
type Builder struct {
	col *catalog.Catalog
}

// New creates a Builder bound to col.
func New(col *catalog.Catalog) *Builder { return &Builder{col: col} }

// BuildFunc returns this builder's recursive step as an action.BuildFunc,
// for wiring into constraints and actions that need to recurse back into
// the search.
func (b *Builder) BuildFunc() func(*selection.Selection) (*selection.Selection, error) {
	return b.Build
}

// Build is the core recursive search step. It may mutate start directly
// (clearing its cost-target recheck flag) even when it ultimately returns
// a different, duplicated selection — callers must treat start as
// consumed once passed in, exactly as decker-rs's build_selection does.
//
// Order of checks, each pass:
//  1. Has any constraint failed outright?
//  2. Does any constraint require action?
//  3. Is the market already full? If so, stop here.
//  4. Do any cost targets still need a matching pile?
//  5. Otherwise, add the next pile from the general iteration order.
func (b *Builder) Build(start *selection.Selection) (*selection.Selection, error) {
	constraints := start.Constraints()
	statuses := make([]selection.Status, len(constraints))
	for i, c := range constraints {
		st := c.GetStatus(start)
		if st == selection.StatusFail {
			return nil, &apperrors.ConstraintFailError{Label: c.Label()}
		}
		statuses[i] = st
	}

	supplyCap := start.NormalPileCount() == start.RequiredCount()

	for i, st := range statuses {
		if st == selection.StatusActionRequired {
			return constraints[i].Act(start)
		}
	}
	if supplyCap {
		return start, nil
	}

	if start.NeedToCheckCostTargets() {
		if res, err, handled := b.tryCostTargets(start); handled {
			return res, err
		}
	}
	start.SetNeedToCheck(false, "")

	for {
		gen, ok := start.GeneralPile()
		if !ok {
			break
		}
		if start.Contains(gen) {
			continue
		}
		newSel := start.Duplicate()
		if !newSel.AddPile(gen) {
			return nil, &apperrors.AddRejectedError{Pile: gen.Name()}
		}
		newSel.TagPile(gen, "<why?general>")
		if res, err := b.Build(newSel); err == nil {
			return res, nil
		}
	}
	return nil, &apperrors.ActionExhaustedError{Label: "general"}
}

// tryCostTargets is Build's cost-target branch, split out for readability.
// handled reports whether it produced a final answer (true, even on
// error); when false the caller should fall through to general selection.
func (b *Builder) tryCostTargets(start *selection.Selection) (*selection.Selection, error, bool) {
	needTargetAction := false
	costs := start.CostSet()
	votes := cost.NewVotes(b.col.LegalCosts())
	for _, tar := range start.TargetSet() {
		if tar.AddVotes(costs, votes) {
			needTargetAction = true
		}
	}
	for c := range costs {
		votes.Add(c, haveCostPenalty)
	}

	maxCost, ok := votes.MaxWeighted(voteThreshold, voteTolerance)
	if !ok {
		return nil, nil, false
	}

	it, ok := b.col.Iterators(property.NewCost(maxCost, true))
	if !ok {
		if needTargetAction {
			return nil, &apperrors.NoMatchError{Property: "cost-target"}, true
		}
		return nil, nil, false
	}

	for next, ok := it.Next(); ok; next, ok = it.Next() {
		if start.Contains(next) {
			continue
		}
		newSel := start.Duplicate()
		if !needTargetAction {
			newSel.SetNeedToCheck(false, "")
		}
		blame := newSel.TargetBlame()
		if !newSel.AddPile(next) {
			if !needTargetAction {
				start.SetNeedToCheck(false, "")
				break
			}
			return nil, &apperrors.AddRejectedError{Pile: next.Name()}, true
		}
		why := fmt.Sprintf("<why?cost-target:%s>", blame)
		newSel.TagPile(next, why)
		if res, err := b.Build(newSel); err == nil {
			return res, nil, true
		}
	}
	return nil, nil, false
}

// StartSelection seeds a fresh selection with every base-group pile and,
// if requested, the first landscapes piles from the optional-extras
// iteration order.
func (b *Builder) StartSelection(marketCap, landscapes int) (*selection.Selection, error) {
	begin, ok := b.col.Iterators(property.NewCardGroup("base"))
	if !ok {
		return nil, &apperrors.BadCatalogError{Reason: "no base-group piles found in catalog"}
	}
	beginGeneral, ok := b.col.Iterators(b.col.GeneralProperty())
	if !ok {
		return nil, &apperrors.BadCatalogError{Reason: "no kingdom+supply piles found in catalog"}
	}

	var sel *selection.Selection
	if marketCap == 0 {
		sel = selection.New(b.col, beginGeneral)
	} else {
		sel = selection.NewWithCap(b.col, beginGeneral, marketCap)
	}
	for p, ok := begin.Next(); ok; p, ok = begin.Next() {
		if !sel.AddPile(p) {
			return nil, &apperrors.BadCatalogError{Reason: "failed to seed base cards"}
		}
	}

	if landscapes > 0 {
		if beginLandscape, ok := b.col.Iterators(property.NewOptionalExtra()); ok {
			count := 0
			for p, ok := beginLandscape.Next(); ok && count < landscapes; p, ok = beginLandscape.Next() {
				if !sel.AddPile(p) {
					return nil, &apperrors.BadCatalogError{Reason: "failed to seed landscape piles"}
				}
				count++
			}
		}
	}
	return sel, nil
}

// FinishSelection runs the post-build cleanup pass: DarkAges base-card
// replacement (seeded by rand, biased toward expansions already heavily
// represented), and bookkeeping notes for physical components (tokens,
// mats) the finished kingdom will need regardless of which piles ended up
// in it.
func (b *Builder) FinishSelection(sel *selection.Selection, rand randstream.Stream) {
	daCount, ksCount := 0, 0
	for _, p := range sel.PileList() {
		if p.Supply() && p.Kingdom() {
			ksCount++
			if p.CardGroup() == "DarkAges" {
				daCount++
			}
		}
	}
	if daCount > 0 && ksCount > 0 {
		if rand.Get()%uint64(ksCount) < uint64(daCount) {
			if begin, ok := b.col.Iterators(property.NewCardGroup("DarkAges-base")); ok {
				for p, ok := begin.Next(); ok; p, ok = begin.Next() {
					if sel.AddPile(p) {
						sel.TagPile(p, "<why?had enough DarkAges cards>")
						sel.TagPile(p, "Replaces Estate in starting deck")
					}
				}
				sel.AddNote("addedDarkAges-base")
			}
		}
	}

	for _, p := range sel.PileList() {
		if p.HasKeyword("+point") {
			sel.AddItem("points(shield) tokens")
			break
		}
	}
	for _, p := range sel.PileList() {
		hasDebt := false
		for c := range p.Costs() {
			if c.HasDebtComponent() {
				hasDebt = true
				break
			}
		}
		if hasDebt {
			sel.AddItem("debt tokens")
			break
		}
	}
	for _, p := range sel.PileList() {
		if p.HasKeyword("+coffers") {
			sel.AddItem("coin tokens")
			sel.AddItem("coffers/villagers mat")
			break
		}
	}
	for _, p := range sel.PileList() {
		if p.HasKeyword("+villagers") {
			sel.AddItem("coin tokens")
			sel.AddItem("coffers/villagers mat")
			break
		}
	}
	for _, p := range sel.PileList() {
		if p.HasType("Heirloom") {
			sel.TagPile(p, "Replaces one Copper in starting deck")
		}
	}
}

// GenerateSelection is the single entry point used by the orchestrator:
// seed, attach constraints and forced includes, search, then clean up.
func (b *Builder) GenerateSelection(
	marketCap, landscapes int,
	includes []*pile.Pile,
	cons []selection.Constraint,
	rand randstream.Stream,
) (*selection.Selection, error) {
	sel, err := b.StartSelection(marketCap, landscapes)
	if err != nil {
		return nil, err
	}
	for _, c := range cons {
		sel.AddConstraint(c)
	}
	for _, p := range includes {
		sel.AddPile(p)
		sel.TagPile(p, "<why?--included>")
	}

	res, err := b.Build(sel)
	if err != nil {
		return nil, err
	}
	b.FinishSelection(res, rand)
	return res, nil
}
