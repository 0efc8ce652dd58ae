package config

import (
	"fmt"
	"sort"

	"kingdomgen/internal/action"
	"kingdomgen/internal/catalog"
	"kingdomgen/internal/constraint"
	"kingdomgen/internal/property"
	"kingdomgen/internal/selection"
)

// BuildConstraints assembles every constraint a run needs: the intrinsic
// Bane/Prosperity/Potion/dependency-group fixups, the Doom/Fate group
// fixups, the opt-out-able anti-curser/attack-react pair, the dynamic
// max-cost-repeat/min-type/max-type constraints the CLI requested, and a
// constraint per keyword that some selected pile interacts with but no
// selected pile yet provides. Grounded on decker-rs's
// config.rs::build_constraints.
func BuildConstraints(col *catalog.Catalog, cfg *Config, build action.BuildFunc) ([]selection.Constraint, error) {
	var cons []selection.Constraint

	cons = append(cons, constraint.Bane(col, build))

	prosperityThreshold := int(cfg.Rand.Get() % 10)
	cons = append(cons, constraint.ProsperityBasics(prosperityThreshold, build))
	cons = append(cons, constraint.ProspBasics(col, build))

	cons = append(cons, constraint.AddPotion(col, build))
	cons = append(cons, constraint.AddInteractingCardGroup(col, build))
	cons = append(cons, constraint.AddInteractingCard(col, build))

	cons = append(cons,
		constraint.NewFull("AddHexForDoom",
			property.NewMissingGroupForKeyword("Doom", "Nocturne-Hexes"), property.NewFail(),
			action.NewAddGroup(col, "Nocturne-Hexes", build), 1, constraint.Many, constraint.Many, constraint.Many))
	cons = append(cons,
		constraint.NewFull("AddBoonForFate",
			property.NewMissingGroupForKeyword("Fate", "Nocturne-Boons"), property.NewFail(),
			action.NewAddGroup(col, "Nocturne-Boons", build), 1, constraint.Many, constraint.Many, constraint.Many))

	if !cfg.DisableAntiCursors {
		if c := constraint.Curser(col, 1, build); c != nil {
			cons = append(cons, c)
		}
	}
	if !cfg.DisableAttackReact {
		if c := constraint.AttackReact(col, 2, build); c != nil {
			cons = append(cons, c)
		}
	}

	if cfg.MaxCostRepeat > 0 {
		cons = append(cons, constraint.MaxCostRepeat(cfg.MaxCostRepeat))
	}

	for _, name := range sortedKeys(cfg.MinTypes) {
		c := constraint.MinType(col, name, cfg.MinTypes[name], build)
		cons = append(cons, c)
	}
	for _, name := range sortedKeys(cfg.MaxTypes) {
		if c := constraint.MaxType(col, name, cfg.MaxTypes[name]); c != nil {
			cons = append(cons, c)
		}
	}

	cons = append(cons, hangingKeywordConstraints(col, build)...)

	return cons, nil
}

// hangingKeywordConstraints finds every distinct keyword any catalog pile's
// kw_interactions references and, unless that keyword (or its accepted
// alternative) can never be satisfied by the catalog at all, builds a
// Fail-gated constraint that adds a providing pile once the interaction is
// hanging. "gain" accepts "+buy" as an alternative and "trash" accepts
// either trash_any/trash_limited form; every other keyword must match
// itself exactly.
func hangingKeywordConstraints(col *catalog.Catalog, build action.BuildFunc) []selection.Constraint {
	seen := map[string]bool{}
	for _, p := range col.Piles() {
		for _, kw := range p.KwInteractionList() {
			seen[kw] = true
		}
	}
	var kws []string
	for kw := range seen {
		kws = append(kws, kw)
	}
	sort.Strings(kws)

	var cons []selection.Constraint
	for _, kw := range kws {
		switch kw {
		case "gain":
			prop := property.NewEither(property.NewKeyword("gain", true), property.NewKeyword("+buy", true))
			begin, ok := col.Iterators(prop)
			if !ok {
				continue
			}
			precondition := property.NewHangingInteractsWith("gain", "gain", "+buy")
			fix := action.NewFindPile(col, begin, build)
			cons = append(cons, constraint.NewFull("Provide interacted keyword (gain/+buy)",
				precondition, property.NewFail(), fix, 1, constraint.Many, constraint.Many, constraint.Many))
		case "trash":
			prop := property.NewEither(property.NewKeyword("trash_any", true), property.NewKeyword("trash_limited", true))
			begin, ok := col.Iterators(prop)
			if !ok {
				continue
			}
			precondition := property.NewHangingInteractsWith("trash", "trash_limited", "trash_any")
			fix := action.NewFindPile(col, begin, build)
			cons = append(cons, constraint.NewFull("Provide interacted keyword (trash_any/trash_limited)",
				precondition, property.NewFail(), fix, 1, constraint.Many, constraint.Many, constraint.Many))
		default:
			prop := property.NewKeyword(kw, true)
			begin, ok := col.Iterators(prop)
			if !ok {
				continue
			}
			precondition := property.NewHangingInteractsWith(kw, kw, "")
			fix := action.NewFindPile(col, begin, build)
			name := fmt.Sprintf("Provide interacted keyword %s", kw)
			cons = append(cons, constraint.NewFull(name,
				precondition, property.NewFail(), fix, 1, constraint.Many, constraint.Many, constraint.Many))
		}
	}
	return cons
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
