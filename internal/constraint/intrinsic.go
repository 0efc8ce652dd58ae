package constraint

import (
	"kingdomgen/internal/action"
	"kingdomgen/internal/catalog"
	"kingdomgen/internal/cost"
	"kingdomgen/internal/property"
)

// Many stands in for "no practical upper bound" on a constraint's broken
// threshold: thresholds compare against pile counts, and a kingdom never
// has anywhere near this many matching piles.
const Many = 5000

// Bane builds the Young Witch constraint: once a Young Witch is selected,
// exactly one Bane-eligible (cost 2 or 3 Action) pile must be added.
func Bane(col *catalog.Catalog, build action.BuildFunc) *Constraint {
	hasYW := property.NewName("Young Witch")
	costs := cost.NewSet(cost.NewCoin(2), cost.NewCoin(3))
	baneCost := property.NewCostAndType("Action", costs)
	begin, ok := col.Iterators(baneCost)
	if !ok {
		return Unsatisfiable("Failed bane constraint")
	}
	fix := action.NewFindBane(col, begin, build)
	hasBane := property.NewNote("hasBane")
	return NewFull("bane", hasYW, hasBane, fix, 1, 1, 1, Many)
}

// ProsperityBasics builds the constraint that seeds Platinum and Colony once
// either is present alone, or once threshold Prosperity-group piles have
// been selected. Like AddPotion, it is Fail-gated: the precondition
// (NeedProsperity) is the real boolean test, and the main property always
// fails so the fix runs every time the precondition is true.
func ProsperityBasics(threshold int, build action.BuildFunc) *Constraint {
	need := property.NewNeedProsperity(threshold)
	fix := action.NewAddProsperity(build)
	return NewFull("AddProsperityCards", need, property.NewFail(), fix, 1, Many, Many, Many)
}

// ProspBasics is the older, independent Prosperity-group gate: once 5 piles
// from the exact "Prosperity" group have been selected, add the whole
// Prosperity-base group (Platinum, Colony, and anything else that ships
// with it). Unlike ProsperityBasics its precondition is a fixed exact-group
// count rather than a random threshold over a prefix match, so it can fire
// on a kingdom ProsperityBasics's own threshold missed.
func ProspBasics(col *catalog.Catalog, build action.BuildFunc) *Constraint {
	groupPros := property.NewCardGroup("Prosperity")
	hasProsBase := property.NewNote("addedProsperity-base")
	fix := action.NewAddGroup(col, "Prosperity-base", build)
	return NewFull("prospBasics", groupPros, hasProsBase, fix, 5, 1, 1, Many)
}

// AddPotion builds the constraint that adds the Alchemy-base group (which
// carries the Potion pile) once some selected pile costs a potion. The main
// property is deliberately Fail: it never matches, so whenever the
// precondition is active the constraint always reports ActionRequired.
// Once the fix runs, MissingPotion drops back to false and the precondition
// stops gating at all, so this never fires twice.
func AddPotion(col *catalog.Catalog, build action.BuildFunc) *Constraint {
	missing := property.NewMissingPotion()
	fix := action.NewAddGroup(col, "Alchemy-base", build)
	return NewFull("AddPotion", missing, property.NewFail(), fix, 1, Many, Many, Many)
}

// AddInteractingCard builds the constraint that pulls in any card a selected
// pile's card(...) interaction references but that hasn't been added yet.
func AddInteractingCard(col *catalog.Catalog, build action.BuildFunc) *Constraint {
	missing := property.NewMissingInteractingCard()
	fix := action.NewAddMissingDependency(col, build)
	return NewFull("AddInteractingCard", missing, property.NewFail(), fix, 1, Many, Many, Many)
}

// AddInteractingCardGroup builds the constraint that pulls in any group a
// selected pile's group(...) interaction references but that hasn't been
// added yet.
func AddInteractingCardGroup(col *catalog.Catalog, build action.BuildFunc) *Constraint {
	missing := property.NewMissingInteractingCardGroup()
	fix := action.NewAddMissingDependencyGroup(col, build)
	return NewFull("AddInteractingGroup", missing, property.NewFail(), fix, 1, Many, Many, Many)
}

// Curser builds the counter-curser constraint: once threshold curser cards
// are selected, at least one trash_any pile must be added.
func Curser(col *catalog.Catalog, threshold int, build action.BuildFunc) *Constraint {
	curser := property.NewKeyword("curser", false)
	trash := property.NewKeyword("trash_any", true)
	begin, ok := col.Iterators(trash)
	if !ok {
		return nil
	}
	fix := action.NewFindPile(col, begin, build)
	return NewFull("counterCurser", curser, trash, fix, threshold, 1, 1, Many)
}

// AttackReact builds the counter-attack constraint: once threshold Attack
// cards are selected, at least one react(Attack) pile must be added.
func AttackReact(col *catalog.Catalog, threshold int, build action.BuildFunc) *Constraint {
	attack := property.NewType("Attack", true)
	react := property.NewOtherInteraction("react(Attack)", true)
	begin, ok := col.Iterators(react)
	if !ok {
		return nil
	}
	fix := action.NewFindPile(col, begin, build)
	return NewFull("counterAttack", attack, react, fix, threshold, 1, 1, Many)
}
