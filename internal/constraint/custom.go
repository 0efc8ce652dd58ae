package constraint

import (
	"fmt"

	"kingdomgen/internal/action"
	"kingdomgen/internal/catalog"
	"kingdomgen/internal/property"
)

// MaxCostRepeat fails the selection outright once any single cost repeats
// more than maxRepeats times among the selected supply piles. It has no
// fix action: once broken there is nothing to add that un-breaks it, so
// the builder must backtrack.
func MaxCostRepeat(maxRepeats int) *Constraint {
	return NewFull("maxCostRepeat", nil, property.NewRepeatedCost(maxRepeats), nil, 0, 0, 0, 1)
}

// MinType requires at least min piles of the given type. Candidates are
// drawn only from kingdom+supply piles (so a non-kingdom treasure can't be
// picked to satisfy it), but the count that matters for satisfaction is
// unrestricted, so an already-present non-kingdom card of that type still
// counts.
func MinType(col *catalog.Catalog, typeName string, min int, build action.BuildFunc) *Constraint {
	candidates := property.NewType(typeName, true)
	begin, ok := col.Iterators(candidates)
	if !ok {
		return Unsatisfiable("minType:" + typeName)
	}
	fix := action.NewFindPile(col, begin, build)
	counter := property.NewType(typeName, false)
	label := fmt.Sprintf("At least %d %ss", min, typeName)
	return NewFull(label, nil, counter, fix, 0, min, min, Many)
}

// MaxType fails the selection outright once more than max piles of the
// given type have been selected. It has no fix action: once broken, the
// builder must backtrack.
func MaxType(col *catalog.Catalog, typeName string, max int) *Constraint {
	if _, ok := col.Iterators(property.NewType(typeName, true)); !ok {
		return nil
	}
	prop := property.NewType(typeName, false)
	label := fmt.Sprintf("At most %d %ss", max, typeName)
	return NewFull(label, nil, prop, nil, 0, 0, 0, max+1)
}
