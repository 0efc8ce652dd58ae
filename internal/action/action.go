// Package action implements the fix-up moves a constraint can take when a
// selection needs something it doesn't have yet: adding a Bane pile, an
// entire card group, a single reacting pile, or a missing dependency.
package action

import (
	"fmt"
	"sort"
	"strings"

	"kingdomgen/internal/apperrors"
	"kingdomgen/internal/catalog"
	"kingdomgen/internal/property"
	"kingdomgen/internal/selection"
)

// BuildFunc is the recursive search step an action hands control back to
// once it has made its fix. It is supplied by the builder, never
// implemented here, so this package never needs to import it.
type BuildFunc func(*selection.Selection) (*selection.Selection, error)

// Action is a fix-up move a constraint can invoke.
type Action interface {
	Apply(label string, start *selection.Selection) (*selection.Selection, error)
}

// FindBane adds the first available pile from its candidate iterator as a
// Bane card, widening the market cap by one so it doesn't crowd out a
// normal kingdom pile.
type FindBane struct {
	begin catalog.Iterator
	col   *catalog.Catalog
	build BuildFunc
}

func NewFindBane(col *catalog.Catalog, begin catalog.Iterator, build BuildFunc) *FindBane {
	return &FindBane{begin: begin, col: col, build: build}
}

func (a *FindBane) Apply(label string, start *selection.Selection) (*selection.Selection, error) {
	it := a.begin
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		if start.Contains(p) {
			continue
		}
		dup := start.Duplicate()
		dup.IncreaseRequiredPiles()
		if dup.AddPile(p) {
			dup.TagPile(p, "Bane")
			dup.TagPile(p, fmt.Sprintf("<why:%s>", label))
			dup.AddNote("hasBane")
			if res, err := a.build(dup); err == nil {
				return res, nil
			}
		}
	}
	return nil, &apperrors.ActionExhaustedError{Label: label}
}

// AddGroup adds every pile belonging to a named card group (used to seed an
// expansion's basics, e.g. Prosperity-base).
type AddGroup struct {
	group string
	col   *catalog.Catalog
	build BuildFunc
}

func NewAddGroup(col *catalog.Catalog, group string, build BuildFunc) *AddGroup {
	return &AddGroup{group: group, col: col, build: build}
}

func (a *AddGroup) Apply(label string, start *selection.Selection) (*selection.Selection, error) {
	dup := start.Duplicate()
	it, ok := a.col.Iterators(property.NewCardGroup(a.group))
	if !ok {
		return nil, fmt.Errorf("tried to add group (%s) but no cards belonging to it found in the collection", a.group)
	}
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		if dup.AddPile(p) {
			dup.TagPile(p, fmt.Sprintf("<why:%s>", label))
		}
	}
	dup.AddNote("added" + a.group)
	return a.build(dup)
}

// FindPile adds the first available pile from its candidate iterator,
// tagging it with why this pile was chosen.
type FindPile struct {
	begin catalog.Iterator
	col   *catalog.Catalog
	build BuildFunc
}

func NewFindPile(col *catalog.Catalog, begin catalog.Iterator, build BuildFunc) *FindPile {
	return &FindPile{begin: begin, col: col, build: build}
}

func (a *FindPile) Apply(label string, start *selection.Selection) (*selection.Selection, error) {
	it := a.begin
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		if start.Contains(p) {
			continue
		}
		dup := start.Duplicate()
		if dup.AddPile(p) {
			dup.TagPile(p, fmt.Sprintf("<why?%s>", label))
			if res, err := a.build(dup); err == nil {
				return res, nil
			}
		}
	}
	return nil, &apperrors.ActionExhaustedError{Label: label}
}

// AddMissingDependency looks at every selected pile's card(...) interaction
// tags and adds the pile for the first referenced card not yet selected.
type AddMissingDependency struct {
	col   *catalog.Catalog
	build BuildFunc
}

func NewAddMissingDependency(col *catalog.Catalog, build BuildFunc) *AddMissingDependency {
	return &AddMissingDependency{col: col, build: build}
}

func (a *AddMissingDependency) Apply(_ string, start *selection.Selection) (*selection.Selection, error) {
	need := map[string]string{}
	for _, p := range start.PileList() {
		for _, it := range p.OtherInteractions() {
			if name, ok := stripTag(it, "card("); ok {
				need[name] = p.Name()
			}
		}
	}
	if len(need) == 0 {
		return nil, fmt.Errorf("AddMissingDependency applied but no cards have card() interactions")
	}
	keys := make([]string, 0, len(need))
	for k := range need {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, name := range keys {
		needer := need[name]
		p, ok := a.col.PileForCard(name)
		if !ok {
			return nil, &apperrors.UnknownReferenceError{Kind: "card", Name: name}
		}
		if !start.Contains(p) {
			dup := start.Duplicate()
			if dup.AddPile(p) {
				dup.TagPile(p, fmt.Sprintf("<why?card:%s interacts with it>", needer))
				return a.build(dup)
			}
		}
	}
	return nil, fmt.Errorf("AddMissingDependency applied but nothing seemed missing")
}

// AddMissingDependencyGroup looks at every selected pile's group(...)
// interaction tags and adds every pile of each referenced group not yet
// added, then recurses once.
type AddMissingDependencyGroup struct {
	col   *catalog.Catalog
	build BuildFunc
}

func NewAddMissingDependencyGroup(col *catalog.Catalog, build BuildFunc) *AddMissingDependencyGroup {
	return &AddMissingDependencyGroup{col: col, build: build}
}

func (a *AddMissingDependencyGroup) Apply(_ string, start *selection.Selection) (*selection.Selection, error) {
	dup := start.Duplicate()
	acted := false
	for _, p := range start.PileList() {
		for _, it := range p.OtherInteractions() {
			name, ok := stripTag(it, "group(")
			if !ok {
				continue
			}
			if start.HasNote("added" + name) {
				continue
			}
			piles, ok := start.CatalogRef().Iterators(property.NewCardGroup(name))
			if !ok {
				return nil, &apperrors.UnknownReferenceError{Kind: "group", Name: name}
			}
			acted = true
			for i, ok := piles.Next(); ok; i, ok = piles.Next() {
				if !dup.AddPile(i) {
					return nil, fmt.Errorf("unable to add pile %s", i.Name())
				}
				dup.TagPile(i, fmt.Sprintf("<why?cards:%s needs it>", p.Name()))
			}
			dup.AddNote("added" + name)
		}
	}
	if !acted {
		return nil, fmt.Errorf("AddMissingDependencyGroup called but nothing seems to be missing")
	}
	return a.build(dup)
}

// AddProsperity adds the Platinum and Colony piles if either is missing.
type AddProsperity struct {
	build BuildFunc
}

func NewAddProsperity(build BuildFunc) *AddProsperity { return &AddProsperity{build: build} }

func (a *AddProsperity) Apply(label string, start *selection.Selection) (*selection.Selection, error) {
	dup := start.Duplicate()
	col := start.CatalogRef()
	platinum, ok := col.PileForCard("Platinum")
	if !ok {
		return nil, fmt.Errorf("can't find prosperity base cards")
	}
	colony, ok := col.PileForCard("Colony")
	if !ok {
		return nil, fmt.Errorf("can't find prosperity base cards")
	}
	if !dup.Contains(platinum) {
		if !dup.AddPile(platinum) {
			return nil, fmt.Errorf("error adding Platinum")
		}
		dup.TagPile(platinum, label)
	}
	if !dup.Contains(colony) {
		if !dup.AddPile(colony) {
			return nil, fmt.Errorf("error adding Colony")
		}
		dup.TagPile(colony, label)
	}
	return a.build(dup)
}

func stripTag(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, ")") {
		return "", false
	}
	return s[len(prefix) : len(s)-1], true
}
