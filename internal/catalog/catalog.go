// Package catalog holds the full set of piles available for a run: the
// shuffled pile order that drives the "general" search, cached
// property-indexed iterators, and cross-reference validation.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"kingdomgen/internal/card"
	"kingdomgen/internal/cost"
	"kingdomgen/internal/pile"
	"kingdomgen/internal/property"
	"kingdomgen/internal/randstream"
)

// Catalog is immutable except for its iterator cache and pile order, which
// are populated lazily and shuffled once at load time.
type Catalog struct {
	legalCosts cost.Set
	cards      map[string]*card.Card
	groupNames map[string]struct{}
	cardNames  map[string]struct{}
	piles      []*pile.Pile

	generalProperty property.Property

	lists    [][]*pile.Pile
	listByID map[property.Property]int
}

// New builds a Catalog from a set of piles, ordering them by card group then
// name (the order a fresh, unshuffled run would present them in).
func New(piles []*pile.Pile, cards []*card.Card) *Catalog {
	c := &Catalog{
		legalCosts:      cost.Set{},
		cards:           make(map[string]*card.Card),
		groupNames:      make(map[string]struct{}),
		cardNames:       make(map[string]struct{}),
		piles:           pile.BySortedGroupThenName(piles),
		generalProperty: property.NewKingdomAndSupply(),
		listByID:        make(map[property.Property]int),
	}
	for _, p := range piles {
		c.groupNames[p.CardGroup()] = struct{}{}
	}
	for _, cd := range cards {
		c.cards[cd.Name] = cd
		c.cardNames[cd.Name] = struct{}{}
		c.legalCosts.Add(cd.Cost)
	}
	return c
}

// GeneralProperty is the property the builder iterates over once no
// constraint or cost target has an opinion left: every kingdom pile in the
// supply.
func (c *Catalog) GeneralProperty() property.Property { return c.generalProperty }

// LegalCosts returns every cost that actually occurs on some card in the
// catalog, used to scope cost-target voting.
func (c *Catalog) LegalCosts() cost.Set { return c.legalCosts }

// Piles returns the catalog's piles in their current (possibly shuffled)
// order.
func (c *Catalog) Piles() []*pile.Pile { return c.piles }

// Shuffle performs the intentionally biased three-pass swap shuffle: for
// three full passes over the pile slice, each position is swapped with a
// randomly chosen position drawn from the RNG. This is not a Fisher-Yates
// shuffle and does not produce a uniform permutation; it is kept exactly as
// specified rather than replaced with a textbook shuffle.
func (c *Catalog) Shuffle(r randstream.Stream) {
	n := len(c.piles)
	if n == 0 {
		return
	}
	size := uint64(n)
	for pass := 0; pass < 3; pass++ {
		for j := 0; j < n; j++ {
			pos := int(r.Get() % size)
			c.piles[pos], c.piles[j] = c.piles[j], c.piles[pos]
		}
	}
}

// Iterator walks a cached, property-filtered slice of piles in a fixed
// order (the catalog's current pile order at the time the slice was built).
type Iterator struct {
	piles []*pile.Pile
	index int
}

// Next returns the next pile in the iteration, or (nil, false) when
// exhausted. Iterator is a value type: copying it (as happens whenever a
// selection is duplicated) yields an independent cursor over the same
// underlying match list.
func (it *Iterator) Next() (*pile.Pile, bool) {
	if it == nil || it.index >= len(it.piles) {
		return nil, false
	}
	p := it.piles[it.index]
	it.index++
	return p, true
}

// Iterators returns an Iterator over every pile matching p, building and
// caching the match list on first use. Selection-level properties never
// have a pile iterator and always report (_, false), matching decker-rs's
// CollectionState::get_iterators.
func (c *Catalog) Iterators(p property.Property) (Iterator, bool) {
	if p.IsSelectionProperty() {
		return Iterator{}, false
	}
	if idx, ok := c.listByID[p]; ok {
		return Iterator{piles: c.lists[idx]}, true
	}
	var matches []*pile.Pile
	for _, pl := range c.piles {
		if p.PileMeets(pl) {
			matches = append(matches, pl)
		}
	}
	if len(matches) == 0 {
		return Iterator{}, false
	}
	c.lists = append(c.lists, matches)
	c.listByID[p] = len(c.lists) - 1
	return Iterator{piles: matches}, true
}

// PileForCard finds the pile a named card belongs to: its own pile if it
// declares no pile name, otherwise the named pile.
func (c *Catalog) PileForCard(name string) (*pile.Pile, bool) {
	cd, ok := c.cards[name]
	if !ok {
		return nil, false
	}
	pileName := cd.PileName
	if pileName == "" {
		pileName = name
	}
	for _, p := range c.piles {
		if p.Name() == pileName {
			return p, true
		}
	}
	return nil, false
}

type collectionViewAdapter struct{ c *Catalog }

func (a collectionViewAdapter) PileForCard(name string) (property.PileView, bool) {
	p, ok := a.c.PileForCard(name)
	if !ok {
		return nil, false
	}
	return p, true
}

// AsPropertyCollection exposes the catalog through the narrow interface
// package property needs, without property importing this package.
func (c *Catalog) AsPropertyCollection() property.CollectionView {
	return collectionViewAdapter{c}
}

// Validate reports dangling card(...)/group(...) interaction references:
// interactions that name a card or group that doesn't exist anywhere in the
// catalog.
func (c *Catalog) Validate() []string {
	var warnings []string
	for _, p := range c.piles {
		for _, cd := range p.Cards() {
			for _, inter := range cd.OtherInteractions {
				if target, ok := strings.CutPrefix(inter, "card("); ok {
					target = strings.TrimSuffix(target, ")")
					if _, ok := c.cardNames[target]; !ok {
						warnings = append(warnings, fmt.Sprintf(
							"Card %s interacts with %s but it is missing.", cd.Name, target))
					}
				} else if target, ok := strings.CutPrefix(inter, "group("); ok {
					target = strings.TrimSuffix(target, ")")
					if _, ok := c.groupNames[target]; !ok {
						warnings = append(warnings, fmt.Sprintf(
							"Card %s interacts with group %s but it is missing.", cd.Name, target))
					}
				}
			}
		}
	}
	sort.Strings(warnings)
	return warnings
}
