// Package pile aggregates the cards that live in a single supply pile.
package pile

import (
	"sort"

	"kingdomgen/internal/card"
	"kingdomgen/internal/cost"
)

// Pile is the union of every card stacked under one pile name: its types,
// keywords, interactions and cost targets are the union of its cards', and
// its cost set is every distinct cost its cards carry. Piles are built
// incrementally via AddCard and are otherwise read-only.
type Pile struct {
	name              string
	cardGroup         string
	supply            bool
	kingdom           bool
	types             map[string]struct{}
	costs             cost.Set
	keywords          map[string]struct{}
	kwInteractions    map[string]struct{}
	otherInteractions map[string]struct{}
	cards             []*card.Card
	targets           []cost.Target
}

// New creates an empty pile with the given name.
func New(name string) *Pile {
	return &Pile{
		name:              name,
		types:             make(map[string]struct{}),
		costs:             cost.Set{},
		keywords:          make(map[string]struct{}),
		kwInteractions:    make(map[string]struct{}),
		otherInteractions: make(map[string]struct{}),
	}
}

func addCostTarget(targets []cost.Target, t cost.Target) []cost.Target {
	for _, existing := range targets {
		if existing.StrRep() == t.StrRep() {
			return targets
		}
	}
	return append(targets, t)
}

// AddCard folds c's properties into the pile. Adding the same card (by
// name) twice is a no-op.
func (p *Pile) AddCard(c *card.Card) {
	for _, existing := range p.cards {
		if existing.Equal(c) {
			return
		}
	}
	for _, t := range c.Types {
		p.types[t] = struct{}{}
	}
	p.costs.Add(c.Cost)
	for _, kw := range c.Keywords {
		p.keywords[kw] = struct{}{}
	}
	for _, kw := range c.KwInteractions {
		p.kwInteractions[kw] = struct{}{}
	}
	for _, oi := range c.OtherInteractions {
		p.otherInteractions[oi] = struct{}{}
	}
	p.cardGroup = c.Group
	p.supply = p.supply || c.InSupply
	p.kingdom = p.kingdom || c.IsKingdom
	for _, t := range c.CostTargets {
		p.targets = addCostTarget(p.targets, t)
	}
	p.cards = append(p.cards, c)
}

func (p *Pile) Name() string      { return p.name }
func (p *Pile) CardGroup() string { return p.cardGroup }
func (p *Pile) Supply() bool      { return p.supply }
func (p *Pile) Kingdom() bool     { return p.kingdom }
func (p *Pile) Costs() cost.Set   { return p.costs }
func (p *Pile) Cards() []*card.Card {
	return p.cards
}
func (p *Pile) Targets() []cost.Target { return p.targets }

// Types returns the pile's type union as a slice.
func (p *Pile) Types() []string { return keys(p.types) }

// Keywords returns the pile's keyword union as a slice.
func (p *Pile) Keywords() []string { return keys(p.keywords) }

// KwInteractionList returns the pile's keyword-interaction union as a slice.
func (p *Pile) KwInteractionList() []string { return keys(p.kwInteractions) }

// OtherInteractions returns the pile's free-form interaction tags.
func (p *Pile) OtherInteractions() []string { return keys(p.otherInteractions) }

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// HasType reports whether any card in the pile carries type t.
func (p *Pile) HasType(t string) bool {
	_, ok := p.types[t]
	return ok
}

// HasKeyword reports whether any card in the pile carries keyword kw.
func (p *Pile) HasKeyword(kw string) bool {
	_, ok := p.keywords[kw]
	return ok
}

// HasKwInteraction reports whether any card in the pile interacts with kw.
func (p *Pile) HasKwInteraction(kw string) bool {
	_, ok := p.kwInteractions[kw]
	return ok
}

// HasOtherInteraction reports whether any card in the pile carries the
// named free-form interaction tag.
func (p *Pile) HasOtherInteraction(tag string) bool {
	_, ok := p.otherInteractions[tag]
	return ok
}

// Equal reports whether two piles are the same pile (by name).
func (p *Pile) Equal(other *Pile) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.name == other.name
}

// Set is a pile collection ordered by name, mirroring decker-rs's
// BTreeSet<PilePtr>.
type Set struct {
	byName map[string]*Pile
}

// NewSet builds an empty pile set.
func NewSet() *Set {
	return &Set{byName: make(map[string]*Pile)}
}

// Add inserts p into the set, keyed by name.
func (s *Set) Add(p *Pile) { s.byName[p.name] = p }

// Contains reports whether a pile with p's name is already in the set.
func (s *Set) Contains(p *Pile) bool {
	_, ok := s.byName[p.name]
	return ok
}

// Sorted returns the set's piles ordered by name.
func (s *Set) Sorted() []*Pile {
	out := make([]*Pile, 0, len(s.byName))
	for _, p := range s.byName {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Len reports the number of piles in the set.
func (s *Set) Len() int { return len(s.byName) }

// BySortedGroupThenName orders piles first by card group, then by name,
// matching decker-rs's SortablePile ordering used to seed the catalog
// before the biased shuffle.
func BySortedGroupThenName(piles []*Pile) []*Pile {
	out := make([]*Pile, len(piles))
	copy(out, piles)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.cardGroup != b.cardGroup {
			return a.cardGroup < b.cardGroup
		}
		return a.name < b.name
	})
	return out
}
