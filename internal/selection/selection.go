// Package selection models a kingdom draft in progress: the piles and cards
// chosen so far, the notes and tags left behind by the constraints and
// actions that put them there, and the bookkeeping the builder needs to
// keep searching. A Selection is conceptually immutable once handed to a
// caller; the builder advances a search by duplicating one and mutating the
// copy, never the original, so backtracking never has to undo anything.
package selection

import (
	"kingdomgen/internal/card"
	"kingdomgen/internal/catalog"
	"kingdomgen/internal/cost"
	"kingdomgen/internal/pile"
	"kingdomgen/internal/property"
)

// Status is the four-way result of evaluating a constraint against a
// selection.
type Status int

const (
	StatusOK Status = iota
	StatusActionRequired
	StatusMorePossible
	StatusFail
)

// Constraint is the interface the builder drives selections through. It is
// declared here, not in package constraint, so this package never needs to
// import its own consumer.
type Constraint interface {
	Label() string
	GetStatus(s *Selection) Status
	Act(s *Selection) (*Selection, error)
}

// Selection is a single node in the builder's search: a set of chosen
// piles plus the state needed to decide what, if anything, still needs
// fixing.
type Selection struct {
	piles        []*pile.Pile
	cards        []*card.Card
	constraints  []Constraint
	tags         map[*pile.Pile][]string
	requiredCards         int
	normalPileCount       int
	notes                 map[string]struct{}
	needItems             map[string]struct{}
	costsInSupply         cost.Set
	targetCheckRequired   bool
	targetBlame           string
	targets               []cost.Target
	interactsKeywords     map[string]int
	keywords              map[string]int
	catalog               *catalog.Catalog
	beginGeneral          catalog.Iterator
}

// New creates an empty selection over col with a 10-pile market cap and the
// catalog's general (kingdom+supply) iterator as its source of fallback
// picks.
func New(col *catalog.Catalog, beginGeneral catalog.Iterator) *Selection {
	return NewWithCap(col, beginGeneral, 10)
}

// NewWithCap is New with an explicit market cap (0 meaning "no normal
// kingdom piles wanted", used by landscape-only or custom-size runs).
func NewWithCap(col *catalog.Catalog, beginGeneral catalog.Iterator, marketCap int) *Selection {
	return &Selection{
		tags:              make(map[*pile.Pile][]string),
		notes:             make(map[string]struct{}),
		needItems:         make(map[string]struct{}),
		costsInSupply:     cost.Set{},
		interactsKeywords: make(map[string]int),
		keywords:          make(map[string]int),
		requiredCards:     marketCap,
		catalog:           col,
		beginGeneral:      beginGeneral,
	}
}

// Duplicate copies the selection so the caller can mutate the copy while
// the original stays usable for backtracking. Constraints are shared by
// reference (they never change once a search starts); everything else is
// copied.
func (s *Selection) Duplicate() *Selection {
	dup := &Selection{
		piles:               append([]*pile.Pile(nil), s.piles...),
		cards:               append([]*card.Card(nil), s.cards...),
		constraints:         s.constraints,
		tags:                make(map[*pile.Pile][]string, len(s.tags)),
		requiredCards:       s.requiredCards,
		normalPileCount:     s.normalPileCount,
		notes:               make(map[string]struct{}, len(s.notes)),
		needItems:           make(map[string]struct{}, len(s.needItems)),
		costsInSupply:       s.costsInSupply.Clone(),
		targetCheckRequired: s.targetCheckRequired,
		targetBlame:         s.targetBlame,
		targets:             append([]cost.Target(nil), s.targets...),
		interactsKeywords:   make(map[string]int, len(s.interactsKeywords)),
		keywords:            make(map[string]int, len(s.keywords)),
		catalog:             s.catalog,
		beginGeneral:        s.beginGeneral,
	}
	for p, tags := range s.tags {
		dup.tags[p] = append([]string(nil), tags...)
	}
	for n := range s.notes {
		dup.notes[n] = struct{}{}
	}
	for n := range s.needItems {
		dup.needItems[n] = struct{}{}
	}
	for k, v := range s.interactsKeywords {
		dup.interactsKeywords[k] = v
	}
	for k, v := range s.keywords {
		dup.keywords[k] = v
	}
	return dup
}

// AddConstraint registers a constraint that every subsequent duplicate of
// this selection will also carry.
func (s *Selection) AddConstraint(c Constraint) { s.constraints = append(s.constraints, c) }

// Constraints returns the selection's active constraints.
func (s *Selection) Constraints() []Constraint { return s.constraints }

// IncreaseRequiredPiles raises the market cap by one, making room for a
// pile (such as a Bane card) that doesn't count against the normal total.
func (s *Selection) IncreaseRequiredPiles() { s.requiredCards++ }

// AddPile adds p to the selection. It fails (returning false) if p is
// already present, or if p is a normal kingdom/supply pile and the market
// is already full.
func (s *Selection) AddPile(p *pile.Pile) bool {
	if s.Contains(p) {
		return false
	}
	if p.Supply() && p.Kingdom() {
		if s.normalPileCount >= s.requiredCards {
			return false
		}
		s.normalPileCount++
	}
	s.piles = append(s.piles, p)
	for _, c := range p.Cards() {
		s.cards = append(s.cards, c)
		if c.InSupply {
			s.costsInSupply.Add(c.Cost)
		}
	}
	if targets := p.Targets(); len(targets) > 0 {
		s.SetNeedToCheck(true, p.Name())
		s.targetCheckRequired = true
		for _, t := range targets {
			dup := false
			for _, existing := range s.targets {
				if existing.StrRep() == t.StrRep() {
					dup = true
					break
				}
			}
			if !dup {
				s.targets = append(s.targets, t)
			}
		}
	}
	for _, kw := range p.Keywords() {
		s.keywords[kw]++
	}
	for _, ikw := range kwInteractionsOf(p) {
		s.interactsKeywords[ikw]++
	}
	for _, inter := range p.OtherInteractions() {
		if name, ok := stripReact(inter); ok {
			s.interactsKeywords[name]++
		}
	}
	return true
}

// kwInteractionsOf exists so AddPile can read the pile's kw_interactions
// set through a method name that doesn't collide with HasKwInteraction.
func kwInteractionsOf(p *pile.Pile) []string { return p.KwInteractionList() }

func stripReact(s string) (string, bool) {
	const prefix, suffix = "react(", ")"
	if len(s) < len(prefix)+len(suffix) || s[:len(prefix)] != prefix || s[len(s)-len(suffix):] != suffix {
		return "", false
	}
	return s[len(prefix) : len(s)-len(suffix)], true
}

// TagPile records a human-readable annotation against a pile already in
// the selection.
func (s *Selection) TagPile(p *pile.Pile, tag string) {
	s.tags[p] = append(s.tags[p], tag)
}

// Tags returns the tags recorded against p.
func (s *Selection) Tags(p *pile.Pile) []string { return s.tags[p] }

// AddNote records a note, used by MissingGroupForKeyword-style properties
// to avoid re-triggering once a group has already been added.
func (s *Selection) AddNote(text string) { s.notes[text] = struct{}{} }

// AddItem records a physical component (tokens, mats) the selection will
// need regardless of pile count.
func (s *Selection) AddItem(text string) { s.needItems[text] = struct{}{} }

// NeedItems returns the recorded extra-component notes.
func (s *Selection) NeedItems() []string {
	out := make([]string, 0, len(s.needItems))
	for i := range s.needItems {
		out = append(out, i)
	}
	return out
}

// SetNeedToCheck flips the cost-target recheck flag. When flipping from
// false to true (or when there's no prior blame recorded), s records why
// as the sole reason; otherwise why is appended to the existing blame
// list. This mutates s directly even when called on a selection other
// than the one being extended — see the builder's cost-target loop, where
// the parent selection's flag is cleared on a child's behalf. That
// cross-selection mutation is intentional and preserved from the original
// implementation rather than "fixed".
func (s *Selection) SetNeedToCheck(v bool, why string) {
	if v {
		if !s.targetCheckRequired || len(s.targetBlame) == 0 {
			s.targetBlame = why
		} else {
			s.targetBlame = s.targetBlame + "," + why
		}
	}
	s.targetCheckRequired = v
}

// TargetBlame returns the recorded reason(s) the cost-target recheck flag
// is set.
func (s *Selection) TargetBlame() string { return s.targetBlame }

// Contains reports whether p (by identity) is already in the selection.
func (s *Selection) Contains(p property.PileView) bool {
	if pp, ok := p.(*pile.Pile); ok {
		for _, x := range s.piles {
			if x == pp {
				return true
			}
		}
		return false
	}
	for _, x := range s.piles {
		if x.Name() == p.Name() {
			return true
		}
	}
	return false
}

// PileList returns the selection's piles as concrete values, for callers
// that need to mutate or compare them (the builder, constraints, actions).
func (s *Selection) PileList() []*pile.Pile { return s.piles }

// Piles satisfies property.SelectionView.
func (s *Selection) Piles() []property.PileView {
	out := make([]property.PileView, len(s.piles))
	for i, p := range s.piles {
		out[i] = p
	}
	return out
}

// Cards returns every card belonging to a selected pile.
func (s *Selection) Cards() []*card.Card { return s.cards }

// CardNames satisfies property.SelectionView.
func (s *Selection) CardNames() []string {
	out := make([]string, len(s.cards))
	for i, c := range s.cards {
		out[i] = c.Name
	}
	return out
}

// HasNote reports whether text has been recorded as a note.
func (s *Selection) HasNote(text string) bool {
	_, ok := s.notes[text]
	return ok
}

// GeneralPile draws the next pile from the catalog's general iteration
// order, or (nil, false) once exhausted.
func (s *Selection) GeneralPile() (*pile.Pile, bool) {
	return s.beginGeneral.Next()
}

// CostSet satisfies property.SelectionView: the costs of every supply card
// selected so far.
func (s *Selection) CostSet() cost.Set { return s.costsInSupply }

// NeedToCheckCostTargets reports whether a pending cost target still needs
// attention.
func (s *Selection) NeedToCheckCostTargets() bool { return s.targetCheckRequired }

// TargetSet returns the distinct cost targets collected from selected
// piles.
func (s *Selection) TargetSet() []cost.Target { return s.targets }

// CatalogRef returns the catalog backing this selection, for callers that
// need the concrete type (the builder, actions).
func (s *Selection) CatalogRef() *catalog.Catalog { return s.catalog }

// Collection satisfies property.SelectionView.
func (s *Selection) Collection() property.CollectionView { return s.catalog.AsPropertyCollection() }

// HasKeyword satisfies property.SelectionView.
func (s *Selection) HasKeyword(kw string) bool { return s.keywords[kw] > 0 }

// HasInteractsKeyword satisfies property.SelectionView.
func (s *Selection) HasInteractsKeyword(kw string) bool { return s.interactsKeywords[kw] > 0 }

// NormalPileCount is the number of selected piles that count against the
// market cap.
func (s *Selection) NormalPileCount() int { return s.normalPileCount }

// RequiredCount is the current market cap.
func (s *Selection) RequiredCount() int { return s.requiredCards }
