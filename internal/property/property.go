// Package property implements the predicate abstraction used to describe
// both what belongs in a pile and what a selection-in-progress still needs.
// Properties are typed by identity, not value: two property instances with
// identical parameters are still distinct properties, mirroring decker-rs's
// Rc-pointer-keyed PropertyPtr used by the catalog's iterator cache.
package property

import "kingdomgen/internal/cost"

// PileView is the read surface a Property needs from a pile. It is defined
// here, not in package pile, so pile stays free of this package's import.
type PileView interface {
	Name() string
	CardGroup() string
	Supply() bool
	Kingdom() bool
	Types() []string
	HasType(string) bool
	Costs() cost.Set
	HasKeyword(string) bool
	HasKwInteraction(string) bool
	HasOtherInteraction(string) bool
	OtherInteractions() []string
}

// SelectionView is the read surface a Property needs from an in-progress
// selection.
type SelectionView interface {
	HasNote(text string) bool
	Piles() []PileView
	CardNames() []string
	CostSet() cost.Set
	HasKeyword(kw string) bool
	HasInteractsKeyword(kw string) bool
	Contains(p PileView) bool
	Collection() CollectionView
}

// CollectionView is the read surface a Property needs from the catalog.
type CollectionView interface {
	PileForCard(name string) (PileView, bool)
}

// Property is satisfied by every predicate kind below. Implementations are
// compared by identity (pointer equality), never by value.
type Property interface {
	IsSelectionProperty() bool
	PileMeets(p PileView) bool
	SelectionMeets(s SelectionView) bool
}

// base supplies the default false/false behavior that most pile-level
// properties share, so each concrete type only overrides what it needs.
type base struct{}

func (base) IsSelectionProperty() bool               { return false }
func (base) PileMeets(PileView) bool                 { return false }
func (base) SelectionMeets(SelectionView) bool       { return false }

// KingdomAndSupply matches any pile that is both a kingdom pile and sits in
// the supply. It is the catalog's general iteration property.
type KingdomAndSupply struct{ base }

func NewKingdomAndSupply() *KingdomAndSupply { return &KingdomAndSupply{} }

func (p *KingdomAndSupply) PileMeets(pl PileView) bool { return pl.Kingdom() && pl.Supply() }

// Type matches piles carrying a given card type, optionally restricted to
// kingdom+supply piles.
type Type struct {
	base
	TypeName         string
	KingdomAndSupply bool
}

func NewType(typeName string, kingdomAndSupply bool) *Type {
	return &Type{TypeName: typeName, KingdomAndSupply: kingdomAndSupply}
}

func (p *Type) PileMeets(pl PileView) bool {
	if p.KingdomAndSupply && (!pl.Kingdom() || !pl.Supply()) {
		return false
	}
	return pl.HasType(p.TypeName)
}

// Name matches a single pile by name.
type Name struct {
	base
	PileName string
}

func NewName(name string) *Name { return &Name{PileName: name} }

func (p *Name) PileMeets(pl PileView) bool { return pl.Name() == p.PileName }

// CostAndType matches piles that carry both a type and a cost from a set.
type CostAndType struct {
	base
	costProp *Cost
	typeProp *Type
}

func NewCostAndType(typeName string, costs cost.Set) *CostAndType {
	return &CostAndType{
		costProp: NewCost(costs, true),
		typeProp: &Type{TypeName: typeName, KingdomAndSupply: true},
	}
}

func (p *CostAndType) PileMeets(pl PileView) bool {
	return p.costProp.PileMeets(pl) && p.typeProp.PileMeets(pl)
}

// Note is a selection-level property satisfied once the selection carries a
// note with the given text.
type Note struct {
	base
	Text string
}

func NewNote(text string) *Note { return &Note{Text: text} }

func (p *Note) IsSelectionProperty() bool          { return true }
func (p *Note) SelectionMeets(s SelectionView) bool { return s.HasNote(p.Text) }

// Either is satisfied when either of its two sub-properties is.
type Either struct {
	base
	P1, P2 Property
}

func NewEither(p1, p2 Property) *Either { return &Either{P1: p1, P2: p2} }

func (p *Either) IsSelectionProperty() bool {
	return p.P1.IsSelectionProperty() || p.P2.IsSelectionProperty()
}
func (p *Either) PileMeets(pl PileView) bool { return p.P1.PileMeets(pl) || p.P2.PileMeets(pl) }
func (p *Either) SelectionMeets(s SelectionView) bool {
	return p.P1.SelectionMeets(s) || p.P2.SelectionMeets(s)
}

// CardGroup matches piles belonging to a named card group (expansion/base).
type CardGroup struct {
	base
	GroupName string
}

func NewCardGroup(groupName string) *CardGroup { return &CardGroup{GroupName: groupName} }

func (p *CardGroup) PileMeets(pl PileView) bool { return pl.CardGroup() == p.GroupName }

// OptionalExtra matches landscape-style piles: not in the supply proper, not
// kingdom cards, but an Event/Project/Landmark/Way.
type OptionalExtra struct{ base }

func NewOptionalExtra() *OptionalExtra { return &OptionalExtra{} }

func (p *OptionalExtra) PileMeets(pl PileView) bool {
	if pl.Supply() || pl.Kingdom() {
		return false
	}
	return pl.HasType("Event") || pl.HasType("Project") || pl.HasType("Landmark") || pl.HasType("Way")
}

// OtherInteraction matches piles carrying a given free-form interaction tag.
type OtherInteraction struct {
	base
	Tag              string
	KingdomAndSupply bool
}

func NewOtherInteraction(tag string, kingdomAndSupply bool) *OtherInteraction {
	return &OtherInteraction{Tag: tag, KingdomAndSupply: kingdomAndSupply}
}

func (p *OtherInteraction) PileMeets(pl PileView) bool {
	if p.KingdomAndSupply && (!pl.Supply() || !pl.Kingdom()) {
		return false
	}
	return pl.HasOtherInteraction(p.Tag)
}

// MissingPotion is satisfied when some selected pile needs a potion to buy
// but no Potion pile has been selected.
type MissingPotion struct{ base }

func NewMissingPotion() *MissingPotion { return &MissingPotion{} }

func (p *MissingPotion) IsSelectionProperty() bool { return true }
func (p *MissingPotion) SelectionMeets(s SelectionView) bool {
	found, havePotion := false, false
	for _, pl := range s.Piles() {
		if pl.Name() == "Potion" {
			havePotion = true
			continue
		}
		for c := range pl.Costs() {
			if c.HasPotionComponent() {
				found = true
				break
			}
		}
	}
	return found && !havePotion
}

// MissingGroupForKeyword fires once a pile of a type prefix has been added
// and the corresponding "added<group>" note hasn't been recorded yet.
type MissingGroupForKeyword struct {
	base
	TypeNeeded string
	Note       string
}

func NewMissingGroupForKeyword(typeNeeded, groupNeeded string) *MissingGroupForKeyword {
	return &MissingGroupForKeyword{TypeNeeded: typeNeeded, Note: "added" + groupNeeded}
}

func (p *MissingGroupForKeyword) IsSelectionProperty() bool { return true }
func (p *MissingGroupForKeyword) SelectionMeets(s SelectionView) bool {
	for _, pl := range s.Piles() {
		for _, t := range pl.Types() {
			if hasPrefix(t, p.TypeNeeded) && !s.HasNote(p.Note) {
				return true
			}
		}
	}
	return false
}

// MissingInteractingCardGroup fires when a selected pile's interactions
// reference a group("...") that hasn't been added yet.
type MissingInteractingCardGroup struct{ base }

func NewMissingInteractingCardGroup() *MissingInteractingCardGroup {
	return &MissingInteractingCardGroup{}
}

func (p *MissingInteractingCardGroup) IsSelectionProperty() bool { return true }
func (p *MissingInteractingCardGroup) SelectionMeets(s SelectionView) bool {
	for _, pl := range s.Piles() {
		for _, it := range pl.OtherInteractions() {
			if needName, ok := stripPrefixSuffix(it, "group(", ")"); ok {
				if !s.HasNote("added" + needName) {
					return true
				}
			}
		}
	}
	return false
}

// MissingInteractingCard fires when a selected pile's interactions
// reference a card("...") that hasn't been selected yet.
type MissingInteractingCard struct{ base }

func NewMissingInteractingCard() *MissingInteractingCard { return &MissingInteractingCard{} }

func (p *MissingInteractingCard) IsSelectionProperty() bool { return true }
func (p *MissingInteractingCard) SelectionMeets(s SelectionView) bool {
	need := map[string]struct{}{}
	for _, pl := range s.Piles() {
		for _, it := range pl.OtherInteractions() {
			if name, ok := stripPrefixSuffix(it, "card(", ")"); ok {
				need[name] = struct{}{}
			}
		}
	}
	if len(need) == 0 {
		return false
	}
	names := map[string]struct{}{}
	for _, n := range s.CardNames() {
		names[n] = struct{}{}
	}
	for name := range need {
		if _, ok := names[name]; !ok {
			return true
		}
	}
	return false
}

// Fail never matches anything; it is used to build always-failing
// constraints.
type Fail struct{ base }

func NewFail() *Fail { return &Fail{} }

// RepeatedCost is satisfied when any cost among the selected piles'
// supply costs repeats more than MaxRepeats times.
type RepeatedCost struct {
	base
	MaxRepeats int
}

func NewRepeatedCost(maxRepeats int) *RepeatedCost { return &RepeatedCost{MaxRepeats: maxRepeats} }

func (p *RepeatedCost) IsSelectionProperty() bool { return true }
func (p *RepeatedCost) SelectionMeets(s SelectionView) bool {
	counts := map[cost.Cost]int{}
	for c := range s.CostSet() {
		counts[c] = 0
	}
	for _, pl := range s.Piles() {
		for c := range pl.Costs() {
			if _, ok := counts[c]; ok {
				counts[c]++
			}
		}
	}
	for _, n := range counts {
		if n > p.MaxRepeats {
			return true
		}
	}
	return false
}

// Cost matches piles whose cost set intersects Costs (or, with a single
// cost, exactly that cost), optionally restricted to supply piles.
type Cost struct {
	base
	Costs      cost.Set
	SupplyOnly bool
}

func NewCost(costs cost.Set, supplyOnly bool) *Cost { return &Cost{Costs: costs, SupplyOnly: supplyOnly} }

func (p *Cost) PileMeets(pl PileView) bool {
	if p.SupplyOnly && !pl.Supply() {
		return false
	}
	return cost.Intersects(pl.Costs(), p.Costs)
}

// HangingInteractsWith fires when some selected pile declares an interaction
// with InteractsWith but neither Keyword nor AltKeyword has been added.
type HangingInteractsWith struct {
	base
	InteractsWith string
	Keyword       string
	AltKeyword    string
}

func NewHangingInteractsWith(interactsWith, keyword, altKeyword string) *HangingInteractsWith {
	return &HangingInteractsWith{InteractsWith: interactsWith, Keyword: keyword, AltKeyword: altKeyword}
}

func (p *HangingInteractsWith) IsSelectionProperty() bool { return true }
func (p *HangingInteractsWith) SelectionMeets(s SelectionView) bool {
	if !s.HasInteractsKeyword(p.InteractsWith) {
		return false
	}
	if s.HasKeyword(p.Keyword) {
		return false
	}
	if p.AltKeyword != "" && s.HasKeyword(p.AltKeyword) {
		return false
	}
	return true
}

// Keyword matches piles carrying a given keyword, optionally restricted to
// kingdom+supply piles.
type Keyword struct {
	base
	Word             string
	KingdomAndSupply bool
}

func NewKeyword(word string, kingdomAndSupply bool) *Keyword {
	return &Keyword{Word: word, KingdomAndSupply: kingdomAndSupply}
}

func (p *Keyword) PileMeets(pl PileView) bool {
	if p.KingdomAndSupply && (!pl.Kingdom() || !pl.Supply()) {
		return false
	}
	return pl.HasKeyword(p.Word)
}

// KeywordInteraction matches piles that interact with a given keyword.
type KeywordInteraction struct {
	base
	Word string
}

func NewKeywordInteraction(word string) *KeywordInteraction { return &KeywordInteraction{Word: word} }

func (p *KeywordInteraction) PileMeets(pl PileView) bool { return pl.HasKwInteraction(p.Word) }

// NeedProsperity is satisfied when the selection has exactly one of
// Colony/Platinum, or neither but has already reached Threshold Prosperity
// piles.
type NeedProsperity struct {
	base
	Threshold int
}

func NewNeedProsperity(threshold int) *NeedProsperity { return &NeedProsperity{Threshold: threshold} }

func (p *NeedProsperity) IsSelectionProperty() bool { return true }
func (p *NeedProsperity) SelectionMeets(s SelectionView) bool {
	col := s.Collection()
	colony, ok := col.PileForCard("Colony")
	if !ok {
		return false
	}
	platinum, ok := col.PileForCard("Platinum")
	if !ok {
		return false
	}
	hasColony := s.Contains(colony)
	hasPlatinum := s.Contains(platinum)
	if hasColony && hasPlatinum {
		return false
	}
	if hasColony != hasPlatinum {
		return true
	}
	total := 0
	for _, pl := range s.Piles() {
		if hasPrefix(pl.CardGroup(), "Prosperity") {
			total++
		}
	}
	return p.Threshold > 0 && p.Threshold <= total
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func stripPrefixSuffix(s, prefix, suffix string) (string, bool) {
	if !hasPrefix(s, prefix) || len(s) < len(prefix)+len(suffix) {
		return "", false
	}
	if s[len(s)-len(suffix):] != suffix {
		return "", false
	}
	return s[len(prefix) : len(s)-len(suffix)], true
}
