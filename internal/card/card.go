// Package card models a single printed card: immutable, identified by name.
package card

import "kingdomgen/internal/cost"

// Card is immutable once constructed. Two cards are the same card iff their
// names match.
type Card struct {
	Name              string
	PileName          string
	Group             string
	InSupply          bool
	IsKingdom         bool
	Types             []string
	Cost              cost.Cost
	Keywords          []string
	KwInteractions    []string
	OtherInteractions []string
	CostTargets       []cost.Target
}

// Equal reports whether two cards are the same card (by name).
func (c *Card) Equal(other *Card) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Name == other.Name
}

// HasType reports whether the card carries the given type string.
func (c *Card) HasType(t string) bool {
	for _, ct := range c.Types {
		if ct == t {
			return true
		}
	}
	return false
}

// HasKeyword reports whether the card carries the given keyword.
func (c *Card) HasKeyword(kw string) bool {
	for _, k := range c.Keywords {
		if k == kw {
			return true
		}
	}
	return false
}
