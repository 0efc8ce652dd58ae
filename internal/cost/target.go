package cost

import (
	"fmt"
	"strconv"
	"strings"
)

// Target is a weighted preference for certain costs, derived from a card's
// cost... interaction string. Concrete kinds: Relative, UpTo, InSet.
type Target interface {
	// AddVotes records this target's preference into votes given the costs
	// currently in the supply, and reports whether the target is still
	// unsatisfied.
	AddVotes(currentCosts Set, votes *Votes) bool
	// StrRep is the canonical string used to deduplicate targets (two
	// targets with the same StrRep are considered the same target).
	StrRep() string
}

type weights struct {
	matchesRequired int16
	unmetWeight     int16
	metWeight       int16
	strRep          string
}

func newWeights(matchesRequired, unmetWeight, metWeight int16, strRep string) weights {
	if unmetWeight < metWeight {
		unmetWeight, metWeight = metWeight, unmetWeight
	}
	return weights{matchesRequired, unmetWeight, metWeight, strRep}
}

// Relative prefers costs offset by delta from the costs currently selected.
// If Strict, only exactly +delta counts as a match; otherwise a spread from
// delta down to zero is credited.
type Relative struct {
	w      weights
	delta  int8
	strict bool
}

// NewRelative builds a Relative cost target.
func NewRelative(matchesRequired, unmetWeight, metWeight int16, delta int8, strict bool) *Relative {
	return &Relative{
		w:      newWeights(matchesRequired, unmetWeight, metWeight, fmt.Sprintf("CR%v%d", strict, delta)),
		delta:  delta,
		strict: strict,
	}
}

func (r *Relative) StrRep() string { return r.w.strRep }

func (r *Relative) AddVotes(current Set, votes *Votes) bool {
	matched := 0
	for c := range current {
		if current.Contains(c.relative(r.delta)) {
			matched++
		}
	}

	boost := float32(r.w.unmetWeight-r.w.metWeight) / float32(r.delta)
	weight := float32(r.w.metWeight) / float32(len(current))

	if r.delta < 0 {
		for c := range current {
			if !c.HasCoin {
				continue
			}
			if c.Coin < -r.delta {
				continue
			}
			target := c.relative(r.delta)
			// NOTE: when strict is true the original implementation
			// (decker-rs CostRelative::add_votes) does not cast any votes
			// for the negative-delta/strict combination. Preserved as-is.
			if !r.strict {
				for target.Coin > 0 {
					votes.Add(target, weight)
					target = target.relative(-1)
				}
				votes.Add(target, weight)
			}
		}
	} else {
		for c := range current {
			if !c.HasCoin {
				continue
			}
			target := c.relative(r.delta)
			if r.strict {
				votes.Add(target, weight+boost)
			} else {
				for target != c {
					votes.Add(target, weight+boost)
					target = target.relative(-1)
				}
				i := int8(0)
				for i < r.delta && target.Coin > 0 {
					votes.Add(target, weight)
					target = target.relative(-1)
					i++
				}
				votes.Add(target, weight)
			}
		}
	}
	return matched < int(r.w.matchesRequired)
}

// UpTo prefers coin-only costs in 1..=Limit.
type UpTo struct {
	w     weights
	limit int8
}

// NewUpTo builds an UpTo cost target.
func NewUpTo(matchesRequired, unmetWeight, metWeight int16, limit int8) *UpTo {
	return &UpTo{
		w:     newWeights(matchesRequired, unmetWeight, metWeight, fmt.Sprintf("UT%d", limit)),
		limit: limit,
	}
}

func (u *UpTo) StrRep() string { return u.w.strRep }

func (u *UpTo) AddVotes(current Set, votes *Votes) bool {
	matchCount := 0
	for c := range current {
		if !c.IsCoinOnly() {
			continue
		}
		coin := int8(-1)
		if c.HasCoin {
			coin = c.Coin
		}
		if coin <= u.limit {
			matchCount++
		}
	}
	w := u.w.unmetWeight
	if matchCount >= int(u.w.matchesRequired) {
		w = u.w.metWeight
	}
	weight := float32(w) / float32(u.limit)
	for i := int8(1); i <= u.limit; i++ {
		votes.Add(NewCoin(i), weight)
	}
	return matchCount < int(u.w.matchesRequired)
}

// InSet prefers any cost within a fixed set.
type InSet struct {
	w     weights
	costs Set
}

// NewInSet builds an InSet cost target.
func NewInSet(matchesRequired, unmetWeight, metWeight int16, costs Set) *InSet {
	var b strings.Builder
	b.WriteString("IS")
	for _, c := range costs.Sorted() {
		b.WriteString(c.String())
	}
	return &InSet{
		w:     newWeights(matchesRequired, unmetWeight, metWeight, b.String()),
		costs: costs,
	}
}

func (s *InSet) StrRep() string { return s.w.strRep }

func (s *InSet) AddVotes(current Set, votes *Votes) bool {
	matched := 0
	for c := range current {
		if s.costs.Contains(c) {
			matched++
		}
	}
	var w float32
	if matched >= int(s.w.matchesRequired) {
		w = float32(s.w.metWeight) / float32(len(s.costs))
	} else {
		w = float32(s.w.unmetWeight) / float32(len(s.costs))
	}
	for c := range s.costs {
		votes.Add(c, w)
	}
	return matched < int(s.w.matchesRequired)
}

// decode_cost tuning constants, lifted from decker-rs::costs::decode_cost.
const (
	relativeMatchesRequired = 6
	relativeUnmetWeight     = 3
	relativeMetWeight       = 1
	uptoMatchesRequired     = 3
	costBound               = 30
)

// Decode parses a card's cost... interaction string into a Target. It
// returns (nil, false) for any shape or out-of-range value spec.md §4.1
// doesn't recognise.
func Decode(s string) (Target, bool) {
	rest, ok := strings.CutPrefix(s, "cost")
	if !ok {
		return nil, false
	}

	if rng, ok := strings.CutPrefix(rest, "_in"); ok {
		rng, ok = strings.CutPrefix(rng, "(")
		if !ok {
			return nil, false
		}
		rng, ok = strings.CutSuffix(rng, ")")
		if !ok {
			return nil, false
		}
		lowerS, upperS, ok := strings.Cut(rng, ".")
		if !ok {
			return nil, false
		}
		lower, err1 := strconv.ParseUint(lowerS, 10, 8)
		upper, err2 := strconv.ParseUint(upperS, 10, 8)
		if err1 != nil || err2 != nil || lower < 1 || upper < lower {
			return nil, false
		}
		cs := Set{}
		for v := lower; v <= upper; v++ {
			cs.Add(NewCoin(int8(v)))
		}
		return NewInSet(uptoMatchesRequired, relativeUnmetWeight, relativeMetWeight, cs), true
	}

	switch {
	case strings.HasPrefix(rest, "<=+"):
		v, ok := parseBoundedValue(rest[3:])
		if !ok {
			return nil, false
		}
		return NewRelative(relativeMatchesRequired, relativeUnmetWeight, relativeMetWeight, v, false), true
	case strings.HasPrefix(rest, "<=-"):
		v, ok := parseBoundedValue(rest[3:])
		if !ok {
			return nil, false
		}
		return NewRelative(relativeMatchesRequired, relativeUnmetWeight, relativeMetWeight, -v, false), true
	case strings.HasPrefix(rest, "<="):
		v, ok := parseBoundedValue(rest[2:])
		if !ok {
			return nil, false
		}
		return NewUpTo(uptoMatchesRequired, relativeUnmetWeight, relativeMetWeight, v), true
	case strings.HasPrefix(rest, "=+"):
		v, ok := parseBoundedValue(rest[2:])
		if !ok {
			return nil, false
		}
		return NewRelative(relativeMatchesRequired, relativeUnmetWeight, relativeMetWeight, v, true), true
	case strings.HasPrefix(rest, "=-"):
		v, ok := parseBoundedValue(rest[2:])
		if !ok {
			return nil, false
		}
		return NewRelative(relativeMatchesRequired, relativeUnmetWeight, relativeMetWeight, -v, true), true
	case strings.HasPrefix(rest, ">="):
		v, ok := parseBoundedValue(rest[2:])
		if !ok {
			return nil, false
		}
		cs := Set{}
		for i := v; i <= MaxCoinCost; i++ {
			cs.Add(NewCoin(i))
		}
		return NewInSet(uptoMatchesRequired, relativeUnmetWeight, relativeMetWeight, cs), true
	}
	return nil, false
}

// parseBoundedValue parses a positive integer in 1..=costBound.
func parseBoundedValue(s string) (int8, bool) {
	n, err := strconv.ParseInt(s, 10, 8)
	if err != nil {
		return 0, false
	}
	if n <= 0 || n > costBound {
		return 0, false
	}
	return int8(n), true
}
