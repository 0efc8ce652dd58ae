package cost

// Votes tallies a float weight per cost across the set of costs legal in a
// catalog (every cost that actually occurs on some card). Only legal costs
// accumulate votes; anything else is silently discarded.
type Votes struct {
	legal Set
	tally map[Cost]float32
}

// NewVotes creates an empty vote tally scoped to the given legal cost set.
func NewVotes(legal Set) *Votes {
	return &Votes{legal: legal, tally: make(map[Cost]float32)}
}

// Add accumulates diff into c's running tally, if c is a legal cost.
func (v *Votes) Add(c Cost, diff float32) {
	if !v.legal.Contains(c) {
		return
	}
	v.tally[c] += diff
}

// MaxWeighted finds the peak tally M; if M < threshold it returns
// (nil, false). Otherwise it returns every cost whose tally is within
// tolerance of M.
func (v *Votes) MaxWeighted(threshold, tolerance float32) (Set, bool) {
	var max float32
	for _, w := range v.tally {
		if w > max {
			max = w
		}
	}
	if max < threshold {
		return nil, false
	}
	out := Set{}
	for c, w := range v.tally {
		if max-w <= tolerance {
			out.Add(c)
		}
	}
	return out, max > 0
}
