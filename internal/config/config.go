package config

import (
	"fmt"
	"sort"
	"strings"

	"kingdomgen/internal/apperrors"
	"kingdomgen/internal/ingest"
	"kingdomgen/internal/pile"
	"kingdomgen/internal/randstream"
)

// Config is the fully resolved, validated result of parsing and applying
// the CLI options: the piles a run is allowed to draw from, the forced
// includes, and the RNG that will drive both the remaining box/prefix
// selection and the catalog shuffle.
type Config struct {
	Rand               randstream.Stream
	Why                bool
	MoreInfo           bool
	OptionalExtras     int
	Validate           bool
	ListCollection     bool
	DisableAntiCursors bool
	DisableAttackReact bool
	MaxCostRepeat      int
	MinTypes           map[string]int
	MaxTypes           map[string]int
	Piles              []*pile.Pile
	Includes           []*pile.Pile
}

// Load turns parsed Options into a Config: loads the card file (and, if
// --boxes names any box, the box file), restricts the pile set to the
// requested groups/boxes (always force-including "base"), resolves
// --include against that restricted set, applies --max-prefixes, and picks
// a landscape count. Grounded on decker-rs's config.rs::load_config.
func Load(opts *Options, defaultCardFile, defaultBoxFile string) (*Config, error) {
	cardFile := opts.CardFile
	if cardFile == "" {
		cardFile = defaultCardFile
	}

	tempPiles, _, err := ingest.LoadCards(cardFile, opts.Exclude)
	if err != nil {
		return nil, err
	}

	requiredGroups := make(map[string]bool)
	if len(opts.Boxes) > 0 {
		boxFile := opts.BoxFile
		if boxFile == "" {
			boxFile = defaultBoxFile
		}
		if boxFile == "" {
			return nil, fmt.Errorf("no box file specified")
		}
		boxToGroups, err := ingest.LoadBoxes(boxFile)
		if err != nil {
			return nil, err
		}
		if len(boxToGroups) == 0 {
			return nil, fmt.Errorf("--boxes specified but no boxes known (use --boxfile)")
		}
		for _, box := range opts.Boxes {
			groups, ok := boxToGroups[box]
			if !ok {
				return nil, &apperrors.UnknownReferenceError{Kind: "box", Name: box}
			}
			for _, g := range groups {
				requiredGroups[g] = false
			}
		}
	}
	for _, g := range opts.Groups {
		requiredGroups[g] = false
	}

	var pSet []*pile.Pile
	if len(requiredGroups) > 0 {
		requiredGroups["base"] = false
		for _, p := range tempPiles {
			if _, ok := requiredGroups[p.CardGroup()]; ok {
				pSet = append(pSet, p)
				requiredGroups[p.CardGroup()] = true
			}
		}
		var unknown []string
		for name, seen := range requiredGroups {
			if !seen {
				unknown = append(unknown, name)
			}
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			var msgs []string
			for _, name := range unknown {
				msgs = append(msgs, fmt.Sprintf("Unknown group %s", name))
			}
			return nil, fmt.Errorf("%s", strings.Join(msgs, "\n"))
		}
	} else {
		pSet = tempPiles
	}

	var includes []*pile.Pile
	for _, name := range opts.Include {
		found := false
		for _, p := range pSet {
			for _, c := range p.Cards() {
				if c.Name == name {
					includes = append(includes, p)
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("can't find card %s", name)
		}
	}

	minTypes := make(map[string]int)
	for _, s := range opts.MinType {
		if name, n, ok := parseTypeCount(s); ok {
			minTypes[name] = n
		}
	}
	maxTypes := make(map[string]int)
	for _, s := range opts.MaxType {
		if name, n, ok := parseTypeCount(s); ok {
			maxTypes[name] = n
		}
	}

	bound := uint64(10 * len(pSet))
	rand := randstream.NewBadRand(opts.Seed, bound)

	if opts.MaxPrefixes > 0 {
		pSet, err = applyMaxPrefixes(pSet, includes, opts.MaxPrefixes, rand)
		if err != nil {
			return nil, err
		}
	}

	optionalExtras := opts.LandscapeCount
	if !opts.LandscapeSet {
		x := int(rand.Get() % 7)
		if x < 3 {
			optionalExtras = x
		} else {
			optionalExtras = 0
		}
	}

	return &Config{
		Rand:               rand,
		Why:                opts.Why,
		MoreInfo:           opts.Info,
		OptionalExtras:     optionalExtras,
		Validate:           !opts.NoValidate,
		ListCollection:     opts.List,
		DisableAntiCursors: opts.NoAntiCursor,
		DisableAttackReact: opts.NoAttackReact,
		MaxCostRepeat:      opts.MaxCostRepeat,
		MinTypes:           minTypes,
		MaxTypes:           maxTypes,
		Piles:              pSet,
		Includes:           includes,
	}, nil
}

// applyMaxPrefixes caps the number of distinct group-name prefixes (e.g.
// "Cornucopia" covering both "Cornucopia" and "Cornucopia-prizes") the pile
// set draws from. "base" and every prefix an --include pile belongs to are
// always kept; the rest are filled in by a biased shuffle of the remaining
// prefixes until the cap is reached. Grounded on decker-rs's
// config.rs::load_config max-prefixes block.
func applyMaxPrefixes(pSet, includes []*pile.Pile, maxPrefixes int, rand randstream.Stream) ([]*pile.Pile, error) {
	suggestedMax := maxPrefixes + 1

	chosen := map[string]bool{"base": true}
	for _, p := range includes {
		chosen[groupNamePrefix(p.CardGroup())] = true
	}
	if len(chosen) > suggestedMax {
		return nil, fmt.Errorf(
			"requested at most %d big groups, but included cards are drawn from %d",
			suggestedMax-1, len(chosen)-1)
	}

	prefixSet := map[string]bool{}
	for _, p := range pSet {
		prefixSet[groupNamePrefix(p.CardGroup())] = true
	}
	prefixes := make([]string, 0, len(prefixSet))
	for p := range prefixSet {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)

	n := len(prefixes)
	for pass := 0; pass < 3; pass++ {
		for i := 0; i < n; i++ {
			pos := int(rand.Get() % uint64(n))
			if i != pos {
				prefixes[i], prefixes[pos] = prefixes[pos], prefixes[i]
			}
		}
	}

	i := 0
	for i < n && len(chosen) < suggestedMax {
		chosen[prefixes[i]] = true
		i++
	}

	var result []*pile.Pile
	for _, p := range pSet {
		if chosen[groupNamePrefix(p.CardGroup())] {
			result = append(result, p)
		}
	}
	return result, nil
}
