// Package config parses CLI options and wires them into a Catalog, an RNG,
// and the list of constraints a run needs, grounded on decker-rs's main.rs
// (Cli struct, bool/read_boxes helpers) and config.rs (load_config,
// build_constraints).
package config

import (
	"flag"
	"fmt"
	"strings"

	"kingdomgen/internal/apperrors"
)

// csvList is a flag.Value that accumulates comma-separated values, mirroring
// clap's value_delimiter = ',' on the Rust Cli struct's Vec<String> fields.
type csvList struct{ values []string }

func (l *csvList) String() string { return strings.Join(l.values, ",") }

func (l *csvList) Set(s string) error {
	for _, v := range strings.Split(s, ",") {
		if v != "" {
			l.values = append(l.values, v)
		}
	}
	return nil
}

// Options is the parsed, unvalidated form of the CLI surface spec.md §6
// names. Load turns it into a usable Config.
type Options struct {
	Seed           uint64
	SeedSet        bool
	BadRand        bool
	Boxes          []string
	Groups         []string
	BoxFile        string
	CardFile       string
	List           bool
	LandscapeCount int
	LandscapeSet   bool
	Why            bool
	NoValidate     bool
	Exclude        []string
	Include        []string
	Info           bool
	NoAttackReact  bool
	NoAntiCursor   bool
	MaxCostRepeat  int
	MinType        []string
	MaxType        []string
	MaxPrefixes    int
}

// ParseFlags parses args (excluding the program name) into Options. It never
// calls os.Exit: flag-parse failures come back as
// apperrors.UnknownOptionError so the caller can map them to exit code 1.
func ParseFlags(args []string) (*Options, error) {
	fs := flag.NewFlagSet("kingdomgen", flag.ContinueOnError)
	fs.Usage = func() {}

	opts := &Options{}
	var seed uint64
	var landscapeCount int
	var boxes, groups, exclude, include, minType, maxType csvList

	fs.Uint64Var(&seed, "seed", 0, "seed for random number generator")
	fs.BoolVar(&opts.BadRand, "badrand", false, "use the bad but cross platform random number generator")
	fs.Var(&boxes, "boxes", "which boxes to include in the collection")
	fs.Var(&groups, "groups", "which groups to include in the collection")
	fs.StringVar(&opts.BoxFile, "boxfile", "", "filename listing boxes and which groups they contain")
	fs.StringVar(&opts.CardFile, "cardfile", "", "filename listing all cards")
	fs.BoolVar(&opts.List, "list", false, "dump contents of collection and exit")
	fs.IntVar(&landscapeCount, "landscape-count", -1, "how many landscape cards to include")
	fs.BoolVar(&opts.Why, "why", false, "explain why cards were added")
	fs.BoolVar(&opts.NoValidate, "no-validate", false, "do not validate collection")
	fs.Var(&exclude, "exclude", "do not allow any of these cards")
	fs.Var(&include, "include", "this card must be in the selection")
	fs.BoolVar(&opts.Info, "info", false, "show info about selected cards")
	fs.BoolVar(&opts.NoAttackReact, "no-attack-react", false, "disable automatic adding of reacts to attacks")
	fs.BoolVar(&opts.NoAntiCursor, "no-anti-cursor", false, "disable automatic adding of trash cards for cursers")
	fs.IntVar(&opts.MaxCostRepeat, "max-cost-repeat", 0, "maximum number of times a cost can occur")
	fs.Var(&minType, "min-type", "e.g. Treasure:5 means at least 5 treasures")
	fs.Var(&maxType, "max-type", "e.g. Treasure:5 means at most 5 treasures")
	fs.IntVar(&opts.MaxPrefixes, "max-prefixes", 0, "most prefixes (groups and related groups) which can be included")

	if err := fs.Parse(args); err != nil {
		return nil, &apperrors.UnknownOptionError{Option: err.Error()}
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.SeedSet = true
		}
	})
	opts.Seed = seed
	opts.Boxes = boxes.values
	opts.Groups = groups.values
	opts.Exclude = exclude.values
	opts.Include = include.values
	opts.MinType = minType.values
	opts.MaxType = maxType.values
	if landscapeCount >= 0 {
		opts.LandscapeCount = landscapeCount
		opts.LandscapeSet = true
	}
	return opts, nil
}

// parseTypeCount parses a "Type:N" spec, returning ("", 0, false) for any
// shape load_config's min_type/max_type loops would also skip (no ':', or
// an empty type name; a non-numeric count defaults to 0, matching
// unwrap_or(0) in the original).
func parseTypeCount(spec string) (string, int, bool) {
	lhs, rhs, ok := strings.Cut(spec, ":")
	if !ok || lhs == "" {
		return "", 0, false
	}
	var n int
	_, err := fmt.Sscanf(rhs, "%d", &n)
	if err != nil {
		n = 0
	}
	return lhs, n, true
}

// groupNamePrefix returns the part of a group name before its first '-', or
// the whole name if there is none (e.g. "Cornucopia-prizes" -> "Cornucopia").
func groupNamePrefix(groupName string) string {
	lhs, _, ok := strings.Cut(groupName, "-")
	if !ok {
		return groupName
	}
	return lhs
}
