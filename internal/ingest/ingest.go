// Package ingest parses the two flat-file formats the engine is fed from:
// the card catalog CSV and the box-file grouping expansions into boxes.
// Grounded on decker-rs's cards.rs::load_cards/make_card and
// main.rs::read_boxes.
package ingest

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"kingdomgen/internal/apperrors"
	"kingdomgen/internal/card"
	"kingdomgen/internal/cost"
	"kingdomgen/internal/pile"
)

// Fixed CSV column positions (decker-rs cards.rs).
const (
	nameCol     = 0
	pileCol     = 1
	setCol      = 2
	supplyCol   = 3
	kingdomCol  = 4
	typeCol     = 5
	coinCostCol = 6
	debtCostCol = 8
	potionCostCol = 9
	keywordsCol   = 11
	interactKeyCol   = 12
	interactOtherCol = 13
	endCol           = interactOtherCol + 1
)

func boolValue(s string) bool { return s == "Y" || s == "y" }

func noEmptySplit(s string, sep string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, sep)
}

func parseOptionalInt8(s string) (int8, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 8)
	if err != nil {
		return 0, false
	}
	return int8(n), true
}

// makeCard parses one already-split CSV line into a card, or reports false
// for any line decker-rs's make_card would also reject (too few fields, a
// malformed parenthesised interaction, or an unrecognised cost... spec).
func makeCard(fields []string) (*card.Card, bool) {
	if len(fields) < endCol {
		return nil, false
	}

	var coinP, potionP, debtP *int8
	if v, ok := parseOptionalInt8(fields[coinCostCol]); ok {
		coinP = &v
	}
	if v, ok := parseOptionalInt8(fields[potionCostCol]); ok {
		potionP = &v
	}
	if v, ok := parseOptionalInt8(fields[debtCostCol]); ok {
		debtP = &v
	}
	c := cost.New(coinP, potionP, debtP)

	interactOther := noEmptySplit(fields[interactOtherCol], ";")
	var targets []cost.Target
	for _, s := range interactOther {
		if strings.Contains(s, "(") && !strings.HasSuffix(s, ")") {
			return nil, false
		}
		if strings.HasPrefix(s, "cost") {
			t, ok := cost.Decode(s)
			if !ok {
				return nil, false
			}
			targets = append(targets, t)
		}
	}

	return &card.Card{
		Name:              fields[nameCol],
		PileName:          fields[pileCol],
		Group:             fields[setCol],
		InSupply:          boolValue(fields[supplyCol]),
		IsKingdom:         boolValue(fields[kingdomCol]),
		Types:             noEmptySplit(fields[typeCol], ";"),
		Cost:              c,
		Keywords:          noEmptySplit(fields[keywordsCol], ";"),
		KwInteractions:    noEmptySplit(fields[interactKeyCol], ";"),
		OtherInteractions: interactOther,
		CostTargets:       targets,
	}, true
}

// LoadCards reads the card catalog CSV at path, grouping cards into piles by
// pile name (falling back to card name) and dropping every pile that
// contains a card named in exclude. It returns apperrors.UnknownReferenceError
// if any excluded name never matched a card, matching decker-rs's "Unknown
// card" check (only run when no parse error occurred).
func LoadCards(path string, exclude []string) ([]*pile.Pile, []*card.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &apperrors.MissingFileError{Path: path, Err: err}
	}
	defer f.Close()

	excludeSeen := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excludeSeen[name] = false
	}

	var piles []*pile.Pile
	pileIndex := make(map[string]int)
	removePiles := make(map[int]bool)
	var allCards []*card.Card

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var parseErrs []string
	lineNum := 1
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			continue
		}
		lineNum++
		if strings.HasPrefix(line, ",") {
			continue
		}
		fields := strings.Split(line, ",")
		c, ok := makeCard(fields)
		if !ok {
			parseErrs = append(parseErrs, fmt.Sprintf("Error parsing card line %d", lineNum))
			continue
		}

		pileName := c.PileName
		if pileName == "" {
			pileName = c.Name
		}
		idx, ok := pileIndex[pileName]
		if !ok {
			idx = len(piles)
			piles = append(piles, pile.New(pileName))
			pileIndex[pileName] = idx
		}

		if _, ok := excludeSeen[c.Name]; ok {
			removePiles[idx] = true
			excludeSeen[c.Name] = true
		}

		piles[idx].AddCard(c)
		allCards = append(allCards, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if len(parseErrs) == 0 {
		names := make([]string, 0, len(excludeSeen))
		for name := range excludeSeen {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if !excludeSeen[name] {
				return nil, nil, &apperrors.UnknownReferenceError{Kind: "card", Name: name}
			}
		}
	} else {
		return nil, nil, fmt.Errorf("%s", strings.Join(parseErrs, "\n"))
	}

	var result []*pile.Pile
	var resultCards []*card.Card
	for i, p := range piles {
		if removePiles[i] {
			continue
		}
		result = append(result, p)
	}
	for _, c := range allCards {
		pileName := c.PileName
		if pileName == "" {
			pileName = c.Name
		}
		if removePiles[pileIndex[pileName]] {
			continue
		}
		resultCards = append(resultCards, c)
	}
	return result, resultCards, nil
}

// LoadBoxes reads a box file at path into a box-name -> groups mapping,
// grounded on decker-rs's main.rs::read_boxes: blank and #-comment lines are
// skipped, every remaining line must split on '=' into exactly two
// non-empty halves, and the right side is a ';'-separated list of groups.
func LoadBoxes(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &apperrors.MissingFileError{Path: path, Err: err}
	}
	defer f.Close()

	res := make(map[string][]string)
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		line := scanner.Text()
		lineNum++
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}
		parts := strings.Split(line, "=")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("can't parse line %d", lineNum)
		}
		groups := strings.Split(parts[1], ";")
		res[parts[0]] = append(res[parts[0]], groups...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return res, nil
}
