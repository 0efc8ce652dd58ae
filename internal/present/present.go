// Package present renders a finished selection for a terminal: piles
// grouped by the expansion they come from, the tags a constraint left on
// them, and (optionally) the raw type/cost info a player would otherwise
// have to look up. Grounded on decker-rs's selections.rs::dump, styled
// with lipgloss and x/term.
package present

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"kingdomgen/internal/pile"
	"kingdomgen/internal/selection"
)

var (
	groupColor = lipgloss.Color("#06B6D4")
	pileColor  = lipgloss.Color("#F8FAFC")
	tagColor   = lipgloss.Color("#94A3B8")
	infoColor  = lipgloss.Color("#10B981")
	itemColor  = lipgloss.Color("#F59E0B")

	groupStyle = lipgloss.NewStyle().Foreground(groupColor).Bold(true)
	pileStyle  = lipgloss.NewStyle().Foreground(pileColor)
	tagStyle   = lipgloss.NewStyle().Foreground(tagColor)
	infoStyle  = lipgloss.NewStyle().Foreground(infoColor)
	itemStyle  = lipgloss.NewStyle().Foreground(itemColor)
)

// termWidth returns the current terminal width, falling back through
// stdout, stderr, stdin, the COLUMNS env var, and finally a fixed default
// of 80.
func termWidth() int {
	for _, fd := range []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()} {
		if w, _, err := term.GetSize(int(fd)); err == nil {
			return w
		}
	}
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if w, err := strconv.Atoi(cols); err == nil {
			return w
		}
	}
	return 80
}

func itemName(interaction string) (string, bool) {
	const prefix, suffix = "item(", ")"
	if !strings.HasPrefix(interaction, prefix) || !strings.HasSuffix(interaction, suffix) {
		return "", false
	}
	return interaction[len(prefix) : len(interaction)-len(suffix)], true
}

// Dump writes a human-readable rendering of sel to w: every chosen pile
// grouped under a "From <group>" header (ordered by group then name), the
// tags left on each pile (internal "<...>"-wrapped tags hidden unless
// showAll is set), optionally each pile's types and cost set when
// showCardInfo is set, and a trailing "Need the following items" section
// built from every item(...) interaction on a chosen pile plus the items
// the selection itself recorded (NeedItems).
func Dump(w *strings.Builder, sel *selection.Selection, showAll, showCardInfo bool) {
	piles := pile.BySortedGroupThenName(sel.PileList())

	maxLen := 0
	for _, p := range piles {
		if l := len(p.Name()); l > maxLen {
			maxLen = l
		}
	}

	items := map[string]struct{}{}
	group := ""
	for _, p := range piles {
		if p.CardGroup() != group {
			group = p.CardGroup()
			fmt.Fprintln(w, groupStyle.Render(fmt.Sprintf("From %s", group)))
		}
		w.WriteString("   ")
		w.WriteString(pileStyle.Render(p.Name()))

		tags := visibleTags(sel.Tags(p), showAll)
		if len(tags) > 0 {
			w.WriteString(tagStyle.Render(fmt.Sprintf(" (%s)", strings.Join(tags, ", "))))
		}

		if showCardInfo {
			w.WriteString(strings.Repeat(" ", maxLen-len(p.Name())))
			w.WriteString(infoStyle.Render(fmt.Sprintf(" types=%s costs={%s}",
				strings.Join(p.Types(), ", "), costsString(p))))
		}
		fmt.Fprintln(w)

		for _, inter := range p.OtherInteractions() {
			if name, ok := itemName(inter); ok {
				items[name] = struct{}{}
			}
		}
	}
	for _, need := range sel.NeedItems() {
		items[need] = struct{}{}
	}

	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, itemStyle.Render("Need the following items:"))
	for _, name := range sortedStrings(items) {
		fmt.Fprintf(w, "   %s\n", name)
	}
}

func visibleTags(tags []string, showAll bool) []string {
	var out []string
	for _, t := range tags {
		if showAll || !strings.Contains(t, "<") {
			out = append(out, t)
		}
	}
	return out
}

func costsString(p *pile.Pile) string {
	costs := p.Costs().Sorted()
	parts := make([]string, len(costs))
	for i, c := range costs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

func sortedStrings(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Width exposes the detected terminal width for callers that want to match
// it.
func Width() int { return termWidth() }
