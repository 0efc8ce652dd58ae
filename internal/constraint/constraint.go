// Package constraint implements the four-threshold state machine that
// drives the builder: for a count of matching piles/selection state, a
// constraint is inactive, satisfied-but-open, satisfied-and-closed, or
// broken.
package constraint

import (
	"fmt"

	"kingdomgen/internal/action"
	"kingdomgen/internal/property"
	"kingdomgen/internal/selection"
)

// Constraint implements selection.Constraint.
type Constraint struct {
	prop          property.Property
	precondition  property.Property
	act           action.Action
	active        int // x: precondition count needed to activate this constraint at all
	satisfied     int // a: count at which the constraint becomes satisfiable (MorePossible)
	inactive      int // b: count at which the constraint goes fully quiet (OK)
	broken        int // c: count at or above which the constraint fails
	label         string
}

// Unsatisfiable builds a constraint that always fails: used when a
// constraint's fix action can't even be constructed (e.g. no candidate
// piles exist in the catalog at all).
func Unsatisfiable(label string) *Constraint {
	return &Constraint{prop: property.NewFail(), label: label}
}

// New builds a constraint with no precondition: prop must appear at least
// min times and no more than max times.
func New(label string, prop property.Property, act action.Action, min, max int) *Constraint {
	return &Constraint{prop: prop, act: act, active: 0, satisfied: min, inactive: min, broken: max + 1, label: label}
}

// NewFull builds a constraint with an optional precondition and the full
// four thresholds (x, a, b, c), matching decker-rs's Constraint::make_ptr_full.
func NewFull(label string, precondition, prop property.Property, act action.Action, x, a, b, c int) *Constraint {
	return &Constraint{prop: prop, precondition: precondition, act: act, active: x, satisfied: a, inactive: b, broken: c, label: label}
}

// Label identifies the constraint in tags and error messages.
func (c *Constraint) Label() string { return c.label }

func countMatches(prop property.Property, s *selection.Selection) int {
	if prop.IsSelectionProperty() {
		if prop.SelectionMeets(s) {
			return 1
		}
		return 0
	}
	count := 0
	for _, p := range s.Piles() {
		if prop.PileMeets(p) {
			count++
		}
	}
	return count
}

// GetStatus evaluates the constraint against s.
func (c *Constraint) GetStatus(s *selection.Selection) selection.Status {
	if c.precondition != nil {
		if countMatches(c.precondition, s) < c.active {
			return selection.StatusOK
		}
	}
	count := countMatches(c.prop, s)
	switch {
	case count >= c.broken:
		return selection.StatusFail
	case count >= c.inactive:
		return selection.StatusOK
	case count >= c.satisfied:
		return selection.StatusMorePossible
	default:
		return selection.StatusActionRequired
	}
}

// Act invokes the constraint's fix action, if it has one.
func (c *Constraint) Act(s *selection.Selection) (*selection.Selection, error) {
	if c.act == nil {
		return nil, fmt.Errorf("constraint %q has no fix action", c.label)
	}
	return c.act.Apply(c.label, s)
}
