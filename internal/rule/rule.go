package rule

import (
	"fmt"

	"github.com/quantpulse/pulse/internal/core"
	"github.com/quantpulse/pulse/internal/feature"
)

// Intent declares which side of the score a firing rule contributes to.
// It is a static field set at definition time, not inferred from the
// rule's name.
type Intent string

const (
	IntentBuy          Intent = "buy"
	IntentSell         Intent = "sell"
	IntentConfirmation Intent = "confirmation"
)

// Valid reports whether the intent is one of the supported values.
func (i Intent) Valid() bool {
	switch i {
	case IntentBuy, IntentSell, IntentConfirmation:
		return true
	}
	return false
}

// Rule is a named, weighted conjunction of conditions. Rules are value
// objects: freely copyable, owned exclusively by the Set they live in.
type Rule struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Intent      Intent      `json:"intent"`
	Category    string      `json:"category"`
	Weight      float64     `json:"weight"`
	Enabled     bool        `json:"enabled"`
	Conditions  []Condition `json:"conditions"`
}

// Fires reports whether every condition holds for the snapshot.
// A rule with zero conditions never fires.
func (r Rule) Fires(snap feature.Snapshot) bool {
	if len(r.Conditions) == 0 {
		return false
	}
	for _, c := range r.Conditions {
		if !c.Evaluate(snap) {
			return false
		}
	}
	return true
}

// Validate checks the rule for programmer errors. Called at construction
// time so malformed rules fail fast rather than mid-simulation.
func (r Rule) Validate() error {
	if r.Name == "" {
		return core.WrapError(core.ErrInvalidRule, fmt.Errorf("rule name is empty"))
	}
	if r.Weight < 0 {
		return core.WrapError(core.ErrInvalidRule,
			fmt.Errorf("rule %q has negative weight %f", r.Name, r.Weight))
	}
	if !r.Intent.Valid() {
		return core.WrapError(core.ErrInvalidRule,
			fmt.Errorf("rule %q has invalid intent %q", r.Name, r.Intent))
	}
	for i, c := range r.Conditions {
		if c.Feature == "" {
			return core.WrapError(core.ErrInvalidRule,
				fmt.Errorf("rule %q condition %d has no feature", r.Name, i))
		}
		if !c.Operator.Valid() {
			return core.WrapError(core.ErrInvalidRule,
				fmt.Errorf("rule %q condition %d has invalid operator %q", r.Name, i, c.Operator))
		}
		if c.Value == nil && c.CompareTo == "" {
			return core.WrapError(core.ErrInvalidRule,
				fmt.Errorf("rule %q condition %d has no operand", r.Name, i))
		}
	}
	return nil
}

// clone returns a deep copy of the rule (conditions slice included).
func (r Rule) clone() Rule {
	out := r
	out.Conditions = make([]Condition, len(r.Conditions))
	copy(out.Conditions, r.Conditions)
	return out
}
