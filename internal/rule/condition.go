// Package rule implements the declarative rule layer of the signal engine:
// comparisons over named features, weighted rules, and the mutable rule set
// they live in.
package rule

import (
	"math"

	"github.com/quantpulse/pulse/internal/feature"
)

// Operator is a comparison operator applied between a feature value and its
// operand.
type Operator string

const (
	OpGreater      Operator = ">"
	OpLess         Operator = "<"
	OpGreaterEqual Operator = ">="
	OpLessEqual    Operator = "<="
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
)

// Valid reports whether the operator is one of the supported comparisons.
func (o Operator) Valid() bool {
	switch o {
	case OpGreater, OpLess, OpGreaterEqual, OpLessEqual, OpEqual, OpNotEqual:
		return true
	}
	return false
}

// Condition compares a feature against either a constant or another feature.
// Exactly one of Value and CompareTo should be set; CompareTo wins when both
// are present.
type Condition struct {
	Feature   string   `json:"feature"`
	Operator  Operator `json:"operator"`
	Value     *float64 `json:"value,omitempty"`
	CompareTo string   `json:"compare_to,omitempty"`
}

// Evaluate applies the condition against a snapshot. An absent or NaN
// feature on either side makes the condition indeterminate, which evaluates
// to false. Never returns an error and has no side effects.
func (c Condition) Evaluate(snap feature.Snapshot) bool {
	left, ok := snap.Get(c.Feature)
	if !ok {
		return false
	}

	var right float64
	switch {
	case c.CompareTo != "":
		right, ok = snap.Get(c.CompareTo)
		if !ok {
			return false
		}
	case c.Value != nil:
		right = *c.Value
		if math.IsNaN(right) {
			return false
		}
	default:
		// No operand configured
		return false
	}

	switch c.Operator {
	case OpGreater:
		return left > right
	case OpLess:
		return left < right
	case OpGreaterEqual:
		return left >= right
	case OpLessEqual:
		return left <= right
	case OpEqual:
		return left == right
	case OpNotEqual:
		return left != right
	default:
		return false
	}
}
