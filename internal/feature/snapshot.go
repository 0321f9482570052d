// Package feature defines the read-only per-bar feature values the engine
// consumes. Features are computed by external collaborators (an indicator
// pipeline, a support/resistance detector) and handed in as already-resolved
// values; the engine never computes or caches them itself.
package feature

import "math"

// Snapshot is a read-only mapping from feature name to its value for exactly
// one bar index. Missing keys are a normal occurrence, not an error.
type Snapshot map[string]float64

// Get returns the value for the named feature. NaN values are reported as
// absent since they carry the same "not yet defined" meaning as a missing key.
func (s Snapshot) Get(name string) (float64, bool) {
	v, ok := s[name]
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// True and False are the canonical encodings for boolean features such as
// "near_support". Rules compare them with == 1 / == 0.
const (
	True  = 1.0
	False = 0.0
)

// Bool converts a boolean feature value into the canonical encoding.
func Bool(b bool) float64 {
	if b {
		return True
	}
	return False
}
