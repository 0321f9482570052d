package rule

import (
	"sort"

	"go.uber.org/zap"
)

// Set is a mutable collection of rules keyed by name. Map insertion order
// is irrelevant for evaluation: all iteration helpers return rules sorted
// by name so scoring stays reproducible across runs.
type Set struct {
	rules  map[string]Rule
	logger *zap.Logger
}

// NewSet creates an empty rule set
func NewSet(logger ...*zap.Logger) *Set {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.NewNop()
	}
	return &Set{
		rules:  make(map[string]Rule),
		logger: l,
	}
}

// Add validates and inserts a rule, overwriting any rule with the same name.
func (s *Set) Add(r Rule) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.rules[r.Name] = r.clone()
	s.logger.Debug("rule added", zap.String("rule", r.Name))
	return nil
}

// Remove deletes a rule by name and reports whether it existed.
func (s *Set) Remove(name string) bool {
	if _, ok := s.rules[name]; !ok {
		return false
	}
	delete(s.rules, name)
	s.logger.Debug("rule removed", zap.String("rule", name))
	return true
}

// Get returns a copy of the named rule.
func (s *Set) Get(name string) (Rule, bool) {
	r, ok := s.rules[name]
	if !ok {
		return Rule{}, false
	}
	return r.clone(), true
}

// SetEnabled toggles a rule on or off and reports whether it existed.
func (s *Set) SetEnabled(name string, enabled bool) bool {
	r, ok := s.rules[name]
	if !ok {
		return false
	}
	r.Enabled = enabled
	s.rules[name] = r
	return true
}

// Len returns the number of rules in the set.
func (s *Set) Len() int {
	return len(s.rules)
}

// Names returns all rule names sorted lexicographically.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.rules))
	for name := range s.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rules returns copies of all rules sorted by name.
func (s *Set) Rules() []Rule {
	out := make([]Rule, 0, len(s.rules))
	for _, name := range s.Names() {
		out = append(out, s.rules[name].clone())
	}
	return out
}

// Enabled returns copies of the enabled rules sorted by name. The scorer
// iterates this order: confirmation rules see the running buy/sell
// comparison, so the order is part of the engine's observable behavior.
func (s *Set) Enabled() []Rule {
	out := make([]Rule, 0, len(s.rules))
	for _, name := range s.Names() {
		if r := s.rules[name]; r.Enabled {
			out = append(out, r.clone())
		}
	}
	return out
}

// Clone returns a deep copy of the set. Used by the optimizer so parallel
// ablation runs never share a mutable set.
func (s *Set) Clone() *Set {
	out := NewSet(s.logger)
	for name, r := range s.rules {
		out.rules[name] = r.clone()
	}
	return out
}
