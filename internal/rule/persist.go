package rule

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/quantpulse/pulse/internal/core"
	"go.uber.org/zap"
)

// Save serializes every rule to path as a name-keyed JSON document.
// Every field written is read back verbatim by Load.
func (s *Set) Save(path string) error {
	doc := make(map[string]Rule, len(s.rules))
	for name, r := range s.rules {
		doc[name] = r
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return core.WrapError(core.ErrRuleFileInvalid, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return core.WrapError(core.ErrRuleFileInvalid, err)
	}

	s.logger.Info("rule set saved", zap.String("path", path), zap.Int("rules", len(doc)))
	return nil
}

// Load reads a rule definition file and merges it into the set: rules in
// the file are added or overwrite same-named rules, rules absent from the
// file are kept. A missing or malformed file leaves the set completely
// unchanged; the returned error carries core.ErrRuleFileInvalid so callers
// can treat it as a recoverable config problem.
func (s *Set) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Warn("rule file unreadable", zap.String("path", path), zap.Error(err))
		return core.WrapError(core.ErrRuleFileInvalid, err)
	}

	var doc map[string]Rule
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("rule file malformed", zap.String("path", path), zap.Error(err))
		return core.WrapError(core.ErrRuleFileInvalid, err)
	}

	// Validate everything before touching the set so a bad entry cannot
	// leave a partial merge behind.
	for name, r := range doc {
		if r.Name == "" {
			r.Name = name
		}
		if r.Name != name {
			err := fmt.Errorf("rule keyed %q declares name %q", name, r.Name)
			s.logger.Warn("rule file inconsistent", zap.String("path", path), zap.Error(err))
			return core.WrapError(core.ErrRuleFileInvalid, err)
		}
		if err := r.Validate(); err != nil {
			s.logger.Warn("rule file invalid", zap.String("path", path), zap.Error(err))
			return core.WrapError(core.ErrRuleFileInvalid, err)
		}
		doc[name] = r
	}

	for name, r := range doc {
		s.rules[name] = r.clone()
	}

	s.logger.Info("rule set loaded", zap.String("path", path), zap.Int("rules", len(doc)))
	return nil
}
