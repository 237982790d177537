// Package selftest checks a membership engine against labeled example
// strings and reports every disagreement, never stopping at the first.
package selftest

import (
	"fmt"
	"log/slog"
)

// Suite is a labeled set of example strings: members and non-members of
// the language under test. The two lists must be disjoint.
type Suite struct {
	InLanguage    []string `yaml:"in_language"`
	NotInLanguage []string `yaml:"not_in_language"`
}

// Validate rejects a suite that labels a string as both in and not in
// the language.
func (s Suite) Validate() error {
	members := make(map[string]struct{}, len(s.InLanguage))
	for _, in := range s.InLanguage {
		members[in] = struct{}{}
	}
	for _, out := range s.NotInLanguage {
		if _, ok := members[out]; ok {
			return fmt.Errorf("suite labels %q as both in and not in the language", out)
		}
	}
	return nil
}

// Size returns the number of labeled strings.
func (s Suite) Size() int {
	return len(s.InLanguage) + len(s.NotInLanguage)
}

// Predicate adapts a membership engine to the harness. Returning an
// error aborts the whole run; it marks a contract violation, not a
// negative verdict.
type Predicate func(input string) (bool, error)

// Mismatch is one disagreement between a label and the engine's verdict.
type Mismatch struct {
	Input      string
	WantMember bool
	GotMember  bool
}

// Report is the accumulated outcome of one run.
type Report struct {
	Checked    int
	Mismatches []Mismatch
}

// OK reports whether every verdict agreed with its label.
func (r Report) OK() bool {
	return len(r.Mismatches) == 0
}

// Run checks every labeled string in s against p. Mismatches accumulate
// so a caller sees the full discrepancy picture in one run; only an
// invalid suite or a predicate error aborts.
func Run(p Predicate, s Suite) (Report, error) {
	if err := s.Validate(); err != nil {
		return Report{}, err
	}

	var r Report
	check := func(input string, want bool) error {
		got, err := p(input)
		if err != nil {
			return fmt.Errorf("checking %q: %w", input, err)
		}
		r.Checked++
		if got != want {
			r.Mismatches = append(r.Mismatches, Mismatch{Input: input, WantMember: want, GotMember: got})
		}
		return nil
	}

	for _, input := range s.InLanguage {
		if err := check(input, true); err != nil {
			return Report{}, err
		}
	}
	for _, input := range s.NotInLanguage {
		if err := check(input, false); err != nil {
			return Report{}, err
		}
	}
	return r, nil
}

// Log writes the report to logger, one entry per mismatch and a summary
// line at the end.
func (r Report) Log(logger *slog.Logger) {
	for _, m := range r.Mismatches {
		logger.Error("self-test mismatch",
			"input", m.Input,
			"want_member", m.WantMember,
			"got_member", m.GotMember,
		)
	}
	if r.OK() {
		logger.Info("self-test passed", "checked", r.Checked)
		return
	}
	logger.Error("self-test failed", "checked", r.Checked, "mismatches", len(r.Mismatches))
}
