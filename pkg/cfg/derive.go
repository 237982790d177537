package cfg

import (
	"fmt"
	"strings"

	"github.com/ersincine/automata/pkg/symbol"
)

// DefaultVariableLimit bounds how many variable occurrences an
// intermediate string may hold before a search branch is abandoned.
const DefaultVariableLimit = 64

// DeriveOption configures a single derivation search.
type DeriveOption func(*deriveConfig)

type deriveConfig struct {
	variableLimit int
}

// WithVariableLimit overrides DefaultVariableLimit for one search.
// Raising the limit trades time for completeness on grammars whose
// derivations pass through variable-heavy intermediate strings.
func WithVariableLimit(n int) DeriveOption {
	return func(c *deriveConfig) { c.variableLimit = n }
}

// TargetError reports a Derive or Generate argument that breaks the query
// contract. It marks a programmer error, not a negative search result.
type TargetError struct {
	Target string
	Reason string
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("%q: %s", e.Target, e.Reason)
}

// Generate searches for a leftmost derivation of target from the start
// variable. An empty result with a nil error means no derivation was
// found within the variable limit.
func (g *Grammar) Generate(target string, opts ...DeriveOption) ([]string, error) {
	return g.Derive(string(g.start), target, opts...)
}

// Derive searches depth first for a leftmost derivation of target
// starting from the sentential form from. Every derivation has an
// equivalent leftmost derivation, so restricting the search to leftmost
// rewrites loses no strings of the language; only completeness is traded
// away by the variable limit.
//
// A non-empty result starts at from, ends at target, and each
// consecutive pair differs by one leftmost-variable rewrite. An empty
// result with a nil error means no derivation exists within the limit.
// The target must consist of terminals; the origin may additionally
// contain variables. Neither may contain the empty symbol.
func (g *Grammar) Derive(from, target string, opts ...DeriveOption) ([]string, error) {
	cfg := deriveConfig{variableLimit: DefaultVariableLimit}
	for _, opt := range opts {
		opt(&cfg)
	}

	for i := 0; i < len(from); i++ {
		if c := from[i]; !symbol.IsVariable(c) && !symbol.IsTerminal(c) {
			return nil, &TargetError{Target: from, Reason: "origin may contain variables and terminals only"}
		}
	}
	for i := 0; i < len(target); i++ {
		if !symbol.IsTerminal(target[i]) {
			return nil, &TargetError{Target: target, Reason: "target must contain terminals only"}
		}
	}

	s := &search{
		grammar: g,
		target:  target,
		limit:   cfg.variableLimit,
		visited: make(map[string]struct{}),
	}
	return s.explore(from, nil), nil
}

type search struct {
	grammar *Grammar
	target  string
	limit   int
	visited map[string]struct{}
}

// explore returns the derivation trail from current to the target, or nil
// when the subtree is fruitless. The visited set is shared across the
// entire search tree, never copied per branch: a string proven fruitless
// once, or pending on the active path, is not tried again.
func (s *search) explore(current string, trail []string) []string {
	current = symbol.StripEpsilon(current)

	if _, ok := s.visited[current]; ok {
		return nil
	}
	s.visited[current] = struct{}{}

	if symbol.CountVariables(current) > s.limit {
		return nil
	}

	// Rewrites only add or keep terminals; a surplus can never be
	// derived away.
	if symbol.CountTerminals(current) > len(s.target) {
		return nil
	}

	v, ok := leftmostVariable(current)
	if !ok {
		if current == s.target {
			return append(append([]string{}, trail...), current)
		}
		return nil
	}

	trail = append(trail, current)
	for _, r := range s.grammar.rulesFor[v] {
		if d := s.explore(rewriteLeftmost(current, v, r.RHS), trail); d != nil {
			return d
		}
	}
	return nil
}

func leftmostVariable(s string) (byte, bool) {
	for i := 0; i < len(s); i++ {
		if symbol.IsVariable(s[i]) {
			return s[i], true
		}
	}
	return 0, false
}

// rewriteLeftmost substitutes rhs for the first occurrence of v, which
// for the leftmost variable is its leftmost occurrence.
func rewriteLeftmost(s string, v byte, rhs string) string {
	i := strings.IndexByte(s, v)
	return s[:i] + rhs + s[i+1:]
}
