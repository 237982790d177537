// Package cfg models context-free grammars and searches for leftmost
// derivations of terminal strings.
//
// Variables are single uppercase letters, terminals are lowercase letters
// and digits, and the letter 'e' is reserved for the empty symbol. A
// grammar's variables are exactly the left-hand sides of its rules;
// terminals are inferred from rule right-hand sides.
package cfg

import (
	"fmt"
	"sort"

	"github.com/ersincine/automata/pkg/symbol"
)

// Rule is a single production: LHS may be rewritten to RHS. An empty
// right-hand side is spelled with the empty symbol, never with a
// zero-length string.
type Rule struct {
	LHS byte
	RHS string
}

func (r Rule) String() string {
	return fmt.Sprintf("%c > %s", r.LHS, r.RHS)
}

// Grammar is an immutable context-free grammar. Construct one with New or
// Parse; queries never mutate it.
type Grammar struct {
	start     byte
	variables map[byte]struct{}
	terminals map[byte]struct{}
	rules     []Rule
	rulesFor  map[byte][]Rule
}

// New builds a grammar from a start variable and a rule list. Duplicate
// rules collapse into their first occurrence. Construction fails when the
// start variable has no rules, a right-hand side is empty or contains a
// symbol that is neither a variable, a terminal, nor the empty symbol, or
// a right-hand side mentions a variable that has no rules of its own.
func New(start byte, rules []Rule) (*Grammar, error) {
	g := &Grammar{
		start:     start,
		variables: make(map[byte]struct{}),
		terminals: make(map[byte]struct{}),
		rulesFor:  make(map[byte][]Rule),
	}

	seen := make(map[Rule]struct{}, len(rules))
	for _, r := range rules {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}

		if !symbol.IsVariable(r.LHS) {
			return nil, fmt.Errorf("rule %s: left-hand side must be an uppercase letter", r)
		}
		if r.RHS == "" {
			return nil, fmt.Errorf("rule %c >: right-hand side is empty, spell epsilon as %q", r.LHS, string(symbol.Epsilon))
		}
		g.variables[r.LHS] = struct{}{}
		g.rules = append(g.rules, r)
		g.rulesFor[r.LHS] = append(g.rulesFor[r.LHS], r)
	}

	if len(g.rules) == 0 {
		return nil, fmt.Errorf("grammar has no rules")
	}
	if _, ok := g.variables[start]; !ok {
		return nil, fmt.Errorf("start variable %q has no rules", string(start))
	}

	for _, r := range g.rules {
		for i := 0; i < len(r.RHS); i++ {
			c := r.RHS[i]
			switch {
			case symbol.IsEpsilon(c):
			case symbol.IsVariable(c):
				if _, ok := g.variables[c]; !ok {
					return nil, fmt.Errorf("rule %s: variable %q has no rules of its own", r, string(c))
				}
			case symbol.IsTerminal(c):
				g.terminals[c] = struct{}{}
			default:
				return nil, fmt.Errorf("rule %s: invalid symbol %q", r, string(c))
			}
		}
	}

	return g, nil
}

// Start returns the start variable.
func (g *Grammar) Start() byte { return g.start }

// Variables returns the grammar's variables in sorted order.
func (g *Grammar) Variables() []byte { return sortedSymbols(g.variables) }

// Terminals returns the grammar's terminals in sorted order.
func (g *Grammar) Terminals() []byte { return sortedSymbols(g.terminals) }

// Rules returns every production in declaration order.
func (g *Grammar) Rules() []Rule {
	out := make([]Rule, len(g.rules))
	copy(out, g.rules)
	return out
}

// RulesFor returns the productions whose left-hand side is v, in
// declaration order.
func (g *Grammar) RulesFor(v byte) []Rule {
	out := make([]Rule, len(g.rulesFor[v]))
	copy(out, g.rulesFor[v])
	return out
}

func sortedSymbols(set map[byte]struct{}) []byte {
	out := make([]byte, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
