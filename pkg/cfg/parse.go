package cfg

import (
	"fmt"
	"strings"

	"github.com/ersincine/automata/pkg/symbol"
)

// Parse builds a grammar from cleaned description lines (see package
// descfile). Each line is one production group:
//
//	S>0S1S|e
//
// with a single uppercase variable on the left, exactly one '>', and
// alternatives separated by '|'. The first line's variable becomes the
// start variable.
func Parse(lines []string) (*Grammar, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("grammar description is empty")
	}

	var start byte
	var rules []Rule
	for _, line := range lines {
		if strings.Count(line, ">") != 1 {
			return nil, fmt.Errorf("rule %q: expected exactly one '>'", line)
		}
		if strings.IndexByte(line, '>') != 1 {
			return nil, fmt.Errorf("rule %q: left-hand side must be a single variable", line)
		}
		lhs := line[0]
		if !symbol.IsVariable(lhs) {
			return nil, fmt.Errorf("rule %q: left-hand side must be an uppercase letter", line)
		}
		if start == 0 {
			start = lhs
		}

		rhs := line[2:]
		for i := 0; i < len(rhs); i++ {
			c := rhs[i]
			if c != '|' && !symbol.IsVariable(c) && !symbol.IsTerminal(c) && !symbol.IsEpsilon(c) {
				return nil, fmt.Errorf("rule %q: invalid symbol %q", line, string(c))
			}
		}
		for _, alt := range strings.Split(rhs, "|") {
			if alt == "" {
				return nil, fmt.Errorf("rule %q: empty alternative, spell epsilon as %q", line, string(symbol.Epsilon))
			}
			rules = append(rules, Rule{LHS: lhs, RHS: alt})
		}
	}

	return New(start, rules)
}
