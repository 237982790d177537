// Package symbol defines the character conventions shared by the grammar
// and automaton packages: uppercase letters are grammar variables, lowercase
// letters and digits are terminals, and the single letter 'e' is reserved as
// the empty symbol (epsilon).
package symbol

import "strings"

// Epsilon is the empty symbol. It stands for "nothing" in rule right-hand
// sides and in transition labels, and is excluded from every terminal and
// input alphabet.
const Epsilon byte = 'e'

// IsVariable reports whether c is a grammar variable (an uppercase ASCII
// letter).
func IsVariable(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

// IsTerminal reports whether c is a terminal: a lowercase ASCII letter other
// than Epsilon, or an ASCII digit.
func IsTerminal(c byte) bool {
	if c == Epsilon {
		return false
	}
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

// IsEpsilon reports whether c is the empty symbol.
func IsEpsilon(c byte) bool {
	return c == Epsilon
}

// CountVariables counts variable occurrences in s. Every occurrence counts,
// not distinct variables.
func CountVariables(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if IsVariable(s[i]) {
			n++
		}
	}
	return n
}

// CountTerminals counts terminal occurrences in s.
func CountTerminals(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if IsTerminal(s[i]) {
			n++
		}
	}
	return n
}

// StripEpsilon removes every occurrence of the empty symbol from s.
func StripEpsilon(s string) string {
	if strings.IndexByte(s, Epsilon) < 0 {
		return s
	}
	return strings.ReplaceAll(s, string(Epsilon), "")
}
