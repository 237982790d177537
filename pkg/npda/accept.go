package npda

import (
	"fmt"
	"strings"

	"github.com/ersincine/automata/pkg/symbol"
)

// Configuration is an instantaneous snapshot of a running automaton:
// the current state, the unconsumed input, and the stack contents with
// the top at the end. Configurations exist only during a search.
type Configuration struct {
	State     string
	Remaining string
	Stack     string
}

func (c Configuration) String() string {
	return fmt.Sprintf("(%s, %q, %q)", c.State, c.Remaining, c.Stack)
}

// InputError reports a membership query whose input breaks the alphabet
// contract. It marks a programmer error, not a rejection.
type InputError struct {
	Input  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%q: %s", e.Input, e.Reason)
}

// Accepts reports whether some sequence of transitions consumes all of
// input and ends in an accept state. The stack contents at that point
// are irrelevant.
//
// The search is exhaustive with no visited-configuration set and no
// depth bound: an automaton holding an epsilon-only cycle that never
// consumes input and never reaches an accept state will recurse without
// end. Callers needing bounded time must wrap the call in their own
// timeout.
func (a *Automaton) Accepts(input string) (bool, error) {
	if err := a.checkInput(input); err != nil {
		return false, err
	}
	_, ok := a.search(a.start, input, "")
	return ok, nil
}

// Trace is Accepts returning the first accepting configuration path,
// from the initial configuration through the accepting one. Transitions
// are tried in declaration order, so the path is reproducible. A
// rejected input yields a nil path.
func (a *Automaton) Trace(input string) ([]Configuration, bool, error) {
	if err := a.checkInput(input); err != nil {
		return nil, false, err
	}
	path, ok := a.search(a.start, input, "")
	if !ok {
		return nil, false, nil
	}
	return path, true, nil
}

func (a *Automaton) checkInput(input string) error {
	if strings.IndexByte(input, symbol.Epsilon) >= 0 {
		return &InputError{Input: input, Reason: fmt.Sprintf("input must not contain the empty symbol %q", string(symbol.Epsilon))}
	}
	return nil
}

// search explores every applicable transition from the given
// configuration and returns the first accepting path found.
func (a *Automaton) search(state, remaining, stack string) ([]Configuration, bool) {
	cur := Configuration{State: state, Remaining: remaining, Stack: stack}

	if _, ok := a.accept[state]; ok && remaining == "" {
		return []Configuration{cur}, true
	}

	for _, t := range a.byState[state] {
		if !symbol.IsEpsilon(t.Input) && (remaining == "" || remaining[0] != t.Input) {
			continue
		}
		if !symbol.IsEpsilon(t.Pop) && (stack == "" || stack[len(stack)-1] != t.Pop) {
			continue
		}

		// Pop then push, consume only a non-epsilon input symbol.
		nextStack := stack
		if !symbol.IsEpsilon(t.Pop) {
			nextStack = nextStack[:len(nextStack)-1]
		}
		if !symbol.IsEpsilon(t.Push) {
			nextStack += string(t.Push)
		}
		nextRemaining := remaining
		if !symbol.IsEpsilon(t.Input) {
			nextRemaining = remaining[1:]
		}

		if path, ok := a.search(t.To, nextRemaining, nextStack); ok {
			return append([]Configuration{cur}, path...), true
		}
	}

	return nil, false
}
