// Package npda models nondeterministic pushdown automata and decides
// membership by exhaustive search over instantaneous configurations,
// accepting by final state.
//
// A transition consumes at most one input symbol, pops at most one stack
// symbol, and pushes at most one stack symbol; the letter 'e' in any of
// those positions means "none". States and alphabets are not declared up
// front, they are inferred from the transitions plus the declared start
// and accept states.
package npda

import (
	"fmt"
	"sort"

	"github.com/ersincine/automata/pkg/symbol"
)

// Transition is a single move: in state From, on input symbol Input
// (or epsilon), with Pop on top of the stack (or epsilon), replace the
// top with Push (or nothing) and enter To.
type Transition struct {
	From  string
	Input byte
	Pop   byte
	Push  byte
	To    string
}

func (t Transition) String() string {
	return fmt.Sprintf("%s:%c,%c>%c:%s", t.From, t.Input, t.Pop, t.Push, t.To)
}

// Automaton is an immutable nondeterministic pushdown automaton.
type Automaton struct {
	start       string
	accept      map[string]struct{}
	states      map[string]struct{}
	inputSyms   map[byte]struct{}
	stackSyms   map[byte]struct{}
	transitions []Transition
	byState     map[string][]Transition
}

// New builds an automaton from a start state, a transition list, and the
// accept states. Duplicate transitions collapse into their first
// occurrence. Symbols must be terminals or the empty symbol; state names
// must be non-empty.
func New(start string, transitions []Transition, accept []string) (*Automaton, error) {
	if start == "" {
		return nil, fmt.Errorf("start state name is empty")
	}

	a := &Automaton{
		start:     start,
		accept:    make(map[string]struct{}, len(accept)),
		states:    map[string]struct{}{start: {}},
		inputSyms: make(map[byte]struct{}),
		stackSyms: make(map[byte]struct{}),
		byState:   make(map[string][]Transition),
	}

	for _, state := range accept {
		if state == "" {
			return nil, fmt.Errorf("accept state name is empty")
		}
		a.accept[state] = struct{}{}
		a.states[state] = struct{}{}
	}

	seen := make(map[Transition]struct{}, len(transitions))
	for _, t := range transitions {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}

		if t.From == "" || t.To == "" {
			return nil, fmt.Errorf("transition %s: state name is empty", t)
		}
		for _, c := range []byte{t.Input, t.Pop, t.Push} {
			if !symbol.IsEpsilon(c) && !symbol.IsTerminal(c) {
				return nil, fmt.Errorf("transition %s: symbol %q must be a terminal or %q", t, string(c), string(symbol.Epsilon))
			}
		}

		a.states[t.From] = struct{}{}
		a.states[t.To] = struct{}{}
		if !symbol.IsEpsilon(t.Input) {
			a.inputSyms[t.Input] = struct{}{}
		}
		if !symbol.IsEpsilon(t.Pop) {
			a.stackSyms[t.Pop] = struct{}{}
		}
		if !symbol.IsEpsilon(t.Push) {
			a.stackSyms[t.Push] = struct{}{}
		}

		a.transitions = append(a.transitions, t)
		a.byState[t.From] = append(a.byState[t.From], t)
	}

	return a, nil
}

// Start returns the start state.
func (a *Automaton) Start() string { return a.start }

// States returns every state in sorted order.
func (a *Automaton) States() []string { return sortedStates(a.states) }

// AcceptStates returns the accept states in sorted order.
func (a *Automaton) AcceptStates() []string { return sortedStates(a.accept) }

// IsAccept reports whether state is an accept state.
func (a *Automaton) IsAccept(state string) bool {
	_, ok := a.accept[state]
	return ok
}

// InputAlphabet returns the inferred input symbols in sorted order.
func (a *Automaton) InputAlphabet() []byte { return sortedSymbols(a.inputSyms) }

// StackAlphabet returns the inferred stack symbols in sorted order.
func (a *Automaton) StackAlphabet() []byte { return sortedSymbols(a.stackSyms) }

// Transitions returns every transition in declaration order.
func (a *Automaton) Transitions() []Transition {
	out := make([]Transition, len(a.transitions))
	copy(out, a.transitions)
	return out
}

func sortedStates(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
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
