// Package tm simulates deterministic single-tape Turing machines.
//
// A machine halts and accepts on entering the distinguished state named
// "accept". There is no stored reject state: a (state, read symbol) pair
// with no matching transition halts and rejects implicitly. The tape is
// infinite to the right, reads the blank symbol '.' beyond its written
// extent, and the head is clamped at cell 0 on the left.
package tm

import (
	"fmt"
	"sort"
)

// Blank is the tape symbol present on every unwritten cell.
const Blank byte = '.'

// AcceptState is the distinguished accepting state name.
const AcceptState = "accept"

// Move is a head direction.
type Move int8

const (
	Left  Move = -1
	Right Move = 1
)

func (m Move) String() string {
	switch m {
	case Left:
		return "l"
	case Right:
		return "r"
	}
	return fmt.Sprintf("Move(%d)", int8(m))
}

// Transition is a single step rule: in state From reading Read, write
// Write, move the head one cell in direction Move, and enter To.
type Transition struct {
	From  string
	Read  byte
	Write byte
	Move  Move
	To    string
}

func (t Transition) String() string {
	return fmt.Sprintf("%s:%c>%c,%s:%s", t.From, t.Read, t.Write, t.Move, t.To)
}

type stepKey struct {
	state string
	read  byte
}

// Machine is an immutable deterministic Turing machine. States and the
// tape alphabet are inferred from the transitions.
type Machine struct {
	start       string
	states      map[string]struct{}
	alphabet    map[byte]struct{}
	transitions []Transition
	step        map[stepKey]Transition
}

// New builds a machine from a start state and a transition list.
// Byte-identical transitions collapse into their first occurrence.
// Construction fails when the blank symbol is missing from the inferred
// tape alphabet, the start or accept state appears in no transition, a
// direction is neither Left nor Right, or two distinct transitions share
// a source state and read symbol (the machine must be deterministic).
func New(start string, transitions []Transition) (*Machine, error) {
	m := &Machine{
		start:    start,
		states:   make(map[string]struct{}),
		alphabet: make(map[byte]struct{}),
		step:     make(map[stepKey]Transition, len(transitions)),
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
		if t.Move != Left && t.Move != Right {
			return nil, fmt.Errorf("transition %s:%c>%c:%s: direction must be 'l' or 'r'", t.From, t.Read, t.Write, t.To)
		}

		key := stepKey{state: t.From, read: t.Read}
		if prev, ok := m.step[key]; ok {
			return nil, fmt.Errorf("machine is not deterministic: %s and %s share a source state and read symbol", prev, t)
		}
		m.step[key] = t

		m.states[t.From] = struct{}{}
		m.states[t.To] = struct{}{}
		m.alphabet[t.Read] = struct{}{}
		m.alphabet[t.Write] = struct{}{}
		m.transitions = append(m.transitions, t)
	}

	if len(m.transitions) == 0 {
		return nil, fmt.Errorf("machine has no transitions")
	}
	if _, ok := m.alphabet[Blank]; !ok {
		return nil, fmt.Errorf("tape alphabet must contain the blank symbol %q", string(Blank))
	}
	if _, ok := m.states[start]; !ok {
		return nil, fmt.Errorf("start state %q appears in no transition", start)
	}
	if _, ok := m.states[AcceptState]; !ok {
		return nil, fmt.Errorf("accept state %q appears in no transition", AcceptState)
	}

	return m, nil
}

// Start returns the start state.
func (m *Machine) Start() string { return m.start }

// States returns every state in sorted order. The implicit reject state
// is not among them.
func (m *Machine) States() []string {
	out := make([]string, 0, len(m.states))
	for s := range m.states {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// TapeAlphabet returns the inferred tape symbols in sorted order.
func (m *Machine) TapeAlphabet() []byte {
	out := make([]byte, 0, len(m.alphabet))
	for c := range m.alphabet {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Transitions returns every transition in declaration order.
func (m *Machine) Transitions() []Transition {
	out := make([]Transition, len(m.transitions))
	copy(out, m.transitions)
	return out
}
