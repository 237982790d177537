package npda

import (
	"fmt"
	"strings"
)

// Parse builds an automaton from cleaned description lines. Every line
// but the last is a transition:
//
//	q0:0,e>x:q1
//
// read as "in q0, consuming input 0, popping nothing, push x and enter
// q1". The last line is the comma-separated list of accept states, and
// the first transition's source is the start state.
func Parse(lines []string) (*Automaton, error) {
	if len(lines) < 2 {
		return nil, fmt.Errorf("automaton description needs transitions and an accept-state line")
	}

	var start string
	var transitions []Transition
	for _, line := range lines[:len(lines)-1] {
		t, err := parseTransition(line)
		if err != nil {
			return nil, err
		}
		if start == "" {
			start = t.From
		}
		transitions = append(transitions, t)
	}

	last := lines[len(lines)-1]
	if strings.ContainsAny(last, ":>") {
		return nil, fmt.Errorf("last line %q: expected a comma-separated list of accept states", last)
	}
	accept := strings.Split(last, ",")
	for _, state := range accept {
		if state == "" {
			return nil, fmt.Errorf("last line %q: empty accept state name", last)
		}
	}

	return New(start, transitions, accept)
}

func parseTransition(line string) (Transition, error) {
	if strings.Count(line, ":") != 2 {
		return Transition{}, fmt.Errorf("transition %q: expected exactly two ':'", line)
	}
	if strings.Count(line, ">") != 1 {
		return Transition{}, fmt.Errorf("transition %q: expected exactly one '>'", line)
	}
	if !(strings.Index(line, ":") < strings.Index(line, ">") && strings.Index(line, ">") < strings.LastIndex(line, ":")) {
		return Transition{}, fmt.Errorf("transition %q: '>' must sit between the two ':'", line)
	}

	parts := strings.Split(line, ":")
	from, label, to := parts[0], parts[1], parts[2]
	if len(label) != 5 || label[1] != ',' || label[3] != '>' {
		return Transition{}, fmt.Errorf("transition %q: label must have the form input,pop>push", line)
	}

	return Transition{
		From:  from,
		Input: label[0],
		Pop:   label[2],
		Push:  label[4],
		To:    to,
	}, nil
}
