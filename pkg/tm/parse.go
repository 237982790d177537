package tm

import (
	"fmt"
	"strings"
)

// Parse builds a machine from cleaned description lines. Each line is a
// transition:
//
//	q1:0>x,r:q2
//
// read as "in q1 reading 0, write x, move right, enter q2". The left
// side of the '>' may list several read symbols sharing one rule
// (q2:0,1>r:q2), and the write symbol may be omitted, in which case each
// read symbol is written back unchanged. The first line's source is the
// start state.
func Parse(lines []string) (*Machine, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("machine description is empty")
	}

	var start string
	var transitions []Transition
	for _, line := range lines {
		parsed, err := parseLine(line)
		if err != nil {
			return nil, err
		}
		if start == "" {
			start = parsed[0].From
		}
		transitions = append(transitions, parsed...)
	}

	return New(start, transitions)
}

func parseLine(line string) ([]Transition, error) {
	if strings.Count(line, ":") != 2 {
		return nil, fmt.Errorf("transition %q: expected exactly two ':'", line)
	}
	if strings.Count(line, ">") != 1 {
		return nil, fmt.Errorf("transition %q: expected exactly one '>'", line)
	}
	if !(strings.Index(line, ":") < strings.Index(line, ">") && strings.Index(line, ">") < strings.LastIndex(line, ":")) {
		return nil, fmt.Errorf("transition %q: '>' must sit between the two ':'", line)
	}

	parts := strings.Split(line, ":")
	from, action, to := parts[0], parts[1], parts[2]

	sides := strings.Split(action, ">")
	reads := strings.Split(sides[0], ",")

	var write byte
	explicitWrite := false
	dir := sides[1]
	if strings.Contains(sides[1], ",") {
		rhs := strings.Split(sides[1], ",")
		if len(rhs) != 2 {
			return nil, fmt.Errorf("transition %q: right side must be write,direction or a bare direction", line)
		}
		if len(rhs[0]) != 1 {
			return nil, fmt.Errorf("transition %q: write symbol must be a single character", line)
		}
		write = rhs[0][0]
		explicitWrite = true
		dir = rhs[1]
	}

	move, err := parseMove(dir)
	if err != nil {
		return nil, fmt.Errorf("transition %q: %w", line, err)
	}

	out := make([]Transition, 0, len(reads))
	for _, read := range reads {
		if len(read) != 1 {
			return nil, fmt.Errorf("transition %q: read symbol must be a single character", line)
		}
		w := read[0]
		if explicitWrite {
			w = write
		}
		out = append(out, Transition{From: from, Read: read[0], Write: w, Move: move, To: to})
	}
	return out, nil
}

func parseMove(s string) (Move, error) {
	switch s {
	case "l":
		return Left, nil
	case "r":
		return Right, nil
	}
	return 0, fmt.Errorf("direction %q must be 'l' or 'r'", s)
}
