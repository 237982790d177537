/*
Package automata hosts three classical formal-language engines behind a single
directory-driven facade: context-free grammars, nondeterministic pushdown
automata (NPDA) and deterministic Turing machines.

Each engine answers the same question ("is this string in the language?") for a
different rung of the Chomsky hierarchy, and each is loaded from a small
plain-text description file. The facade ("Workbench") adds what the raw engines
deliberately leave out: file loading, structured logging, hooks, self-test
suites and a timeout layer around searches that may otherwise run forever.

# Concept

All three formats share one symbol convention. Uppercase letters are grammar
variables. Lowercase letters (except 'e') and digits are terminals. The letter
'e' always spells the empty string epsilon, '.' is the Turing machine blank,
and states are free-form names such as "q1" or "accept".

The engines are faithful to their textbook definitions:

  - Grammar: exhaustive leftmost-derivation search, bounded by a configurable
    limit on variable occurrences.
  - NPDA: exhaustive search over nondeterministic branches, accepting by final
    state on consumed input. The search is unbounded; hosts supply deadlines.
  - Turing machine: deterministic stepping with an auto-extending tape.
    Rejection is the absence of an applicable transition.

# Description Files

A system directory holds any subset of cfg.txt, npda.txt and tm.txt, plus an
optional suite.yaml of labeled examples. Blank lines and '#' comments are
ignored everywhere, as are spaces.

A grammar line is "S > 0S1S | e": one uppercase variable, '>', and '|'
separated alternatives. The first line names the start variable.

An NPDA line is "q1:1,x>e:q1": source state, then "input,pop>push", then
target state. The final line of the file is a comma-separated list of accept
states. The first transition names the start state.

A Turing machine line is "q2:0,1>r:q2": source state, symbols read, '>', an
optional symbol to write, a direction ('l' or 'r'), and the target state.
Listing several read symbols fans the line out into one transition each. The
accept state is always called "accept". The first transition names the start
state.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/ersincine/automata"
	)

	func main() {
		wb, err := automata.Open("./examples/balanced01")
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		member, err := wb.Accepts(ctx, automata.KindPushdown, "0011")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(member) // true

		derivation, err := wb.Derive(ctx, "0011")
		if err != nil {
			log.Fatal(err)
		}
		for _, step := range derivation {
			fmt.Println(step)
		}
	}

Servers and CLIs built on the workbench live under cmd/automata and
pkg/adapters.
*/
package automata
