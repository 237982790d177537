package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersincine/automata/internal/presentation/tui"
)

const grammarTopic = `# Grammar Files (cfg.txt)

One production group per line, alternatives separated by ` + "`|`" + `:

    # Balanced strings of 0s and 1s.
    S > 0S1S | e

Rules:

- The left side is a single uppercase variable, followed by exactly one ` + "`>`" + `.
- Terminals are digits and lowercase letters except ` + "`e`" + `, which stands
  for the empty string.
- The first line's variable is the start variable.
- Spaces carry no meaning; blank lines and ` + "`#`" + ` comment lines are dropped.

Membership queries search leftmost derivations. Sentential forms holding
more variable occurrences than the configured limit are abandoned, so
heavily branching grammars stay answerable.`

const pushdownTopic = `# Pushdown Automaton Files (npda.txt)

Every line but the last is a transition; the last line is the
comma-separated list of accept states:

    q0:e,e>z:q1
    q1:0,e>x:q1
    q1:1,x>e:q1
    q1:e,z>e:q2
    q2

A transition ` + "`from:input,pop>push:to`" + ` consumes one input symbol, pops one
stack symbol and pushes one stack symbol; ` + "`e`" + ` in any of the three
positions means "none". The first transition's source is the start
state. States and alphabets are inferred, never declared.

The automaton is nondeterministic: a string is in the language when any
sequence of transitions consumes all of it and ends in an accept state.`

const machineTopic = `# Turing Machine Files (tm.txt)

One transition per line:

    q1:0>x,r:q2
    q2:0,1>r:q2

A transition ` + "`from:read>write,move:to`" + ` reads the symbol under the head,
writes a replacement, moves the head one cell left (` + "`l`" + `) or right
(` + "`r`" + `) and changes state. Two shorthands:

- Several read symbols may share one rule: ` + "`q2:0,1>r:q2`" + `.
- Omitting the write symbol writes each read symbol back unchanged.

The tape is right-infinite and starts holding the input; cells beyond it
read as the blank ` + "`.`" + ` and moving left of cell 0 leaves the head on
cell 0. The machine is deterministic, the accept state is literally
named ` + "`accept`" + `, and a missing transition rejects.`

const suiteTopic = `# Suite Files (suite.yaml)

Labeled example strings per system, used by self-tests:

    cfg:
      in_language: ["", "01", "0011"]
      not_in_language: ["10", "0"]
    npda:
      in_language: ["0011"]
      not_in_language: ["1"]
    tm:
      in_language: ["11#11"]
      not_in_language: ["1#0"]

Sections are optional, but a string must not appear under both labels of
one section. ` + "`automata check`" + ` runs every labeled input through its
system and fails when a verdict contradicts its label.`

var docTopics = map[string]string{
	"grammar":  grammarTopic,
	"pushdown": pushdownTopic,
	"machine":  machineTopic,
	"suite":    suiteTopic,
}

// docsCmd represents the docs command
var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Explain the description file formats",
	Long: `Renders reference documentation for the plain text formats the workbench
reads. Without a topic, every page is rendered in sequence.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var pages []string
		if len(args) == 0 {
			names := make([]string, 0, len(docTopics))
			for name := range docTopics {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				pages = append(pages, docTopics[name])
			}
		} else {
			page, ok := docTopics[args[0]]
			if !ok {
				fmt.Printf("Unknown topic %q. Available: grammar, pushdown, machine, suite\n", args[0])
				os.Exit(1)
			}
			pages = append(pages, page)
		}

		render := tui.NewRenderer()
		for _, page := range pages {
			out, err := render(page)
			if err != nil {
				// Fall back to raw markdown
				out = page + "\n"
			}
			fmt.Print(strings.TrimLeft(out, "\n"))
		}
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
