package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ersincine/automata"
)

// Starter systems: the grammar and the pushdown automaton describe the
// balanced-01 language, the machine decides { w#w | w over {0,1} }.
const (
	starterGrammar = `# Balanced strings of 0s and 1s.
S > 0S1S | e
`

	starterPushdown = `# Balanced strings of 0s and 1s, accepting by final state.
q0:e,e>z:q1
q1:0,e>x:q1
q1:1,x>e:q1
q1:e,z>e:q2
q2
`

	starterMachine = `# Decides { w#w | w over {0,1} }.
q1:0>x,r:q2
q1:1>x,r:q3
q1:#>r:q8
q2:0,1>r:q2
q2:#>r:q4
q3:0,1>r:q3
q3:#>r:q5
q4:x>r:q4
q4:0>x,l:q6
q5:x>r:q5
q5:1>x,l:q6
q6:x>l:q6
q6:#>l:q7
q7:0,1>l:q7
q7:x>r:q1
q8:x>r:q8
q8:.>r:accept
`

	starterSuite = `cfg:
  in_language: ["", "01", "001011"]
  not_in_language: ["0110", "10", "0", "1"]
npda:
  in_language: ["", "01", "001011"]
  not_in_language: ["0110", "10", "0", "1"]
tm:
  in_language: ["#", "11#11", "101#101", "000100#000100"]
  not_in_language: ["1", "01", "1#0", "01#11", "0000#1111"]
`
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold a starter system directory",
	Long: `Writes working example descriptions (a grammar, a pushdown automaton, a
Turing machine and their labeled examples) into the given directory, so
every query command has something to answer against.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target := "."
		if len(args) > 0 {
			target = args[0]
		}

		if err := os.MkdirAll(target, 0755); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Generating starter systems in: %s\n", target)

		files := []struct {
			name    string
			content string
		}{
			{automata.GrammarFile, starterGrammar},
			{automata.PushdownFile, starterPushdown},
			{automata.MachineFile, starterMachine},
			{automata.SuiteFile, starterSuite},
		}
		for _, f := range files {
			path := filepath.Join(target, f.name)
			if _, err := os.Stat(path); err == nil {
				fmt.Printf("  %s exists, skipping\n", f.name)
				continue
			}
			if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
				fmt.Printf("Error writing %s: %v\n", f.name, err)
				os.Exit(1)
			}
			fmt.Printf("  %s\n", f.name)
		}

		printSystemMessage("Run 'automata check --dir %s' to see the systems pass their examples.", target)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
