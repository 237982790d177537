package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// traceCmd represents the trace command
var traceCmd = &cobra.Command{
	Use:   "trace <input>",
	Short: "Print an accepting run of the pushdown automaton",
	Long: `Searches the loaded pushdown automaton for an accepting run on the given
string and prints the configurations it passes through, one per line as
(state, unread input, stack).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		w, err := loadWorkbench(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		path, ok, err := w.Trace(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if !ok {
			fmt.Printf("no accepting run on %q\n", args[0])
			os.Exit(1)
		}

		for _, c := range path {
			fmt.Println(c)
		}
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
}
