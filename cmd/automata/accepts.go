package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersincine/automata"
	"github.com/ersincine/automata/internal/presentation/tui"
)

// acceptsCmd represents the accepts command
var acceptsCmd = &cobra.Command{
	Use:   "accepts <kind> <input>",
	Short: "Answer whether a string is in a system's language",
	Long: `Asks the loaded system of the given kind (cfg, npda or tm) whether the
string belongs to its language. Exits 0 on accept and 1 on reject, so
the verdict is usable from shell scripts.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		kind, err := automata.ParseKind(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		w, err := loadWorkbench(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		member, err := w.Accepts(cmd.Context(), kind, args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(tui.Verdict(member))
		if !member {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(acceptsCmd)
}
