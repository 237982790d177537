package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersincine/automata/pkg/cfg"
)

// deriveCmd represents the derive command
var deriveCmd = &cobra.Command{
	Use:   "derive <input>",
	Short: "Search for a leftmost derivation in the grammar",
	Long: `Searches the loaded context-free grammar for a leftmost derivation of the
given string and prints it one sentential form per line. Rewrite loops
are compressed out of the printed derivation unless --full is given.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		w, err := loadWorkbench(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		var opts []cfg.DeriveOption
		if cmd.Flags().Changed("limit") {
			limit, _ := cmd.Flags().GetInt("limit")
			opts = append(opts, cfg.WithVariableLimit(limit))
		}

		derivation, err := w.Derive(cmd.Context(), args[0], opts...)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		if len(derivation) == 0 {
			fmt.Printf("no derivation of %q\n", args[0])
			os.Exit(1)
		}

		steps := cfg.Compress(derivation)
		if full, _ := cmd.Flags().GetBool("full"); full {
			steps = derivation
		}
		for _, step := range steps {
			fmt.Println(step)
		}
	},
}

func init() {
	rootCmd.AddCommand(deriveCmd)

	deriveCmd.Flags().Bool("full", false, "Print the raw derivation without compressing rewrite loops")
	deriveCmd.Flags().Int("limit", 0, "Abandon sentential forms holding more than this many variables")
}
