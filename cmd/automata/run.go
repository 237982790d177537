package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersincine/automata/internal/presentation/tui"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <input>",
	Short: "Run the Turing machine on an input",
	Long: `Simulates the loaded Turing machine on the given input and prints the
verdict, the number of steps taken and the final tape contents.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		w, err := loadWorkbench(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		result, err := w.Run(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(tui.Verdict(result.Accepted))
		fmt.Printf("steps: %d\n", result.Steps)
		fmt.Printf("tape:  %s\n", result.Tape)
		if !result.Accepted {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
