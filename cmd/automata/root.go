package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Automata is a workbench for classical formal language systems",
	Long: `Automata loads context-free grammar, pushdown automaton and Turing
machine descriptions from plain text files and answers membership
queries against them.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the system descriptions")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log verbosity: debug, info, warn or error")
}
