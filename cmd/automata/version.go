package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersincine/automata"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of automata",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("automata version %s\n", strings.TrimSpace(automata.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
