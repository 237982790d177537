package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersincine/automata"
	"github.com/ersincine/automata/internal/presentation/tui"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check every loaded system against its labeled examples",
	Long: `Runs every labeled input from suite.yaml through its system and reports
verdicts that contradict the labels.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCheck(cmd); err != nil {
			fmt.Printf("Check failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All systems match their examples! ✅")
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command) error {
	w, err := loadWorkbench(cmd)
	if err != nil {
		return err
	}

	mismatched := 0
	for _, kind := range w.Kinds() {
		report, err := w.SelfTest(cmd.Context(), kind)
		if errors.Is(err, automata.ErrNoSuite) {
			fmt.Printf("%-4s  no labeled examples\n", kind)
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}

		fmt.Printf("%-4s  %s  (%d inputs)\n", kind, tui.Status(report.OK()), report.Checked)
		for _, m := range report.Mismatches {
			mismatched++
			fmt.Printf("      %q: labeled member=%t, answered member=%t\n", m.Input, m.WantMember, m.GotMember)
		}
	}

	if mismatched > 0 {
		return fmt.Errorf("%d verdicts contradict their labels", mismatched)
	}
	return nil
}
