package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ersincine/automata"
	"github.com/ersincine/automata/internal/logging"
)

// createLogger configures the application logger.
// Logs go to Stderr so Stdout stays clean for answers.
func createLogger(levelText string) (*slog.Logger, error) {
	level, err := logging.ParseLevel(levelText)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// loadWorkbench opens the system directory shared by every query command.
func loadWorkbench(cmd *cobra.Command, opts ...automata.Option) (*automata.Workbench, error) {
	dir, _ := cmd.Flags().GetString("dir")
	levelText, _ := cmd.Flags().GetString("log-level")

	logger, err := createLogger(levelText)
	if err != nil {
		return nil, err
	}

	opts = append([]automata.Option{automata.WithLogger(logger)}, opts...)
	return automata.Open(dir, opts...)
}

// printSystemMessage prints a standardized system message to stdout.
func printSystemMessage(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}
