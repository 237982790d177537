package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersincine/automata"
	mcpAdapter "github.com/ersincine/automata/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the workbench as an MCP server over Standard Input/Output.
This allows AI agents (like Claude Desktop) to query the loaded systems
as tools.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		levelText, _ := cmd.Flags().GetString("log-level")

		logger, err := createLogger(levelText)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		w, err := automata.Open(dir, automata.WithLogger(logger))
		if err != nil {
			log.Fatalf("Error initializing workbench: %v", err)
		}

		srv := mcpAdapter.NewServer(w)

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)
		logger.Info("Starting Automata MCP Server (Stdio)...")
		if err := srv.ServeStdio(); err != nil {
			logger.Error("MCP Server execution failed", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
