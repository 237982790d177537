package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersincine/automata"
	"github.com/ersincine/automata/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <kind>",
	Short: "Export a state diagram of an automaton",
	Long: `Outputs a Mermaid diagram of the loaded pushdown automaton or Turing
machine. With --trace, the states along an accepting run of the
pushdown automaton are highlighted.`,
	Args: cobra.ExactArgs(1),
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

		output, err := renderGraph(cmd, w, kind)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(output)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("trace", "", "Highlight the states along an accepting run on this input (npda only)")
}

func renderGraph(cmd *cobra.Command, w *automata.Workbench, kind automata.Kind) (string, error) {
	traceInput, _ := cmd.Flags().GetString("trace")

	switch kind {
	case automata.KindPushdown:
		if w.Pushdown() == nil {
			return "", automata.ErrNotLoaded
		}
		var overlay *graph.Overlay
		if cmd.Flags().Changed("trace") {
			path, ok, err := w.Trace(cmd.Context(), traceInput)
			if err != nil {
				return "", err
			}
			if !ok {
				return "", fmt.Errorf("no accepting run on %q to highlight", traceInput)
			}
			overlay = &graph.Overlay{Final: path[len(path)-1].State}
			for _, c := range path {
				overlay.Visited = append(overlay.Visited, c.State)
			}
		}
		return graph.PushdownMermaid(w.Pushdown(), overlay), nil

	case automata.KindMachine:
		if w.Machine() == nil {
			return "", automata.ErrNotLoaded
		}
		if cmd.Flags().Changed("trace") {
			return "", fmt.Errorf("--trace highlights pushdown runs only")
		}
		return graph.MachineMermaid(w.Machine(), nil), nil
	}

	return "", fmt.Errorf("no diagram for %s systems", kind)
}
