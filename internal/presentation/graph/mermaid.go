package graph

import (
	"fmt"
	"strings"

	"github.com/ersincine/automata/pkg/npda"
	"github.com/ersincine/automata/pkg/tm"
)

// Overlay contains dynamic state data to visualize on the graph,
// usually the states along an accepting trace.
type Overlay struct {
	Visited []string
	Final   string
}

// PushdownMermaid produces a Mermaid flowchart from a pushdown automaton.
// It applies semantic styling:
// - Accept state: (((Double Circle)))
// - Other states: ((Circle))
// - Edge labels: "input,pop/push" with 'e' for the empty symbol
// It also applies overlay styles (Visited/Final) if provided.
func PushdownMermaid(a *npda.Automaton, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	sb.WriteString(fmt.Sprintf("    _start((\" \")) --> %s\n", sanitizeMermaidID(a.Start())))

	for _, state := range a.States() {
		safeID := sanitizeMermaidID(state)

		// State Shape
		opener, closer := "((", "))"
		if a.IsAccept(state) {
			opener, closer = "(((", ")))" // Double circle
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, state, closer))

		// Transitions
		for _, t := range a.Transitions() {
			if t.From != state {
				continue
			}
			label := fmt.Sprintf("%c,%c/%c", t.Input, t.Pop, t.Push)
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", safeID, label, sanitizeMermaidID(t.To)))
		}
	}

	writeStyles(&sb, overlay)
	return sb.String()
}

// MachineMermaid produces a Mermaid flowchart from a Turing machine.
// Edge labels read "read/write,move"; the accept state renders as a
// double circle.
func MachineMermaid(m *tm.Machine, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	sb.WriteString(fmt.Sprintf("    _start((\" \")) --> %s\n", sanitizeMermaidID(m.Start())))

	for _, state := range m.States() {
		safeID := sanitizeMermaidID(state)

		opener, closer := "((", "))"
		if state == tm.AcceptState {
			opener, closer = "(((", ")))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, state, closer))

		for _, t := range m.Transitions() {
			if t.From != state {
				continue
			}
			label := fmt.Sprintf("%c/%c,%s", t.Read, t.Write, t.Move)
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", safeID, label, sanitizeMermaidID(t.To)))
		}
	}

	writeStyles(&sb, overlay)
	return sb.String()
}

func writeStyles(sb *strings.Builder, overlay *Overlay) {
	// Shrink the entry marker to a dot
	sb.WriteString("\n    classDef entry fill:#000,stroke:#000;\n")
	sb.WriteString("    class _start entry;\n")

	if overlay == nil {
		return
	}
	sb.WriteString("\n    %% Overlay Styles\n")
	// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
	sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef final fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

	// Deduplicate visited states (using safeIDs)
	visitedSet := make(map[string]bool)
	for _, id := range overlay.Visited {
		safeID := sanitizeMermaidID(id)
		if !visitedSet[safeID] && safeID != "" {
			visitedSet[safeID] = true
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
		}
	}

	if overlay.Final != "" {
		safeFinal := sanitizeMermaidID(overlay.Final)
		sb.WriteString(fmt.Sprintf("    class %s final;\n", safeFinal))
	}
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
