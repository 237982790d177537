package tui

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsInteractive reports whether stdout is attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Verdict formats a membership answer for terminal output.
func Verdict(member bool) string {
	p := termenv.ColorProfile()
	if member {
		return termenv.String("accept").Foreground(p.Color("#4ade80")).Bold().String()
	}
	return termenv.String("reject").Foreground(p.Color("#f87171")).Bold().String()
}

// Status formats a self-test outcome for terminal output.
func Status(ok bool) string {
	p := termenv.ColorProfile()
	if ok {
		return termenv.String("PASS").Foreground(p.Color("#4ade80")).Bold().String()
	}
	return termenv.String("FAIL").Foreground(p.Color("#f87171")).Bold().String()
}
