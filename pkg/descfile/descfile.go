// Package descfile reads the plain-text description files the engines are
// built from. Files are line oriented: blank lines and comment lines
// (leading '#') carry no meaning, and space characters are insignificant
// everywhere else.
package descfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Clean normalizes raw description lines: lines that are blank or whose
// first non-whitespace character is '#' are dropped, and all space
// characters are removed from the lines that remain. Line order is
// preserved.
func Clean(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		out = append(out, strings.ReplaceAll(line, " ", ""))
	}
	return out
}

// Read reads description lines from r and returns them cleaned.
func Read(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading description: %w", err)
	}
	return Clean(lines), nil
}

// Load reads the description file at path and returns its cleaned lines.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening description file: %w", err)
	}
	defer f.Close()

	lines, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lines, nil
}
