// Package coverage normalizes raw coverage reports into a single
// per-file, per-line hit-count table.
//
// Three raw formats are supported: grcov coveralls JSON, grcov covdir
// JSON, and Go cover profiles. All three produce the same Table shape,
// so downstream fusion never branches on the original format.
package coverage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// NotExecutable marks a line that carries no coverage information
// (comments, blank lines, declarations). Coveralls encodes these as
// null, covdir as -1.
const NotExecutable = -1

// Lines holds per-line hit counts for one source file. Index i is
// line i+1. A value of NotExecutable means the line is not
// instrumentable; zero means instrumented but never executed.
type Lines []int

// Hits returns the hit count for a 1-based line number and whether
// the line is executable. Lines outside the recorded range are
// reported as non-executable with zero hits.
func (l Lines) Hits(line int) (int, bool) {
	if line < 1 || line > len(l) {
		return 0, false
	}
	v := l[line-1]
	if v == NotExecutable {
		return 0, false
	}
	return v, true
}

// Covered reports whether the line is executable and was hit at
// least once.
func (l Lines) Covered(line int) bool {
	hits, ok := l.Hits(line)
	return ok && hits > 0
}

// Table maps normalized file paths to their per-line hit counts.
type Table map[string]Lines

// Paths returns the table's file paths in sorted order.
func (t Table) Paths() []string {
	paths := make([]string, 0, len(t))
	for p := range t {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Format identifies a supported raw coverage report format.
type Format string

// Supported raw coverage formats.
const (
	FormatCoveralls Format = "coveralls"
	FormatCovdir    Format = "covdir"
	FormatGoProfile Format = "goprofile"
)

// ParseFormat converts a string into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCoveralls, FormatCovdir, FormatGoProfile:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%q is not a supported coverage format (coveralls, covdir, goprofile)", s)
	}
}

// Load reads and normalizes a raw coverage report. File paths in the
// resulting Table are joined under projectPath with forward slashes.
func Load(format Format, reportPath, projectPath string) (Table, error) {
	switch format {
	case FormatCoveralls:
		data, err := os.ReadFile(reportPath)
		if err != nil {
			return nil, fmt.Errorf("reading coveralls report %q: %w", reportPath, err)
		}
		return ParseCoveralls(data, projectPath)
	case FormatCovdir:
		data, err := os.ReadFile(reportPath)
		if err != nil {
			return nil, fmt.Errorf("reading covdir report %q: %w", reportPath, err)
		}
		return ParseCovdir(data, projectPath)
	case FormatGoProfile:
		return ParseGoProfile(reportPath, projectPath)
	default:
		return nil, fmt.Errorf("%q is not a supported coverage format", format)
	}
}

// joinPath builds a normalized table key from the project path and a
// report-relative file path. Backslashes are flattened so tables built
// on Windows match complexity reports built elsewhere.
func joinPath(projectPath, rel string) string {
	joined := filepath.Join(projectPath, rel)
	return strings.ReplaceAll(filepath.ToSlash(joined), "\\", "/")
}
