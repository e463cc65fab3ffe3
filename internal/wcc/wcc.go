// Package wcc fuses per-line coverage with per-space complexity and
// computes weighted code coverage scores.
//
// For every code space and file it derives, per complexity kind
// (cyclomatic and cognitive), three composite scores:
//
//   - Wcc: percentage of lines that are both covered and inside a
//     space of tolerable complexity. Maximize.
//   - CRAP: comp^2 * (1 - cov)^3 + comp. Minimize.
//   - Skunk: (comp / 0.60) * (1 - cov) + comp. Minimize.
//
// File scores roll up into project totals and min/max/average
// statistics, and every entity is classified complex or not against a
// derived threshold set.
package wcc

import (
	"errors"
	"fmt"

	"github.com/unbound-force/wcov/internal/complexity"
)

// Per-file conditions that degrade a file to the ignored set instead
// of aborting the run.
var (
	// ErrNoCoverage marks a file with no entry in the coverage table.
	ErrNoCoverage = errors.New("no coverage entry for file")

	// ErrNoSpaces marks a file with no usable code spaces.
	ErrNoSpaces = errors.New("no code spaces for file")
)

// ErrNoAnalyzableFiles is the terminal state of a run in which every
// file was ignored. The run completes and reports a failed analysis
// rather than all-zero metrics.
var ErrNoAnalyzableFiles = errors.New("analysis failed: every file was ignored")

// Kind selects one of the two complexity metrics.
type Kind string

// Complexity kinds.
const (
	Cyclomatic Kind = "cyclomatic"
	Cognitive  Kind = "cognitive"
)

// Mode selects the granularity of the external-facing result set.
// Metrics are always computed at both levels; files mode merely omits
// per-space rows at report time.
type Mode string

// Analysis modes.
const (
	ModeFiles     Mode = "files"
	ModeFunctions Mode = "functions"
)

// ParseMode converts a string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFiles, ModeFunctions:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%q is not a supported mode (files, functions)", s)
	}
}

// SortKey selects the metric the output list is ordered by.
type SortKey string

// Sort keys. All orders are worst-first: ascending for wcc,
// descending for crap and skunk.
const (
	SortWcc   SortKey = "wcc"
	SortCrap  SortKey = "crap"
	SortSkunk SortKey = "skunk"
)

// ParseSortKey converts a string into a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortWcc, SortCrap, SortSkunk:
		return SortKey(s), nil
	default:
		return "", fmt.Errorf("%q is not a supported sort metric (wcc, crap, skunk)", s)
	}
}

// FusedSpace is a code space joined with the coverage of its line
// range.
type FusedSpace struct {
	complexity.CodeSpace

	// CoveredLines is the number of lines in the range with at least
	// one hit. Never exceeds TotalLines.
	CoveredLines int

	// TotalLines is the physical size of the range:
	// EndLine - StartLine + 1.
	TotalLines int
}

// complexityFor returns the space's complexity for the given kind.
func (f FusedSpace) complexityFor(kind Kind) float64 {
	if kind == Cognitive {
		return float64(f.Cognitive)
	}
	return float64(f.Cyclomatic)
}

// Metrics holds the composite scores for one complexity kind.
type Metrics struct {
	Complexity float64 `json:"complexity"`
	Wcc        float64 `json:"wcc"`
	Crap       float64 `json:"crap"`
	Skunk      float64 `json:"skunk"`
	IsComplex  bool    `json:"isComplex"`
}

// MetricsPair bundles both complexity kinds with the line coverage
// they share.
type MetricsPair struct {
	Coverage   float64 `json:"coverage"`
	Cyclomatic Metrics `json:"cyclomatic"`
	Cognitive  Metrics `json:"cognitive"`
}

// forKind returns the bundle's metrics for the given kind.
func (p MetricsPair) forKind(kind Kind) Metrics {
	if kind == Cognitive {
		return p.Cognitive
	}
	return p.Cyclomatic
}

// SpaceMetrics is the scored result for one code space.
type SpaceMetrics struct {
	Name      string          `json:"name"`
	Kind      complexity.Kind `json:"kind"`
	StartLine int             `json:"startLine"`
	EndLine   int             `json:"endLine"`
	Metrics   MetricsPair     `json:"metrics"`
}

// FileMetrics is the scored result for one file. Spaces is always
// populated; the report layer drops it in files mode.
type FileMetrics struct {
	Path    string         `json:"path"`
	Metrics MetricsPair    `json:"metrics"`
	Spaces  []SpaceMetrics `json:"spaces,omitempty"`
}

// ProjectMetrics is the project-level rollup. When Failed is set the
// other fields are zero and must not be rendered as real metrics.
type ProjectMetrics struct {
	Failed  bool        `json:"failed"`
	Total   MetricsPair `json:"total"`
	Min     MetricsPair `json:"min"`
	Max     MetricsPair `json:"max"`
	Average MetricsPair `json:"average"`
}

// Output is the complete result of a run, handed to the report
// builder.
type Output struct {
	Files   []FileMetrics
	Project ProjectMetrics
	Ignored []string
}
