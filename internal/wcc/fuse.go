package wcc

import (
	"fmt"

	"github.com/unbound-force/wcov/internal/complexity"
	"github.com/unbound-force/wcov/internal/coverage"
)

// FileSummary is the whole-file coverage union: one count per
// physical line of the file, independent of code-space boundaries, so
// nested spaces never double-count shared lines.
type FileSummary struct {
	CoveredLines int
	TotalLines   int
}

// Coverage returns the file's line coverage percentage.
func (s FileSummary) Coverage() float64 {
	if s.TotalLines == 0 {
		return 0
	}
	return float64(s.CoveredLines) / float64(s.TotalLines) * 100
}

// Fuse intersects a file's code spaces with its coverage lines.
//
// A file with no coverage entry or no usable code spaces is ignored:
// Fuse returns ErrNoCoverage or ErrNoSpaces wrapped with the path,
// and the caller excludes the file from all aggregates. Lines outside
// the recorded coverage range count as unhit, never as covered.
// Degenerate ranges (end before start) are dropped silently.
func Fuse(path string, spaces []complexity.CodeSpace, table coverage.Table) ([]FusedSpace, FileSummary, error) {
	lines, ok := table[path]
	if !ok {
		return nil, FileSummary{}, fmt.Errorf("%s: %w", path, ErrNoCoverage)
	}
	if len(spaces) == 0 {
		return nil, FileSummary{}, fmt.Errorf("%s: %w", path, ErrNoSpaces)
	}

	fused := make([]FusedSpace, 0, len(spaces))
	for _, space := range spaces {
		if space.EndLine < space.StartLine {
			continue
		}
		covered := 0
		for line := space.StartLine; line <= space.EndLine; line++ {
			if lines.Covered(line) {
				covered++
			}
		}
		fused = append(fused, FusedSpace{
			CodeSpace:    space,
			CoveredLines: covered,
			TotalLines:   space.EndLine - space.StartLine + 1,
		})
	}
	if len(fused) == 0 {
		return nil, FileSummary{}, fmt.Errorf("%s: only degenerate line ranges: %w", path, ErrNoSpaces)
	}

	summary := FileSummary{TotalLines: len(lines)}
	for line := 1; line <= len(lines); line++ {
		if lines.Covered(line) {
			summary.CoveredLines++
		}
	}
	return fused, summary, nil
}
