package wcc

import (
	"errors"
	"math"
	"testing"

	"github.com/unbound-force/wcov/internal/complexity"
	"github.com/unbound-force/wcov/internal/coverage"
)

func TestFuse_CountsCoveredLinesPerSpace(t *testing.T) {
	table := coverage.Table{
		"src/a.go": coverage.Lines{1, 0, coverage.NotExecutable, 3, 1, 0},
	}
	spaces := []complexity.CodeSpace{
		{Kind: complexity.KindFunction, Name: "f", StartLine: 1, EndLine: 3, Cyclomatic: 2, Cognitive: 1},
		{Kind: complexity.KindFunction, Name: "g", StartLine: 4, EndLine: 6, Cyclomatic: 3, Cognitive: 2},
	}

	fused, summary, err := Fuse("src/a.go", spaces, table)
	if err != nil {
		t.Fatalf("Fuse: %v", err)
	}
	if len(fused) != 2 {
		t.Fatalf("fused = %d spaces, want 2", len(fused))
	}
	// f: line 1 hit, line 2 zero, line 3 non-executable → 1 of 3.
	if fused[0].CoveredLines != 1 || fused[0].TotalLines != 3 {
		t.Errorf("f = %d/%d, want 1/3", fused[0].CoveredLines, fused[0].TotalLines)
	}
	// g: lines 4 and 5 hit, line 6 zero → 2 of 3.
	if fused[1].CoveredLines != 2 || fused[1].TotalLines != 3 {
		t.Errorf("g = %d/%d, want 2/3", fused[1].CoveredLines, fused[1].TotalLines)
	}
	if summary.CoveredLines != 3 || summary.TotalLines != 6 {
		t.Errorf("summary = %d/%d, want 3/6", summary.CoveredLines, summary.TotalLines)
	}
}

func TestFuse_LinesBeyondCoverageRangeAreUnhit(t *testing.T) {
	// The space extends past the recorded coverage; the tail lines
	// count toward PLOC but never as covered.
	table := coverage.Table{"src/b.go": coverage.Lines{1, 1}}
	spaces := []complexity.CodeSpace{
		{Kind: complexity.KindFunction, Name: "f", StartLine: 1, EndLine: 5, Cyclomatic: 1, Cognitive: 0},
	}

	fused, _, err := Fuse("src/b.go", spaces, table)
	if err != nil {
		t.Fatalf("Fuse: %v", err)
	}
	if fused[0].CoveredLines != 2 || fused[0].TotalLines != 5 {
		t.Errorf("got %d/%d, want 2/5", fused[0].CoveredLines, fused[0].TotalLines)
	}
}

func TestFuse_NoCoverageEntry(t *testing.T) {
	spaces := []complexity.CodeSpace{
		{Kind: complexity.KindFunction, Name: "f", StartLine: 1, EndLine: 2, Cyclomatic: 1},
	}
	_, _, err := Fuse("src/missing.go", spaces, coverage.Table{})
	if !errors.Is(err, ErrNoCoverage) {
		t.Errorf("err = %v, want ErrNoCoverage", err)
	}
}

func TestFuse_NoSpaces(t *testing.T) {
	table := coverage.Table{"src/c.go": coverage.Lines{1}}
	_, _, err := Fuse("src/c.go", nil, table)
	if !errors.Is(err, ErrNoSpaces) {
		t.Errorf("err = %v, want ErrNoSpaces", err)
	}
}

func TestFuse_AllDegenerateRanges(t *testing.T) {
	table := coverage.Table{"src/d.go": coverage.Lines{1, 1}}
	spaces := []complexity.CodeSpace{
		{Kind: complexity.KindFunction, Name: "f", StartLine: 9, EndLine: 3, Cyclomatic: 1},
	}
	_, _, err := Fuse("src/d.go", spaces, table)
	if !errors.Is(err, ErrNoSpaces) {
		t.Errorf("err = %v, want ErrNoSpaces", err)
	}
}

func TestFuse_DegenerateRangeDropped(t *testing.T) {
	table := coverage.Table{"src/e.go": coverage.Lines{1, 1, 1}}
	spaces := []complexity.CodeSpace{
		{Kind: complexity.KindFunction, Name: "bad", StartLine: 5, EndLine: 2, Cyclomatic: 1},
		{Kind: complexity.KindFunction, Name: "ok", StartLine: 1, EndLine: 3, Cyclomatic: 1},
	}
	fused, _, err := Fuse("src/e.go", spaces, table)
	if err != nil {
		t.Fatalf("Fuse: %v", err)
	}
	if len(fused) != 1 || fused[0].Name != "ok" {
		t.Errorf("fused = %+v, want only the valid space", fused)
	}
}

func TestFileSummary_Coverage(t *testing.T) {
	s := FileSummary{CoveredLines: 3, TotalLines: 4}
	if math.Abs(s.Coverage()-75.0) > 1e-9 {
		t.Errorf("coverage = %f, want 75", s.Coverage())
	}
	if (FileSummary{}).Coverage() != 0 {
		t.Error("empty summary should report zero coverage")
	}
}
