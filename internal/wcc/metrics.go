package wcc

import "math"

const (
	// wccComplexityCeiling bounds the complexity a space may have for
	// its covered lines to count toward Wcc. Spaces above it weigh
	// zero: their coverage is not trusted to offset their risk.
	wccComplexityCeiling = 15.0

	// skunkComplexityFactor is Skunk's fixed linear divisor. Not
	// user-configurable: 0.60 keeps fully covered high-complexity
	// code at a sane score where the metric's original factor of 25
	// collapses it to near zero.
	skunkComplexityFactor = 0.60
)

// Crap computes comp^2 * (1 - cov)^3 + comp for a coverage ratio in
// [0,1]. Higher is worse; unbounded above.
func Crap(complexity, coverageRatio float64) float64 {
	return complexity*complexity*math.Pow(1.0-coverageRatio, 3) + complexity
}

// Skunk computes (comp / 0.60) * (1 - cov) + comp for a coverage
// ratio in [0,1]. At full coverage the score equals the complexity.
func Skunk(complexity, coverageRatio float64) float64 {
	return complexity/skunkComplexityFactor*(1.0-coverageRatio) + complexity
}

// wccWeight is a space's contribution to the Wcc numerator: its
// covered lines while its complexity stays at or below the ceiling,
// nothing once it exceeds it.
func wccWeight(complexity float64, coveredLines int) float64 {
	if complexity > wccComplexityCeiling {
		return 0
	}
	return float64(coveredLines)
}

// scoreOne builds the metrics bundle for one complexity kind from
// already-derived inputs.
func scoreOne(kind Kind, comp, coverageRatio, wcc float64, thresholds Derived) Metrics {
	crap := Crap(comp, coverageRatio)
	skunk := Skunk(comp, coverageRatio)
	return Metrics{
		Complexity: comp,
		Wcc:        wcc,
		Crap:       crap,
		Skunk:      skunk,
		IsComplex:  thresholds.IsComplex(kind, wcc, crap, skunk),
	}
}

// ScoreSpace computes the metrics bundle for a single fused space.
// The space's own covered/total ratio serves as both its coverage and
// the Wcc denominator.
func ScoreSpace(fused FusedSpace, thresholds Derived) SpaceMetrics {
	ratio := 0.0
	if fused.TotalLines > 0 {
		ratio = float64(fused.CoveredLines) / float64(fused.TotalLines)
	}

	pair := MetricsPair{Coverage: ratio * 100}
	for _, kind := range []Kind{Cyclomatic, Cognitive} {
		comp := fused.complexityFor(kind)
		wcc := 0.0
		if fused.TotalLines > 0 {
			wcc = wccWeight(comp, fused.CoveredLines) / float64(fused.TotalLines) * 100
		}
		m := scoreOne(kind, comp, ratio, wcc, thresholds)
		if kind == Cognitive {
			pair.Cognitive = m
		} else {
			pair.Cyclomatic = m
		}
	}

	return SpaceMetrics{
		Name:      fused.Name,
		Kind:      fused.Kind,
		StartLine: fused.StartLine,
		EndLine:   fused.EndLine,
		Metrics:   pair,
	}
}

// ScoreFile computes the file-level bundle from its fused spaces and
// whole-file summary, plus the per-space rows.
//
// File CRAP/Skunk inputs are the arithmetic mean of the spaces'
// complexity and the file's overall line coverage. File Wcc is the
// PLOC-weighted ratio over the whole space set, not an average of
// per-space percentages.
func ScoreFile(path string, fused []FusedSpace, summary FileSummary, thresholds Derived) (FileMetrics, FileTotals) {
	fileRatio := summary.Coverage() / 100

	totals := FileTotals{
		CoveredLines: summary.CoveredLines,
		TotalLines:   summary.TotalLines,
		SpaceCount:   len(fused),
	}
	for _, fs := range fused {
		totals.Ploc += fs.TotalLines
		totals.CyclomaticSum += float64(fs.Cyclomatic)
		totals.CognitiveSum += float64(fs.Cognitive)
		totals.WccWeightCyclomatic += wccWeight(float64(fs.Cyclomatic), fs.CoveredLines)
		totals.WccWeightCognitive += wccWeight(float64(fs.Cognitive), fs.CoveredLines)
	}

	pair := MetricsPair{Coverage: summary.Coverage()}
	for _, kind := range []Kind{Cyclomatic, Cognitive} {
		compSum, weight := totals.CyclomaticSum, totals.WccWeightCyclomatic
		if kind == Cognitive {
			compSum, weight = totals.CognitiveSum, totals.WccWeightCognitive
		}
		meanComp := compSum / float64(len(fused))
		wcc := 0.0
		if totals.Ploc > 0 {
			wcc = weight / float64(totals.Ploc) * 100
		}
		m := scoreOne(kind, meanComp, fileRatio, wcc, thresholds)
		if kind == Cognitive {
			pair.Cognitive = m
		} else {
			pair.Cyclomatic = m
		}
	}

	spaces := make([]SpaceMetrics, 0, len(fused))
	for _, fs := range fused {
		spaces = append(spaces, ScoreSpace(fs, thresholds))
	}

	return FileMetrics{Path: path, Metrics: pair, Spaces: spaces}, totals
}
