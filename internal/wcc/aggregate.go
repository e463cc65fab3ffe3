package wcc

import "math"

// FileTotals carries the raw per-file sums project totals are rebuilt
// from. Kept separate from FileMetrics so the rollup can recompute
// scores from aggregate inputs instead of averaging percentages.
type FileTotals struct {
	CoveredLines int
	TotalLines   int

	SpaceCount    int
	CyclomaticSum float64
	CognitiveSum  float64

	// Σ wcc weights and Σ space PLOC across the file's spaces.
	WccWeightCyclomatic float64
	WccWeightCognitive  float64
	Ploc                int
}

// Aggregate rolls per-file results into ProjectMetrics.
//
// Total is recomputed from aggregate inputs: project-wide line
// coverage plus the mean complexity across every code space, run back
// through the score formulas. Min, max and average are pointwise
// statistics over the per-file values; files must arrive in
// path-sorted order so ties keep the first-encountered file.
//
// With no files at all the sentinel failed ProjectMetrics is
// returned.
func Aggregate(files []FileMetrics, totals []FileTotals, thresholds Derived) ProjectMetrics {
	if len(files) == 0 {
		return ProjectMetrics{Failed: true}
	}

	var sum FileTotals
	for _, t := range totals {
		sum.CoveredLines += t.CoveredLines
		sum.TotalLines += t.TotalLines
		sum.SpaceCount += t.SpaceCount
		sum.CyclomaticSum += t.CyclomaticSum
		sum.CognitiveSum += t.CognitiveSum
		sum.WccWeightCyclomatic += t.WccWeightCyclomatic
		sum.WccWeightCognitive += t.WccWeightCognitive
		sum.Ploc += t.Ploc
	}

	totalCoverage := 0.0
	if sum.TotalLines > 0 {
		totalCoverage = float64(sum.CoveredLines) / float64(sum.TotalLines) * 100
	}

	total := MetricsPair{Coverage: totalCoverage}
	for _, kind := range []Kind{Cyclomatic, Cognitive} {
		compSum, weight := sum.CyclomaticSum, sum.WccWeightCyclomatic
		if kind == Cognitive {
			compSum, weight = sum.CognitiveSum, sum.WccWeightCognitive
		}
		meanComp := 0.0
		if sum.SpaceCount > 0 {
			meanComp = compSum / float64(sum.SpaceCount)
		}
		wcc := 0.0
		if sum.Ploc > 0 {
			wcc = weight / float64(sum.Ploc) * 100
		}
		m := scoreOne(kind, meanComp, totalCoverage/100, wcc, thresholds)
		if kind == Cognitive {
			total.Cognitive = m
		} else {
			total.Cyclomatic = m
		}
	}

	return ProjectMetrics{
		Total:   total,
		Min:     pointwise(files, thresholds, math.Min),
		Max:     pointwise(files, thresholds, math.Max),
		Average: average(files, thresholds),
	}
}

// pointwise folds every metric independently across the per-file
// values. math.Min and math.Max keep the accumulator on ties, so the
// first file in the path-sorted input wins.
func pointwise(files []FileMetrics, thresholds Derived, pick func(float64, float64) float64) MetricsPair {
	acc := files[0].Metrics
	for _, f := range files[1:] {
		acc.Coverage = pick(acc.Coverage, f.Metrics.Coverage)
		acc.Cyclomatic = pickMetrics(acc.Cyclomatic, f.Metrics.Cyclomatic, pick)
		acc.Cognitive = pickMetrics(acc.Cognitive, f.Metrics.Cognitive, pick)
	}
	acc.Cyclomatic.IsComplex = thresholds.IsComplex(Cyclomatic, acc.Cyclomatic.Wcc, acc.Cyclomatic.Crap, acc.Cyclomatic.Skunk)
	acc.Cognitive.IsComplex = thresholds.IsComplex(Cognitive, acc.Cognitive.Wcc, acc.Cognitive.Crap, acc.Cognitive.Skunk)
	return acc
}

func pickMetrics(a, b Metrics, pick func(float64, float64) float64) Metrics {
	return Metrics{
		Complexity: pick(a.Complexity, b.Complexity),
		Wcc:        pick(a.Wcc, b.Wcc),
		Crap:       pick(a.Crap, b.Crap),
		Skunk:      pick(a.Skunk, b.Skunk),
	}
}

func average(files []FileMetrics, thresholds Derived) MetricsPair {
	var acc MetricsPair
	for _, f := range files {
		acc.Coverage += f.Metrics.Coverage
		acc.Cyclomatic = addMetrics(acc.Cyclomatic, f.Metrics.Cyclomatic)
		acc.Cognitive = addMetrics(acc.Cognitive, f.Metrics.Cognitive)
	}
	n := float64(len(files))
	acc.Coverage /= n
	acc.Cyclomatic = divMetrics(acc.Cyclomatic, n)
	acc.Cognitive = divMetrics(acc.Cognitive, n)
	acc.Cyclomatic.IsComplex = thresholds.IsComplex(Cyclomatic, acc.Cyclomatic.Wcc, acc.Cyclomatic.Crap, acc.Cyclomatic.Skunk)
	acc.Cognitive.IsComplex = thresholds.IsComplex(Cognitive, acc.Cognitive.Wcc, acc.Cognitive.Crap, acc.Cognitive.Skunk)
	return acc
}

func addMetrics(a, b Metrics) Metrics {
	return Metrics{
		Complexity: a.Complexity + b.Complexity,
		Wcc:        a.Wcc + b.Wcc,
		Crap:       a.Crap + b.Crap,
		Skunk:      a.Skunk + b.Skunk,
	}
}

func divMetrics(m Metrics, n float64) Metrics {
	return Metrics{
		Complexity: m.Complexity / n,
		Wcc:        m.Wcc / n,
		Crap:       m.Crap / n,
		Skunk:      m.Skunk / n,
	}
}
