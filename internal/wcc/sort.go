package wcc

import "sort"

// SortFiles orders the file list worst-first by the chosen metric of
// the cyclomatic bundle, with the file path as a stable tie-break.
// Wcc sorts ascending (low coverage-quality first); crap and skunk
// sort descending. Sorting never changes any computed value and is
// idempotent.
func SortFiles(files []FileMetrics, key SortKey) {
	sort.SliceStable(files, func(i, j int) bool {
		a, b := files[i], files[j]
		av, bv := sortValue(a.Metrics, key), sortValue(b.Metrics, key)
		if av != bv {
			if key == SortWcc {
				return av < bv
			}
			return av > bv
		}
		return a.Path < b.Path
	})

	for i := range files {
		SortSpaces(files[i].Spaces, key)
	}
}

// SortSpaces applies the same worst-first order to a file's spaces,
// breaking ties by start line.
func SortSpaces(spaces []SpaceMetrics, key SortKey) {
	sort.SliceStable(spaces, func(i, j int) bool {
		a, b := spaces[i], spaces[j]
		av, bv := sortValue(a.Metrics, key), sortValue(b.Metrics, key)
		if av != bv {
			if key == SortWcc {
				return av < bv
			}
			return av > bv
		}
		return a.StartLine < b.StartLine
	})
}

func sortValue(pair MetricsPair, key SortKey) float64 {
	m := pair.forKind(Cyclomatic)
	switch key {
	case SortCrap:
		return m.Crap
	case SortSkunk:
		return m.Skunk
	default:
		return m.Wcc
	}
}
