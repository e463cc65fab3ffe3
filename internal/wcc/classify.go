package wcc

// ComplexFiles returns, in list order, the paths of files classified
// complex for the given kind.
func ComplexFiles(files []FileMetrics, kind Kind) []string {
	var paths []string
	for _, f := range files {
		if f.Metrics.forKind(kind).IsComplex {
			paths = append(paths, f.Path)
		}
	}
	return paths
}

// CountComplex tallies complex and not-complex entries for the given
// kind.
func CountComplex(files []FileMetrics, kind Kind) (complex, notComplex int) {
	for _, f := range files {
		if f.Metrics.forKind(kind).IsComplex {
			complex++
		}
	}
	return complex, len(files) - complex
}
