// Package complexity supplies per-file code spaces: named scopes with
// line ranges and cyclomatic/cognitive complexity numbers.
//
// Spaces come either from an external analyzer's JSON report
// (validated against an embedded schema) or from the built-in Go
// provider, which measures Go sources directly.
package complexity

import (
	"fmt"
	"sort"
)

// Kind classifies a code space.
type Kind string

// Code space kinds. Unit is the whole-file scope.
const (
	KindFunction  Kind = "function"
	KindClass     Kind = "class"
	KindNamespace Kind = "namespace"
	KindUnit      Kind = "unit"
)

func validKind(k Kind) bool {
	switch k {
	case KindFunction, KindClass, KindNamespace, KindUnit:
		return true
	}
	return false
}

// CodeSpace is one measured scope of a source file. Immutable once
// read.
type CodeSpace struct {
	Kind       Kind   `json:"kind"`
	Name       string `json:"name"`
	StartLine  int    `json:"start_line"`
	EndLine    int    `json:"end_line"`
	Cyclomatic int    `json:"cyclomatic"`
	Cognitive  int    `json:"cognitive"`
}

// Label renders the space identity the way reports display it:
// name plus line range.
func (s CodeSpace) Label() string {
	return fmt.Sprintf("%s (%d, %d)", s.Name, s.StartLine, s.EndLine)
}

// Report maps file paths to their ordered code spaces.
type Report map[string][]CodeSpace

// Paths returns the report's file paths in sorted order.
func (r Report) Paths() []string {
	paths := make([]string, 0, len(r))
	for p := range r {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
