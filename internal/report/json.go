// Package report renders analysis output in JSON, styled text and
// self-contained HTML.
package report

import (
	"encoding/json"
	"io"

	"github.com/unbound-force/wcov/internal/wcc"
)

// reportVersion is the schema version stamped into JSON output.
const reportVersion = "1.0.0"

// Model is the top-level report structure shared by every renderer.
type Model struct {
	Version    string      `json:"version"`
	Project    string      `json:"project"`
	Mode       wcc.Mode    `json:"mode"`
	Thresholds wcc.Derived `json:"thresholds"`

	Files          []wcc.FileMetrics  `json:"files"`
	ProjectMetrics wcc.ProjectMetrics `json:"projectMetrics"`

	ComplexFilesCyclomatic []string `json:"complexFilesCyclomatic"`
	ComplexFilesCognitive  []string `json:"complexFilesCognitive"`
	IgnoredFiles           []string `json:"ignoredFiles"`
}

// Build assembles the report model from a finished run. In files mode
// the per-space rows are dropped; metrics are computed at both levels
// regardless, so this only trims the output.
func Build(project string, mode wcc.Mode, thresholds wcc.Derived, out *wcc.Output) Model {
	files := out.Files
	if mode == wcc.ModeFiles {
		files = make([]wcc.FileMetrics, len(out.Files))
		for i, f := range out.Files {
			f.Spaces = nil
			files[i] = f
		}
	}
	if files == nil {
		files = []wcc.FileMetrics{}
	}

	return Model{
		Version:                reportVersion,
		Project:                project,
		Mode:                   mode,
		Thresholds:             thresholds,
		Files:                  files,
		ProjectMetrics:         out.Project,
		ComplexFilesCyclomatic: orEmpty(wcc.ComplexFiles(out.Files, wcc.Cyclomatic)),
		ComplexFilesCognitive:  orEmpty(wcc.ComplexFiles(out.Files, wcc.Cognitive)),
		IgnoredFiles:           orEmpty(out.Ignored),
	}
}

// orEmpty keeps slices rendering as [] instead of null.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// WriteJSON writes the report model as formatted JSON to the writer.
func WriteJSON(w io.Writer, m Model) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}
