package report

import (
	"fmt"
	"html/template"
	"io"
)

// WriteHTML writes the report as a single self-contained HTML page:
// embedded CSS, no external assets, safe to attach to CI artifacts.
func WriteHTML(w io.Writer, m Model) error {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"f2": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	}).Parse(htmlPage)
	if err != nil {
		return fmt.Errorf("parsing report template: %w", err)
	}
	if err := tmpl.Execute(w, m); err != nil {
		return fmt.Errorf("rendering HTML report: %w", err)
	}
	return nil
}

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>weighted code coverage: {{.Project}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; color: #1f2430; }
  h1 { font-size: 1.4rem; }
  h2 { font-size: 1.1rem; margin-top: 2rem; }
  table { border-collapse: collapse; margin-top: 0.75rem; }
  th, td { border: 1px solid #c9cdd6; padding: 0.35rem 0.7rem; text-align: right; }
  th { background: #eef0f5; }
  td.path, td.label { text-align: left; font-family: ui-monospace, monospace; }
  tr.complex td { background: #fdeaea; }
  .failed { color: #b00020; font-weight: bold; }
  .muted { color: #6b7280; }
</style>
</head>
<body>
<h1>weighted code coverage: {{.Project}}</h1>
<p class="muted">mode {{.Mode}} &middot; thresholds wcc {{f2 .Thresholds.Wcc}} / crap {{f2 .Thresholds.CrapCyclomatic}} / skunk {{f2 .Thresholds.SkunkCyclomatic}}</p>

{{if .ProjectMetrics.Failed}}
<p class="failed">Analysis failed: no file had both coverage data and code spaces.</p>
{{else}}
<h2>Files</h2>
<table>
<tr><th>File</th><th>Coverage</th><th>Wcc</th><th>CRAP</th><th>Skunk</th></tr>
{{range .Files}}
<tr{{if .Metrics.Cyclomatic.IsComplex}} class="complex"{{end}}>
  <td class="path">{{.Path}}</td>
  <td>{{f2 .Metrics.Coverage}}</td>
  <td>{{f2 .Metrics.Cyclomatic.Wcc}}</td>
  <td>{{f2 .Metrics.Cyclomatic.Crap}}</td>
  <td>{{f2 .Metrics.Cyclomatic.Skunk}}</td>
</tr>
{{if .Spaces}}
{{range .Spaces}}
<tr{{if .Metrics.Cyclomatic.IsComplex}} class="complex"{{end}}>
  <td class="path">&nbsp;&nbsp;{{.Name}} ({{.StartLine}}, {{.EndLine}})</td>
  <td>{{f2 .Metrics.Coverage}}</td>
  <td>{{f2 .Metrics.Cyclomatic.Wcc}}</td>
  <td>{{f2 .Metrics.Cyclomatic.Crap}}</td>
  <td>{{f2 .Metrics.Cyclomatic.Skunk}}</td>
</tr>
{{end}}
{{end}}
{{end}}
</table>

<h2>Project</h2>
<table>
<tr><th></th><th>Coverage</th><th>Wcc</th><th>CRAP</th><th>Skunk</th></tr>
<tr><td class="label">total</td><td>{{f2 .ProjectMetrics.Total.Coverage}}</td><td>{{f2 .ProjectMetrics.Total.Cyclomatic.Wcc}}</td><td>{{f2 .ProjectMetrics.Total.Cyclomatic.Crap}}</td><td>{{f2 .ProjectMetrics.Total.Cyclomatic.Skunk}}</td></tr>
<tr><td class="label">min</td><td>{{f2 .ProjectMetrics.Min.Coverage}}</td><td>{{f2 .ProjectMetrics.Min.Cyclomatic.Wcc}}</td><td>{{f2 .ProjectMetrics.Min.Cyclomatic.Crap}}</td><td>{{f2 .ProjectMetrics.Min.Cyclomatic.Skunk}}</td></tr>
<tr><td class="label">max</td><td>{{f2 .ProjectMetrics.Max.Coverage}}</td><td>{{f2 .ProjectMetrics.Max.Cyclomatic.Wcc}}</td><td>{{f2 .ProjectMetrics.Max.Cyclomatic.Crap}}</td><td>{{f2 .ProjectMetrics.Max.Cyclomatic.Skunk}}</td></tr>
<tr><td class="label">average</td><td>{{f2 .ProjectMetrics.Average.Coverage}}</td><td>{{f2 .ProjectMetrics.Average.Cyclomatic.Wcc}}</td><td>{{f2 .ProjectMetrics.Average.Cyclomatic.Crap}}</td><td>{{f2 .ProjectMetrics.Average.Cyclomatic.Skunk}}</td></tr>
</table>

<p>{{len .Files}} file(s) analyzed &middot; {{len .ComplexFilesCyclomatic}} complex (cyclomatic) &middot; {{len .ComplexFilesCognitive}} complex (cognitive)</p>
{{end}}

{{if .IgnoredFiles}}
<h2>Ignored</h2>
<ul class="muted">
{{range .IgnoredFiles}}<li>{{.}}</li>
{{end}}</ul>
{{end}}
</body>
</html>
`
