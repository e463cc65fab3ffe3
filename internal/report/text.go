package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/wcov/internal/wcc"
)

// WriteText writes the report as human-readable styled text. Output
// uses lipgloss for color and formatting when the output is a TTY;
// degrades gracefully for pipes and CI.
func WriteText(w io.Writer, m Model) error {
	s := DefaultStyles()

	fmt.Fprintln(w, s.Header.Render(fmt.Sprintf("=== weighted code coverage: %s ===", m.Project)))
	fmt.Fprintln(w, s.SubHeader.Render(fmt.Sprintf("    mode %s, thresholds wcc %.0f / crap %.1f / skunk %.1f",
		m.Mode, m.Thresholds.Wcc, m.Thresholds.CrapCyclomatic, m.Thresholds.SkunkCyclomatic)))

	if m.ProjectMetrics.Failed {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.Fail.Render("    FAILED: no file had both coverage data and code spaces"))
		writeIgnored(w, m, s)
		return nil
	}

	fmt.Fprintln(w)
	writeFileTable(w, m, s)

	if m.Mode == wcc.ModeFunctions {
		for _, f := range m.Files {
			if len(f.Spaces) == 0 {
				continue
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, s.SubHeader.Render(fmt.Sprintf("    %s", f.Path)))
			writeSpaceTable(w, f.Spaces, s)
		}
	}

	fmt.Fprintln(w)
	writeSummary(w, m, s)
	writeIgnored(w, m, s)
	return nil
}

func writeFileTable(w io.Writer, m Model, s Styles) {
	complexRows := make([]bool, len(m.Files))
	rows := make([][]string, 0, len(m.Files))
	for i, f := range m.Files {
		cy := f.Metrics.Cyclomatic
		complexRows[i] = cy.IsComplex
		rows = append(rows, []string{
			f.Path,
			fmt.Sprintf("%.2f", f.Metrics.Coverage),
			fmt.Sprintf("%.2f", cy.Wcc),
			fmt.Sprintf("%.2f", cy.Crap),
			fmt.Sprintf("%.2f", cy.Skunk),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			if col > 1 && row >= 0 && row < len(complexRows) {
				return s.ScoreStyle(complexRows[row])
			}
			return s.TableCell
		}).
		Headers("FILE", "COVERAGE", "WCC", "CRAP", "SKUNK").
		Rows(rows...)

	fmt.Fprintln(w, t)
}

func writeSpaceTable(w io.Writer, spaces []wcc.SpaceMetrics, s Styles) {
	complexRows := make([]bool, len(spaces))
	rows := make([][]string, 0, len(spaces))
	for i, sp := range spaces {
		cy := sp.Metrics.Cyclomatic
		complexRows[i] = cy.IsComplex
		rows = append(rows, []string{
			fmt.Sprintf("%s (%d, %d)", sp.Name, sp.StartLine, sp.EndLine),
			string(sp.Kind),
			fmt.Sprintf("%.2f", sp.Metrics.Coverage),
			fmt.Sprintf("%.2f", cy.Wcc),
			fmt.Sprintf("%.2f", cy.Crap),
			fmt.Sprintf("%.2f", cy.Skunk),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			if col > 2 && row >= 0 && row < len(complexRows) {
				return s.ScoreStyle(complexRows[row])
			}
			return s.TableCell
		}).
		Headers("SPACE", "KIND", "COVERAGE", "WCC", "CRAP", "SKUNK").
		Rows(rows...)

	fmt.Fprintln(w, t)
}

func writeSummary(w io.Writer, m Model, s Styles) {
	p := m.ProjectMetrics
	line := func(label string, pair wcc.MetricsPair) {
		cy := pair.Cyclomatic
		fmt.Fprintf(w, "    %s%s\n",
			s.SummaryLabel.Render(label),
			s.SummaryValue.Render(fmt.Sprintf(
				"coverage %6.2f  wcc %6.2f  crap %8.2f  skunk %8.2f",
				pair.Coverage, cy.Wcc, cy.Crap, cy.Skunk)))
	}
	line("total", p.Total)
	line("min", p.Min)
	line("max", p.Max)
	line("average", p.Average)

	fmt.Fprintf(w, "\n    %d file(s) analyzed, %d complex (cyclomatic), %d complex (cognitive)\n",
		len(m.Files), len(m.ComplexFilesCyclomatic), len(m.ComplexFilesCognitive))
}

func writeIgnored(w io.Writer, m Model, s Styles) {
	if len(m.IgnoredFiles) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.Muted.Render(fmt.Sprintf("    %d file(s) ignored:", len(m.IgnoredFiles))))
	for _, path := range m.IgnoredFiles {
		fmt.Fprintln(w, s.Muted.Render(fmt.Sprintf("      %s", path)))
	}
}
