package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/wcov/internal/report"
	"github.com/unbound-force/wcov/internal/wcc"
)

// keyMap defines keybindings for the interactive TUI.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
	Help     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Quit, k.Help},
	}
}

var defaultKeyMap = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("^/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("v/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// Styles for the TUI.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	tuiHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	tuiBorderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	complexStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

// resultsModel is the Bubble Tea model for browsing scored files.
type resultsModel struct {
	report   report.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	ready    bool
	content  string
}

func newResultsModel(m report.Model) resultsModel {
	return resultsModel{
		report:  m,
		help:    help.New(),
		keys:    defaultKeyMap,
		content: renderResultsContent(m),
	}
}

func renderResultsContent(m report.Model) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf(
		"Weighted Code Coverage: %s — %d file(s), %d complex",
		m.Project, len(m.Files), len(m.ComplexFilesCyclomatic))))
	sb.WriteString("\n\n")

	if m.ProjectMetrics.Failed {
		sb.WriteString(failStyle.Render(
			"Analysis failed: no file had both coverage data and code spaces."))
		sb.WriteString("\n")
	} else {
		sb.WriteString(renderFileTable(m.Files))
		sb.WriteString("\n\n")

		for _, f := range m.Files {
			if len(f.Spaces) == 0 {
				continue
			}
			sb.WriteString(tuiHeaderStyle.Render(fmt.Sprintf("=== %s ===", f.Path)))
			sb.WriteString("\n")
			sb.WriteString(renderSpaceTable(f.Spaces))
			sb.WriteString("\n\n")
		}
	}

	if len(m.IgnoredFiles) > 0 {
		sb.WriteString(statusStyle.Render(
			fmt.Sprintf("%d file(s) ignored: %s",
				len(m.IgnoredFiles), strings.Join(m.IgnoredFiles, ", "))))
		sb.WriteString("\n")
	}

	return sb.String()
}

func renderFileTable(files []wcc.FileMetrics) string {
	complexRows := make([]bool, len(files))
	rows := make([][]string, 0, len(files))
	for i, f := range files {
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

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tuiBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tuiHeaderStyle
			}
			if row >= 0 && row < len(complexRows) && complexRows[row] {
				return complexStyle
			}
			return lipgloss.NewStyle()
		}).
		Headers("FILE", "COVERAGE", "WCC", "CRAP", "SKUNK").
		Rows(rows...).
		String()
}

func renderSpaceTable(spaces []wcc.SpaceMetrics) string {
	complexRows := make([]bool, len(spaces))
	rows := make([][]string, 0, len(spaces))
	for i, sp := range spaces {
		cy := sp.Metrics.Cyclomatic
		complexRows[i] = cy.IsComplex
		rows = append(rows, []string{
			fmt.Sprintf("%s (%d, %d)", sp.Name, sp.StartLine, sp.EndLine),
			fmt.Sprintf("%.2f", sp.Metrics.Coverage),
			fmt.Sprintf("%.2f", cy.Wcc),
			fmt.Sprintf("%.2f", cy.Crap),
			fmt.Sprintf("%.2f", cy.Skunk),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tuiBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tuiHeaderStyle
			}
			if row >= 0 && row < len(complexRows) && complexRows[row] {
				return complexStyle
			}
			return lipgloss.NewStyle()
		}).
		Headers("SPACE", "COVERAGE", "WCC", "CRAP", "SKUNK").
		Rows(rows...).
		String()
}

func (m resultsModel) Init() tea.Cmd {
	return nil
}

func (m resultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 0
		footerHeight := 2
		verticalMargin := headerHeight + footerHeight

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-verticalMargin)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - verticalMargin
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m resultsModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	footer := statusStyle.Render(
		fmt.Sprintf(" %3.f%% ", m.viewport.ScrollPercent()*100)) +
		" " + m.help.View(m.keys)

	return m.viewport.View() + "\n" + footer
}

// runInteractiveResults launches the Bubble Tea TUI for browsing
// scored files.
func runInteractiveResults(m report.Model) error {
	model := newResultsModel(m)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
