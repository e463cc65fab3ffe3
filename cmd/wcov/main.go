package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	charmlog "github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/unbound-force/wcov/internal/complexity"
	"github.com/unbound-force/wcov/internal/coverage"
	"github.com/unbound-force/wcov/internal/report"
	"github.com/unbound-force/wcov/internal/wcc"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "wcov",
		Short: "wcov — weighted code coverage analysis",
		Long: `wcov fuses per-line test coverage with per-function complexity
and scores every file and code space with the Wcc, CRAP and Skunk
metrics, flagging the entities whose coverage does not justify
their complexity.`,
		Version: version,
	}

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newSchemaCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// analyzeParams holds the resolved inputs of the analyze command.
type analyzeParams struct {
	projectPath string

	coveralls    string
	covdir       string
	coverprofile string

	complexityReport string

	thresholds  string
	threads     int
	mode        string
	sortBy      string
	format      string
	output      string
	interactive bool
	progress    bool
	verbose     bool

	stdout io.Writer
	stderr io.Writer
}

// runAnalyze is the extracted, testable body of the analyze command.
func runAnalyze(p analyzeParams) error {
	if p.verbose {
		logger.SetLevel(charmlog.DebugLevel)
	}
	if p.format != "text" && p.format != "json" && p.format != "html" {
		return fmt.Errorf("invalid format %q: must be 'text', 'json', or 'html'", p.format)
	}

	mode, err := wcc.ParseMode(p.mode)
	if err != nil {
		return err
	}
	sortKey, err := wcc.ParseSortKey(p.sortBy)
	if err != nil {
		return err
	}
	triple, err := wcc.ParseThresholds(p.thresholds)
	if err != nil {
		return err
	}
	derived, err := triple.Derive()
	if err != nil {
		return err
	}

	covFormat, covPath, err := coverageInput(p)
	if err != nil {
		return err
	}

	logger.Info("loading coverage", "format", covFormat, "path", covPath)
	table, err := coverage.Load(covFormat, covPath, p.projectPath)
	if err != nil {
		return err
	}

	var spaces complexity.Report
	if p.complexityReport != "" {
		logger.Info("reading complexity report", "path", p.complexityReport)
		spaces, err = complexity.ReadReport(p.complexityReport, p.projectPath)
	} else {
		logger.Info("measuring Go sources", "project", p.projectPath)
		spaces, err = complexity.AnalyzeGoProject(p.projectPath)
	}
	if err != nil {
		return err
	}

	runner := wcc.Runner{
		Coverage:   table,
		Complexity: spaces,
		Thresholds: derived,
		Workers:    p.threads,
		Sort:       sortKey,
	}
	if p.progress && !p.interactive {
		runner.Progress = progressFunc(p.stderr)
	}

	out, err := runner.Run(context.Background())
	if err != nil {
		return err
	}

	for _, path := range out.Ignored {
		logger.Debug("ignored file", "path", path)
	}
	logger.Info("analysis complete",
		"files", len(out.Files), "ignored", len(out.Ignored))

	model := report.Build(p.projectPath, mode, derived, out)

	if p.interactive {
		if err := runInteractiveResults(model); err != nil {
			return err
		}
	} else if err := writeReport(p, model); err != nil {
		return err
	}

	if out.Project.Failed {
		logger.Warn("no file had both coverage data and code spaces")
		return wcc.ErrNoAnalyzableFiles
	}
	return nil
}

// coverageInput maps the three mutually exclusive coverage flags to a
// format tag and path. Exactly one must be set.
func coverageInput(p analyzeParams) (coverage.Format, string, error) {
	var (
		format coverage.Format
		path   string
		count  int
	)
	for _, in := range []struct {
		format coverage.Format
		path   string
	}{
		{coverage.FormatCoveralls, p.coveralls},
		{coverage.FormatCovdir, p.covdir},
		{coverage.FormatGoProfile, p.coverprofile},
	} {
		if in.path == "" {
			continue
		}
		format, path = in.format, in.path
		count++
	}
	switch count {
	case 0:
		return "", "", fmt.Errorf("a coverage input is required: --coveralls, --covdir, or --coverprofile")
	case 1:
		return format, path, nil
	default:
		return "", "", fmt.Errorf("only one coverage input may be set: --coveralls, --covdir, or --coverprofile")
	}
}

// progressFunc adapts a progress bar to the scheduler's callback. The
// bar is created on the first tick, when the file total is known.
func progressFunc(w io.Writer) func(done, total int) {
	var (
		once sync.Once
		bar  *progressbar.ProgressBar
	)
	return func(done, total int) {
		once.Do(func() {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(w),
				progressbar.OptionSetDescription("scoring files"),
				progressbar.OptionClearOnFinish(),
				progressbar.OptionShowCount(),
			)
		})
		_ = bar.Set(done)
	}
}

// writeReport renders the model in the requested format, to the
// output file when one is set and stdout otherwise.
func writeReport(p analyzeParams, model report.Model) error {
	w := p.stdout
	if p.output != "" {
		f, err := os.Create(p.output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
		logger.Info("writing report", "path", p.output, "format", p.format)
	}

	switch p.format {
	case "json":
		return report.WriteJSON(w, model)
	case "html":
		return report.WriteHTML(w, model)
	default:
		return report.WriteText(w, model)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var p analyzeParams
	var configPath string

	cmd := &cobra.Command{
		Use:   "analyze --project <dir>",
		Short: "Score a project's weighted code coverage",
		Long: `Fuse a coverage report with per-function complexity and score
every file with the Wcc, CRAP and Skunk metrics.

Complexity comes from a JSON code-space report (--complexity-report)
or, for Go projects, is measured directly from the sources.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, p.projectPath)
			if err != nil {
				return err
			}
			applyConfig(cmd, &p, cfg)

			p.stdout = os.Stdout
			p.stderr = os.Stderr
			return runAnalyze(p)
		},
	}

	cmd.Flags().StringVar(&p.projectPath, "project", ".",
		"project root the report paths are joined under")
	cmd.Flags().StringVar(&p.coveralls, "coveralls", "",
		"path to a grcov coveralls JSON report")
	cmd.Flags().StringVar(&p.covdir, "covdir", "",
		"path to a grcov covdir JSON report")
	cmd.Flags().StringVar(&p.coverprofile, "coverprofile", "",
		"path to a Go cover profile")
	cmd.Flags().StringVar(&p.complexityReport, "complexity-report", "",
		"path to a JSON code-space report (default: measure Go sources)")
	cmd.Flags().StringVar(&p.thresholds, "thresholds", "60,10,10",
		"wcc,cyclomatic,cognitive threshold triple")
	cmd.Flags().IntVar(&p.threads, "threads", 0,
		"worker pool size (default: CPUs minus one)")
	cmd.Flags().StringVar(&p.mode, "mode", "files",
		"result granularity: files or functions")
	cmd.Flags().StringVar(&p.sortBy, "sort", "wcc",
		"sort metric: wcc, crap, or skunk")
	cmd.Flags().StringVar(&p.format, "format", "text",
		"output format: text, json, or html")
	cmd.Flags().StringVarP(&p.output, "output", "o", "",
		"write the report to a file instead of stdout")
	cmd.Flags().BoolVarP(&p.interactive, "interactive", "i", false,
		"launch interactive TUI for browsing results")
	cmd.Flags().BoolVar(&p.progress, "progress", true,
		"show a progress bar on stderr")
	cmd.Flags().BoolVarP(&p.verbose, "verbose", "v", false,
		"log per-file detail")
	cmd.Flags().StringVar(&configPath, "config", "",
		"path to a .wcov.yaml config file (default: <project>/.wcov.yaml)")

	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for wcov analyze output",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the
structure of wcov analyze --format=json output. Useful for
validating output or generating client types.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), report.Schema)
			return err
		},
	}
}
