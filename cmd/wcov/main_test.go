package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unbound-force/wcov/internal/report"
	"github.com/unbound-force/wcov/internal/wcc"
)

// writeFixtures lays down a coveralls report and a complexity report
// for a two-file project and returns their paths.
func writeFixtures(t *testing.T) (dir, coveralls, complexityReport string) {
	t.Helper()
	dir = t.TempDir()

	coveralls = filepath.Join(dir, "coveralls.json")
	covJSON := `{
  "source_files": [
    {"name": "src/simple.go", "coverage": [1, 1, null, 2, 1, 1]},
    {"name": "src/gnarly.go", "coverage": [1, 0, 0, 0, 0, 0, 0, 0, 0, 0]}
  ]
}`
	if err := os.WriteFile(coveralls, []byte(covJSON), 0o600); err != nil {
		t.Fatalf("writing coveralls fixture: %v", err)
	}

	complexityReport = filepath.Join(dir, "complexity.json")
	compJSON := `{
  "files": [
    {
      "path": "src/simple.go",
      "spaces": [
        {"kind": "function", "name": "Render", "start_line": 1, "end_line": 6, "cyclomatic": 3, "cognitive": 2}
      ]
    },
    {
      "path": "src/gnarly.go",
      "spaces": [
        {"kind": "function", "name": "Reconcile", "start_line": 1, "end_line": 10, "cyclomatic": 22, "cognitive": 28}
      ]
    }
  ]
}`
	if err := os.WriteFile(complexityReport, []byte(compJSON), 0o600); err != nil {
		t.Fatalf("writing complexity fixture: %v", err)
	}
	return dir, coveralls, complexityReport
}

// baseParams returns analyzeParams with flag defaults and buffers for
// the output streams.
func baseParams(stdout, stderr *bytes.Buffer) analyzeParams {
	return analyzeParams{
		projectPath: "proj",
		thresholds:  "60,10,10",
		mode:        "files",
		sortBy:      "wcc",
		format:      "text",
		stdout:      stdout,
		stderr:      stderr,
	}
}

func TestRunAnalyze_InvalidFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer
	p := baseParams(&stdout, &stderr)
	p.format = "yaml"
	p.coveralls = "unused.json"

	err := runAnalyze(p)
	if err == nil {
		t.Fatal("expected error for invalid format")
	}
	if !strings.Contains(err.Error(), `invalid format "yaml"`) {
		t.Errorf("unexpected error message: %s", err)
	}
}

func TestRunAnalyze_InvalidThresholds(t *testing.T) {
	var stdout, stderr bytes.Buffer
	p := baseParams(&stdout, &stderr)
	p.thresholds = "60,10"
	p.coveralls = "unused.json"

	if err := runAnalyze(p); err == nil {
		t.Fatal("expected error for malformed thresholds")
	}
}

func TestRunAnalyze_NoCoverageInput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	p := baseParams(&stdout, &stderr)

	err := runAnalyze(p)
	if err == nil {
		t.Fatal("expected error when no coverage input is set")
	}
	if !strings.Contains(err.Error(), "coverage input is required") {
		t.Errorf("unexpected error message: %s", err)
	}
}

func TestRunAnalyze_MultipleCoverageInputs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	p := baseParams(&stdout, &stderr)
	p.coveralls = "a.json"
	p.covdir = "b.json"

	err := runAnalyze(p)
	if err == nil {
		t.Fatal("expected error when two coverage inputs are set")
	}
	if !strings.Contains(err.Error(), "only one coverage input") {
		t.Errorf("unexpected error message: %s", err)
	}
}

func TestRunAnalyze_JSONFormat(t *testing.T) {
	_, coveralls, compReport := writeFixtures(t)
	var stdout, stderr bytes.Buffer
	p := baseParams(&stdout, &stderr)
	p.coveralls = coveralls
	p.complexityReport = compReport
	p.format = "json"

	if err := runAnalyze(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var m report.Model
	if err := json.Unmarshal(stdout.Bytes(), &m); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput:\n%s", err, stdout.String())
	}
	if len(m.Files) != 2 {
		t.Fatalf("files = %d, want 2", len(m.Files))
	}
	// Worst wcc first.
	if m.Files[0].Path != "proj/src/gnarly.go" {
		t.Errorf("first file = %s, want proj/src/gnarly.go", m.Files[0].Path)
	}
	if len(m.ComplexFilesCyclomatic) != 1 {
		t.Errorf("complexFilesCyclomatic = %v, want one entry", m.ComplexFilesCyclomatic)
	}
	if m.Files[0].Spaces != nil {
		t.Error("files mode should not include per-space rows")
	}
}

func TestRunAnalyze_FunctionsMode(t *testing.T) {
	_, coveralls, compReport := writeFixtures(t)
	var stdout, stderr bytes.Buffer
	p := baseParams(&stdout, &stderr)
	p.coveralls = coveralls
	p.complexityReport = compReport
	p.format = "json"
	p.mode = "functions"

	if err := runAnalyze(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var m report.Model
	if err := json.Unmarshal(stdout.Bytes(), &m); err != nil {
		t.Fatal(err)
	}
	for _, f := range m.Files {
		if len(f.Spaces) == 0 {
			t.Errorf("functions mode: %s has no per-space rows", f.Path)
		}
	}
}

func TestRunAnalyze_TextFormat(t *testing.T) {
	_, coveralls, compReport := writeFixtures(t)
	var stdout, stderr bytes.Buffer
	p := baseParams(&stdout, &stderr)
	p.coveralls = coveralls
	p.complexityReport = compReport

	if err := runAnalyze(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "proj/src/simple.go") {
		t.Errorf("expected output to contain 'proj/src/simple.go', got:\n%s", out)
	}
	if !strings.Contains(out, "total") {
		t.Errorf("expected output to contain the summary block, got:\n%s", out)
	}
}

func TestRunAnalyze_OutputFile(t *testing.T) {
	dir, coveralls, compReport := writeFixtures(t)
	var stdout, stderr bytes.Buffer
	p := baseParams(&stdout, &stderr)
	p.coveralls = coveralls
	p.complexityReport = compReport
	p.format = "html"
	p.output = filepath.Join(dir, "report.html")

	if err := runAnalyze(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("report should go to the file, stdout got:\n%s", stdout.String())
	}
	data, err := os.ReadFile(p.output)
	if err != nil {
		t.Fatalf("reading report file: %v", err)
	}
	if !strings.Contains(string(data), "<!DOCTYPE html>") {
		t.Error("report file is not an HTML page")
	}
}

func TestRunAnalyze_AllFilesIgnoredFails(t *testing.T) {
	dir := t.TempDir()
	coveralls := filepath.Join(dir, "coveralls.json")
	covJSON := `{"source_files": [{"name": "src/only.go", "coverage": [1, 1]}]}`
	if err := os.WriteFile(coveralls, []byte(covJSON), 0o600); err != nil {
		t.Fatal(err)
	}
	compReport := filepath.Join(dir, "complexity.json")
	if err := os.WriteFile(compReport, []byte(`{"files": []}`), 0o600); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	p := baseParams(&stdout, &stderr)
	p.coveralls = coveralls
	p.complexityReport = compReport
	p.format = "json"

	err := runAnalyze(p)
	if !errors.Is(err, wcc.ErrNoAnalyzableFiles) {
		t.Fatalf("err = %v, want ErrNoAnalyzableFiles", err)
	}

	// The report is still written before the non-zero exit.
	var m report.Model
	if err := json.Unmarshal(stdout.Bytes(), &m); err != nil {
		t.Fatalf("failed run should still emit a report: %v", err)
	}
	if !m.ProjectMetrics.Failed {
		t.Error("report should carry the failed flag")
	}
}

func TestRunAnalyze_MalformedCoverageReport(t *testing.T) {
	dir := t.TempDir()
	coveralls := filepath.Join(dir, "coveralls.json")
	if err := os.WriteFile(coveralls, []byte(`{"wrong": true}`), 0o600); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	p := baseParams(&stdout, &stderr)
	p.coveralls = coveralls

	err := runAnalyze(p)
	if err == nil {
		t.Fatal("expected error for malformed coveralls report")
	}
	if !strings.Contains(err.Error(), "malformed") {
		t.Errorf("unexpected error message: %s", err)
	}
}

func TestRunAnalyze_ProgressBarTicks(t *testing.T) {
	_, coveralls, compReport := writeFixtures(t)
	var stdout, stderr bytes.Buffer
	p := baseParams(&stdout, &stderr)
	p.coveralls = coveralls
	p.complexityReport = compReport
	p.format = "json"
	p.progress = true

	if err := runAnalyze(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stderr.Len() == 0 {
		t.Error("expected progress output on stderr")
	}
}

// ---------------------------------------------------------------------------
// loadConfig tests
// ---------------------------------------------------------------------------

func TestLoadConfig_MissingDefaultIsFine(t *testing.T) {
	cfg, err := loadConfig("", t.TempDir())
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if cfg != (fileConfig{}) {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfig_MissingExplicitFails(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"), ".")
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
	if !strings.Contains(err.Error(), "config file") {
		t.Errorf("error should mention 'config file', got: %s", err)
	}
}

func TestLoadConfig_ReadsProjectDefault(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`thresholds: "55,12,9"
mode: functions
sort: crap
format: json
threads: 3
`)
	if err := os.WriteFile(filepath.Join(dir, ".wcov.yaml"), content, 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}

	cfg, err := loadConfig("", dir)
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if cfg.Thresholds != "55,12,9" || cfg.Mode != "functions" ||
		cfg.Sort != "crap" || cfg.Format != "json" || cfg.Threads != 3 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfig_InvalidYAMLRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".wcov.yaml")
	if err := os.WriteFile(path, []byte("thresholds: [oops\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := loadConfig(path, dir)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "config file") {
		t.Errorf("error should mention 'config file', got: %s", err)
	}
}

func TestApplyConfig_FlagsWin(t *testing.T) {
	cmd := newAnalyzeCmd()
	if err := cmd.Flags().Set("mode", "files"); err != nil {
		t.Fatal(err)
	}

	p := analyzeParams{mode: "files", sortBy: "wcc", thresholds: "60,10,10"}
	cfg := fileConfig{Mode: "functions", Sort: "skunk"}
	applyConfig(cmd, &p, cfg)

	if p.mode != "files" {
		t.Errorf("explicit --mode should win over config, got %q", p.mode)
	}
	if p.sortBy != "skunk" {
		t.Errorf("unset --sort should take the config value, got %q", p.sortBy)
	}
	if p.thresholds != "60,10,10" {
		t.Errorf("empty config field should leave the default, got %q", p.thresholds)
	}
}
