package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// fileConfig is the optional .wcov.yaml project config. Every field
// maps to an analyze flag; explicitly set flags win over the file.
type fileConfig struct {
	Thresholds string `yaml:"thresholds"`
	Mode       string `yaml:"mode"`
	Sort       string `yaml:"sort"`
	Format     string `yaml:"format"`
	Threads    int    `yaml:"threads"`

	ComplexityReport string `yaml:"complexity_report"`
	Output           string `yaml:"output"`
}

// loadConfig reads the config file. With an explicit path a missing
// file is an error; the default <project>/.wcov.yaml is optional and
// its absence yields the zero config.
func loadConfig(path, projectPath string) (fileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(projectPath, ".wcov.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("reading config file %q: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("parsing config file %q: %w", path, err)
	}
	return cfg, nil
}

// applyConfig fills params from the config for every flag the user
// left unset.
func applyConfig(cmd *cobra.Command, p *analyzeParams, cfg fileConfig) {
	set := cmd.Flags().Changed
	if !set("thresholds") && cfg.Thresholds != "" {
		p.thresholds = cfg.Thresholds
	}
	if !set("mode") && cfg.Mode != "" {
		p.mode = cfg.Mode
	}
	if !set("sort") && cfg.Sort != "" {
		p.sortBy = cfg.Sort
	}
	if !set("format") && cfg.Format != "" {
		p.format = cfg.Format
	}
	if !set("threads") && cfg.Threads != 0 {
		p.threads = cfg.Threads
	}
	if !set("complexity-report") && cfg.ComplexityReport != "" {
		p.complexityReport = cfg.ComplexityReport
	}
	if !set("output") && cfg.Output != "" {
		p.output = cfg.Output
	}
}
