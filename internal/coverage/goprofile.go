package coverage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/cover"
)

// ParseGoProfile normalizes a Go cover profile (go test
// -coverprofile) into the per-line hit table. Profile block counts
// are expanded to every line the block spans; lines outside any
// block are non-executable.
func ParseGoProfile(profilePath, projectPath string) (Table, error) {
	profiles, err := cover.ParseProfiles(profilePath)
	if err != nil {
		return nil, fmt.Errorf("malformed cover profile %q: %w", profilePath, err)
	}

	modulePath := readModulePath(projectPath)

	table := make(Table, len(profiles))
	for _, profile := range profiles {
		lines := Lines{}
		for _, b := range profile.Blocks {
			for len(lines) < b.EndLine {
				lines = append(lines, NotExecutable)
			}
			for line := b.StartLine; line <= b.EndLine; line++ {
				hits := lines[line-1]
				if hits == NotExecutable || b.Count > hits {
					hits = b.Count
				}
				lines[line-1] = hits
			}
		}
		table[profileFilePath(profile.FileName, modulePath, projectPath)] = lines
	}
	return table, nil
}

// profileFilePath maps a cover profile filename, which is usually
// import-path relative (e.g. "example.com/mod/pkg/file.go"), to the
// same project-joined shape the other adapters produce.
func profileFilePath(profileName, modulePath, projectPath string) string {
	if modulePath != "" && strings.HasPrefix(profileName, modulePath+"/") {
		rel := strings.TrimPrefix(profileName, modulePath+"/")
		return joinPath(projectPath, rel)
	}
	if filepath.IsAbs(profileName) {
		return strings.ReplaceAll(filepath.ToSlash(profileName), "\\", "/")
	}
	return joinPath(projectPath, profileName)
}

// readModulePath reads the module path from go.mod in the given
// directory. Returns "" when there is no go.mod.
func readModulePath(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "module ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "module"))
		}
	}
	return ""
}
