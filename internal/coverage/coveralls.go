package coverage

import (
	"encoding/json"
	"fmt"
)

// coverallsSourceFile is one entry of the coveralls "source_files"
// array. The coverage array uses null for non-executable lines.
type coverallsSourceFile struct {
	Name     string `json:"name"`
	Coverage []*int `json:"coverage"`
}

type coverallsReport struct {
	SourceFiles []coverallsSourceFile `json:"source_files"`
}

// ParseCoveralls normalizes a grcov coveralls JSON report.
func ParseCoveralls(data []byte, projectPath string) (Table, error) {
	var report coverallsReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("malformed coveralls report: %w", err)
	}
	if report.SourceFiles == nil {
		return nil, fmt.Errorf("malformed coveralls report: missing source_files")
	}

	table := make(Table, len(report.SourceFiles))
	for _, sf := range report.SourceFiles {
		if sf.Name == "" {
			return nil, fmt.Errorf("malformed coveralls report: source file without name")
		}
		lines := make(Lines, len(sf.Coverage))
		for i, hit := range sf.Coverage {
			if hit == nil {
				lines[i] = NotExecutable
				continue
			}
			if *hit < 0 {
				return nil, fmt.Errorf("malformed coveralls report: negative hit count for %s:%d", sf.Name, i+1)
			}
			lines[i] = *hit
		}
		table[joinPath(projectPath, sf.Name)] = lines
	}
	return table, nil
}
