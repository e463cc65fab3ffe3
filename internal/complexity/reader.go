package complexity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// reportFile is one entry of the external report's "files" array.
type reportFile struct {
	Path   string      `json:"path"`
	Spaces []CodeSpace `json:"spaces"`
}

type reportJSON struct {
	Files []reportFile `json:"files"`
}

// ReadReport loads an external complexity report from disk. File
// paths are joined under projectPath to match the coverage table keys.
func ReadReport(reportPath, projectPath string) (Report, error) {
	data, err := os.ReadFile(reportPath)
	if err != nil {
		return nil, fmt.Errorf("reading complexity report %q: %w", reportPath, err)
	}
	return ParseReport(data, projectPath)
}

// ParseReport validates raw report bytes against InputSchema and
// decodes them. Validation failures and structural inconsistencies
// (inverted ranges, duplicate paths) are fatal.
func ParseReport(data []byte, projectPath string) (Report, error) {
	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("malformed complexity report: %w", err)
	}

	var report reportJSON
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("malformed complexity report: %w", err)
	}

	result := make(Report, len(report.Files))
	for _, f := range report.Files {
		key := joinPath(projectPath, f.Path)
		if _, dup := result[key]; dup {
			return nil, fmt.Errorf("malformed complexity report: duplicate path %q", f.Path)
		}
		for _, s := range f.Spaces {
			if !validKind(s.Kind) {
				return nil, fmt.Errorf("malformed complexity report: %s: unknown kind %q", f.Path, s.Kind)
			}
		}
		result[key] = f.Spaces
	}
	return result, nil
}

func validateSchema(data []byte) error {
	schemaDoc, err := jsonschema.UnmarshalJSON(strings.NewReader(InputSchema))
	if err != nil {
		return err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("complexity-report.schema.json", schemaDoc); err != nil {
		return err
	}
	schema, err := compiler.Compile("complexity-report.schema.json")
	if err != nil {
		return err
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	return schema.Validate(instance)
}

// joinPath mirrors the coverage table's key construction so fused
// lookups line up.
func joinPath(projectPath, rel string) string {
	joined := filepath.Join(projectPath, rel)
	return strings.ReplaceAll(filepath.ToSlash(joined), "\\", "/")
}
