package complexity

import (
	"bufio"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fzipp/gocyclo"
	"github.com/uudashr/gocognit"
)

// Directories that never hold first-party sources.
var skipDirs = map[string]bool{
	"vendor":       true,
	"testdata":     true,
	"node_modules": true,
	".git":         true,
}

// AnalyzeGoProject walks projectPath and produces a Report for every
// non-test, non-generated Go source file. Each function declaration
// becomes a function-kind space; the file itself becomes a unit-kind
// space whose complexities are the per-function sums.
func AnalyzeGoProject(projectPath string) (Report, error) {
	report := make(Report)

	err := filepath.WalkDir(projectPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if skipDirs[name] || (strings.HasPrefix(name, "_") && path != projectPath) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			return nil
		}
		if isGeneratedFile(path) {
			return nil
		}

		spaces, err := analyzeGoFile(path)
		if err != nil {
			// A file that does not parse is skipped, not fatal; the
			// scheduler reports it as ignored for lack of spaces.
			return nil
		}
		report[strings.ReplaceAll(filepath.ToSlash(path), "\\", "/")] = spaces
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking project %q: %w", projectPath, err)
	}
	return report, nil
}

// analyzeGoFile measures one Go source file. Cyclomatic complexity
// comes from gocyclo, cognitive from gocognit; both are joined on the
// declaration's start line.
func analyzeGoFile(path string) ([]CodeSpace, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, 0)
	if err != nil {
		return nil, err
	}

	cycloByLine := make(map[int]int)
	for _, stat := range gocyclo.Analyze([]string{path}, nil) {
		cycloByLine[stat.Pos.Line] = stat.Complexity
	}

	var spaces []CodeSpace
	unit := CodeSpace{
		Kind:      KindUnit,
		Name:      filepath.Base(path),
		StartLine: 1,
	}

	ast.Inspect(file, func(n ast.Node) bool {
		fn, ok := n.(*ast.FuncDecl)
		if !ok || fn.Body == nil {
			return true
		}
		start := fset.Position(fn.Pos())
		end := fset.Position(fn.End())

		cyclomatic := cycloByLine[start.Line]
		if cyclomatic == 0 {
			cyclomatic = 1
		}

		spaces = append(spaces, CodeSpace{
			Kind:       KindFunction,
			Name:       funcName(fn),
			StartLine:  start.Line,
			EndLine:    end.Line,
			Cyclomatic: cyclomatic,
			Cognitive:  gocognit.Complexity(fn),
		})
		unit.Cyclomatic += cyclomatic
		unit.Cognitive += gocognit.Complexity(fn)
		return true
	})

	unit.EndLine = fset.File(file.Pos()).LineCount()
	return append(spaces, unit), nil
}

// funcName renders a function or method name the way coverage tools
// do (e.g. "Save" or "(*Store).Save").
func funcName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || fn.Recv.NumFields() == 0 {
		return fn.Name.Name
	}
	return "(" + recvTypeString(fn.Recv.List[0].Type) + ")." + fn.Name.Name
}

// recvTypeString extracts the receiver type as a string.
func recvTypeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return "*" + recvTypeString(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return recvTypeString(t.X) + "[" + recvTypeString(t.Index) + "]"
	default:
		return "?"
	}
}

// generatedRegexp matches the Go convention for generated file headers.
var generatedRegexp = regexp.MustCompile(`^// Code generated .* DO NOT EDIT\.$`)

// isGeneratedFile checks for a "// Code generated ... DO NOT EDIT."
// comment line before the package clause.
func isGeneratedFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(trimmed, "package ") {
			return false
		}
		if generatedRegexp.MatchString(trimmed) {
			return true
		}
	}
	return false
}
