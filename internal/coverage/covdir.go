package coverage

import (
	"encoding/json"
	"fmt"
	"path"
)

// covdirNode is one node of the covdir tree. Directories carry a
// children map; files carry a coverage array where -1 marks
// non-executable lines.
type covdirNode struct {
	Name     string                `json:"name"`
	Children map[string]covdirNode `json:"children"`
	Coverage []int                 `json:"coverage"`
}

// ParseCovdir normalizes a grcov covdir JSON report by walking the
// directory tree depth-first and collecting every file node.
func ParseCovdir(data []byte, projectPath string) (Table, error) {
	var root covdirNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("malformed covdir report: %w", err)
	}
	if root.Children == nil && root.Coverage == nil {
		return nil, fmt.Errorf("malformed covdir report: root has neither children nor coverage")
	}

	table := make(Table)
	type frame struct {
		node covdirNode
		dir  string
	}
	// The root's own name is the project directory and is already
	// part of projectPath, so traversal starts below it.
	stack := make([]frame, 0, len(root.Children))
	for _, child := range root.Children {
		stack = append(stack, frame{node: child, dir: ""})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(f.node.Children) > 0 {
			sub := path.Join(f.dir, f.node.Name)
			for _, child := range f.node.Children {
				stack = append(stack, frame{node: child, dir: sub})
			}
			continue
		}

		if f.node.Coverage == nil {
			return nil, fmt.Errorf("malformed covdir report: leaf %q without coverage", f.node.Name)
		}
		lines := make(Lines, len(f.node.Coverage))
		for i, hit := range f.node.Coverage {
			if hit < NotExecutable {
				return nil, fmt.Errorf("malformed covdir report: hit count %d for %s:%d", hit, f.node.Name, i+1)
			}
			lines[i] = hit
		}
		table[joinPath(projectPath, path.Join(f.dir, f.node.Name))] = lines
	}
	return table, nil
}
