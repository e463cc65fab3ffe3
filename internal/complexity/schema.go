package complexity

// InputSchema is the JSON Schema (Draft 2020-12) a complexity report
// must satisfy before it is accepted. Kept strict on purpose: a report
// that fails validation is a fatal input error, never a partial read.
const InputSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/unbound-force/wcov/complexity-report.schema.json",
  "title": "Complexity Report",
  "description": "Per-file code spaces with cyclomatic and cognitive complexity",
  "type": "object",
  "required": ["files"],
  "properties": {
    "files": {
      "type": "array",
      "items": { "$ref": "#/$defs/File" }
    }
  },
  "$defs": {
    "File": {
      "type": "object",
      "required": ["path", "spaces"],
      "properties": {
        "path": {
          "type": "string",
          "minLength": 1,
          "description": "File path relative to the project root"
        },
        "spaces": {
          "type": "array",
          "items": { "$ref": "#/$defs/CodeSpace" }
        }
      }
    },
    "CodeSpace": {
      "type": "object",
      "required": ["kind", "name", "start_line", "end_line", "cyclomatic", "cognitive"],
      "properties": {
        "kind": {
          "type": "string",
          "enum": ["function", "class", "namespace", "unit"]
        },
        "name": {
          "type": "string",
          "description": "Scope name (function, class, namespace, or file)"
        },
        "start_line": {
          "type": "integer",
          "minimum": 1
        },
        "end_line": {
          "type": "integer",
          "minimum": 0,
          "description": "Inclusive end line; end_line < start_line marks a degenerate range"
        },
        "cyclomatic": {
          "type": "integer",
          "minimum": 0
        },
        "cognitive": {
          "type": "integer",
          "minimum": 0
        }
      }
    }
  }
}`
