package report

// Schema is the JSON Schema (Draft 2020-12) for the JSON report. It
// documents the structure written by WriteJSON.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/unbound-force/wcov/report.schema.json",
  "title": "Weighted Code Coverage Report",
  "description": "Output schema for wcov analyze --format=json",
  "type": "object",
  "required": [
    "version", "project", "mode", "thresholds", "files",
    "projectMetrics", "complexFilesCyclomatic",
    "complexFilesCognitive", "ignoredFiles"
  ],
  "properties": {
    "version": {
      "type": "string",
      "description": "Schema version (semver)"
    },
    "project": {
      "type": "string",
      "description": "Analyzed project path"
    },
    "mode": {
      "type": "string",
      "enum": ["files", "functions"],
      "description": "Result granularity"
    },
    "thresholds": { "$ref": "#/$defs/Thresholds" },
    "files": {
      "type": "array",
      "items": { "$ref": "#/$defs/FileMetrics" }
    },
    "projectMetrics": { "$ref": "#/$defs/ProjectMetrics" },
    "complexFilesCyclomatic": {
      "type": "array",
      "items": { "type": "string" },
      "description": "Paths classified complex by the cyclomatic scores"
    },
    "complexFilesCognitive": {
      "type": "array",
      "items": { "type": "string" },
      "description": "Paths classified complex by the cognitive scores"
    },
    "ignoredFiles": {
      "type": "array",
      "items": { "type": "string" },
      "description": "Paths excluded from every aggregate"
    }
  },
  "$defs": {
    "Thresholds": {
      "type": "object",
      "required": [
        "wcc", "crapCyclomatic", "crapCognitive",
        "skunkCyclomatic", "skunkCognitive"
      ],
      "properties": {
        "wcc": {
          "type": "number",
          "minimum": 0,
          "maximum": 100,
          "description": "Minimum acceptable Wcc percentage"
        },
        "crapCyclomatic": { "type": "number" },
        "crapCognitive": { "type": "number" },
        "skunkCyclomatic": { "type": "number" },
        "skunkCognitive": { "type": "number" }
      }
    },
    "Metrics": {
      "type": "object",
      "required": ["complexity", "wcc", "crap", "skunk", "isComplex"],
      "properties": {
        "complexity": { "type": "number" },
        "wcc": {
          "type": "number",
          "description": "Weighted code coverage percentage. Maximize."
        },
        "crap": {
          "type": "number",
          "description": "comp^2 * (1 - cov)^3 + comp. Minimize."
        },
        "skunk": {
          "type": "number",
          "description": "(comp / 0.60) * (1 - cov) + comp. Minimize."
        },
        "isComplex": { "type": "boolean" }
      }
    },
    "MetricsPair": {
      "type": "object",
      "required": ["coverage", "cyclomatic", "cognitive"],
      "properties": {
        "coverage": {
          "type": "number",
          "description": "Line coverage percentage"
        },
        "cyclomatic": { "$ref": "#/$defs/Metrics" },
        "cognitive": { "$ref": "#/$defs/Metrics" }
      }
    },
    "SpaceMetrics": {
      "type": "object",
      "required": ["name", "kind", "startLine", "endLine", "metrics"],
      "properties": {
        "name": { "type": "string" },
        "kind": {
          "type": "string",
          "enum": ["function", "class", "namespace", "unit"]
        },
        "startLine": { "type": "integer", "minimum": 1 },
        "endLine": { "type": "integer", "minimum": 1 },
        "metrics": { "$ref": "#/$defs/MetricsPair" }
      }
    },
    "FileMetrics": {
      "type": "object",
      "required": ["path", "metrics"],
      "properties": {
        "path": { "type": "string" },
        "metrics": { "$ref": "#/$defs/MetricsPair" },
        "spaces": {
          "type": "array",
          "items": { "$ref": "#/$defs/SpaceMetrics" },
          "description": "Per-space rows; present in functions mode only"
        }
      }
    },
    "ProjectMetrics": {
      "type": "object",
      "required": ["failed", "total", "min", "max", "average"],
      "properties": {
        "failed": {
          "type": "boolean",
          "description": "True when every file was ignored; other fields are zero"
        },
        "total": { "$ref": "#/$defs/MetricsPair" },
        "min": { "$ref": "#/$defs/MetricsPair" },
        "max": { "$ref": "#/$defs/MetricsPair" },
        "average": { "$ref": "#/$defs/MetricsPair" }
      }
    }
  }
}`
