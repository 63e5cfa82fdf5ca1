// Package testutil provides test utilities and schema bundle fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"
)

// ActionBundle holds a plain record with a scalar and a list of references,
// plus the referenced definition.
const ActionBundle = `{
  "definitions": {
    "Action": {
      "x-file": "action.yaml",
      "properties": {
        "name": {"type": "string"},
        "steps": {"type": "array", "items": {"$ref": "#/definitions/Step"}}
      }
    },
    "Step": {
      "description": "Step is a single unit of work.",
      "x-file": "step.yaml",
      "properties": {
        "id": {"type": "string"},
        "retries": {"type": "integer"},
        "envs": {"type": "object", "additionalProperties": {"type": "string"}}
      }
    }
  }
}`

// UnitBundle holds a tagged union with two variants (move and attack) and
// the two payload definitions. The payload property is declared only inside
// the oneOf alternatives.
const UnitBundle = `{
  "definitions": {
    "Unit": {
      "description": "Unit is an order given to a unit.",
      "x-file": "unit.yaml",
      "properties": {
        "type": {"enum": ["move", "attack"]}
      },
      "oneOf": [
        {"allOf": [
          {"properties": {"type": {"const": "move"}}},
          {"properties": {"spec": {"$ref": "#/definitions/Move"}}}
        ]},
        {"allOf": [
          {"properties": {"type": {"const": "attack"}}},
          {"properties": {"spec": {"$ref": "#/definitions/Attack"}}}
        ]}
      ]
    },
    "Move": {
      "x-file": "move.yaml",
      "properties": {"x": {"type": "number"}, "y": {"type": "number"}}
    },
    "Attack": {
      "x-file": "attack.yaml",
      "properties": {"target": {"type": "string"}, "critical": {"type": "boolean"}}
    }
  }
}`

// WriteTempBundle writes raw bundle content to a temporary schema.json.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempBundle(t *testing.T, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), "schema.json")
	if err := os.WriteFile(tmpFile, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write temporary bundle: %v", err)
	}
	return tmpFile
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "schema.yaml")
	if err := os.WriteFile(tmpFile, data, 0o600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "schema.json")
	if err := os.WriteFile(tmpFile, data, 0o600); err != nil {
		t.Fatalf("Failed to write temporary JSON file: %v", err)
	}

	return tmpFile
}
