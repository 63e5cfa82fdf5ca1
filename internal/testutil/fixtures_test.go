package testutil

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestBundleFixturesAreJSON(t *testing.T) {
	for name, content := range map[string]string{"action": ActionBundle, "unit": UnitBundle} {
		t.Run(name, func(t *testing.T) {
			var doc map[string]any
			require.NoError(t, json.Unmarshal([]byte(content), &doc))
			assert.Contains(t, doc, "definitions")
		})
	}
}

func TestWriteTempBundle(t *testing.T) {
	path := WriteTempBundle(t, UnitBundle)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, UnitBundle, string(data))
}

func TestWriteTempYAML(t *testing.T) {
	doc := map[string]any{"definitions": map[string]any{"A": map[string]any{"x-file": "a.yaml"}}}
	path := WriteTempYAML(t, doc)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, doc, back)
}

func TestWriteTempJSON(t *testing.T) {
	doc := map[string]any{"definitions": map[string]any{"A": map[string]any{"x-file": "a.yaml"}}}
	path := WriteTempJSON(t, doc)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, doc, back)
}
