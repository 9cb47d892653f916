package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestJSONReadWrite tests JSON serialization and parsing
func TestJSONReadWrite(t *testing.T) {
	provider, root := newTestProvider(t)

	result := invoke(t, provider, "filesystem.json.write", map[string]interface{}{
		"path": "settings.json",
		"data": map[string]interface{}{
			"theme":    "dark",
			"fontSize": 14,
			"tags":     []interface{}{"work", "ideas"},
		},
	})
	assert.True(t, result.Success)

	raw, err := os.ReadFile(filepath.Join(root, "settings.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  ")

	result = invoke(t, provider, "filesystem.json.read", map[string]interface{}{"path": "settings.json"})
	assert.True(t, result.Success)

	data, ok := result.Data["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "dark", data["theme"])
	assert.Len(t, data["tags"], 2)
}

// TestJSONWriteCompact tests disabling indentation
func TestJSONWriteCompact(t *testing.T) {
	provider, root := newTestProvider(t)

	invoke(t, provider, "filesystem.json.write", map[string]interface{}{
		"path":   "compact.json",
		"data":   map[string]interface{}{"a": 1},
		"pretty": false,
	})

	raw, err := os.ReadFile(filepath.Join(root, "compact.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "\n  ")
}

// TestJSONReadInvalid tests parsing a malformed JSON file
func TestJSONReadInvalid(t *testing.T) {
	provider, _ := newTestProvider(t)

	invoke(t, provider, "filesystem.write", map[string]interface{}{
		"path":    "broken.json",
		"content": "{not valid",
	})

	result := invoke(t, provider, "filesystem.json.read", map[string]interface{}{"path": "broken.json"})
	assert.False(t, result.Success)
	require.NotNil(t, result.Error)
	assert.Contains(t, *result.Error, "invalid JSON")
}

// TestYAMLReadWrite tests YAML serialization and parsing
func TestYAMLReadWrite(t *testing.T) {
	provider, _ := newTestProvider(t)

	result := invoke(t, provider, "filesystem.yaml.write", map[string]interface{}{
		"path": "config.yaml",
		"data": map[string]interface{}{
			"name":    "opennotes",
			"enabled": true,
		},
	})
	assert.True(t, result.Success)

	result = invoke(t, provider, "filesystem.yaml.read", map[string]interface{}{"path": "config.yaml"})
	assert.True(t, result.Success)

	data, ok := result.Data["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "opennotes", data["name"])
	assert.Equal(t, true, data["enabled"])
}

// TestTOMLReadWrite tests TOML serialization and parsing
func TestTOMLReadWrite(t *testing.T) {
	provider, _ := newTestProvider(t)

	result := invoke(t, provider, "filesystem.toml.write", map[string]interface{}{
		"path": "app.toml",
		"data": map[string]interface{}{
			"title": "notes",
			"port":  9160,
		},
	})
	assert.True(t, result.Success)

	result = invoke(t, provider, "filesystem.toml.read", map[string]interface{}{"path": "app.toml"})
	assert.True(t, result.Success)

	data, ok := result.Data["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "notes", data["title"])
	assert.Equal(t, int64(9160), data["port"])
}

// TestCSVReadWrite tests CSV row handling and custom delimiters
func TestCSVReadWrite(t *testing.T) {
	provider, _ := newTestProvider(t)

	result := invoke(t, provider, "filesystem.csv.write", map[string]interface{}{
		"path": "export.csv",
		"rows": []interface{}{
			[]interface{}{"id", "title"},
			[]interface{}{"1", "first note"},
			[]interface{}{"2", "second, with comma"},
		},
	})
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Data["rows"])

	result = invoke(t, provider, "filesystem.csv.read", map[string]interface{}{"path": "export.csv"})
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Data["count"])

	rows, ok := result.Data["rows"].([]interface{})
	require.True(t, ok)
	header, ok := rows[0].([]interface{})
	require.True(t, ok)
	assert.Equal(t, "id", header[0])

	last, ok := rows[2].([]interface{})
	require.True(t, ok)
	assert.Equal(t, "second, with comma", last[1])
}

// TestCSVCustomDelimiter tests semicolon-delimited files
func TestCSVCustomDelimiter(t *testing.T) {
	provider, _ := newTestProvider(t)

	invoke(t, provider, "filesystem.write", map[string]interface{}{
		"path":    "semi.csv",
		"content": "a;b\nc;d\n",
	})

	result := invoke(t, provider, "filesystem.csv.read", map[string]interface{}{
		"path":      "semi.csv",
		"delimiter": ";",
	})
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Data["count"])

	rows := result.Data["rows"].([]interface{})
	first := rows[0].([]interface{})
	assert.Equal(t, []interface{}{"a", "b"}, first)
}
