package filesystem_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFind tests substring search across the tree
func TestFind(t *testing.T) {
	provider, _ := newTestProvider(t)

	for _, f := range []string{"notes/alpha.md", "notes/beta.txt", "deep/nested/alpha-draft.md"} {
		invoke(t, provider, "filesystem.write", map[string]interface{}{
			"path":    f,
			"content": "x",
		})
	}

	result := invoke(t, provider, "filesystem.find", map[string]interface{}{"query": "alpha"})
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Data["count"])

	matches, ok := result.Data["matches"].([]string)
	require.True(t, ok)
	assert.Len(t, matches, 2)
}

// TestFindCaseInsensitive tests that case does not affect matching
func TestFindCaseInsensitive(t *testing.T) {
	provider, _ := newTestProvider(t)

	invoke(t, provider, "filesystem.write", map[string]interface{}{
		"path":    "Meeting-Notes.md",
		"content": "x",
	})

	result := invoke(t, provider, "filesystem.find", map[string]interface{}{"query": "meeting"})
	assert.Equal(t, 1, result.Data["count"])
}

// TestFindLimit tests result truncation
func TestFindLimit(t *testing.T) {
	provider, _ := newTestProvider(t)

	for _, f := range []string{"a-note.md", "b-note.md", "c-note.md"} {
		invoke(t, provider, "filesystem.write", map[string]interface{}{
			"path":    f,
			"content": "x",
		})
	}

	result := invoke(t, provider, "filesystem.find", map[string]interface{}{
		"query": "note",
		"limit": 2,
	})
	assert.Equal(t, 2, result.Data["count"])
}

// TestGlob tests doublestar pattern matching
func TestGlob(t *testing.T) {
	provider, _ := newTestProvider(t)

	for _, f := range []string{"top.md", "sub/one.md", "sub/two.txt", "sub/deeper/three.md"} {
		invoke(t, provider, "filesystem.write", map[string]interface{}{
			"path":    f,
			"content": "x",
		})
	}

	result := invoke(t, provider, "filesystem.glob", map[string]interface{}{"pattern": "**/*.md"})
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Data["count"])

	result = invoke(t, provider, "filesystem.glob", map[string]interface{}{"pattern": "sub/*.md"})
	assert.Equal(t, 1, result.Data["count"])
}

// TestGlobInvalidPattern tests rejection of malformed patterns
func TestGlobInvalidPattern(t *testing.T) {
	provider, _ := newTestProvider(t)

	result := invoke(t, provider, "filesystem.glob", map[string]interface{}{"pattern": "[unclosed"})
	assert.False(t, result.Success)
	require.NotNil(t, result.Error)
	assert.Contains(t, *result.Error, "invalid pattern")
}
