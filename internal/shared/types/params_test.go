package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetString(t *testing.T) {
	params := map[string]interface{}{
		"url":   "https://example.com",
		"empty": "",
		"num":   42,
	}

	t.Run("present", func(t *testing.T) {
		val, err := GetString(params, "url", true)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", val)
	})

	t.Run("missing required", func(t *testing.T) {
		_, err := GetString(params, "absent", true)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "absent parameter required")
	})

	t.Run("missing optional", func(t *testing.T) {
		val, err := GetString(params, "absent", false)
		require.NoError(t, err)
		assert.Equal(t, "", val)
	})

	t.Run("empty required", func(t *testing.T) {
		_, err := GetString(params, "empty", true)
		assert.Error(t, err)
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := GetString(params, "num", false)
		assert.Error(t, err)
	})
}

func TestGetNumber(t *testing.T) {
	params := map[string]interface{}{
		"float": 3.5,
		"int":   7,
		"str":   "nope",
	}

	t.Run("float64", func(t *testing.T) {
		val, err := GetNumber(params, "float", true)
		require.NoError(t, err)
		assert.Equal(t, 3.5, val)
	})

	t.Run("int coerced", func(t *testing.T) {
		val, err := GetNumber(params, "int", true)
		require.NoError(t, err)
		assert.Equal(t, 7.0, val)
	})

	t.Run("missing optional", func(t *testing.T) {
		val, err := GetNumber(params, "absent", false)
		require.NoError(t, err)
		assert.Equal(t, 0.0, val)
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := GetNumber(params, "str", true)
		assert.Error(t, err)
	})
}

func TestGetInt(t *testing.T) {
	params := map[string]interface{}{
		"json_num": float64(42),
		"native":   7,
		"str":      "nope",
	}

	val, ok := GetInt(params, "json_num")
	assert.True(t, ok)
	assert.Equal(t, 42, val)

	val, ok = GetInt(params, "native")
	assert.True(t, ok)
	assert.Equal(t, 7, val)

	_, ok = GetInt(params, "absent")
	assert.False(t, ok)

	_, ok = GetInt(params, "str")
	assert.False(t, ok)
}

func TestGetBool(t *testing.T) {
	params := map[string]interface{}{"flag": true, "str": "yes"}

	assert.True(t, GetBool(params, "flag", false))
	assert.True(t, GetBool(params, "absent", true))
	assert.False(t, GetBool(params, "str", false))
}

func TestGetMapAndArray(t *testing.T) {
	params := map[string]interface{}{
		"headers": map[string]interface{}{"X-Test": "1"},
		"items":   []interface{}{"a", "b", 3},
	}

	m := GetMap(params, "headers")
	require.NotNil(t, m)
	assert.Equal(t, "1", m["X-Test"])
	assert.Nil(t, GetMap(params, "items"))

	arr := GetArray(params, "items")
	assert.Len(t, arr, 3)
	assert.Nil(t, GetArray(params, "headers"))

	strs := GetStringSlice(params, "items")
	assert.Equal(t, []string{"a", "b"}, strs)
}

func TestResultHelpers(t *testing.T) {
	ok, err := Success(map[string]interface{}{"value": 1})
	require.NoError(t, err)
	assert.True(t, ok.Success)
	assert.Equal(t, 1, ok.Data["value"])
	assert.Nil(t, ok.Error)

	fail, err := Failure("it broke")
	require.NoError(t, err)
	assert.False(t, fail.Success)
	require.NotNil(t, fail.Error)
	assert.Equal(t, "it broke", *fail.Error)
}
