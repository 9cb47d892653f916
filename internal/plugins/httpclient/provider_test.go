package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
)

func extractToolIDs(tools []types.Tool) []string {
	ids := make([]string, len(tools))
	for i, tool := range tools {
		ids[i] = tool.ID
	}
	return ids
}

func TestDefinition(t *testing.T) {
	def := NewProvider().Definition()

	assert.Equal(t, "http", def.ID)
	assert.Equal(t, types.CategoryHTTP, def.Category)

	ids := extractToolIDs(def.Tools)
	for _, want := range []string{
		"http.get", "http.post", "http.put", "http.patch", "http.delete", "http.head",
		"http.setHeader", "http.removeHeader", "http.getHeaders",
		"http.setTimeout", "http.setRetry", "http.setRateLimit", "http.reset",
	} {
		assert.Contains(t, ids, want)
	}
}

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "token123", r.Header.Get("X-Auth"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[1,2,3]}`))
	}))
	defer srv.Close()

	p := NewProvider()
	result, err := p.Execute(context.Background(), "http.get", map[string]interface{}{
		"url":     srv.URL,
		"params":  map[string]interface{}{"page": "1"},
		"headers": map[string]interface{}{"X-Auth": "token123"},
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, 200, result.Data["status"])
	assert.Equal(t, `{"items":[1,2,3]}`, result.Data["body"])

	parsed, ok := result.Data["json"].(map[string]interface{})
	require.True(t, ok, "expected parsed json body")
	assert.Len(t, parsed["items"], 3)

	headers, ok := result.Data["headers"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "application/json", headers["Content-Type"])
}

func TestPostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		body, _ := io.ReadAll(r.Body)
		var payload map[string]interface{}
		assert.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "note one", payload["title"])

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	p := NewProvider()
	result, err := p.Execute(context.Background(), "http.post", map[string]interface{}{
		"url":  srv.URL,
		"data": map[string]interface{}{"title": "note one"},
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 201, result.Data["status"])
}

func TestPostForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "note one", r.PostFormValue("title"))
	}))
	defer srv.Close()

	p := NewProvider()
	result, err := p.Execute(context.Background(), "http.post", map[string]interface{}{
		"url":  srv.URL,
		"data": map[string]interface{}{"title": "note one"},
		"json": false,
	}, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestDeleteAndHead(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
	}))
	defer srv.Close()

	p := NewProvider()

	result, err := p.Execute(context.Background(), "http.delete", map[string]interface{}{"url": srv.URL}, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "DELETE", gotMethod)

	result, err = p.Execute(context.Background(), "http.head", map[string]interface{}{"url": srv.URL}, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "HEAD", gotMethod)
}

func TestParamValidation(t *testing.T) {
	p := NewProvider()

	t.Run("get requires url", func(t *testing.T) {
		result, err := p.Execute(context.Background(), "http.get", map[string]interface{}{}, nil)
		require.NoError(t, err)
		assert.False(t, result.Success)
	})

	t.Run("post requires data", func(t *testing.T) {
		result, err := p.Execute(context.Background(), "http.post", map[string]interface{}{"url": "http://localhost"}, nil)
		require.NoError(t, err)
		require.False(t, result.Success)
		assert.Contains(t, *result.Error, "data parameter required")
	})
}

func TestHeaderConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.Header.Get("X-Client")))
	}))
	defer srv.Close()

	p := NewProvider()

	result, err := p.Execute(context.Background(), "http.setHeader", map[string]interface{}{
		"key":   "X-Client",
		"value": "opennotes",
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	result, err = p.Execute(context.Background(), "http.getHeaders", nil, nil)
	require.NoError(t, err)
	headers := result.Data["headers"].(map[string]interface{})
	assert.Equal(t, "opennotes", headers["X-Client"])

	// The default header rides on requests
	result, err = p.Execute(context.Background(), "http.get", map[string]interface{}{"url": srv.URL}, nil)
	require.NoError(t, err)
	assert.Equal(t, "opennotes", result.Data["body"])

	// And disappears after removal
	_, err = p.Execute(context.Background(), "http.removeHeader", map[string]interface{}{"key": "X-Client"}, nil)
	require.NoError(t, err)

	result, err = p.Execute(context.Background(), "http.get", map[string]interface{}{"url": srv.URL}, nil)
	require.NoError(t, err)
	assert.Equal(t, "", result.Data["body"])
}

func TestClientConfig(t *testing.T) {
	p := NewProvider()

	t.Run("timeout", func(t *testing.T) {
		result, err := p.Execute(context.Background(), "http.setTimeout", map[string]interface{}{"seconds": 10}, nil)
		require.NoError(t, err)
		assert.True(t, result.Success)

		result, err = p.Execute(context.Background(), "http.setTimeout", map[string]interface{}{"seconds": -1}, nil)
		require.NoError(t, err)
		assert.False(t, result.Success)
	})

	t.Run("retry", func(t *testing.T) {
		result, err := p.Execute(context.Background(), "http.setRetry", map[string]interface{}{"max_retries": 2}, nil)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, 2, result.Data["max_retries"])
	})

	t.Run("rate limit", func(t *testing.T) {
		result, err := p.Execute(context.Background(), "http.setRateLimit", map[string]interface{}{"rps": 50}, nil)
		require.NoError(t, err)
		assert.True(t, result.Success)
	})

	t.Run("reset", func(t *testing.T) {
		result, err := p.Execute(context.Background(), "http.reset", nil, nil)
		require.NoError(t, err)
		assert.True(t, result.Success)

		headers := p.client.Headers()
		assert.Equal(t, userAgent, headers["User-Agent"])
	})
}

func TestUnknownTool(t *testing.T) {
	result, err := NewProvider().Execute(context.Background(), "http.nope", nil, nil)
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Contains(t, *result.Error, "unknown tool")
}
