package dispatch

import (
	"context"
	"testing"

	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
)

type mockPlugin struct {
	id string
}

func (m *mockPlugin) Definition() types.Plugin {
	return types.Plugin{
		ID:           m.id,
		Name:         "Mock Plugin",
		Description:  "A mock plugin for testing",
		Category:     types.CategoryStorage,
		Capabilities: []string{"read", "write"},
		Tools: []types.Tool{
			{
				ID:          m.id + ".test",
				Name:        "Test Tool",
				Description: "A test tool",
				Returns:     "string",
			},
		},
	}
}

func (m *mockPlugin) Execute(ctx context.Context, toolID string, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	return &types.Result{
		Success: true,
		Data:    map[string]interface{}{"tool": toolID},
	}, nil
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	p := &mockPlugin{id: "test"}

	if err := r.Register(p); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, ok := r.Get("test"); !ok {
		t.Error("Plugin should be registered")
	}
}

func TestRegisterEmptyID(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(&mockPlugin{id: ""}); err == nil {
		t.Error("Register should reject empty plugin ID")
	}
}

func TestUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockPlugin{id: "test"})
	r.Unregister("test")

	if _, ok := r.Get("test"); ok {
		t.Error("Plugin should be unregistered")
	}
}

func TestList(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockPlugin{id: "test1"})
	r.Register(&mockPlugin{id: "test2"})

	plugins := r.List(nil)
	if len(plugins) != 2 {
		t.Errorf("Expected 2 plugins, got %d", len(plugins))
	}

	cat := types.CategoryStorage
	filtered := r.List(&cat)
	if len(filtered) != 2 {
		t.Errorf("Expected 2 storage plugins, got %d", len(filtered))
	}

	other := types.CategoryShell
	empty := r.List(&other)
	if len(empty) != 0 {
		t.Errorf("Expected 0 shell plugins, got %d", len(empty))
	}
}

func TestExecute(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockPlugin{id: "test"})

	ctx := context.Background()
	result, err := r.Execute(ctx, "test.test", map[string]interface{}{}, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !result.Success {
		t.Error("Expected successful execution")
	}

	if result.Data["tool"] != "test.test" {
		t.Errorf("Plugin should receive the full command, got %v", result.Data["tool"])
	}
}

func TestExecuteDottedTool(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockPlugin{id: "filesystem"})

	result, err := r.Execute(context.Background(), "filesystem.json.read", nil, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	// Only the first dot separates plugin from tool
	if result.Data["tool"] != "filesystem.json.read" {
		t.Errorf("Expected full command routed, got %v", result.Data["tool"])
	}
}

func TestExecuteUnknownPlugin(t *testing.T) {
	r := NewRegistry()

	result, err := r.Execute(context.Background(), "nope.tool", nil, nil)
	if err == nil {
		t.Fatal("Expected error for unknown plugin")
	}

	if result == nil || result.Success {
		t.Error("Expected failed result for unknown plugin")
	}
}

func TestExecuteMalformedCommand(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockPlugin{id: "test"})

	for _, command := range []string{"test", "", ".tool", "test."} {
		result, err := r.Execute(context.Background(), command, nil, nil)
		if err == nil {
			t.Errorf("Expected error for command %q", command)
		}
		if result == nil || result.Success {
			t.Errorf("Expected failed result for command %q", command)
		}
	}
}

func TestStats(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockPlugin{id: "test1"})
	r.Register(&mockPlugin{id: "test2"})

	stats := r.Stats()
	totalPlugins := stats["total_plugins"].(int)
	if totalPlugins != 2 {
		t.Errorf("Expected 2 total plugins, got %d", totalPlugins)
	}

	totalTools := stats["total_tools"].(int)
	if totalTools != 2 {
		t.Errorf("Expected 2 total tools, got %d", totalTools)
	}

	if r.Count() != 2 {
		t.Errorf("Expected count 2, got %d", r.Count())
	}
}
