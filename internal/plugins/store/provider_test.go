package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestStoreDefinition(t *testing.T) {
	provider := NewProvider(t.TempDir())
	def := provider.Definition()

	if def.ID != "store" {
		t.Errorf("Expected ID 'store', got %s", def.ID)
	}
	if len(def.Tools) != 9 {
		t.Errorf("Expected 9 tools, got %d", len(def.Tools))
	}
}

func TestStoreSetGet(t *testing.T) {
	provider := NewProvider(t.TempDir())
	ctx := context.Background()

	result, err := provider.Execute(ctx, "store.set", map[string]interface{}{
		"key":   "theme",
		"value": "dark",
	}, nil)
	if err != nil || !result.Success {
		t.Fatalf("Set failed: %v", err)
	}

	result, err = provider.Execute(ctx, "store.get", map[string]interface{}{
		"key": "theme",
	}, nil)
	if err != nil || !result.Success {
		t.Fatalf("Get failed: %v", err)
	}
	if result.Data["value"].(string) != "dark" {
		t.Errorf("Expected 'dark', got %v", result.Data["value"])
	}
}

func TestStoreGetMissing(t *testing.T) {
	provider := NewProvider(t.TempDir())

	result, err := provider.Execute(context.Background(), "store.get", map[string]interface{}{
		"key": "absent",
	}, nil)
	if err != nil {
		t.Fatalf("Execute errored: %v", err)
	}
	if result.Success {
		t.Error("Expected failure for missing key")
	}
	if result.Error == nil || *result.Error != "key not found: absent" {
		t.Errorf("Unexpected error: %v", result.Error)
	}
}

func TestStoreHasDelete(t *testing.T) {
	provider := NewProvider(t.TempDir())
	ctx := context.Background()

	provider.Execute(ctx, "store.set", map[string]interface{}{"key": "k", "value": 1}, nil)

	result, _ := provider.Execute(ctx, "store.has", map[string]interface{}{"key": "k"}, nil)
	if result.Data["exists"] != true {
		t.Error("Expected key to exist")
	}

	result, _ = provider.Execute(ctx, "store.delete", map[string]interface{}{"key": "k"}, nil)
	if !result.Success || result.Data["deleted"] != true {
		t.Error("Expected delete to report removal")
	}

	result, _ = provider.Execute(ctx, "store.has", map[string]interface{}{"key": "k"}, nil)
	if result.Data["exists"] != false {
		t.Error("Expected key to be gone")
	}

	result, _ = provider.Execute(ctx, "store.delete", map[string]interface{}{"key": "k"}, nil)
	if !result.Success || result.Data["deleted"] != false {
		t.Error("Deleting a missing key should succeed with deleted=false")
	}
}

func TestStoreKeysSorted(t *testing.T) {
	provider := NewProvider(t.TempDir())
	ctx := context.Background()

	for _, k := range []string{"zebra", "apple", "mango"} {
		provider.Execute(ctx, "store.set", map[string]interface{}{"key": k, "value": true}, nil)
	}

	result, _ := provider.Execute(ctx, "store.keys", map[string]interface{}{}, nil)
	keys := result.Data["keys"].([]string)
	if len(keys) != 3 {
		t.Fatalf("Expected 3 keys, got %d", len(keys))
	}
	if keys[0] != "apple" || keys[1] != "mango" || keys[2] != "zebra" {
		t.Errorf("Keys not sorted: %v", keys)
	}
}

func TestStoreEntriesAndClear(t *testing.T) {
	provider := NewProvider(t.TempDir())
	ctx := context.Background()

	provider.Execute(ctx, "store.set", map[string]interface{}{"key": "a", "value": 1}, nil)
	provider.Execute(ctx, "store.set", map[string]interface{}{"key": "b", "value": 2}, nil)

	result, _ := provider.Execute(ctx, "store.entries", map[string]interface{}{}, nil)
	entries := result.Data["entries"].(map[string]interface{})
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	result, _ = provider.Execute(ctx, "store.clear", map[string]interface{}{}, nil)
	if !result.Success {
		t.Fatal("Clear failed")
	}

	result, _ = provider.Execute(ctx, "store.keys", map[string]interface{}{}, nil)
	if result.Data["count"] != 0 {
		t.Errorf("Expected empty store after clear, got %v keys", result.Data["count"])
	}
}

func TestStorePersistence(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first := NewProvider(dir)
	result, _ := first.Execute(ctx, "store.set", map[string]interface{}{
		"key":   "window.width",
		"value": 1280,
	}, nil)
	if !result.Success {
		t.Fatal("Set failed")
	}

	// The document must land on disk under stores/
	if _, err := os.Stat(filepath.Join(dir, "stores", "settings.json")); err != nil {
		t.Fatalf("Expected settings.json on disk: %v", err)
	}

	// A fresh provider simulates a host restart
	second := NewProvider(dir)
	result, _ = second.Execute(ctx, "store.get", map[string]interface{}{
		"key": "window.width",
	}, nil)
	if !result.Success {
		t.Fatal("Get after restart failed")
	}
	if result.Data["value"].(float64) != 1280 {
		t.Errorf("Expected 1280, got %v", result.Data["value"])
	}
}

func TestStoreNamedStores(t *testing.T) {
	provider := NewProvider(t.TempDir())
	ctx := context.Background()

	provider.Execute(ctx, "store.set", map[string]interface{}{
		"key":   "cursor",
		"value": 42,
		"store": "workspace",
	}, nil)

	// Default store must not see workspace keys
	result, _ := provider.Execute(ctx, "store.has", map[string]interface{}{"key": "cursor"}, nil)
	if result.Data["exists"] != false {
		t.Error("Default store should not contain workspace keys")
	}

	result, _ = provider.Execute(ctx, "store.get", map[string]interface{}{
		"key":   "cursor",
		"store": "workspace",
	}, nil)
	if !result.Success {
		t.Fatal("Get from named store failed")
	}

	provider.Execute(ctx, "store.set", map[string]interface{}{"key": "x", "value": 1}, nil)
	result, _ = provider.Execute(ctx, "store.list", map[string]interface{}{}, nil)
	stores := result.Data["stores"].([]string)
	if len(stores) != 2 {
		t.Errorf("Expected 2 stores, got %v", stores)
	}
}

func TestStoreInvalidName(t *testing.T) {
	provider := NewProvider(t.TempDir())

	for _, name := range []string{"../evil", "a/b", "..", "."} {
		result, _ := provider.Execute(context.Background(), "store.get", map[string]interface{}{
			"key":   "k",
			"store": name,
		}, nil)
		if result.Success {
			t.Errorf("Store name %q should be rejected", name)
		}
	}
}

func TestStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	storesDir := filepath.Join(dir, "stores")
	if err := os.MkdirAll(storesDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(storesDir, "broken.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	provider := NewProvider(dir)
	result, _ := provider.Execute(context.Background(), "store.get", map[string]interface{}{
		"key":   "k",
		"store": "broken",
	}, nil)
	if result.Success {
		t.Error("Expected failure reading corrupt store")
	}
}

func TestStoreUnknownTool(t *testing.T) {
	provider := NewProvider(t.TempDir())

	result, _ := provider.Execute(context.Background(), "store.explode", map[string]interface{}{}, nil)
	if result.Success {
		t.Error("Expected failure for unknown tool")
	}
}
