package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
)

// DefaultStore is used when invocations omit the store parameter
const DefaultStore = "settings"

// Provider implements named key-value stores persisted as JSON documents
type Provider struct {
	manager *manager
}

// NewProvider creates a store provider rooted under dataDir
func NewProvider(dataDir string) *Provider {
	return &Provider{manager: newManager(filepath.Join(dataDir, "stores"))}
}

// Definition returns plugin metadata
func (p *Provider) Definition() types.Plugin {
	storeParam := types.Parameter{Name: "store", Type: "string", Description: "Store name (default settings)", Required: false}

	return types.Plugin{
		ID:          "store",
		Name:        "Key-Value Store",
		Description: "Named JSON-backed key-value stores for app state",
		Category:    types.CategoryStorage,
		Capabilities: []string{
			"get",
			"set",
			"delete",
			"persist",
		},
		Tools: []types.Tool{
			{
				ID:          "store.get",
				Name:        "Get Value",
				Description: "Get a stored value by key",
				Parameters: []types.Parameter{
					{Name: "key", Type: "string", Description: "Entry key", Required: true},
					storeParam,
				},
				Returns: "any",
			},
			{
				ID:          "store.set",
				Name:        "Set Value",
				Description: "Store a value under a key",
				Parameters: []types.Parameter{
					{Name: "key", Type: "string", Description: "Entry key", Required: true},
					{Name: "value", Type: "any", Description: "Value to store", Required: true},
					storeParam,
				},
				Returns: "boolean",
			},
			{
				ID:          "store.has",
				Name:        "Has Key",
				Description: "Check whether a key exists",
				Parameters: []types.Parameter{
					{Name: "key", Type: "string", Description: "Entry key", Required: true},
					storeParam,
				},
				Returns: "boolean",
			},
			{
				ID:          "store.delete",
				Name:        "Delete Key",
				Description: "Remove a key from the store",
				Parameters: []types.Parameter{
					{Name: "key", Type: "string", Description: "Entry key", Required: true},
					storeParam,
				},
				Returns: "boolean",
			},
			{
				ID:          "store.keys",
				Name:        "List Keys",
				Description: "List all keys in the store",
				Parameters:  []types.Parameter{storeParam},
				Returns:     "array",
			},
			{
				ID:          "store.entries",
				Name:        "List Entries",
				Description: "Get all entries in the store",
				Parameters:  []types.Parameter{storeParam},
				Returns:     "object",
			},
			{
				ID:          "store.clear",
				Name:        "Clear Store",
				Description: "Remove every entry from the store",
				Parameters:  []types.Parameter{storeParam},
				Returns:     "boolean",
			},
			{
				ID:          "store.save",
				Name:        "Save Store",
				Description: "Flush the store to disk",
				Parameters:  []types.Parameter{storeParam},
				Returns:     "boolean",
			},
			{
				ID:          "store.list",
				Name:        "List Stores",
				Description: "List all known store names",
				Parameters:  []types.Parameter{},
				Returns:     "array",
			},
		},
	}
}

// Execute runs a store operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "store.get":
		return p.get(params)
	case "store.set":
		return p.set(params)
	case "store.has":
		return p.has(params)
	case "store.delete":
		return p.delete(params)
	case "store.keys":
		return p.keys(params)
	case "store.entries":
		return p.entries(params)
	case "store.clear":
		return p.clear(params)
	case "store.save":
		return p.save(params)
	case "store.list":
		return p.list()
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

// storeDoc resolves the target document from invocation parameters
func (p *Provider) storeDoc(params map[string]interface{}) (string, *document, error) {
	name, _ := types.GetString(params, "store", false)
	if name == "" {
		name = DefaultStore
	}
	if !validName(name) {
		return "", nil, fmt.Errorf("invalid store name: %s", name)
	}

	doc, err := p.manager.get(name)
	if err != nil {
		return "", nil, err
	}
	return name, doc, nil
}

func (p *Provider) get(params map[string]interface{}) (*types.Result, error) {
	key, err := types.GetString(params, "key", true)
	if err != nil {
		return failure(err.Error())
	}

	_, doc, err := p.storeDoc(params)
	if err != nil {
		return failure(err.Error())
	}

	doc.mu.RLock()
	value, ok := doc.entries[key]
	doc.mu.RUnlock()

	if !ok {
		return failure(fmt.Sprintf("key not found: %s", key))
	}
	return success(map[string]interface{}{"key": key, "value": value})
}

func (p *Provider) set(params map[string]interface{}) (*types.Result, error) {
	key, err := types.GetString(params, "key", true)
	if err != nil {
		return failure(err.Error())
	}
	value, ok := params["value"]
	if !ok {
		return failure("value parameter required")
	}

	name, doc, err := p.storeDoc(params)
	if err != nil {
		return failure(err.Error())
	}

	doc.mu.Lock()
	defer doc.mu.Unlock()
	doc.entries[key] = value
	if err := p.manager.persist(name, doc); err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{"stored": true, "key": key, "store": name})
}

func (p *Provider) has(params map[string]interface{}) (*types.Result, error) {
	key, err := types.GetString(params, "key", true)
	if err != nil {
		return failure(err.Error())
	}

	_, doc, err := p.storeDoc(params)
	if err != nil {
		return failure(err.Error())
	}

	doc.mu.RLock()
	_, ok := doc.entries[key]
	doc.mu.RUnlock()

	return success(map[string]interface{}{"key": key, "exists": ok})
}

func (p *Provider) delete(params map[string]interface{}) (*types.Result, error) {
	key, err := types.GetString(params, "key", true)
	if err != nil {
		return failure(err.Error())
	}

	name, doc, err := p.storeDoc(params)
	if err != nil {
		return failure(err.Error())
	}

	doc.mu.Lock()
	defer doc.mu.Unlock()
	_, existed := doc.entries[key]
	delete(doc.entries, key)
	if err := p.manager.persist(name, doc); err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{"deleted": existed, "key": key})
}

func (p *Provider) keys(params map[string]interface{}) (*types.Result, error) {
	name, doc, err := p.storeDoc(params)
	if err != nil {
		return failure(err.Error())
	}

	doc.mu.RLock()
	keys := make([]string, 0, len(doc.entries))
	for key := range doc.entries {
		keys = append(keys, key)
	}
	doc.mu.RUnlock()
	sort.Strings(keys)

	return success(map[string]interface{}{"store": name, "keys": keys, "count": len(keys)})
}

func (p *Provider) entries(params map[string]interface{}) (*types.Result, error) {
	name, doc, err := p.storeDoc(params)
	if err != nil {
		return failure(err.Error())
	}

	doc.mu.RLock()
	copied := make(map[string]interface{}, len(doc.entries))
	for key, value := range doc.entries {
		copied[key] = value
	}
	doc.mu.RUnlock()

	return success(map[string]interface{}{"store": name, "entries": copied, "count": len(copied)})
}

func (p *Provider) clear(params map[string]interface{}) (*types.Result, error) {
	name, doc, err := p.storeDoc(params)
	if err != nil {
		return failure(err.Error())
	}

	doc.mu.Lock()
	defer doc.mu.Unlock()
	doc.entries = make(map[string]interface{})
	if err := p.manager.persist(name, doc); err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{"cleared": true, "store": name})
}

func (p *Provider) save(params map[string]interface{}) (*types.Result, error) {
	name, doc, err := p.storeDoc(params)
	if err != nil {
		return failure(err.Error())
	}

	doc.mu.Lock()
	defer doc.mu.Unlock()
	if err := p.manager.persist(name, doc); err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{"saved": true, "store": name})
}

func (p *Provider) list() (*types.Result, error) {
	names := p.manager.names()
	sort.Strings(names)
	return success(map[string]interface{}{"stores": names, "count": len(names)})
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	errMsg := message
	return &types.Result{Success: false, Error: &errMsg}, nil
}
