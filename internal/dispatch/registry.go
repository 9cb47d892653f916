package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
)

// Plugin is implemented by every capability plugin
type Plugin interface {
	Definition() types.Plugin
	Execute(ctx context.Context, toolID string, params map[string]interface{}, invCtx *types.Context) (*types.Result, error)
}

// Registry maps plugin IDs to plugins and routes command invocations
type Registry struct {
	plugins sync.Map // map[string]Plugin
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a plugin; a later registration with the same ID wins
func (r *Registry) Register(plugin Plugin) error {
	def := plugin.Definition()
	if def.ID == "" {
		return errors.New("plugin ID cannot be empty")
	}
	r.plugins.Store(def.ID, plugin)
	return nil
}

// Unregister removes a plugin
func (r *Registry) Unregister(id string) {
	r.plugins.Delete(id)
}

// Get returns a plugin by ID
func (r *Registry) Get(id string) (Plugin, bool) {
	val, ok := r.plugins.Load(id)
	if !ok {
		return nil, false
	}
	return val.(Plugin), true
}

// List returns plugin definitions, optionally filtered by category
func (r *Registry) List(category *types.Category) []types.Plugin {
	var defs []types.Plugin
	r.plugins.Range(func(_, value interface{}) bool {
		def := value.(Plugin).Definition()
		if category == nil || def.Category == *category {
			defs = append(defs, def)
		}
		return true
	})
	return defs
}

// Execute routes a command to its plugin. Commands are "plugin.tool";
// everything after the first dot belongs to the tool ID.
func (r *Registry) Execute(ctx context.Context, command string, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	parts := strings.SplitN(command, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		msg := fmt.Sprintf("invalid command format: %s", command)
		return &types.Result{Success: false, Error: &msg}, errors.New(msg)
	}

	plugin, ok := r.Get(parts[0])
	if !ok {
		msg := fmt.Sprintf("plugin not found: %s", parts[0])
		return &types.Result{Success: false, Error: &msg}, errors.New(msg)
	}

	return plugin.Execute(ctx, command, params, invCtx)
}

// Count returns the number of registered plugins
func (r *Registry) Count() int {
	count := 0
	r.plugins.Range(func(_, _ interface{}) bool {
		count++
		return true
	})
	return count
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	totalPlugins := 0
	totalTools := 0
	categories := make(map[string]int)

	r.plugins.Range(func(_, value interface{}) bool {
		def := value.(Plugin).Definition()
		totalPlugins++
		totalTools += len(def.Tools)
		categories[string(def.Category)]++
		return true
	})

	return map[string]interface{}{
		"total_plugins": totalPlugins,
		"total_tools":   totalTools,
		"categories":    categories,
	}
}
