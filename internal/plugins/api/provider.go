package api

import (
	"context"
	"fmt"
	"time"

	"github.com/nagusamecs/opennotes-desktop/host/internal/infrastructure/config"
	"github.com/nagusamecs/opennotes-desktop/host/internal/infrastructure/monitoring"
	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
)

// Provider implements the OpenNotes API proxy plugin
type Provider struct {
	client  *Client
	metrics *monitoring.Metrics
}

// NewProvider creates the api plugin. metrics may be nil.
func NewProvider(cfg config.FetchConfig, metrics *monitoring.Metrics) *Provider {
	return &Provider{
		client:  NewClient(cfg),
		metrics: metrics,
	}
}

// Definition returns plugin metadata
func (p *Provider) Definition() types.Plugin {
	return types.Plugin{
		ID:           "api",
		Name:         "OpenNotes API",
		Description:  "Proxied access to the OpenNotes API with the site headers applied",
		Category:     types.CategoryAPI,
		Capabilities: []string{"fetch"},
		Tools: []types.Tool{
			{
				ID:          "api.fetch",
				Name:        "Fetch",
				Description: "Perform an HTTP request carrying the OpenNotes site headers",
				Parameters: []types.Parameter{
					{Name: "url", Type: "string", Description: "Target URL, used as supplied", Required: true},
					{Name: "method", Type: "string", Description: "GET, POST, PUT, or DELETE; anything else means GET", Required: false},
				},
				Returns: "object",
			},
		},
	}
}

// Execute runs a tool by ID
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "api.fetch":
		return p.fetch(ctx, params, invCtx)
	default:
		return types.Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) recordFetch(method, outcome string, duration time.Duration) {
	if p.metrics != nil {
		p.metrics.RecordFetch(method, outcome, duration)
	}
}
