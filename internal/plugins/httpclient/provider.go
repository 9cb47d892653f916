package httpclient

import (
	"context"
	"fmt"

	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
)

// Provider implements the general-purpose HTTP client plugin
type Provider struct {
	client *Client
}

// NewProvider creates the http plugin
func NewProvider() *Provider {
	return &Provider{client: NewClient()}
}

// Definition returns plugin metadata
func (p *Provider) Definition() types.Plugin {
	tools := []types.Tool{}
	tools = append(tools, requestTools()...)
	tools = append(tools, configTools()...)

	return types.Plugin{
		ID:          "http",
		Name:        "HTTP Client",
		Description: "General-purpose HTTP client with retry and rate limiting",
		Category:    types.CategoryHTTP,
		Capabilities: []string{
			"requests", "get", "post", "put", "patch", "delete", "head",
			"headers", "timeout", "retry", "rate-limiting",
		},
		Tools: tools,
	}
}

// Execute routes to the matching operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "http.get":
		return p.get(ctx, params)
	case "http.post":
		return p.post(ctx, params)
	case "http.put":
		return p.put(ctx, params)
	case "http.patch":
		return p.patch(ctx, params)
	case "http.delete":
		return p.del(ctx, params)
	case "http.head":
		return p.head(ctx, params)

	case "http.setHeader":
		return p.setHeader(ctx, params)
	case "http.removeHeader":
		return p.removeHeader(ctx, params)
	case "http.getHeaders":
		return p.getHeaders(ctx, params)
	case "http.setTimeout":
		return p.setTimeout(ctx, params)
	case "http.setRetry":
		return p.setRetry(ctx, params)
	case "http.setRateLimit":
		return p.setRateLimit(ctx, params)
	case "http.reset":
		return p.reset(ctx, params)

	default:
		return types.Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}
