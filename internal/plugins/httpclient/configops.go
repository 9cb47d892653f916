package httpclient

import (
	"context"
	"time"

	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
)

func configTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "http.setHeader",
			Name:        "Set Default Header",
			Description: "Set a header sent on every request",
			Parameters: []types.Parameter{
				{Name: "key", Type: "string", Description: "Header name", Required: true},
				{Name: "value", Type: "string", Description: "Header value", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "http.removeHeader",
			Name:        "Remove Default Header",
			Description: "Remove a default header",
			Parameters: []types.Parameter{
				{Name: "key", Type: "string", Description: "Header name", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "http.getHeaders",
			Name:        "Get Default Headers",
			Description: "List the headers sent on every request",
			Returns:     "object",
		},
		{
			ID:          "http.setTimeout",
			Name:        "Set Timeout",
			Description: "Set the request timeout in seconds",
			Parameters: []types.Parameter{
				{Name: "seconds", Type: "number", Description: "Timeout in seconds", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "http.setRetry",
			Name:        "Set Retry Policy",
			Description: "Configure retry count and wait bounds",
			Parameters: []types.Parameter{
				{Name: "max_retries", Type: "number", Description: "Maximum retry attempts", Required: true},
				{Name: "min_wait", Type: "number", Description: "Minimum wait seconds", Required: false},
				{Name: "max_wait", Type: "number", Description: "Maximum wait seconds", Required: false},
			},
			Returns: "boolean",
		},
		{
			ID:          "http.setRateLimit",
			Name:        "Set Rate Limit",
			Description: "Limit outbound requests per second (0 disables)",
			Parameters: []types.Parameter{
				{Name: "rps", Type: "number", Description: "Requests per second", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "http.reset",
			Name:        "Reset Client",
			Description: "Restore default headers, timeout, retry, and rate limit",
			Returns:     "boolean",
		},
	}
}

// setHeader sets a default header
func (p *Provider) setHeader(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	key, err := types.GetString(params, "key", true)
	if err != nil {
		return types.Failure(err.Error())
	}
	value, err := types.GetString(params, "value", true)
	if err != nil {
		return types.Failure(err.Error())
	}

	p.client.SetHeader(key, value)
	return types.Success(map[string]interface{}{"set": true, "key": key})
}

// removeHeader removes a default header
func (p *Provider) removeHeader(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	key, err := types.GetString(params, "key", true)
	if err != nil {
		return types.Failure(err.Error())
	}

	p.client.RemoveHeader(key)
	return types.Success(map[string]interface{}{"removed": true, "key": key})
}

// getHeaders lists default headers
func (p *Provider) getHeaders(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	headers := p.client.Headers()
	out := make(map[string]interface{}, len(headers))
	for k, v := range headers {
		out[k] = v
	}
	return types.Success(map[string]interface{}{"headers": out})
}

// setTimeout sets the request timeout
func (p *Provider) setTimeout(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	seconds, err := types.GetNumber(params, "seconds", true)
	if err != nil {
		return types.Failure(err.Error())
	}
	if seconds < 0 {
		return types.Failure("seconds must not be negative")
	}

	p.client.SetTimeout(time.Duration(seconds * float64(time.Second)))
	return types.Success(map[string]interface{}{"timeout_seconds": seconds})
}

// setRetry configures the retry policy
func (p *Provider) setRetry(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	maxRetries, err := types.GetNumber(params, "max_retries", true)
	if err != nil {
		return types.Failure(err.Error())
	}
	if maxRetries < 0 {
		return types.Failure("max_retries must not be negative")
	}

	minWait, err := types.GetNumber(params, "min_wait", false)
	if err != nil {
		return types.Failure(err.Error())
	}
	if minWait <= 0 {
		minWait = 1
	}

	maxWait, err := types.GetNumber(params, "max_wait", false)
	if err != nil {
		return types.Failure(err.Error())
	}
	if maxWait <= 0 {
		maxWait = 30
	}

	p.client.SetRetry(
		int(maxRetries),
		time.Duration(minWait*float64(time.Second)),
		time.Duration(maxWait*float64(time.Second)),
	)
	return types.Success(map[string]interface{}{"max_retries": int(maxRetries)})
}

// setRateLimit configures client-side rate limiting
func (p *Provider) setRateLimit(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	rps, err := types.GetNumber(params, "rps", true)
	if err != nil {
		return types.Failure(err.Error())
	}

	p.client.SetRateLimit(rps)
	return types.Success(map[string]interface{}{"rps": rps})
}

// reset restores client defaults
func (p *Provider) reset(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	p.client.Reset()
	return types.Success(map[string]interface{}{"reset": true})
}
