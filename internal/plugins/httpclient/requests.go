package httpclient

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
)

func requestTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "http.get",
			Name:        "HTTP GET",
			Description: "Fetch data from URL with optional headers and query params",
			Parameters: []types.Parameter{
				{Name: "url", Type: "string", Description: "Request URL", Required: true},
				{Name: "params", Type: "object", Description: "Query parameters", Required: false},
				{Name: "headers", Type: "object", Description: "HTTP headers", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "http.post",
			Name:        "HTTP POST",
			Description: "Send data to URL",
			Parameters: []types.Parameter{
				{Name: "url", Type: "string", Description: "Request URL", Required: true},
				{Name: "data", Type: "object", Description: "Request body", Required: true},
				{Name: "headers", Type: "object", Description: "HTTP headers", Required: false},
				{Name: "json", Type: "boolean", Description: "Send as JSON (default: true)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "http.put",
			Name:        "HTTP PUT",
			Description: "Replace resource at URL",
			Parameters: []types.Parameter{
				{Name: "url", Type: "string", Description: "Request URL", Required: true},
				{Name: "data", Type: "object", Description: "Request body", Required: true},
				{Name: "headers", Type: "object", Description: "HTTP headers", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "http.patch",
			Name:        "HTTP PATCH",
			Description: "Partially update resource at URL",
			Parameters: []types.Parameter{
				{Name: "url", Type: "string", Description: "Request URL", Required: true},
				{Name: "data", Type: "object", Description: "Request body", Required: true},
				{Name: "headers", Type: "object", Description: "HTTP headers", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "http.delete",
			Name:        "HTTP DELETE",
			Description: "Delete resource at URL",
			Parameters: []types.Parameter{
				{Name: "url", Type: "string", Description: "Request URL", Required: true},
				{Name: "headers", Type: "object", Description: "HTTP headers", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "http.head",
			Name:        "HTTP HEAD",
			Description: "Get headers without downloading the body",
			Parameters: []types.Parameter{
				{Name: "url", Type: "string", Description: "Request URL", Required: true},
				{Name: "headers", Type: "object", Description: "HTTP headers", Required: false},
			},
			Returns: "object",
		},
	}
}

// get executes an HTTP GET request
func (p *Provider) get(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	urlStr, err := types.GetString(params, "url", true)
	if err != nil {
		return types.Failure(err.Error())
	}

	req, err := p.client.Request(ctx)
	if err != nil {
		return types.Failure(err.Error())
	}

	if queryParams := types.GetMap(params, "params"); queryParams != nil {
		for k, v := range queryParams {
			req.SetQueryParam(k, fmt.Sprint(v))
		}
	}
	applyHeaders(req, params)

	resp, err := req.Get(urlStr)
	if err != nil {
		return types.Failure(fmt.Sprintf("request failed: %v", err))
	}

	return types.Success(responseToMap(resp))
}

// post executes an HTTP POST request
func (p *Provider) post(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	return p.sendWithBody(ctx, params, "POST")
}

// put executes an HTTP PUT request
func (p *Provider) put(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	return p.sendWithBody(ctx, params, "PUT")
}

// patch executes an HTTP PATCH request
func (p *Provider) patch(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	return p.sendWithBody(ctx, params, "PATCH")
}

// del executes an HTTP DELETE request
func (p *Provider) del(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	urlStr, err := types.GetString(params, "url", true)
	if err != nil {
		return types.Failure(err.Error())
	}

	req, err := p.client.Request(ctx)
	if err != nil {
		return types.Failure(err.Error())
	}
	applyHeaders(req, params)

	resp, err := req.Delete(urlStr)
	if err != nil {
		return types.Failure(fmt.Sprintf("request failed: %v", err))
	}

	return types.Success(responseToMap(resp))
}

// head executes an HTTP HEAD request
func (p *Provider) head(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	urlStr, err := types.GetString(params, "url", true)
	if err != nil {
		return types.Failure(err.Error())
	}

	req, err := p.client.Request(ctx)
	if err != nil {
		return types.Failure(err.Error())
	}
	applyHeaders(req, params)

	resp, err := req.Head(urlStr)
	if err != nil {
		return types.Failure(fmt.Sprintf("request failed: %v", err))
	}

	return types.Success(responseToMap(resp))
}

// sendWithBody handles the body-carrying methods
func (p *Provider) sendWithBody(ctx context.Context, params map[string]interface{}, method string) (*types.Result, error) {
	urlStr, err := types.GetString(params, "url", true)
	if err != nil {
		return types.Failure(err.Error())
	}

	data, ok := params["data"]
	if !ok || data == nil {
		return types.Failure("data parameter required")
	}

	req, err := p.client.Request(ctx)
	if err != nil {
		return types.Failure(err.Error())
	}
	applyHeaders(req, params)

	if types.GetBool(params, "json", true) {
		req.SetBody(data)
	} else {
		dataMap, ok := data.(map[string]interface{})
		if !ok {
			return types.Failure("data must be object for form encoding")
		}
		formData := make(map[string]string)
		for k, v := range dataMap {
			formData[k] = fmt.Sprint(v)
		}
		req.SetFormData(formData)
	}

	resp, err := req.Execute(method, urlStr)
	if err != nil {
		return types.Failure(fmt.Sprintf("request failed: %v", err))
	}

	return types.Success(responseToMap(resp))
}

func applyHeaders(req *resty.Request, params map[string]interface{}) {
	if headers := types.GetMap(params, "headers"); headers != nil {
		for k, v := range headers {
			req.SetHeader(k, fmt.Sprint(v))
		}
	}
}
