package httpclient

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

const userAgent = "OpenNotesHost-HTTP/1.0"

// Client wraps resty with a retrying transport and client-side rate limiting
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	mu      sync.RWMutex
}

// NewClient creates the general-purpose outbound client
func NewClient() *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 30 * time.Second
	retryClient.Logger = nil

	restyClient := resty.New()
	restyClient.
		SetTimeout(30*time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1*time.Second).
		SetRetryMaxWaitTime(30*time.Second).
		SetHeader("User-Agent", userAgent)

	restyClient.SetTransport(retryClient.HTTPClient.Transport)

	return &Client{
		resty:   restyClient,
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
}

// Request creates a new request after passing the rate limiter
func (c *Client) Request(ctx context.Context) (*resty.Request, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resty.R().SetContext(ctx), nil
}

// SetHeader adds a default header
func (c *Client) SetHeader(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resty.SetHeader(key, value)
}

// RemoveHeader removes a default header
func (c *Client) RemoveHeader(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resty.Header.Del(key)
}

// Headers returns a copy of all default headers
func (c *Client) Headers() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	headers := make(map[string]string)
	for k, v := range c.resty.Header {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	return headers
}

// SetTimeout configures the request timeout
func (c *Client) SetTimeout(duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resty.SetTimeout(duration)
}

// SetRetry configures retry behavior
func (c *Client) SetRetry(maxRetries int, minWait, maxWait time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resty.SetRetryCount(maxRetries).
		SetRetryWaitTime(minWait).
		SetRetryMaxWaitTime(maxWait)
}

// SetRateLimit configures client-side rate limiting in requests per second.
// Zero or negative disables the limit.
func (c *Client) SetRateLimit(rps float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rps <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 0)
	} else {
		c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps))
	}
}

// Reset restores default headers, timeout, retry, and rate limit
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resty.Header = map[string][]string{}
	c.resty.
		SetTimeout(30*time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1*time.Second).
		SetRetryMaxWaitTime(30*time.Second).
		SetHeader("User-Agent", userAgent)
	c.limiter = rate.NewLimiter(rate.Inf, 0)
}

// responseToMap converts a resty response to an invocation data map
func responseToMap(resp *resty.Response) map[string]interface{} {
	result := map[string]interface{}{
		"status":      resp.StatusCode(),
		"status_text": resp.Status(),
		"body":        resp.String(),
		"size":        len(resp.Body()),
		"time":        resp.Time().Milliseconds(),
	}

	headers := make(map[string]string)
	for k, v := range resp.Header() {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	result["headers"] = headers

	// Parsed body for JSON responses, best effort
	if ct := resp.Header().Get("Content-Type"); len(resp.Body()) > 0 && strings.HasPrefix(ct, "application/json") {
		var parsed interface{}
		if err := sonic.Unmarshal(resp.Body(), &parsed); err == nil {
			result["json"] = parsed
		}
	}

	return result
}
