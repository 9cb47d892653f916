package api

import (
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nagusamecs/opennotes-desktop/host/internal/infrastructure/config"
)

// Client is the outbound client for the fetch proxy. Unlike the general
// http plugin it carries no retries, no rate limiting, and no default
// timeout: one invocation is exactly one request on the wire.
type Client struct {
	resty *resty.Client
}

// NewClient creates the proxy client. The spoofed headers are installed as
// client defaults so every outbound request carries them.
func NewClient(cfg config.FetchConfig) *Client {
	c := resty.New().
		SetHeader("Content-Type", cfg.ContentType).
		SetHeader("Origin", cfg.Origin).
		SetHeader("Referer", cfg.Referer)

	if cfg.TimeoutSeconds > 0 {
		c.SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)
	}

	return &Client{resty: c}
}
