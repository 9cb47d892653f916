// Package httpclient implements the http plugin: the host's full-featured
// outbound client for UI features that talk to arbitrary services.
//
// The client retries transient failures with exponential backoff and can be
// rate limited from the webview. Default headers, timeout, retry policy,
// and rate limit are adjustable at runtime through the http.* config tools.
//
// api.fetch deliberately does not share this client; the proxy command
// performs exactly one request per invocation.
package httpclient
