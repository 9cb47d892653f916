// Package api implements the OpenNotes API proxy plugin.
//
// The OpenNotes web API only answers requests that appear to come from its
// own site. The webview cannot set Origin or Referer itself, so api.fetch
// performs the request host-side with those headers applied and returns a
// transport-agnostic envelope:
//
//	{"status": 200, "body": "...", "ok": true}
//
// ok is true exactly when the status is 2xx; 4xx and 5xx responses are
// successful invocations with ok=false. Only two conditions fail the
// invocation: a transport failure ("Request failed: ...") and a body that
// cannot be decoded as text ("Failed to read body: ...").
package api
