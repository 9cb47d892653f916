// Package log lets the webview write into the host's structured log.
//
// The plugin is registered only in development builds. Lines below Info
// verbosity are accepted and dropped; the rest are forwarded to zap with
// their context fields and kept in a ring buffer that log.tail can read
// back for the in-app console.
package log
