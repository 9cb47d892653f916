// Package main is the entry point for the OpenNotes desktop host.
//
// The host is a local process the desktop webview talks to over a
// loopback bridge. It performs the API requests the webview cannot
// (header spoofing), scopes file and store access to the app data
// directory, and runs shell commands on the UI's behalf.
//
// Architecture:
//
//	Webview (UI) → loopback bridge (HTTP + WebSocket) → capability plugins
//
// Configuration:
//   - Environment variables (12-factor), defaults for development
//   - HOST/PORT for the bridge address (default 127.0.0.1:9160)
//   - DATA_DIR for the scoped data root
//   - LOG_DEV=true enables the development log plugin
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
