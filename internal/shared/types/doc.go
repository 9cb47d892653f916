// Package types provides shared data structures for the OpenNotes host.
//
// This package defines the types that flow between the bridge, the
// dispatcher, and the capability plugins.
//
// Core Types:
//   - Plugin: Capability plugin definition
//   - Tool: Invocable command descriptor
//   - Context: Per-invocation metadata (window label, invocation ID)
//   - Result: Standard invocation result envelope
//
// Request Types:
//   - InvokeRequest: Command invocation over HTTP
//   - StreamMessage: Command invocation over WebSocket
//
// Parameter helpers (GetString, GetNumber, ...) extract typed values from
// the untyped params map that crosses the bridge.
package types
