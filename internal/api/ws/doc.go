// Package ws provides the WebSocket command stream for the webview.
//
// The stream carries the same invocations as POST /invoke but allows
// several commands in flight per connection, correlated by message ID.
//
// Message Types (Client → Server):
//   - invoke: Dispatch a command through the plugin registry
//   - ping: Keep-alive ping
//
// Message Types (Server → Client):
//   - system: Connection established
//   - result: Result envelope for an invoke, echoing its ID
//   - pong: Keep-alive reply
//   - error: Malformed or unknown message
//
// Example Usage:
//
//	handler := ws.NewHandler(registry, metrics, logger)
//	router.GET("/stream", handler.HandleConnection)
package ws
