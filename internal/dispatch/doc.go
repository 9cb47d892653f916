// Package dispatch routes webview command invocations to capability plugins.
//
// A command is "plugin.tool" (e.g. "api.fetch", "store.set"). The registry
// resolves the plugin by the prefix before the first dot and hands the full
// command to the plugin's Execute. Registration and execution are safe for
// concurrent use.
package dispatch
