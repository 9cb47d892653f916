package types

// InvokeRequest is a command invocation from the webview
type InvokeRequest struct {
	Command string                 `json:"command" binding:"required"`
	Params  map[string]interface{} `json:"params"`
	Window  *string                `json:"window,omitempty"`
}

// StreamMessage is a WebSocket bridge message
type StreamMessage struct {
	Type    string                 `json:"type"`
	ID      string                 `json:"id,omitempty"`
	Command string                 `json:"command,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Window  *string                `json:"window,omitempty"`
	Result  *Result                `json:"result,omitempty"`
	Error   string                 `json:"error,omitempty"`
}
