package types

// Category groups plugins by capability area
type Category string

const (
	CategoryAPI        Category = "api"
	CategoryFilesystem Category = "filesystem"
	CategoryStorage    Category = "storage"
	CategoryShell      Category = "shell"
	CategoryHTTP       Category = "http"
	CategoryLogging    Category = "logging"
)

// Plugin describes a capability plugin and the tools it exposes
type Plugin struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Capabilities []string `json:"capabilities"`
	Tools        []Tool   `json:"tools"`
}

// Tool describes a single invocable command
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters,omitempty"`
	Returns     string      `json:"returns"`
}

// Parameter describes a tool input
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Context carries per-invocation metadata from the bridge
type Context struct {
	// Window is the label of the webview window that issued the call
	Window *string `json:"window,omitempty"`
	// Invocation is a generated ID used for log and stream correlation
	Invocation string `json:"invocation,omitempty"`
}

// Result is the uniform invocation outcome envelope
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *string                `json:"error,omitempty"`
}

// Success creates a successful result
func Success(data map[string]interface{}) (*Result, error) {
	return &Result{Success: true, Data: data}, nil
}

// Failure creates a failed result
func Failure(message string) (*Result, error) {
	msg := message
	return &Result{Success: false, Error: &msg}, nil
}
