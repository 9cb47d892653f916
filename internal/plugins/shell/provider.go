package shell

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/nagusamecs/opennotes-desktop/host/internal/infrastructure/config"
	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
)

// Provider implements command execution and interactive shell sessions
type Provider struct {
	manager        *Manager
	dataDir        string
	timeoutSeconds int
	opener         func(target string) error
}

// NewProvider creates a shell provider working out of dataDir
func NewProvider(cfg config.ShellConfig, dataDir string) *Provider {
	return &Provider{
		manager:        NewManager(dataDir),
		dataDir:        dataDir,
		timeoutSeconds: cfg.TimeoutSeconds,
		opener:         systemOpener,
	}
}

// Close terminates all interactive sessions
func (p *Provider) Close() {
	p.manager.CloseAll()
}

// Definition returns plugin metadata
func (p *Provider) Definition() types.Plugin {
	return types.Plugin{
		ID:          "shell",
		Name:        "Shell",
		Description: "One-shot commands, desktop open and interactive PTY sessions",
		Category:    types.CategoryShell,
		Capabilities: []string{
			"execute",
			"open",
			"pty",
			"sessions",
		},
		Tools: []types.Tool{
			{
				ID:          "shell.execute",
				Name:        "Execute Command",
				Description: "Run a command and capture stdout, stderr and exit code",
				Parameters: []types.Parameter{
					{Name: "command", Type: "string", Description: "Command line to run", Required: true},
					{Name: "cwd", Type: "string", Description: "Working directory inside the data directory", Required: false},
					{Name: "timeout", Type: "number", Description: "Timeout in seconds (default from config)", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "shell.open",
				Name:        "Open",
				Description: "Open a file or URL with the desktop default handler",
				Parameters: []types.Parameter{
					{Name: "target", Type: "string", Description: "File path or URL", Required: true},
				},
				Returns: "boolean",
			},
			{
				ID:          "shell.spawn",
				Name:        "Spawn Session",
				Description: "Start an interactive shell session with PTY",
				Parameters: []types.Parameter{
					{Name: "shell", Type: "string", Description: "Shell binary (defaults to $SHELL)", Required: false},
					{Name: "cwd", Type: "string", Description: "Initial working directory", Required: false},
					{Name: "cols", Type: "number", Description: "Terminal width (default 80)", Required: false},
					{Name: "rows", Type: "number", Description: "Terminal height (default 24)", Required: false},
					{Name: "env", Type: "object", Description: "Extra environment variables", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "shell.write",
				Name:        "Write to Session",
				Description: "Send input to an interactive session",
				Parameters: []types.Parameter{
					{Name: "session_id", Type: "string", Description: "Session ID", Required: true},
					{Name: "input", Type: "string", Description: "Input to send", Required: true},
				},
				Returns: "boolean",
			},
			{
				ID:          "shell.read",
				Name:        "Read from Session",
				Description: "Drain buffered output from a session",
				Parameters: []types.Parameter{
					{Name: "session_id", Type: "string", Description: "Session ID", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "shell.resize",
				Name:        "Resize Session",
				Description: "Change session terminal dimensions",
				Parameters: []types.Parameter{
					{Name: "session_id", Type: "string", Description: "Session ID", Required: true},
					{Name: "cols", Type: "number", Description: "New width", Required: true},
					{Name: "rows", Type: "number", Description: "New height", Required: true},
				},
				Returns: "boolean",
			},
			{
				ID:          "shell.status",
				Name:        "Session Status",
				Description: "Get info for one session",
				Parameters: []types.Parameter{
					{Name: "session_id", Type: "string", Description: "Session ID", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "shell.kill",
				Name:        "Kill Session",
				Description: "Terminate a session",
				Parameters: []types.Parameter{
					{Name: "session_id", Type: "string", Description: "Session ID", Required: true},
				},
				Returns: "boolean",
			},
			{
				ID:          "shell.list",
				Name:        "List Sessions",
				Description: "List all sessions",
				Parameters:  []types.Parameter{},
				Returns:     "array",
			},
		},
	}
}

// Execute routes to the matching operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "shell.execute":
		return p.execute(ctx, params)
	case "shell.open":
		return p.open(params)
	case "shell.spawn":
		return p.spawn(params)
	case "shell.write":
		return p.write(params)
	case "shell.read":
		return p.read(params)
	case "shell.resize":
		return p.resize(params)
	case "shell.status":
		return p.status(params)
	case "shell.kill":
		return p.kill(params)
	case "shell.list":
		return p.list()
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) spawn(params map[string]interface{}) (*types.Result, error) {
	shellBin, _ := types.GetString(params, "shell", false)

	cwd, _ := types.GetString(params, "cwd", false)
	if cwd != "" {
		scoped, err := p.scopePath(cwd)
		if err != nil {
			return failure(err.Error())
		}
		cwd = scoped
	}

	cols := 80
	if v, ok := types.GetInt(params, "cols"); ok && v > 0 {
		cols = v
	}
	rows := 24
	if v, ok := types.GetInt(params, "rows"); ok && v > 0 {
		rows = v
	}

	env := make(map[string]string)
	for k, v := range types.GetMap(params, "env") {
		if str, ok := v.(string); ok {
			env[k] = str
		}
	}

	info, err := p.manager.CreateSession(shellBin, cwd, cols, rows, env)
	if err != nil {
		return failure(err.Error())
	}

	return success(sessionData(*info))
}

func (p *Provider) write(params map[string]interface{}) (*types.Result, error) {
	sessionID, err := types.GetString(params, "session_id", true)
	if err != nil {
		return failure(err.Error())
	}
	input, err := types.GetString(params, "input", true)
	if err != nil {
		return failure(err.Error())
	}

	if err := p.manager.Write(sessionID, []byte(input)); err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{"written": true})
}

func (p *Provider) read(params map[string]interface{}) (*types.Result, error) {
	sessionID, err := types.GetString(params, "session_id", true)
	if err != nil {
		return failure(err.Error())
	}

	output, err := p.manager.Read(sessionID)
	if err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"output":        string(output),
		"output_base64": base64.StdEncoding.EncodeToString(output),
		"length":        len(output),
	})
}

func (p *Provider) resize(params map[string]interface{}) (*types.Result, error) {
	sessionID, err := types.GetString(params, "session_id", true)
	if err != nil {
		return failure(err.Error())
	}

	cols, _ := types.GetInt(params, "cols")
	rows, _ := types.GetInt(params, "rows")
	if cols <= 0 || rows <= 0 {
		return failure("cols and rows must be positive")
	}

	if err := p.manager.Resize(sessionID, cols, rows); err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{"resized": true, "cols": cols, "rows": rows})
}

func (p *Provider) status(params map[string]interface{}) (*types.Result, error) {
	sessionID, err := types.GetString(params, "session_id", true)
	if err != nil {
		return failure(err.Error())
	}

	info, err := p.manager.Status(sessionID)
	if err != nil {
		return failure(err.Error())
	}

	return success(sessionData(*info))
}

func (p *Provider) kill(params map[string]interface{}) (*types.Result, error) {
	sessionID, err := types.GetString(params, "session_id", true)
	if err != nil {
		return failure(err.Error())
	}

	if err := p.manager.Kill(sessionID); err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{"killed": true})
}

func (p *Provider) list() (*types.Result, error) {
	sessions := p.manager.List()

	items := make([]map[string]interface{}, 0, len(sessions))
	for _, info := range sessions {
		items = append(items, sessionData(info))
	}

	return success(map[string]interface{}{"sessions": items, "count": len(items)})
}

func sessionData(info SessionInfo) map[string]interface{} {
	return map[string]interface{}{
		"id":          info.ID,
		"shell":       info.Shell,
		"working_dir": info.WorkingDir,
		"cols":        info.Cols,
		"rows":        info.Rows,
		"started_at":  info.StartedAt,
		"active":      info.Active,
	}
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	errMsg := message
	return &types.Result{Success: false, Error: &errMsg}, nil
}
