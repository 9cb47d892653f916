package log

import (
	"context"
	"fmt"
	"time"

	"github.com/nagusamecs/opennotes-desktop/host/internal/infrastructure/logging"
	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
	"go.uber.org/zap"
)

const ringCapacity = 1000

// levelRank orders levels for the minimum-verbosity gate
var levelRank = map[string]int{
	"trace": 0,
	"debug": 1,
	"info":  2,
	"warn":  3,
	"error": 4,
}

// minRank is the Info threshold; anything quieter is dropped
const minRank = 2

// Provider forwards webview log lines into the host logger
type Provider struct {
	logger *logging.Logger
	ring   *Ring
}

// NewProvider creates a log provider writing through logger
func NewProvider(logger *logging.Logger) *Provider {
	return &Provider{
		logger: logger,
		ring:   NewRing(ringCapacity),
	}
}

// Definition returns plugin metadata
func (p *Provider) Definition() types.Plugin {
	messageParam := types.Parameter{Name: "message", Type: "string", Description: "Log message", Required: true}
	contextParam := types.Parameter{Name: "context", Type: "object", Description: "Structured context fields", Required: false}

	levelTool := func(level, description string) types.Tool {
		return types.Tool{
			ID:          "log." + level,
			Name:        "Log " + level,
			Description: description,
			Parameters:  []types.Parameter{messageParam, contextParam},
			Returns:     "boolean",
		}
	}

	return types.Plugin{
		ID:          "log",
		Name:        "Webview Log",
		Description: "Forwards webview log lines into the host log at Info verbosity",
		Category:    types.CategoryLogging,
		Capabilities: []string{
			"forward",
			"tail",
		},
		Tools: []types.Tool{
			levelTool("trace", "Record a trace message (dropped below Info verbosity)"),
			levelTool("debug", "Record a debug message (dropped below Info verbosity)"),
			levelTool("info", "Record an info message"),
			levelTool("warn", "Record a warning"),
			levelTool("error", "Record an error"),
			{
				ID:          "log.tail",
				Name:        "Tail Log",
				Description: "Return recent captured entries, newest first",
				Parameters: []types.Parameter{
					{Name: "limit", Type: "number", Description: "Maximum entries (default 100)", Required: false},
					{Name: "level", Type: "string", Description: "Only entries of this level", Required: false},
				},
				Returns: "array",
			},
		},
	}
}

// Execute routes to the matching operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "log.trace", "log.debug", "log.info", "log.warn", "log.error":
		return p.record(toolID[len("log."):], params, invCtx)
	case "log.tail":
		return p.tail(params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

// record forwards one entry, applying the verbosity gate
func (p *Provider) record(level string, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	message, err := types.GetString(params, "message", true)
	if err != nil {
		return failure(err.Error())
	}

	if levelRank[level] < minRank {
		return success(map[string]interface{}{"logged": false})
	}

	entryCtx := types.GetMap(params, "context")

	window := ""
	if invCtx != nil && invCtx.Window != nil {
		window = *invCtx.Window
	}

	fields := make([]zap.Field, 0, len(entryCtx)+2)
	fields = append(fields, zap.String("source", "webview"))
	if window != "" {
		fields = append(fields, zap.String("window", window))
	}
	for key, value := range entryCtx {
		switch v := value.(type) {
		case string:
			fields = append(fields, zap.String(key, v))
		case int:
			fields = append(fields, zap.Int(key, v))
		case int64:
			fields = append(fields, zap.Int64(key, v))
		case float64:
			fields = append(fields, zap.Float64(key, v))
		case bool:
			fields = append(fields, zap.Bool(key, v))
		default:
			fields = append(fields, zap.Any(key, v))
		}
	}

	switch level {
	case "warn":
		p.logger.Warn(message, fields...)
	case "error":
		p.logger.Error(message, fields...)
	default:
		p.logger.Info(message, fields...)
	}

	p.ring.Add(&Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Window:    window,
		Context:   entryCtx,
	})

	return success(map[string]interface{}{"logged": true})
}

// tail returns recent entries
func (p *Provider) tail(params map[string]interface{}) (*types.Result, error) {
	limit := 100
	if v, ok := types.GetInt(params, "limit"); ok && v > 0 {
		limit = v
	}
	level, _ := types.GetString(params, "level", false)

	entries := p.ring.Recent(limit, level)

	items := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		item := map[string]interface{}{
			"timestamp": e.Timestamp.Format(time.RFC3339Nano),
			"level":     e.Level,
			"message":   e.Message,
		}
		if e.Window != "" {
			item["window"] = e.Window
		}
		if len(e.Context) > 0 {
			item["context"] = e.Context
		}
		items = append(items, item)
	}

	return success(map[string]interface{}{"entries": items, "count": len(items)})
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	errMsg := message
	return &types.Result{Success: false, Error: &errMsg}, nil
}
