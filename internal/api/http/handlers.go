package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nagusamecs/opennotes-desktop/host/internal/dispatch"
	"github.com/nagusamecs/opennotes-desktop/host/internal/infrastructure/logging"
	"github.com/nagusamecs/opennotes-desktop/host/internal/infrastructure/monitoring"
	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
)

// Version is reported by the identity and health endpoints.
const Version = "0.1.0"

// Handlers contains all bridge HTTP handlers
type Handlers struct {
	registry *dispatch.Registry
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(registry *dispatch.Registry, metrics *monitoring.Metrics, logger *logging.Logger) *Handlers {
	return &Handlers{
		registry: registry,
		metrics:  metrics,
		logger:   logger,
	}
}

// Root handles the identity check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "opennotes-host",
		"version": Version,
		"plugins": h.registry.Count(),
	})
}

// Health handles the liveness check
func (h *Handlers) Health(c *gin.Context) {
	snapshot := h.metrics.CurrentSnapshot()

	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"version":        Version,
		"uptime_seconds": h.metrics.UptimeSeconds(),
		"plugins":        h.registry.Stats(),
		"requests": gin.H{
			"total":  snapshot.TotalRequests,
			"errors": snapshot.TotalErrors,
		},
	})
}

// Plugins lists registered plugin definitions
func (h *Handlers) Plugins(c *gin.Context) {
	categoryStr := c.Query("category")

	var category *types.Category
	if categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"plugins": h.registry.List(category),
		"stats":   h.registry.Stats(),
	})
}

// Invoke dispatches a webview command through the registry.
// Invocation failures stay inside the result envelope; the HTTP status
// is 200 for anything except a request body that does not parse.
func (h *Handlers) Invoke(c *gin.Context) {
	var req types.InvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invocation := uuid.NewString()
	invCtx := &types.Context{
		Window:     req.Window,
		Invocation: invocation,
	}

	plugin := pluginOf(req.Command)
	timer := monitoring.NewTimer(h.metrics, plugin, req.Command)

	result, err := h.registry.Execute(c.Request.Context(), req.Command, req.Params, invCtx)

	status := "success"
	if err != nil || !result.Success {
		status = "failure"
	}
	timer.Stop(status)

	if err != nil {
		h.metrics.RecordInvocationError(plugin, req.Command, "routing")
		h.logger.Warn("command routing failed",
			zap.String("command", req.Command),
			zap.String("invocation", invocation),
			zap.Error(err),
		)
	} else {
		h.logger.Debug("command dispatched",
			zap.String("command", req.Command),
			zap.String("invocation", invocation),
			zap.Bool("success", result.Success),
		)
	}

	c.JSON(http.StatusOK, result)
}

// pluginOf extracts the plugin ID prefix for metrics labels
func pluginOf(command string) string {
	if idx := strings.Index(command, "."); idx > 0 {
		return command[:idx]
	}
	return command
}
