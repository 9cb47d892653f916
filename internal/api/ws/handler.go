package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/nagusamecs/opennotes-desktop/host/internal/dispatch"
	"github.com/nagusamecs/opennotes-desktop/host/internal/infrastructure/logging"
	"github.com/nagusamecs/opennotes-desktop/host/internal/infrastructure/monitoring"
	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The listener is loopback-only and the webview origin
		// (tauri://localhost) would fail the default same-host check.
		return true
	},
}

// Handler manages WebSocket command streams
type Handler struct {
	registry *dispatch.Registry
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(registry *dispatch.Registry, metrics *monitoring.Metrics, logger *logging.Logger) *Handler {
	return &Handler{
		registry: registry,
		metrics:  metrics,
		logger:   logger,
	}
}

// client wraps a connection with serialized writes. Invocations run
// concurrently per message, so replies may interleave.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// HandleConnection handles WebSocket upgrade and the message loop
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.metrics.IncWSConnections()
	defer h.metrics.DecWSConnections()

	cl := &client{conn: conn}
	reqCtx := c.Request.Context()

	h.metrics.RecordWSMessage("out", "system")
	cl.send(map[string]interface{}{
		"type":    "system",
		"message": "Connected to OpenNotes host",
	})

	for {
		var msg types.StreamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read error", zap.Error(err))
			}
			break
		}

		h.metrics.RecordWSMessage("in", msg.Type)

		switch msg.Type {
		case "invoke":
			go h.handleInvoke(cl, msg, reqCtx)
		case "ping":
			h.reply(cl, types.StreamMessage{Type: "pong", ID: msg.ID})
		default:
			h.reply(cl, types.StreamMessage{
				Type:  "error",
				ID:    msg.ID,
				Error: "unknown message type: " + msg.Type,
			})
		}
	}
}

// handleInvoke dispatches one command and sends its result envelope
func (h *Handler) handleInvoke(cl *client, msg types.StreamMessage, reqCtx context.Context) {
	id := msg.ID
	if id == "" {
		id = uuid.NewString()
	}

	if msg.Command == "" {
		h.reply(cl, types.StreamMessage{Type: "error", ID: id, Error: "command required"})
		return
	}

	invCtx := &types.Context{
		Window:     msg.Window,
		Invocation: id,
	}

	ctx, cancel := context.WithTimeout(reqCtx, 2*time.Minute)
	defer cancel()

	result, err := h.registry.Execute(ctx, msg.Command, msg.Params, invCtx)
	if err != nil {
		h.logger.Warn("stream command routing failed",
			zap.String("command", msg.Command),
			zap.String("invocation", id),
			zap.Error(err),
		)
	}

	h.reply(cl, types.StreamMessage{
		Type:   "result",
		ID:     id,
		Result: result,
	})
}

func (h *Handler) reply(cl *client, msg types.StreamMessage) {
	h.metrics.RecordWSMessage("out", msg.Type)
	if err := cl.send(msg); err != nil {
		h.logger.Warn("websocket write failed", zap.Error(err))
	}
}
