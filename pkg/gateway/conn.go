package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/n0ko/monty/pkg/events"
	"github.com/n0ko/monty/pkg/gateway/middleware"
	"github.com/n0ko/monty/pkg/telemetry/metrics"
)

// TaskRunner executes one chat task against the upstream and emits its
// frames to the sink. Run blocks until the task's terminal frame has
// been emitted (or the emit itself failed).
type TaskRunner interface {
	Run(ctx context.Context, conversationID, message, taskID string, sink events.Sink) error
}

// wsSink writes outbound frames to one websocket connection. Gorilla
// permits a single concurrent writer, so writes are serialized here.
type wsSink struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// Emit implements events.Sink.
func (s *wsSink) Emit(frame events.OutboundFrame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(frame)
}

// ChatHandler upgrades HTTP requests to websocket connections and owns
// each connection end-to-end: one read loop, one task at a time.
type ChatHandler struct {
	runner   TaskRunner
	metrics  *metrics.Metrics
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewChatHandler creates a chat handler over the given runner. The
// metrics collector may be nil.
func NewChatHandler(runner TaskRunner, m *metrics.Metrics) *ChatHandler {
	return &ChatHandler{
		runner:  runner,
		metrics: m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Origin policy is handled by the CORS middleware; the
			// upgrade itself accepts any origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: slog.Default().With("component", "gateway"),
	}
}

// ServeHTTP implements http.Handler.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error response.
		h.logger.Warn("websocket upgrade failed",
			"error", err,
			"remote_addr", r.RemoteAddr,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.ConnOpened()
		defer h.metrics.ConnClosed()
	}

	h.logger.Info("connection opened",
		"remote_addr", conn.RemoteAddr().String(),
		"request_id", middleware.GetRequestID(r.Context()),
	)

	// Cancelling this context when the loop exits aborts any upstream
	// call the bridge still has in flight for this connection.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	h.serve(ctx, conn)

	h.logger.Info("connection closed", "remote_addr", conn.RemoteAddr().String())
}

// serve runs the connection's read loop until the peer disconnects.
func (h *ChatHandler) serve(ctx context.Context, conn *websocket.Conn) {
	sink := &wsSink{conn: conn}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("connection read failed", "error", err)
			}
			return
		}

		var frame events.InboundFrame
		if err := json.Unmarshal(payload, &frame); err != nil {
			// Parse failures happen before any conversation is
			// resolved, so the error frame carries a null one. The
			// connection stays open.
			h.logger.Warn("malformed inbound frame", "error", err)
			if err := sink.Emit(events.NewParseErrorEvent(uuid.NewString(), "invalid JSON payload")); err != nil {
				return
			}
			continue
		}

		conversationID := frame.ConversationID
		if conversationID == "" {
			conversationID = uuid.NewString()
		}
		taskID := uuid.NewString()

		message := strings.TrimSpace(frame.Message)
		if message == "" {
			if err := sink.Emit(events.NewErrorEvent(taskID, conversationID, "message must not be empty")); err != nil {
				return
			}
			continue
		}

		// Sequential by construction: the next frame is not read until
		// the runner has emitted this task's terminal frame.
		if err := h.runner.Run(ctx, conversationID, message, taskID, sink); err != nil {
			h.logger.Debug("task ended with error",
				"task_id", taskID,
				"conversation_id", conversationID,
				"error", err,
			)
		}
	}
}
