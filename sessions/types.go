package sessions

import (
	"context"
	"sync"

	"github.com/Desarso/hapticvision/models"
	"github.com/Desarso/hapticvision/stores"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// GatewayInterface is what the handlers need from the LLM gateway. Declared
// here to avoid an import cycle with the root package.
type GatewayInterface interface {
	Chat(ctx context.Context, message string) (string, error)
	CallTool(ctx context.Context, message string) (*models.ToolCallResult, error)
}

// internalErrorMessage is the only error text a gateway failure ever exposes.
const internalErrorMessage = "internal server error"

// RequestIDHeader carries the per-request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// HTTPSession serves the chatbot endpoints.
type HTTPSession struct {
	Gateway GatewayInterface
	// Health is pinged by /health when set. Nil when tracing is disabled.
	Health stores.Pinger
	Logger zerolog.Logger
}

// WebSocketWriter handles all WebSocket communication
type WebSocketWriter struct {
	Conn *websocket.Conn
	mu   sync.Mutex
}

// WriteResponse sends v as one JSON frame. A nil *models.ToolCallResult is
// written as null.
func (w *WebSocketWriter) WriteResponse(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Conn.WriteJSON(v)
}

func (w *WebSocketWriter) WriteError(message string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Conn.WriteJSON(models.ErrorResponse{Error: message})
}

// WebSocketSession answers tool-calling frames on one connection. Each frame
// is handled independently; nothing carries over between frames.
type WebSocketSession struct {
	Gateway GatewayInterface
	Writer  *WebSocketWriter
	Logger  zerolog.Logger
}
