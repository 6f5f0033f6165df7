package sessions

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Desarso/hapticvision/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// maxFrameSize bounds a single inbound frame. Larger frames close the
// connection with 1009.
const maxFrameSize = 64 << 10

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The mobile app connects from arbitrary origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades the connection and serves tool-calling frames
// until the client disconnects.
func (s *HTTPSession) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.Logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	logger := s.Logger.With().Str("connection_id", models.RequestIDFrom(c.Request.Context())).Logger()
	session := NewWebSocketSession(conn, s.Gateway, logger)
	session.Run(c.Request.Context())
}

// Run reads frames until the connection closes. Each frame is a ChatRequest
// and gets exactly one reply: the tool call, null, or an error object.
func (ws *WebSocketSession) Run(ctx context.Context) {
	defer ws.Writer.Conn.Close()
	ws.Writer.Conn.SetReadLimit(maxFrameSize)
	ws.Logger.Info().Msg("websocket connected")

	for {
		_, data, err := ws.Writer.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				ws.Logger.Warn().Err(err).Msg("websocket closed unexpectedly")
			} else {
				ws.Logger.Info().Msg("websocket disconnected")
			}
			return
		}

		if err := ws.handleFrame(ctx, data); err != nil {
			ws.Logger.Error().Err(err).Msg("failed to write websocket frame")
			return
		}
	}
}

// handleFrame returns an error only when the reply could not be written.
func (ws *WebSocketSession) handleFrame(ctx context.Context, data []byte) error {
	var req models.ChatRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return ws.Writer.WriteError("invalid request: " + err.Error())
	}
	if req.Message == nil {
		return ws.Writer.WriteError("message is required")
	}

	frameID := uuid.NewString()
	frameCtx := models.WithRequestID(ctx, frameID)

	result, err := ws.Gateway.CallTool(frameCtx, *req.Message)
	if err != nil {
		ws.Logger.Error().Err(err).Str("request_id", frameID).Msg("tool calling failed")
		return ws.Writer.WriteError(internalErrorMessage)
	}
	return ws.Writer.WriteResponse(result)
}
