package sessions

import (
	"github.com/Desarso/hapticvision/stores"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// NewHTTPSession creates the handler set for the chatbot endpoints
func NewHTTPSession(gateway GatewayInterface, health stores.Pinger, logger zerolog.Logger) *HTTPSession {
	return &HTTPSession{
		Gateway: gateway,
		Health:  health,
		Logger:  logger.With().Str("component", "http").Logger(),
	}
}

// NewWebSocketSession creates a session bound to an upgraded connection
func NewWebSocketSession(conn *websocket.Conn, gateway GatewayInterface, logger zerolog.Logger) *WebSocketSession {
	return &WebSocketSession{
		Gateway: gateway,
		Writer:  &WebSocketWriter{Conn: conn},
		Logger:  logger.With().Str("component", "ws").Logger(),
	}
}

// NewRouter wires middleware and routes onto a fresh gin engine. health may
// be nil.
func NewRouter(gateway GatewayInterface, health stores.Pinger, logger zerolog.Logger) *gin.Engine {
	s := NewHTTPSession(gateway, health, logger)

	router := gin.New()
	router.Use(RequestID(), RequestLogger(s.Logger), gin.Recovery())

	router.GET("/health", s.HandleHealth)

	r := router.Group("/chatbot")
	r.POST("/chat", s.HandleChat)
	r.POST("/tool-calling", s.HandleToolCalling)
	r.GET("/ws", s.HandleWebSocket)

	return router
}
