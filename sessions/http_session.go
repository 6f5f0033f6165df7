package sessions

import (
	"context"
	"net/http"
	"time"

	"github.com/Desarso/hapticvision/models"
	"github.com/gin-gonic/gin"
)

// HandleChat answers with the hard-wrapped free-text reply as a JSON string.
func (s *HTTPSession) HandleChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	answer, err := s.Gateway.Chat(ctx, req.Text())
	if err != nil {
		s.Logger.Error().Err(err).Str("request_id", models.RequestIDFrom(ctx)).Msg("chat failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: internalErrorMessage})
		return
	}

	c.JSON(http.StatusOK, answer)
}

// HandleToolCalling answers with {"name", "args"} or null when the model
// picked no action.
func (s *HTTPSession) HandleToolCalling(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	result, err := s.Gateway.CallTool(ctx, req.Text())
	if err != nil {
		s.Logger.Error().Err(err).Str("request_id", models.RequestIDFrom(ctx)).Msg("tool calling failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: internalErrorMessage})
		return
	}

	c.JSON(http.StatusOK, result)
}

const healthTimeout = 2 * time.Second

// HandleHealth reports 503 when the trace store does not answer a ping.
func (s *HTTPSession) HandleHealth(c *gin.Context) {
	if s.Health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := s.Health.Ping(ctx); err != nil {
			s.Logger.Warn().Err(err).Msg("trace store unreachable")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
