package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HandleRequestLogger writes one access log line per request.
func (h *handlerImpl) HandleRequestLogger(c *gin.Context) {
	start := time.Now()
	path := c.Request.URL.Path

	c.Next()

	status := c.Writer.Status()
	var event *zerolog.Event
	switch {
	case status >= http.StatusInternalServerError:
		event = h.logger.Error()
	case status >= http.StatusBadRequest:
		event = h.logger.Warn()
	default:
		event = h.logger.Debug()
	}

	if len(c.Errors) > 0 {
		event = event.Str("errors", c.Errors.String())
	}
	event.
		Str("method", c.Request.Method).
		Str("path", path).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Str("client_ip", c.ClientIP()).
		Msg("handled request")
}

func (h *handlerImpl) HandleHealth(c *gin.Context) {
	err := h.tasks.Ping(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to ping store")
		abort(c, newStatusTextError(http.StatusServiceUnavailable))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
