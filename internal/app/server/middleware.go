package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-Id"
	requestIDKey    = "requestID"
)

// requestID propagates the caller's X-Request-Id or assigns a new one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// recovery turns handler panics into a 500 and reports them to Sentry
func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		sentry.CurrentHub().Recover(recovered)
		s.log.Error().Str("request_id", c.GetString(requestIDKey)).Msgf("Recovered from panic: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.log.Debug().
			Str("request_id", c.GetString(requestIDKey)).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg(fmt.Sprintf("%s %s", c.Request.Method, c.Request.URL.Path))
	}
}

// internalError logs and reports err, answering with a generic 500
func (s *Server) internalError(c *gin.Context, op string, err error) {
	sentry.CaptureException(err)
	s.log.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Msgf("Failed to %s", op)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + op})
}
