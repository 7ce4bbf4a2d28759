package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"frontline/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorLogger logs every request, adds error details for failed ones and
// recovers from panics with a JSON 500.
func ErrorLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"message": "Internal server error",
					"error":   err.Error(),
				})
				requestLogger(log, c, start).Error("request_panic",
					"error", err.Error(),
					"stack", string(debug.Stack()),
				)
				return
			}

			l := requestLogger(log, c, start)
			if len(c.Errors) == 0 {
				if c.Writer.Status() >= http.StatusInternalServerError {
					l.Error("request_failed")
					return
				}
				l.Info("request")
				return
			}

			for _, err := range c.Errors {
				if c.Writer.Status() >= http.StatusInternalServerError {
					l.Error("request_error", "error", err.Error())
				} else {
					l.Warn("request_error", "error", err.Error())
				}
			}
		}()

		c.Next()
	}
}

func requestLogger(log *logger.Logger, c *gin.Context, start time.Time) *logger.Logger {
	return log.With(
		"status", c.Writer.Status(),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"query", c.Request.URL.RawQuery,
		"client_ip", c.ClientIP(),
		"request_id", requestID(c),
		"latency", time.Since(start).String(),
	)
}
