package middleware

import (
	"fmt"
	"net/http"
	"time"

	"sbml-builder/backend/common"
	"sbml-builder/backend/library/metrics"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AccessLog writes one structured line per request and feeds the HTTP metrics.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		done := metrics.RequestStarted()

		c.Next()

		elapsed := time.Since(start)
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		done(c.Request.Method, path, status, elapsed)

		entry := common.Logger.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency":    elapsed.String(),
			"client_ip":  c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}
		switch {
		case status >= http.StatusInternalServerError:
			entry.Warn("request failed")
		default:
			entry.Info("request handled")
		}
	}
}

// Recovery converts a panic into the standard {"error": ...} 500 response so
// a single bad request never takes the process down.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		common.Logger.WithField("request_id", c.GetString(RequestIDKey)).Errorf("panic recovered: %v", recovered)
		common.RespErrorStr(c, http.StatusInternalServerError, fmt.Sprint(recovered))
	})
}
