package api

import (
	"time"

	"github.com/concave-dev/attest/internal/httpclient"
	"github.com/concave-dev/attest/internal/logging"
	"github.com/concave-dev/attest/internal/utils"
	"github.com/gin-gonic/gin"
)

// requestIDKey is the gin context key holding the request id.
const requestIDKey = "requestID"

// requestIDMiddleware accepts a caller's X-Request-ID when it is a UUID and
// otherwise assigns one. The id is echoed in the response and carried on the
// request context so outbound backend calls send the same header.
func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(httpclient.RequestIDHeader)
		if !utils.IsRequestID(id) {
			id = utils.NewRequestID()
		}

		c.Set(requestIDKey, id)
		c.Header(httpclient.RequestIDHeader, id)
		c.Request = c.Request.WithContext(httpclient.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// loggingMiddleware provides request logging
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		requestID, _ := param.Keys[requestIDKey].(string)
		logging.Info("%s - [%s] \"%s %s %s %d %s \"%s\" %s\" req=%s",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
			logging.FormatRequestID(requestID),
		)
		return ""
	})
}

// corsMiddleware provides CORS headers for the browser UI
func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID")
		c.Header("Access-Control-Max-Age", "300")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
