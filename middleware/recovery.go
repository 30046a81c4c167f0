package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"

	"omnily-go-admin/pkg/response"
)

// Recovery turns panics into error envelopes, with the stack included in
// debug mode only.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		err := fmt.Sprintf("panic recovered: %v", recovered)
		stack := string(debug.Stack())

		log.Printf("[PANIC RECOVERY] %s\n%s", err, stack)

		if gin.Mode() == gin.DebugMode {
			response.ErrorWithData(c, response.INTERNAL_ERROR, gin.H{
				"panic": recovered,
				"stack": stack,
			}, "internal server error")
		} else {
			response.Error(c, response.INTERNAL_ERROR, "internal server error")
		}
	})
}

// ErrorHandler reports unhandled gin errors as envelopes when nothing was
// written yet.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()

			log.Printf("[ERROR] %s %s - %v", c.Request.Method, c.Request.URL.Path, err.Err)

			if !c.Writer.Written() {
				switch err.Type {
				case gin.ErrorTypeBind:
					response.Error(c, response.INVALID_PARAMS, "invalid request parameters: "+err.Error())
				case gin.ErrorTypePublic:
					response.Error(c, response.ERROR, err.Error())
				default:
					response.Error(c, response.INTERNAL_ERROR, "internal service error")
				}
			}
		}
	}
}

// SecureHeaders sets the baseline security headers.
func SecureHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// RequestID assigns each request a unique id, exposed as X-Request-ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := generateRequestID()
		c.Header("X-Request-ID", requestID)
		c.Set("request_id", requestID)
		c.Next()
	}
}

func generateRequestID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)
}
