package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header carries the correlation ID exchanged with the registration
// frontend.
const Header = "X-Request-ID"

const ctxKey = "requestID"

// Middleware tags every request with a correlation ID. An ID supplied
// by the caller is kept so a retried form submission can be traced end
// to end; otherwise a fresh one is minted.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(ctxKey, id)
		c.Writer.Header().Set(Header, id)

		c.Next()
	}
}

// Value returns the correlation ID for the current request, or "" when
// the middleware did not run.
func Value(c *gin.Context) string {
	v, _ := c.Get(ctxKey)
	id, _ := v.(string)
	return id
}
