package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chefcode/backend/internal/interfaces/http/dto"
)

// APIKeyHeader is the header mutating requests must carry.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth guards mutating routes with a shared API key. An empty
// configured key disables the check entirely; that is only acceptable in
// development and the caller is expected to log a warning in that case.
func APIKeyAuth(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}

		provided := c.GetHeader(APIKeyHeader)
		if provided == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.ErrCodeUnauthorized,
				"API Key is required. Include X-API-Key header.",
			))
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.ErrCodeUnauthorized,
				"Invalid API Key",
			))
			return
		}
		c.Next()
	}
}
