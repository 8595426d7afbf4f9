package v1

import (
	"crypto/subtle"
	"net/http"
	"paygate/api/internal/domain"

	"github.com/gin-gonic/gin"
)

const ACCESS_HEADER = "Access"

// compares the Access header with the configured private key, an empty key admits nobody
func (h *Handler) accessMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Request.Header.Get(ACCESS_HEADER)
		if h.config.PrivateKey == "" || subtle.ConstantTimeCompare([]byte(h.config.PrivateKey), []byte(key)) != 1 {
			responseErr(c, http.StatusUnauthorized, domain.KIND_ACCESS_ERROR, domain.ErrMsgAccessError, "")
			return
		}
		c.Next()
	}
}
