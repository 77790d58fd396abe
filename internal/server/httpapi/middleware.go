package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/civigo/internal/common"
	"github.com/dmitrijs2005/civigo/internal/server/auth"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// authenticate rejects requests without a valid bearer token and stores
// the caller's identity on the gin context.
func (h *handler) authenticate(c *gin.Context) {
	token, ok := common.BearerToken(c.GetHeader(common.AuthorizationHeaderName))
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Message: "missing bearer token"})
		return
	}

	id, err := h.svc.Users.Identify(token)
	if err != nil {
		msg := "invalid token"
		if errors.Is(err, common.ErrTokenExpired) {
			msg = "token expired"
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Message: msg})
		return
	}

	c.Set(identityKey, id)
	c.Next()
}

// userID returns the authenticated caller. Only valid behind authenticate.
func userID(c *gin.Context) string {
	id, _ := c.MustGet(identityKey).(auth.Identity)
	return id.UserID
}

func (h *handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.logger.Debug(c.Request.Context(), "request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"latency", time.Since(start),
	)
}
