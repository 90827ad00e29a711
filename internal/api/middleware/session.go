package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talentops/talentops/internal/domain"
	"github.com/talentops/talentops/internal/logger"
)

const sessionKey = "session"

// Session resolves the acting user and org from request headers and stores
// the session on the Gin context. Requests without an org are rejected so no
// handler ever runs unscoped.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := domain.Session{
			UserID: c.GetHeader("X-User-ID"),
			OrgID:  c.GetHeader("X-Org-ID"),
		}
		if sess.OrgID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing X-Org-ID header"})
			return
		}

		ctx := logger.WithFields(c.Request.Context(), logger.Fields{
			logger.FieldOrgID:  sess.OrgID,
			logger.FieldUserID: sess.UserID,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// GetSession extracts the session stored by the Session middleware.
func GetSession(c *gin.Context) domain.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(domain.Session); ok {
			return sess
		}
	}
	return domain.Session{}
}
