package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lalajistore/vendor-gateway/internal/session"
	"github.com/lalajistore/vendor-gateway/internal/utils"
)

const sessionContextKey = "vendor_session"

// SessionMiddleware authenticates dashboard requests: it validates the
// gateway JWT and resolves the stored vendor session carrying the
// marketplace token.
type SessionMiddleware struct {
	store *session.Store
}

// NewSessionMiddleware constructs a SessionMiddleware.
func NewSessionMiddleware(store *session.Store) *SessionMiddleware {
	return &SessionMiddleware{store: store}
}

func (m *SessionMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(c, 401, "UNAUTHORIZED", "Missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Error(c, 401, "UNAUTHORIZED", "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		sess, err := m.store.Get(claims.SessionID)
		if err != nil {
			if errors.Is(err, utils.ErrSessionExpired) || errors.Is(err, utils.ErrSessionNotFound) {
				utils.Error(c, 401, "SESSION_EXPIRED", "Session expired, please log in again")
			} else {
				utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load session")
			}
			c.Abort()
			return
		}

		c.Set(sessionContextKey, sess)
		c.Set("vendor_id", sess.VendorID)
		c.Next()
	}
}

// SessionFromContext returns the authenticated session set by Handle.
func SessionFromContext(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}
