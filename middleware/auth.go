package middleware

import (
	"net/http"
	"strings"

	userRepo "citylinker/database/repository/user"
	"citylinker/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionCookieName carries the opaque server-side session ID established by
// the OAuth handshake.
const SessionCookieName = "cl_session"

// Context keys set on successful authentication.
const (
	CtxUserID   = "userID"
	CtxUserRole = "userRole"
)

// Authenticate resolves the request's identity: a server-side session cookie
// first, then a bearer credential. The denylist is consulted before the
// signature check so a revoked token fails even while its signature is valid.
// The bound account is re-fetched so deleted accounts stop authenticating
// immediately.
func Authenticate(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		// Session identity (established by the OAuth callback).
		if sessionID, err := c.Cookie(SessionCookieName); err == nil && sessionID != "" {
			session, err := utils.GetSession(utils.GetAuthCacheClient(), sessionID)
			if err != nil {
				logger.Warn("Session lookup failed", zap.Error(err))
			} else if session != nil {
				usr, err := users.GetByID(session.UserID)
				if err == nil && usr != nil {
					c.Set(CtxUserID, usr.ID)
					c.Set(CtxUserRole, usr.Role)
					c.Next()
					return
				}
			}
			// Stale cookie; fall through to the bearer check.
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No valid token or session, authorization denied"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		revoked, err := utils.IsTokenRevoked(utils.GetAuthCacheClient(), utils.HashToken(tokenString))
		if err != nil {
			logger.Warn("Denylist lookup failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization failed"})
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token invalidated - please login again"})
			return
		}

		userID, _, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		// The role claim is advisory; the stored account is authoritative and
		// its existence is re-checked on every request.
		usr, err := users.GetByID(userID)
		if err != nil || usr == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found, authorization denied"})
			return
		}

		c.Set(CtxUserID, usr.ID)
		c.Set(CtxUserRole, usr.Role)
		c.Next()
	}
}
