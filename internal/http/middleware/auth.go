package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/coursehub-backend/internal/http/response"
	"github.com/yungbote/coursehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/services"
)

const ContextKeyUser = "auth_user"

type AuthMiddleware struct {
	log      *logger.Logger
	verifier services.TokenVerifier
	users    services.UserService
}

func NewAuthMiddleware(log *logger.Logger, verifier services.TokenVerifier, users services.UserService) *AuthMiddleware {
	return &AuthMiddleware{
		log:      log.With("middleware", "AuthMiddleware"),
		verifier: verifier,
		users:    users,
	}
}

// RequireAuth verifies the bearer token, upserts the caller's user row from its claims,
// and attaches the caller identity to the request context.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
			c.Abort()
			return
		}
		ctx := c.Request.Context()
		id, err := am.verifier.Verify(ctx, tokenString)
		if err != nil {
			am.log.Debug("token rejected", "error", err)
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", services.ErrInvalidToken)
			c.Abort()
			return
		}
		user, err := am.users.Upsert(ctx, id.Upsert())
		if err != nil {
			am.log.Warn("user upsert on auth failed", "user_id", id.Subject, "error", err)
			response.RespondAPIError(c, err)
			c.Abort()
			return
		}

		ctx = ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
			UserID:  user.ID,
			IsAdmin: user.IsAdmin,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		if rd == nil || rd.UserID == "" {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
			c.Abort()
			return
		}
		if !rd.IsAdmin {
			response.RespondError(c, http.StatusForbidden, "forbidden", errAdminOnly)
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
