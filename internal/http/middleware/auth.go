package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodexplorer-backend/internal/http/response"
	"github.com/yungbote/foodexplorer-backend/internal/platform/apierr"
	"github.com/yungbote/foodexplorer-backend/internal/platform/ctxutil"
	"github.com/yungbote/foodexplorer-backend/internal/platform/logger"
	"github.com/yungbote/foodexplorer-backend/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	middlewareLogger := log.With("middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, authService: authService}
}

// RequireAuth resolves the bearer token to a user and stores it as the
// request data. The request is aborted with 401 before any handler runs when
// that fails.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			response.RespondError(c, apierr.Unauthorized("token not provided"))
			return
		}
		tokenString, ok := bearerToken(header)
		if !ok {
			response.RespondError(c, apierr.Unauthorized("malformed authorization header"))
			return
		}
		identity, err := am.authService.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			am.log.Debug("Authentication failed", "path", c.FullPath(), "error", err)
			response.RespondError(c, apierr.InvalidToken())
			return
		}
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
			TokenString: tokenString,
			UserID:      identity.ID,
			Name:        identity.Name,
			Email:       identity.Email,
			Role:        identity.Role,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// bearerToken accepts "Bearer <token>"; the scheme is case-sensitive.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
