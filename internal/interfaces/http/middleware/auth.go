package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appidentity "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Auth context keys
const (
	AuthUserIDKey = "auth_user_id"
	AuthEmailKey  = "auth_email"
	AuthNameKey   = "auth_name"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthGuard verifies the bearer token and resolves the local user
// before the handler runs. The user row is created lazily on the
// caller's first authenticated request.
func AuthGuard(jwtService *auth.JWTService, users *appidentity.UserService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				abortUnauthorized(c, "Token has expired")
			case errors.Is(err, auth.ErrMissingEmail):
				// A verified token without an email claim is a client
				// contract violation, not an auth failure
				c.AbortWithStatusJSON(http.StatusBadRequest,
					dto.NewErrorResponse("MISSING_EMAIL", "Token carries no email claim"))
			default:
				abortUnauthorized(c, "Invalid token")
			}
			return
		}

		user, err := users.ResolveByEmail(c.Request.Context(), claims.Email, claims.Name)
		if err != nil {
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) {
				c.AbortWithStatusJSON(dto.GetHTTPStatus(domainErr.Code),
					dto.NewErrorResponse(domainErr.Code, domainErr.Message))
				return
			}
			logger.Error("failed to resolve authenticated user",
				zap.String("email", claims.Email), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(dto.ErrCodeInternal, "Failed to resolve user"))
			return
		}

		c.Set(AuthUserIDKey, user.ID)
		c.Set(AuthEmailKey, user.Email)
		c.Set(AuthNameKey, user.Name)
		c.Next()
	}
}

// AuthenticatedUserID returns the resolved user id set by AuthGuard
func AuthenticatedUserID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(AuthUserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}
