package middleware

import (
	"context"
	"net/http"
	"strings"

	"barberflow-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextUserID      = "userId"
	ContextClientID    = "clientId"
	ContextPermissions = "permissions"
	ContextCompanyID   = "companyId"
	ContextRequestID   = "requestId"
)

// PrincipalCheck reports whether the id carried by a valid token still maps
// to a live account.
type PrincipalCheck func(ctx context.Context, id uint) (bool, error)

// RequireUser accepts staff tokens only.
func RequireUser(secret []byte, logger *zap.Logger, check PrincipalCheck) gin.HandlerFunc {
	return requireToken(utils.TokenKindUser, ContextUserID, secret, logger, check)
}

// RequireClient accepts client portal tokens only.
func RequireClient(secret []byte, logger *zap.Logger, check PrincipalCheck) gin.HandlerFunc {
	return requireToken(utils.TokenKindClient, ContextClientID, secret, logger, check)
}

func requireToken(kind, key string, secret []byte, logger *zap.Logger, check PrincipalCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			utils.RespondWithError(c, http.StatusUnauthorized, "Authorization header required")
			return
		}
		if len(tokenString) > 7 && strings.ToUpper(tokenString[0:6]) == "BEARER" {
			tokenString = tokenString[7:]
		}

		id, err := utils.ParseToken(tokenString, kind, secret)
		if err != nil {
			logger.Warn("token verification failed",
				zap.String("kind", kind), zap.String("path", c.Request.URL.Path), zap.Error(err))
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		if check != nil {
			ok, err := check(c.Request.Context(), id)
			if err != nil {
				logger.Error("principal lookup failed", zap.Uint("id", id), zap.Error(err))
				utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
				return
			}
			if !ok {
				utils.RespondWithError(c, http.StatusUnauthorized, "Invalid token")
				return
			}
		}

		c.Set(key, id)
		c.Next()
	}
}

// UserID returns the authenticated staff user id.
func UserID(c *gin.Context) (uint, bool) {
	return uintFromContext(c, ContextUserID)
}

// ClientID returns the authenticated client id.
func ClientID(c *gin.Context) (uint, bool) {
	return uintFromContext(c, ContextClientID)
}

func uintFromContext(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
