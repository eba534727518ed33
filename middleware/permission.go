package middleware

import (
	"context"
	"errors"
	"net/http"

	"barberflow-backend/models"
	"barberflow-backend/services"
	"barberflow-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PermissionLoader interface {
	FindByUserID(ctx context.Context, userID uint) (*models.Permission, error)
}

// RequirePermissions loads the caller's permission row and demands every
// named flag. The flag map is attached to the context for handlers.
func RequirePermissions(loader PermissionLoader, names ...models.PermissionName) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			utils.RespondWithError(c, http.StatusUnauthorized, "User not authenticated")
			return
		}

		perm, err := loader.FindByUserID(c.Request.Context(), userID)
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, http.StatusForbidden, "No permissions assigned to this user")
			return
		}
		if err != nil {
			zap.L().Error("failed to load permissions", zap.Uint("userId", userID), zap.Error(err))
			utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		for _, name := range names {
			granted, known := perm.Get(name)
			if !known {
				utils.RespondWithError(c, http.StatusBadRequest, "Unknown permission: "+string(name))
				return
			}
			if !granted {
				utils.RespondWithError(c, http.StatusForbidden, "Missing permission: "+string(name))
				return
			}
		}

		c.Set(ContextPermissions, perm.Flags())
		c.Next()
	}
}

// HasPermission reads the flag map attached by RequirePermissions.
func HasPermission(c *gin.Context, name models.PermissionName) bool {
	value, exists := c.Get(ContextPermissions)
	if !exists {
		return false
	}
	flags, ok := value.(map[string]bool)
	return ok && flags[string(name)]
}
