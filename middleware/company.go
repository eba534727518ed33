package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"barberflow-backend/services"
	"barberflow-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CompanyAuthorizer interface {
	Authorize(ctx context.Context, userID, companyID uint) error
}

// RequireCompanyAccess resolves the company from the companyId path param or
// query string and checks the caller owns or belongs to it.
func RequireCompanyAccess(auth CompanyAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param("companyId")
		if raw == "" {
			raw = c.Query("companyId")
		}
		if raw == "" {
			utils.RespondWithError(c, http.StatusNotFound, "Company ID not found")
			return
		}
		companyID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || companyID == 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid company ID")
			return
		}
		userID, ok := UserID(c)
		if !ok {
			utils.RespondWithError(c, http.StatusUnauthorized, "User not authenticated")
			return
		}

		if !AuthorizeCompany(c, auth, userID, uint(companyID)) {
			return
		}
		c.Set(ContextCompanyID, uint(companyID))
		c.Next()
	}
}

// AuthorizeCompany writes the error response and returns false when the
// caller may not access the company.
func AuthorizeCompany(c *gin.Context, auth CompanyAuthorizer, userID, companyID uint) bool {
	err := auth.Authorize(c.Request.Context(), userID, companyID)
	switch {
	case err == nil:
		return true
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Company not found")
	case errors.Is(err, services.ErrForbidden):
		utils.RespondWithError(c, http.StatusForbidden, "You do not have access to this company")
	default:
		zap.L().Error("company access check failed",
			zap.Uint("userId", userID), zap.Uint("companyId", companyID), zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
	return false
}

// CompanyID returns the company resolved by RequireCompanyAccess.
func CompanyID(c *gin.Context) uint {
	id, _ := uintFromContext(c, ContextCompanyID)
	return id
}
