package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"barberflow-backend/middleware"
	"barberflow-backend/models"
	"barberflow-backend/services"
	"barberflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// base is embedded by every controller.
type base struct {
	svc *services.Services
	now func() time.Time
}

func newBase(svc *services.Services) base {
	return base{svc: svc, now: time.Now}
}

// respondServiceError maps service sentinels onto status codes. Unexpected
// errors are logged and answered with a generic message.
func respondServiceError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrEmailInUse),
		errors.Is(err, services.ErrAlreadyMember):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrProductInUse),
		errors.Is(err, services.ErrInvalidTransition):
		utils.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		zap.L().Error(message,
			zap.String("path", c.Request.URL.Path),
			zap.String("requestId", c.GetString(middleware.ContextRequestID)),
			zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, message)
	}
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			details := make(map[string]string, len(fieldErrs))
			for _, fe := range fieldErrs {
				details[fe.Field()] = fe.Tag()
			}
			utils.RespondWithDetails(c, http.StatusBadRequest, "Invalid input", details)
			return false
		}
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return false
	}
	return true
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+param)
		return 0, false
	}
	return uint(id), true
}

// optionalQueryUint reads an optional positive integer query parameter.
func optionalQueryUint(c *gin.Context, key string) (*uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+key)
		return nil, false
	}
	id := uint(v)
	return &id, true
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+key)
		return 0, false
	}
	return v, true
}

func currentUserID(c *gin.Context) uint {
	id, _ := middleware.UserID(c)
	return id
}

// resolvePeriod reads startDate, endDate and period from the query string.
func (b base) resolvePeriod(c *gin.Context) (utils.Period, bool) {
	period, err := utils.ResolvePeriod(c.Query("startDate"), c.Query("endDate"), c.Query("period"), b.now())
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return utils.Period{}, false
	}
	return period, true
}

func (b base) authorizeCompany(c *gin.Context, companyID uint) bool {
	if companyID == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Company ID not found")
		return false
	}
	return middleware.AuthorizeCompany(c, b.svc.Companies, currentUserID(c), companyID)
}

// scopeToUser decides whose data a request may see. With the "all" flag the
// requested user (or everyone, when nil) is allowed; with only the "own" flag
// the caller is limited to themselves.
func scopeToUser(c *gin.Context, all, own models.PermissionName, requested *uint) (*uint, bool) {
	if middleware.HasPermission(c, all) {
		return requested, true
	}
	caller := currentUserID(c)
	if middleware.HasPermission(c, own) && (requested == nil || *requested == caller) {
		return &caller, true
	}
	utils.RespondWithError(c, http.StatusForbidden, "Missing permission: "+string(all))
	return nil, false
}
