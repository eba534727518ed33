package controllers

import (
	"net/http"

	"barberflow-backend/middleware"
	"barberflow-backend/models"
	"barberflow-backend/services"

	"github.com/gin-gonic/gin"
)

type CommissionConfigInput struct {
	CompanyID uint `json:"companyId" binding:"required"`
	UserID    uint `json:"userId" binding:"required"`
}

type CommissionRuleInput struct {
	Type  models.CommissionType `json:"type" binding:"required"`
	Value float64               `json:"value" binding:"min=0"`
}

type CommissionController struct {
	base
}

func NewCommissionController(svc *services.Services) *CommissionController {
	return &CommissionController{base: newBase(svc)}
}

// staffMember resolves the userId query param, defaulting to the caller.
func (cc *CommissionController) staffMember(c *gin.Context) (uint, bool) {
	requested, ok := optionalQueryUint(c, "userId")
	if !ok {
		return 0, false
	}
	if requested == nil {
		caller := currentUserID(c)
		requested = &caller
	}
	userID, ok := scopeToUser(c, models.PermViewAllCommissions, models.PermViewOwnCommissions, requested)
	if !ok {
		return 0, false
	}
	return *userID, true
}

func (cc *CommissionController) GetConfig(c *gin.Context) {
	userID, ok := cc.staffMember(c)
	if !ok {
		return
	}
	config, err := cc.svc.Commissions.GetConfig(c.Request.Context(), middleware.CompanyID(c), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch commission config")
		return
	}
	c.JSON(http.StatusOK, config)
}

func (cc *CommissionController) CreateConfig(c *gin.Context) {
	var input CommissionConfigInput
	if !bindJSON(c, &input) {
		return
	}
	if !cc.authorizeCompany(c, input.CompanyID) {
		return
	}
	config, err := cc.svc.Commissions.CreateConfig(c.Request.Context(), input.CompanyID, input.UserID)
	if err != nil {
		respondServiceError(c, err, "Failed to create commission config")
		return
	}
	c.JSON(http.StatusCreated, config)
}

func (cc *CommissionController) UpdateRule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input CommissionRuleInput
	if !bindJSON(c, &input) {
		return
	}
	_, config, err := cc.svc.Commissions.FindRule(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch commission rule")
		return
	}
	if !cc.authorizeCompany(c, config.CompanyID) {
		return
	}
	rule, err := cc.svc.Commissions.UpdateRule(c.Request.Context(), id, input.Type, input.Value)
	if err != nil {
		respondServiceError(c, err, "Failed to update commission rule")
		return
	}
	c.JSON(http.StatusOK, rule)
}

func (cc *CommissionController) Report(c *gin.Context) {
	userID, ok := cc.staffMember(c)
	if !ok {
		return
	}
	period, ok := cc.resolvePeriod(c)
	if !ok {
		return
	}
	report, err := cc.svc.Commissions.Report(c.Request.Context(), middleware.CompanyID(c), userID, period)
	if err != nil {
		respondServiceError(c, err, "Failed to build commission report")
		return
	}
	c.JSON(http.StatusOK, report)
}
