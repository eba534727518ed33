package controllers

import (
	"net/http"

	"barberflow-backend/middleware"
	"barberflow-backend/models"
	"barberflow-backend/services"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	base
}

func NewSettingsController(svc *services.Services) *SettingsController {
	return &SettingsController{base: newBase(svc)}
}

func (sc *SettingsController) Get(c *gin.Context) {
	settings, err := sc.svc.Settings.Get(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Update covers scheduling, notification, reminder template and payment
// fields. Omitted fields keep their value.
func (sc *SettingsController) Update(c *gin.Context) {
	var input services.SettingsUpdate
	if !bindJSON(c, &input) {
		return
	}
	settings, err := sc.svc.Settings.Update(c.Request.Context(), middleware.CompanyID(c), input)
	if err != nil {
		respondServiceError(c, err, "Failed to update settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (sc *SettingsController) UpdateWorkingHours(c *gin.Context) {
	var input map[string]models.DayHours
	if !bindJSON(c, &input) {
		return
	}
	hours, err := sc.svc.Settings.UpdateWorkingHours(c.Request.Context(), middleware.CompanyID(c), input)
	if err != nil {
		respondServiceError(c, err, "Failed to update working hours")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Working hours updated successfully",
		"workingHours": hours,
	})
}
