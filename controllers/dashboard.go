package controllers

import (
	"net/http"

	"barberflow-backend/middleware"
	"barberflow-backend/models"
	"barberflow-backend/services"

	"github.com/gin-gonic/gin"
)

// StatisticsController serves the dashboard blocks.
type StatisticsController struct {
	ReportController
}

func NewStatisticsController(svc *services.Services) *StatisticsController {
	return &StatisticsController{ReportController: ReportController{base: newBase(svc)}}
}

func (sc *StatisticsController) ProductsSold(c *gin.Context) {
	filter, ok := sc.filter(c, models.PermViewFullStatistics, models.PermViewOwnStatistics)
	if !ok {
		return
	}
	sold, err := sc.svc.Statistics.ProductsSold(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch products sold")
		return
	}
	c.JSON(http.StatusOK, sold)
}

func (sc *StatisticsController) PendingAppointments(c *gin.Context) {
	userID, ok := scopeToUser(c, models.PermViewFullStatistics, models.PermViewOwnStatistics, nil)
	if !ok {
		return
	}
	appointments, err := sc.svc.Appointments.Pending(c.Request.Context(), middleware.CompanyID(c), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch pending appointments")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":        len(appointments),
		"appointments": appointments,
	})
}

func (sc *StatisticsController) Overview(c *gin.Context) {
	filter, ok := sc.filter(c, models.PermViewFullStatistics, models.PermViewOwnStatistics)
	if !ok {
		return
	}
	overview, err := sc.svc.Statistics.Overview(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch overview")
		return
	}
	c.JSON(http.StatusOK, overview)
}
