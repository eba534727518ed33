// controllers/report.go
package controllers

import (
	"net/http"

	"barberflow-backend/middleware"
	"barberflow-backend/models"
	"barberflow-backend/services"
	"barberflow-backend/utils"

	"github.com/gin-gonic/gin"
)

const defaultTopServices = 5

// ReportController handles the revenue reports
type ReportController struct {
	base
}

func NewReportController(svc *services.Services) *ReportController {
	return &ReportController{base: newBase(svc)}
}

// filter builds the company, staff and period scope of a report request.
// Callers without full access only ever see their own figures.
func (rc *ReportController) filter(c *gin.Context, full, own models.PermissionName) (services.ReportFilter, bool) {
	requested, ok := optionalQueryUint(c, "userId")
	if !ok {
		return services.ReportFilter{}, false
	}
	userID, ok := scopeToUser(c, full, own, requested)
	if !ok {
		return services.ReportFilter{}, false
	}
	period, ok := rc.resolvePeriod(c)
	if !ok {
		return services.ReportFilter{}, false
	}
	return services.ReportFilter{CompanyID: middleware.CompanyID(c), UserID: userID, Period: period}, true
}

// Revenue returns totals and the trend against the previous month
func (rc *ReportController) Revenue(c *gin.Context) {
	filter, ok := rc.filter(c, models.PermViewFullRevenue, models.PermViewOwnRevenue)
	if !ok {
		return
	}
	summary, err := rc.svc.Revenue.Summary(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch revenue")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (rc *ReportController) RevenueByStaff(c *gin.Context) {
	filter, ok := rc.filter(c, models.PermViewFullRevenue, models.PermViewFullRevenue)
	if !ok {
		return
	}
	rows, err := rc.svc.Revenue.ByStaff(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch revenue by staff")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (rc *ReportController) TopServices(c *gin.Context) {
	filter, ok := rc.filter(c, models.PermViewFullRevenue, models.PermViewOwnRevenue)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", defaultTopServices)
	if !ok {
		return
	}
	if limit <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid limit")
		return
	}
	rows, err := rc.svc.Revenue.TopServices(c.Request.Context(), filter, limit)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch top services")
		return
	}
	c.JSON(http.StatusOK, rows)
}
