package controllers

import (
	"net/http"

	"barberflow-backend/middleware"
	"barberflow-backend/models"
	"barberflow-backend/services"
	"barberflow-backend/utils"

	"github.com/gin-gonic/gin"
)

type GoalTargetInput struct {
	Target float64 `json:"target" binding:"min=0"`
}

type GoalController struct {
	base
}

func NewGoalController(svc *services.Services) *GoalController {
	return &GoalController{base: newBase(svc)}
}

func (gc *GoalController) staffMember(c *gin.Context) (uint, bool) {
	requested, ok := optionalQueryUint(c, "userId")
	if !ok {
		return 0, false
	}
	if requested == nil {
		caller := currentUserID(c)
		requested = &caller
	}
	userID, ok := scopeToUser(c, models.PermViewAllGoals, models.PermViewOwnGoals, requested)
	if !ok {
		return 0, false
	}
	return *userID, true
}

func (gc *GoalController) List(c *gin.Context) {
	userID, ok := gc.staffMember(c)
	if !ok {
		return
	}
	year, ok := queryInt(c, "year", gc.now().In(utils.LocalZone).Year())
	if !ok {
		return
	}
	goals, err := gc.svc.Goals.List(c.Request.Context(), middleware.CompanyID(c), userID, year)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch goals")
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (gc *GoalController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input GoalTargetInput
	if !bindJSON(c, &input) {
		return
	}
	goal, err := gc.svc.Goals.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch goal")
		return
	}
	if !gc.authorizeCompany(c, goal.CompanyID) {
		return
	}
	updated, err := gc.svc.Goals.UpdateTarget(c.Request.Context(), id, input.Target)
	if err != nil {
		respondServiceError(c, err, "Failed to update goal")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Progress defaults to the current local month.
func (gc *GoalController) Progress(c *gin.Context) {
	userID, ok := gc.staffMember(c)
	if !ok {
		return
	}
	now := gc.now().In(utils.LocalZone)
	month, ok := queryInt(c, "month", int(now.Month()))
	if !ok {
		return
	}
	year, ok := queryInt(c, "year", now.Year())
	if !ok {
		return
	}
	progress, err := gc.svc.Goals.Progress(c.Request.Context(), middleware.CompanyID(c), userID, month, year)
	if err != nil {
		respondServiceError(c, err, "Failed to compute goal progress")
		return
	}
	c.JSON(http.StatusOK, progress)
}
