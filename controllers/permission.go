package controllers

import (
	"net/http"

	"barberflow-backend/models"
	"barberflow-backend/services"
	"barberflow-backend/utils"

	"github.com/gin-gonic/gin"
)

type AssignPermissionsInput struct {
	Role        models.Role `json:"role" binding:"required"`
	Permissions []string    `json:"permissions"`
}

type PermissionController struct {
	base
}

func NewPermissionController(svc *services.Services) *PermissionController {
	return &PermissionController{base: newBase(svc)}
}

// targetUser resolves :userId and checks it shares a company with the caller.
func (pc *PermissionController) targetUser(c *gin.Context) (uint, bool) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return 0, false
	}
	if userID == currentUserID(c) {
		return userID, true
	}
	shared, err := pc.svc.Users.SharesCompany(c.Request.Context(), currentUserID(c), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to check user access")
		return 0, false
	}
	if !shared {
		utils.RespondWithError(c, http.StatusNotFound, "user not found")
		return 0, false
	}
	return userID, true
}

func (pc *PermissionController) Me(c *gin.Context) {
	perm, err := pc.svc.Permissions.FindByUserID(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch permissions")
		return
	}
	c.JSON(http.StatusOK, perm.Flags())
}

func (pc *PermissionController) Get(c *gin.Context) {
	userID, ok := pc.targetUser(c)
	if !ok {
		return
	}
	perm, err := pc.svc.Permissions.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch permissions")
		return
	}
	c.JSON(http.StatusOK, perm.Flags())
}

// Assign overwrites the row from a role preset plus extra names.
func (pc *PermissionController) Assign(c *gin.Context) {
	userID, ok := pc.targetUser(c)
	if !ok {
		return
	}
	var input AssignPermissionsInput
	if !bindJSON(c, &input) {
		return
	}
	perm, err := pc.svc.Permissions.Assign(c.Request.Context(), currentUserID(c), userID, input.Role, input.Permissions)
	if err != nil {
		respondServiceError(c, err, "Failed to assign permissions")
		return
	}
	c.JSON(http.StatusOK, perm.Flags())
}

func (pc *PermissionController) Update(c *gin.Context) {
	userID, ok := pc.targetUser(c)
	if !ok {
		return
	}
	var flags map[string]bool
	if !bindJSON(c, &flags) {
		return
	}
	perm, err := pc.svc.Permissions.Update(c.Request.Context(), currentUserID(c), userID, flags)
	if err != nil {
		respondServiceError(c, err, "Failed to update permissions")
		return
	}
	c.JSON(http.StatusOK, perm.Flags())
}

func (pc *PermissionController) Delete(c *gin.Context) {
	userID, ok := pc.targetUser(c)
	if !ok {
		return
	}
	if err := pc.svc.Permissions.Delete(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err, "Failed to delete permissions")
		return
	}
	c.Status(http.StatusNoContent)
}
