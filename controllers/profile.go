package controllers

import (
	"net/http"

	"barberflow-backend/middleware"
	"barberflow-backend/models"
	"barberflow-backend/services"
	"barberflow-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateStaffInput struct {
	Name        string      `json:"name" binding:"required"`
	Email       string      `json:"email" binding:"required,email"`
	Password    string      `json:"password" binding:"required,min=8"`
	Phone       string      `json:"phone"`
	Role        models.Role `json:"role"`
	CompanyID   uint        `json:"companyId" binding:"required"`
	Permissions []string    `json:"permissions"`
}

// UserController manages staff accounts and their profiles.
type UserController struct {
	base
}

func NewUserController(svc *services.Services) *UserController {
	return &UserController{base: newBase(svc)}
}

// Create bootstraps a staff member inside one of the caller's companies.
func (uc *UserController) Create(c *gin.Context) {
	var input CreateStaffInput
	if !bindJSON(c, &input) {
		return
	}
	if !uc.authorizeCompany(c, input.CompanyID) {
		return
	}

	user, err := uc.svc.Users.CreateStaff(c.Request.Context(), services.StaffInput{
		Name:        input.Name,
		Email:       input.Email,
		Password:    input.Password,
		Phone:       input.Phone,
		Role:        input.Role,
		CompanyID:   input.CompanyID,
		Permissions: input.Permissions,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to create user")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// List returns the members of the company in the query string.
func (uc *UserController) List(c *gin.Context) {
	members, err := uc.svc.Companies.Members(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch users")
		return
	}
	users := make([]*models.User, 0, len(members))
	for _, m := range members {
		if m.User != nil {
			users = append(users, m.User)
		}
	}
	c.JSON(http.StatusOK, users)
}

// canSee lets a caller read themselves, or a colleague when they hold the
// given permission.
func (uc *UserController) canSee(c *gin.Context, targetID uint, perm models.PermissionName) bool {
	callerID := currentUserID(c)
	if callerID == targetID {
		return true
	}
	if !middleware.HasPermission(c, perm) {
		utils.RespondWithError(c, http.StatusForbidden, "Missing permission: "+string(perm))
		return false
	}
	shared, err := uc.svc.Users.SharesCompany(c.Request.Context(), callerID, targetID)
	if err != nil {
		respondServiceError(c, err, "Failed to check user access")
		return false
	}
	if !shared {
		utils.RespondWithError(c, http.StatusNotFound, "user not found")
		return false
	}
	return true
}

func (uc *UserController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok || !uc.canSee(c, id, models.PermViewMembers) {
		return
	}
	user, err := uc.svc.Users.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok || !uc.canSee(c, id, models.PermManageMembers) {
		return
	}
	var input services.UserUpdate
	if !bindJSON(c, &input) {
		return
	}
	if input.Role != nil && !middleware.HasPermission(c, models.PermManagePermissions) {
		utils.RespondWithError(c, http.StatusForbidden, "Missing permission: "+string(models.PermManagePermissions))
		return
	}
	user, err := uc.svc.Users.Update(c.Request.Context(), currentUserID(c), id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if id == currentUserID(c) {
		utils.RespondWithError(c, http.StatusBadRequest, "You cannot delete your own account")
		return
	}
	if !uc.canSee(c, id, models.PermManageMembers) {
		return
	}
	if err := uc.svc.Users.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Failed to delete user")
		return
	}
	c.Status(http.StatusNoContent)
}
