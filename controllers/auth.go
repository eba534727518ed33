// controllers/auth.go
package controllers

import (
	"net/http"

	"barberflow-backend/services"

	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone"`
	Name           string `json:"name" binding:"required"`
	Password       string `json:"password" binding:"required,min=8"`
	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	base
}

func NewAuthController(svc *services.Services) *AuthController {
	return &AuthController{base: newBase(svc)}
}

func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if !bindJSON(c, &input) {
		return
	}

	result, err := ac.svc.Auth.Register(c.Request.Context(), services.RegisterInput{
		Name:           input.Name,
		Email:          input.Email,
		Password:       input.Password,
		Phone:          input.Phone,
		CompanyName:    input.CompanyName,
		CompanyAddress: input.CompanyAddress,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   result.Token,
		"user":    result.User,
		"company": result.Company,
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if !bindJSON(c, &input) {
		return
	}

	user, token, err := ac.svc.Auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondServiceError(c, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func (ac *AuthController) Me(c *gin.Context) {
	user, companies, err := ac.svc.Users.Me(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"companies": companies,
	})
}
