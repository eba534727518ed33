package controllers

import (
	"net/http"

	"barberflow-backend/middleware"
	"barberflow-backend/services"
	"barberflow-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateCompanyInput struct {
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Description  string `json:"description"`
	LogoURL      string `json:"logoUrl"`
	PrimaryColor string `json:"primaryColor"`
}

type AddMemberInput struct {
	UserID uint `json:"userId" binding:"required"`
}

type CompanyController struct {
	base
}

func NewCompanyController(svc *services.Services) *CompanyController {
	return &CompanyController{base: newBase(svc)}
}

func (cc *CompanyController) Create(c *gin.Context) {
	var input CreateCompanyInput
	if !bindJSON(c, &input) {
		return
	}
	owner, err := cc.svc.Users.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to create company")
		return
	}
	company, err := cc.svc.Companies.Create(c.Request.Context(), owner, services.CompanyInput(input))
	if err != nil {
		respondServiceError(c, err, "Failed to create company")
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (cc *CompanyController) List(c *gin.Context) {
	companies, err := cc.svc.Companies.ListForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch companies")
		return
	}
	c.JSON(http.StatusOK, companies)
}

func (cc *CompanyController) Get(c *gin.Context) {
	company, err := cc.svc.Companies.Get(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch company")
		return
	}
	c.JSON(http.StatusOK, company)
}

// GetBySlug is public: the portal needs the company's name and branding
// before the client has an account.
func (cc *CompanyController) GetBySlug(c *gin.Context) {
	company, err := cc.svc.Companies.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch company")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":           company.ID,
		"name":         company.Name,
		"slug":         company.Slug,
		"address":      company.Address,
		"phone":        company.Phone,
		"description":  company.Description,
		"logoUrl":      company.LogoURL,
		"primaryColor": company.PrimaryColor,
	})
}

func (cc *CompanyController) Update(c *gin.Context) {
	var input services.CompanyUpdate
	if !bindJSON(c, &input) {
		return
	}
	company, err := cc.svc.Companies.Update(c.Request.Context(), middleware.CompanyID(c), input)
	if err != nil {
		respondServiceError(c, err, "Failed to update company")
		return
	}
	c.JSON(http.StatusOK, company)
}

func (cc *CompanyController) Delete(c *gin.Context) {
	if err := cc.svc.Companies.Delete(c.Request.Context(), middleware.CompanyID(c), currentUserID(c)); err != nil {
		respondServiceError(c, err, "Failed to delete company")
		return
	}
	c.Status(http.StatusNoContent)
}

func (cc *CompanyController) Members(c *gin.Context) {
	members, err := cc.svc.Companies.Members(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch members")
		return
	}
	c.JSON(http.StatusOK, members)
}

func (cc *CompanyController) AddMember(c *gin.Context) {
	var input AddMemberInput
	if !bindJSON(c, &input) {
		return
	}
	member, err := cc.svc.Companies.AddMember(c.Request.Context(), middleware.CompanyID(c), currentUserID(c), input.UserID)
	if err != nil {
		respondServiceError(c, err, "Failed to add member")
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (cc *CompanyController) RemoveMember(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	if userID == currentUserID(c) {
		utils.RespondWithError(c, http.StatusBadRequest, "You cannot remove yourself")
		return
	}
	if err := cc.svc.Companies.RemoveMember(c.Request.Context(), middleware.CompanyID(c), userID); err != nil {
		respondServiceError(c, err, "Failed to remove member")
		return
	}
	c.Status(http.StatusNoContent)
}
