// controllers/service.go
package controllers

import (
	"net/http"

	"barberflow-backend/middleware"
	"barberflow-backend/models"
	"barberflow-backend/services"

	"github.com/gin-gonic/gin"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	CompanyID   uint    `json:"companyId" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"min=0"`
	Duration    int     `json:"duration" binding:"min=0"` // in minutes
	Category    string  `json:"category"`
	IsActive    *bool   `json:"isActive"`
}

type ServiceController struct {
	base
}

func NewServiceController(svc *services.Services) *ServiceController {
	return &ServiceController{base: newBase(svc)}
}

// CreateService adds a catalog entry and opens its commission rules
func (sc *ServiceController) Create(c *gin.Context) {
	var input CreateServiceInput
	if !bindJSON(c, &input) {
		return
	}
	if !sc.authorizeCompany(c, input.CompanyID) {
		return
	}
	service, err := sc.svc.Catalog.Create(c.Request.Context(), services.ServiceInput(input))
	if err != nil {
		respondServiceError(c, err, "Failed to create service")
		return
	}
	c.JSON(http.StatusCreated, service)
}

func (sc *ServiceController) List(c *gin.Context) {
	onlyActive := c.Query("active") == "true"
	catalog, err := sc.svc.Catalog.List(c.Request.Context(), middleware.CompanyID(c), onlyActive)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch services")
		return
	}
	c.JSON(http.StatusOK, catalog)
}

// load fetches :id and checks the caller can access its company.
func (sc *ServiceController) load(c *gin.Context) (*models.Service, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	service, err := sc.svc.Catalog.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch service")
		return nil, false
	}
	if !sc.authorizeCompany(c, service.CompanyID) {
		return nil, false
	}
	return service, true
}

func (sc *ServiceController) Get(c *gin.Context) {
	service, ok := sc.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, service)
}

func (sc *ServiceController) Update(c *gin.Context) {
	service, ok := sc.load(c)
	if !ok {
		return
	}
	var input CreateServiceInput
	input.CompanyID = service.CompanyID
	if !bindJSON(c, &input) {
		return
	}
	updated, err := sc.svc.Catalog.Update(c.Request.Context(), service.ID, services.ServiceInput(input))
	if err != nil {
		respondServiceError(c, err, "Failed to update service")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (sc *ServiceController) Delete(c *gin.Context) {
	service, ok := sc.load(c)
	if !ok {
		return
	}
	if err := sc.svc.Catalog.Delete(c.Request.Context(), service.ID); err != nil {
		respondServiceError(c, err, "Failed to delete service")
		return
	}
	c.Status(http.StatusNoContent)
}
