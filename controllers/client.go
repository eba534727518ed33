package controllers

import (
	"net/http"
	"time"

	"barberflow-backend/middleware"
	"barberflow-backend/models"
	"barberflow-backend/services"
	"barberflow-backend/utils"

	"github.com/gin-gonic/gin"
)

type ClientInput struct {
	CompanyID uint   `json:"companyId" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
}

type ClientRegisterInput struct {
	CompanySlug string `json:"companySlug" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Phone       string `json:"phone"`
}

type ClientLoginInput struct {
	CompanySlug string `json:"companySlug"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

type PortalBookingInput struct {
	UserID      uint                        `json:"userId" binding:"required"`
	ScheduledAt time.Time                   `json:"scheduledAt"`
	Notes       string                      `json:"notes"`
	Services    []services.ServiceLineInput `json:"services" binding:"required,min=1"`
}

type ClientController struct {
	base
}

func NewClientController(svc *services.Services) *ClientController {
	return &ClientController{base: newBase(svc)}
}

func (cc *ClientController) Create(c *gin.Context) {
	var input ClientInput
	if !bindJSON(c, &input) {
		return
	}
	if !cc.authorizeCompany(c, input.CompanyID) {
		return
	}
	client, err := cc.svc.Clients.Create(c.Request.Context(), currentUserID(c), services.ClientInput(input))
	if err != nil {
		respondServiceError(c, err, "Failed to create client")
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (cc *ClientController) List(c *gin.Context) {
	owner, ok := scopeToUser(c, models.PermViewAllClients, models.PermViewOwnClients, nil)
	if !ok {
		return
	}
	clients, err := cc.svc.Clients.List(c.Request.Context(), middleware.CompanyID(c), owner)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch clients")
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (cc *ClientController) load(c *gin.Context) (*models.Client, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	client, err := cc.svc.Clients.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch client")
		return nil, false
	}
	if !cc.authorizeCompany(c, client.CompanyID) {
		return nil, false
	}
	if middleware.HasPermission(c, models.PermViewAllClients) {
		return client, true
	}
	owned, err := cc.svc.Clients.IsOwnedBy(c.Request.Context(), client, currentUserID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch client")
		return nil, false
	}
	if !owned {
		utils.RespondWithError(c, http.StatusNotFound, "client not found")
		return nil, false
	}
	return client, true
}

func (cc *ClientController) Get(c *gin.Context) {
	client, ok := cc.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, client)
}

func (cc *ClientController) Update(c *gin.Context) {
	client, ok := cc.load(c)
	if !ok {
		return
	}
	var input ClientInput
	input.CompanyID = client.CompanyID
	if !bindJSON(c, &input) {
		return
	}
	updated, err := cc.svc.Clients.Update(c.Request.Context(), client.ID, services.ClientInput(input))
	if err != nil {
		respondServiceError(c, err, "Failed to update client")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (cc *ClientController) Delete(c *gin.Context) {
	client, ok := cc.load(c)
	if !ok {
		return
	}
	if err := cc.svc.Clients.Delete(c.Request.Context(), client.ID); err != nil {
		respondServiceError(c, err, "Failed to delete client")
		return
	}
	c.Status(http.StatusNoContent)
}

func (cc *ClientController) Register(c *gin.Context) {
	var input ClientRegisterInput
	if !bindJSON(c, &input) {
		return
	}
	client, token, err := cc.svc.Clients.Register(c.Request.Context(), services.ClientRegisterInput(input))
	if err != nil {
		respondServiceError(c, err, "Failed to register client")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"client":  client,
	})
}

func (cc *ClientController) Login(c *gin.Context) {
	var input ClientLoginInput
	if !bindJSON(c, &input) {
		return
	}
	client, token, err := cc.svc.Clients.Login(c.Request.Context(), input.CompanySlug, input.Email, input.Password)
	if err != nil {
		respondServiceError(c, err, "Failed to log in")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"client": client,
	})
}

func (cc *ClientController) PortalMe(c *gin.Context) {
	clientID, _ := middleware.ClientID(c)
	client, err := cc.svc.Clients.Get(c.Request.Context(), clientID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch client")
		return
	}
	c.JSON(http.StatusOK, client)
}

func (cc *ClientController) PortalAppointments(c *gin.Context) {
	clientID, _ := middleware.ClientID(c)
	appointments, err := cc.svc.Clients.Appointments(c.Request.Context(), clientID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch appointments")
		return
	}
	c.JSON(http.StatusOK, appointments)
}

func (cc *ClientController) PortalBook(c *gin.Context) {
	clientID, _ := middleware.ClientID(c)
	var input PortalBookingInput
	if !bindJSON(c, &input) {
		return
	}
	appointment, err := cc.svc.Clients.Book(c.Request.Context(), clientID, services.PortalBookingInput(input))
	if err != nil {
		respondServiceError(c, err, "Failed to book appointment")
		return
	}
	c.JSON(http.StatusCreated, appointment)
}
