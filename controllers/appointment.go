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

type CreateAppointmentInput struct {
	CompanyID   uint                        `json:"companyId" binding:"required"`
	UserID      uint                        `json:"userId"`
	ClientID    uint                        `json:"clientId" binding:"required"`
	ScheduledAt time.Time                   `json:"scheduledAt"`
	Notes       string                      `json:"notes"`
	Services    []services.ServiceLineInput `json:"services"`
	Products    []services.ProductLineInput `json:"products"`
}

type UpdateStatusInput struct {
	Status models.AppointmentStatus `json:"status" binding:"required"`
}

type AppointmentController struct {
	base
}

func NewAppointmentController(svc *services.Services) *AppointmentController {
	return &AppointmentController{base: newBase(svc)}
}

// Create books an appointment. Without userId the caller is the staff member.
func (ac *AppointmentController) Create(c *gin.Context) {
	var input CreateAppointmentInput
	if !bindJSON(c, &input) {
		return
	}
	if !ac.authorizeCompany(c, input.CompanyID) {
		return
	}
	if input.UserID == 0 {
		input.UserID = currentUserID(c)
	}

	appointment, err := ac.svc.Appointments.Create(c.Request.Context(), services.AppointmentInput(input), services.SourceStaff)
	if err != nil {
		respondServiceError(c, err, "Failed to create appointment")
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

func (ac *AppointmentController) List(c *gin.Context) {
	requested, ok := optionalQueryUint(c, "userId")
	if !ok {
		return
	}
	userID, ok := scopeToUser(c, models.PermViewAllAppointments, models.PermViewOwnAppointments, requested)
	if !ok {
		return
	}
	filter := services.AppointmentFilter{
		CompanyID: middleware.CompanyID(c),
		UserID:    userID,
		Status:    models.AppointmentStatus(c.Query("status")),
	}
	if c.Query("startDate") != "" || c.Query("endDate") != "" || c.Query("period") != "" {
		period, ok := ac.resolvePeriod(c)
		if !ok {
			return
		}
		filter.Period = &period
	}

	appointments, err := ac.svc.Appointments.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch appointments")
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// Pending lists PENDING appointments in scheduled order.
func (ac *AppointmentController) Pending(c *gin.Context) {
	userID, ok := scopeToUser(c, models.PermViewAllAppointments, models.PermViewOwnAppointments, nil)
	if !ok {
		return
	}
	appointments, err := ac.svc.Appointments.Pending(c.Request.Context(), middleware.CompanyID(c), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch pending appointments")
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// load fetches :id, checks company access and, for callers limited to their
// own appointments, that the caller is the assigned staff member.
func (ac *AppointmentController) load(c *gin.Context) (*models.Appointment, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	appointment, err := ac.svc.Appointments.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch appointment")
		return nil, false
	}
	if !ac.authorizeCompany(c, appointment.CompanyID) {
		return nil, false
	}
	if !middleware.HasPermission(c, models.PermViewAllAppointments) && appointment.UserID != currentUserID(c) {
		utils.RespondWithError(c, http.StatusNotFound, "appointment not found")
		return nil, false
	}
	return appointment, true
}

func (ac *AppointmentController) Get(c *gin.Context) {
	appointment, ok := ac.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, appointment)
}

func (ac *AppointmentController) Update(c *gin.Context) {
	appointment, ok := ac.load(c)
	if !ok {
		return
	}
	var input services.AppointmentUpdate
	if !bindJSON(c, &input) {
		return
	}
	updated, err := ac.svc.Appointments.Update(c.Request.Context(), appointment.ID, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update appointment")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (ac *AppointmentController) UpdateStatus(c *gin.Context) {
	appointment, ok := ac.load(c)
	if !ok {
		return
	}
	var input UpdateStatusInput
	if !bindJSON(c, &input) {
		return
	}
	updated, err := ac.svc.Appointments.UpdateStatus(c.Request.Context(), appointment.ID, input.Status)
	if err != nil {
		respondServiceError(c, err, "Failed to update appointment status")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (ac *AppointmentController) Delete(c *gin.Context) {
	appointment, ok := ac.load(c)
	if !ok {
		return
	}
	if err := ac.svc.Appointments.Delete(c.Request.Context(), appointment.ID); err != nil {
		respondServiceError(c, err, "Failed to delete appointment")
		return
	}
	c.Status(http.StatusNoContent)
}
