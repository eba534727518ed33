package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barberflow-backend/metrics"
	"barberflow-backend/models"
	"barberflow-backend/utils"

	"gorm.io/gorm"
)

const (
	SourceStaff  = "staff"
	SourcePortal = "portal"
)

type AppointmentService struct {
	db *gorm.DB
}

func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{db: db}
}

type ServiceLineInput struct {
	ServiceID uint `json:"serviceId"`
	Quantity  int  `json:"quantity"`
}

type ProductLineInput struct {
	ProductID uint `json:"productId"`
	Quantity  *int `json:"quantity"`
}

type AppointmentInput struct {
	CompanyID   uint               `json:"companyId"`
	UserID      uint               `json:"userId"`
	ClientID    uint               `json:"clientId"`
	ScheduledAt time.Time          `json:"scheduledAt"`
	Notes       string             `json:"notes"`
	Services    []ServiceLineInput `json:"services"`
	Products    []ProductLineInput `json:"products"`
}

type AppointmentUpdate struct {
	UserID      *uint      `json:"userId"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	Notes       *string    `json:"notes"`
}

type AppointmentFilter struct {
	CompanyID uint
	UserID    *uint
	ClientID  *uint
	Status    models.AppointmentStatus
	Period    *utils.Period
}

// Create books a PENDING appointment. Lines are priced from the catalog and
// product stock is taken in the same transaction.
func (s *AppointmentService) Create(ctx context.Context, in AppointmentInput, source string) (*models.Appointment, error) {
	if in.UserID == 0 || in.ClientID == 0 {
		return nil, validationError("userId and clientId are required")
	}
	if in.ScheduledAt.IsZero() {
		return nil, validationError("scheduledAt is required")
	}
	if len(in.Services) == 0 && len(in.Products) == 0 {
		return nil, validationError("at least one service or product is required")
	}

	appointment := models.Appointment{
		CompanyID:   in.CompanyID,
		UserID:      in.UserID,
		ClientID:    in.ClientID,
		Status:      models.StatusPending,
		ScheduledAt: in.ScheduledAt.UTC(),
		Notes:       in.Notes,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := authorizeCompany(tx, in.UserID, in.CompanyID); err != nil {
			if errors.Is(err, ErrForbidden) {
				return validationError("staff user is not a member of this company")
			}
			return err
		}
		var client models.Client
		if err := tx.Where("id = ? AND company_id = ?", in.ClientID, in.CompanyID).First(&client).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return validationError("client %d does not belong to this company", in.ClientID)
			}
			return err
		}

		for _, line := range in.Services {
			quantity := line.Quantity
			if quantity == 0 {
				quantity = 1
			}
			if quantity < 0 {
				return validationError("service quantity must be positive")
			}
			var service models.Service
			if err := tx.Where("id = ? AND company_id = ?", line.ServiceID, in.CompanyID).First(&service).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return validationError("service %d does not belong to this company", line.ServiceID)
				}
				return err
			}
			appointment.Services = append(appointment.Services, models.AppointmentService{
				ServiceID: service.ID,
				Quantity:  quantity,
				Price:     service.Price,
			})
		}

		for _, line := range in.Products {
			if line.Quantity != nil && *line.Quantity <= 0 {
				return validationError("product quantity must be positive")
			}
			var product models.Product
			if err := tx.Where("id = ? AND company_id = ?", line.ProductID, in.CompanyID).First(&product).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return validationError("product %d does not belong to this company", line.ProductID)
				}
				return err
			}
			entry := models.ProductAppointment{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.Price,
			}
			if err := decrementStock(tx, product.ID, entry.Units()); err != nil {
				if errors.Is(err, ErrInsufficientStock) {
					return fmt.Errorf("%w for product %q", ErrInsufficientStock, product.Name)
				}
				return err
			}
			appointment.Products = append(appointment.Products, entry)
		}

		return tx.Create(&appointment).Error
	})
	if err != nil {
		return nil, err
	}
	metrics.AppointmentCreated(source)
	return s.Get(ctx, appointment.ID)
}

func (s *AppointmentService) withDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Client").Preload("Services.Service").Preload("Products.Product")
}

func (s *AppointmentService) Get(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.withDetails(s.db.WithContext(ctx)).First(&appointment, id).Error; err != nil {
		return nil, translate(err, "appointment")
	}
	return &appointment, nil
}

func (s *AppointmentService) List(ctx context.Context, f AppointmentFilter) ([]models.Appointment, error) {
	q := s.withDetails(s.db.WithContext(ctx)).Where("company_id = ?", f.CompanyID)
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.Status != "" {
		if !f.Status.Valid() {
			return nil, validationError("invalid status %q", f.Status)
		}
		q = q.Where("status = ?", f.Status)
	}
	if f.Period != nil {
		q = q.Where("scheduled_at BETWEEN ? AND ?", f.Period.Start, f.Period.End)
	}
	var appointments []models.Appointment
	err := q.Order("scheduled_at DESC").Find(&appointments).Error
	return appointments, err
}

// ListByClient returns a client's appointments across the portal.
func (s *AppointmentService) ListByClient(ctx context.Context, clientID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.withDetails(s.db.WithContext(ctx)).
		Where("client_id = ?", clientID).
		Order("scheduled_at DESC").
		Find(&appointments).Error
	return appointments, err
}

// Pending lists a company's PENDING appointments, soonest first.
func (s *AppointmentService) Pending(ctx context.Context, companyID uint, userID *uint) ([]models.Appointment, error) {
	q := s.withDetails(s.db.WithContext(ctx)).
		Where("company_id = ? AND status = ?", companyID, models.StatusPending)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var appointments []models.Appointment
	err := q.Order("scheduled_at ASC").Find(&appointments).Error
	return appointments, err
}

func (s *AppointmentService) Update(ctx context.Context, id uint, in AppointmentUpdate) (*models.Appointment, error) {
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if isTerminal(appointment.Status) {
		return nil, validationError("a %s appointment cannot be changed", appointment.Status)
	}
	updates := map[string]interface{}{}
	if in.ScheduledAt != nil {
		if in.ScheduledAt.IsZero() {
			return nil, validationError("scheduledAt cannot be empty")
		}
		updates["scheduled_at"] = in.ScheduledAt.UTC()
	}
	if in.Notes != nil {
		updates["notes"] = *in.Notes
	}
	if in.UserID != nil {
		if err := authorizeCompany(s.db.WithContext(ctx), *in.UserID, appointment.CompanyID); err != nil {
			if errors.Is(err, ErrForbidden) {
				return nil, validationError("staff user is not a member of this company")
			}
			return nil, err
		}
		updates["user_id"] = *in.UserID
	}
	if len(updates) == 0 {
		return appointment, nil
	}
	if err := s.db.WithContext(ctx).Model(&models.Appointment{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func isTerminal(status models.AppointmentStatus) bool {
	return status == models.StatusCompleted || status == models.StatusCanceled
}

// UpdateStatus moves an appointment along its lifecycle. Canceling puts the
// booked products back in stock.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id uint, status models.AppointmentStatus) (*models.Appointment, error) {
	if !status.Valid() {
		return nil, validationError("invalid status %q", status)
	}
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appointment.Status.CanTransition(status) {
		return nil, fmt.Errorf("%w from %s to %s", ErrInvalidTransition, appointment.Status, status)
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Appointment{}).Where("id = ?", id).Update("status", status).Error; err != nil {
			return err
		}
		if status == models.StatusCanceled {
			return restock(tx, appointment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func restock(tx *gorm.DB, appointment *models.Appointment) error {
	for _, line := range appointment.Products {
		if err := incrementStock(tx, line.ProductID, line.Units()); err != nil {
			return err
		}
	}
	return nil
}

// Delete soft deletes the appointment. Stock of an open appointment is
// returned first.
func (s *AppointmentService) Delete(ctx context.Context, id uint) error {
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !isTerminal(appointment.Status) {
			if err := restock(tx, appointment); err != nil {
				return err
			}
		}
		return tx.Delete(&models.Appointment{}, id).Error
	})
}
