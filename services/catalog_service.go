package services

import (
	"context"
	"strings"

	"barberflow-backend/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CatalogService manages the services a company offers.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

type ServiceInput struct {
	CompanyID   uint    `json:"companyId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
	Category    string  `json:"category"`
	IsActive    *bool   `json:"isActive"`
}

func (in ServiceInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationError("service name is required")
	}
	if in.Price < 0 {
		return validationError("price cannot be negative")
	}
	if in.Duration < 0 {
		return validationError("duration cannot be negative")
	}
	return nil
}

// Create stores the service and, in the same transaction, opens a default
// commission rule for it on every member's config.
func (s *CatalogService) Create(ctx context.Context, in ServiceInput) (*models.Service, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	service := models.Service{
		CompanyID:   in.CompanyID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Duration:    in.Duration,
		Category:    in.Category,
		IsActive:    in.IsActive == nil || *in.IsActive,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&service).Error; err != nil {
			return err
		}
		rules, err := createRulesForService(tx, &service)
		if err != nil {
			return err
		}
		zap.L().Debug("commission rules created for service",
			zap.Uint("serviceId", service.ID), zap.Int("rules", rules))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (s *CatalogService) List(ctx context.Context, companyID uint, onlyActive bool) ([]models.Service, error) {
	q := s.db.WithContext(ctx).Where("company_id = ?", companyID)
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}
	var catalog []models.Service
	err := q.Order("name ASC").Find(&catalog).Error
	return catalog, err
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Service, error) {
	var service models.Service
	if err := s.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, translate(err, "service")
	}
	return &service, nil
}

func (s *CatalogService) Update(ctx context.Context, id uint, in ServiceInput) (*models.Service, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	service, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"name":        strings.TrimSpace(in.Name),
		"description": in.Description,
		"price":       in.Price,
		"duration":    in.Duration,
		"category":    in.Category,
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if err := s.db.WithContext(ctx).Model(service).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	service, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(service).Error
}
