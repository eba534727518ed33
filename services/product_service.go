package services

import (
	"context"
	"strings"

	"barberflow-backend/models"

	"gorm.io/gorm"
)

type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

type ProductInput struct {
	CompanyID   uint    `json:"companyId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	IsActive    *bool   `json:"isActive"`
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationError("product name is required")
	}
	if in.Price < 0 {
		return validationError("price cannot be negative")
	}
	if in.Stock < 0 {
		return validationError("stock cannot be negative")
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	product := models.Product{
		CompanyID:   in.CompanyID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		IsActive:    in.IsActive == nil || *in.IsActive,
	}
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) List(ctx context.Context, companyID uint) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).Where("company_id = ?", companyID).Order("name ASC").Find(&products).Error
	return products, err
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, translate(err, "product")
	}
	return &product, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"name":        strings.TrimSpace(in.Name),
		"description": in.Description,
		"price":       in.Price,
		"stock":       in.Stock,
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if err := s.db.WithContext(ctx).Model(product).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// UpdateStock takes quantity units out of stock.
func (s *ProductService) UpdateStock(ctx context.Context, id uint, quantity int) (*models.Product, error) {
	if quantity <= 0 {
		return nil, validationError("quantity must be positive")
	}
	if err := decrementStock(s.db.WithContext(ctx), id, quantity); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// decrementStock is a single conditional update so concurrent bookings can
// never drive stock below zero.
func decrementStock(db *gorm.DB, productID uint, quantity int) error {
	result := db.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	var count int64
	if err := db.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound("product")
	}
	return ErrInsufficientStock
}

func incrementStock(db *gorm.DB, productID uint, quantity int) error {
	return db.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("stock + ?", quantity)).Error
}

// Delete refuses while any appointment line still references the product.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	db := s.db.WithContext(ctx)
	var refs int64
	if err := db.Model(&models.ProductAppointment{}).Where("product_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return ErrProductInUse
	}
	return db.Delete(product).Error
}
