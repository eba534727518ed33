package models

// Service is a catalog entry a company offers (haircut, shave, ...).
type Service struct {
	Model
	CompanyID   uint    `gorm:"index;not null" json:"companyId"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Duration    int     `json:"duration"` // in minutes
	Category    string  `json:"category"`
	IsActive    bool    `gorm:"not null;default:false" json:"isActive"`
}

type Product struct {
	Model
	CompanyID   uint    `gorm:"index;not null" json:"companyId"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       int     `gorm:"not null;default:0" json:"stock"`
	IsActive    bool    `gorm:"not null;default:false" json:"isActive"`
}
