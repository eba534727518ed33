package models

import (
	"barberflow-backend/utils"

	"gorm.io/gorm"
)

// Client is an end customer of a company. Password is only set for clients
// who registered through the portal; staff-created clients have none.
type Client struct {
	Model
	CompanyID uint   `gorm:"index;not null" json:"companyId"`
	Name      string `gorm:"not null" json:"name"`
	Email     string `gorm:"index" json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"-"`
	Notes     string `json:"notes"`

	CreatedByUserID *uint `gorm:"index" json:"createdByUserId,omitempty"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.Password == "" {
		return nil
	}
	hashed, err := utils.HashPassword(c.Password)
	if err != nil {
		return err
	}
	c.Password = hashed
	return
}
