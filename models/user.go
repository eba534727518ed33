package models

import (
	"barberflow-backend/utils"
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleUser    Role = "USER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

type User struct {
	Model
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"index;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Phone    string `json:"phone"`
	Role     Role   `gorm:"type:varchar(20);not null" json:"role"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`

	Permission *Permission `gorm:"foreignKey:UserID" json:"permission,omitempty"`
}

// Hash the plain password before the row is written.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.Role == "" {
		u.Role = RoleUser
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
