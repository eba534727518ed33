package models

import (
	"time"

	"gorm.io/gorm"
)

// Model replaces gorm.Model so the API exposes camelCase keys. DeletedAt keeps
// gorm's soft delete: every query through the ORM skips rows where it is set.
type Model struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
