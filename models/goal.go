package models

// Goal is the monthly revenue target of a staff member in a company.
type Goal struct {
	Model
	UserID    uint    `gorm:"not null;uniqueIndex:idx_goal" json:"userId"`
	CompanyID uint    `gorm:"not null;uniqueIndex:idx_goal" json:"companyId"`
	Month     int     `gorm:"not null;uniqueIndex:idx_goal" json:"month"`
	Year      int     `gorm:"not null;uniqueIndex:idx_goal" json:"year"`
	Target    float64 `gorm:"type:decimal(10,2);not null;default:0" json:"target"`
}
