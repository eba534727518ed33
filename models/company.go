package models

// Company is a tenant. SettingsID is filled in after the settings row exists,
// since the settings row itself references the company.
type Company struct {
	Model
	Name         string `gorm:"not null" json:"name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Slug         string `gorm:"uniqueIndex;not null" json:"slug"`
	OwnerID      uint   `gorm:"index;not null" json:"ownerId"`
	Description  string `json:"description"`
	LogoURL      string `json:"logoUrl"`
	PrimaryColor string `json:"primaryColor"`
	SettingsID   *uint  `json:"settingsId"`

	Owner    *User            `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Settings *CompanySettings `gorm:"foreignKey:SettingsID" json:"settings,omitempty"`
}

type CompanyMember struct {
	Model
	CompanyID uint `gorm:"not null;uniqueIndex:idx_company_member" json:"companyId"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_company_member;index" json:"userId"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}
