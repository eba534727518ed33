package services

import (
	"context"
	"errors"
	"strings"

	"barberflow-backend/models"
	"barberflow-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CompanyService struct {
	db *gorm.DB
}

func NewCompanyService(db *gorm.DB) *CompanyService {
	return &CompanyService{db: db}
}

type CompanyInput struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Description  string `json:"description"`
	LogoURL      string `json:"logoUrl"`
	PrimaryColor string `json:"primaryColor"`
}

// CompanyUpdate only touches the fields that are set.
type CompanyUpdate struct {
	Name         *string `json:"name"`
	Address      *string `json:"address"`
	Phone        *string `json:"phone"`
	Description  *string `json:"description"`
	LogoURL      *string `json:"logoUrl"`
	PrimaryColor *string `json:"primaryColor"`
}

// Create makes a company owned by owner. Only ADMIN users may create one.
func (s *CompanyService) Create(ctx context.Context, owner *models.User, in CompanyInput) (*models.Company, error) {
	if owner.Role != models.RoleAdmin {
		return nil, forbidden("only administrators can create companies")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, validationError("company name is required")
	}
	if in.Phone != "" && !utils.ValidatePhone(in.Phone) {
		return nil, validationError("invalid phone number")
	}

	var company *models.Company
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		company, err = createCompany(tx, owner.ID, in)
		return err
	})
	return company, err
}

// createCompany runs the two-phase create: the company first, then its empty
// working hours and settings, the owner membership, and finally the patch of
// the company's settings id.
func createCompany(tx *gorm.DB, ownerID uint, in CompanyInput) (*models.Company, error) {
	company := models.Company{
		Name:         strings.TrimSpace(in.Name),
		Address:      in.Address,
		Phone:        in.Phone,
		Slug:         utils.CompanySlug(in.Name),
		OwnerID:      ownerID,
		Description:  in.Description,
		LogoURL:      in.LogoURL,
		PrimaryColor: in.PrimaryColor,
	}
	if err := tx.Create(&company).Error; err != nil {
		return nil, err
	}

	hours := models.WorkingHours{Days: datatypes.JSON("{}")}
	if err := tx.Create(&hours).Error; err != nil {
		return nil, err
	}

	settings := models.CompanySettings{
		CompanyID:             company.ID,
		AppointmentInterval:   models.DefaultAppointmentInterval,
		NotifyNewAppointments: true,
		NotifyCancellations:   true,
		SendReminders:         true,
		SMSNotifications:      true,
		ReminderTemplate:      models.DefaultReminderTemplate,
		WorkingHoursID:        hours.ID,
	}
	if err := tx.Create(&settings).Error; err != nil {
		return nil, err
	}

	member := models.CompanyMember{CompanyID: company.ID, UserID: ownerID}
	if err := tx.Create(&member).Error; err != nil {
		return nil, err
	}

	if err := tx.Model(&company).Update("settings_id", settings.ID).Error; err != nil {
		return nil, err
	}
	company.SettingsID = &settings.ID
	company.Settings = &settings
	return &company, nil
}

// ListForUser returns the companies the user owns or belongs to.
func (s *CompanyService) ListForUser(ctx context.Context, userID uint) ([]models.Company, error) {
	db := s.db.WithContext(ctx)
	var companies []models.Company
	err := db.Where("id IN (?)", accessibleCompanyIDs(db, userID)).
		Order("name ASC").Find(&companies).Error
	return companies, err
}

// accessibleCompanyIDs selects the ids of the live companies userID owns or
// belongs to.
func accessibleCompanyIDs(db *gorm.DB, userID uint) *gorm.DB {
	memberships := db.Model(&models.CompanyMember{}).Select("company_id").Where("user_id = ?", userID)
	return db.Model(&models.Company{}).Select("id").
		Where("owner_id = ?", userID).
		Or("id IN (?)", memberships)
}

// foreignCompanies counts the companies targetID owns or belongs to that
// actorID cannot access.
func foreignCompanies(db *gorm.DB, actorID, targetID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Company{}).
		Where("id IN (?)", accessibleCompanyIDs(db, targetID)).
		Where("id NOT IN (?)", accessibleCompanyIDs(db, actorID)).
		Count(&count).Error
	return count, err
}

// Authorize returns nil when userID owns or belongs to companyID.
func (s *CompanyService) Authorize(ctx context.Context, userID, companyID uint) error {
	return authorizeCompany(s.db.WithContext(ctx), userID, companyID)
}

func authorizeCompany(db *gorm.DB, userID, companyID uint) error {
	var company models.Company
	if err := db.Select("id", "owner_id").First(&company, companyID).Error; err != nil {
		return translate(err, "company")
	}
	if company.OwnerID == userID {
		return nil
	}
	ok, err := isMember(db, companyID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return forbidden("you do not have access to this company")
	}
	return nil
}

func isMember(db *gorm.DB, companyID, userID uint) (bool, error) {
	var count int64
	err := db.Model(&models.CompanyMember{}).
		Where("company_id = ? AND user_id = ?", companyID, userID).
		Count(&count).Error
	return count > 0, err
}

func (s *CompanyService) Get(ctx context.Context, id uint) (*models.Company, error) {
	var company models.Company
	err := s.db.WithContext(ctx).Preload("Settings.WorkingHours").First(&company, id).Error
	if err != nil {
		return nil, translate(err, "company")
	}
	return &company, nil
}

// FindBySlug is used by the client portal to resolve a company.
func (s *CompanyService) FindBySlug(ctx context.Context, slug string) (*models.Company, error) {
	var company models.Company
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&company).Error; err != nil {
		return nil, translate(err, "company")
	}
	return &company, nil
}

func (s *CompanyService) Update(ctx context.Context, id uint, in CompanyUpdate) (*models.Company, error) {
	company, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, validationError("company name cannot be empty")
		}
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		if *in.Phone != "" && !utils.ValidatePhone(*in.Phone) {
			return nil, validationError("invalid phone number")
		}
		updates["phone"] = *in.Phone
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.LogoURL != nil {
		updates["logo_url"] = *in.LogoURL
	}
	if in.PrimaryColor != nil {
		updates["primary_color"] = *in.PrimaryColor
	}
	if len(updates) == 0 {
		return company, nil
	}
	if err := s.db.WithContext(ctx).Model(&models.Company{}).Where("id = ?", company.ID).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete soft deletes a company. Only the owner may do it.
func (s *CompanyService) Delete(ctx context.Context, id, userID uint) error {
	company, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if company.OwnerID != userID {
		return forbidden("only the owner can delete a company")
	}
	return s.db.WithContext(ctx).Delete(company).Error
}

func (s *CompanyService) Members(ctx context.Context, companyID uint) ([]models.CompanyMember, error) {
	var members []models.CompanyMember
	err := s.db.WithContext(ctx).
		Joins("JOIN users ON users.id = company_members.user_id AND users.deleted_at IS NULL").
		Preload("User").
		Where("company_members.company_id = ?", companyID).
		Order("company_members.created_at ASC").
		Find(&members).Error
	return members, err
}

// AddMember links a user to a company and opens their commission account.
// Users who own or belong to a company the actor cannot access are reported
// as not found.
func (s *CompanyService) AddMember(ctx context.Context, companyID, actorID, userID uint) (*models.CompanyMember, error) {
	var member *models.CompanyMember
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return translate(err, "user")
		}
		foreign, err := foreignCompanies(tx, actorID, userID)
		if err != nil {
			return err
		}
		if foreign > 0 {
			return notFound("user")
		}
		if member, err = addMember(tx, companyID, userID); err != nil {
			return err
		}
		_, err = ensureCommissionConfig(tx, userID, companyID)
		return err
	})
	return member, err
}

// addMember restores a soft-deleted membership instead of inserting a second
// row for the same (company, user) pair.
func addMember(tx *gorm.DB, companyID, userID uint) (*models.CompanyMember, error) {
	var member models.CompanyMember
	err := tx.Unscoped().Where("company_id = ? AND user_id = ?", companyID, userID).First(&member).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		member = models.CompanyMember{CompanyID: companyID, UserID: userID}
		if err := tx.Create(&member).Error; err != nil {
			return nil, err
		}
		return &member, nil
	case err != nil:
		return nil, err
	}
	if !member.DeletedAt.Valid {
		return nil, ErrAlreadyMember
	}
	if err := tx.Unscoped().Model(&member).Update("deleted_at", nil).Error; err != nil {
		return nil, err
	}
	member.DeletedAt = gorm.DeletedAt{}
	return &member, nil
}

func (s *CompanyService) RemoveMember(ctx context.Context, companyID, userID uint) error {
	company, err := s.Get(ctx, companyID)
	if err != nil {
		return err
	}
	if company.OwnerID == userID {
		return validationError("the owner cannot be removed from the company")
	}
	result := s.db.WithContext(ctx).
		Where("company_id = ? AND user_id = ?", companyID, userID).
		Delete(&models.CompanyMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("member")
	}
	return nil
}
