package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"barberflow-backend/models"
	"barberflow-backend/utils"

	"gorm.io/gorm"
)

type AuthService struct {
	db     *gorm.DB
	secret []byte
	now    func() time.Time
}

func NewAuthService(db *gorm.DB, secret []byte, now func() time.Time) *AuthService {
	return &AuthService{db: db, secret: secret, now: now}
}

type RegisterInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Phone          string `json:"phone"`
	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
}

type RegisterResult struct {
	User    *models.User    `json:"user"`
	Company *models.Company `json:"company,omitempty"`
	Token   string          `json:"token"`
}

// Register creates an ADMIN account. With a company name it also creates the
// company, the owner's commission account and this year's goals.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	if strings.TrimSpace(in.Name) == "" || in.Email == "" || in.Password == "" {
		return nil, validationError("name, email and password are required")
	}
	if in.Phone != "" && !utils.ValidatePhone(in.Phone) {
		return nil, validationError("invalid phone number")
	}

	result := &RegisterResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureEmailFree(tx, in.Email, 0); err != nil {
			return err
		}
		user := models.User{
			Name:     strings.TrimSpace(in.Name),
			Email:    in.Email,
			Password: in.Password,
			Phone:    utils.CleanPhone(in.Phone),
			Role:     models.RoleAdmin,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		perm, err := assignPermissions(tx, user.ID, user.Role, nil)
		if err != nil {
			return err
		}
		user.Permission = perm
		result.User = &user

		if strings.TrimSpace(in.CompanyName) == "" {
			return nil
		}
		company, err := createCompany(tx, user.ID, CompanyInput{Name: in.CompanyName, Address: in.CompanyAddress})
		if err != nil {
			return err
		}
		if _, err := ensureCommissionConfig(tx, user.ID, company.ID); err != nil {
			return err
		}
		if _, err := provisionGoals(tx, user.ID, company.ID, s.now()); err != nil {
			return err
		}
		result.Company = company
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Token, err = utils.GenerateUserToken(result.User.ID, s.secret); err != nil {
		return nil, err
	}
	return result, nil
}

// ensureEmailFree rejects an email used by another live user. The match is
// exact and case sensitive.
func ensureEmailFree(tx *gorm.DB, email string, exceptID uint) error {
	var count int64
	q := tx.Model(&models.User{}).Where("email = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailInUse
	}
	return nil
}

// Login never tells an unknown email apart from a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	db := s.db.WithContext(ctx)
	var user models.User
	if err := db.Preload("Permission").Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("last_login", now).Error; err != nil {
		return nil, "", err
	}
	user.LastLogin = &now

	token, err := utils.GenerateUserToken(user.ID, s.secret)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}
