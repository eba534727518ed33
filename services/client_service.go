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

type ClientService struct {
	db           *gorm.DB
	secret       []byte
	appointments *AppointmentService
	now          func() time.Time
}

func NewClientService(db *gorm.DB, secret []byte, appointments *AppointmentService, now func() time.Time) *ClientService {
	return &ClientService{db: db, secret: secret, appointments: appointments, now: now}
}

type ClientInput struct {
	CompanyID uint   `json:"companyId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
}

func (in ClientInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationError("client name is required")
	}
	if in.Phone != "" && !utils.ValidatePhone(in.Phone) {
		return validationError("invalid phone number")
	}
	return nil
}

func (s *ClientService) Create(ctx context.Context, createdBy uint, in ClientInput) (*models.Client, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	client := models.Client{
		CompanyID:       in.CompanyID,
		Name:            strings.TrimSpace(in.Name),
		Email:           strings.TrimSpace(in.Email),
		Phone:           utils.CleanPhone(in.Phone),
		Notes:           in.Notes,
		CreatedByUserID: &createdBy,
	}
	if err := s.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// List returns a company's clients. With ownerID set only the clients that
// staff member created or has an appointment with are returned.
func (s *ClientService) List(ctx context.Context, companyID uint, ownerID *uint) ([]models.Client, error) {
	db := s.db.WithContext(ctx)
	q := db.Where("company_id = ?", companyID)
	if ownerID != nil {
		booked := db.Model(&models.Appointment{}).Select("client_id").Where("user_id = ?", *ownerID)
		q = q.Where(db.Where("created_by_user_id = ?", *ownerID).Or("id IN (?)", booked))
	}
	var clients []models.Client
	err := q.Order("name ASC").Find(&clients).Error
	return clients, err
}

func (s *ClientService) Get(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := s.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, translate(err, "client")
	}
	return &client, nil
}

// IsOwnedBy reports whether a staff member created or served the client.
func (s *ClientService) IsOwnedBy(ctx context.Context, client *models.Client, userID uint) (bool, error) {
	if client.CreatedByUserID != nil && *client.CreatedByUserID == userID {
		return true, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("client_id = ? AND user_id = ?", client.ID, userID).
		Count(&count).Error
	return count > 0, err
}

func (s *ClientService) Update(ctx context.Context, id uint, in ClientInput) (*models.Client, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"name":  strings.TrimSpace(in.Name),
		"email": strings.TrimSpace(in.Email),
		"phone": utils.CleanPhone(in.Phone),
		"notes": in.Notes,
	}
	if err := s.db.WithContext(ctx).Model(client).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ClientService) Delete(ctx context.Context, id uint) error {
	client, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(client).Error
}

type ClientRegisterInput struct {
	CompanySlug string `json:"companySlug"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
}

// Register creates a portal account for a company resolved by slug.
func (s *ClientService) Register(ctx context.Context, in ClientRegisterInput) (*models.Client, string, error) {
	if strings.TrimSpace(in.Name) == "" || in.Email == "" || in.Password == "" {
		return nil, "", validationError("name, email and password are required")
	}
	if in.Phone != "" && !utils.ValidatePhone(in.Phone) {
		return nil, "", validationError("invalid phone number")
	}
	db := s.db.WithContext(ctx)

	var company models.Company
	if err := db.Where("slug = ?", in.CompanySlug).First(&company).Error; err != nil {
		return nil, "", translate(err, "company")
	}
	var count int64
	if err := db.Model(&models.Client{}).
		Where("company_id = ? AND email = ? AND password <> ''", company.ID, in.Email).
		Count(&count).Error; err != nil {
		return nil, "", err
	}
	if count > 0 {
		return nil, "", ErrEmailInUse
	}

	client := models.Client{
		CompanyID: company.ID,
		Name:      strings.TrimSpace(in.Name),
		Email:     in.Email,
		Phone:     utils.CleanPhone(in.Phone),
		Password:  in.Password,
	}
	if err := db.Create(&client).Error; err != nil {
		return nil, "", err
	}
	token, err := utils.GenerateClientToken(client.ID, s.secret)
	if err != nil {
		return nil, "", err
	}
	return &client, token, nil
}

// Login checks a portal account. The company slug is optional and only
// narrows the lookup when the same email is registered with several companies.
func (s *ClientService) Login(ctx context.Context, companySlug, email, password string) (*models.Client, string, error) {
	q := s.db.WithContext(ctx).Where("email = ? AND password <> ''", email)
	if companySlug != "" {
		var company models.Company
		if err := s.db.WithContext(ctx).Where("slug = ?", companySlug).First(&company).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", ErrInvalidCredentials
			}
			return nil, "", err
		}
		q = q.Where("company_id = ?", company.ID)
	}
	var candidates []models.Client
	if err := q.Order("id ASC").Find(&candidates).Error; err != nil {
		return nil, "", err
	}
	for i := range candidates {
		if utils.CheckPasswordHash(password, candidates[i].Password) {
			token, err := utils.GenerateClientToken(candidates[i].ID, s.secret)
			if err != nil {
				return nil, "", err
			}
			return &candidates[i], token, nil
		}
	}
	return nil, "", ErrInvalidCredentials
}

type PortalBookingInput struct {
	UserID      uint               `json:"userId"`
	ScheduledAt time.Time          `json:"scheduledAt"`
	Notes       string             `json:"notes"`
	Services    []ServiceLineInput `json:"services"`
}

// Book lets a client request an appointment. It must respect the company's
// advance notice window.
func (s *ClientService) Book(ctx context.Context, clientID uint, in PortalBookingInput) (*models.Appointment, error) {
	client, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(in.Services) == 0 {
		return nil, validationError("at least one service is required")
	}
	settings, err := findSettings(s.db.WithContext(ctx), client.CompanyID)
	if err != nil {
		return nil, err
	}
	earliest := s.now().Add(time.Duration(settings.AdvanceNoticeMinutes) * time.Minute)
	if in.ScheduledAt.Before(earliest) {
		return nil, validationError("appointments must be booked at least %d minutes in advance", settings.AdvanceNoticeMinutes)
	}
	return s.appointments.Create(ctx, AppointmentInput{
		CompanyID:   client.CompanyID,
		UserID:      in.UserID,
		ClientID:    client.ID,
		ScheduledAt: in.ScheduledAt,
		Notes:       in.Notes,
		Services:    in.Services,
	}, SourcePortal)
}

func (s *ClientService) Appointments(ctx context.Context, clientID uint) ([]models.Appointment, error) {
	return s.appointments.ListByClient(ctx, clientID)
}
