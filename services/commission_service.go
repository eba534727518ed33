package services

import (
	"context"
	"errors"
	"time"

	"barberflow-backend/models"
	"barberflow-backend/utils"

	"gorm.io/gorm"
)

type CommissionService struct {
	db *gorm.DB
}

func NewCommissionService(db *gorm.DB) *CommissionService {
	return &CommissionService{db: db}
}

// ensureCommissionConfig returns the staff member's config in a company,
// creating it with a default rule for every existing service when missing.
func ensureCommissionConfig(tx *gorm.DB, userID, companyID uint) (*models.CommissionConfig, error) {
	var config models.CommissionConfig
	err := tx.Where("user_id = ? AND company_id = ?", userID, companyID).First(&config).Error
	if err == nil {
		return &config, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	config = models.CommissionConfig{UserID: userID, CompanyID: companyID}
	if err := tx.Create(&config).Error; err != nil {
		return nil, err
	}
	var catalog []models.Service
	if err := tx.Where("company_id = ?", companyID).Find(&catalog).Error; err != nil {
		return nil, err
	}
	for _, service := range catalog {
		rule := defaultRule(config.ID, service.ID)
		if err := tx.Create(&rule).Error; err != nil {
			return nil, err
		}
		config.Rules = append(config.Rules, rule)
	}
	return &config, nil
}

func defaultRule(configID, serviceID uint) models.CommissionRule {
	return models.CommissionRule{
		ConfigID:  configID,
		ServiceID: serviceID,
		Type:      models.CommissionPercentage,
		Value:     models.DefaultCommissionPercentage,
	}
}

// createRulesForService adds the default rule for a new service to the
// config of every current member. Members without a config are skipped.
func createRulesForService(tx *gorm.DB, service *models.Service) (int, error) {
	var members []models.CompanyMember
	if err := tx.Where("company_id = ?", service.CompanyID).Find(&members).Error; err != nil {
		return 0, err
	}
	created := 0
	for _, member := range members {
		var config models.CommissionConfig
		err := tx.Where("user_id = ? AND company_id = ?", member.UserID, service.CompanyID).First(&config).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return created, err
		}
		rule := defaultRule(config.ID, service.ID)
		if err := tx.Create(&rule).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *CommissionService) GetConfig(ctx context.Context, companyID, userID uint) (*models.CommissionConfig, error) {
	var config models.CommissionConfig
	err := s.db.WithContext(ctx).
		Preload("Rules", func(db *gorm.DB) *gorm.DB { return db.Order("service_id ASC") }).
		Preload("Rules.Service").
		Where("company_id = ? AND user_id = ?", companyID, userID).
		First(&config).Error
	if err != nil {
		return nil, translate(err, "commission config")
	}
	return &config, nil
}

// CreateConfig is idempotent: an existing config is returned unchanged.
func (s *CommissionService) CreateConfig(ctx context.Context, companyID, userID uint) (*models.CommissionConfig, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := authorizeCompany(tx, userID, companyID); err != nil {
			if errors.Is(err, ErrForbidden) {
				return validationError("user is not a member of this company")
			}
			return err
		}
		_, err := ensureCommissionConfig(tx, userID, companyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetConfig(ctx, companyID, userID)
}

// FindRule returns a rule together with its config, for company checks.
func (s *CommissionService) FindRule(ctx context.Context, ruleID uint) (*models.CommissionRule, *models.CommissionConfig, error) {
	db := s.db.WithContext(ctx)
	var rule models.CommissionRule
	if err := db.First(&rule, ruleID).Error; err != nil {
		return nil, nil, translate(err, "commission rule")
	}
	var config models.CommissionConfig
	if err := db.First(&config, rule.ConfigID).Error; err != nil {
		return nil, nil, translate(err, "commission config")
	}
	return &rule, &config, nil
}

func (s *CommissionService) UpdateRule(ctx context.Context, ruleID uint, kind models.CommissionType, value float64) (*models.CommissionRule, error) {
	if !kind.Valid() {
		return nil, validationError("type must be PERCENTAGE or FIXED")
	}
	if value < 0 {
		return nil, validationError("value cannot be negative")
	}
	if kind == models.CommissionPercentage && value > 100 {
		return nil, validationError("percentage cannot exceed 100")
	}
	rule, _, err := s.FindRule(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	rule.Type = kind
	rule.Value = value
	if err := s.db.WithContext(ctx).Model(rule).Updates(map[string]interface{}{"type": kind, "value": value}).Error; err != nil {
		return nil, err
	}
	return rule, nil
}

type CommissionLine struct {
	AppointmentID uint                  `json:"appointmentId"`
	ScheduledAt   time.Time             `json:"scheduledAt"`
	ServiceID     uint                  `json:"serviceId"`
	ServiceName   string                `json:"serviceName"`
	Quantity      int                   `json:"quantity"`
	Price         float64               `json:"price"`
	RuleType      models.CommissionType `json:"ruleType,omitempty"`
	RuleValue     float64               `json:"ruleValue"`
	Amount        float64               `json:"amount"`
}

type CommissionReport struct {
	UserID          uint             `json:"userId"`
	CompanyID       uint             `json:"companyId"`
	Period          utils.Period     `json:"period"`
	Lines           []CommissionLine `json:"lines"`
	ServicesRevenue float64          `json:"servicesRevenue"`
	Total           float64          `json:"total"`
}

// Report computes what a staff member earned on the service lines of their
// COMPLETED appointments in the period. Lines without a rule earn nothing.
func (s *CommissionService) Report(ctx context.Context, companyID, userID uint, period utils.Period) (*CommissionReport, error) {
	report := &CommissionReport{UserID: userID, CompanyID: companyID, Period: period, Lines: []CommissionLine{}}

	rules := map[uint]models.CommissionRule{}
	config, err := s.GetConfig(ctx, companyID, userID)
	switch {
	case err == nil:
		for _, rule := range config.Rules {
			rules[rule.ServiceID] = rule
		}
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	staff := userID
	var appointments []models.Appointment
	err = completedInPeriod(s.db.WithContext(ctx), ReportFilter{CompanyID: companyID, UserID: &staff, Period: period}).
		Preload("Services.Service").
		Order("scheduled_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}

	for _, appointment := range appointments {
		for _, line := range appointment.Services {
			entry := CommissionLine{
				AppointmentID: appointment.ID,
				ScheduledAt:   appointment.ScheduledAt,
				ServiceID:     line.ServiceID,
				Quantity:      line.Quantity,
				Price:         line.Price,
			}
			if line.Service != nil {
				entry.ServiceName = line.Service.Name
			}
			if rule, ok := rules[line.ServiceID]; ok {
				entry.RuleType = rule.Type
				entry.RuleValue = rule.Value
				entry.Amount = utils.RoundMoney(rule.Amount(line.Price, line.Quantity))
			}
			report.ServicesRevenue += line.Price * float64(line.Quantity)
			report.Total += entry.Amount
			report.Lines = append(report.Lines, entry)
		}
	}
	report.ServicesRevenue = utils.RoundMoney(report.ServicesRevenue)
	report.Total = utils.RoundMoney(report.Total)
	return report, nil
}
