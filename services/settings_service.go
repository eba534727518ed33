package services

import (
	"context"
	"encoding/json"
	"strings"

	"barberflow-backend/models"
	"barberflow-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

type SettingsUpdate struct {
	AppointmentInterval    *int     `json:"appointmentInterval"`
	AdvanceNoticeMinutes   *int     `json:"advanceNoticeMinutes"`
	PreparationMinutes     *int     `json:"preparationMinutes"`
	NotifyNewAppointments  *bool    `json:"notifyNewAppointments"`
	NotifyCancellations    *bool    `json:"notifyCancellations"`
	SendReminders          *bool    `json:"sendReminders"`
	WhatsAppNotifications  *bool    `json:"whatsAppNotifications"`
	SMSNotifications       *bool    `json:"smsNotifications"`
	ReminderTemplate       *string  `json:"reminderTemplate"`
	RequireDeposit         *bool    `json:"requireDeposit"`
	DepositPercentage      *float64 `json:"depositPercentage"`
	CancellationFee        *float64 `json:"cancellationFee"`
	AcceptedPaymentMethods *string  `json:"acceptedPaymentMethods"`
}

func (s *SettingsService) Get(ctx context.Context, companyID uint) (*models.CompanySettings, error) {
	return findSettings(s.db.WithContext(ctx), companyID)
}

func findSettings(db *gorm.DB, companyID uint) (*models.CompanySettings, error) {
	var settings models.CompanySettings
	err := db.Preload("WorkingHours").Where("company_id = ?", companyID).First(&settings).Error
	if err != nil {
		return nil, translate(err, "company settings")
	}
	return &settings, nil
}

func (s *SettingsService) Update(ctx context.Context, companyID uint, in SettingsUpdate) (*models.CompanySettings, error) {
	settings, err := s.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	minutes := map[string]*int{
		"appointment_interval":   in.AppointmentInterval,
		"advance_notice_minutes": in.AdvanceNoticeMinutes,
		"preparation_minutes":    in.PreparationMinutes,
	}
	for column, value := range minutes {
		if value == nil {
			continue
		}
		if *value < 0 {
			return nil, validationError("%s cannot be negative", column)
		}
		updates[column] = *value
	}
	if in.AppointmentInterval != nil && *in.AppointmentInterval == 0 {
		return nil, validationError("appointment_interval must be positive")
	}

	flags := map[string]*bool{
		"notify_new_appointments": in.NotifyNewAppointments,
		"notify_cancellations":    in.NotifyCancellations,
		"send_reminders":          in.SendReminders,
		"whatsapp_notifications":  in.WhatsAppNotifications,
		"sms_notifications":       in.SMSNotifications,
		"require_deposit":         in.RequireDeposit,
	}
	for column, value := range flags {
		if value != nil {
			updates[column] = *value
		}
	}

	if in.DepositPercentage != nil {
		if *in.DepositPercentage < 0 || *in.DepositPercentage > 100 {
			return nil, validationError("depositPercentage must be between 0 and 100")
		}
		updates["deposit_percentage"] = *in.DepositPercentage
	}
	if in.CancellationFee != nil {
		if *in.CancellationFee < 0 {
			return nil, validationError("cancellationFee cannot be negative")
		}
		updates["cancellation_fee"] = *in.CancellationFee
	}
	if in.ReminderTemplate != nil {
		updates["reminder_template"] = *in.ReminderTemplate
	}
	if in.AcceptedPaymentMethods != nil {
		updates["accepted_payment_methods"] = *in.AcceptedPaymentMethods
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.CompanySettings{}).Where("id = ?", settings.ID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, companyID)
}

// UpdateWorkingHours replaces the weekday document. Unknown days are rejected
// and open days need valid HH:MM bounds with open before close.
func (s *SettingsService) UpdateWorkingHours(ctx context.Context, companyID uint, days map[string]models.DayHours) (*models.WorkingHours, error) {
	known := make(map[string]bool, len(models.Weekdays))
	for _, d := range models.Weekdays {
		known[d] = true
	}
	normalized := make(map[string]models.DayHours, len(days))
	for day, hours := range days {
		day = strings.ToLower(day)
		if !known[day] {
			return nil, validationError("unknown weekday %q", day)
		}
		if !hours.Closed {
			if !utils.ValidClock(hours.Open) || !utils.ValidClock(hours.Close) {
				return nil, validationError("%s: open and close must be HH:MM", day)
			}
			if hours.Open >= hours.Close {
				return nil, validationError("%s: open must be before close", day)
			}
		}
		normalized[day] = hours
	}

	settings, err := s.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	doc, err := json.Marshal(normalized)
	if err != nil {
		return nil, err
	}

	var hours models.WorkingHours
	db := s.db.WithContext(ctx)
	if err := db.First(&hours, settings.WorkingHoursID).Error; err != nil {
		return nil, translate(err, "working hours")
	}
	hours.Days = datatypes.JSON(doc)
	if err := db.Model(&hours).Update("days", hours.Days).Error; err != nil {
		return nil, err
	}
	return &hours, nil
}
