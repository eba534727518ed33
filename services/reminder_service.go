// services/reminder_service.go
package services

import (
	"context"
	"strings"
	"time"

	"barberflow-backend/metrics"
	"barberflow-backend/models"
	"barberflow-backend/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"

	reminderSent   = "sent"
	reminderFailed = "failed"
)

type ReminderService struct {
	db     *gorm.DB
	sender MessageSender
	logger *zap.Logger
	now    func() time.Time
}

func NewReminderService(db *gorm.DB, sender MessageSender, logger *zap.Logger, now func() time.Time) *ReminderService {
	return &ReminderService{db: db, sender: sender, logger: logger, now: now}
}

// SendDailyReminders messages clients with an open appointment on the next
// local day, for every company that has reminders switched on.
func (s *ReminderService) SendDailyReminders(ctx context.Context) (int, error) {
	s.logger.Info("starting daily reminder processing")

	var settings []models.CompanySettings
	if err := s.db.WithContext(ctx).Where("send_reminders = ?", true).Find(&settings).Error; err != nil {
		return 0, err
	}

	tomorrow := utils.DayPeriod(utils.LocalDate(s.now()).AddDate(0, 0, 1))
	sent := 0
	for i := range settings {
		n, err := s.ProcessCompanyReminders(ctx, &settings[i], tomorrow)
		sent += n
		if err != nil {
			s.logger.Error("reminder processing failed",
				zap.Uint("companyId", settings[i].CompanyID), zap.Error(err))
		}
	}

	s.logger.Info("daily reminder processing completed", zap.Int("sent", sent))
	return sent, nil
}

// ProcessCompanyReminders handles one company. Appointments that already have
// a successful reminder are skipped so reruns do not message twice.
func (s *ReminderService) ProcessCompanyReminders(ctx context.Context, settings *models.CompanySettings, window utils.Period) (int, error) {
	db := s.db.WithContext(ctx)

	var company models.Company
	if err := db.First(&company, settings.CompanyID).Error; err != nil {
		return 0, translate(err, "company")
	}

	var appointments []models.Appointment
	err := db.Preload("Client").
		Where("company_id = ? AND status IN ?", company.ID,
			[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Where("scheduled_at BETWEEN ? AND ?", window.Start, window.End).
		Order("scheduled_at ASC").
		Find(&appointments).Error
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range appointments {
		appointment := &appointments[i]
		if appointment.Client == nil || appointment.Client.Phone == "" {
			continue
		}
		var already int64
		if err := db.Model(&models.ReminderLog{}).
			Where("appointment_id = ? AND status = ?", appointment.ID, reminderSent).
			Count(&already).Error; err != nil {
			return sent, err
		}
		if already > 0 {
			continue
		}

		channel := reminderChannel(settings, appointment.Client.Phone)
		if channel == "" {
			continue
		}
		message := renderReminder(settings.ReminderTemplate, &company, appointment)
		if s.deliver(ctx, appointment, channel, message) {
			sent++
		}
	}
	return sent, nil
}

func (s *ReminderService) deliver(ctx context.Context, appointment *models.Appointment, channel, message string) bool {
	phone := utils.CleanPhone(appointment.Client.Phone)
	status := reminderSent
	errorMsg := ""

	sid, err := s.sender.Send(ctx, channel, phone, message)
	if err != nil {
		s.logger.Warn("failed to send reminder",
			zap.Uint("appointmentId", appointment.ID), zap.String("channel", channel), zap.Error(err))
		status = reminderFailed
		errorMsg = err.Error()
	} else {
		s.logger.Info("reminder sent",
			zap.Uint("appointmentId", appointment.ID), zap.String("channel", channel), zap.String("sid", sid))
	}
	metrics.ReminderSent(channel, status)

	reminderLog := models.ReminderLog{
		CompanyID:     appointment.CompanyID,
		AppointmentID: appointment.ID,
		ClientID:      appointment.ClientID,
		Message:       message,
		Status:        status,
		ErrorMessage:  errorMsg,
		Channel:       channel,
		SentAt:        s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&reminderLog).Error; err != nil {
		s.logger.Error("failed to log reminder", zap.Uint("appointmentId", appointment.ID), zap.Error(err))
	}
	return status == reminderSent
}

// reminderChannel prefers WhatsApp for E.164 numbers when the company allows
// it and falls back to SMS. An empty result means no channel is enabled.
func reminderChannel(settings *models.CompanySettings, phone string) string {
	if settings.WhatsAppNotifications && utils.IsE164(phone) {
		return ChannelWhatsApp
	}
	if settings.SMSNotifications {
		return ChannelSMS
	}
	return ""
}

func renderReminder(template string, company *models.Company, appointment *models.Appointment) string {
	if template == "" {
		template = models.DefaultReminderTemplate
	}
	local := appointment.ScheduledAt.In(utils.LocalZone)
	replacer := strings.NewReplacer(
		"[ClientName]", appointment.Client.Name,
		"[CompanyName]", company.Name,
		"[Date]", local.Format("02/01/2006"),
		"[Time]", local.Format("15:04"),
	)
	return replacer.Replace(template)
}
