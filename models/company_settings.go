package models

import "gorm.io/datatypes"

const (
	DefaultAppointmentInterval = 30
	DefaultReminderTemplate    = "Hi [ClientName], this is a reminder of your appointment at [CompanyName] on [Date] at [Time]."
)

type CompanySettings struct {
	Model
	CompanyID uint `gorm:"uniqueIndex;not null" json:"companyId"`

	// Scheduling policy, all in minutes.
	AppointmentInterval  int `gorm:"not null" json:"appointmentInterval"`
	AdvanceNoticeMinutes int `gorm:"not null;default:0" json:"advanceNoticeMinutes"`
	PreparationMinutes   int `gorm:"not null;default:0" json:"preparationMinutes"`

	NotifyNewAppointments bool   `gorm:"not null;default:false" json:"notifyNewAppointments"`
	NotifyCancellations   bool   `gorm:"not null;default:false" json:"notifyCancellations"`
	SendReminders         bool   `gorm:"not null;default:false" json:"sendReminders"`
	WhatsAppNotifications bool   `gorm:"column:whatsapp_notifications;not null;default:false" json:"whatsAppNotifications"`
	SMSNotifications      bool   `gorm:"column:sms_notifications;not null;default:false" json:"smsNotifications"`
	ReminderTemplate      string `gorm:"type:text" json:"reminderTemplate"`

	RequireDeposit         bool    `gorm:"not null;default:false" json:"requireDeposit"`
	DepositPercentage      float64 `gorm:"type:decimal(5,2);not null;default:0" json:"depositPercentage"`
	CancellationFee        float64 `gorm:"type:decimal(10,2);not null;default:0" json:"cancellationFee"`
	AcceptedPaymentMethods string  `json:"acceptedPaymentMethods"`

	WorkingHoursID uint          `gorm:"index;not null" json:"workingHoursId"`
	WorkingHours   *WorkingHours `gorm:"foreignKey:WorkingHoursID" json:"workingHours,omitempty"`
}

// WorkingHours holds a weekday → {open, close, closed} document.
type WorkingHours struct {
	Model
	Days datatypes.JSON `json:"days"`
}

type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
