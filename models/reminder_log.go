package models

import "time"

type ReminderLog struct {
	Model
	CompanyID     uint      `gorm:"index;not null" json:"companyId"`
	AppointmentID uint      `gorm:"index;not null" json:"appointmentId"`
	ClientID      uint      `gorm:"index;not null" json:"clientId"`
	Message       string    `gorm:"type:text" json:"message"`
	Status        string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage  string    `gorm:"type:text" json:"errorMessage"`
	Channel       string    `gorm:"type:varchar(20)" json:"channel"` // whatsapp, sms
	SentAt        time.Time `json:"sentAt"`
}
