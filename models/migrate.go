package models

import "gorm.io/gorm"

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Permission{},
		&Company{},
		&CompanyMember{},
		&CompanySettings{},
		&WorkingHours{},
		&Client{},
		&Service{},
		&Product{},
		&Appointment{},
		&AppointmentService{},
		&ProductAppointment{},
		&CommissionConfig{},
		&CommissionRule{},
		&Goal{},
		&ReminderLog{},
	)
}
