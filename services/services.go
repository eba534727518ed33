package services

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	JWTSecret []byte
	Logger    *zap.Logger
	Sender    MessageSender
	Now       func() time.Time
}

// Services bundles every domain service over one database handle.
type Services struct {
	Auth         *AuthService
	Permissions  *PermissionService
	Users        *UserService
	Companies    *CompanyService
	Settings     *SettingsService
	Catalog      *CatalogService
	Products     *ProductService
	Appointments *AppointmentService
	Clients      *ClientService
	Commissions  *CommissionService
	Goals        *GoalService
	Revenue      *RevenueService
	Statistics   *StatisticsService
	Reminders    *ReminderService
}

func New(db *gorm.DB, opts Options) *Services {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Sender == nil {
		opts.Sender = NewLogSender(opts.Logger)
	}

	appointments := NewAppointmentService(db)
	return &Services{
		Auth:         NewAuthService(db, opts.JWTSecret, opts.Now),
		Permissions:  NewPermissionService(db),
		Users:        NewUserService(db, opts.Now),
		Companies:    NewCompanyService(db),
		Settings:     NewSettingsService(db),
		Catalog:      NewCatalogService(db),
		Products:     NewProductService(db),
		Appointments: appointments,
		Clients:      NewClientService(db, opts.JWTSecret, appointments, opts.Now),
		Commissions:  NewCommissionService(db),
		Goals:        NewGoalService(db),
		Revenue:      NewRevenueService(db),
		Statistics:   NewStatisticsService(db),
		Reminders:    NewReminderService(db, opts.Sender, opts.Logger, opts.Now),
	}
}
