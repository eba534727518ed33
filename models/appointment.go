package models

import "time"

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCanceled  AppointmentStatus = "CANCELED"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// CanTransition reports whether an appointment may move from s to next.
// COMPLETED and CANCELED are terminal.
func (s AppointmentStatus) CanTransition(next AppointmentStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCompleted || next == StatusCanceled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCanceled
	}
	return false
}

type Appointment struct {
	Model
	CompanyID   uint              `gorm:"index;not null" json:"companyId"`
	UserID      uint              `gorm:"index;not null" json:"userId"`
	ClientID    uint              `gorm:"index;not null" json:"clientId"`
	Status      AppointmentStatus `gorm:"type:varchar(20);index;not null" json:"status"`
	ScheduledAt time.Time         `gorm:"index;not null" json:"scheduledAt"`
	Notes       string            `json:"notes"`

	User     *User                `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Client   *Client              `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Services []AppointmentService `gorm:"foreignKey:AppointmentID" json:"services"`
	Products []ProductAppointment `gorm:"foreignKey:AppointmentID" json:"products"`
}

// AppointmentService is a service line; Price is the unit price at booking time.
type AppointmentService struct {
	Model
	AppointmentID uint    `gorm:"index;not null" json:"appointmentId"`
	ServiceID     uint    `gorm:"index;not null" json:"serviceId"`
	Quantity      int     `gorm:"not null;default:1" json:"quantity"`
	Price         float64 `gorm:"type:decimal(10,2);not null" json:"price"`

	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// ProductAppointment is a product line. A nil Quantity counts as one unit.
type ProductAppointment struct {
	Model
	AppointmentID uint    `gorm:"index;not null" json:"appointmentId"`
	ProductID     uint    `gorm:"index;not null" json:"productId"`
	Quantity      *int    `json:"quantity"`
	Price         float64 `gorm:"type:decimal(10,2);not null" json:"price"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (p ProductAppointment) Units() int {
	if p.Quantity == nil {
		return 1
	}
	return *p.Quantity
}

// Total is the billed amount of the appointment's service and product lines.
func (a *Appointment) Total() float64 {
	var total float64
	for _, s := range a.Services {
		total += s.Price * float64(s.Quantity)
	}
	for _, p := range a.Products {
		total += p.Price * float64(p.Units())
	}
	return total
}
