package services

import (
	"context"
	"sort"

	"barberflow-backend/models"
	"barberflow-backend/utils"

	"gorm.io/gorm"
)

type RevenueService struct {
	db *gorm.DB
}

func NewRevenueService(db *gorm.DB) *RevenueService {
	return &RevenueService{db: db}
}

type RevenueSummary struct {
	Period               utils.Period `json:"period"`
	PreviousPeriod       utils.Period `json:"previousPeriod"`
	Total                float64      `json:"total"`
	ServicesRevenue      float64      `json:"servicesRevenue"`
	ProductsRevenue      float64      `json:"productsRevenue"`
	Appointments         int          `json:"appointments"`
	AverageTicket        float64      `json:"averageTicket"`
	PreviousTotal        float64      `json:"previousTotal"`
	PreviousAppointments int          `json:"previousAppointments"`
	Trend                float64      `json:"trend"`
	AppointmentsTrend    float64      `json:"appointmentsTrend"`
}

// Summary totals COMPLETED appointments in the period and compares them with
// the same range one month earlier.
func (s *RevenueService) Summary(ctx context.Context, f ReportFilter) (*RevenueSummary, error) {
	db := s.db.WithContext(ctx)
	current, err := sumRevenue(db, f)
	if err != nil {
		return nil, err
	}
	prev := f.previous()
	previous, err := sumRevenue(db, prev)
	if err != nil {
		return nil, err
	}

	summary := &RevenueSummary{
		Period:               f.Period,
		PreviousPeriod:       prev.Period,
		Total:                utils.RoundMoney(current.Total()),
		ServicesRevenue:      utils.RoundMoney(current.Services),
		ProductsRevenue:      utils.RoundMoney(current.Products),
		Appointments:         current.Appointments,
		PreviousTotal:        utils.RoundMoney(previous.Total()),
		PreviousAppointments: previous.Appointments,
		Trend:                utils.PercentageChange(current.Total(), previous.Total()),
		AppointmentsTrend:    utils.PercentageChange(float64(current.Appointments), float64(previous.Appointments)),
	}
	if current.Appointments > 0 {
		summary.AverageTicket = utils.RoundMoney(current.Total() / float64(current.Appointments))
	}
	return summary, nil
}

type StaffRevenue struct {
	UserID       uint    `json:"userId"`
	Name         string  `json:"name"`
	Total        float64 `json:"total"`
	Appointments int     `json:"appointments"`
}

// ByStaff splits the period's revenue per staff member, highest first.
func (s *RevenueService) ByStaff(ctx context.Context, f ReportFilter) ([]StaffRevenue, error) {
	var appointments []models.Appointment
	err := completedInPeriod(s.db.WithContext(ctx), f).
		Preload("User").Preload("Services").Preload("Products").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}

	byUser := map[uint]*StaffRevenue{}
	for i := range appointments {
		a := &appointments[i]
		row, ok := byUser[a.UserID]
		if !ok {
			row = &StaffRevenue{UserID: a.UserID}
			if a.User != nil {
				row.Name = a.User.Name
			}
			byUser[a.UserID] = row
		}
		row.Total += a.Total()
		row.Appointments++
	}

	result := make([]StaffRevenue, 0, len(byUser))
	for _, row := range byUser {
		row.Total = utils.RoundMoney(row.Total)
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total == result[j].Total {
			return result[i].UserID < result[j].UserID
		}
		return result[i].Total > result[j].Total
	})
	return result, nil
}

type ServiceSummary struct {
	ServiceID uint    `json:"serviceId"`
	Name      string  `json:"name"`
	Count     int     `json:"count"`
	Revenue   float64 `json:"revenue"`
}

// TopServices ranks catalog services by revenue on COMPLETED appointments.
func (s *RevenueService) TopServices(ctx context.Context, f ReportFilter, limit int) ([]ServiceSummary, error) {
	var appointments []models.Appointment
	err := completedInPeriod(s.db.WithContext(ctx), f).Preload("Services.Service").Find(&appointments).Error
	if err != nil {
		return nil, err
	}

	byService := map[uint]*ServiceSummary{}
	for _, a := range appointments {
		for _, line := range a.Services {
			row, ok := byService[line.ServiceID]
			if !ok {
				row = &ServiceSummary{ServiceID: line.ServiceID}
				if line.Service != nil {
					row.Name = line.Service.Name
				}
				byService[line.ServiceID] = row
			}
			row.Count += line.Quantity
			row.Revenue += line.Price * float64(line.Quantity)
		}
	}

	result := make([]ServiceSummary, 0, len(byService))
	for _, row := range byService {
		row.Revenue = utils.RoundMoney(row.Revenue)
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Revenue == result[j].Revenue {
			return result[i].ServiceID < result[j].ServiceID
		}
		return result[i].Revenue > result[j].Revenue
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
