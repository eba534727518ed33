package services

import (
	"barberflow-backend/models"
	"barberflow-backend/utils"

	"gorm.io/gorm"
)

// ReportFilter scopes a report to a company, a period and optionally one
// staff member.
type ReportFilter struct {
	CompanyID uint
	UserID    *uint
	Period    utils.Period
}

func (f ReportFilter) previous() ReportFilter {
	f.Period = f.Period.Previous()
	return f
}

// completedInPeriod selects the live COMPLETED appointments matching f.
func completedInPeriod(db *gorm.DB, f ReportFilter) *gorm.DB {
	q := db.Model(&models.Appointment{}).
		Where("company_id = ? AND status = ?", f.CompanyID, models.StatusCompleted).
		Where("scheduled_at BETWEEN ? AND ?", f.Period.Start, f.Period.End)
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	return q
}

type revenueTotals struct {
	Services     float64
	Products     float64
	Appointments int
}

func (t revenueTotals) Total() float64 {
	return t.Services + t.Products
}

func sumRevenue(db *gorm.DB, f ReportFilter) (revenueTotals, error) {
	var appointments []models.Appointment
	err := completedInPeriod(db, f).Preload("Services").Preload("Products").Find(&appointments).Error
	if err != nil {
		return revenueTotals{}, err
	}
	var totals revenueTotals
	for _, a := range appointments {
		for _, s := range a.Services {
			totals.Services += s.Price * float64(s.Quantity)
		}
		for _, p := range a.Products {
			totals.Products += p.Price * float64(p.Units())
		}
	}
	totals.Appointments = len(appointments)
	return totals, nil
}
