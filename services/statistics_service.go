package services

import (
	"context"

	"barberflow-backend/models"
	"barberflow-backend/utils"

	"gorm.io/gorm"
)

type StatisticsService struct {
	db *gorm.DB
}

func NewStatisticsService(db *gorm.DB) *StatisticsService {
	return &StatisticsService{db: db}
}

type ProductsSold struct {
	Period         utils.Period `json:"period"`
	PreviousPeriod utils.Period `json:"previousPeriod"`
	Total          int64        `json:"total"`
	Previous       int64        `json:"previous"`
	Trend          float64      `json:"trend"`
}

// ProductsSold counts product units on COMPLETED appointments. A line with
// no quantity counts as one unit.
func (s *StatisticsService) ProductsSold(ctx context.Context, f ReportFilter) (*ProductsSold, error) {
	db := s.db.WithContext(ctx)
	current, err := countProductsSold(db, f)
	if err != nil {
		return nil, err
	}
	prev := f.previous()
	previous, err := countProductsSold(db, prev)
	if err != nil {
		return nil, err
	}
	return &ProductsSold{
		Period:         f.Period,
		PreviousPeriod: prev.Period,
		Total:          current,
		Previous:       previous,
		Trend:          utils.ProductSoldTrend(float64(current), float64(previous)),
	}, nil
}

func countProductsSold(db *gorm.DB, f ReportFilter) (int64, error) {
	query := `
		SELECT COALESCE(SUM(COALESCE(pa.quantity, 1)), 0)
		FROM product_appointments pa
		JOIN appointments a ON a.id = pa.appointment_id
		WHERE a.company_id = ?
		AND a.status = ?
		AND a.deleted_at IS NULL
		AND pa.deleted_at IS NULL
		AND a.scheduled_at BETWEEN ? AND ?`
	args := []interface{}{f.CompanyID, models.StatusCompleted, f.Period.Start, f.Period.End}
	if f.UserID != nil {
		query += " AND a.user_id = ?"
		args = append(args, *f.UserID)
	}
	var total int64
	err := db.Raw(query, args...).Scan(&total).Error
	return total, err
}

type Overview struct {
	Period            utils.Period                       `json:"period"`
	ByStatus          map[models.AppointmentStatus]int64 `json:"byStatus"`
	Completed         int64                              `json:"completed"`
	PreviousCompleted int64                              `json:"previousCompleted"`
	CompletedTrend    float64                            `json:"completedTrend"`
	NewClients        int64                              `json:"newClients"`
}

// Overview is the dashboard block: appointments per status, the completed
// trend against the previous month and new clients in the period.
func (s *StatisticsService) Overview(ctx context.Context, f ReportFilter) (*Overview, error) {
	db := s.db.WithContext(ctx)

	type statusCount struct {
		Status models.AppointmentStatus
		Count  int64
	}
	var rows []statusCount
	q := db.Model(&models.Appointment{}).
		Select("status, COUNT(*) AS count").
		Where("company_id = ? AND scheduled_at BETWEEN ? AND ?", f.CompanyID, f.Period.Start, f.Period.End)
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if err := q.Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	overview := &Overview{Period: f.Period, ByStatus: map[models.AppointmentStatus]int64{
		models.StatusPending:   0,
		models.StatusConfirmed: 0,
		models.StatusCompleted: 0,
		models.StatusCanceled:  0,
	}}
	for _, row := range rows {
		overview.ByStatus[row.Status] = row.Count
	}
	overview.Completed = overview.ByStatus[models.StatusCompleted]

	if err := completedInPeriod(db, f.previous()).Count(&overview.PreviousCompleted).Error; err != nil {
		return nil, err
	}
	overview.CompletedTrend = utils.PercentageChange(float64(overview.Completed), float64(overview.PreviousCompleted))

	if err := db.Model(&models.Client{}).
		Where("company_id = ? AND created_at BETWEEN ? AND ?", f.CompanyID, f.Period.Start, f.Period.End).
		Count(&overview.NewClients).Error; err != nil {
		return nil, err
	}
	return overview, nil
}
