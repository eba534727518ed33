package services

import (
	"context"
	"time"

	"barberflow-backend/metrics"
	"barberflow-backend/models"
	"barberflow-backend/utils"

	"gorm.io/gorm"
)

type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

// provisionGoals creates zero-target goals from the current local month
// through December. Existing goals are left alone.
func provisionGoals(tx *gorm.DB, userID, companyID uint, now time.Time) (int, error) {
	local := now.In(utils.LocalZone)
	return provisionMonths(tx, userID, companyID, local.Year(), int(local.Month()))
}

func provisionMonths(tx *gorm.DB, userID, companyID uint, year, fromMonth int) (int, error) {
	created := 0
	for month := fromMonth; month <= 12; month++ {
		var count int64
		err := tx.Model(&models.Goal{}).
			Where("user_id = ? AND company_id = ? AND month = ? AND year = ?", userID, companyID, month, year).
			Count(&count).Error
		if err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}
		goal := models.Goal{UserID: userID, CompanyID: companyID, Month: month, Year: year}
		if err := tx.Create(&goal).Error; err != nil {
			return created, err
		}
		created++
	}
	metrics.GoalsProvisioned(created)
	return created, nil
}

func (s *GoalService) List(ctx context.Context, companyID, userID uint, year int) ([]models.Goal, error) {
	var goals []models.Goal
	err := s.db.WithContext(ctx).
		Where("company_id = ? AND user_id = ? AND year = ?", companyID, userID, year).
		Order("month ASC").
		Find(&goals).Error
	return goals, err
}

func (s *GoalService) Get(ctx context.Context, id uint) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.WithContext(ctx).First(&goal, id).Error; err != nil {
		return nil, translate(err, "goal")
	}
	return &goal, nil
}

func (s *GoalService) UpdateTarget(ctx context.Context, id uint, target float64) (*models.Goal, error) {
	if target < 0 {
		return nil, validationError("target cannot be negative")
	}
	goal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(goal).Update("target", target).Error; err != nil {
		return nil, err
	}
	goal.Target = target
	return goal, nil
}

type GoalProgress struct {
	Goal       *models.Goal `json:"goal"`
	Achieved   float64      `json:"achieved"`
	Percentage float64      `json:"percentage"`
}

// Progress compares a monthly goal with the revenue of the staff member's
// completed appointments in that local month.
func (s *GoalService) Progress(ctx context.Context, companyID, userID uint, month, year int) (*GoalProgress, error) {
	if month < 1 || month > 12 {
		return nil, validationError("month must be between 1 and 12")
	}
	var goal models.Goal
	db := s.db.WithContext(ctx)
	err := db.Where("company_id = ? AND user_id = ? AND month = ? AND year = ?", companyID, userID, month, year).
		First(&goal).Error
	if err != nil {
		return nil, translate(err, "goal")
	}

	staff := userID
	totals, err := sumRevenue(db, ReportFilter{
		CompanyID: companyID,
		UserID:    &staff,
		Period:    utils.MonthPeriod(year, time.Month(month)),
	})
	if err != nil {
		return nil, err
	}
	progress := &GoalProgress{Goal: &goal, Achieved: utils.RoundMoney(totals.Total())}
	if goal.Target > 0 {
		progress.Percentage = utils.RoundMoney(progress.Achieved / goal.Target * 100)
	}
	return progress, nil
}

// RolloverYear provisions a full year of goals for every live membership of
// a live company. Running it twice creates nothing new.
func (s *GoalService) RolloverYear(ctx context.Context, year int) (int, error) {
	var members []models.CompanyMember
	err := s.db.WithContext(ctx).
		Joins("JOIN companies ON companies.id = company_members.company_id AND companies.deleted_at IS NULL").
		Find(&members).Error
	if err != nil {
		return 0, err
	}
	total := 0
	for _, m := range members {
		created, err := provisionMonths(s.db.WithContext(ctx), m.UserID, m.CompanyID, year, 1)
		total += created
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
