package services

import (
	"context"
	"time"

	"barberflow-backend/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the background jobs on local (UTC-3) wall-clock time.
type Scheduler struct {
	cron      *cron.Cron
	reminders *ReminderService
	goals     *GoalService
	logger    *zap.Logger
	now       func() time.Time
}

func NewScheduler(svc *Services, logger *zap.Logger, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(utils.LocalZone)),
		reminders: svc.Reminders,
		goals:     svc.Goals,
		logger:    logger,
		now:       now,
	}
}

// Start registers the reminder and goal rollover jobs and starts the cron.
func (s *Scheduler) Start(reminderSpec, rolloverSpec string) error {
	if _, err := s.cron.AddFunc(reminderSpec, s.runReminders); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(rolloverSpec, s.runGoalRollover); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("scheduler started",
		zap.String("reminders", reminderSpec), zap.String("goalRollover", rolloverSpec))
	return nil
}

func (s *Scheduler) runReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	if _, err := s.reminders.SendDailyReminders(ctx); err != nil {
		s.logger.Error("daily reminders failed", zap.Error(err))
	}
}

func (s *Scheduler) runGoalRollover() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	year := s.now().In(utils.LocalZone).Year()
	created, err := s.goals.RolloverYear(ctx, year)
	if err != nil {
		s.logger.Error("goal rollover failed", zap.Int("year", year), zap.Error(err))
		return
	}
	s.logger.Info("goal rollover completed", zap.Int("year", year), zap.Int("created", created))
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
