package services

import (
	"context"
	"errors"

	"github.com/robfig/cron/v3"

	"github.com/skuldata/skuldata/internal/app/models"
	"github.com/skuldata/skuldata/internal/app/models/dto"
	"github.com/skuldata/skuldata/internal/app/repositories"
	"github.com/skuldata/skuldata/internal/pkg/apperrors"
)

// cronParser accepts standard five-field cron expressions, matching what the
// schedule seed rows use.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ScheduleService manages the persisted beat schedule
type ScheduleService interface {
	ListSchedules(ctx context.Context) ([]*models.PeriodicTask, error)
	GetSchedule(ctx context.Context, name string) (*models.PeriodicTask, error)
	UpdateSchedule(ctx context.Context, name string, req *dto.UpdateScheduleRequest) (*models.PeriodicTask, error)
}

type scheduleServiceImpl struct {
	taskRepo *repositories.PeriodicTaskRepository
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(taskRepo *repositories.PeriodicTaskRepository) ScheduleService {
	return &scheduleServiceImpl{taskRepo: taskRepo}
}

func (s *scheduleServiceImpl) ListSchedules(ctx context.Context) ([]*models.PeriodicTask, error) {
	return s.taskRepo.GetAllTasks(ctx)
}

func (s *scheduleServiceImpl) GetSchedule(ctx context.Context, name string) (*models.PeriodicTask, error) {
	task, err := s.taskRepo.GetTaskByName(ctx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrScheduleNotFound) {
			return nil, apperrors.ErrScheduleNotFound
		}
		return nil, err
	}
	return task, nil
}

// UpdateSchedule applies a partial schedule edit after validating the trigger
// fields against the entry's trigger type. The worker picks the change up on
// its next reload, no restart needed.
func (s *scheduleServiceImpl) UpdateSchedule(ctx context.Context, name string, req *dto.UpdateScheduleRequest) (*models.PeriodicTask, error) {
	task, err := s.taskRepo.GetTaskByName(ctx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrScheduleNotFound) {
			return nil, apperrors.ErrScheduleNotFound
		}
		return nil, err
	}

	if req.IntervalSeconds != nil {
		if task.TriggerType != models.TriggerInterval {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidTrigger, "intervalSeconds only applies to interval triggers")
		}
		if *req.IntervalSeconds <= 0 {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidTrigger, "intervalSeconds must be positive")
		}
	}

	if req.CronExpr != nil {
		if task.TriggerType != models.TriggerCron {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidTrigger, "cronExpr only applies to cron triggers")
		}
		if _, err := cronParser.Parse(*req.CronExpr); err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidTrigger, "cronExpr is not a valid cron expression")
		}
	}

	if err := s.taskRepo.UpdateTask(ctx, name, req.Enabled, req.IntervalSeconds, req.CronExpr, req.ExpiresSeconds); err != nil {
		if errors.Is(err, repositories.ErrScheduleNotFound) {
			return nil, apperrors.ErrScheduleNotFound
		}
		return nil, err
	}

	return s.taskRepo.GetTaskByName(ctx, name)
}
