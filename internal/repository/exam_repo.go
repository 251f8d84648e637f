package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/models"
)

// ExamRepository defines persistence operations for exam cycles and schedules.
type ExamRepository interface {
	ListCycles(ctx context.Context) ([]models.ExamCycle, error)
	GetCycle(ctx context.Context, id uint) (models.ExamCycle, error)
	CreateCycle(ctx context.Context, cycle *models.ExamCycle) error
	ListSchedules(ctx context.Context, cycleID uint) ([]models.ExamSchedule, error)
	ListSchedulesByDate(ctx context.Context, cycleID uint, date string) ([]models.ExamSchedule, error)
	CreateSchedule(ctx context.Context, schedule *models.ExamSchedule) error
}

type examRepository struct {
	db *gorm.DB
}

// NewExamRepository instantiates a GORM-backed repository.
func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) ListCycles(ctx context.Context) ([]models.ExamCycle, error) {
	var cycles []models.ExamCycle
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&cycles).Error; err != nil {
		return nil, err
	}

	return cycles, nil
}

func (r *examRepository) GetCycle(ctx context.Context, id uint) (models.ExamCycle, error) {
	var cycle models.ExamCycle
	if err := r.db.WithContext(ctx).Preload("Schedules").First(&cycle, id).Error; err != nil {
		return models.ExamCycle{}, err
	}

	return cycle, nil
}

func (r *examRepository) CreateCycle(ctx context.Context, cycle *models.ExamCycle) error {
	return r.db.WithContext(ctx).Create(cycle).Error
}

func (r *examRepository) ListSchedules(ctx context.Context, cycleID uint) ([]models.ExamSchedule, error) {
	var schedules []models.ExamSchedule
	if err := r.db.WithContext(ctx).
		Where("cycle_id = ?", cycleID).
		Order("date ASC, start_time ASC").
		Find(&schedules).Error; err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *examRepository) ListSchedulesByDate(ctx context.Context, cycleID uint, date string) ([]models.ExamSchedule, error) {
	var schedules []models.ExamSchedule
	if err := r.db.WithContext(ctx).
		Where("cycle_id = ? AND date = ?", cycleID, date).
		Order("start_time ASC").
		Find(&schedules).Error; err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *examRepository) CreateSchedule(ctx context.Context, schedule *models.ExamSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}
