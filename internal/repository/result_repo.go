package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/models"
)

// ResultRepository defines persistence operations for course results.
type ResultRepository interface {
	GetByStudentAndCourse(ctx context.Context, studentID uint, courseCode string) (models.CourseResult, error)
	ListByCourse(ctx context.Context, courseCode string) ([]models.CourseResult, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.CourseResult, error)
	Create(ctx context.Context, result *models.CourseResult) error
	Update(ctx context.Context, result *models.CourseResult) error
}

type resultRepository struct {
	db *gorm.DB
}

// NewResultRepository instantiates a GORM-backed repository.
func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) GetByStudentAndCourse(ctx context.Context, studentID uint, courseCode string) (models.CourseResult, error) {
	var result models.CourseResult
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND course_code = ?", studentID, courseCode).
		First(&result).Error; err != nil {
		return models.CourseResult{}, err
	}

	return result, nil
}

func (r *resultRepository) ListByCourse(ctx context.Context, courseCode string) ([]models.CourseResult, error) {
	var results []models.CourseResult
	if err := r.db.WithContext(ctx).
		Where("course_code = ?", courseCode).
		Order("student_matric ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (r *resultRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.CourseResult, error) {
	var results []models.CourseResult
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("course_code ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (r *resultRepository) Create(ctx context.Context, result *models.CourseResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *resultRepository) Update(ctx context.Context, result *models.CourseResult) error {
	return r.db.WithContext(ctx).Save(result).Error
}
