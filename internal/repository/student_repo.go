package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/campus-go-api/internal/models"
)

// StudentRepository defines persistence operations for the student roster.
type StudentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	ListByProgramme(ctx context.Context, programmeID uint) ([]models.Student, error)
	GetByID(ctx context.Context, id uint) (models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	UpsertBatch(ctx context.Context, students []models.Student) (int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository instantiates a GORM-backed repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) List(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).Order("matric_no ASC").Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) ListByProgramme(ctx context.Context, programmeID uint) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).
		Where("programme_id = ?", programmeID).
		Order("matric_no ASC").
		Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) UpsertBatch(ctx context.Context, students []models.Student) (int64, error) {
	if len(students) == 0 {
		return 0, nil
	}

	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "matric_no"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "programme_id", "level", "updated_at"}),
	})

	result := tx.Create(&students)
	return result.RowsAffected, result.Error
}
