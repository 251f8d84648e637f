package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/campus-go-api/internal/models"
)

// CatalogRepository exposes the academic hierarchy backing the dependent
// filter cascade.
type CatalogRepository interface {
	ListFaculties(ctx context.Context) ([]models.Faculty, error)
	ListDepartments(ctx context.Context, facultyID uint) ([]models.Department, error)
	ListProgrammes(ctx context.Context, departmentID uint) ([]models.Programme, error)
	GetProgramme(ctx context.Context, id uint) (models.Programme, error)
	GetDepartment(ctx context.Context, id uint) (models.Department, error)
	GetFaculty(ctx context.Context, id uint) (models.Faculty, error)
	UpsertFaculties(ctx context.Context, items []models.Faculty) (int64, error)
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository instantiates a GORM-backed repository.
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListFaculties(ctx context.Context) ([]models.Faculty, error) {
	var faculties []models.Faculty
	if err := r.db.WithContext(ctx).
		Preload("Departments.Programmes").
		Order("name ASC").
		Find(&faculties).Error; err != nil {
		return nil, err
	}

	return faculties, nil
}

func (r *catalogRepository) ListDepartments(ctx context.Context, facultyID uint) ([]models.Department, error) {
	var departments []models.Department
	if err := r.db.WithContext(ctx).
		Where("faculty_id = ?", facultyID).
		Order("name ASC").
		Find(&departments).Error; err != nil {
		return nil, err
	}

	return departments, nil
}

func (r *catalogRepository) ListProgrammes(ctx context.Context, departmentID uint) ([]models.Programme, error) {
	var programmes []models.Programme
	if err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("name ASC").
		Find(&programmes).Error; err != nil {
		return nil, err
	}

	return programmes, nil
}

func (r *catalogRepository) GetProgramme(ctx context.Context, id uint) (models.Programme, error) {
	var programme models.Programme
	if err := r.db.WithContext(ctx).First(&programme, id).Error; err != nil {
		return models.Programme{}, err
	}

	return programme, nil
}

func (r *catalogRepository) GetDepartment(ctx context.Context, id uint) (models.Department, error) {
	var department models.Department
	if err := r.db.WithContext(ctx).First(&department, id).Error; err != nil {
		return models.Department{}, err
	}

	return department, nil
}

func (r *catalogRepository) GetFaculty(ctx context.Context, id uint) (models.Faculty, error) {
	var faculty models.Faculty
	if err := r.db.WithContext(ctx).First(&faculty, id).Error; err != nil {
		return models.Faculty{}, err
	}

	return faculty, nil
}

func (r *catalogRepository) UpsertFaculties(ctx context.Context, items []models.Faculty) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	tx := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
		})

	result := tx.Create(&items)
	return result.RowsAffected, result.Error
}
