package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/models"
)

// ApplicantFilter narrows applicant list queries.
type ApplicantFilter struct {
	ProgrammeID *uint
	Eligibility models.EligibilityStatus
	Page        int
	PageSize    int
}

// ApplicantRepository defines persistence operations for admission applicants.
type ApplicantRepository interface {
	List(ctx context.Context, filter ApplicantFilter) ([]models.Applicant, int64, error)
	GetByID(ctx context.Context, id uint) (models.Applicant, error)
	Create(ctx context.Context, applicant *models.Applicant) error
	Update(ctx context.Context, applicant *models.Applicant) error
}

type applicantRepository struct {
	db *gorm.DB
}

// NewApplicantRepository instantiates a GORM-backed repository.
func NewApplicantRepository(db *gorm.DB) ApplicantRepository {
	return &applicantRepository{db: db}
}

func (r *applicantRepository) List(ctx context.Context, filter ApplicantFilter) ([]models.Applicant, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Applicant{})

	if filter.ProgrammeID != nil {
		query = query.Where("programme_id = ?", *filter.ProgrammeID)
	}
	if filter.Eligibility != "" {
		query = query.Where("eligibility = ?", filter.Eligibility)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var applicants []models.Applicant
	if err := query.Preload("Programme").Order("created_at DESC").Find(&applicants).Error; err != nil {
		return nil, 0, err
	}

	return applicants, total, nil
}

func (r *applicantRepository) GetByID(ctx context.Context, id uint) (models.Applicant, error) {
	var applicant models.Applicant
	if err := r.db.WithContext(ctx).Preload("Programme").First(&applicant, id).Error; err != nil {
		return models.Applicant{}, err
	}

	return applicant, nil
}

func (r *applicantRepository) Create(ctx context.Context, applicant *models.Applicant) error {
	return r.db.WithContext(ctx).Create(applicant).Error
}

func (r *applicantRepository) Update(ctx context.Context, applicant *models.Applicant) error {
	return r.db.WithContext(ctx).Save(applicant).Error
}
