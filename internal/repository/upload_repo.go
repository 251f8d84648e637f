package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/models"
)

// UploadRepository persists metadata about imported files.
type UploadRepository interface {
	Create(ctx context.Context, record *models.UploadRecord) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.UploadRecord, error)
}

type uploadRepository struct {
	db *gorm.DB
}

// NewUploadRepository constructs the upload repository.
func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) Create(ctx context.Context, record *models.UploadRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *uploadRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.UploadRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var records []models.UploadRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
