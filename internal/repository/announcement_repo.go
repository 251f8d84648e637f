package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/models"
)

// AnnouncementFilter filters announcement list queries.
type AnnouncementFilter struct {
	Audience string
	Page     int
	PageSize int
}

// AnnouncementRepository exposes persistence helpers for announcements.
type AnnouncementRepository interface {
	List(ctx context.Context, filter AnnouncementFilter) ([]models.Announcement, int64, error)
	Create(ctx context.Context, item *models.Announcement) error
	Delete(ctx context.Context, id uint) error
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository constructs the repository implementation.
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) List(ctx context.Context, filter AnnouncementFilter) ([]models.Announcement, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Announcement{})

	if filter.Audience != "" && filter.Audience != models.AudienceAll {
		query = query.Where("audience IN ?", []string{models.AudienceAll, filter.Audience})
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

	var items []models.Announcement
	if err := query.Order("is_pinned DESC, created_at DESC").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *announcementRepository) Create(ctx context.Context, item *models.Announcement) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *announcementRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Announcement{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
