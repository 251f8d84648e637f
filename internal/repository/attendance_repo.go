package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/models"
)

// AttendanceSessionFilter narrows session list queries.
type AttendanceSessionFilter struct {
	CourseCode string
	Date       string
	Submitted  *bool
	Page       int
	PageSize   int
}

// AttendanceRepository defines persistence operations for attendance sessions
// and their rosters.
type AttendanceRepository interface {
	ListSessions(ctx context.Context, filter AttendanceSessionFilter) ([]models.AttendanceSession, int64, error)
	GetSession(ctx context.Context, id uint) (models.AttendanceSession, error)
	GetSessionByToken(ctx context.Context, token string) (models.AttendanceSession, error)
	CreateSession(ctx context.Context, session *models.AttendanceSession) error
	UpdateSession(ctx context.Context, session *models.AttendanceSession) error
	UpdateRecord(ctx context.Context, record *models.AttendanceRecord) error
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository instantiates a GORM-backed repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) ListSessions(ctx context.Context, filter AttendanceSessionFilter) ([]models.AttendanceSession, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AttendanceSession{})

	if filter.CourseCode != "" {
		query = query.Where("course_code = ?", filter.CourseCode)
	}
	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}
	if filter.Submitted != nil {
		query = query.Where("is_submitted = ?", *filter.Submitted)
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

	// newest session first; records keep roster (creation) order
	var sessions []models.AttendanceSession
	if err := query.Preload("Records", func(db *gorm.DB) *gorm.DB {
		return db.Order("attendance_records.id ASC")
	}).Order("created_at DESC, id DESC").Find(&sessions).Error; err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

func (r *attendanceRepository) GetSession(ctx context.Context, id uint) (models.AttendanceSession, error) {
	var session models.AttendanceSession
	if err := r.db.WithContext(ctx).Preload("Records", func(db *gorm.DB) *gorm.DB {
		return db.Order("attendance_records.id ASC")
	}).First(&session, id).Error; err != nil {
		return models.AttendanceSession{}, err
	}

	return session, nil
}

func (r *attendanceRepository) GetSessionByToken(ctx context.Context, token string) (models.AttendanceSession, error) {
	var session models.AttendanceSession
	if err := r.db.WithContext(ctx).Preload("Records", func(db *gorm.DB) *gorm.DB {
		return db.Order("attendance_records.id ASC")
	}).Where("qr_token = ?", token).First(&session).Error; err != nil {
		return models.AttendanceSession{}, err
	}

	return session, nil
}

func (r *attendanceRepository) CreateSession(ctx context.Context, session *models.AttendanceSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *attendanceRepository) UpdateSession(ctx context.Context, session *models.AttendanceSession) error {
	// lifecycle flags only; records are written through UpdateRecord
	return r.db.WithContext(ctx).Model(session).
		Select("is_active", "is_submitted").
		Updates(map[string]interface{}{
			"is_active":    session.IsActive,
			"is_submitted": session.IsSubmitted,
		}).Error
}

func (r *attendanceRepository) UpdateRecord(ctx context.Context, record *models.AttendanceRecord) error {
	return r.db.WithContext(ctx).Model(record).
		Select("status", "marked_at").
		Updates(map[string]interface{}{
			"status":    record.Status,
			"marked_at": record.MarkedAt,
		}).Error
}
