package models

import "time"

// Announcement audiences.
const (
	AudienceAll      = "all"
	AudienceStaff    = "staff"
	AudienceStudents = "students"
)

// Announcement is a broadcast message posted by a school administrator.
// The body is sanitized before it is stored.
type Announcement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Audience  string    `gorm:"size:16;not null;default:all" json:"audience"`
	IsPinned  bool      `gorm:"index" json:"is_pinned"`
	PostedBy  uint      `gorm:"not null" json:"posted_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
