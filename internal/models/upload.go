package models

import "time"

// UploadRecord stores metadata about imported roster/result files.
// Acceptance is by filename extension; DetectedMime is informational only.
type UploadRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       *uint     `gorm:"index" json:"user_id"`
	FileName     string    `gorm:"size:255;not null" json:"file_name"`
	Extension    string    `gorm:"size:16;not null" json:"extension"`
	Purpose      string    `gorm:"size:64" json:"purpose"`
	URL          string    `gorm:"size:512;not null" json:"url"`
	DetectedMime string    `gorm:"size:128" json:"detected_mime"`
	SizeBytes    int64     `gorm:"not null" json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
}
