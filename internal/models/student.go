package models

import "time"

// Student represents an enrolled student; attendance rosters are built from
// the students registered under a programme.
type Student struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	MatricNo    string    `gorm:"size:64;uniqueIndex;not null" json:"matric_no"`
	Email       string    `gorm:"size:160" json:"email"`
	ProgrammeID uint      `gorm:"index;not null" json:"programme_id"`
	Level       int       `gorm:"not null;default:100" json:"level"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
