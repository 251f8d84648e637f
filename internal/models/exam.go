package models

import (
	"regexp"
	"time"
)

// ScheduleStatus captures the conflict snapshot taken when a schedule is created.
type ScheduleStatus string

const (
	ScheduleStatusScheduled ScheduleStatus = "Scheduled"
	ScheduleStatusConflict  ScheduleStatus = "Conflict"
)

// ExamCycle is a named examination period grouping scheduled exams,
// e.g. "2024/2025 First Semester Final Exam".
type ExamCycle struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	AcademicYear string         `gorm:"size:16;not null" json:"academic_year"`
	Semester     string         `gorm:"size:16;not null" json:"semester"`
	Schedules    []ExamSchedule `gorm:"foreignKey:CycleID;constraint:OnDelete:CASCADE" json:"schedules,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ExamSchedule is a single exam sitting inside a cycle. Status is computed
// once at creation time by the conflict detector and is not re-validated when
// other schedules change; re-running the check is an explicit operation.
type ExamSchedule struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	CycleID          uint           `gorm:"index;not null" json:"cycle_id"`
	CourseCode       string         `gorm:"size:32;not null" json:"course_code"`
	CourseTitle      string         `gorm:"size:255;not null" json:"course_title"`
	Date             string         `gorm:"size:10;not null;index" json:"date"`
	StartTime        string         `gorm:"size:5;not null" json:"start_time"`
	EndTime          string         `gorm:"size:5;not null" json:"end_time"`
	Venue            string         `gorm:"size:255;not null" json:"venue"`
	InvigilatorCount int            `gorm:"not null;default:0" json:"invigilator_count"`
	StudentCount     int            `gorm:"not null;default:0" json:"student_count"`
	Status           ScheduleStatus `gorm:"size:16;not null;default:Scheduled" json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

var venueCapacitySuffix = regexp.MustCompile(`\s*\(\d+\)\s*$`)

// NormalizeVenue strips a trailing parenthetical capacity annotation from a
// venue label, so "Main Hall (750)" and "Main Hall" compare as the same venue.
func NormalizeVenue(venue string) string {
	return venueCapacitySuffix.ReplaceAllString(venue, "")
}

// ConflictsWith reports whether the candidate slot collides with this
// schedule: same date, same normalized venue, and overlapping half-open time
// intervals. Slots that only touch at an endpoint do not conflict. Times are
// zero-padded HH:MM strings, so lexicographic comparison is chronological.
func (e ExamSchedule) ConflictsWith(date, venue, startTime, endTime string) bool {
	if e.Date != date {
		return false
	}
	if NormalizeVenue(e.Venue) != NormalizeVenue(venue) {
		return false
	}
	return startTime < e.EndTime && endTime > e.StartTime
}
