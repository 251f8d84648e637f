package models

import "time"

// AttendanceStatus represents the marked state of a student within a session.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "Present"
	AttendanceStatusAbsent  AttendanceStatus = "Absent"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent:
		return true
	default:
		return false
	}
}

// AttendanceSession represents one class meeting for which attendance is recorded.
//
// Lifecycle: a session starts open (IsActive=true, IsSubmitted=false), may be
// closed and reopened while unsubmitted, and is frozen permanently once
// submitted. Submission is one-way; nothing reverses it.
type AttendanceSession struct {
	ID           uint               `gorm:"primaryKey" json:"id"`
	CourseCode   string             `gorm:"size:32;not null;index" json:"course_code"`
	CourseTitle  string             `gorm:"size:255;not null" json:"course_title"`
	LecturerName string             `gorm:"size:255;not null" json:"lecturer_name"`
	Department   string             `gorm:"size:255" json:"department"`
	Programme    string             `gorm:"size:255" json:"programme"`
	Date         string             `gorm:"size:10;not null" json:"date"`
	StartTime    string             `gorm:"size:5;not null" json:"start_time"`
	EndTime      string             `gorm:"size:5;not null" json:"end_time"`
	IsActive     bool               `gorm:"not null;default:true" json:"is_active"`
	IsSubmitted  bool               `gorm:"not null;default:false" json:"is_submitted"`
	QRToken      string             `gorm:"size:64;uniqueIndex" json:"qr_token"`
	ShareLink    string             `gorm:"size:512" json:"share_link"`
	Records      []AttendanceRecord `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"records"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// AttendanceRecord is one student's attendance state inside a session.
// Student identity fields never change after the roster is built; only
// Status and MarkedAt are mutable.
type AttendanceRecord struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	SessionID     uint             `gorm:"index;not null" json:"session_id"`
	StudentID     uint             `gorm:"index;not null" json:"student_id"`
	StudentName   string           `gorm:"size:255;not null" json:"student_name"`
	StudentMatric string           `gorm:"size:64;not null" json:"student_matric"`
	Status        AttendanceStatus `gorm:"size:16;not null;default:Absent" json:"status"`
	MarkedAt      string           `gorm:"size:5" json:"marked_at"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// Mark sets the status of the record belonging to studentID. The timestamp is
// set to at (zero-padded HH:MM) when marking Present and cleared when marking
// Absent. Returns the updated record, or nil when the session is already
// submitted or no record matches the student; in both cases nothing changes.
func (s *AttendanceSession) Mark(studentID uint, status AttendanceStatus, at string) *AttendanceRecord {
	if s.IsSubmitted {
		return nil
	}

	for i := range s.Records {
		if s.Records[i].StudentID != studentID {
			continue
		}
		s.Records[i].Status = status
		if status == AttendanceStatusPresent {
			s.Records[i].MarkedAt = at
		} else {
			s.Records[i].MarkedAt = ""
		}
		return &s.Records[i]
	}

	return nil
}

// Close pauses the session without freezing it. A closed session can still be
// submitted but accepts no new marks through an inactive UI; the domain rule
// that blocks mutation is submission, not closure.
func (s *AttendanceSession) Close() {
	s.IsActive = false
}

// Submit freezes the session. Idempotent in effect: repeat calls leave the
// same terminal state.
func (s *AttendanceSession) Submit() {
	s.IsSubmitted = true
	s.IsActive = false
}

// PresentCount returns the number of records currently marked Present.
func (s *AttendanceSession) PresentCount() int {
	count := 0
	for _, record := range s.Records {
		if record.Status == AttendanceStatusPresent {
			count++
		}
	}
	return count
}
