package dto

import (
	"time"

	"github.com/noah-isme/campus-go-api/internal/models"
)

// SessionCreateRequest describes the payload for opening an attendance session.
// Dates use YYYY-MM-DD and times zero-padded 24h HH:MM throughout.
type SessionCreateRequest struct {
	CourseCode   string `json:"course_code" validate:"required,min=3"`
	CourseTitle  string `json:"course_title" validate:"required,min=3"`
	LecturerName string `json:"lecturer_name" validate:"required,min=3"`
	ProgrammeID  uint   `json:"programme_id" validate:"required"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime    string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime      string `json:"end_time" validate:"required,datetime=15:04"`
}

// MarkAttendanceRequest marks one student within a session.
type MarkAttendanceRequest struct {
	StudentID uint                    `json:"student_id" validate:"required"`
	Status    models.AttendanceStatus `json:"status" validate:"required,oneof=Present Absent"`
}

// AttendanceRecordResponse is one roster row returned to API clients.
type AttendanceRecordResponse struct {
	ID            uint                    `json:"id"`
	StudentID     uint                    `json:"student_id"`
	StudentName   string                  `json:"student_name"`
	StudentMatric string                  `json:"student_matric"`
	Status        models.AttendanceStatus `json:"status"`
	MarkedAt      string                  `json:"marked_at"`
}

// SessionResponse is the serialized attendance session.
type SessionResponse struct {
	ID           uint                       `json:"id"`
	CourseCode   string                     `json:"course_code"`
	CourseTitle  string                     `json:"course_title"`
	LecturerName string                     `json:"lecturer_name"`
	Department   string                     `json:"department"`
	Programme    string                     `json:"programme"`
	Date         string                     `json:"date"`
	StartTime    string                     `json:"start_time"`
	EndTime      string                     `json:"end_time"`
	IsActive     bool                       `json:"is_active"`
	IsSubmitted  bool                       `json:"is_submitted"`
	QRToken      string                     `json:"qr_token"`
	ShareLink    string                     `json:"share_link"`
	PresentCount int                        `json:"present_count"`
	Records      []AttendanceRecordResponse `json:"records"`
	CreatedAt    time.Time                  `json:"created_at"`
}

// AttendanceMarkEvent is broadcast to live feed subscribers when a record changes.
type AttendanceMarkEvent struct {
	SessionID     uint                    `json:"session_id"`
	StudentID     uint                    `json:"student_id"`
	StudentName   string                  `json:"student_name"`
	StudentMatric string                  `json:"student_matric"`
	Status        models.AttendanceStatus `json:"status"`
	MarkedAt      string                  `json:"marked_at"`
	PresentCount  int                     `json:"present_count"`
}

// NewAttendanceRecordResponse converts a model into a DTO.
func NewAttendanceRecordResponse(model models.AttendanceRecord) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		ID:            model.ID,
		StudentID:     model.StudentID,
		StudentName:   model.StudentName,
		StudentMatric: model.StudentMatric,
		Status:        model.Status,
		MarkedAt:      model.MarkedAt,
	}
}

// NewSessionResponse converts a model into a DTO.
func NewSessionResponse(model models.AttendanceSession) SessionResponse {
	records := make([]AttendanceRecordResponse, 0, len(model.Records))
	for _, record := range model.Records {
		records = append(records, NewAttendanceRecordResponse(record))
	}

	return SessionResponse{
		ID:           model.ID,
		CourseCode:   model.CourseCode,
		CourseTitle:  model.CourseTitle,
		LecturerName: model.LecturerName,
		Department:   model.Department,
		Programme:    model.Programme,
		Date:         model.Date,
		StartTime:    model.StartTime,
		EndTime:      model.EndTime,
		IsActive:     model.IsActive,
		IsSubmitted:  model.IsSubmitted,
		QRToken:      model.QRToken,
		ShareLink:    model.ShareLink,
		PresentCount: model.PresentCount(),
		Records:      records,
		CreatedAt:    model.CreatedAt,
	}
}

// NewSessionResponseSlice converts a slice of models into DTOs.
func NewSessionResponseSlice(sessions []models.AttendanceSession) []SessionResponse {
	responses := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, NewSessionResponse(session))
	}

	return responses
}
