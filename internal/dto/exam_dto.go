package dto

import (
	"time"

	"github.com/noah-isme/campus-go-api/internal/models"
)

// CycleCreateRequest describes the payload for creating an exam cycle.
type CycleCreateRequest struct {
	Name         string `json:"name" validate:"required,min=3"`
	AcademicYear string `json:"academic_year" validate:"required,min=4"`
	Semester     string `json:"semester" validate:"required,oneof=First Second"`
}

// ScheduleCreateRequest proposes a new exam sitting inside a cycle. Confirm
// acknowledges a previously reported conflict and stores the schedule anyway.
type ScheduleCreateRequest struct {
	CourseCode       string `json:"course_code" validate:"required,min=3"`
	CourseTitle      string `json:"course_title" validate:"required,min=3"`
	Date             string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime        string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime          string `json:"end_time" validate:"required,datetime=15:04"`
	Venue            string `json:"venue" validate:"required,min=2"`
	InvigilatorCount int    `json:"invigilator_count" validate:"omitempty,min=0"`
	StudentCount     int    `json:"student_count" validate:"omitempty,min=0"`
	Confirm          bool   `json:"confirm"`
}

// ScheduleCheckRequest re-runs the conflict detector without persisting.
type ScheduleCheckRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	Venue     string `json:"venue" validate:"required,min=2"`
}

// CycleResponse is the serialized exam cycle.
type CycleResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	AcademicYear string    `json:"academic_year"`
	Semester     string    `json:"semester"`
	CreatedAt    time.Time `json:"created_at"`
}

// ScheduleResponse is the serialized exam schedule.
type ScheduleResponse struct {
	ID               uint                  `json:"id"`
	CycleID          uint                  `json:"cycle_id"`
	CourseCode       string                `json:"course_code"`
	CourseTitle      string                `json:"course_title"`
	Date             string                `json:"date"`
	StartTime        string                `json:"start_time"`
	EndTime          string                `json:"end_time"`
	Venue            string                `json:"venue"`
	InvigilatorCount int                   `json:"invigilator_count"`
	StudentCount     int                   `json:"student_count"`
	Status           models.ScheduleStatus `json:"status"`
	CreatedAt        time.Time             `json:"created_at"`
}

// ConflictCheckResponse reports the outcome of an explicit conflict check.
type ConflictCheckResponse struct {
	Conflict  bool               `json:"conflict"`
	Conflicts []ScheduleResponse `json:"conflicts"`
}

// NewCycleResponse converts a model into a DTO.
func NewCycleResponse(model models.ExamCycle) CycleResponse {
	return CycleResponse{
		ID:           model.ID,
		Name:         model.Name,
		AcademicYear: model.AcademicYear,
		Semester:     model.Semester,
		CreatedAt:    model.CreatedAt,
	}
}

// NewCycleResponseSlice converts a slice of models into DTOs.
func NewCycleResponseSlice(cycles []models.ExamCycle) []CycleResponse {
	responses := make([]CycleResponse, 0, len(cycles))
	for _, cycle := range cycles {
		responses = append(responses, NewCycleResponse(cycle))
	}

	return responses
}

// NewScheduleResponse converts a model into a DTO.
func NewScheduleResponse(model models.ExamSchedule) ScheduleResponse {
	return ScheduleResponse{
		ID:               model.ID,
		CycleID:          model.CycleID,
		CourseCode:       model.CourseCode,
		CourseTitle:      model.CourseTitle,
		Date:             model.Date,
		StartTime:        model.StartTime,
		EndTime:          model.EndTime,
		Venue:            model.Venue,
		InvigilatorCount: model.InvigilatorCount,
		StudentCount:     model.StudentCount,
		Status:           model.Status,
		CreatedAt:        model.CreatedAt,
	}
}

// NewScheduleResponseSlice converts a slice of models into DTOs.
func NewScheduleResponseSlice(schedules []models.ExamSchedule) []ScheduleResponse {
	responses := make([]ScheduleResponse, 0, len(schedules))
	for _, schedule := range schedules {
		responses = append(responses, NewScheduleResponse(schedule))
	}

	return responses
}
