package dto

import (
	"time"

	"github.com/noah-isme/campus-go-api/internal/models"
)

// ScoreEntryRequest records one or both score components for a student in a
// course. A missing component leaves the stored value untouched.
type ScoreEntryRequest struct {
	StudentID  uint     `json:"student_id" validate:"required"`
	CourseCode string   `json:"course_code" validate:"required,min=3"`
	CAScore    *float64 `json:"ca_score"`
	ExamScore  *float64 `json:"exam_score"`
}

// ResultResponse is one graded row returned to API clients.
type ResultResponse struct {
	ID            uint      `json:"id"`
	StudentID     uint      `json:"student_id"`
	StudentName   string    `json:"student_name"`
	StudentMatric string    `json:"student_matric"`
	CourseCode    string    `json:"course_code"`
	CAScore       *float64  `json:"ca_score"`
	ExamScore     *float64  `json:"exam_score"`
	Total         float64   `json:"total"`
	Grade         string    `json:"grade"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewResultResponse converts a model into a DTO, deriving total and grade.
func NewResultResponse(model models.CourseResult) ResultResponse {
	return ResultResponse{
		ID:            model.ID,
		StudentID:     model.StudentID,
		StudentName:   model.StudentName,
		StudentMatric: model.StudentMatric,
		CourseCode:    model.CourseCode,
		CAScore:       model.CAScore,
		ExamScore:     model.ExamScore,
		Total:         model.Total(),
		Grade:         model.Grade(),
		UpdatedAt:     model.UpdatedAt,
	}
}

// NewResultResponseSlice converts a slice of models into DTOs.
func NewResultResponseSlice(results []models.CourseResult) []ResultResponse {
	responses := make([]ResultResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, NewResultResponse(result))
	}

	return responses
}
