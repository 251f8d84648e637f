package dto

import (
	"time"

	"github.com/noah-isme/campus-go-api/internal/models"
)

// ApplicantCreateRequest registers an admissions candidate.
type ApplicantCreateRequest struct {
	FullName    string  `json:"full_name" validate:"required,min=3"`
	Email       string  `json:"email" validate:"omitempty,email"`
	ProgrammeID uint    `json:"programme_id" validate:"required"`
	ExamScore   float64 `json:"exam_score" validate:"min=0"`
}

// EligibilityCheckRequest compares a score against a programme cut-off
// without touching any stored applicant.
type EligibilityCheckRequest struct {
	ApplicantScore float64 `json:"applicant_score" validate:"min=0"`
	ProgrammeID    uint    `json:"programme_id" validate:"required"`
}

// EligibilityCheckResponse reports a transient eligibility comparison.
type EligibilityCheckResponse struct {
	ApplicantScore  float64 `json:"applicant_score"`
	ProgrammeCutoff float64 `json:"programme_cutoff"`
	IsEligible      bool    `json:"is_eligible"`
}

// ApplicantResponse is the serialized applicant.
type ApplicantResponse struct {
	ID            uint                     `json:"id"`
	FullName      string                   `json:"full_name"`
	Email         string                   `json:"email"`
	ProgrammeID   uint                     `json:"programme_id"`
	ProgrammeName string                   `json:"programme_name"`
	ExamScore     float64                  `json:"exam_score"`
	Eligibility   models.EligibilityStatus `json:"eligibility"`
	EvaluatedAt   *time.Time               `json:"evaluated_at"`
	CreatedAt     time.Time                `json:"created_at"`
}

// NewApplicantResponse converts a model into a DTO.
func NewApplicantResponse(model models.Applicant) ApplicantResponse {
	return ApplicantResponse{
		ID:            model.ID,
		FullName:      model.FullName,
		Email:         model.Email,
		ProgrammeID:   model.ProgrammeID,
		ProgrammeName: model.Programme.Name,
		ExamScore:     model.ExamScore,
		Eligibility:   model.Eligibility,
		EvaluatedAt:   model.EvaluatedAt,
		CreatedAt:     model.CreatedAt,
	}
}

// NewApplicantResponseSlice converts a slice of models into DTOs.
func NewApplicantResponseSlice(applicants []models.Applicant) []ApplicantResponse {
	responses := make([]ApplicantResponse, 0, len(applicants))
	for _, applicant := range applicants {
		responses = append(responses, NewApplicantResponse(applicant))
	}

	return responses
}
