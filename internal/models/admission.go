package models

import "time"

// EligibilityStatus is the outcome of comparing an applicant's score against
// the programme cut-off.
type EligibilityStatus string

const (
	EligibilityPending     EligibilityStatus = "Pending"
	EligibilityEligible    EligibilityStatus = "Eligible"
	EligibilityNotEligible EligibilityStatus = "NotEligible"
)

// Applicant is an admissions candidate applying into a programme.
type Applicant struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	FullName    string            `gorm:"size:255;not null" json:"full_name"`
	Email       string            `gorm:"size:160" json:"email"`
	ProgrammeID uint              `gorm:"index;not null" json:"programme_id"`
	Programme   Programme         `json:"programme,omitempty"`
	ExamScore   float64           `gorm:"not null" json:"exam_score"`
	Eligibility EligibilityStatus `gorm:"size:16;not null;default:Pending" json:"eligibility"`
	EvaluatedAt *time.Time        `json:"evaluated_at"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// IsEligible applies the admission rule: the boundary is inclusive, an
// applicant scoring exactly the cut-off qualifies.
func IsEligible(applicantScore, programmeCutoff float64) bool {
	return applicantScore >= programmeCutoff
}
