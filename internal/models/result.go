package models

import "time"

// Score bounds for the two components of a course grade.
const (
	MaxCAScore   = 30.0
	MaxExamScore = 70.0
)

// CourseResult holds a student's continuous-assessment and examination scores
// for one course. Either component may be unset until entered.
type CourseResult struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	StudentID     uint      `gorm:"index;not null" json:"student_id"`
	StudentName   string    `gorm:"size:255;not null" json:"student_name"`
	StudentMatric string    `gorm:"size:64;not null" json:"student_matric"`
	CourseCode    string    `gorm:"size:32;not null;index" json:"course_code"`
	CAScore       *float64  `json:"ca_score"`
	ExamScore     *float64  `json:"exam_score"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Total sums the two score components, treating an unset component as zero.
func (r CourseResult) Total() float64 {
	total := 0.0
	if r.CAScore != nil {
		total += *r.CAScore
	}
	if r.ExamScore != nil {
		total += *r.ExamScore
	}
	return total
}

// Grade returns the letter grade for the current total.
func (r CourseResult) Grade() string {
	return LetterGrade(r.Total())
}

// LetterGrade maps a total score to its letter grade. Thresholds are
// evaluated top-down, first match wins.
func LetterGrade(total float64) string {
	switch {
	case total >= 70:
		return "A"
	case total >= 60:
		return "B"
	case total >= 50:
		return "C"
	case total >= 45:
		return "D"
	case total >= 40:
		return "E"
	default:
		return "F"
	}
}

// ValidCAScore reports whether a continuous-assessment score is inside [0,30].
func ValidCAScore(score float64) bool {
	return score >= 0 && score <= MaxCAScore
}

// ValidExamScore reports whether an examination score is inside [0,70].
func ValidExamScore(score float64) bool {
	return score >= 0 && score <= MaxExamScore
}
