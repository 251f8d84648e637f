package models

import (
	"time"

	"gorm.io/datatypes"
)

// Activity actions recorded by the audit trail.
const (
	ActionSessionCreated     = "attendance.session_created"
	ActionSessionSubmitted   = "attendance.session_submitted"
	ActionScheduleCreated    = "exam.schedule_created"
	ActionApplicantEvaluated = "admission.applicant_evaluated"
	ActionScoresEntered      = "grading.scores_entered"
	ActionAnnouncementPosted = "announcement.posted"
)

// ActivityLog captures auditable portal events triggered by administrators
// and staff.
type ActivityLog struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	ActorID    uint              `gorm:"not null" json:"actor_id"`
	ActorRole  string            `gorm:"size:32;not null" json:"actor_role"`
	Action     string            `gorm:"size:64;not null" json:"action"`
	EntityType string            `gorm:"size:64;not null" json:"entity_type"`
	EntityID   *uint             `json:"entity_id"`
	Metadata   datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt  time.Time         `json:"created_at"`
}
