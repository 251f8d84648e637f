package dto

import (
	"time"

	"github.com/noah-isme/campus-go-api/internal/models"
)

// AnnouncementCreateRequest posts a broadcast message.
type AnnouncementCreateRequest struct {
	Title    string `json:"title" validate:"required,min=3"`
	Body     string `json:"body" validate:"required,min=3"`
	Audience string `json:"audience" validate:"omitempty,oneof=all staff students"`
	IsPinned bool   `json:"is_pinned"`
}

// AnnouncementResponse is the serialized announcement.
type AnnouncementResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Audience  string    `json:"audience"`
	IsPinned  bool      `json:"is_pinned"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAnnouncementResponse converts a model into a DTO.
func NewAnnouncementResponse(model models.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        model.ID,
		Title:     model.Title,
		Body:      model.Body,
		Audience:  model.Audience,
		IsPinned:  model.IsPinned,
		CreatedAt: model.CreatedAt,
	}
}

// NewAnnouncementResponseSlice converts a slice of models into DTOs.
func NewAnnouncementResponseSlice(items []models.Announcement) []AnnouncementResponse {
	responses := make([]AnnouncementResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewAnnouncementResponse(item))
	}

	return responses
}
