package dto

import (
	"time"

	"github.com/noah-isme/campus-go-api/internal/models"
)

// UploadResponse describes a stored import file.
type UploadResponse struct {
	ID           uint      `json:"id"`
	FileName     string    `json:"file_name"`
	Extension    string    `json:"extension"`
	Purpose      string    `json:"purpose"`
	URL          string    `json:"url"`
	DetectedMime string    `json:"detected_mime"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUploadResponse converts a model into a DTO.
func NewUploadResponse(model models.UploadRecord) UploadResponse {
	return UploadResponse{
		ID:           model.ID,
		FileName:     model.FileName,
		Extension:    model.Extension,
		Purpose:      model.Purpose,
		URL:          model.URL,
		DetectedMime: model.DetectedMime,
		SizeBytes:    model.SizeBytes,
		CreatedAt:    model.CreatedAt,
	}
}
