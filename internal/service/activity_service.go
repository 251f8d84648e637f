package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/repository"
)

// ActivityActor represents the authenticated actor performing a portal action.
type ActivityActor struct {
	ID   uint
	Role string
}

// ActivityEntry captures the details required to persist an audit entry.
type ActivityEntry struct {
	ActorID    uint
	ActorRole  string
	Action     string
	EntityType string
	EntityID   *uint
	Metadata   map[string]interface{}
}

// ActivityRecorder defines behaviour for recording audit events. Services
// that mutate governed entities depend on this interface, not the full service.
type ActivityRecorder interface {
	Record(ctx context.Context, entry ActivityEntry) error
}

// ActivityService exposes methods to query and persist the audit trail.
type ActivityService interface {
	ActivityRecorder
	List(ctx context.Context, action string, page, pageSize int) ([]dto.ActivityLogResponse, int64, error)
}

type activityService struct {
	repo   repository.ActivityLogRepository
	logger zerolog.Logger
}

// NewActivityService constructs the activity log service.
func NewActivityService(repo repository.ActivityLogRepository, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:   repo,
		logger: logger.With().Str("component", "activity_service").Logger(),
	}
}

func (s *activityService) Record(ctx context.Context, entry ActivityEntry) error {
	if strings.TrimSpace(entry.Action) == "" {
		return fmt.Errorf("action is required")
	}
	if strings.TrimSpace(entry.EntityType) == "" {
		return fmt.Errorf("entity type is required")
	}

	role := strings.ToLower(strings.TrimSpace(entry.ActorRole))
	if role == "" {
		role = "system"
	}

	model := models.ActivityLog{
		ActorID:    entry.ActorID,
		ActorRole:  role,
		Action:     strings.TrimSpace(entry.Action),
		EntityType: strings.ToLower(strings.TrimSpace(entry.EntityType)),
		EntityID:   entry.EntityID,
		Metadata:   metadataToJSON(entry.Metadata),
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		s.logger.Error().Err(err).Str("action", model.Action).Msg("failed to persist activity log")
		return err
	}

	return nil
}

func (s *activityService) List(ctx context.Context, action string, page, pageSize int) ([]dto.ActivityLogResponse, int64, error) {
	entries, total, err := s.repo.List(ctx, repository.ActivityLogFilter{
		Action:   strings.TrimSpace(action),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	return dto.NewActivityLogResponseSlice(entries), total, nil
}

func metadataToJSON(metadata map[string]interface{}) datatypes.JSONMap {
	if metadata == nil {
		return datatypes.JSONMap{}
	}

	out := datatypes.JSONMap{}
	for key, value := range metadata {
		// never persist credentials that leak through handler metadata
		lower := strings.ToLower(key)
		if strings.Contains(lower, "token") || strings.Contains(lower, "secret") {
			out[key] = "***"
			continue
		}
		out[key] = value
	}
	return out
}
