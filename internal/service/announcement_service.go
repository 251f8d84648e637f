package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/repository"
)

var (
	// ErrAnnouncementNotFound indicates the announcement does not exist.
	ErrAnnouncementNotFound = errors.New("announcement not found")
	// ErrAnnouncementEmpty indicates the body was empty after sanitization.
	ErrAnnouncementEmpty = errors.New("announcement body empty after sanitization")
)

// AnnouncementService manages broadcast messages posted by administrators.
type AnnouncementService interface {
	Publish(ctx context.Context, payload dto.AnnouncementCreateRequest, actor ActivityActor) (dto.AnnouncementResponse, error)
	List(ctx context.Context, audience string, page, pageSize int) ([]dto.AnnouncementResponse, int64, error)
	Delete(ctx context.Context, id uint) error
}

type announcementService struct {
	repo      repository.AnnouncementRepository
	validator *validator.Validate
	activity  ActivityRecorder
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewAnnouncementService builds the announcement service.
func NewAnnouncementService(repo repository.AnnouncementRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) AnnouncementService {
	return &announcementService{
		repo:      repo,
		validator: validate,
		activity:  activity,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "announcement_service").Logger(),
	}
}

func (s *announcementService) Publish(ctx context.Context, payload dto.AnnouncementCreateRequest, actor ActivityActor) (dto.AnnouncementResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	body := strings.TrimSpace(s.sanitizer.Sanitize(payload.Body))
	if body == "" {
		return dto.AnnouncementResponse{}, ErrAnnouncementEmpty
	}

	audience := payload.Audience
	if audience == "" {
		audience = models.AudienceAll
	}

	announcement := models.Announcement{
		Title:    strings.TrimSpace(payload.Title),
		Body:     body,
		Audience: audience,
		IsPinned: payload.IsPinned,
		PostedBy: actor.ID,
	}

	if err := s.repo.Create(ctx, &announcement); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	s.logger.Info().Uint("announcement_id", announcement.ID).Str("audience", audience).Msg("announcement posted")

	if s.activity != nil {
		announcementRef := announcement.ID
		_ = s.activity.Record(ctx, ActivityEntry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     models.ActionAnnouncementPosted,
			EntityType: "announcement",
			EntityID:   &announcementRef,
			Metadata:   map[string]interface{}{"audience": audience},
		})
	}

	return dto.NewAnnouncementResponse(announcement), nil
}

func (s *announcementService) List(ctx context.Context, audience string, page, pageSize int) ([]dto.AnnouncementResponse, int64, error) {
	items, total, err := s.repo.List(ctx, repository.AnnouncementFilter{
		Audience: strings.ToLower(strings.TrimSpace(audience)),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	return dto.NewAnnouncementResponseSlice(items), total, nil
}

func (s *announcementService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}

	return nil
}
