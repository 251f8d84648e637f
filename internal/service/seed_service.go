package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// SeedService loads reference data into an empty environment.
type SeedService interface {
	SeedCatalog(ctx context.Context, token string, faculties []models.Faculty) (int64, error)
	SeedStudents(ctx context.Context, token string, students []models.Student) (int64, error)
}

type seedService struct {
	catalogRepo repository.CatalogRepository
	studentRepo repository.StudentRepository
	enabled     bool
	token       string
	logger      zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(catalogRepo repository.CatalogRepository, studentRepo repository.StudentRepository, enabled bool, token string, logger zerolog.Logger) SeedService {
	return &seedService{
		catalogRepo: catalogRepo,
		studentRepo: studentRepo,
		enabled:     enabled,
		token:       token,
		logger:      logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) SeedCatalog(ctx context.Context, token string, faculties []models.Faculty) (int64, error) {
	if !s.enabled {
		return 0, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return 0, ErrSeedUnauthorized
	}
	normalized := normalizeFaculties(faculties)
	affected, err := s.catalogRepo.UpsertFaculties(ctx, normalized)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("affected", affected).Msg("catalog seeded")
	return affected, nil
}

func (s *seedService) SeedStudents(ctx context.Context, token string, students []models.Student) (int64, error) {
	if !s.enabled {
		return 0, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return 0, ErrSeedUnauthorized
	}
	normalized := normalizeStudents(students)
	affected, err := s.studentRepo.UpsertBatch(ctx, normalized)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("affected", affected).Msg("students seeded")
	return affected, nil
}

func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.token)
	if expected == "" {
		return false
	}
	return constantTimeEqual(expected, strings.TrimSpace(token))
}

func constantTimeEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	mismatch := byte(0)
	for i := 0; i < len(a); i++ {
		mismatch |= a[i] ^ b[i]
	}
	return mismatch == 0
}

func normalizeFaculties(items []models.Faculty) []models.Faculty {
	for i := range items {
		items[i].Name = strings.TrimSpace(items[i].Name)
	}
	return items
}

func normalizeStudents(items []models.Student) []models.Student {
	for i := range items {
		items[i].Name = strings.TrimSpace(items[i].Name)
		items[i].MatricNo = strings.TrimSpace(items[i].MatricNo)
	}
	return items
}
