package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/repository"
)

const catalogTreeCacheKey = "catalog:tree"

// ErrProgrammeNotFound indicates the referenced programme does not exist.
var ErrProgrammeNotFound = errors.New("programme not found")

// CatalogService serves the academic hierarchy and the dependent filter cascade.
type CatalogService interface {
	Tree(ctx context.Context) ([]dto.FacultyTreeResponse, error)
	Options(ctx context.Context, payload dto.CascadeOptionsRequest) (dto.CascadeOptionsResponse, error)
}

type catalogService struct {
	repo      repository.CatalogRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCatalogService builds the catalog service. cache may be nil.
func NewCatalogService(repo repository.CatalogRepository, cache *redis.Client, ttl time.Duration, validate *validator.Validate, logger zerolog.Logger) CatalogService {
	return &catalogService{
		repo:      repo,
		cache:     cache,
		cacheTTL:  ttl,
		validator: validate,
		logger:    logger.With().Str("component", "catalog_service").Logger(),
	}
}

func (s *catalogService) Tree(ctx context.Context) ([]dto.FacultyTreeResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, catalogTreeCacheKey).Result(); err == nil {
			var tree []dto.FacultyTreeResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &tree); unmarshalErr == nil {
				s.logger.Debug().Msg("catalog tree cache hit")
				return tree, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read catalog cache")
		}
	}

	faculties, err := s.repo.ListFaculties(ctx)
	if err != nil {
		return nil, err
	}

	tree := dto.NewFacultyTreeResponseSlice(faculties)

	if s.cache != nil {
		if payload, err := json.Marshal(tree); err == nil {
			if err := s.cache.Set(ctx, catalogTreeCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store catalog cache")
			}
		}
	}

	return tree, nil
}

// Options applies the cascade reset for the changed field and returns the
// option sets valid under the resulting selection. A child option list is
// empty until its parent is selected, so no descendant can ever display a
// value inconsistent with its ancestor.
func (s *catalogService) Options(ctx context.Context, payload dto.CascadeOptionsRequest) (dto.CascadeOptionsResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CascadeOptionsResponse{}, err
	}

	selection := payload.Selection
	switch payload.Changed {
	case dto.CascadeFieldFaculty:
		selection.SelectFaculty(payload.Selection.FacultyID)
	case dto.CascadeFieldDepartment:
		selection.SelectDepartment(payload.Selection.DepartmentID)
	case dto.CascadeFieldProgramme:
		selection.SelectProgramme(payload.Selection.ProgrammeID)
	case dto.CascadeFieldLevel:
		selection.SelectLevel(payload.Selection.Level)
	case dto.CascadeFieldSemester:
		selection.SelectSemester(payload.Selection.Semester)
	}

	response := dto.CascadeOptionsResponse{
		Selection:   selection,
		Departments: []dto.OptionItem{},
		Programmes:  []dto.OptionItem{},
		Levels:      []int{},
		Semesters:   []string{},
	}

	if selection.FacultyID != nil {
		departments, err := s.repo.ListDepartments(ctx, *selection.FacultyID)
		if err != nil {
			return dto.CascadeOptionsResponse{}, err
		}
		for _, department := range departments {
			response.Departments = append(response.Departments, dto.OptionItem{ID: department.ID, Name: department.Name})
		}
	}

	if selection.DepartmentID != nil {
		programmes, err := s.repo.ListProgrammes(ctx, *selection.DepartmentID)
		if err != nil {
			return dto.CascadeOptionsResponse{}, err
		}
		for _, programme := range programmes {
			response.Programmes = append(response.Programmes, dto.OptionItem{ID: programme.ID, Name: programme.Name})
		}
	}

	if selection.ProgrammeID != nil {
		programme, err := s.repo.GetProgramme(ctx, *selection.ProgrammeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.CascadeOptionsResponse{}, ErrProgrammeNotFound
			}
			return dto.CascadeOptionsResponse{}, err
		}
		response.Levels = models.LevelsFor(programme)
	}

	if selection.Level != nil {
		response.Semesters = models.AllSemesters
	}

	return response, nil
}
