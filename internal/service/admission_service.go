package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/repository"
)

// ErrApplicantNotFound indicates the requested applicant does not exist.
var ErrApplicantNotFound = errors.New("applicant not found")

// AdmissionService manages admissions intake and eligibility evaluation.
type AdmissionService interface {
	CreateApplicant(ctx context.Context, payload dto.ApplicantCreateRequest) (dto.ApplicantResponse, error)
	Evaluate(ctx context.Context, applicantID uint, actor ActivityActor) (dto.ApplicantResponse, error)
	CheckEligibility(ctx context.Context, payload dto.EligibilityCheckRequest) (dto.EligibilityCheckResponse, error)
	List(ctx context.Context, filter repository.ApplicantFilter) ([]dto.ApplicantResponse, int64, error)
}

type admissionService struct {
	applicants repository.ApplicantRepository
	catalog    repository.CatalogRepository
	validator  *validator.Validate
	activity   ActivityRecorder
	logger     zerolog.Logger
	now        func() time.Time
}

// NewAdmissionService builds the admissions service.
func NewAdmissionService(applicants repository.ApplicantRepository, catalog repository.CatalogRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) AdmissionService {
	return &admissionService{
		applicants: applicants,
		catalog:    catalog,
		validator:  validate,
		activity:   activity,
		logger:     logger.With().Str("component", "admission_service").Logger(),
		now:        time.Now,
	}
}

func (s *admissionService) CreateApplicant(ctx context.Context, payload dto.ApplicantCreateRequest) (dto.ApplicantResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ApplicantResponse{}, err
	}

	programme, err := s.catalog.GetProgramme(ctx, payload.ProgrammeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicantResponse{}, ErrProgrammeNotFound
		}
		return dto.ApplicantResponse{}, err
	}

	applicant := models.Applicant{
		FullName:    payload.FullName,
		Email:       payload.Email,
		ProgrammeID: programme.ID,
		ExamScore:   payload.ExamScore,
		Eligibility: models.EligibilityPending,
	}

	if err := s.applicants.Create(ctx, &applicant); err != nil {
		return dto.ApplicantResponse{}, err
	}

	applicant.Programme = programme
	s.logger.Info().Uint("applicant_id", applicant.ID).Str("programme", programme.Name).Msg("applicant registered")

	return dto.NewApplicantResponse(applicant), nil
}

// Evaluate compares the applicant's score against the programme cut-off and
// stores the outcome as a snapshot. The boundary is inclusive. Re-evaluating
// replaces the previous snapshot.
func (s *admissionService) Evaluate(ctx context.Context, applicantID uint, actor ActivityActor) (dto.ApplicantResponse, error) {
	applicant, err := s.applicants.GetByID(ctx, applicantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicantResponse{}, ErrApplicantNotFound
		}
		return dto.ApplicantResponse{}, err
	}

	if models.IsEligible(applicant.ExamScore, applicant.Programme.Cutoff) {
		applicant.Eligibility = models.EligibilityEligible
	} else {
		applicant.Eligibility = models.EligibilityNotEligible
	}
	evaluatedAt := s.now()
	applicant.EvaluatedAt = &evaluatedAt

	if err := s.applicants.Update(ctx, &applicant); err != nil {
		return dto.ApplicantResponse{}, err
	}

	if s.activity != nil {
		applicantRef := applicant.ID
		_ = s.activity.Record(ctx, ActivityEntry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     models.ActionApplicantEvaluated,
			EntityType: "applicant",
			EntityID:   &applicantRef,
			Metadata: map[string]interface{}{
				"eligibility": string(applicant.Eligibility),
				"score":       applicant.ExamScore,
				"cutoff":      applicant.Programme.Cutoff,
			},
		})
	}

	return dto.NewApplicantResponse(applicant), nil
}

// CheckEligibility runs the comparison without touching any stored applicant.
func (s *admissionService) CheckEligibility(ctx context.Context, payload dto.EligibilityCheckRequest) (dto.EligibilityCheckResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EligibilityCheckResponse{}, err
	}

	programme, err := s.catalog.GetProgramme(ctx, payload.ProgrammeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EligibilityCheckResponse{}, ErrProgrammeNotFound
		}
		return dto.EligibilityCheckResponse{}, err
	}

	return dto.EligibilityCheckResponse{
		ApplicantScore:  payload.ApplicantScore,
		ProgrammeCutoff: programme.Cutoff,
		IsEligible:      models.IsEligible(payload.ApplicantScore, programme.Cutoff),
	}, nil
}

func (s *admissionService) List(ctx context.Context, filter repository.ApplicantFilter) ([]dto.ApplicantResponse, int64, error) {
	applicants, total, err := s.applicants.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return dto.NewApplicantResponseSlice(applicants), total, nil
}
