package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/repository"
)

var (
	// ErrStudentNotFound indicates the graded student does not exist.
	ErrStudentNotFound = errors.New("student not found")
	// ErrScoreOutOfRange indicates a score component is outside its bound.
	// The stored values stay untouched when this is returned.
	ErrScoreOutOfRange = errors.New("score outside allowed range")
)

// GradingService records continuous-assessment and exam scores.
type GradingService interface {
	EnterScores(ctx context.Context, payload dto.ScoreEntryRequest, actor ActivityActor) (dto.ResultResponse, error)
	ListByCourse(ctx context.Context, courseCode string) ([]dto.ResultResponse, error)
	ListByStudent(ctx context.Context, studentID uint) ([]dto.ResultResponse, error)
}

type gradingService struct {
	results   repository.ResultRepository
	students  repository.StudentRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewGradingService builds the grading service.
func NewGradingService(results repository.ResultRepository, students repository.StudentRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) GradingService {
	return &gradingService{
		results:   results,
		students:  students,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "grading_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/campus-go-api/internal/service/grading"),
	}
}

// EnterScores applies the provided score components to the student's result
// row for the course, creating the row on first entry. A component outside
// its range rejects the whole request; the previously stored values are not
// clamped or partially applied.
func (s *gradingService) EnterScores(ctx context.Context, payload dto.ScoreEntryRequest, actor ActivityActor) (dto.ResultResponse, error) {
	ctx, span := s.tracer.Start(ctx, "grading.enter_scores")
	span.SetAttributes(
		attribute.Int64("grading.student_id", int64(payload.StudentID)),
		attribute.String("grading.course_code", payload.CourseCode),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.ResultResponse{}, err
	}

	if payload.CAScore != nil && !models.ValidCAScore(*payload.CAScore) {
		return dto.ResultResponse{}, fmt.Errorf("ca score must be within [0,%v]: %w", models.MaxCAScore, ErrScoreOutOfRange)
	}
	if payload.ExamScore != nil && !models.ValidExamScore(*payload.ExamScore) {
		return dto.ResultResponse{}, fmt.Errorf("exam score must be within [0,%v]: %w", models.MaxExamScore, ErrScoreOutOfRange)
	}

	result, err := s.results.GetByStudentAndCourse(ctx, payload.StudentID, payload.CourseCode)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResultResponse{}, err
		}

		student, lookupErr := s.students.GetByID(ctx, payload.StudentID)
		if lookupErr != nil {
			if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
				return dto.ResultResponse{}, ErrStudentNotFound
			}
			return dto.ResultResponse{}, lookupErr
		}

		result = models.CourseResult{
			StudentID:     student.ID,
			StudentName:   student.Name,
			StudentMatric: student.MatricNo,
			CourseCode:    payload.CourseCode,
		}
		if err := s.results.Create(ctx, &result); err != nil {
			return dto.ResultResponse{}, err
		}
	}

	if payload.CAScore != nil {
		result.CAScore = payload.CAScore
	}
	if payload.ExamScore != nil {
		result.ExamScore = payload.ExamScore
	}

	if err := s.results.Update(ctx, &result); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "result_update_failed")
		return dto.ResultResponse{}, err
	}

	s.logger.Info().
		Uint("student_id", result.StudentID).
		Str("course_code", result.CourseCode).
		Float64("total", result.Total()).
		Str("grade", result.Grade()).
		Msg("scores entered")

	if s.activity != nil {
		resultRef := result.ID
		_ = s.activity.Record(ctx, ActivityEntry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     models.ActionScoresEntered,
			EntityType: "course_result",
			EntityID:   &resultRef,
			Metadata: map[string]interface{}{
				"course_code": result.CourseCode,
				"grade":       result.Grade(),
			},
		})
	}

	return dto.NewResultResponse(result), nil
}

func (s *gradingService) ListByCourse(ctx context.Context, courseCode string) ([]dto.ResultResponse, error) {
	results, err := s.results.ListByCourse(ctx, courseCode)
	if err != nil {
		return nil, err
	}

	return dto.NewResultResponseSlice(results), nil
}

func (s *gradingService) ListByStudent(ctx context.Context, studentID uint) ([]dto.ResultResponse, error) {
	results, err := s.results.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewResultResponseSlice(results), nil
}
