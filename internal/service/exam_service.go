package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/observability"
	"github.com/noah-isme/campus-go-api/internal/repository"
)

var (
	// ErrCycleNotFound indicates the exam cycle does not exist.
	ErrCycleNotFound = errors.New("exam cycle not found")
	// ErrScheduleConflict indicates the proposed slot collides with existing
	// schedules and the caller has not confirmed the override.
	ErrScheduleConflict = errors.New("schedule conflicts with existing exams")
)

// ExamService manages exam cycles and their schedules.
type ExamService interface {
	CreateCycle(ctx context.Context, payload dto.CycleCreateRequest) (dto.CycleResponse, error)
	ListCycles(ctx context.Context) ([]dto.CycleResponse, error)
	CreateSchedule(ctx context.Context, cycleID uint, payload dto.ScheduleCreateRequest, actor ActivityActor) (dto.ScheduleResponse, []dto.ScheduleResponse, error)
	CheckSchedule(ctx context.Context, cycleID uint, payload dto.ScheduleCheckRequest) (dto.ConflictCheckResponse, error)
	ListSchedules(ctx context.Context, cycleID uint) ([]dto.ScheduleResponse, error)
}

type examService struct {
	repo      repository.ExamRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewExamService builds the exam scheduling service.
func NewExamService(repo repository.ExamRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) ExamService {
	return &examService{
		repo:      repo,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "exam_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/campus-go-api/internal/service/exam"),
	}
}

func (s *examService) CreateCycle(ctx context.Context, payload dto.CycleCreateRequest) (dto.CycleResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CycleResponse{}, err
	}

	cycle := models.ExamCycle{
		Name:         payload.Name,
		AcademicYear: payload.AcademicYear,
		Semester:     payload.Semester,
	}

	if err := s.repo.CreateCycle(ctx, &cycle); err != nil {
		return dto.CycleResponse{}, err
	}

	s.logger.Info().Uint("cycle_id", cycle.ID).Str("name", cycle.Name).Msg("exam cycle created")

	return dto.NewCycleResponse(cycle), nil
}

func (s *examService) ListCycles(ctx context.Context) ([]dto.CycleResponse, error) {
	cycles, err := s.repo.ListCycles(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewCycleResponseSlice(cycles), nil
}

// CreateSchedule stores a schedule with a conflict snapshot computed against
// the cycle's existing entries. Without Confirm a detected conflict aborts
// the creation and the colliding schedules are returned alongside
// ErrScheduleConflict; with Confirm the schedule is stored with status
// Conflict. The snapshot is never re-validated when other schedules change.
func (s *examService) CreateSchedule(ctx context.Context, cycleID uint, payload dto.ScheduleCreateRequest, actor ActivityActor) (dto.ScheduleResponse, []dto.ScheduleResponse, error) {
	ctx, span := s.tracer.Start(ctx, "exam.schedule_create")
	span.SetAttributes(
		attribute.Int64("exam.cycle_id", int64(cycleID)),
		attribute.String("exam.course_code", payload.CourseCode),
		attribute.String("exam.date", payload.Date),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.ScheduleResponse{}, nil, err
	}

	if _, err := s.repo.GetCycle(ctx, cycleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ScheduleResponse{}, nil, ErrCycleNotFound
		}
		return dto.ScheduleResponse{}, nil, err
	}

	conflicts, err := s.findConflicts(ctx, cycleID, payload.Date, payload.Venue, payload.StartTime, payload.EndTime)
	if err != nil {
		return dto.ScheduleResponse{}, nil, err
	}

	status := models.ScheduleStatusScheduled
	if len(conflicts) > 0 {
		observability.ExamConflicts().Inc()
		span.SetAttributes(attribute.Int("exam.conflicts", len(conflicts)))

		if !payload.Confirm {
			return dto.ScheduleResponse{}, dto.NewScheduleResponseSlice(conflicts), ErrScheduleConflict
		}
		status = models.ScheduleStatusConflict
	}

	schedule := models.ExamSchedule{
		CycleID:          cycleID,
		CourseCode:       payload.CourseCode,
		CourseTitle:      payload.CourseTitle,
		Date:             payload.Date,
		StartTime:        payload.StartTime,
		EndTime:          payload.EndTime,
		Venue:            payload.Venue,
		InvigilatorCount: payload.InvigilatorCount,
		StudentCount:     payload.StudentCount,
		Status:           status,
	}

	if err := s.repo.CreateSchedule(ctx, &schedule); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "schedule_create_failed")
		return dto.ScheduleResponse{}, nil, err
	}

	s.logger.Info().
		Uint("schedule_id", schedule.ID).
		Uint("cycle_id", cycleID).
		Str("status", string(schedule.Status)).
		Msg("exam schedule created")

	if s.activity != nil {
		scheduleRef := schedule.ID
		_ = s.activity.Record(ctx, ActivityEntry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     models.ActionScheduleCreated,
			EntityType: "exam_schedule",
			EntityID:   &scheduleRef,
			Metadata: map[string]interface{}{
				"course_code": schedule.CourseCode,
				"status":      string(schedule.Status),
				"venue":       schedule.Venue,
			},
		})
	}

	return dto.NewScheduleResponse(schedule), dto.NewScheduleResponseSlice(conflicts), nil
}

// CheckSchedule re-runs the conflict detector without persisting anything.
func (s *examService) CheckSchedule(ctx context.Context, cycleID uint, payload dto.ScheduleCheckRequest) (dto.ConflictCheckResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ConflictCheckResponse{}, err
	}

	conflicts, err := s.findConflicts(ctx, cycleID, payload.Date, payload.Venue, payload.StartTime, payload.EndTime)
	if err != nil {
		return dto.ConflictCheckResponse{}, err
	}

	return dto.ConflictCheckResponse{
		Conflict:  len(conflicts) > 0,
		Conflicts: dto.NewScheduleResponseSlice(conflicts),
	}, nil
}

func (s *examService) ListSchedules(ctx context.Context, cycleID uint) ([]dto.ScheduleResponse, error) {
	schedules, err := s.repo.ListSchedules(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	return dto.NewScheduleResponseSlice(schedules), nil
}

func (s *examService) findConflicts(ctx context.Context, cycleID uint, date, venue, startTime, endTime string) ([]models.ExamSchedule, error) {
	existing, err := s.repo.ListSchedulesByDate(ctx, cycleID, date)
	if err != nil {
		return nil, err
	}

	conflicts := make([]models.ExamSchedule, 0)
	for _, schedule := range existing {
		if schedule.ConflictsWith(date, venue, startTime, endTime) {
			conflicts = append(conflicts, schedule)
		}
	}

	return conflicts, nil
}
