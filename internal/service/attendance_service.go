package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/observability"
	"github.com/noah-isme/campus-go-api/internal/repository"
)

var (
	// ErrSessionNotFound indicates the requested attendance session does not exist.
	ErrSessionNotFound = errors.New("attendance session not found")
	// ErrRosterEmpty indicates no students are registered under the programme.
	ErrRosterEmpty = errors.New("programme has no registered students")
)

// MarkEventPublisher pushes attendance mark events to live feed subscribers.
type MarkEventPublisher interface {
	PublishMark(ctx context.Context, event dto.AttendanceMarkEvent)
}

// AttendanceService exposes the attendance session lifecycle.
type AttendanceService interface {
	CreateSession(ctx context.Context, payload dto.SessionCreateRequest) (dto.SessionResponse, error)
	MarkAttendance(ctx context.Context, sessionID uint, payload dto.MarkAttendanceRequest) (dto.SessionResponse, error)
	CloseSession(ctx context.Context, sessionID uint) (dto.SessionResponse, error)
	SubmitAttendance(ctx context.Context, sessionID uint, actor ActivityActor) (dto.SessionResponse, error)
	List(ctx context.Context, filter repository.AttendanceSessionFilter) ([]dto.SessionResponse, int64, error)
	Get(ctx context.Context, sessionID uint) (dto.SessionResponse, error)
	GetByToken(ctx context.Context, token string) (dto.SessionResponse, error)
}

type attendanceService struct {
	sessions  repository.AttendanceRepository
	students  repository.StudentRepository
	catalog   repository.CatalogRepository
	validator *validator.Validate
	feed      MarkEventPublisher
	activity  ActivityRecorder
	logger    zerolog.Logger
	shareBase string
	now       func() time.Time
}

// NewAttendanceService builds the attendance session service. feed and
// activity may be nil when live streaming or auditing is disabled.
func NewAttendanceService(
	sessions repository.AttendanceRepository,
	students repository.StudentRepository,
	catalog repository.CatalogRepository,
	validate *validator.Validate,
	feed MarkEventPublisher,
	activity ActivityRecorder,
	shareBase string,
	logger zerolog.Logger,
) AttendanceService {
	return &attendanceService{
		sessions:  sessions,
		students:  students,
		catalog:   catalog,
		validator: validate,
		feed:      feed,
		activity:  activity,
		logger:    logger.With().Str("component", "attendance_service").Logger(),
		shareBase: shareBase,
		now:       time.Now,
	}
}

func (s *attendanceService) CreateSession(ctx context.Context, payload dto.SessionCreateRequest) (dto.SessionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SessionResponse{}, err
	}

	programme, err := s.catalog.GetProgramme(ctx, payload.ProgrammeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SessionResponse{}, ErrProgrammeNotFound
		}
		return dto.SessionResponse{}, err
	}

	department, err := s.catalog.GetDepartment(ctx, programme.DepartmentID)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	roster, err := s.students.ListByProgramme(ctx, programme.ID)
	if err != nil {
		return dto.SessionResponse{}, err
	}
	if len(roster) == 0 {
		return dto.SessionResponse{}, ErrRosterEmpty
	}

	token := uuid.NewString()
	session := models.AttendanceSession{
		CourseCode:   payload.CourseCode,
		CourseTitle:  payload.CourseTitle,
		LecturerName: payload.LecturerName,
		Department:   department.Name,
		Programme:    programme.Name,
		Date:         payload.Date,
		StartTime:    payload.StartTime,
		EndTime:      payload.EndTime,
		IsActive:     true,
		IsSubmitted:  false,
		QRToken:      token,
		ShareLink:    fmt.Sprintf("%s/attend/%s", s.shareBase, token),
	}

	// roster order is enrollment order; every record starts Absent with no timestamp
	session.Records = make([]models.AttendanceRecord, 0, len(roster))
	for _, student := range roster {
		session.Records = append(session.Records, models.AttendanceRecord{
			StudentID:     student.ID,
			StudentName:   student.Name,
			StudentMatric: student.MatricNo,
			Status:        models.AttendanceStatusAbsent,
			MarkedAt:      "",
		})
	}

	if err := s.sessions.CreateSession(ctx, &session); err != nil {
		return dto.SessionResponse{}, err
	}

	s.logger.Info().
		Uint("session_id", session.ID).
		Str("course_code", session.CourseCode).
		Int("roster_size", len(session.Records)).
		Msg("attendance session created")

	return dto.NewSessionResponse(session), nil
}

// MarkAttendance mutates a single record within an unsubmitted session.
// Marking a submitted session, or an unknown student within a found session,
// changes nothing and is not an error; only an unknown session id is.
func (s *attendanceService) MarkAttendance(ctx context.Context, sessionID uint, payload dto.MarkAttendanceRequest) (dto.SessionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SessionResponse{}, err
	}

	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SessionResponse{}, ErrSessionNotFound
		}
		return dto.SessionResponse{}, err
	}

	record := session.Mark(payload.StudentID, payload.Status, s.now().Format("15:04"))
	if record == nil {
		s.logger.Debug().
			Uint("session_id", sessionID).
			Uint("student_id", payload.StudentID).
			Bool("submitted", session.IsSubmitted).
			Msg("mark ignored")
		return dto.NewSessionResponse(session), nil
	}

	if err := s.sessions.UpdateRecord(ctx, record); err != nil {
		return dto.SessionResponse{}, err
	}

	observability.AttendanceMarks().WithLabelValues(string(record.Status)).Inc()

	if s.feed != nil {
		s.feed.PublishMark(ctx, dto.AttendanceMarkEvent{
			SessionID:     session.ID,
			StudentID:     record.StudentID,
			StudentName:   record.StudentName,
			StudentMatric: record.StudentMatric,
			Status:        record.Status,
			MarkedAt:      record.MarkedAt,
			PresentCount:  session.PresentCount(),
		})
	}

	return dto.NewSessionResponse(session), nil
}

func (s *attendanceService) CloseSession(ctx context.Context, sessionID uint) (dto.SessionResponse, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SessionResponse{}, ErrSessionNotFound
		}
		return dto.SessionResponse{}, err
	}

	session.Close()
	if err := s.sessions.UpdateSession(ctx, &session); err != nil {
		return dto.SessionResponse{}, err
	}

	return dto.NewSessionResponse(session), nil
}

// SubmitAttendance freezes the session permanently. Submitting an already
// submitted session leaves the same terminal state.
func (s *attendanceService) SubmitAttendance(ctx context.Context, sessionID uint, actor ActivityActor) (dto.SessionResponse, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SessionResponse{}, ErrSessionNotFound
		}
		return dto.SessionResponse{}, err
	}

	alreadySubmitted := session.IsSubmitted
	session.Submit()
	if err := s.sessions.UpdateSession(ctx, &session); err != nil {
		return dto.SessionResponse{}, err
	}

	if !alreadySubmitted {
		s.logger.Info().
			Uint("session_id", session.ID).
			Int("present", session.PresentCount()).
			Int("roster", len(session.Records)).
			Msg("attendance submitted")

		if s.activity != nil {
			sessionRef := session.ID
			_ = s.activity.Record(ctx, ActivityEntry{
				ActorID:    actor.ID,
				ActorRole:  actor.Role,
				Action:     models.ActionSessionSubmitted,
				EntityType: "attendance_session",
				EntityID:   &sessionRef,
				Metadata: map[string]interface{}{
					"course_code": session.CourseCode,
					"present":     session.PresentCount(),
					"roster":      len(session.Records),
				},
			})
		}
	}

	return dto.NewSessionResponse(session), nil
}

func (s *attendanceService) List(ctx context.Context, filter repository.AttendanceSessionFilter) ([]dto.SessionResponse, int64, error) {
	sessions, total, err := s.sessions.ListSessions(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return dto.NewSessionResponseSlice(sessions), total, nil
}

func (s *attendanceService) Get(ctx context.Context, sessionID uint) (dto.SessionResponse, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SessionResponse{}, ErrSessionNotFound
		}
		return dto.SessionResponse{}, err
	}

	return dto.NewSessionResponse(session), nil
}

func (s *attendanceService) GetByToken(ctx context.Context, token string) (dto.SessionResponse, error) {
	session, err := s.sessions.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SessionResponse{}, ErrSessionNotFound
		}
		return dto.SessionResponse{}, err
	}

	return dto.NewSessionResponse(session), nil
}
