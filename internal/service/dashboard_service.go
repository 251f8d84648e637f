package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/repository"
)

const adminDashboardCacheKey = "dashboard:admin"

// DashboardService produces aggregated portal statistics.
type DashboardService interface {
	AdminDashboard(ctx context.Context) (dto.AdminDashboardResponse, error)
}

type dashboardService struct {
	sessions   repository.AttendanceRepository
	results    repository.ResultRepository
	applicants repository.ApplicantRepository
	students   repository.StudentRepository
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     zerolog.Logger
}

// NewDashboardService builds the dashboard aggregator. cache may be nil.
func NewDashboardService(
	sessions repository.AttendanceRepository,
	results repository.ResultRepository,
	applicants repository.ApplicantRepository,
	students repository.StudentRepository,
	cache *redis.Client,
	ttl time.Duration,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		sessions:   sessions,
		results:    results,
		applicants: applicants,
		students:   students,
		cache:      cache,
		cacheTTL:   ttl,
		logger:     logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) AdminDashboard(ctx context.Context) (dto.AdminDashboardResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, adminDashboardCacheKey).Result(); err == nil {
			var response dto.AdminDashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Msg("admin dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	sessions, _, err := s.sessions.ListSessions(ctx, repository.AttendanceSessionFilter{})
	if err != nil {
		return dto.AdminDashboardResponse{}, err
	}

	students, err := s.students.List(ctx)
	if err != nil {
		return dto.AdminDashboardResponse{}, err
	}

	applicants, _, err := s.applicants.List(ctx, repository.ApplicantFilter{})
	if err != nil {
		return dto.AdminDashboardResponse{}, err
	}

	results := make([]models.CourseResult, 0)
	seenCourses := map[string]struct{}{}
	for _, session := range sessions {
		if _, ok := seenCourses[session.CourseCode]; ok {
			continue
		}
		seenCourses[session.CourseCode] = struct{}{}
		courseResults, err := s.results.ListByCourse(ctx, session.CourseCode)
		if err != nil {
			return dto.AdminDashboardResponse{}, err
		}
		results = append(results, courseResults...)
	}

	response := buildAdminDashboard(sessions, results, applicants, len(students))

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, adminDashboardCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

func buildAdminDashboard(sessions []models.AttendanceSession, results []models.CourseResult, applicants []models.Applicant, studentCount int) dto.AdminDashboardResponse {
	attendance := dto.AttendanceSummary{TotalSessions: len(sessions)}
	for _, session := range sessions {
		if session.IsSubmitted {
			attendance.SubmittedSessions++
		} else if session.IsActive {
			attendance.OpenSessions++
		}
		attendance.TotalRecords += len(session.Records)
		attendance.PresentRecords += session.PresentCount()
	}
	if attendance.TotalRecords > 0 {
		attendance.AttendanceRate = float64(attendance.PresentRecords) / float64(attendance.TotalRecords) * 100
	}

	grades := dto.GradeDistribution{
		TotalResults: len(results),
		ByGrade:      map[string]int{},
	}
	passed := 0
	for _, result := range results {
		grade := result.Grade()
		grades.ByGrade[grade]++
		if grade != "F" {
			passed++
		}
	}
	if len(results) > 0 {
		grades.PassRate = float64(passed) / float64(len(results)) * 100
	}

	admissions := dto.AdmissionSummary{TotalApplicants: len(applicants)}
	for _, applicant := range applicants {
		switch applicant.Eligibility {
		case models.EligibilityEligible:
			admissions.Eligible++
		case models.EligibilityNotEligible:
			admissions.NotEligible++
		default:
			admissions.Pending++
		}
	}

	return dto.AdminDashboardResponse{
		TotalStudents: studentCount,
		Attendance:    attendance,
		Grades:        grades,
		Admissions:    admissions,
	}
}
