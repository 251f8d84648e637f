package service

import (
	"context"
	"io"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/repository"
)

func newDashboardFixture(t *testing.T, name string, cache *redis.Client) (DashboardService, *gorm.DB, models.Programme) {
	t.Helper()

	db := openTestDB(t, name)
	programme := seedProgrammeWithStudents(t, db, 2)

	svc := NewDashboardService(
		repository.NewAttendanceRepository(db),
		repository.NewResultRepository(db),
		repository.NewApplicantRepository(db),
		repository.NewStudentRepository(db),
		cache,
		time.Minute,
		zerolog.New(io.Discard),
	)
	return svc, db, programme
}

func TestAdminDashboardAggregates(t *testing.T) {
	svc, db, programme := newDashboardFixture(t, "dash_agg", nil)
	ctx := context.Background()

	var students []models.Student
	require.NoError(t, db.Order("id").Find(&students).Error)
	require.Len(t, students, 2)

	session := models.AttendanceSession{
		CourseCode:   "CSC301",
		CourseTitle:  "Operating Systems",
		LecturerName: "Dr. Bello",
		Date:         time.Now().Format("2006-01-02"),
		StartTime:    "09:00",
		EndTime:      "11:00",
		QRToken:      "dash-token",
		IsActive:     false,
		IsSubmitted:  true,
		Records: []models.AttendanceRecord{
			{StudentID: students[0].ID, StudentName: students[0].Name, StudentMatric: students[0].MatricNo, Status: models.AttendanceStatusPresent, MarkedAt: "09:15"},
			{StudentID: students[1].ID, StudentName: students[1].Name, StudentMatric: students[1].MatricNo, Status: models.AttendanceStatusAbsent},
		},
	}
	require.NoError(t, db.Create(&session).Error)

	ca := 25.0
	exam := 50.0
	caLow := 10.0
	examLow := 20.0
	require.NoError(t, db.Create(&models.CourseResult{
		StudentID: students[0].ID, StudentName: students[0].Name, StudentMatric: students[0].MatricNo,
		CourseCode: "CSC301", CAScore: &ca, ExamScore: &exam,
	}).Error)
	require.NoError(t, db.Create(&models.CourseResult{
		StudentID: students[1].ID, StudentName: students[1].Name, StudentMatric: students[1].MatricNo,
		CourseCode: "CSC301", CAScore: &caLow, ExamScore: &examLow,
	}).Error)

	require.NoError(t, db.Create(&models.Applicant{
		FullName: "Kemi Ade", ProgrammeID: programme.ID, ExamScore: 250, Eligibility: models.EligibilityEligible,
	}).Error)
	require.NoError(t, db.Create(&models.Applicant{
		FullName: "Tunde Oye", ProgrammeID: programme.ID, ExamScore: 120, Eligibility: models.EligibilityPending,
	}).Error)

	dashboard, err := svc.AdminDashboard(ctx)
	require.NoError(t, err)

	require.Equal(t, 2, dashboard.TotalStudents)
	require.Equal(t, 1, dashboard.Attendance.TotalSessions)
	require.Equal(t, 1, dashboard.Attendance.SubmittedSessions)
	require.Equal(t, 2, dashboard.Attendance.TotalRecords)
	require.Equal(t, 1, dashboard.Attendance.PresentRecords)
	require.InDelta(t, 50.0, dashboard.Attendance.AttendanceRate, 0.01)

	require.Equal(t, 2, dashboard.Grades.TotalResults)
	require.Equal(t, 1, dashboard.Grades.ByGrade["A"])
	require.Equal(t, 1, dashboard.Grades.ByGrade["F"])
	require.InDelta(t, 50.0, dashboard.Grades.PassRate, 0.01)

	require.Equal(t, 2, dashboard.Admissions.TotalApplicants)
	require.Equal(t, 1, dashboard.Admissions.Eligible)
	require.Equal(t, 1, dashboard.Admissions.Pending)
}

func TestAdminDashboardCaching(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	cache := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	svc, db, programme := newDashboardFixture(t, "dash_cache", cache)
	ctx := context.Background()

	first, err := svc.AdminDashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, first.TotalStudents)

	// new rows are invisible until the cached aggregate expires
	require.NoError(t, db.Create(&models.Student{
		Name: "Late Arrival", MatricNo: "CSC/21/9999", ProgrammeID: programme.ID, Level: 100,
	}).Error)

	second, err := svc.AdminDashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, second.TotalStudents)

	mini.FastForward(2 * time.Minute)

	third, err := svc.AdminDashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, third.TotalStudents)
}
