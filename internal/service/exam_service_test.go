package service

import (
	"context"
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/repository"
)

func newExamFixture(t *testing.T, name string) (ExamService, uint) {
	t.Helper()

	db := openTestDB(t, name)
	svc := NewExamService(
		repository.NewExamRepository(db),
		validator.New(validator.WithRequiredStructEnabled()),
		nil,
		zerolog.New(io.Discard),
	)

	cycle, err := svc.CreateCycle(context.Background(), dto.CycleCreateRequest{
		Name:         "First Semester Exams",
		AcademicYear: "2025/2026",
		Semester:     "First",
	})
	require.NoError(t, err)

	return svc, cycle.ID
}

func scheduleRequest(course, date, start, end, venue string) dto.ScheduleCreateRequest {
	return dto.ScheduleCreateRequest{
		CourseCode:  course,
		CourseTitle: course + " Paper",
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Venue:       venue,
	}
}

func TestCreateScheduleDetectsOverlap(t *testing.T) {
	svc, cycleID := newExamFixture(t, "exam_overlap")
	ctx := context.Background()
	actor := ActivityActor{ID: 1, Role: "staff"}

	first, conflicts, err := svc.CreateSchedule(ctx, cycleID, scheduleRequest("CSC301", "2026-03-10", "09:00", "11:00", "Main Hall"), actor)
	require.NoError(t, err)
	require.Empty(t, conflicts)
	require.Equal(t, models.ScheduleStatusScheduled, first.Status)

	// overlapping slot in the same venue is rejected without Confirm
	_, conflicts, err = svc.CreateSchedule(ctx, cycleID, scheduleRequest("MTH201", "2026-03-10", "10:00", "12:00", "Main Hall"), actor)
	require.ErrorIs(t, err, ErrScheduleConflict)
	require.Len(t, conflicts, 1)
	require.Equal(t, "CSC301", conflicts[0].CourseCode)

	// with Confirm the override is stored, flagged Conflict
	payload := scheduleRequest("MTH201", "2026-03-10", "10:00", "12:00", "Main Hall")
	payload.Confirm = true
	stored, conflicts, err := svc.CreateSchedule(ctx, cycleID, payload, actor)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	require.Equal(t, models.ScheduleStatusConflict, stored.Status)
}

func TestCreateScheduleTouchingSlotsDoNotConflict(t *testing.T) {
	svc, cycleID := newExamFixture(t, "exam_touching")
	ctx := context.Background()
	actor := ActivityActor{ID: 1, Role: "staff"}

	_, _, err := svc.CreateSchedule(ctx, cycleID, scheduleRequest("CSC301", "2026-03-10", "09:00", "11:00", "Main Hall"), actor)
	require.NoError(t, err)

	// back-to-back booking in the same venue is fine
	second, conflicts, err := svc.CreateSchedule(ctx, cycleID, scheduleRequest("MTH201", "2026-03-10", "11:00", "13:00", "Main Hall"), actor)
	require.NoError(t, err)
	require.Empty(t, conflicts)
	require.Equal(t, models.ScheduleStatusScheduled, second.Status)
}

func TestCreateScheduleVenueCapacitySuffixIgnored(t *testing.T) {
	svc, cycleID := newExamFixture(t, "exam_venue")
	ctx := context.Background()
	actor := ActivityActor{ID: 1, Role: "staff"}

	_, _, err := svc.CreateSchedule(ctx, cycleID, scheduleRequest("CSC301", "2026-03-10", "09:00", "11:00", "Main Hall (500)"), actor)
	require.NoError(t, err)

	// "Main Hall" and "Main Hall (500)" are the same venue
	_, conflicts, err := svc.CreateSchedule(ctx, cycleID, scheduleRequest("MTH201", "2026-03-10", "10:00", "12:00", "Main Hall"), actor)
	require.ErrorIs(t, err, ErrScheduleConflict)
	require.Len(t, conflicts, 1)
}

func TestCreateScheduleDifferentDateOrVenue(t *testing.T) {
	svc, cycleID := newExamFixture(t, "exam_disjoint")
	ctx := context.Background()
	actor := ActivityActor{ID: 1, Role: "staff"}

	_, _, err := svc.CreateSchedule(ctx, cycleID, scheduleRequest("CSC301", "2026-03-10", "09:00", "11:00", "Main Hall"), actor)
	require.NoError(t, err)

	_, conflicts, err := svc.CreateSchedule(ctx, cycleID, scheduleRequest("MTH201", "2026-03-11", "09:00", "11:00", "Main Hall"), actor)
	require.NoError(t, err)
	require.Empty(t, conflicts)

	_, conflicts, err = svc.CreateSchedule(ctx, cycleID, scheduleRequest("PHY202", "2026-03-10", "09:00", "11:00", "Lab B"), actor)
	require.NoError(t, err)
	require.Empty(t, conflicts)
}

func TestCheckScheduleDoesNotPersist(t *testing.T) {
	svc, cycleID := newExamFixture(t, "exam_check")
	ctx := context.Background()
	actor := ActivityActor{ID: 1, Role: "staff"}

	_, _, err := svc.CreateSchedule(ctx, cycleID, scheduleRequest("CSC301", "2026-03-10", "09:00", "11:00", "Main Hall"), actor)
	require.NoError(t, err)

	result, err := svc.CheckSchedule(ctx, cycleID, dto.ScheduleCheckRequest{
		Date:      "2026-03-10",
		StartTime: "10:00",
		EndTime:   "12:00",
		Venue:     "Main Hall",
	})
	require.NoError(t, err)
	require.True(t, result.Conflict)
	require.Len(t, result.Conflicts, 1)

	schedules, err := svc.ListSchedules(ctx, cycleID)
	require.NoError(t, err)
	require.Len(t, schedules, 1)
}

func TestCreateScheduleUnknownCycle(t *testing.T) {
	svc, _ := newExamFixture(t, "exam_nocycle")

	_, _, err := svc.CreateSchedule(context.Background(), 9999, scheduleRequest("CSC301", "2026-03-10", "09:00", "11:00", "Main Hall"), ActivityActor{})
	require.ErrorIs(t, err, ErrCycleNotFound)
}

func TestConflictStatusIsSnapshot(t *testing.T) {
	svc, cycleID := newExamFixture(t, "exam_snapshot")
	ctx := context.Background()
	actor := ActivityActor{ID: 1, Role: "staff"}

	first, _, err := svc.CreateSchedule(ctx, cycleID, scheduleRequest("CSC301", "2026-03-10", "09:00", "11:00", "Main Hall"), actor)
	require.NoError(t, err)

	payload := scheduleRequest("MTH201", "2026-03-10", "10:00", "12:00", "Main Hall")
	payload.Confirm = true
	_, _, err = svc.CreateSchedule(ctx, cycleID, payload, actor)
	require.NoError(t, err)

	// the earlier schedule keeps its creation-time status even though a
	// colliding entry now exists
	schedules, err := svc.ListSchedules(ctx, cycleID)
	require.NoError(t, err)
	for _, schedule := range schedules {
		if schedule.ID == first.ID {
			require.Equal(t, models.ScheduleStatusScheduled, schedule.Status)
		}
	}
}

func TestCycleSchedulesPersistWithCycle(t *testing.T) {
	db := openTestDB(t, "exam_assoc")

	cycle := models.ExamCycle{
		Name:         "Second Semester Exams",
		AcademicYear: "2025/2026",
		Semester:     "Second",
		Schedules: []models.ExamSchedule{
			{CourseCode: "CSC301", CourseTitle: "CSC301 Paper", Date: "2026-03-10", StartTime: "09:00", EndTime: "12:00", Venue: "Main Hall", Status: models.ScheduleStatusScheduled},
		},
	}
	require.NoError(t, db.Create(&cycle).Error)

	var reloaded models.ExamCycle
	require.NoError(t, db.Preload("Schedules").First(&reloaded, cycle.ID).Error)
	require.Len(t, reloaded.Schedules, 1)
	require.Equal(t, cycle.ID, reloaded.Schedules[0].CycleID)
}
