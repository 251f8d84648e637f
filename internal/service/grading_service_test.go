package service

import (
	"context"
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/repository"
)

func newGradingFixture(t *testing.T, name string) (GradingService, *gorm.DB, models.Student) {
	t.Helper()

	db := openTestDB(t, name)
	seedProgrammeWithStudents(t, db, 1)

	var student models.Student
	require.NoError(t, db.First(&student).Error)

	svc := NewGradingService(
		repository.NewResultRepository(db),
		repository.NewStudentRepository(db),
		validator.New(validator.WithRequiredStructEnabled()),
		nil,
		zerolog.New(io.Discard),
	)

	return svc, db, student
}

func scorePtr(v float64) *float64 {
	return &v
}

func TestEnterScoresCreatesResultAndDerivesGrade(t *testing.T) {
	svc, _, student := newGradingFixture(t, "grade_create")
	ctx := context.Background()
	actor := ActivityActor{ID: 1, Role: "staff"}

	result, err := svc.EnterScores(ctx, dto.ScoreEntryRequest{
		StudentID:  student.ID,
		CourseCode: "CSC301",
		CAScore:    scorePtr(25),
		ExamScore:  scorePtr(50),
	}, actor)
	require.NoError(t, err)
	require.Equal(t, student.MatricNo, result.StudentMatric)
	require.InDelta(t, 75.0, result.Total, 0.001)
	require.Equal(t, "A", result.Grade)
}

func TestEnterScoresPartialComponent(t *testing.T) {
	svc, _, student := newGradingFixture(t, "grade_partial")
	ctx := context.Background()
	actor := ActivityActor{ID: 1, Role: "staff"}

	first, err := svc.EnterScores(ctx, dto.ScoreEntryRequest{
		StudentID:  student.ID,
		CourseCode: "CSC301",
		CAScore:    scorePtr(20),
	}, actor)
	require.NoError(t, err)
	require.InDelta(t, 20.0, first.Total, 0.001)
	require.Equal(t, "F", first.Grade)
	require.Nil(t, first.ExamScore)

	// a later exam entry must not disturb the stored CA component
	second, err := svc.EnterScores(ctx, dto.ScoreEntryRequest{
		StudentID:  student.ID,
		CourseCode: "CSC301",
		ExamScore:  scorePtr(45),
	}, actor)
	require.NoError(t, err)
	require.NotNil(t, second.CAScore)
	require.InDelta(t, 20.0, *second.CAScore, 0.001)
	require.InDelta(t, 65.0, second.Total, 0.001)
	require.Equal(t, "B", second.Grade)
}

func TestEnterScoresRejectsOutOfRange(t *testing.T) {
	svc, _, student := newGradingFixture(t, "grade_range")
	ctx := context.Background()
	actor := ActivityActor{ID: 1, Role: "staff"}

	_, err := svc.EnterScores(ctx, dto.ScoreEntryRequest{
		StudentID:  student.ID,
		CourseCode: "CSC301",
		CAScore:    scorePtr(25),
		ExamScore:  scorePtr(60),
	}, actor)
	require.NoError(t, err)

	// 31 exceeds the CA maximum of 30; nothing may change
	_, err = svc.EnterScores(ctx, dto.ScoreEntryRequest{
		StudentID:  student.ID,
		CourseCode: "CSC301",
		CAScore:    scorePtr(31),
	}, actor)
	require.ErrorIs(t, err, ErrScoreOutOfRange)

	results, err := svc.ListByStudent(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.InDelta(t, 25.0, *results[0].CAScore, 0.001)
	require.InDelta(t, 85.0, results[0].Total, 0.001)

	_, err = svc.EnterScores(ctx, dto.ScoreEntryRequest{
		StudentID:  student.ID,
		CourseCode: "CSC301",
		ExamScore:  scorePtr(70.5),
	}, actor)
	require.ErrorIs(t, err, ErrScoreOutOfRange)

	// boundary values are accepted
	result, err := svc.EnterScores(ctx, dto.ScoreEntryRequest{
		StudentID:  student.ID,
		CourseCode: "CSC301",
		CAScore:    scorePtr(30),
		ExamScore:  scorePtr(70),
	}, actor)
	require.NoError(t, err)
	require.InDelta(t, 100.0, result.Total, 0.001)
	require.Equal(t, "A", result.Grade)
}

func TestEnterScoresUnknownStudent(t *testing.T) {
	svc, _, _ := newGradingFixture(t, "grade_nostudent")

	_, err := svc.EnterScores(context.Background(), dto.ScoreEntryRequest{
		StudentID:  9999,
		CourseCode: "CSC301",
		CAScore:    scorePtr(10),
	}, ActivityActor{})
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestListByCourse(t *testing.T) {
	svc, db, student := newGradingFixture(t, "grade_list")
	ctx := context.Background()
	actor := ActivityActor{ID: 1, Role: "staff"}

	other := models.Student{Name: "Second Student", MatricNo: "CSC/21/9999", ProgrammeID: student.ProgrammeID, Level: 200}
	require.NoError(t, db.Create(&other).Error)

	_, err := svc.EnterScores(ctx, dto.ScoreEntryRequest{StudentID: student.ID, CourseCode: "CSC301", CAScore: scorePtr(28), ExamScore: scorePtr(42)}, actor)
	require.NoError(t, err)
	_, err = svc.EnterScores(ctx, dto.ScoreEntryRequest{StudentID: other.ID, CourseCode: "CSC301", CAScore: scorePtr(16), ExamScore: scorePtr(29)}, actor)
	require.NoError(t, err)

	results, err := svc.ListByCourse(ctx, "CSC301")
	require.NoError(t, err)
	require.Len(t, results, 2)

	grades := map[uint]string{}
	for _, result := range results {
		grades[result.StudentID] = result.Grade
	}
	require.Equal(t, "A", grades[student.ID])
	require.Equal(t, "D", grades[other.ID])
}
