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

func newAnnouncementFixture(t *testing.T, name string) (AnnouncementService, ActivityService, *gorm.DB) {
	t.Helper()

	db := openTestDB(t, name)
	logger := zerolog.New(io.Discard)
	activity := NewActivityService(repository.NewActivityLogRepository(db), logger)
	svc := NewAnnouncementService(
		repository.NewAnnouncementRepository(db),
		validator.New(validator.WithRequiredStructEnabled()),
		activity,
		logger,
	)
	return svc, activity, db
}

func TestPublishSanitizesBodyAndRecordsActivity(t *testing.T) {
	svc, activity, _ := newAnnouncementFixture(t, "ann_publish")
	ctx := context.Background()

	actor := ActivityActor{ID: 5, Role: "school_admin"}
	response, err := svc.Publish(ctx, dto.AnnouncementCreateRequest{
		Title: "Exam timetable",
		Body:  `<p>Released</p><script>alert("x")</script>`,
	}, actor)
	require.NoError(t, err)
	require.Equal(t, models.AudienceAll, response.Audience)
	require.NotContains(t, response.Body, "<script>")
	require.Contains(t, response.Body, "Released")

	entries, total, err := activity.List(ctx, models.ActionAnnouncementPosted, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, actor.ID, entries[0].ActorID)
}

func TestPublishRejectsBodyThatSanitizesToNothing(t *testing.T) {
	svc, _, _ := newAnnouncementFixture(t, "ann_empty")

	_, err := svc.Publish(context.Background(), dto.AnnouncementCreateRequest{
		Title: "Notice",
		Body:  `<script>alert("x")</script>`,
	}, ActivityActor{ID: 1, Role: "staff"})
	require.ErrorIs(t, err, ErrAnnouncementEmpty)
}

func TestListFiltersByAudience(t *testing.T) {
	svc, _, _ := newAnnouncementFixture(t, "ann_list")
	ctx := context.Background()
	actor := ActivityActor{ID: 2, Role: "school_admin"}

	_, err := svc.Publish(ctx, dto.AnnouncementCreateRequest{Title: "For staff", Body: "Meeting at noon", Audience: models.AudienceStaff}, actor)
	require.NoError(t, err)
	_, err = svc.Publish(ctx, dto.AnnouncementCreateRequest{Title: "For students", Body: "Lectures resume", Audience: models.AudienceStudents}, actor)
	require.NoError(t, err)

	staffOnly, total, err := svc.List(ctx, models.AudienceStaff, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "For staff", staffOnly[0].Title)

	everything, total, err := svc.List(ctx, "", 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, everything, 2)
}

func TestDeleteMissingAnnouncement(t *testing.T) {
	svc, _, _ := newAnnouncementFixture(t, "ann_delete")

	err := svc.Delete(context.Background(), 999)
	require.ErrorIs(t, err, ErrAnnouncementNotFound)
}

func TestRecordMasksSensitiveMetadata(t *testing.T) {
	_, activity, db := newAnnouncementFixture(t, "ann_mask")
	ctx := context.Background()

	require.NoError(t, activity.Record(ctx, ActivityEntry{
		ActorID:    1,
		ActorRole:  "Staff",
		Action:     "seed.catalog",
		EntityType: "faculty",
		Metadata:   map[string]interface{}{"seed_token": "hunter2", "count": 3},
	}))

	var entry models.ActivityLog
	require.NoError(t, db.First(&entry).Error)
	require.Equal(t, "staff", entry.ActorRole)
	require.Equal(t, "***", entry.Metadata["seed_token"])
}
