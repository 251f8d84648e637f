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

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/models"
)

func TestFeedBrokerDeliversPerSession(t *testing.T) {
	svc := NewAttendanceFeedService(nil, "campus", nil, zerolog.New(io.Discard)).(*attendanceFeedService)

	watching := make(chan dto.AttendanceMarkEvent, feedSendBufferSize)
	other := make(chan dto.AttendanceMarkEvent, feedSendBufferSize)
	svc.broker.subscribe(1, watching)
	svc.broker.subscribe(2, other)

	svc.PublishMark(context.Background(), dto.AttendanceMarkEvent{
		SessionID: 1,
		StudentID: 10,
		Status:    models.AttendanceStatusPresent,
	})

	select {
	case event := <-watching:
		require.EqualValues(t, 10, event.StudentID)
	case <-time.After(time.Second):
		t.Fatal("subscriber for session 1 received no event")
	}

	select {
	case <-other:
		t.Fatal("subscriber for session 2 received a foreign event")
	default:
	}

	svc.broker.unsubscribe(1, watching)
	_, open := <-watching
	require.False(t, open, "channel stays open after unsubscribe")
}

func TestFeedSkipsOwnNodeEvents(t *testing.T) {
	svc := NewAttendanceFeedService(nil, "campus", nil, zerolog.New(io.Discard)).(*attendanceFeedService)

	ch := make(chan dto.AttendanceMarkEvent, feedSendBufferSize)
	svc.broker.subscribe(1, ch)

	svc.handleEvent([]byte(`{"source":"` + svc.nodeID + `","mark":{"session_id":1,"student_id":3}}`))

	select {
	case <-ch:
		t.Fatal("event originating from this node was replayed")
	default:
	}
}

func TestFeedFansOutAcrossNodesViaRedis(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	logger := zerolog.New(io.Discard)
	publisher := NewAttendanceFeedService(redis.NewClient(&redis.Options{Addr: mini.Addr()}), "campus", nil, logger)
	consumer := NewAttendanceFeedService(redis.NewClient(&redis.Options{Addr: mini.Addr()}), "campus", nil, logger).(*attendanceFeedService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	consumer.Start(ctx)

	// let the redis subscription establish before publishing
	time.Sleep(50 * time.Millisecond)

	ch := make(chan dto.AttendanceMarkEvent, feedSendBufferSize)
	consumer.broker.subscribe(7, ch)

	publisher.PublishMark(ctx, dto.AttendanceMarkEvent{
		SessionID:     7,
		StudentID:     42,
		StudentMatric: "CSC/21/0042",
		Status:        models.AttendanceStatusPresent,
	})

	select {
	case event := <-ch:
		require.EqualValues(t, 42, event.StudentID)
		require.Equal(t, "CSC/21/0042", event.StudentMatric)
	case <-time.After(2 * time.Second):
		t.Fatal("mark event never crossed the redis channel")
	}
}
