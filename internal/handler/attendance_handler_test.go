package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/handler"
	"github.com/noah-isme/campus-go-api/internal/middleware"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/repository"
	"github.com/noah-isme/campus-go-api/internal/service"
)

type mockAttendanceService struct {
	session    dto.SessionResponse
	sessions   []dto.SessionResponse
	total      int64
	err        error
	lastFilter repository.AttendanceSessionFilter
	lastMark   dto.MarkAttendanceRequest
}

func (m *mockAttendanceService) CreateSession(_ context.Context, _ dto.SessionCreateRequest) (dto.SessionResponse, error) {
	return m.session, m.err
}

func (m *mockAttendanceService) MarkAttendance(_ context.Context, _ uint, payload dto.MarkAttendanceRequest) (dto.SessionResponse, error) {
	m.lastMark = payload
	return m.session, m.err
}

func (m *mockAttendanceService) CloseSession(_ context.Context, _ uint) (dto.SessionResponse, error) {
	return m.session, m.err
}

func (m *mockAttendanceService) SubmitAttendance(_ context.Context, _ uint, _ service.ActivityActor) (dto.SessionResponse, error) {
	return m.session, m.err
}

func (m *mockAttendanceService) List(_ context.Context, filter repository.AttendanceSessionFilter) ([]dto.SessionResponse, int64, error) {
	m.lastFilter = filter
	return m.sessions, m.total, m.err
}

func (m *mockAttendanceService) Get(_ context.Context, _ uint) (dto.SessionResponse, error) {
	return m.session, m.err
}

func (m *mockAttendanceService) GetByToken(_ context.Context, _ string) (dto.SessionResponse, error) {
	return m.session, m.err
}

type mockFeedService struct{}

func (m *mockFeedService) PublishMark(_ context.Context, _ dto.AttendanceMarkEvent) {}
func (m *mockFeedService) Start(_ context.Context)                                  {}
func (m *mockFeedService) ServeConnection(_ *websocket.Conn, _ uint)                {}

func newAttendanceApp(svc service.AttendanceService) *fiber.App {
	logger := zerolog.New(io.Discard)
	app := fiber.New()
	h := handler.NewAttendanceHandler(svc, &mockFeedService{}, logger)
	h.Register(app.Group("/api/v1/attendance"))
	h.RegisterPublic(app.Group("/api/v1"))
	return app
}

func TestAttendanceHandler_CreateSession(t *testing.T) {
	svc := &mockAttendanceService{session: dto.SessionResponse{ID: 1, CourseCode: "CSC301"}}
	app := newAttendanceApp(svc)

	req := jsonRequest(t, http.MethodPost, "/api/v1/attendance/sessions", dto.SessionCreateRequest{
		CourseCode:   "CSC301",
		CourseTitle:  "Operating Systems",
		LecturerName: "Dr. Bello",
		ProgrammeID:  1,
		Date:         "2026-03-02",
		StartTime:    "09:00",
		EndTime:      "11:00",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Success bool                `json:"success"`
		Data    dto.SessionResponse `json:"data"`
		Message string              `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "attendance session created", body.Message)
	require.Equal(t, "CSC301", body.Data.CourseCode)
}

func TestAttendanceHandler_CreateSessionEmptyRoster(t *testing.T) {
	svc := &mockAttendanceService{err: service.ErrRosterEmpty}
	app := newAttendanceApp(svc)

	req := jsonRequest(t, http.MethodPost, "/api/v1/attendance/sessions", dto.SessionCreateRequest{})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAttendanceHandler_ListParsesFilter(t *testing.T) {
	svc := &mockAttendanceService{sessions: []dto.SessionResponse{{ID: 1}}, total: 1}
	app := newAttendanceApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/sessions?course_code=CSC301&submitted=true&page=2&pageSize=5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Equal(t, "CSC301", svc.lastFilter.CourseCode)
	require.NotNil(t, svc.lastFilter.Submitted)
	require.True(t, *svc.lastFilter.Submitted)
	require.Equal(t, 2, svc.lastFilter.Page)
	require.Equal(t, 5, svc.lastFilter.PageSize)
}

func TestAttendanceHandler_MarkUnknownSession(t *testing.T) {
	svc := &mockAttendanceService{err: service.ErrSessionNotFound}
	app := newAttendanceApp(svc)

	req := jsonRequest(t, http.MethodPatch, "/api/v1/attendance/sessions/42/mark", dto.MarkAttendanceRequest{
		StudentID: 7,
		Status:    models.AttendanceStatusPresent,
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.EqualValues(t, 7, svc.lastMark.StudentID)
}

func TestAttendanceHandler_MarkInvalidID(t *testing.T) {
	svc := &mockAttendanceService{}
	app := newAttendanceApp(svc)

	req := jsonRequest(t, http.MethodPatch, "/api/v1/attendance/sessions/oops/mark", dto.MarkAttendanceRequest{})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAttendanceHandler_ShareTokenLookup(t *testing.T) {
	svc := &mockAttendanceService{session: dto.SessionResponse{ID: 9, QRToken: "tok-abc"}}
	app := newAttendanceApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attend/tok-abc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data dto.SessionResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.EqualValues(t, 9, body.Data.ID)
}

func TestAttendanceHandler_FeedRequiresUpgrade(t *testing.T) {
	svc := &mockAttendanceService{}
	app := newAttendanceApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/sessions/1/feed", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestAttendanceHandler_ShareTokenRateLimited(t *testing.T) {
	svc := &mockAttendanceService{session: dto.SessionResponse{ID: 9, QRToken: "tok-abc"}}
	logger := zerolog.New(io.Discard)
	app := fiber.New()
	h := handler.NewAttendanceHandler(svc, &mockFeedService{}, logger)
	h.RegisterPublic(app.Group("/api/v1"), middleware.RateLimit("share_link", 2, time.Minute))

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/attend/tok-abc", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/attend/tok-abc", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
