package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/repository"
	"github.com/noah-isme/campus-go-api/internal/service"
	"github.com/noah-isme/campus-go-api/internal/utils"
)

// AttendanceHandler wires attendance session endpoints including the live
// websocket feed.
type AttendanceHandler struct {
	service service.AttendanceService
	feed    service.AttendanceFeedService
	logger  zerolog.Logger
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(service service.AttendanceService, feed service.AttendanceFeedService, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		feed:    feed,
		logger:  logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// Register wires session lifecycle routes under the provided router group.
func (h *AttendanceHandler) Register(router fiber.Router) {
	router.Post("/sessions", h.create)
	router.Get("/sessions", h.list)
	router.Get("/sessions/:id", h.get)
	router.Patch("/sessions/:id/mark", h.mark)
	router.Post("/sessions/:id/close", h.close)
	router.Post("/sessions/:id/submit", h.submit)

	router.Use("/sessions/:id/feed", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/sessions/:id/feed", websocket.New(h.handleFeed))
}

// RegisterPublic wires the share-link lookup, reachable without auth.
// Extra middleware, such as a rate limiter, runs before the lookup.
func (h *AttendanceHandler) RegisterPublic(router fiber.Router, mw ...fiber.Handler) {
	router.Get("/attend/:token", append(mw, h.getByToken)...)
}

func (h *AttendanceHandler) create(c *fiber.Ctx) error {
	var payload dto.SessionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	session, err := h.service.CreateSession(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgrammeNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "programme not found")
		case errors.Is(err, service.ErrRosterEmpty):
			return utils.SendError(c, fiber.StatusUnprocessableEntity, "programme has no enrolled students")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to create attendance session")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create attendance session")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "attendance session created", session)
}

func (h *AttendanceHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	filter := repository.AttendanceSessionFilter{
		CourseCode: strings.TrimSpace(c.Query("course_code")),
		Date:       strings.TrimSpace(c.Query("date")),
		Page:       page,
		PageSize:   pageSize,
	}

	if raw := strings.TrimSpace(c.Query("submitted")); raw != "" {
		submitted := raw == "true"
		filter.Submitted = &submitted
	}

	sessions, total, err := h.service.List(c.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list attendance sessions")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list attendance sessions")
	}

	return utils.SendSuccess(c, "attendance sessions retrieved", fiber.Map{
		"sessions": sessions,
		"total":    total,
	})
}

func (h *AttendanceHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	session, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "session not found")
		}
		h.logger.Error().Err(err).Uint("session_id", id).Msg("failed to fetch attendance session")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch attendance session")
	}

	return utils.SendSuccess(c, "attendance session retrieved", session)
}

func (h *AttendanceHandler) getByToken(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Params("token"))
	if token == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "token required")
	}

	session, err := h.service.GetByToken(c.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "session not found")
		}
		h.logger.Error().Err(err).Msg("failed to resolve share token")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to resolve share token")
	}

	return utils.SendSuccess(c, "attendance session retrieved", session)
}

func (h *AttendanceHandler) mark(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.MarkAttendanceRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	session, err := h.service.MarkAttendance(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "session not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Uint("session_id", id).Msg("failed to mark attendance")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to mark attendance")
		}
	}

	return utils.SendSuccess(c, "attendance marked", session)
}

func (h *AttendanceHandler) close(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	session, err := h.service.CloseSession(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "session not found")
		}
		h.logger.Error().Err(err).Uint("session_id", id).Msg("failed to close attendance session")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to close attendance session")
	}

	return utils.SendSuccess(c, "attendance session closed", session)
}

func (h *AttendanceHandler) submit(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	actor := activityActorFromContext(c)
	session, err := h.service.SubmitAttendance(c.Context(), id, actor)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "session not found")
		}
		h.logger.Error().Err(err).Uint("session_id", id).Msg("failed to submit attendance session")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to submit attendance session")
	}

	return utils.SendSuccess(c, "attendance session submitted", session)
}

func (h *AttendanceHandler) handleFeed(conn *websocket.Conn) {
	raw := strings.TrimSpace(conn.Params("id"))
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(fiber.StatusBadRequest, "invalid session id"))
		_ = conn.Close()
		return
	}

	id := uint(parsed)
	h.logger.Info().Uint("session_id", id).Msg("attendance feed connected")
	h.feed.ServeConnection(conn, id)
	h.logger.Info().Uint("session_id", id).Msg("attendance feed disconnected")
}
