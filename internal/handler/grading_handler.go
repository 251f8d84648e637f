package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/service"
	"github.com/noah-isme/campus-go-api/internal/utils"
)

// GradingHandler wires score entry and result listing endpoints.
type GradingHandler struct {
	service service.GradingService
	logger  zerolog.Logger
}

// NewGradingHandler constructs the handler.
func NewGradingHandler(service service.GradingService, logger zerolog.Logger) *GradingHandler {
	return &GradingHandler{
		service: service,
		logger:  logger.With().Str("component", "grading_handler").Logger(),
	}
}

// Register attaches grading endpoints to the router group.
func (h *GradingHandler) Register(router fiber.Router) {
	router.Post("/scores", h.enterScores)
	router.Get("/courses/:code/results", h.listByCourse)
	router.Get("/students/:id/results", h.listByStudent)
}

func (h *GradingHandler) enterScores(c *fiber.Ctx) error {
	var payload dto.ScoreEntryRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := activityActorFromContext(c)
	result, err := h.service.EnterScores(c.Context(), payload, actor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case errors.Is(err, service.ErrScoreOutOfRange):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to enter scores")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to enter scores")
		}
	}

	return utils.SendSuccess(c, "scores recorded", result)
}

func (h *GradingHandler) listByCourse(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Params("code"))
	if code == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "course code required")
	}

	results, err := h.service.ListByCourse(c.Context(), code)
	if err != nil {
		h.logger.Error().Err(err).Str("course_code", code).Msg("failed to list course results")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list course results")
	}

	return utils.SendSuccess(c, "course results retrieved", results)
}

func (h *GradingHandler) listByStudent(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	results, err := h.service.ListByStudent(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		h.logger.Error().Err(err).Uint("student_id", id).Msg("failed to list student results")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list student results")
	}

	return utils.SendSuccess(c, "student results retrieved", results)
}
