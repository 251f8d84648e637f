package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/service"
	"github.com/noah-isme/campus-go-api/internal/utils"
)

// ExamHandler wires exam cycle and schedule endpoints.
type ExamHandler struct {
	service service.ExamService
	logger  zerolog.Logger
}

// NewExamHandler constructs the handler.
func NewExamHandler(service service.ExamService, logger zerolog.Logger) *ExamHandler {
	return &ExamHandler{
		service: service,
		logger:  logger.With().Str("component", "exam_handler").Logger(),
	}
}

// Register attaches exam endpoints to the router group.
func (h *ExamHandler) Register(router fiber.Router) {
	router.Post("/cycles", h.createCycle)
	router.Get("/cycles", h.listCycles)
	router.Post("/cycles/:id/schedules", h.createSchedule)
	router.Get("/cycles/:id/schedules", h.listSchedules)
	router.Post("/cycles/:id/schedules/check", h.checkSchedule)
}

func (h *ExamHandler) createCycle(c *fiber.Ctx) error {
	var payload dto.CycleCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	cycle, err := h.service.CreateCycle(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create exam cycle")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create exam cycle")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "exam cycle created", cycle)
}

func (h *ExamHandler) listCycles(c *fiber.Ctx) error {
	cycles, err := h.service.ListCycles(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list exam cycles")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list exam cycles")
	}

	return utils.SendSuccess(c, "exam cycles retrieved", cycles)
}

func (h *ExamHandler) createSchedule(c *fiber.Ctx) error {
	cycleID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.ScheduleCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := activityActorFromContext(c)
	schedule, conflicts, err := h.service.CreateSchedule(c.Context(), cycleID, payload, actor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScheduleConflict):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success":   false,
				"message":   "schedule conflicts with existing entries",
				"conflicts": conflicts,
			})
		case errors.Is(err, service.ErrCycleNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "exam cycle not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Uint("cycle_id", cycleID).Msg("failed to create exam schedule")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create exam schedule")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "exam schedule created", fiber.Map{
		"schedule":  schedule,
		"conflicts": conflicts,
	})
}

func (h *ExamHandler) listSchedules(c *fiber.Ctx) error {
	cycleID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	schedules, err := h.service.ListSchedules(c.Context(), cycleID)
	if err != nil {
		if errors.Is(err, service.ErrCycleNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "exam cycle not found")
		}
		h.logger.Error().Err(err).Uint("cycle_id", cycleID).Msg("failed to list exam schedules")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list exam schedules")
	}

	return utils.SendSuccess(c, "exam schedules retrieved", schedules)
}

func (h *ExamHandler) checkSchedule(c *fiber.Ctx) error {
	cycleID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.ScheduleCheckRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.CheckSchedule(c.Context(), cycleID, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCycleNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "exam cycle not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Uint("cycle_id", cycleID).Msg("failed to check exam schedule")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to check exam schedule")
		}
	}

	return utils.SendSuccess(c, "schedule checked", result)
}
