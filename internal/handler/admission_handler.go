package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/repository"
	"github.com/noah-isme/campus-go-api/internal/service"
	"github.com/noah-isme/campus-go-api/internal/utils"
)

// AdmissionHandler wires applicant intake and eligibility endpoints.
type AdmissionHandler struct {
	service service.AdmissionService
	logger  zerolog.Logger
}

// NewAdmissionHandler constructs the handler.
func NewAdmissionHandler(service service.AdmissionService, logger zerolog.Logger) *AdmissionHandler {
	return &AdmissionHandler{
		service: service,
		logger:  logger.With().Str("component", "admission_handler").Logger(),
	}
}

// Register attaches admission endpoints to the router group.
func (h *AdmissionHandler) Register(router fiber.Router) {
	router.Post("/applicants", h.create)
	router.Get("/applicants", h.list)
	router.Post("/applicants/:id/evaluate", h.evaluate)
	router.Post("/eligibility/check", h.checkEligibility)
}

func (h *AdmissionHandler) create(c *fiber.Ctx) error {
	var payload dto.ApplicantCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	applicant, err := h.service.CreateApplicant(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgrammeNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "programme not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to create applicant")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create applicant")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "applicant created", applicant)
}

func (h *AdmissionHandler) list(c *fiber.Ctx) error {
	filter := repository.ApplicantFilter{
		Eligibility: models.EligibilityStatus(strings.TrimSpace(c.Query("eligibility"))),
	}

	if raw, err := parseQueryInt(c, "programme_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid programme id")
	} else if raw > 0 {
		programmeID := uint(raw)
		filter.ProgrammeID = &programmeID
	}

	applicants, total, err := h.service.List(c.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list applicants")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list applicants")
	}

	return utils.SendSuccess(c, "applicants retrieved", fiber.Map{
		"applicants": applicants,
		"total":      total,
	})
}

func (h *AdmissionHandler) evaluate(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	actor := activityActorFromContext(c)
	applicant, err := h.service.Evaluate(c.Context(), id, actor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrApplicantNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "applicant not found")
		case errors.Is(err, service.ErrProgrammeNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "programme not found")
		default:
			h.logger.Error().Err(err).Uint("applicant_id", id).Msg("failed to evaluate applicant")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to evaluate applicant")
		}
	}

	return utils.SendSuccess(c, "applicant evaluated", applicant)
}

func (h *AdmissionHandler) checkEligibility(c *fiber.Ctx) error {
	var payload dto.EligibilityCheckRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.CheckEligibility(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgrammeNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "programme not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to check eligibility")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to check eligibility")
		}
	}

	return utils.SendSuccess(c, "eligibility checked", result)
}
