package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/service"
	"github.com/noah-isme/campus-go-api/internal/utils"
)

// AnnouncementHandler wires announcement endpoints.
type AnnouncementHandler struct {
	service service.AnnouncementService
	logger  zerolog.Logger
}

// NewAnnouncementHandler constructs the handler.
func NewAnnouncementHandler(service service.AnnouncementService, logger zerolog.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		service: service,
		logger:  logger.With().Str("component", "announcement_handler").Logger(),
	}
}

// Register attaches announcement endpoints to the router group.
func (h *AnnouncementHandler) Register(router fiber.Router) {
	router.Post("", h.publish)
	router.Get("", h.list)
	router.Delete("/:id", h.delete)
}

func (h *AnnouncementHandler) publish(c *fiber.Ctx) error {
	var payload dto.AnnouncementCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := activityActorFromContext(c)
	announcement, err := h.service.Publish(c.Context(), payload, actor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAnnouncementEmpty):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to publish announcement")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to publish announcement")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "announcement published", announcement)
}

func (h *AnnouncementHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	audience := strings.TrimSpace(c.Query("audience"))
	announcements, total, err := h.service.List(c.Context(), audience, page, pageSize)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list announcements")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list announcements")
	}

	return utils.SendSuccess(c, "announcements retrieved", fiber.Map{
		"announcements": announcements,
		"total":         total,
	})
}

func (h *AnnouncementHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "announcement not found")
		}
		h.logger.Error().Err(err).Uint("announcement_id", id).Msg("failed to delete announcement")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete announcement")
	}

	return utils.SendSuccess(c, "announcement deleted", nil)
}
