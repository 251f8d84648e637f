package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/service"
	"github.com/noah-isme/campus-go-api/internal/utils"
)

// CatalogHandler wires faculty/department/programme lookup endpoints and the
// dependent dropdown options endpoint.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("component", "catalog_handler").Logger(),
	}
}

// Register attaches catalog endpoints to the router group.
func (h *CatalogHandler) Register(router fiber.Router) {
	router.Get("/tree", h.tree)
	router.Post("/options", h.options)
}

func (h *CatalogHandler) tree(c *fiber.Ctx) error {
	faculties, err := h.service.Tree(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load catalog tree")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load catalog tree")
	}

	return utils.SendSuccess(c, "catalog retrieved", faculties)
}

func (h *CatalogHandler) options(c *fiber.Ctx) error {
	var payload dto.CascadeOptionsRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	options, err := h.service.Options(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to resolve filter options")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to resolve filter options")
	}

	return utils.SendSuccess(c, "filter options resolved", options)
}
