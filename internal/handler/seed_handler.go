package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/service"
	"github.com/noah-isme/campus-go-api/internal/utils"
)

// SeedHandler exposes tooling endpoints for seeding reference data.
type SeedHandler struct {
	service service.SeedService
	logger  zerolog.Logger
}

// NewSeedHandler constructs a seed handler.
func NewSeedHandler(service service.SeedService, logger zerolog.Logger) *SeedHandler {
	return &SeedHandler{
		service: service,
		logger:  logger.With().Str("component", "seed_handler").Logger(),
	}
}

// Register wires seed routes.
func (h *SeedHandler) Register(router fiber.Router) {
	router.Post("/catalog", h.catalog)
	router.Post("/students", h.students)
}

type seedCatalogRequest struct {
	Faculties []models.Faculty `json:"faculties"`
}

type seedStudentsRequest struct {
	Students []models.Student `json:"students"`
}

func (h *SeedHandler) catalog(c *fiber.Ctx) error {
	token := c.Get("X-Seed-Token")
	var payload seedCatalogRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	affected, err := h.service.SeedCatalog(c.Context(), token, payload.Faculties)
	if err != nil {
		return h.seedError(c, err)
	}

	return utils.SendSuccess(c, "catalog seeded", fiber.Map{"affected": affected})
}

func (h *SeedHandler) students(c *fiber.Ctx) error {
	token := c.Get("X-Seed-Token")
	var payload seedStudentsRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	affected, err := h.service.SeedStudents(c.Context(), token, payload.Students)
	if err != nil {
		return h.seedError(c, err)
	}

	return utils.SendSuccess(c, "students seeded", fiber.Map{"affected": affected})
}

func (h *SeedHandler) seedError(c *fiber.Ctx, err error) error {
	switch err {
	case service.ErrSeedDisabled:
		return utils.SendError(c, fiber.StatusForbidden, "seeding disabled")
	case service.ErrSeedUnauthorized:
		return utils.SendError(c, fiber.StatusForbidden, "invalid token")
	default:
		h.logger.Error().Err(err).Msg("seed operation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "seed operation failed")
	}
}
