package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-go-api/internal/service"
	"github.com/noah-isme/campus-go-api/internal/utils"
)

// DashboardHandler exposes aggregated admin statistics.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register attaches the dashboard endpoint to the router group.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("", h.admin)
}

func (h *DashboardHandler) admin(c *fiber.Ctx) error {
	stats, err := h.service.AdminDashboard(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build admin dashboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build admin dashboard")
	}

	return utils.SendSuccess(c, "dashboard retrieved", stats)
}
