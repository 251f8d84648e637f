package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-go-api/internal/service"
	"github.com/noah-isme/campus-go-api/internal/utils"
)

// UploadHandler receives roster and result import files.
type UploadHandler struct {
	service service.UploadService
	logger  zerolog.Logger
}

// NewUploadHandler constructs the handler.
func NewUploadHandler(service service.UploadService, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		logger:  logger.With().Str("component", "upload_handler").Logger(),
	}
}

// Register attaches the upload endpoint to the router group.
func (h *UploadHandler) Register(router fiber.Router) {
	router.Post("/imports", h.importFile)
}

func (h *UploadHandler) importFile(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	purpose := strings.TrimSpace(c.FormValue("purpose"))

	var userID *uint
	if id := userIDFromContext(c); id != 0 {
		userID = &id
	}

	record, err := h.service.Import(c.Context(), file, userID, purpose)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadTypeNotAllowed):
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, err.Error())
		case errors.Is(err, service.ErrUploadTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
		default:
			h.logger.Error().Err(err).Str("file", file.Filename).Msg("failed to store import file")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to store import file")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "import file stored", record)
}
