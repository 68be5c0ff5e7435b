package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hackpoint/hackpoint-api/internal/dto"
	"github.com/hackpoint/hackpoint-api/internal/service"
	"github.com/hackpoint/hackpoint-api/internal/utils"
)

// HackathonHandler manages hackathon registry endpoints.
type HackathonHandler struct {
	service service.HackathonService
	logger  zerolog.Logger
}

// NewHackathonHandler builds a hackathon handler instance.
func NewHackathonHandler(service service.HackathonService, logger zerolog.Logger) *HackathonHandler {
	return &HackathonHandler{
		service: service,
		logger:  logger.With().Str("component", "hackathon_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *HackathonHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
}

func (h *HackathonHandler) list(c *fiber.Ctx) error {
	hackathons, err := h.service.List(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "hackathons retrieved", hackathons)
}

func (h *HackathonHandler) create(c *fiber.Ctx) error {
	var payload dto.HackathonCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	hackathon, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "hackathon created", hackathon)
}

func (h *HackathonHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	hackathon, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "hackathon retrieved", hackathon)
}

func (h *HackathonHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.HackathonUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	hackathon, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "hackathon updated", hackathon)
}

func (h *HackathonHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrHackathonNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "hackathon not found")
	case errors.Is(err, service.ErrInvalidStatusTransition):
		return utils.SendError(c, fiber.StatusConflict, "invalid status transition")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
