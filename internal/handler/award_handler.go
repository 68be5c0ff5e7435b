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

// AwardHandler manages award finalization and manual winner assignment.
type AwardHandler struct {
	service service.AwardService
	logger  zerolog.Logger
}

// NewAwardHandler builds an award handler instance.
func NewAwardHandler(service service.AwardService, logger zerolog.Logger) *AwardHandler {
	return &AwardHandler{
		service: service,
		logger:  logger.With().Str("component", "award_handler").Logger(),
	}
}

// Register attaches the routes. Finalization hangs off the hackathon
// group, winner assignment off the awards group.
func (h *AwardHandler) Register(hackathons fiber.Router, awards fiber.Router) {
	hackathons.Post("/:id/finalize", h.finalize)
	awards.Post("/:id/winner", h.assignWinner)
}

func (h *AwardHandler) finalize(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.Finalize(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "awards finalized", result)
}

func (h *AwardHandler) assignWinner(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.WinnerAssignRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	award, err := h.service.AssignWinner(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "winner assigned", award)
}

func (h *AwardHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrAwardNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "award not found")
	case errors.Is(err, service.ErrHackathonNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "hackathon not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
