package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hackpoint/hackpoint-api/internal/dto"
	"github.com/hackpoint/hackpoint-api/internal/middleware"
	"github.com/hackpoint/hackpoint-api/internal/service"
	"github.com/hackpoint/hackpoint-api/internal/utils"
)

// ParticipantHandler manages participant and submission endpoints.
type ParticipantHandler struct {
	service service.ParticipantService
	logger  zerolog.Logger
}

// NewParticipantHandler builds a participant handler instance.
func NewParticipantHandler(service service.ParticipantService, logger zerolog.Logger) *ParticipantHandler {
	return &ParticipantHandler{
		service: service,
		logger:  logger.With().Str("component", "participant_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ParticipantHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.register)
	router.Get("/me", h.me)
	router.Patch("/:id/submission", h.updateSubmission)
}

func (h *ParticipantHandler) list(c *fiber.Ctx) error {
	hackathonID, err := parseQueryUint(c, "hackathon_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	participants, err := h.service.ListByHackathon(c.Context(), hackathonID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "participants retrieved", participants)
}

func (h *ParticipantHandler) register(c *fiber.Ctx) error {
	var payload dto.ParticipantRegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	participant, err := h.service.Register(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "participant registered", participant)
}

func (h *ParticipantHandler) me(c *fiber.Ctx) error {
	hackathonID, err := parseQueryUint(c, "hackathon_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	userID := middleware.UserID(c)
	if userID == nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "missing user identity")
	}

	participant, err := h.service.GetByUser(c.Context(), hackathonID, *userID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "participant retrieved", participant)
}

func (h *ParticipantHandler) updateSubmission(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ParticipantSubmissionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	participant, err := h.service.UpdateSubmission(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submission updated", participant)
}

func (h *ParticipantHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrParticipantNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "participant not found")
	case errors.Is(err, service.ErrHackathonNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "hackathon not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
