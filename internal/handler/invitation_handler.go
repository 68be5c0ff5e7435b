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

// InvitationHandler manages invitation endpoints.
type InvitationHandler struct {
	service service.InvitationService
	logger  zerolog.Logger
}

// NewInvitationHandler builds an invitation handler instance.
func NewInvitationHandler(service service.InvitationService, logger zerolog.Logger) *InvitationHandler {
	return &InvitationHandler{
		service: service,
		logger:  logger.With().Str("component", "invitation_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *InvitationHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.invite)
	router.Post("/:id/respond", h.respond)
}

func (h *InvitationHandler) list(c *fiber.Ctx) error {
	hackathonID, err := parseQueryUint(c, "hackathon_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	invitations, err := h.service.ListByHackathon(c.Context(), hackathonID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "invitations retrieved", invitations)
}

func (h *InvitationHandler) invite(c *fiber.Ctx) error {
	var payload dto.InvitationCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	invitation, err := h.service.Invite(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "invitation sent", invitation)
}

func (h *InvitationHandler) respond(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.InvitationRespondRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	invitation, err := h.service.Respond(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "invitation resolved", invitation)
}

func (h *InvitationHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrInvitationNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "invitation not found")
	case errors.Is(err, service.ErrHackathonNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "hackathon not found")
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrInvitationResolved):
		return utils.SendError(c, fiber.StatusConflict, "invitation already resolved")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
