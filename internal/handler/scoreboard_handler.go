package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hackpoint/hackpoint-api/internal/service"
	"github.com/hackpoint/hackpoint-api/internal/utils"
)

// ScoreboardHandler serves ranked scoreboard views.
type ScoreboardHandler struct {
	service service.ScoringService
	logger  zerolog.Logger
}

// NewScoreboardHandler builds a scoreboard handler instance.
func NewScoreboardHandler(service service.ScoringService, logger zerolog.Logger) *ScoreboardHandler {
	return &ScoreboardHandler{
		service: service,
		logger:  logger.With().Str("component", "scoreboard_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ScoreboardHandler) Register(router fiber.Router) {
	router.Get("/:id/scoreboard", h.scoreboard)
	router.Post("/:id/scoreboard/recompute", h.recompute)
}

func (h *ScoreboardHandler) scoreboard(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	scoreboard, err := h.service.Scoreboard(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "scoreboard retrieved", scoreboard)
}

func (h *ScoreboardHandler) recompute(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	scoreboard, err := h.service.Recompute(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "scoreboard recomputed", scoreboard)
}

func (h *ScoreboardHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrHackathonNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "hackathon not found")
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
