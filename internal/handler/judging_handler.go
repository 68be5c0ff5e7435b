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

// JudgingHandler manages judge panel and score endpoints.
type JudgingHandler struct {
	service service.JudgingService
	logger  zerolog.Logger
}

// NewJudgingHandler builds a judging handler instance.
func NewJudgingHandler(service service.JudgingService, logger zerolog.Logger) *JudgingHandler {
	return &JudgingHandler{
		service: service,
		logger:  logger.With().Str("component", "judging_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *JudgingHandler) Register(router fiber.Router) {
	router.Get("/judges", h.listJudges)
	router.Post("/judges", h.addJudge)
	router.Get("/scores", h.listScores)
	router.Post("/scores", h.submitScore)
}

func (h *JudgingHandler) listJudges(c *fiber.Ctx) error {
	hackathonID, err := parseQueryUint(c, "hackathon_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	judges, err := h.service.ListJudges(c.Context(), hackathonID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "judges retrieved", judges)
}

func (h *JudgingHandler) addJudge(c *fiber.Ctx) error {
	var payload dto.JudgeCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	judge, err := h.service.AddJudge(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "judge added", judge)
}

func (h *JudgingHandler) listScores(c *fiber.Ctx) error {
	hackathonID, err := parseQueryUint(c, "hackathon_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	scores, err := h.service.ListScores(c.Context(), hackathonID, c.Query("project_id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "scores retrieved", scores)
}

func (h *JudgingHandler) submitScore(c *fiber.Ctx) error {
	var payload dto.ScoreSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	score, err := h.service.SubmitScore(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "score recorded", score)
}

func (h *JudgingHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrJudgeNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "judge not found")
	case errors.Is(err, service.ErrHackathonNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "hackathon not found")
	case errors.Is(err, service.ErrCriterionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "criterion not found")
	case errors.Is(err, service.ErrJudgeAlreadyAdded):
		return utils.SendError(c, fiber.StatusConflict, "judge already added")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
