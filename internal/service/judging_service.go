package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/hackpoint/hackpoint-api/internal/dto"
	"github.com/hackpoint/hackpoint-api/internal/models"
	"github.com/hackpoint/hackpoint-api/internal/observability"
	"github.com/hackpoint/hackpoint-api/internal/repository"
)

// ErrJudgeNotFound indicates the judge could not be located.
var ErrJudgeNotFound = errors.New("judge not found")

// ErrJudgeAlreadyAdded indicates the user is already on the panel.
var ErrJudgeAlreadyAdded = errors.New("judge already added")

// ErrCriterionNotFound indicates the scored criterion does not belong to
// the hackathon.
var ErrCriterionNotFound = errors.New("criterion not found")

// JudgingService admits judges and records per-criterion scores.
type JudgingService interface {
	AddJudge(ctx context.Context, payload dto.JudgeCreateRequest) (dto.JudgeResponse, error)
	ListJudges(ctx context.Context, hackathonID uint) ([]dto.JudgeResponse, error)
	SubmitScore(ctx context.Context, payload dto.ScoreSubmitRequest) (dto.ScoreResponse, error)
	// ListScores returns the stored scores for a hackathon, narrowed to a
	// single project when projectID is non-empty.
	ListScores(ctx context.Context, hackathonID uint, projectID string) ([]dto.ScoreResponse, error)
}

type judgingService struct {
	judges      repository.JudgeRepository
	scores      repository.ScoreRepository
	criteria    repository.CriterionRepository
	hackathons  repository.HackathonRepository
	scoreboards ScoreboardInvalidator
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
	now         func() time.Time
}

// NewJudgingService constructs a JudgingService instance.
func NewJudgingService(judgeRepo repository.JudgeRepository, scoreRepo repository.ScoreRepository, criterionRepo repository.CriterionRepository, hackathonRepo repository.HackathonRepository, scoreboards ScoreboardInvalidator, validate *validator.Validate, logger zerolog.Logger) JudgingService {
	return &judgingService{
		judges:      judgeRepo,
		scores:      scoreRepo,
		criteria:    criterionRepo,
		hackathons:  hackathonRepo,
		scoreboards: scoreboards,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "judging_service").Logger(),
		now:         time.Now,
	}
}

func (s *judgingService) AddJudge(ctx context.Context, payload dto.JudgeCreateRequest) (dto.JudgeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.JudgeResponse{}, err
	}

	if _, err := s.hackathons.GetByID(ctx, payload.HackathonID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.JudgeResponse{}, ErrHackathonNotFound
		}
		return dto.JudgeResponse{}, err
	}

	judge := models.Judge{
		HackathonID: payload.HackathonID,
		UserID:      payload.UserID,
		Name:        payload.Name,
		Email:       strings.ToLower(strings.TrimSpace(payload.Email)),
		AvatarURL:   payload.AvatarURL,
		// Host-added judges skip the invitation flow and are accepted on the
		// spot.
		Status: models.JudgeStatusAccepted,
	}

	if err := s.judges.Create(ctx, &judge); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return dto.JudgeResponse{}, ErrJudgeAlreadyAdded
		}
		return dto.JudgeResponse{}, err
	}

	s.logger.Info().Uint("judge_id", judge.ID).Uint("hackathon_id", judge.HackathonID).Msg("judge added")

	return dto.NewJudgeResponse(judge), nil
}

func (s *judgingService) ListJudges(ctx context.Context, hackathonID uint) ([]dto.JudgeResponse, error) {
	judges, err := s.judges.ListByHackathon(ctx, hackathonID)
	if err != nil {
		return nil, err
	}

	return dto.NewJudgeResponseSlice(judges), nil
}

func (s *judgingService) SubmitScore(ctx context.Context, payload dto.ScoreSubmitRequest) (dto.ScoreResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ScoreResponse{}, err
	}

	judge, err := s.judges.GetByID(ctx, payload.JudgeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ScoreResponse{}, ErrJudgeNotFound
		}
		return dto.ScoreResponse{}, err
	}
	if judge.HackathonID != payload.HackathonID {
		return dto.ScoreResponse{}, ErrJudgeNotFound
	}

	if payload.CriterionID != nil {
		criteria, err := s.criteria.ListByHackathon(ctx, payload.HackathonID)
		if err != nil {
			return dto.ScoreResponse{}, err
		}
		known := false
		for _, criterion := range criteria {
			if criterion.ID == *payload.CriterionID {
				known = true
				break
			}
		}
		if !known {
			return dto.ScoreResponse{}, ErrCriterionNotFound
		}
	}

	score := models.Score{
		HackathonID: payload.HackathonID,
		ProjectID:   payload.ProjectID,
		JudgeID:     payload.JudgeID,
		CriterionID: payload.CriterionID,
		Value:       payload.Value,
		Feedback:    strings.TrimSpace(s.sanitizer.Sanitize(payload.Feedback)),
		SubmittedAt: s.now(),
	}

	if err := s.scores.Upsert(ctx, &score); err != nil {
		return dto.ScoreResponse{}, err
	}

	observability.ScoresSubmitted().WithLabelValues(scoreKind(score)).Inc()

	// A new score makes any cached scoreboard stale.
	if s.scoreboards != nil {
		s.scoreboards.Invalidate(ctx, payload.HackathonID)
	}

	s.logger.Info().
		Uint("hackathon_id", score.HackathonID).
		Str("project_id", score.ProjectID).
		Uint("judge_id", score.JudgeID).
		Float64("value", score.Value).
		Msg("score recorded")

	return dto.NewScoreResponse(score), nil
}

func (s *judgingService) ListScores(ctx context.Context, hackathonID uint, projectID string) ([]dto.ScoreResponse, error) {
	if _, err := s.hackathons.GetByID(ctx, hackathonID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHackathonNotFound
		}
		return nil, err
	}

	var (
		scores []models.Score
		err    error
	)
	if projectID != "" {
		scores, err = s.scores.ListByProject(ctx, hackathonID, projectID)
	} else {
		scores, err = s.scores.ListByHackathon(ctx, hackathonID)
	}
	if err != nil {
		return nil, err
	}

	return dto.NewScoreResponseSlice(scores), nil
}

func scoreKind(score models.Score) string {
	if score.IsOverall() {
		return "overall"
	}
	return "criterion"
}
