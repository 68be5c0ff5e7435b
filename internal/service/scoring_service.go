package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hackpoint/hackpoint-api/internal/dto"
	"github.com/hackpoint/hackpoint-api/internal/models"
	"github.com/hackpoint/hackpoint-api/internal/observability"
	"github.com/hackpoint/hackpoint-api/internal/repository"
)

// ScoreboardInvalidator drops cached scoreboards after a write that makes
// them stale.
type ScoreboardInvalidator interface {
	Invalidate(ctx context.Context, hackathonID uint)
}

// ScoringService aggregates raw scores into a ranked scoreboard.
type ScoringService interface {
	ScoreboardInvalidator
	// Scoreboard returns the ranked scoreboard, served from cache when a
	// fresh copy exists.
	Scoreboard(ctx context.Context, hackathonID uint) (dto.ScoreboardResponse, error)
	// Recompute rebuilds the scoreboard from current state, bypassing the
	// cache read. Finalization uses this path.
	Recompute(ctx context.Context, hackathonID uint) (dto.ScoreboardResponse, error)
}

type scoringService struct {
	scores       repository.ScoreRepository
	criteria     repository.CriterionRepository
	participants repository.ParticipantRepository
	hackathons   repository.HackathonRepository
	cache        *redis.Client
	cacheTTL     time.Duration
	logger       zerolog.Logger
	tracer       trace.Tracer
}

// NewScoringService constructs a ScoringService instance. The redis client
// may be nil, which disables caching.
func NewScoringService(scoreRepo repository.ScoreRepository, criterionRepo repository.CriterionRepository, participantRepo repository.ParticipantRepository, hackathonRepo repository.HackathonRepository, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) ScoringService {
	return &scoringService{
		scores:       scoreRepo,
		criteria:     criterionRepo,
		participants: participantRepo,
		hackathons:   hackathonRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger.With().Str("component", "scoring_service").Logger(),
		tracer:       otel.Tracer("github.com/hackpoint/hackpoint-api/internal/service/scoring"),
	}
}

func scoreboardCacheKey(hackathonID uint) string {
	return fmt.Sprintf("scoreboard:hackathon:%d", hackathonID)
}

func (s *scoringService) Scoreboard(ctx context.Context, hackathonID uint) (dto.ScoreboardResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, scoreboardCacheKey(hackathonID)).Result()
		if err == nil {
			var response dto.ScoreboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("hackathon_id", hackathonID).Msg("scoreboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read scoreboard cache")
		}
	}

	return s.Recompute(ctx, hackathonID)
}

func (s *scoringService) Recompute(ctx context.Context, hackathonID uint) (dto.ScoreboardResponse, error) {
	ctx, span := s.tracer.Start(ctx, "scoring.recompute", trace.WithAttributes(
		attribute.Int64("scoring.hackathon_id", int64(hackathonID)),
	))
	defer span.End()

	start := time.Now()

	if _, err := s.hackathons.GetByID(ctx, hackathonID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ScoreboardResponse{}, ErrHackathonNotFound
		}
		span.RecordError(err)
		return dto.ScoreboardResponse{}, err
	}

	criteria, err := s.criteria.ListByHackathon(ctx, hackathonID)
	if err != nil {
		span.RecordError(err)
		return dto.ScoreboardResponse{}, err
	}

	participants, err := s.participants.ListByHackathon(ctx, hackathonID)
	if err != nil {
		span.RecordError(err)
		return dto.ScoreboardResponse{}, err
	}

	scores, err := s.scores.ListByHackathon(ctx, hackathonID)
	if err != nil {
		span.RecordError(err)
		return dto.ScoreboardResponse{}, err
	}

	response := buildScoreboard(hackathonID, criteria, participants, scores)

	observability.ScoreboardRecomputeSeconds().Observe(time.Since(start).Seconds())
	span.SetAttributes(
		attribute.String("scoring.mode", response.Mode),
		attribute.Int("scoring.entries", len(response.Entries)),
	)

	if s.cache != nil {
		payload, marshalErr := json.Marshal(response)
		if marshalErr == nil {
			if err := s.cache.Set(ctx, scoreboardCacheKey(hackathonID), payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store scoreboard cache")
			}
		}
	}

	return response, nil
}

func (s *scoringService) Invalidate(ctx context.Context, hackathonID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, scoreboardCacheKey(hackathonID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("hackathon_id", hackathonID).Msg("failed to drop scoreboard cache")
	}
}

// projectIdentity returns the scoreboard key for a participant. The project
// id is preferred; a name-only submission falls back to the name so it still
// appears on the board.
func projectIdentity(participant models.Participant) (id, name string, ok bool) {
	if participant.ProjectName != nil {
		name = *participant.ProjectName
	}
	if participant.ProjectID != nil && *participant.ProjectID != "" {
		return *participant.ProjectID, name, true
	}
	if name != "" {
		return name, name, true
	}
	return "", "", false
}

// buildScoreboard runs the two-mode aggregation. With weighted criteria each
// project's per-criterion judge averages are combined by weight/100 and
// normalised by the weight actually used; criteria nobody scored contribute
// no weight. Without usable criteria all scores count as overall ratings and
// are summed raw.
func buildScoreboard(hackathonID uint, criteria []models.JudgingCriterion, participants []models.Participant, scores []models.Score) dto.ScoreboardResponse {
	weightTotal := 0
	for _, criterion := range criteria {
		weightTotal += criterion.Weight
	}
	weighted := len(criteria) > 0 && weightTotal > 0

	type project struct {
		id   string
		name string
	}
	projects := make([]project, 0, len(participants))
	seen := make(map[string]struct{}, len(participants))
	for _, participant := range participants {
		id, name, ok := projectIdentity(participant)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		projects = append(projects, project{id: id, name: name})
	}

	entries := make([]dto.ProjectScoreSummary, 0, len(projects))
	mode := dto.ScoreboardModeOverall
	if weighted {
		mode = dto.ScoreboardModeCriteria
	}

	for _, p := range projects {
		entry := dto.ProjectScoreSummary{ProjectID: p.id, ProjectName: p.name}

		if weighted {
			weightedSum := 0.0
			weightUsed := 0.0
			for _, criterion := range criteria {
				sum := 0.0
				count := 0
				for _, score := range scores {
					if score.ProjectID != p.id || score.CriterionID == nil || *score.CriterionID != criterion.ID {
						continue
					}
					sum += score.Value
					count++
				}
				if count == 0 {
					continue
				}
				weight := float64(criterion.Weight) / 100
				weightedSum += (sum / float64(count)) * weight
				weightUsed += weight
			}
			if weightUsed > 0 {
				entry.AverageScore = weightedSum / weightUsed
			}
			entry.TotalScore = entry.AverageScore * float64(len(criteria))
			entry.ScoreCount = 1
		} else {
			for _, score := range scores {
				if score.ProjectID != p.id {
					continue
				}
				entry.TotalScore += score.Value
				entry.ScoreCount++
			}
			if entry.ScoreCount > 0 {
				entry.AverageScore = entry.TotalScore / float64(entry.ScoreCount)
			}
		}

		entries = append(entries, entry)
	}

	// Descending by average with an explicit ascending project id tie-break
	// so repeated reads rank ties identically.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AverageScore != entries[j].AverageScore {
			return entries[i].AverageScore > entries[j].AverageScore
		}
		return entries[i].ProjectID < entries[j].ProjectID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return dto.ScoreboardResponse{
		HackathonID: hackathonID,
		Mode:        mode,
		Entries:     entries,
	}
}
