package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hackpoint/hackpoint-api/internal/dto"
	"github.com/hackpoint/hackpoint-api/internal/models"
	"github.com/hackpoint/hackpoint-api/internal/observability"
	"github.com/hackpoint/hackpoint-api/internal/repository"
)

// ErrAwardNotFound indicates the award could not be located.
var ErrAwardNotFound = errors.New("award not found")

// AwardService maps scoreboard rank to configured awards and closes the
// event. Finalization recomputes everything from current state, so retrying
// after a partial failure converges; under concurrent finalizes the last
// write wins, which is the intended behaviour.
type AwardService interface {
	Finalize(ctx context.Context, hackathonID uint) (dto.FinalizeResponse, error)
	AssignWinner(ctx context.Context, awardID uint, payload dto.WinnerAssignRequest) (dto.AwardResponse, error)
}

type awardService struct {
	awards       repository.AwardRepository
	hackathons   repository.HackathonRepository
	participants repository.ParticipantRepository
	scoring      ScoringService
	notifier     Notifier
	validator    *validator.Validate
	logger       zerolog.Logger
	tracer       trace.Tracer
}

// NewAwardService constructs an AwardService instance.
func NewAwardService(awardRepo repository.AwardRepository, hackathonRepo repository.HackathonRepository, participantRepo repository.ParticipantRepository, scoring ScoringService, notifier Notifier, validate *validator.Validate, logger zerolog.Logger) AwardService {
	return &awardService{
		awards:       awardRepo,
		hackathons:   hackathonRepo,
		participants: participantRepo,
		scoring:      scoring,
		notifier:     notifier,
		validator:    validate,
		logger:       logger.With().Str("component", "award_service").Logger(),
		tracer:       otel.Tracer("github.com/hackpoint/hackpoint-api/internal/service/award"),
	}
}

func (s *awardService) Finalize(ctx context.Context, hackathonID uint) (dto.FinalizeResponse, error) {
	ctx, span := s.tracer.Start(ctx, "award.finalize", trace.WithAttributes(
		attribute.Int64("award.hackathon_id", int64(hackathonID)),
	))
	defer span.End()

	hackathon, err := s.hackathons.GetByID(ctx, hackathonID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			span.SetStatus(codes.Error, "hackathon_not_found")
			return dto.FinalizeResponse{}, ErrHackathonNotFound
		}
		span.RecordError(err)
		return dto.FinalizeResponse{}, err
	}

	scoreboard, err := s.scoring.Recompute(ctx, hackathonID)
	if err != nil {
		span.RecordError(err)
		return dto.FinalizeResponse{}, err
	}

	awards, err := s.awards.ListByHackathon(ctx, hackathonID)
	if err != nil {
		span.RecordError(err)
		return dto.FinalizeResponse{}, err
	}
	sort.Slice(awards, func(i, j int) bool { return awards[i].Rank < awards[j].Rank })

	assigned := 0
	for i := range awards {
		if i < len(scoreboard.Entries) {
			entry := scoreboard.Entries[i]
			projectID := entry.ProjectID
			projectName := entry.ProjectName
			awards[i].WinnerProjectID = &projectID
			awards[i].WinnerProjectName = &projectName
			assigned++
		} else {
			// Fewer ranked projects than awards; the remainder stays open.
			awards[i].WinnerProjectID = nil
			awards[i].WinnerProjectName = nil
		}
	}

	winners := winnersProjection(awards)

	// The award assignments, projection replace and status transition land
	// as one storage unit so a retryable crash never exposes a half
	// finalized event.
	if err := s.awards.FinalizeWinners(ctx, hackathonID, awards, winners); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			span.SetStatus(codes.Error, "hackathon_not_found")
			return dto.FinalizeResponse{}, ErrHackathonNotFound
		}
		span.RecordError(err)
		return dto.FinalizeResponse{}, err
	}

	observability.FinalizationsTotal().Inc()
	s.scoring.Invalidate(ctx, hackathonID)
	s.notifyWinners(ctx, hackathon, winners)

	span.SetAttributes(attribute.Int("award.assigned_count", assigned))
	s.logger.Info().Uint("hackathon_id", hackathonID).Int("assigned", assigned).Msg("hackathon finalized")

	responseWinners := make([]dto.WinnerResponse, 0, len(winners))
	for _, winner := range winners {
		responseWinners = append(responseWinners, dto.WinnerResponse{
			AwardID:     winner.AwardID,
			AwardName:   winner.AwardName,
			Rank:        winner.Rank,
			ProjectID:   winner.ProjectID,
			ProjectName: winner.ProjectName,
		})
	}

	return dto.FinalizeResponse{
		HackathonID:   hackathonID,
		AssignedCount: assigned,
		Status:        string(models.HackathonStatusCompleted),
		Winners:       responseWinners,
	}, nil
}

func (s *awardService) AssignWinner(ctx context.Context, awardID uint, payload dto.WinnerAssignRequest) (dto.AwardResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AwardResponse{}, err
	}

	award, err := s.awards.GetByID(ctx, awardID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.AwardResponse{}, ErrAwardNotFound
		}
		return dto.AwardResponse{}, err
	}

	projectID := payload.ProjectID
	projectName := payload.ProjectName
	award.WinnerProjectID = &projectID
	award.WinnerProjectName = &projectName

	// The projection is rebuilt from all awards so a manual assignment and a
	// later finalize stay consistent with each other.
	awards, err := s.awards.ListByHackathon(ctx, award.HackathonID)
	if err != nil {
		return dto.AwardResponse{}, err
	}
	for i := range awards {
		if awards[i].ID == award.ID {
			awards[i] = award
		}
	}
	winners := winnersProjection(awards)

	if err := s.awards.AssignWinner(ctx, &award, winners); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.AwardResponse{}, ErrAwardNotFound
		}
		return dto.AwardResponse{}, err
	}

	s.logger.Info().Uint("award_id", award.ID).Str("project_id", projectID).Msg("winner assigned")

	return dto.NewAwardResponse(award), nil
}

// winnersProjection derives the hackathon winners view as exactly the set of
// awards that currently carry an assigned project.
func winnersProjection(awards []models.Award) []models.AwardWinner {
	winners := make([]models.AwardWinner, 0, len(awards))
	for _, award := range awards {
		if !award.HasWinner() {
			continue
		}
		name := ""
		if award.WinnerProjectName != nil {
			name = *award.WinnerProjectName
		}
		winners = append(winners, models.AwardWinner{
			AwardID:     award.ID,
			AwardName:   award.Name,
			Rank:        award.Rank,
			ProjectID:   *award.WinnerProjectID,
			ProjectName: name,
		})
	}
	sort.Slice(winners, func(i, j int) bool { return winners[i].Rank < winners[j].Rank })

	return winners
}

// notifyWinners emits award notifications to the team leads of winning
// projects. Lookup or dispatch failures are logged and swallowed.
func (s *awardService) notifyWinners(ctx context.Context, hackathon models.Hackathon, winners []models.AwardWinner) {
	if s.notifier == nil || len(winners) == 0 {
		return
	}

	participants, err := s.participants.ListByHackathon(ctx, hackathon.ID)
	if err != nil {
		s.logger.Warn().Err(err).Uint("hackathon_id", hackathon.ID).Msg("failed to resolve winners for notification")
		return
	}

	leadByProject := make(map[string]uint, len(participants))
	for _, participant := range participants {
		id, _, ok := projectIdentity(participant)
		if !ok {
			continue
		}
		if _, exists := leadByProject[id]; !exists {
			leadByProject[id] = participant.UserID
		}
	}

	for _, winner := range winners {
		userID, ok := leadByProject[winner.ProjectID]
		if !ok {
			continue
		}
		s.notifier.Notify(ctx, Notification{
			UserID: userID,
			Type:   NotificationTypeWinner,
			Title:  fmt.Sprintf("%s won %s", winner.ProjectName, winner.AwardName),
			Body:   fmt.Sprintf("Your project placed rank %d in %s.", winner.Rank, hackathon.Name),
			Link:   fmt.Sprintf("/hackathons/%d", hackathon.ID),
			Payload: map[string]interface{}{
				"hackathon_id": hackathon.ID,
				"award_id":     winner.AwardID,
				"project_id":   winner.ProjectID,
				"rank":         winner.Rank,
			},
		})
	}
}
