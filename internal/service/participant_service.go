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
	"github.com/hackpoint/hackpoint-api/internal/repository"
)

// ErrParticipantNotFound indicates the participant could not be located.
var ErrParticipantNotFound = errors.New("participant not found")

// ParticipantService manages registration and project submission.
type ParticipantService interface {
	Register(ctx context.Context, payload dto.ParticipantRegisterRequest) (dto.ParticipantResponse, error)
	UpdateSubmission(ctx context.Context, id uint, payload dto.ParticipantSubmissionRequest) (dto.ParticipantResponse, error)
	GetByUser(ctx context.Context, hackathonID, userID uint) (dto.ParticipantResponse, error)
	ListByHackathon(ctx context.Context, hackathonID uint) ([]dto.ParticipantResponse, error)
}

type participantService struct {
	participants repository.ParticipantRepository
	hackathons   repository.HackathonRepository
	validator    *validator.Validate
	sanitizer    *bluemonday.Policy
	logger       zerolog.Logger
	now          func() time.Time
}

// NewParticipantService constructs a ParticipantService instance.
func NewParticipantService(participantRepo repository.ParticipantRepository, hackathonRepo repository.HackathonRepository, validate *validator.Validate, logger zerolog.Logger) ParticipantService {
	return &participantService{
		participants: participantRepo,
		hackathons:   hackathonRepo,
		validator:    validate,
		sanitizer:    bluemonday.StrictPolicy(),
		logger:       logger.With().Str("component", "participant_service").Logger(),
		now:          time.Now,
	}
}

func (s *participantService) Register(ctx context.Context, payload dto.ParticipantRegisterRequest) (dto.ParticipantResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ParticipantResponse{}, err
	}

	if _, err := s.hackathons.GetByID(ctx, payload.HackathonID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ParticipantResponse{}, ErrHackathonNotFound
		}
		return dto.ParticipantResponse{}, err
	}

	existing, err := s.participants.GetByHackathonAndUser(ctx, payload.HackathonID, payload.UserID)
	if err == nil {
		// Repeat registration behaves as an update of the existing row.
		return s.applyRegistration(ctx, existing, payload)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return dto.ParticipantResponse{}, err
	}

	participant := models.Participant{
		HackathonID:  payload.HackathonID,
		UserID:       payload.UserID,
		ProjectID:    payload.ProjectID,
		ProjectName:  payload.ProjectName,
		TeamName:     payload.TeamName,
		InvitationID: payload.InvitationID,
		Status:       models.ParticipantStatusRegistered,
	}
	s.recomputeSubmissionStatus(&participant)

	if err := s.participants.Create(ctx, &participant); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// Lost a racing first registration; treat ours as the update.
			current, getErr := s.participants.GetByHackathonAndUser(ctx, payload.HackathonID, payload.UserID)
			if getErr != nil {
				return dto.ParticipantResponse{}, getErr
			}
			return s.applyRegistration(ctx, current, payload)
		}
		return dto.ParticipantResponse{}, err
	}

	if err := s.hackathons.IncrementParticipantCount(ctx, payload.HackathonID); err != nil {
		s.logger.Warn().Err(err).Uint("hackathon_id", payload.HackathonID).Msg("failed to bump participant count")
	}

	s.logger.Info().Uint("participant_id", participant.ID).Uint("hackathon_id", participant.HackathonID).Msg("participant registered")

	return dto.NewParticipantResponse(participant), nil
}

func (s *participantService) applyRegistration(ctx context.Context, participant models.Participant, payload dto.ParticipantRegisterRequest) (dto.ParticipantResponse, error) {
	if payload.ProjectID != nil {
		participant.ProjectID = payload.ProjectID
	}
	if payload.ProjectName != nil {
		participant.ProjectName = payload.ProjectName
	}
	if payload.TeamName != nil {
		participant.TeamName = payload.TeamName
	}
	if payload.InvitationID != nil {
		participant.InvitationID = payload.InvitationID
	}
	s.recomputeSubmissionStatus(&participant)

	if err := s.participants.Update(ctx, &participant); err != nil {
		return dto.ParticipantResponse{}, err
	}

	return dto.NewParticipantResponse(participant), nil
}

func (s *participantService) UpdateSubmission(ctx context.Context, id uint, payload dto.ParticipantSubmissionRequest) (dto.ParticipantResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ParticipantResponse{}, err
	}

	participant, err := s.participants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ParticipantResponse{}, ErrParticipantNotFound
		}
		return dto.ParticipantResponse{}, err
	}

	touchedIdentity := false
	if payload.ProjectID != nil {
		participant.ProjectID = payload.ProjectID
		touchedIdentity = true
	}
	if payload.ProjectName != nil {
		participant.ProjectName = payload.ProjectName
		touchedIdentity = true
	}
	if payload.TeamName != nil {
		participant.TeamName = payload.TeamName
	}
	if payload.PitchText != nil {
		participant.PitchText = strings.TrimSpace(s.sanitizer.Sanitize(*payload.PitchText))
	}
	if payload.RepoURL != nil {
		participant.RepoURL = *payload.RepoURL
	}
	if payload.DemoURL != nil {
		participant.DemoURL = *payload.DemoURL
	}
	if payload.AttachmentURL != nil {
		participant.AttachmentURL = *payload.AttachmentURL
	}

	if touchedIdentity {
		s.recomputeSubmissionStatus(&participant)
	}

	if err := s.participants.Update(ctx, &participant); err != nil {
		return dto.ParticipantResponse{}, err
	}

	s.logger.Info().Uint("participant_id", participant.ID).Str("status", participant.Status).Msg("submission updated")

	return dto.NewParticipantResponse(participant), nil
}

// recomputeSubmissionStatus flips the participant to submitted and stamps
// the submission time once project identity is present.
func (s *participantService) recomputeSubmissionStatus(participant *models.Participant) {
	if !participant.HasProject() {
		return
	}
	participant.Status = models.ParticipantStatusSubmitted
	if participant.SubmittedAt == nil {
		submittedAt := s.now()
		participant.SubmittedAt = &submittedAt
	}
}

func (s *participantService) GetByUser(ctx context.Context, hackathonID, userID uint) (dto.ParticipantResponse, error) {
	participant, err := s.participants.GetByHackathonAndUser(ctx, hackathonID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ParticipantResponse{}, ErrParticipantNotFound
		}
		return dto.ParticipantResponse{}, err
	}

	return dto.NewParticipantResponse(participant), nil
}

func (s *participantService) ListByHackathon(ctx context.Context, hackathonID uint) ([]dto.ParticipantResponse, error) {
	participants, err := s.participants.ListByHackathon(ctx, hackathonID)
	if err != nil {
		return nil, err
	}

	return dto.NewParticipantResponseSlice(participants), nil
}
