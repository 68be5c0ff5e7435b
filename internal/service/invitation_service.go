package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/hackpoint/hackpoint-api/internal/dto"
	"github.com/hackpoint/hackpoint-api/internal/models"
	"github.com/hackpoint/hackpoint-api/internal/repository"
)

// ErrInvitationNotFound indicates the invitation could not be located.
var ErrInvitationNotFound = errors.New("invitation not found")

// ErrInvitationResolved indicates the invitation was already accepted or
// declined and cannot be responded to again.
var ErrInvitationResolved = errors.New("invitation already resolved")

// ErrUserNotFound indicates the referenced user account does not exist.
var ErrUserNotFound = errors.New("user not found")

// InvitationService issues and resolves invitations to participate or judge.
type InvitationService interface {
	Invite(ctx context.Context, payload dto.InvitationCreateRequest) (dto.InvitationResponse, error)
	Respond(ctx context.Context, id uint, payload dto.InvitationRespondRequest) (dto.InvitationResponse, error)
	ListByHackathon(ctx context.Context, hackathonID uint) ([]dto.InvitationResponse, error)
}

type invitationService struct {
	invitations  repository.InvitationRepository
	hackathons   repository.HackathonRepository
	participants repository.ParticipantRepository
	users        repository.UserRepository
	notifier     Notifier
	validator    *validator.Validate
	logger       zerolog.Logger
	now          func() time.Time
}

// NewInvitationService constructs an InvitationService instance.
func NewInvitationService(invitationRepo repository.InvitationRepository, hackathonRepo repository.HackathonRepository, participantRepo repository.ParticipantRepository, userRepo repository.UserRepository, notifier Notifier, validate *validator.Validate, logger zerolog.Logger) InvitationService {
	return &invitationService{
		invitations:  invitationRepo,
		hackathons:   hackathonRepo,
		participants: participantRepo,
		users:        userRepo,
		notifier:     notifier,
		validator:    validate,
		logger:       logger.With().Str("component", "invitation_service").Logger(),
		now:          time.Now,
	}
}

func (s *invitationService) Invite(ctx context.Context, payload dto.InvitationCreateRequest) (dto.InvitationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InvitationResponse{}, err
	}

	hackathon, err := s.hackathons.GetByID(ctx, payload.HackathonID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.InvitationResponse{}, ErrHackathonNotFound
		}
		return dto.InvitationResponse{}, err
	}

	invitation := models.Invitation{
		HackathonID: payload.HackathonID,
		Email:       strings.ToLower(strings.TrimSpace(payload.Email)),
		Role:        payload.Role,
		Status:      models.InvitationStatusPending,
		InvitedBy:   payload.InvitedBy,
	}

	// The invited address may already belong to a platform account; resolve
	// it up front so the notification can target the user directly.
	user, lookupErr := s.users.GetByEmail(ctx, invitation.Email)
	if lookupErr == nil {
		userID := user.ID
		invitation.UserID = &userID
	} else if !errors.Is(lookupErr, repository.ErrNotFound) {
		s.logger.Warn().Err(lookupErr).Str("email", invitation.Email).Msg("user directory lookup failed")
	}

	if err := s.invitations.Create(ctx, &invitation); err != nil {
		return dto.InvitationResponse{}, err
	}

	if invitation.UserID != nil && s.notifier != nil {
		s.notifier.Notify(ctx, Notification{
			UserID: *invitation.UserID,
			Type:   NotificationTypeInvitation,
			Title:  fmt.Sprintf("You are invited to %s", hackathon.Name),
			Body:   fmt.Sprintf("You have been invited to join %s as a %s.", hackathon.Name, invitation.Role),
			Link:   fmt.Sprintf("/hackathons/%d/invitations/%d", invitation.HackathonID, invitation.ID),
			Payload: map[string]interface{}{
				"hackathon_id":  invitation.HackathonID,
				"invitation_id": invitation.ID,
				"role":          invitation.Role,
			},
		})
	}

	s.logger.Info().Uint("invitation_id", invitation.ID).Uint("hackathon_id", invitation.HackathonID).Str("role", invitation.Role).Msg("invitation created")

	return dto.NewInvitationResponse(invitation), nil
}

func (s *invitationService) Respond(ctx context.Context, id uint, payload dto.InvitationRespondRequest) (dto.InvitationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InvitationResponse{}, err
	}

	// An explicit responder must reference a real account before the
	// invitation is irreversibly resolved.
	if payload.UserID != nil {
		if _, err := s.users.GetByID(ctx, *payload.UserID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return dto.InvitationResponse{}, ErrUserNotFound
			}
			return dto.InvitationResponse{}, err
		}
	}

	invitation, err := s.invitations.Resolve(ctx, id, payload.Status, payload.UserID, s.now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return dto.InvitationResponse{}, ErrInvitationNotFound
		case errors.Is(err, repository.ErrConflict):
			return dto.InvitationResponse{}, ErrInvitationResolved
		default:
			return dto.InvitationResponse{}, err
		}
	}

	if invitation.Status == models.InvitationStatusAccepted &&
		invitation.Role == models.InvitationRoleParticipant &&
		invitation.UserID != nil {
		s.ensureParticipant(ctx, invitation)
	}

	s.logger.Info().Uint("invitation_id", invitation.ID).Str("status", invitation.Status).Msg("invitation resolved")

	return dto.NewInvitationResponse(invitation), nil
}

// ensureParticipant idempotently promotes an accepted participant invitation
// into a participant row. An existing row is left untouched and a lost
// creation race falls back to the row the winner created.
func (s *invitationService) ensureParticipant(ctx context.Context, invitation models.Invitation) {
	_, err := s.participants.GetByHackathonAndUser(ctx, invitation.HackathonID, *invitation.UserID)
	if err == nil {
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn().Err(err).Uint("invitation_id", invitation.ID).Msg("participant lookup failed during invite promotion")
		return
	}

	invitationID := invitation.ID
	participant := models.Participant{
		HackathonID:  invitation.HackathonID,
		UserID:       *invitation.UserID,
		Status:       models.ParticipantStatusRegistered,
		InvitationID: &invitationID,
	}

	if err := s.participants.Create(ctx, &participant); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return
		}
		s.logger.Warn().Err(err).Uint("invitation_id", invitation.ID).Msg("participant creation failed during invite promotion")
		return
	}

	if err := s.hackathons.IncrementParticipantCount(ctx, invitation.HackathonID); err != nil {
		s.logger.Warn().Err(err).Uint("hackathon_id", invitation.HackathonID).Msg("failed to bump participant count")
	}
}

func (s *invitationService) ListByHackathon(ctx context.Context, hackathonID uint) ([]dto.InvitationResponse, error) {
	invitations, err := s.invitations.ListByHackathon(ctx, hackathonID)
	if err != nil {
		return nil, err
	}

	return dto.NewInvitationResponseSlice(invitations), nil
}
