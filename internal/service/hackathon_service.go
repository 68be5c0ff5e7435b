package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/hackpoint/hackpoint-api/internal/dto"
	"github.com/hackpoint/hackpoint-api/internal/models"
	"github.com/hackpoint/hackpoint-api/internal/repository"
)

// ErrHackathonNotFound indicates the hackathon could not be located.
var ErrHackathonNotFound = errors.New("hackathon not found")

// ErrInvalidStatusTransition indicates a lifecycle move that the state
// machine forbids, such as reopening a completed event.
var ErrInvalidStatusTransition = errors.New("invalid status transition")

// HackathonService manages the hackathon registry and its lifecycle.
type HackathonService interface {
	Create(ctx context.Context, payload dto.HackathonCreateRequest) (dto.HackathonResponse, error)
	Update(ctx context.Context, id uint, payload dto.HackathonUpdateRequest) (dto.HackathonResponse, error)
	Get(ctx context.Context, id uint) (dto.HackathonResponse, error)
	List(ctx context.Context) ([]dto.HackathonSummaryResponse, error)
}

type hackathonService struct {
	hackathons repository.HackathonRepository
	rooms      RoomProvisioner
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewHackathonService constructs a HackathonService instance.
func NewHackathonService(hackathonRepo repository.HackathonRepository, rooms RoomProvisioner, validate *validator.Validate, logger zerolog.Logger) HackathonService {
	return &hackathonService{
		hackathons: hackathonRepo,
		rooms:      rooms,
		validator:  validate,
		logger:     logger.With().Str("component", "hackathon_service").Logger(),
	}
}

func (s *hackathonService) Create(ctx context.Context, payload dto.HackathonCreateRequest) (dto.HackathonResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.HackathonResponse{}, err
	}

	sponsors := make([]models.Sponsor, 0, len(payload.Sponsors))
	for _, sponsor := range payload.Sponsors {
		sponsors = append(sponsors, models.Sponsor{Name: sponsor.Name, Tier: sponsor.Tier})
	}

	awards := make([]models.Award, 0, len(payload.Awards))
	for _, award := range payload.Awards {
		awards = append(awards, models.Award{
			Name:  award.Name,
			Rank:  award.Rank,
			Prize: award.Prize,
		})
	}

	criteria := make([]models.JudgingCriterion, 0, len(payload.Criteria))
	for _, criterion := range payload.Criteria {
		criteria = append(criteria, models.JudgingCriterion{
			Name:         criterion.Name,
			Weight:       criterion.Weight,
			DisplayOrder: criterion.DisplayOrder,
		})
	}

	hackathon := models.Hackathon{
		Name:        payload.Name,
		Description: payload.Description,
		StartDate:   payload.StartDate,
		EndDate:     payload.EndDate,
		Location:    payload.Location,
		HostID:      payload.HostID,
		Sponsors:    datatypes.NewJSONSlice(sponsors),
		Status:      models.HackathonStatusDraft,
		Winners:     datatypes.NewJSONSlice([]models.AwardWinner{}),
		Awards:      awards,
		Criteria:    criteria,
	}

	if err := s.hackathons.Create(ctx, &hackathon); err != nil {
		return dto.HackathonResponse{}, err
	}

	// Companion chat room provisioning is a collaborator concern and must
	// never fail the create.
	if s.rooms != nil {
		s.rooms.EnsureRoom(ctx, hackathon.ID, hackathon.Name)
	}

	s.logger.Info().Uint("hackathon_id", hackathon.ID).Uint("host_id", hackathon.HostID).Msg("hackathon created")

	return dto.NewHackathonResponse(hackathon), nil
}

func (s *hackathonService) Update(ctx context.Context, id uint, payload dto.HackathonUpdateRequest) (dto.HackathonResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.HackathonResponse{}, err
	}

	hackathon, err := s.hackathons.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.HackathonResponse{}, ErrHackathonNotFound
		}
		return dto.HackathonResponse{}, err
	}

	if payload.Name != nil {
		hackathon.Name = *payload.Name
	}
	if payload.Description != nil {
		hackathon.Description = *payload.Description
	}
	if payload.StartDate != nil {
		hackathon.StartDate = *payload.StartDate
	}
	if payload.EndDate != nil {
		hackathon.EndDate = *payload.EndDate
	}
	if payload.Location != nil {
		hackathon.Location = *payload.Location
	}
	if payload.Sponsors != nil {
		sponsors := make([]models.Sponsor, 0, len(*payload.Sponsors))
		for _, sponsor := range *payload.Sponsors {
			sponsors = append(sponsors, models.Sponsor{Name: sponsor.Name, Tier: sponsor.Tier})
		}
		hackathon.Sponsors = datatypes.NewJSONSlice(sponsors)
	}

	if payload.Status != nil {
		next := models.HackathonStatus(*payload.Status)
		if next != hackathon.Status {
			if !hackathon.Status.CanTransitionTo(next) {
				return dto.HackathonResponse{}, ErrInvalidStatusTransition
			}
			hackathon.Status = next
		}
	}

	if err := s.hackathons.Update(ctx, &hackathon); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.HackathonResponse{}, ErrHackathonNotFound
		}
		return dto.HackathonResponse{}, err
	}

	s.logger.Info().Uint("hackathon_id", hackathon.ID).Str("status", string(hackathon.Status)).Msg("hackathon updated")

	return dto.NewHackathonResponse(hackathon), nil
}

func (s *hackathonService) Get(ctx context.Context, id uint) (dto.HackathonResponse, error) {
	hackathon, err := s.hackathons.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.HackathonResponse{}, ErrHackathonNotFound
		}
		return dto.HackathonResponse{}, err
	}

	return dto.NewHackathonResponse(hackathon), nil
}

func (s *hackathonService) List(ctx context.Context) ([]dto.HackathonSummaryResponse, error) {
	hackathons, err := s.hackathons.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewHackathonSummarySlice(hackathons), nil
}
