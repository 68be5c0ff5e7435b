package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hackpoint/hackpoint-api/internal/models"
)

// ParticipantRepository defines data operations for participants.
type ParticipantRepository interface {
	Create(ctx context.Context, participant *models.Participant) error
	GetByID(ctx context.Context, id uint) (models.Participant, error)
	GetByHackathonAndUser(ctx context.Context, hackathonID, userID uint) (models.Participant, error)
	ListByHackathon(ctx context.Context, hackathonID uint) ([]models.Participant, error)
	Update(ctx context.Context, participant *models.Participant) error
}

type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository instantiates the gorm-backed repository.
func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) Create(ctx context.Context, participant *models.Participant) error {
	if err := r.db.WithContext(ctx).Create(participant).Error; err != nil {
		// One registration per (hackathon, user); losers of a creation race
		// get ErrConflict so callers can fall back to the stored row.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return err
	}

	return nil
}

func (r *participantRepository) GetByID(ctx context.Context, id uint) (models.Participant, error) {
	var participant models.Participant
	if err := r.db.WithContext(ctx).First(&participant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Participant{}, ErrNotFound
		}
		return models.Participant{}, err
	}

	return participant, nil
}

func (r *participantRepository) GetByHackathonAndUser(ctx context.Context, hackathonID, userID uint) (models.Participant, error) {
	var participant models.Participant
	if err := r.db.WithContext(ctx).
		Where("hackathon_id = ? AND user_id = ?", hackathonID, userID).
		First(&participant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Participant{}, ErrNotFound
		}
		return models.Participant{}, err
	}

	return participant, nil
}

func (r *participantRepository) ListByHackathon(ctx context.Context, hackathonID uint) ([]models.Participant, error) {
	var participants []models.Participant
	if err := r.db.WithContext(ctx).
		Where("hackathon_id = ?", hackathonID).
		Order("created_at ASC").
		Find(&participants).Error; err != nil {
		return nil, err
	}

	return participants, nil
}

func (r *participantRepository) Update(ctx context.Context, participant *models.Participant) error {
	return r.db.WithContext(ctx).Save(participant).Error
}
