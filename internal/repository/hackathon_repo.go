package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hackpoint/hackpoint-api/internal/models"
)

// HackathonRepository defines data operations for hackathons and their
// nested award/criterion collections.
type HackathonRepository interface {
	// Create persists the hackathon together with its awards and criteria in
	// a single atomic unit.
	Create(ctx context.Context, hackathon *models.Hackathon) error
	GetByID(ctx context.Context, id uint) (models.Hackathon, error)
	List(ctx context.Context) ([]models.Hackathon, error)
	Update(ctx context.Context, hackathon *models.Hackathon) error
	// IncrementParticipantCount atomically bumps the derived participant
	// counter without racing concurrent registrations.
	IncrementParticipantCount(ctx context.Context, id uint) error
}

type hackathonRepository struct {
	db *gorm.DB
}

// NewHackathonRepository instantiates the gorm-backed repository.
func NewHackathonRepository(db *gorm.DB) HackathonRepository {
	return &hackathonRepository{db: db}
}

func (r *hackathonRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Hackathon{}).
		Preload("Awards", func(db *gorm.DB) *gorm.DB {
			return db.Order("rank ASC")
		}).
		Preload("Criteria", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		})
}

func (r *hackathonRepository) Create(ctx context.Context, hackathon *models.Hackathon) error {
	// Child awards and criteria are created in the same transaction through
	// the gorm associations; a failure rolls back all three collections.
	return r.db.WithContext(ctx).Create(hackathon).Error
}

func (r *hackathonRepository) GetByID(ctx context.Context, id uint) (models.Hackathon, error) {
	var hackathon models.Hackathon
	if err := r.baseQuery(ctx).First(&hackathon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Hackathon{}, ErrNotFound
		}
		return models.Hackathon{}, err
	}

	return hackathon, nil
}

func (r *hackathonRepository) List(ctx context.Context) ([]models.Hackathon, error) {
	var hackathons []models.Hackathon
	if err := r.db.WithContext(ctx).Order("start_date DESC").Find(&hackathons).Error; err != nil {
		return nil, err
	}

	return hackathons, nil
}

func (r *hackathonRepository) Update(ctx context.Context, hackathon *models.Hackathon) error {
	// participant_count and winners are owned by their own atomic writes; a
	// whole-row save must not flush the caller's possibly stale copies back.
	return r.db.WithContext(ctx).
		Omit("Awards", "Criteria", "participant_count", "winners").
		Save(hackathon).Error
}

func (r *hackathonRepository) IncrementParticipantCount(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.Hackathon{}).
		Where("id = ?", id).
		UpdateColumn("participant_count", gorm.Expr("participant_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
