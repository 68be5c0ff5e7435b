package repository

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hackpoint/hackpoint-api/internal/models"
)

// AwardRepository defines data operations for awards, including the atomic
// finalization write that assigns winners, replaces the hackathon winners
// projection and closes the event in one unit.
type AwardRepository interface {
	GetByID(ctx context.Context, id uint) (models.Award, error)
	ListByHackathon(ctx context.Context, hackathonID uint) ([]models.Award, error)
	// AssignWinner persists a single manual award assignment together with
	// the rebuilt winners projection.
	AssignWinner(ctx context.Context, award *models.Award, winners []models.AwardWinner) error
	// FinalizeWinners persists all award assignments, the rebuilt winners
	// projection and the completed status transition atomically, so a crash
	// mid-finalize never leaves a partially assigned event behind.
	FinalizeWinners(ctx context.Context, hackathonID uint, awards []models.Award, winners []models.AwardWinner) error
}

type awardRepository struct {
	db *gorm.DB
}

// NewAwardRepository instantiates the gorm-backed repository.
func NewAwardRepository(db *gorm.DB) AwardRepository {
	return &awardRepository{db: db}
}

func (r *awardRepository) GetByID(ctx context.Context, id uint) (models.Award, error) {
	var award models.Award
	if err := r.db.WithContext(ctx).First(&award, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Award{}, ErrNotFound
		}
		return models.Award{}, err
	}

	return award, nil
}

func (r *awardRepository) ListByHackathon(ctx context.Context, hackathonID uint) ([]models.Award, error) {
	var awards []models.Award
	if err := r.db.WithContext(ctx).
		Where("hackathon_id = ?", hackathonID).
		Order("rank ASC").
		Find(&awards).Error; err != nil {
		return nil, err
	}

	return awards, nil
}

func (r *awardRepository) AssignWinner(ctx context.Context, award *models.Award, winners []models.AwardWinner) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(award).Error; err != nil {
			return err
		}

		return replaceWinners(tx, award.HackathonID, winners)
	})
}

func (r *awardRepository) FinalizeWinners(ctx context.Context, hackathonID uint, awards []models.Award, winners []models.AwardWinner) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range awards {
			if err := tx.Save(&awards[i]).Error; err != nil {
				return err
			}
		}

		if err := replaceWinners(tx, hackathonID, winners); err != nil {
			return err
		}

		result := tx.Model(&models.Hackathon{}).
			Where("id = ?", hackathonID).
			Update("status", models.HackathonStatusCompleted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		return nil
	})
}

func replaceWinners(tx *gorm.DB, hackathonID uint, winners []models.AwardWinner) error {
	result := tx.Model(&models.Hackathon{}).
		Where("id = ?", hackathonID).
		Update("winners", datatypes.NewJSONSlice(winners))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
