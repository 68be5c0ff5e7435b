package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hackpoint/hackpoint-api/internal/models"
)

// CriterionRepository defines read operations for judging criteria. Criteria
// are created as children of the hackathon and never mutated afterwards.
type CriterionRepository interface {
	ListByHackathon(ctx context.Context, hackathonID uint) ([]models.JudgingCriterion, error)
}

type criterionRepository struct {
	db *gorm.DB
}

// NewCriterionRepository instantiates the gorm-backed repository.
func NewCriterionRepository(db *gorm.DB) CriterionRepository {
	return &criterionRepository{db: db}
}

func (r *criterionRepository) ListByHackathon(ctx context.Context, hackathonID uint) ([]models.JudgingCriterion, error) {
	var criteria []models.JudgingCriterion
	if err := r.db.WithContext(ctx).
		Where("hackathon_id = ?", hackathonID).
		Order("display_order ASC").
		Find(&criteria).Error; err != nil {
		return nil, err
	}

	return criteria, nil
}
