package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hackpoint/hackpoint-api/internal/models"
)

// ScoreRepository defines data operations for judge scores.
type ScoreRepository interface {
	// Upsert stores the score, replacing any existing row with the same
	// (hackathon, project, judge, criterion) identity. The passed model is
	// updated with the stored row.
	Upsert(ctx context.Context, score *models.Score) error
	ListByHackathon(ctx context.Context, hackathonID uint) ([]models.Score, error)
	ListByProject(ctx context.Context, hackathonID uint, projectID string) ([]models.Score, error)
}

type scoreRepository struct {
	db *gorm.DB
}

// NewScoreRepository instantiates the gorm-backed repository.
func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) Upsert(ctx context.Context, score *models.Score) error {
	var existing models.Score
	err := r.identityQuery(ctx, score).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		createErr := r.db.WithContext(ctx).Create(score).Error
		if createErr == nil {
			return nil
		}
		// A concurrent submission for the same identity got its insert in
		// first; the expression index rejects ours, so overwrite that row
		// instead.
		if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
			return createErr
		}
		score.ID = 0
		if err := r.identityQuery(ctx, score).First(&existing).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	existing.Value = score.Value
	existing.Feedback = score.Feedback
	existing.SubmittedAt = score.SubmittedAt
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return err
	}

	*score = existing
	return nil
}

// identityQuery filters on the (hackathon, project, judge, criterion) key.
// A NULL criterion marks the overall slot and needs an explicit IS NULL.
func (r *scoreRepository) identityQuery(ctx context.Context, score *models.Score) *gorm.DB {
	query := r.db.WithContext(ctx).
		Where("hackathon_id = ?", score.HackathonID).
		Where("project_id = ?", score.ProjectID).
		Where("judge_id = ?", score.JudgeID)
	if score.CriterionID == nil {
		return query.Where("criterion_id IS NULL")
	}
	return query.Where("criterion_id = ?", *score.CriterionID)
}

func (r *scoreRepository) ListByHackathon(ctx context.Context, hackathonID uint) ([]models.Score, error) {
	var scores []models.Score
	if err := r.db.WithContext(ctx).
		Where("hackathon_id = ?", hackathonID).
		Find(&scores).Error; err != nil {
		return nil, err
	}

	return scores, nil
}

func (r *scoreRepository) ListByProject(ctx context.Context, hackathonID uint, projectID string) ([]models.Score, error) {
	var scores []models.Score
	if err := r.db.WithContext(ctx).
		Where("hackathon_id = ? AND project_id = ?", hackathonID, projectID).
		Find(&scores).Error; err != nil {
		return nil, err
	}

	return scores, nil
}
