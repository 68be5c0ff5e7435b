package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hackpoint/hackpoint-api/internal/models"
)

// JudgeRepository defines data operations for the judge panel.
type JudgeRepository interface {
	Create(ctx context.Context, judge *models.Judge) error
	GetByID(ctx context.Context, id uint) (models.Judge, error)
	ListByHackathon(ctx context.Context, hackathonID uint) ([]models.Judge, error)
}

type judgeRepository struct {
	db *gorm.DB
}

// NewJudgeRepository instantiates the gorm-backed repository.
func NewJudgeRepository(db *gorm.DB) JudgeRepository {
	return &judgeRepository{db: db}
}

func (r *judgeRepository) Create(ctx context.Context, judge *models.Judge) error {
	if err := r.db.WithContext(ctx).Create(judge).Error; err != nil {
		// The (hackathon, user) unique index guards against double panel
		// admission, same as the memory backend.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return err
	}

	return nil
}

func (r *judgeRepository) GetByID(ctx context.Context, id uint) (models.Judge, error) {
	var judge models.Judge
	if err := r.db.WithContext(ctx).First(&judge, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Judge{}, ErrNotFound
		}
		return models.Judge{}, err
	}

	return judge, nil
}

func (r *judgeRepository) ListByHackathon(ctx context.Context, hackathonID uint) ([]models.Judge, error) {
	var judges []models.Judge
	if err := r.db.WithContext(ctx).
		Where("hackathon_id = ?", hackathonID).
		Order("created_at ASC").
		Find(&judges).Error; err != nil {
		return nil, err
	}

	return judges, nil
}
