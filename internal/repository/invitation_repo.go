package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hackpoint/hackpoint-api/internal/models"
)

// InvitationRepository defines data operations for invitations. The respond
// transition is a compare-and-swap: of two concurrent responders only one
// may observe the pending status and win the write.
type InvitationRepository interface {
	Create(ctx context.Context, invitation *models.Invitation) error
	GetByID(ctx context.Context, id uint) (models.Invitation, error)
	ListByHackathon(ctx context.Context, hackathonID uint) ([]models.Invitation, error)
	// Resolve transitions a pending invitation to the given status. It
	// returns ErrConflict when the invitation exists but is no longer
	// pending, leaving the stored row untouched.
	Resolve(ctx context.Context, id uint, status string, userID *uint, respondedAt time.Time) (models.Invitation, error)
}

type invitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository instantiates the gorm-backed repository.
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(ctx context.Context, invitation *models.Invitation) error {
	return r.db.WithContext(ctx).Create(invitation).Error
}

func (r *invitationRepository) GetByID(ctx context.Context, id uint) (models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.WithContext(ctx).First(&invitation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Invitation{}, ErrNotFound
		}
		return models.Invitation{}, err
	}

	return invitation, nil
}

func (r *invitationRepository) ListByHackathon(ctx context.Context, hackathonID uint) ([]models.Invitation, error) {
	var invitations []models.Invitation
	if err := r.db.WithContext(ctx).
		Where("hackathon_id = ?", hackathonID).
		Order("created_at DESC").
		Find(&invitations).Error; err != nil {
		return nil, err
	}

	return invitations, nil
}

func (r *invitationRepository) Resolve(ctx context.Context, id uint, status string, userID *uint, respondedAt time.Time) (models.Invitation, error) {
	updates := map[string]interface{}{
		"status":       status,
		"responded_at": respondedAt,
	}
	if userID != nil {
		updates["user_id"] = *userID
	}

	result := r.db.WithContext(ctx).Model(&models.Invitation{}).
		Where("id = ? AND status = ?", id, models.InvitationStatusPending).
		Updates(updates)
	if result.Error != nil {
		return models.Invitation{}, result.Error
	}

	if result.RowsAffected == 0 {
		// Either the invitation is missing or another responder won the race.
		if _, err := r.GetByID(ctx, id); err != nil {
			return models.Invitation{}, err
		}
		return models.Invitation{}, ErrConflict
	}

	return r.GetByID(ctx, id)
}
