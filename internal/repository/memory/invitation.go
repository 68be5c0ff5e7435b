package memory

import (
	"context"
	"sort"
	"time"

	"github.com/hackpoint/hackpoint-api/internal/models"
	"github.com/hackpoint/hackpoint-api/internal/repository"
)

type invitationRepository struct {
	store *Store
}

// NewInvitationRepository returns the in-memory invitation repository.
func NewInvitationRepository(store *Store) repository.InvitationRepository {
	return &invitationRepository{store: store}
}

func (r *invitationRepository) Create(ctx context.Context, invitation *models.Invitation) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	invitation.ID = s.nextID()
	invitation.CreatedAt = now
	invitation.UpdatedAt = now
	s.invitations[invitation.ID] = *invitation

	return nil
}

func (r *invitationRepository) GetByID(ctx context.Context, id uint) (models.Invitation, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	invitation, ok := s.invitations[id]
	if !ok {
		return models.Invitation{}, repository.ErrNotFound
	}

	return invitation, nil
}

func (r *invitationRepository) ListByHackathon(ctx context.Context, hackathonID uint) ([]models.Invitation, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	invitations := make([]models.Invitation, 0)
	for _, invitation := range s.invitations {
		if invitation.HackathonID == hackathonID {
			invitations = append(invitations, invitation)
		}
	}
	sort.Slice(invitations, func(i, j int) bool {
		return invitations[i].CreatedAt.After(invitations[j].CreatedAt)
	})

	return invitations, nil
}

func (r *invitationRepository) Resolve(ctx context.Context, id uint, status string, userID *uint, respondedAt time.Time) (models.Invitation, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	invitation, ok := s.invitations[id]
	if !ok {
		return models.Invitation{}, repository.ErrNotFound
	}

	// Compare-and-swap on the pending status: a concurrent responder that
	// already resolved the invitation makes this call lose cleanly.
	if !invitation.IsPending() {
		return models.Invitation{}, repository.ErrConflict
	}

	invitation.Status = status
	invitation.RespondedAt = &respondedAt
	if userID != nil {
		invitation.UserID = userID
	}
	invitation.UpdatedAt = s.now()
	s.invitations[id] = invitation

	return invitation, nil
}
