package memory

import (
	"context"
	"sort"

	"github.com/hackpoint/hackpoint-api/internal/models"
	"github.com/hackpoint/hackpoint-api/internal/repository"
)

type participantRepository struct {
	store *Store
}

// NewParticipantRepository returns the in-memory participant repository.
func NewParticipantRepository(store *Store) repository.ParticipantRepository {
	return &participantRepository{store: store}
}

func (r *participantRepository) Create(ctx context.Context, participant *models.Participant) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	// Mirrors the unique (hackathon, user) index of the gorm backend.
	for _, existing := range s.participants {
		if existing.HackathonID == participant.HackathonID && existing.UserID == participant.UserID {
			return repository.ErrConflict
		}
	}

	now := s.now()
	participant.ID = s.nextID()
	participant.CreatedAt = now
	participant.UpdatedAt = now
	s.participants[participant.ID] = *participant

	return nil
}

func (r *participantRepository) GetByID(ctx context.Context, id uint) (models.Participant, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	participant, ok := s.participants[id]
	if !ok {
		return models.Participant{}, repository.ErrNotFound
	}

	return participant, nil
}

func (r *participantRepository) GetByHackathonAndUser(ctx context.Context, hackathonID, userID uint) (models.Participant, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, participant := range s.participants {
		if participant.HackathonID == hackathonID && participant.UserID == userID {
			return participant, nil
		}
	}

	return models.Participant{}, repository.ErrNotFound
}

func (r *participantRepository) ListByHackathon(ctx context.Context, hackathonID uint) ([]models.Participant, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	participants := make([]models.Participant, 0)
	for _, participant := range s.participants {
		if participant.HackathonID == hackathonID {
			participants = append(participants, participant)
		}
	}
	sort.Slice(participants, func(i, j int) bool {
		return participants[i].ID < participants[j].ID
	})

	return participants, nil
}

func (r *participantRepository) Update(ctx context.Context, participant *models.Participant) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.participants[participant.ID]
	if !ok {
		return repository.ErrNotFound
	}

	participant.CreatedAt = stored.CreatedAt
	participant.UpdatedAt = s.now()
	s.participants[participant.ID] = *participant

	return nil
}
