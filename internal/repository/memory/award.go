package memory

import (
	"context"
	"sort"

	"github.com/hackpoint/hackpoint-api/internal/models"
	"github.com/hackpoint/hackpoint-api/internal/repository"
)

type awardRepository struct {
	store *Store
}

// NewAwardRepository returns the in-memory award repository.
func NewAwardRepository(store *Store) repository.AwardRepository {
	return &awardRepository{store: store}
}

func (r *awardRepository) GetByID(ctx context.Context, id uint) (models.Award, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	award, ok := s.awards[id]
	if !ok {
		return models.Award{}, repository.ErrNotFound
	}

	return award, nil
}

func (r *awardRepository) ListByHackathon(ctx context.Context, hackathonID uint) ([]models.Award, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	awards := make([]models.Award, 0)
	for _, award := range s.awards {
		if award.HackathonID == hackathonID {
			awards = append(awards, award)
		}
	}
	sort.Slice(awards, func(i, j int) bool { return awards[i].Rank < awards[j].Rank })

	return awards, nil
}

func (r *awardRepository) AssignWinner(ctx context.Context, award *models.Award, winners []models.AwardWinner) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.awards[award.ID]; !ok {
		return repository.ErrNotFound
	}

	award.UpdatedAt = s.now()
	s.awards[award.ID] = *award

	return s.replaceWinnersLocked(award.HackathonID, winners)
}

func (r *awardRepository) FinalizeWinners(ctx context.Context, hackathonID uint, awards []models.Award, winners []models.AwardWinner) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	hackathon, ok := s.hackathons[hackathonID]
	if !ok {
		return repository.ErrNotFound
	}

	// The whole finalize write happens under one lock so a reader never
	// observes a partially assigned event.
	now := s.now()
	for i := range awards {
		award := awards[i]
		award.UpdatedAt = now
		s.awards[award.ID] = award
	}

	hackathon.Winners = append(hackathon.Winners[:0:0], winners...)
	hackathon.Status = models.HackathonStatusCompleted
	hackathon.UpdatedAt = now
	s.hackathons[hackathonID] = hackathon

	return nil
}
