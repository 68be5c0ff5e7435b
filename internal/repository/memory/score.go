package memory

import (
	"context"

	"github.com/hackpoint/hackpoint-api/internal/models"
	"github.com/hackpoint/hackpoint-api/internal/repository"
)

type scoreRepository struct {
	store *Store
}

// NewScoreRepository returns the in-memory score repository.
func NewScoreRepository(store *Store) repository.ScoreRepository {
	return &scoreRepository{store: store}
}

func sameCriterion(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r *scoreRepository) Upsert(ctx context.Context, score *models.Score) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, existing := range s.scores {
		if existing.HackathonID == score.HackathonID &&
			existing.ProjectID == score.ProjectID &&
			existing.JudgeID == score.JudgeID &&
			sameCriterion(existing.CriterionID, score.CriterionID) {
			existing.Value = score.Value
			existing.Feedback = score.Feedback
			existing.SubmittedAt = score.SubmittedAt
			existing.UpdatedAt = now
			s.scores[id] = existing
			*score = existing
			return nil
		}
	}

	score.ID = s.nextID()
	score.CreatedAt = now
	score.UpdatedAt = now
	s.scores[score.ID] = *score

	return nil
}

func (r *scoreRepository) ListByHackathon(ctx context.Context, hackathonID uint) ([]models.Score, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	scores := make([]models.Score, 0)
	for _, score := range s.scores {
		if score.HackathonID == hackathonID {
			scores = append(scores, score)
		}
	}

	return scores, nil
}

func (r *scoreRepository) ListByProject(ctx context.Context, hackathonID uint, projectID string) ([]models.Score, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	scores := make([]models.Score, 0)
	for _, score := range s.scores {
		if score.HackathonID == hackathonID && score.ProjectID == projectID {
			scores = append(scores, score)
		}
	}

	return scores, nil
}
