package memory

import (
	"context"
	"sort"

	"github.com/hackpoint/hackpoint-api/internal/models"
	"github.com/hackpoint/hackpoint-api/internal/repository"
)

type criterionRepository struct {
	store *Store
}

// NewCriterionRepository returns the in-memory criterion repository.
func NewCriterionRepository(store *Store) repository.CriterionRepository {
	return &criterionRepository{store: store}
}

func (r *criterionRepository) ListByHackathon(ctx context.Context, hackathonID uint) ([]models.JudgingCriterion, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	criteria := make([]models.JudgingCriterion, 0)
	for _, criterion := range s.criteria {
		if criterion.HackathonID == hackathonID {
			criteria = append(criteria, criterion)
		}
	}
	sort.Slice(criteria, func(i, j int) bool {
		return criteria[i].DisplayOrder < criteria[j].DisplayOrder
	})

	return criteria, nil
}
