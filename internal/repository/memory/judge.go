package memory

import (
	"context"
	"sort"

	"github.com/hackpoint/hackpoint-api/internal/models"
	"github.com/hackpoint/hackpoint-api/internal/repository"
)

type judgeRepository struct {
	store *Store
}

// NewJudgeRepository returns the in-memory judge repository.
func NewJudgeRepository(store *Store) repository.JudgeRepository {
	return &judgeRepository{store: store}
}

func (r *judgeRepository) Create(ctx context.Context, judge *models.Judge) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.judges {
		if existing.HackathonID == judge.HackathonID && existing.UserID == judge.UserID {
			return repository.ErrConflict
		}
	}

	now := s.now()
	judge.ID = s.nextID()
	judge.CreatedAt = now
	judge.UpdatedAt = now
	s.judges[judge.ID] = *judge

	return nil
}

func (r *judgeRepository) GetByID(ctx context.Context, id uint) (models.Judge, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	judge, ok := s.judges[id]
	if !ok {
		return models.Judge{}, repository.ErrNotFound
	}

	return judge, nil
}

func (r *judgeRepository) ListByHackathon(ctx context.Context, hackathonID uint) ([]models.Judge, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	judges := make([]models.Judge, 0)
	for _, judge := range s.judges {
		if judge.HackathonID == hackathonID {
			judges = append(judges, judge)
		}
	}
	sort.Slice(judges, func(i, j int) bool { return judges[i].ID < judges[j].ID })

	return judges, nil
}
