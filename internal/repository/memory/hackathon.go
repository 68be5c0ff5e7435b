package memory

import (
	"context"
	"sort"

	"github.com/hackpoint/hackpoint-api/internal/models"
	"github.com/hackpoint/hackpoint-api/internal/repository"
)

type hackathonRepository struct {
	store *Store
}

// NewHackathonRepository returns the in-memory hackathon repository.
func NewHackathonRepository(store *Store) repository.HackathonRepository {
	return &hackathonRepository{store: store}
}

func (r *hackathonRepository) Create(ctx context.Context, hackathon *models.Hackathon) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	hackathon.ID = s.nextID()
	hackathon.CreatedAt = now
	hackathon.UpdatedAt = now

	for i := range hackathon.Awards {
		award := &hackathon.Awards[i]
		award.ID = s.nextID()
		award.HackathonID = hackathon.ID
		award.CreatedAt = now
		award.UpdatedAt = now
		s.awards[award.ID] = *award
	}

	for i := range hackathon.Criteria {
		criterion := &hackathon.Criteria[i]
		criterion.ID = s.nextID()
		criterion.HackathonID = hackathon.ID
		criterion.CreatedAt = now
		criterion.UpdatedAt = now
		s.criteria[criterion.ID] = *criterion
	}

	s.hackathons[hackathon.ID] = cloneHackathon(*hackathon)

	return nil
}

func (r *hackathonRepository) GetByID(ctx context.Context, id uint) (models.Hackathon, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	hackathon, ok := s.hackathons[id]
	if !ok {
		return models.Hackathon{}, repository.ErrNotFound
	}

	out := cloneHackathon(hackathon)
	out.Awards = out.Awards[:0]
	out.Criteria = out.Criteria[:0]
	for _, award := range s.awards {
		if award.HackathonID == id {
			out.Awards = append(out.Awards, award)
		}
	}
	sort.Slice(out.Awards, func(i, j int) bool { return out.Awards[i].Rank < out.Awards[j].Rank })
	for _, criterion := range s.criteria {
		if criterion.HackathonID == id {
			out.Criteria = append(out.Criteria, criterion)
		}
	}
	sort.Slice(out.Criteria, func(i, j int) bool {
		return out.Criteria[i].DisplayOrder < out.Criteria[j].DisplayOrder
	})

	return out, nil
}

func (r *hackathonRepository) List(ctx context.Context) ([]models.Hackathon, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	hackathons := make([]models.Hackathon, 0, len(s.hackathons))
	for _, hackathon := range s.hackathons {
		out := cloneHackathon(hackathon)
		out.Awards = nil
		out.Criteria = nil
		hackathons = append(hackathons, out)
	}
	sort.Slice(hackathons, func(i, j int) bool {
		return hackathons[i].StartDate.After(hackathons[j].StartDate)
	})

	return hackathons, nil
}

func (r *hackathonRepository) Update(ctx context.Context, hackathon *models.Hackathon) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.hackathons[hackathon.ID]
	if !ok {
		return repository.ErrNotFound
	}

	hackathon.CreatedAt = stored.CreatedAt
	hackathon.UpdatedAt = s.now()
	updated := cloneHackathon(*hackathon)
	// Awards and criteria live in their own maps, and the derived
	// participant_count and winners columns are owned by their own atomic
	// writes; none of them flow through a whole-row update, matching the
	// gorm Omit list.
	updated.Awards = nil
	updated.Criteria = nil
	updated.ParticipantCount = stored.ParticipantCount
	updated.Winners = stored.Winners
	s.hackathons[hackathon.ID] = updated

	return nil
}

func (r *hackathonRepository) IncrementParticipantCount(ctx context.Context, id uint) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	hackathon, ok := s.hackathons[id]
	if !ok {
		return repository.ErrNotFound
	}
	hackathon.ParticipantCount++
	hackathon.UpdatedAt = s.now()
	s.hackathons[id] = hackathon

	return nil
}

// replaceWinnersLocked overwrites the winners projection. Callers must hold
// the write lock.
func (s *Store) replaceWinnersLocked(id uint, winners []models.AwardWinner) error {
	hackathon, ok := s.hackathons[id]
	if !ok {
		return repository.ErrNotFound
	}
	hackathon.Winners = append(hackathon.Winners[:0:0], winners...)
	hackathon.UpdatedAt = s.now()
	s.hackathons[id] = hackathon

	return nil
}
