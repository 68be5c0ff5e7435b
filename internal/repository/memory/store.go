// Package memory provides an in-process storage backend implementing the
// repository interfaces. It is selected at startup when no database is
// configured and mirrors the behaviour of the gorm backend, including the
// compare-and-swap and atomic finalization guarantees, using a store-wide
// mutex instead of database transactions.
package memory

import (
	"sync"
	"time"

	"github.com/hackpoint/hackpoint-api/internal/models"
)

// Store is the shared state behind all in-memory repositories.
type Store struct {
	mu           sync.RWMutex
	hackathons   map[uint]models.Hackathon
	awards       map[uint]models.Award
	criteria     map[uint]models.JudgingCriterion
	invitations  map[uint]models.Invitation
	participants map[uint]models.Participant
	judges       map[uint]models.Judge
	scores       map[uint]models.Score
	users        map[uint]models.User
	lastID       uint
	now          func() time.Time
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		hackathons:   make(map[uint]models.Hackathon),
		awards:       make(map[uint]models.Award),
		criteria:     make(map[uint]models.JudgingCriterion),
		invitations:  make(map[uint]models.Invitation),
		participants: make(map[uint]models.Participant),
		judges:       make(map[uint]models.Judge),
		scores:       make(map[uint]models.Score),
		users:        make(map[uint]models.User),
		now:          time.Now,
	}
}

// nextID allocates a new identifier. Callers must hold the write lock.
func (s *Store) nextID() uint {
	s.lastID++
	return s.lastID
}

// SeedUser inserts a user into the directory, used at startup and in tests.
func (s *Store) SeedUser(user models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == 0 {
		user.ID = s.nextID()
	} else if user.ID > s.lastID {
		s.lastID = user.ID
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now()
	}
	user.UpdatedAt = s.now()
	s.users[user.ID] = user

	return user
}

func cloneHackathon(h models.Hackathon) models.Hackathon {
	out := h
	out.Sponsors = append(out.Sponsors[:0:0], h.Sponsors...)
	out.Winners = append(out.Winners[:0:0], h.Winners...)
	out.Awards = append(out.Awards[:0:0], h.Awards...)
	out.Criteria = append(out.Criteria[:0:0], h.Criteria...)
	return out
}
