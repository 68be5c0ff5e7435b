package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hackpoint/hackpoint-api/internal/models"
	"github.com/hackpoint/hackpoint-api/internal/repository"
)

func seedStoreHackathon(t *testing.T, store *Store) models.Hackathon {
	t.Helper()

	hackathon := models.Hackathon{
		Name:      "Concurrency Cup",
		StartDate: time.Now(),
		EndDate:   time.Now().Add(48 * time.Hour),
		HostID:    1,
		Status:    models.HackathonStatusActive,
	}
	require.NoError(t, NewHackathonRepository(store).Create(context.Background(), &hackathon))

	return hackathon
}

func TestResolveInvitationOnlyOneResponderWins(t *testing.T) {
	store := NewStore()
	hackathon := seedStoreHackathon(t, store)
	invitations := NewInvitationRepository(store)
	ctx := context.Background()

	invitation := models.Invitation{
		HackathonID: hackathon.ID,
		Email:       "dana@example.com",
		Role:        models.InvitationRoleParticipant,
		Status:      models.InvitationStatusPending,
		InvitedBy:   1,
	}
	require.NoError(t, invitations.Create(ctx, &invitation))

	const responders = 16
	var wg sync.WaitGroup
	results := make([]error, responders)
	for i := 0; i < responders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := models.InvitationStatusAccepted
			if i%2 == 1 {
				status = models.InvitationStatusDeclined
			}
			_, results[i] = invitations.Resolve(ctx, invitation.ID, status, nil, time.Now())
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, repository.ErrConflict):
		default:
			t.Fatalf("unexpected resolve error: %v", err)
		}
	}
	require.Equal(t, 1, winners)

	stored, err := invitations.GetByID(ctx, invitation.ID)
	require.NoError(t, err)
	require.False(t, stored.IsPending())
	require.NotNil(t, stored.RespondedAt)
}

func TestScoreUpsertConcurrentWritesKeepOneRow(t *testing.T) {
	store := NewStore()
	hackathon := seedStoreHackathon(t, store)
	scores := NewScoreRepository(store)
	ctx := context.Background()

	const writers = 16
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			score := models.Score{
				HackathonID: hackathon.ID,
				ProjectID:   "proj-1",
				JudgeID:     7,
				Value:       float64(i),
				SubmittedAt: time.Now(),
			}
			errs[i] = scores.Upsert(ctx, &score)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	stored, err := scores.ListByHackathon(ctx, hackathon.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestParticipantCreateEnforcesUniqueness(t *testing.T) {
	store := NewStore()
	hackathon := seedStoreHackathon(t, store)
	participants := NewParticipantRepository(store)
	ctx := context.Background()

	first := models.Participant{HackathonID: hackathon.ID, UserID: 3, Status: models.ParticipantStatusRegistered}
	require.NoError(t, participants.Create(ctx, &first))

	duplicate := models.Participant{HackathonID: hackathon.ID, UserID: 3, Status: models.ParticipantStatusRegistered}
	require.ErrorIs(t, participants.Create(ctx, &duplicate), repository.ErrConflict)
}

func TestHackathonUpdatePreservesDerivedState(t *testing.T) {
	store := NewStore()
	hackathon := seedStoreHackathon(t, store)
	hackathons := NewHackathonRepository(store)
	ctx := context.Background()

	stale, err := hackathons.GetByID(ctx, hackathon.ID)
	require.NoError(t, err)

	require.NoError(t, hackathons.IncrementParticipantCount(ctx, hackathon.ID))
	winners := []models.AwardWinner{{AwardID: 1, AwardName: "Grand Prize", Rank: 1, ProjectID: "proj-1", ProjectName: "Apex"}}
	store.mu.Lock()
	require.NoError(t, store.replaceWinnersLocked(hackathon.ID, winners))
	store.mu.Unlock()

	stale.Description = "edited from a stale snapshot"
	require.NoError(t, hackathons.Update(ctx, &stale))

	current, err := hackathons.GetByID(ctx, hackathon.ID)
	require.NoError(t, err)
	require.Equal(t, "edited from a stale snapshot", current.Description)
	require.Equal(t, 1, current.ParticipantCount)
	require.Len(t, current.Winners, 1)
	require.Equal(t, "Apex", current.Winners[0].ProjectName)
}

func TestFinalizeWinnersIsAtomic(t *testing.T) {
	store := NewStore()
	hackathon := seedStoreHackathon(t, store)
	awards := NewAwardRepository(store)
	hackathons := NewHackathonRepository(store)
	ctx := context.Background()

	award := models.Award{HackathonID: hackathon.ID, Name: "Grand Prize", Rank: 1}
	store.mu.Lock()
	award.ID = store.nextID()
	store.awards[award.ID] = award
	store.mu.Unlock()

	project := "proj-1"
	award.WinnerProjectID = &project
	award.WinnerProjectName = &project
	winners := []models.AwardWinner{{AwardID: award.ID, AwardName: award.Name, Rank: 1, ProjectID: project, ProjectName: project}}

	require.NoError(t, awards.FinalizeWinners(ctx, hackathon.ID, []models.Award{award}, winners))

	stored, err := hackathons.GetByID(ctx, hackathon.ID)
	require.NoError(t, err)
	require.Equal(t, models.HackathonStatusCompleted, stored.Status)
	require.Len(t, stored.Winners, 1)
	require.True(t, stored.Awards[0].HasWinner())

	require.ErrorIs(t, awards.FinalizeWinners(ctx, 42, nil, nil), repository.ErrNotFound)
}
