package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hackpoint/hackpoint-api/internal/dto"
	"github.com/hackpoint/hackpoint-api/internal/models"
	"github.com/hackpoint/hackpoint-api/internal/repository/memory"
)

func newParticipantFixture(t *testing.T) (*participantService, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	svc := NewParticipantService(
		memory.NewParticipantRepository(store),
		memory.NewHackathonRepository(store),
		testValidator(),
		testLogger(),
	).(*participantService)

	return svc, store
}

func TestParticipantServiceRegister(t *testing.T) {
	svc, store := newParticipantFixture(t)
	hackathon := seedHackathon(t, store, models.Hackathon{})
	ctx := context.Background()

	participant, err := svc.Register(ctx, dto.ParticipantRegisterRequest{
		HackathonID: hackathon.ID,
		UserID:      3,
		TeamName:    strPtr("Night Owls"),
	})
	require.NoError(t, err)
	require.Equal(t, models.ParticipantStatusRegistered, participant.Status)
	require.Nil(t, participant.SubmittedAt)

	updated, err := memory.NewHackathonRepository(store).GetByID(ctx, hackathon.ID)
	require.NoError(t, err)
	require.Equal(t, 1, updated.ParticipantCount)
}

func TestParticipantServiceRegisterUnknownHackathon(t *testing.T) {
	svc, _ := newParticipantFixture(t)

	_, err := svc.Register(context.Background(), dto.ParticipantRegisterRequest{HackathonID: 42, UserID: 3})
	require.ErrorIs(t, err, ErrHackathonNotFound)
}

func TestParticipantServiceRepeatRegistrationUpdatesInPlace(t *testing.T) {
	svc, store := newParticipantFixture(t)
	hackathon := seedHackathon(t, store, models.Hackathon{})
	ctx := context.Background()

	first, err := svc.Register(ctx, dto.ParticipantRegisterRequest{
		HackathonID: hackathon.ID,
		UserID:      3,
	})
	require.NoError(t, err)

	second, err := svc.Register(ctx, dto.ParticipantRegisterRequest{
		HackathonID: hackathon.ID,
		UserID:      3,
		ProjectName: strPtr("Orbital"),
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, models.ParticipantStatusSubmitted, second.Status)

	all, err := memory.NewParticipantRepository(store).ListByHackathon(ctx, hackathon.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)

	// The counter only moves on the first registration.
	updated, err := memory.NewHackathonRepository(store).GetByID(ctx, hackathon.ID)
	require.NoError(t, err)
	require.Equal(t, 1, updated.ParticipantCount)
}

func TestParticipantServiceSubmissionFlipsStatusOnce(t *testing.T) {
	svc, store := newParticipantFixture(t)
	hackathon := seedHackathon(t, store, models.Hackathon{})
	ctx := context.Background()

	firstStamp := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return firstStamp }

	registered, err := svc.Register(ctx, dto.ParticipantRegisterRequest{HackathonID: hackathon.ID, UserID: 3})
	require.NoError(t, err)

	submitted, err := svc.UpdateSubmission(ctx, registered.ID, dto.ParticipantSubmissionRequest{
		ProjectID:   strPtr("proj-1"),
		ProjectName: strPtr("Orbital"),
		RepoURL:     strPtr("https://git.example.com/orbital"),
	})
	require.NoError(t, err)
	require.Equal(t, models.ParticipantStatusSubmitted, submitted.Status)
	require.NotNil(t, submitted.SubmittedAt)
	require.True(t, submitted.SubmittedAt.Equal(firstStamp))

	// A later resubmission keeps the original timestamp.
	svc.now = func() time.Time { return firstStamp.Add(2 * time.Hour) }
	resubmitted, err := svc.UpdateSubmission(ctx, registered.ID, dto.ParticipantSubmissionRequest{
		ProjectName: strPtr("Orbital v2"),
	})
	require.NoError(t, err)
	require.Equal(t, "Orbital v2", *resubmitted.ProjectName)
	require.True(t, resubmitted.SubmittedAt.Equal(firstStamp))
}

func TestParticipantServiceSubmissionSanitizesPitch(t *testing.T) {
	svc, store := newParticipantFixture(t)
	hackathon := seedHackathon(t, store, models.Hackathon{})
	ctx := context.Background()

	registered, err := svc.Register(ctx, dto.ParticipantRegisterRequest{HackathonID: hackathon.ID, UserID: 3})
	require.NoError(t, err)

	updated, err := svc.UpdateSubmission(ctx, registered.ID, dto.ParticipantSubmissionRequest{
		PitchText: strPtr("<script>alert(1)</script>A planning tool for teams"),
	})
	require.NoError(t, err)
	require.Equal(t, "A planning tool for teams", updated.PitchText)
}

func TestParticipantServiceSubmissionMissing(t *testing.T) {
	svc, _ := newParticipantFixture(t)

	_, err := svc.UpdateSubmission(context.Background(), 42, dto.ParticipantSubmissionRequest{
		ProjectName: strPtr("Ghost"),
	})
	require.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestParticipantServiceGetByUser(t *testing.T) {
	svc, store := newParticipantFixture(t)
	hackathon := seedHackathon(t, store, models.Hackathon{})
	ctx := context.Background()

	_, err := svc.GetByUser(ctx, hackathon.ID, 3)
	require.ErrorIs(t, err, ErrParticipantNotFound)

	registered, err := svc.Register(ctx, dto.ParticipantRegisterRequest{HackathonID: hackathon.ID, UserID: 3})
	require.NoError(t, err)

	found, err := svc.GetByUser(ctx, hackathon.ID, 3)
	require.NoError(t, err)
	require.Equal(t, registered.ID, found.ID)
}
