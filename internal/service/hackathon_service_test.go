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

func newHackathonFixture(t *testing.T) (HackathonService, *memory.Store, *recordingRooms) {
	t.Helper()

	store := memory.NewStore()
	rooms := &recordingRooms{}
	svc := NewHackathonService(memory.NewHackathonRepository(store), rooms, testValidator(), testLogger())

	return svc, store, rooms
}

func TestHackathonServiceCreateWithChildren(t *testing.T) {
	svc, _, rooms := newHackathonFixture(t)

	start := time.Now().Add(24 * time.Hour)
	created, err := svc.Create(context.Background(), dto.HackathonCreateRequest{
		Name:      "Winter Hack",
		StartDate: start,
		EndDate:   start.Add(48 * time.Hour),
		HostID:    7,
		Sponsors:  []dto.SponsorPayload{{Name: "Initech", Tier: "gold"}},
		Awards: []dto.AwardPayload{
			{Name: "Grand Prize", Rank: 1, Prize: "$5000"},
			{Name: "Runner Up", Rank: 2, Prize: "$1000"},
		},
		Criteria: []dto.CriterionPayload{
			{Name: "Innovation", Weight: 60},
			{Name: "Execution", Weight: 40},
		},
	})
	require.NoError(t, err)
	require.Equal(t, string(models.HackathonStatusDraft), created.Status)
	require.Len(t, created.Awards, 2)
	require.Len(t, created.Criteria, 2)
	require.Len(t, created.Sponsors, 1)
	require.Equal(t, []string{"Winter Hack"}, rooms.rooms)

	fetched, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Awards, 2)
	require.Equal(t, "Grand Prize", fetched.Awards[0].Name)
}

func TestHackathonServiceCreateRejectsEndBeforeStart(t *testing.T) {
	svc, _, _ := newHackathonFixture(t)

	start := time.Now().Add(24 * time.Hour)
	_, err := svc.Create(context.Background(), dto.HackathonCreateRequest{
		Name:      "Backwards",
		StartDate: start,
		EndDate:   start.Add(-time.Hour),
		HostID:    1,
	})
	require.Error(t, err)
}

func TestHackathonServiceUpdateStatusForwardOnly(t *testing.T) {
	svc, store, _ := newHackathonFixture(t)
	hackathon := seedHackathon(t, store, models.Hackathon{Status: models.HackathonStatusActive})
	ctx := context.Background()

	// Skipping judging straight to completed is allowed.
	completed := string(models.HackathonStatusCompleted)
	updated, err := svc.Update(ctx, hackathon.ID, dto.HackathonUpdateRequest{Status: &completed})
	require.NoError(t, err)
	require.Equal(t, completed, updated.Status)

	// Going back is not.
	active := string(models.HackathonStatusActive)
	_, err = svc.Update(ctx, hackathon.ID, dto.HackathonUpdateRequest{Status: &active})
	require.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestHackathonServiceUpdateSameStatusIsNoop(t *testing.T) {
	svc, store, _ := newHackathonFixture(t)
	hackathon := seedHackathon(t, store, models.Hackathon{Status: models.HackathonStatusJudging})

	judging := string(models.HackathonStatusJudging)
	updated, err := svc.Update(context.Background(), hackathon.ID, dto.HackathonUpdateRequest{Status: &judging})
	require.NoError(t, err)
	require.Equal(t, judging, updated.Status)
}

func TestHackathonServiceUpdateMissing(t *testing.T) {
	svc, _, _ := newHackathonFixture(t)

	name := "Renamed"
	_, err := svc.Update(context.Background(), 42, dto.HackathonUpdateRequest{Name: &name})
	require.ErrorIs(t, err, ErrHackathonNotFound)
}

func TestHackathonServiceList(t *testing.T) {
	svc, store, _ := newHackathonFixture(t)
	seedHackathon(t, store, models.Hackathon{Name: "First"})
	seedHackathon(t, store, models.Hackathon{Name: "Second", StartDate: time.Now().Add(72 * time.Hour)})

	hackathons, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, hackathons, 2)
}
