package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hackpoint/hackpoint-api/internal/dto"
	"github.com/hackpoint/hackpoint-api/internal/models"
	"github.com/hackpoint/hackpoint-api/internal/repository/memory"
)

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate(_ context.Context, _ uint) {
	c.calls++
}

func newJudgingFixture(t *testing.T) (JudgingService, *memory.Store, *countingInvalidator) {
	t.Helper()

	store := memory.NewStore()
	invalidator := &countingInvalidator{}
	svc := NewJudgingService(
		memory.NewJudgeRepository(store),
		memory.NewScoreRepository(store),
		memory.NewCriterionRepository(store),
		memory.NewHackathonRepository(store),
		invalidator,
		testValidator(),
		testLogger(),
	)

	return svc, store, invalidator
}

func addJudge(t *testing.T, svc JudgingService, hackathonID, userID uint) dto.JudgeResponse {
	t.Helper()

	judge, err := svc.AddJudge(context.Background(), dto.JudgeCreateRequest{
		HackathonID: hackathonID,
		UserID:      userID,
		Name:        "Riley",
		Email:       "riley@example.com",
	})
	require.NoError(t, err)

	return judge
}

func TestJudgingServiceAddJudge(t *testing.T) {
	svc, store, _ := newJudgingFixture(t)
	hackathon := seedHackathon(t, store, models.Hackathon{})

	judge, err := svc.AddJudge(context.Background(), dto.JudgeCreateRequest{
		HackathonID: hackathon.ID,
		UserID:      9,
		Name:        "Riley",
		Email:       "  Riley@Example.com ",
	})
	require.NoError(t, err)
	require.Equal(t, "riley@example.com", judge.Email)
	require.Equal(t, models.JudgeStatusAccepted, judge.Status)
}

func TestJudgingServiceAddJudgeTwiceConflicts(t *testing.T) {
	svc, store, _ := newJudgingFixture(t)
	hackathon := seedHackathon(t, store, models.Hackathon{})

	addJudge(t, svc, hackathon.ID, 9)

	_, err := svc.AddJudge(context.Background(), dto.JudgeCreateRequest{
		HackathonID: hackathon.ID,
		UserID:      9,
		Name:        "Riley",
		Email:       "riley@example.com",
	})
	require.ErrorIs(t, err, ErrJudgeAlreadyAdded)
}

func TestJudgingServiceAddJudgeUnknownHackathon(t *testing.T) {
	svc, _, _ := newJudgingFixture(t)

	_, err := svc.AddJudge(context.Background(), dto.JudgeCreateRequest{
		HackathonID: 42,
		UserID:      9,
		Name:        "Riley",
		Email:       "riley@example.com",
	})
	require.ErrorIs(t, err, ErrHackathonNotFound)
}

func TestJudgingServiceSubmitScoreUpserts(t *testing.T) {
	svc, store, invalidator := newJudgingFixture(t)
	hackathon := seedHackathon(t, store, models.Hackathon{
		Criteria: []models.JudgingCriterion{{Name: "Innovation", Weight: 100}},
	})
	judge := addJudge(t, svc, hackathon.ID, 9)
	ctx := context.Background()

	criteria, err := memory.NewCriterionRepository(store).ListByHackathon(ctx, hackathon.ID)
	require.NoError(t, err)
	require.Len(t, criteria, 1)
	criterionID := criteria[0].ID

	first, err := svc.SubmitScore(ctx, dto.ScoreSubmitRequest{
		HackathonID: hackathon.ID,
		ProjectID:   "proj-1",
		JudgeID:     judge.ID,
		CriterionID: &criterionID,
		Value:       62,
	})
	require.NoError(t, err)

	second, err := svc.SubmitScore(ctx, dto.ScoreSubmitRequest{
		HackathonID: hackathon.ID,
		ProjectID:   "proj-1",
		JudgeID:     judge.ID,
		CriterionID: &criterionID,
		Value:       88,
		Feedback:    "much improved",
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 88.0, second.Value)

	stored, err := memory.NewScoreRepository(store).ListByHackathon(ctx, hackathon.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, 88.0, stored[0].Value)

	require.Equal(t, 2, invalidator.calls)
}

func TestJudgingServiceSubmitScoreOverallAndCriterionCoexist(t *testing.T) {
	svc, store, _ := newJudgingFixture(t)
	hackathon := seedHackathon(t, store, models.Hackathon{
		Criteria: []models.JudgingCriterion{{Name: "Innovation", Weight: 100}},
	})
	judge := addJudge(t, svc, hackathon.ID, 9)
	ctx := context.Background()

	criteria, err := memory.NewCriterionRepository(store).ListByHackathon(ctx, hackathon.ID)
	require.NoError(t, err)
	criterionID := criteria[0].ID

	_, err = svc.SubmitScore(ctx, dto.ScoreSubmitRequest{
		HackathonID: hackathon.ID,
		ProjectID:   "proj-1",
		JudgeID:     judge.ID,
		CriterionID: &criterionID,
		Value:       70,
	})
	require.NoError(t, err)

	_, err = svc.SubmitScore(ctx, dto.ScoreSubmitRequest{
		HackathonID: hackathon.ID,
		ProjectID:   "proj-1",
		JudgeID:     judge.ID,
		Value:       90,
	})
	require.NoError(t, err)

	stored, err := memory.NewScoreRepository(store).ListByHackathon(ctx, hackathon.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
}

func TestJudgingServiceListScoresFiltersByProject(t *testing.T) {
	svc, store, _ := newJudgingFixture(t)
	hackathon := seedHackathon(t, store, models.Hackathon{})
	judge := addJudge(t, svc, hackathon.ID, 9)
	ctx := context.Background()

	for _, project := range []string{"proj-1", "proj-1", "proj-2"} {
		_, err := svc.SubmitScore(ctx, dto.ScoreSubmitRequest{
			HackathonID: hackathon.ID,
			ProjectID:   project,
			JudgeID:     judge.ID,
			Value:       75,
		})
		require.NoError(t, err)
	}

	all, err := svc.ListScores(ctx, hackathon.ID, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	narrowed, err := svc.ListScores(ctx, hackathon.ID, "proj-2")
	require.NoError(t, err)
	require.Len(t, narrowed, 1)
	require.Equal(t, "proj-2", narrowed[0].ProjectID)

	_, err = svc.ListScores(ctx, 42, "")
	require.ErrorIs(t, err, ErrHackathonNotFound)
}

func TestJudgingServiceSubmitScoreRejectsForeignJudge(t *testing.T) {
	svc, store, _ := newJudgingFixture(t)
	first := seedHackathon(t, store, models.Hackathon{Name: "First"})
	second := seedHackathon(t, store, models.Hackathon{Name: "Second"})
	judge := addJudge(t, svc, first.ID, 9)

	_, err := svc.SubmitScore(context.Background(), dto.ScoreSubmitRequest{
		HackathonID: second.ID,
		ProjectID:   "proj-1",
		JudgeID:     judge.ID,
		Value:       50,
	})
	require.ErrorIs(t, err, ErrJudgeNotFound)
}

func TestJudgingServiceSubmitScoreRejectsForeignCriterion(t *testing.T) {
	svc, store, _ := newJudgingFixture(t)
	hackathon := seedHackathon(t, store, models.Hackathon{})
	judge := addJudge(t, svc, hackathon.ID, 9)

	foreign := uint(999)
	_, err := svc.SubmitScore(context.Background(), dto.ScoreSubmitRequest{
		HackathonID: hackathon.ID,
		ProjectID:   "proj-1",
		JudgeID:     judge.ID,
		CriterionID: &foreign,
		Value:       50,
	})
	require.ErrorIs(t, err, ErrCriterionNotFound)
}

func TestJudgingServiceSubmitScoreRejectsOutOfRange(t *testing.T) {
	svc, store, _ := newJudgingFixture(t)
	hackathon := seedHackathon(t, store, models.Hackathon{})
	judge := addJudge(t, svc, hackathon.ID, 9)

	_, err := svc.SubmitScore(context.Background(), dto.ScoreSubmitRequest{
		HackathonID: hackathon.ID,
		ProjectID:   "proj-1",
		JudgeID:     judge.ID,
		Value:       120,
	})
	require.Error(t, err)
}
