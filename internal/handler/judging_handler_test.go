package handler_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/hackpoint/hackpoint-api/internal/dto"
	"github.com/hackpoint/hackpoint-api/internal/models"
)

func TestJudgingHandlerFullFlow(t *testing.T) {
	app, _ := setupApp(t)
	hackathon := createHackathon(t, app)

	// Two participants submit projects.
	for i, project := range []string{"alpha", "beta"} {
		resp, env := doJSON(t, app, fiber.MethodPost, "/api/v1/participants", dto.ParticipantRegisterRequest{
			HackathonID: hackathon.ID,
			UserID:      uint(10 + i),
			ProjectID:   &project,
			ProjectName: &project,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var participant dto.ParticipantResponse
		decodeData(t, env, &participant)
		require.Equal(t, models.ParticipantStatusSubmitted, participant.Status)
	}

	// Host adds a judge.
	resp, env := doJSON(t, app, fiber.MethodPost, "/api/v1/judging/judges", dto.JudgeCreateRequest{
		HackathonID: hackathon.ID,
		UserID:      9,
		Name:        "Riley",
		Email:       "riley@example.com",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var judge dto.JudgeResponse
	decodeData(t, env, &judge)

	// The judge scores both projects on both criteria.
	values := map[string]map[string]float64{
		"alpha": {"Innovation": 90, "Execution": 80},
		"beta":  {"Innovation": 60, "Execution": 70},
	}
	for _, criterion := range hackathon.Criteria {
		for project, byName := range values {
			criterionID := criterion.ID
			resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/judging/scores", dto.ScoreSubmitRequest{
				HackathonID: hackathon.ID,
				ProjectID:   project,
				JudgeID:     judge.ID,
				CriterionID: &criterionID,
				Value:       byName[criterion.Name],
			})
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
		}
	}

	// The stored scores are listable per hackathon and per project.
	resp, env = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/v1/judging/scores?hackathon_id=%d", hackathon.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var allScores []dto.ScoreResponse
	decodeData(t, env, &allScores)
	require.Len(t, allScores, 4)

	resp, env = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/v1/judging/scores?hackathon_id=%d&project_id=alpha", hackathon.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var alphaScores []dto.ScoreResponse
	decodeData(t, env, &alphaScores)
	require.Len(t, alphaScores, 2)

	// Scoreboard ranks alpha first under the weighted criteria.
	resp, env = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/v1/hackathons/%d/scoreboard", hackathon.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var board dto.ScoreboardResponse
	decodeData(t, env, &board)
	require.Equal(t, dto.ScoreboardModeCriteria, board.Mode)
	require.Len(t, board.Entries, 2)
	require.Equal(t, "alpha", board.Entries[0].ProjectID)
	require.InDelta(t, 86.0, board.Entries[0].AverageScore, 1e-9)
	require.Equal(t, "beta", board.Entries[1].ProjectID)
	require.InDelta(t, 64.0, board.Entries[1].AverageScore, 1e-9)

	// Finalization assigns the single award and completes the event.
	resp, env = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/v1/hackathons/%d/finalize", hackathon.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var finalized dto.FinalizeResponse
	decodeData(t, env, &finalized)
	require.Equal(t, 1, finalized.AssignedCount)
	require.Equal(t, string(models.HackathonStatusCompleted), finalized.Status)
	require.Len(t, finalized.Winners, 1)
	require.Equal(t, "alpha", finalized.Winners[0].ProjectID)

	resp, env = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/v1/hackathons/%d", hackathon.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var completed dto.HackathonResponse
	decodeData(t, env, &completed)
	require.Equal(t, string(models.HackathonStatusCompleted), completed.Status)
	require.Len(t, completed.Winners, 1)
}

func TestJudgingHandlerDuplicateJudgeConflicts(t *testing.T) {
	app, _ := setupApp(t)
	hackathon := createHackathon(t, app)

	payload := dto.JudgeCreateRequest{
		HackathonID: hackathon.ID,
		UserID:      9,
		Name:        "Riley",
		Email:       "riley@example.com",
	}

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/judging/judges", payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, env := doJSON(t, app, fiber.MethodPost, "/api/v1/judging/judges", payload)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	require.Equal(t, "judge already added", env.Message)
}

func TestJudgingHandlerScoreUnknownJudge(t *testing.T) {
	app, _ := setupApp(t)
	hackathon := createHackathon(t, app)

	resp, env := doJSON(t, app, fiber.MethodPost, "/api/v1/judging/scores", dto.ScoreSubmitRequest{
		HackathonID: hackathon.ID,
		ProjectID:   "alpha",
		JudgeID:     99,
		Value:       50,
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.Equal(t, "judge not found", env.Message)
}

func TestInvitationHandlerRespondFlow(t *testing.T) {
	app, store := setupApp(t)
	hackathon := createHackathon(t, app)
	user := store.SeedUser(models.User{Name: "Dana", Email: "dana@example.com"})

	resp, env := doJSON(t, app, fiber.MethodPost, "/api/v1/invitations", dto.InvitationCreateRequest{
		HackathonID: hackathon.ID,
		Email:       "dana@example.com",
		Role:        models.InvitationRoleParticipant,
		InvitedBy:   1,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var invitation dto.InvitationResponse
	decodeData(t, env, &invitation)
	require.NotNil(t, invitation.UserID)
	require.Equal(t, user.ID, *invitation.UserID)

	resp, env = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/v1/invitations/%d/respond", invitation.ID), dto.InvitationRespondRequest{
		Status: models.InvitationStatusAccepted,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var resolved dto.InvitationResponse
	decodeData(t, env, &resolved)
	require.Equal(t, models.InvitationStatusAccepted, resolved.Status)

	// A second response loses the compare-and-swap.
	resp, env = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/v1/invitations/%d/respond", invitation.ID), dto.InvitationRespondRequest{
		Status: models.InvitationStatusDeclined,
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	require.Equal(t, "invitation already resolved", env.Message)

	// The acceptance registered Dana as a participant.
	resp, env = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/v1/participants?hackathon_id=%d", hackathon.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var participants []dto.ParticipantResponse
	decodeData(t, env, &participants)
	require.Len(t, participants, 1)
	require.Equal(t, user.ID, participants[0].UserID)
}

func TestParticipantHandlerSubmission(t *testing.T) {
	app, _ := setupApp(t)
	hackathon := createHackathon(t, app)

	resp, env := doJSON(t, app, fiber.MethodPost, "/api/v1/participants", dto.ParticipantRegisterRequest{
		HackathonID: hackathon.ID,
		UserID:      1,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var registered dto.ParticipantResponse
	decodeData(t, env, &registered)
	require.Equal(t, models.ParticipantStatusRegistered, registered.Status)

	project := "proj-1"
	name := "Orbital"
	resp, env = doJSON(t, app, fiber.MethodPatch, fmt.Sprintf("/api/v1/participants/%d/submission", registered.ID), dto.ParticipantSubmissionRequest{
		ProjectID:   &project,
		ProjectName: &name,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var submitted dto.ParticipantResponse
	decodeData(t, env, &submitted)
	require.Equal(t, models.ParticipantStatusSubmitted, submitted.Status)
	require.NotNil(t, submitted.SubmittedAt)

	// The stub auth context pins user 1, so /me resolves the same row.
	resp, env = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/v1/participants/me?hackathon_id=%d", hackathon.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var me dto.ParticipantResponse
	decodeData(t, env, &me)
	require.Equal(t, registered.ID, me.ID)
}
