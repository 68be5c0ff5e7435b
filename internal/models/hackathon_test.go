package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHackathonStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		name    string
		from    HackathonStatus
		to      HackathonStatus
		allowed bool
	}{
		{"draft to upcoming", HackathonStatusDraft, HackathonStatusUpcoming, true},
		{"draft skips to active", HackathonStatusDraft, HackathonStatusActive, true},
		{"draft skips to completed", HackathonStatusDraft, HackathonStatusCompleted, true},
		{"active to judging", HackathonStatusActive, HackathonStatusJudging, true},
		{"judging to completed", HackathonStatusJudging, HackathonStatusCompleted, true},
		{"no self transition", HackathonStatusActive, HackathonStatusActive, false},
		{"completed cannot reopen", HackathonStatusCompleted, HackathonStatusActive, false},
		{"judging cannot go back", HackathonStatusJudging, HackathonStatusUpcoming, false},
		{"unknown target", HackathonStatusDraft, HackathonStatus("archived"), false},
		{"unknown source", HackathonStatus("archived"), HackathonStatusDraft, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestHackathonStatusIsValid(t *testing.T) {
	require.True(t, HackathonStatusDraft.IsValid())
	require.True(t, HackathonStatusCompleted.IsValid())
	require.False(t, HackathonStatus("archived").IsValid())
	require.False(t, HackathonStatus("").IsValid())
}

func TestAwardHasWinner(t *testing.T) {
	require.False(t, Award{}.HasWinner())

	empty := ""
	require.False(t, Award{WinnerProjectID: &empty}.HasWinner())

	project := "proj-1"
	require.True(t, Award{WinnerProjectID: &project}.HasWinner())
}

func TestParticipantHasProject(t *testing.T) {
	require.False(t, Participant{}.HasProject())

	name := "Orbital"
	require.True(t, Participant{ProjectName: &name}.HasProject())

	id := "proj-9"
	require.True(t, Participant{ProjectID: &id}.HasProject())
}
