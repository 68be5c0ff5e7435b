package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/hackpoint/hackpoint-api/internal/models"
	"github.com/hackpoint/hackpoint-api/internal/repository/memory"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// recordingNotifier captures emitted notifications for assertions.
type recordingNotifier struct {
	notifications []Notification
}

func (r *recordingNotifier) Notify(_ context.Context, notification Notification) {
	r.notifications = append(r.notifications, notification)
}

// recordingRooms captures room provisioning requests.
type recordingRooms struct {
	rooms []string
}

func (r *recordingRooms) EnsureRoom(_ context.Context, _ uint, name string) {
	r.rooms = append(r.rooms, name)
}

func seedHackathon(t *testing.T, store *memory.Store, hackathon models.Hackathon) models.Hackathon {
	t.Helper()

	if hackathon.Name == "" {
		hackathon.Name = "Spring Hack"
	}
	if hackathon.StartDate.IsZero() {
		hackathon.StartDate = time.Now().Add(24 * time.Hour)
	}
	if hackathon.EndDate.IsZero() {
		hackathon.EndDate = hackathon.StartDate.Add(48 * time.Hour)
	}
	if hackathon.HostID == 0 {
		hackathon.HostID = 1
	}
	if hackathon.Status == "" {
		hackathon.Status = models.HackathonStatusDraft
	}

	require.NoError(t, memory.NewHackathonRepository(store).Create(context.Background(), &hackathon))

	return hackathon
}

func strPtr(s string) *string { return &s }

func uintPtr(v uint) *uint { return &v }
