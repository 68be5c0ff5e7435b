package dto

import (
	"time"

	"github.com/hackpoint/hackpoint-api/internal/models"
)

// ParticipantRegisterRequest registers a user for a hackathon. Supplying
// project identity at registration time submits the project immediately.
type ParticipantRegisterRequest struct {
	HackathonID  uint    `json:"hackathon_id" validate:"required,gt=0"`
	UserID       uint    `json:"user_id" validate:"required,gt=0"`
	ProjectID    *string `json:"project_id" validate:"omitempty,max=64"`
	ProjectName  *string `json:"project_name" validate:"omitempty,max=255"`
	TeamName     *string `json:"team_name" validate:"omitempty,max=255"`
	InvitationID *uint   `json:"invitation_id" validate:"omitempty,gt=0"`
}

// ParticipantSubmissionRequest updates a participant's project submission.
// Setting project identity flips the participant to submitted; touching
// only secondary fields leaves the status alone.
type ParticipantSubmissionRequest struct {
	ProjectID     *string `json:"project_id" validate:"omitempty,max=64"`
	ProjectName   *string `json:"project_name" validate:"omitempty,max=255"`
	TeamName      *string `json:"team_name" validate:"omitempty,max=255"`
	PitchText     *string `json:"pitch_text"`
	RepoURL       *string `json:"repo_url" validate:"omitempty,url,max=512"`
	DemoURL       *string `json:"demo_url" validate:"omitempty,url,max=512"`
	AttachmentURL *string `json:"attachment_url" validate:"omitempty,url,max=512"`
}

// ParticipantResponse serializes a participant.
type ParticipantResponse struct {
	ID            uint       `json:"id"`
	HackathonID   uint       `json:"hackathon_id"`
	UserID        uint       `json:"user_id"`
	ProjectID     *string    `json:"project_id"`
	ProjectName   *string    `json:"project_name"`
	TeamName      *string    `json:"team_name"`
	Status        string     `json:"status"`
	InvitationID  *uint      `json:"invitation_id"`
	PitchText     string     `json:"pitch_text"`
	RepoURL       string     `json:"repo_url"`
	DemoURL       string     `json:"demo_url"`
	AttachmentURL string     `json:"attachment_url"`
	SubmittedAt   *time.Time `json:"submitted_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewParticipantResponse converts a Participant model into a DTO.
func NewParticipantResponse(model models.Participant) ParticipantResponse {
	return ParticipantResponse{
		ID:            model.ID,
		HackathonID:   model.HackathonID,
		UserID:        model.UserID,
		ProjectID:     model.ProjectID,
		ProjectName:   model.ProjectName,
		TeamName:      model.TeamName,
		Status:        model.Status,
		InvitationID:  model.InvitationID,
		PitchText:     model.PitchText,
		RepoURL:       model.RepoURL,
		DemoURL:       model.DemoURL,
		AttachmentURL: model.AttachmentURL,
		SubmittedAt:   model.SubmittedAt,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// NewParticipantResponseSlice converts participant models into DTOs.
func NewParticipantResponseSlice(models []models.Participant) []ParticipantResponse {
	responses := make([]ParticipantResponse, 0, len(models))
	for _, participant := range models {
		responses = append(responses, NewParticipantResponse(participant))
	}

	return responses
}
