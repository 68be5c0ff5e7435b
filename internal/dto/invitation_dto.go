package dto

import (
	"time"

	"github.com/hackpoint/hackpoint-api/internal/models"
)

// InvitationCreateRequest describes the payload for inviting a participant
// or judge by email.
type InvitationCreateRequest struct {
	HackathonID uint   `json:"hackathon_id" validate:"required,gt=0"`
	Email       string `json:"email" validate:"required,email"`
	Role        string `json:"role" validate:"required,oneof=participant judge"`
	InvitedBy   uint   `json:"invited_by" validate:"required,gt=0"`
}

// InvitationRespondRequest accepts or declines a pending invitation.
type InvitationRespondRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined"`
	UserID *uint  `json:"user_id" validate:"omitempty,gt=0"`
}

// InvitationResponse serializes an invitation.
type InvitationResponse struct {
	ID          uint       `json:"id"`
	HackathonID uint       `json:"hackathon_id"`
	Email       string     `json:"email"`
	UserID      *uint      `json:"user_id"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	InvitedBy   uint       `json:"invited_by"`
	RespondedAt *time.Time `json:"responded_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewInvitationResponse converts an Invitation model into a DTO.
func NewInvitationResponse(model models.Invitation) InvitationResponse {
	return InvitationResponse{
		ID:          model.ID,
		HackathonID: model.HackathonID,
		Email:       model.Email,
		UserID:      model.UserID,
		Role:        model.Role,
		Status:      model.Status,
		InvitedBy:   model.InvitedBy,
		RespondedAt: model.RespondedAt,
		CreatedAt:   model.CreatedAt,
	}
}

// NewInvitationResponseSlice converts invitation models into DTOs.
func NewInvitationResponseSlice(models []models.Invitation) []InvitationResponse {
	responses := make([]InvitationResponse, 0, len(models))
	for _, invitation := range models {
		responses = append(responses, NewInvitationResponse(invitation))
	}

	return responses
}
