package models

import "time"

// Invitation roles.
const (
	// InvitationRoleParticipant invites the recipient to compete.
	InvitationRoleParticipant = "participant"
	// InvitationRoleJudge invites the recipient to join the judge panel.
	InvitationRoleJudge = "judge"
)

// Invitation statuses. An invitation moves out of pending exactly once.
const (
	InvitationStatusPending  = "pending"
	InvitationStatusAccepted = "accepted"
	InvitationStatusDeclined = "declined"
)

// Invitation records an offer to participate in or judge a hackathon.
// Invitations are never deleted; responding is a one-shot transition
// guarded by a compare-and-swap on the pending status.
type Invitation struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	HackathonID uint       `gorm:"not null;index" json:"hackathon_id"`
	Email       string     `gorm:"size:255;not null;index" json:"email"`
	UserID      *uint      `gorm:"index" json:"user_id"`
	Role        string     `gorm:"size:32;not null" json:"role"`
	Status      string     `gorm:"size:32;not null" json:"status"`
	InvitedBy   uint       `gorm:"not null" json:"invited_by"`
	RespondedAt *time.Time `json:"responded_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsPending reports whether the invitation can still be responded to.
func (i Invitation) IsPending() bool {
	return i.Status == InvitationStatusPending
}
