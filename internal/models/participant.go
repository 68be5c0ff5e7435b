package models

import "time"

// Participant statuses.
const (
	// ParticipantStatusRegistered means the participant signed up but has not
	// attached a project yet.
	ParticipantStatusRegistered = "registered"
	// ParticipantStatusSubmitted means project identity has been set.
	ParticipantStatusSubmitted = "submitted"
)

// Participant is a team or individual registered for a hackathon, unique per
// (hackathon, user). Re-registration updates the existing row in place.
// Project identity references an externally managed project record, so the
// id is carried as an opaque string.
type Participant struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	HackathonID   uint       `gorm:"not null;uniqueIndex:idx_participant_hackathon_user" json:"hackathon_id"`
	UserID        uint       `gorm:"not null;uniqueIndex:idx_participant_hackathon_user" json:"user_id"`
	ProjectID     *string    `gorm:"size:64;index" json:"project_id"`
	ProjectName   *string    `gorm:"size:255" json:"project_name"`
	TeamName      *string    `gorm:"size:255" json:"team_name"`
	Status        string     `gorm:"size:32;not null" json:"status"`
	InvitationID  *uint      `json:"invitation_id"`
	PitchText     string     `gorm:"type:text" json:"pitch_text"`
	RepoURL       string     `gorm:"size:512" json:"repo_url"`
	DemoURL       string     `gorm:"size:512" json:"demo_url"`
	AttachmentURL string     `gorm:"size:512" json:"attachment_url"`
	SubmittedAt   *time.Time `json:"submitted_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// HasProject reports whether the participant has attached project identity.
func (p Participant) HasProject() bool {
	return (p.ProjectID != nil && *p.ProjectID != "") || (p.ProjectName != nil && *p.ProjectName != "")
}
