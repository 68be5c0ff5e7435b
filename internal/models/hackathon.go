package models

import (
	"time"

	"gorm.io/datatypes"
)

// HackathonStatus enumerates the lifecycle states of a hackathon.
type HackathonStatus string

const (
	// HackathonStatusDraft is the initial state after creation.
	HackathonStatusDraft HackathonStatus = "draft"
	// HackathonStatusUpcoming means the event is published but not started.
	HackathonStatusUpcoming HackathonStatus = "upcoming"
	// HackathonStatusActive means the event is running and accepting submissions.
	HackathonStatusActive HackathonStatus = "active"
	// HackathonStatusJudging means submissions are closed and judges are scoring.
	HackathonStatusJudging HackathonStatus = "judging"
	// HackathonStatusCompleted is the terminal state set by finalization.
	HackathonStatusCompleted HackathonStatus = "completed"
)

var statusOrder = map[HackathonStatus]int{
	HackathonStatusDraft:     0,
	HackathonStatusUpcoming:  1,
	HackathonStatusActive:    2,
	HackathonStatusJudging:   3,
	HackathonStatusCompleted: 4,
}

// IsValid reports whether the status is a known lifecycle state.
func (s HackathonStatus) IsValid() bool {
	_, ok := statusOrder[s]
	return ok
}

// CanTransitionTo reports whether moving to next is a legal lifecycle step.
// Transitions are forward-only; skipping states is allowed, going back is not.
func (s HackathonStatus) CanTransitionTo(next HackathonStatus) bool {
	current, ok := statusOrder[s]
	if !ok {
		return false
	}
	target, ok := statusOrder[next]
	if !ok {
		return false
	}
	return target > current
}

// Sponsor describes a sponsoring organisation attached to a hackathon.
type Sponsor struct {
	Name string `json:"name"`
	Tier string `json:"tier"`
}

// AwardWinner is one entry of the derived winners projection on a hackathon.
// The projection is always rebuilt as a whole from the awards that currently
// carry an assigned project.
type AwardWinner struct {
	AwardID     uint   `json:"award_id"`
	AwardName   string `json:"award_name"`
	Rank        int    `json:"rank"`
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`
}

// Hackathon represents a competitive project event owned by a host.
type Hackathon struct {
	ID               uint                              `gorm:"primaryKey" json:"id"`
	Name             string                            `gorm:"size:255;not null" json:"name"`
	Description      string                            `gorm:"type:text" json:"description"`
	StartDate        time.Time                         `gorm:"not null" json:"start_date"`
	EndDate          time.Time                         `gorm:"not null" json:"end_date"`
	Location         string                            `gorm:"size:255" json:"location"`
	HostID           uint                              `gorm:"not null;index" json:"host_id"`
	Sponsors         datatypes.JSONSlice[Sponsor]      `json:"sponsors"`
	Status           HackathonStatus                   `gorm:"size:32;not null" json:"status"`
	ParticipantCount int                               `gorm:"not null;default:0" json:"participant_count"`
	Winners          datatypes.JSONSlice[AwardWinner]  `json:"winners"`
	CreatedAt        time.Time                         `json:"created_at"`
	UpdatedAt        time.Time                         `json:"updated_at"`
	Awards           []Award                           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"awards"`
	Criteria         []JudgingCriterion                `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"criteria"`
}
