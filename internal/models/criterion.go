package models

import "time"

// JudgingCriterion is a weighted dimension judges score projects against.
// Weights are expressed in percent; a hackathon whose criteria weights all
// sum to zero falls back to overall scoring.
type JudgingCriterion struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	HackathonID  uint      `gorm:"not null;index" json:"hackathon_id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Weight       int       `gorm:"not null" json:"weight"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
