package models

import "time"

// JudgeStatusAccepted is the only status a directly-added judge ever holds.
// Judges added by the host skip the invitation pending/accept flow.
const JudgeStatusAccepted = "accepted"

// Judge is a user admitted to score projects for a hackathon.
type Judge struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HackathonID uint      `gorm:"not null;uniqueIndex:idx_judge_hackathon_user" json:"hackathon_id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_judge_hackathon_user" json:"user_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Email       string    `gorm:"size:255;not null" json:"email"`
	AvatarURL   string    `gorm:"size:512" json:"avatar_url"`
	Status      string    `gorm:"size:32;not null" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
