package models

import "time"

// Award is a prize configured at hackathon creation time. Rank 1 is the top
// prize. Winner fields are written only by finalization or an explicit manual
// assignment.
type Award struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	HackathonID       uint      `gorm:"not null;index" json:"hackathon_id"`
	Name              string    `gorm:"size:255;not null" json:"name"`
	Rank              int       `gorm:"not null" json:"rank"`
	Prize             string    `gorm:"size:512" json:"prize"`
	WinnerProjectID   *string   `gorm:"size:64" json:"winner_project_id"`
	WinnerProjectName *string   `gorm:"size:255" json:"winner_project_name"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// HasWinner reports whether the award already carries an assigned project.
func (a Award) HasWinner() bool {
	return a.WinnerProjectID != nil && *a.WinnerProjectID != ""
}
