package models

import "time"

// Score is a single judge's rating of a project, optionally against one
// criterion. A nil CriterionID means an "overall" score, used when the
// hackathon defines no criteria. Scores are unique per (hackathon, project,
// judge, criterion); a repeated submission overwrites the previous value
// rather than appending a new row. The identity index is declared in
// database.Migrate as an expression index so that two NULL criterion ids
// collide like any other key.
type Score struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HackathonID uint      `gorm:"not null;index" json:"hackathon_id"`
	ProjectID   string    `gorm:"size:64;not null" json:"project_id"`
	JudgeID     uint      `gorm:"not null" json:"judge_id"`
	CriterionID *uint     `json:"criterion_id"`
	Value       float64   `gorm:"not null" json:"value"`
	Feedback    string    `gorm:"type:text" json:"feedback"`
	SubmittedAt time.Time `gorm:"not null" json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsOverall reports whether the score is a criterion-less overall rating.
func (s Score) IsOverall() bool {
	return s.CriterionID == nil
}
