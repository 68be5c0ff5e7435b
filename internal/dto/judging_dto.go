package dto

import (
	"time"

	"github.com/hackpoint/hackpoint-api/internal/models"
)

// JudgeCreateRequest admits a judge to a hackathon panel directly, without
// the invitation flow.
type JudgeCreateRequest struct {
	HackathonID uint   `json:"hackathon_id" validate:"required,gt=0"`
	UserID      uint   `json:"user_id" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Email       string `json:"email" validate:"required,email"`
	AvatarURL   string `json:"avatar_url" validate:"omitempty,url,max=512"`
}

// ScoreSubmitRequest records a judge's score for a project. A nil criterion
// id means an overall score, valid only for hackathons without criteria.
type ScoreSubmitRequest struct {
	HackathonID uint    `json:"hackathon_id" validate:"required,gt=0"`
	ProjectID   string  `json:"project_id" validate:"required,max=64"`
	JudgeID     uint    `json:"judge_id" validate:"required,gt=0"`
	CriterionID *uint   `json:"criterion_id" validate:"omitempty,gt=0"`
	Value       float64 `json:"value" validate:"gte=0,lte=100"`
	Feedback    string  `json:"feedback" validate:"omitempty,max=4000"`
}

// JudgeResponse serializes a judge.
type JudgeResponse struct {
	ID          uint      `json:"id"`
	HackathonID uint      `json:"hackathon_id"`
	UserID      uint      `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	AvatarURL   string    `json:"avatar_url"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ScoreResponse serializes a stored score.
type ScoreResponse struct {
	ID          uint      `json:"id"`
	HackathonID uint      `json:"hackathon_id"`
	ProjectID   string    `json:"project_id"`
	JudgeID     uint      `json:"judge_id"`
	CriterionID *uint     `json:"criterion_id"`
	Value       float64   `json:"value"`
	Feedback    string    `json:"feedback"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewJudgeResponse converts a Judge model into a DTO.
func NewJudgeResponse(model models.Judge) JudgeResponse {
	return JudgeResponse{
		ID:          model.ID,
		HackathonID: model.HackathonID,
		UserID:      model.UserID,
		Name:        model.Name,
		Email:       model.Email,
		AvatarURL:   model.AvatarURL,
		Status:      model.Status,
		CreatedAt:   model.CreatedAt,
	}
}

// NewJudgeResponseSlice converts judge models into DTOs.
func NewJudgeResponseSlice(models []models.Judge) []JudgeResponse {
	responses := make([]JudgeResponse, 0, len(models))
	for _, judge := range models {
		responses = append(responses, NewJudgeResponse(judge))
	}

	return responses
}

// NewScoreResponseSlice converts score models into DTOs.
func NewScoreResponseSlice(models []models.Score) []ScoreResponse {
	responses := make([]ScoreResponse, 0, len(models))
	for _, score := range models {
		responses = append(responses, NewScoreResponse(score))
	}

	return responses
}

// NewScoreResponse converts a Score model into a DTO.
func NewScoreResponse(model models.Score) ScoreResponse {
	return ScoreResponse{
		ID:          model.ID,
		HackathonID: model.HackathonID,
		ProjectID:   model.ProjectID,
		JudgeID:     model.JudgeID,
		CriterionID: model.CriterionID,
		Value:       model.Value,
		Feedback:    model.Feedback,
		SubmittedAt: model.SubmittedAt,
	}
}
