package dto

import (
	"time"

	"github.com/hackpoint/hackpoint-api/internal/models"
)

// SponsorPayload is one sponsoring organisation in a create request.
type SponsorPayload struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
	Tier string `json:"tier" validate:"omitempty,max=64"`
}

// AwardPayload configures one award at hackathon creation time.
type AwardPayload struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Rank  int    `json:"rank" validate:"required,gt=0"`
	Prize string `json:"prize" validate:"omitempty,max=512"`
}

// CriterionPayload configures one judging criterion at creation time.
type CriterionPayload struct {
	Name         string `json:"name" validate:"required,min=1,max=255"`
	Weight       int    `json:"weight" validate:"gte=0,lte=100"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}

// HackathonCreateRequest describes the payload for creating a hackathon
// together with its awards and criteria.
type HackathonCreateRequest struct {
	Name        string             `json:"name" validate:"required,min=3,max=255"`
	Description string             `json:"description" validate:"omitempty"`
	StartDate   time.Time          `json:"start_date" validate:"required"`
	EndDate     time.Time          `json:"end_date" validate:"required,gtfield=StartDate"`
	Location    string             `json:"location" validate:"omitempty,max=255"`
	HostID      uint               `json:"host_id" validate:"required,gt=0"`
	Sponsors    []SponsorPayload   `json:"sponsors" validate:"omitempty,dive"`
	Awards      []AwardPayload     `json:"awards" validate:"omitempty,dive"`
	Criteria    []CriterionPayload `json:"criteria" validate:"omitempty,dive"`
}

// HackathonUpdateRequest describes a partial hackathon update. A status
// change goes through lifecycle transition validation.
type HackathonUpdateRequest struct {
	Name        *string           `json:"name" validate:"omitempty,min=3,max=255"`
	Description *string           `json:"description"`
	StartDate   *time.Time        `json:"start_date"`
	EndDate     *time.Time        `json:"end_date"`
	Location    *string           `json:"location" validate:"omitempty,max=255"`
	Sponsors    *[]SponsorPayload `json:"sponsors" validate:"omitempty,dive"`
	Status      *string           `json:"status" validate:"omitempty,oneof=draft upcoming active judging completed"`
}

// AwardResponse serializes an award.
type AwardResponse struct {
	ID                uint    `json:"id"`
	HackathonID       uint    `json:"hackathon_id"`
	Name              string  `json:"name"`
	Rank              int     `json:"rank"`
	Prize             string  `json:"prize"`
	WinnerProjectID   *string `json:"winner_project_id"`
	WinnerProjectName *string `json:"winner_project_name"`
}

// CriterionResponse serializes a judging criterion.
type CriterionResponse struct {
	ID           uint   `json:"id"`
	HackathonID  uint   `json:"hackathon_id"`
	Name         string `json:"name"`
	Weight       int    `json:"weight"`
	DisplayOrder int    `json:"display_order"`
}

// WinnerResponse serializes one entry of the winners projection.
type WinnerResponse struct {
	AwardID     uint   `json:"award_id"`
	AwardName   string `json:"award_name"`
	Rank        int    `json:"rank"`
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`
}

// HackathonResponse is the full hackathon view returned to API clients.
type HackathonResponse struct {
	ID               uint                `json:"id"`
	Name             string              `json:"name"`
	Description      string              `json:"description"`
	StartDate        time.Time           `json:"start_date"`
	EndDate          time.Time           `json:"end_date"`
	Location         string              `json:"location"`
	HostID           uint                `json:"host_id"`
	Sponsors         []SponsorPayload    `json:"sponsors"`
	Status           string              `json:"status"`
	ParticipantCount int                 `json:"participant_count"`
	Winners          []WinnerResponse    `json:"winners"`
	Awards           []AwardResponse     `json:"awards,omitempty"`
	Criteria         []CriterionResponse `json:"criteria,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// HackathonSummaryResponse is the list view without nested collections.
type HackathonSummaryResponse struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	Location         string    `json:"location"`
	HostID           uint      `json:"host_id"`
	Status           string    `json:"status"`
	ParticipantCount int       `json:"participant_count"`
}

// NewAwardResponse converts an Award model into a DTO.
func NewAwardResponse(model models.Award) AwardResponse {
	return AwardResponse{
		ID:                model.ID,
		HackathonID:       model.HackathonID,
		Name:              model.Name,
		Rank:              model.Rank,
		Prize:             model.Prize,
		WinnerProjectID:   model.WinnerProjectID,
		WinnerProjectName: model.WinnerProjectName,
	}
}

// NewCriterionResponse converts a JudgingCriterion model into a DTO.
func NewCriterionResponse(model models.JudgingCriterion) CriterionResponse {
	return CriterionResponse{
		ID:           model.ID,
		HackathonID:  model.HackathonID,
		Name:         model.Name,
		Weight:       model.Weight,
		DisplayOrder: model.DisplayOrder,
	}
}

// NewHackathonResponse converts a Hackathon model into a DTO.
func NewHackathonResponse(model models.Hackathon) HackathonResponse {
	response := HackathonResponse{
		ID:               model.ID,
		Name:             model.Name,
		Description:      model.Description,
		StartDate:        model.StartDate,
		EndDate:          model.EndDate,
		Location:         model.Location,
		HostID:           model.HostID,
		Status:           string(model.Status),
		ParticipantCount: model.ParticipantCount,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}

	response.Sponsors = make([]SponsorPayload, 0, len(model.Sponsors))
	for _, sponsor := range model.Sponsors {
		response.Sponsors = append(response.Sponsors, SponsorPayload{Name: sponsor.Name, Tier: sponsor.Tier})
	}

	response.Winners = make([]WinnerResponse, 0, len(model.Winners))
	for _, winner := range model.Winners {
		response.Winners = append(response.Winners, WinnerResponse{
			AwardID:     winner.AwardID,
			AwardName:   winner.AwardName,
			Rank:        winner.Rank,
			ProjectID:   winner.ProjectID,
			ProjectName: winner.ProjectName,
		})
	}

	if len(model.Awards) > 0 {
		response.Awards = make([]AwardResponse, 0, len(model.Awards))
		for _, award := range model.Awards {
			response.Awards = append(response.Awards, NewAwardResponse(award))
		}
	}

	if len(model.Criteria) > 0 {
		response.Criteria = make([]CriterionResponse, 0, len(model.Criteria))
		for _, criterion := range model.Criteria {
			response.Criteria = append(response.Criteria, NewCriterionResponse(criterion))
		}
	}

	return response
}

// NewHackathonSummarySlice converts hackathon models into list DTOs.
func NewHackathonSummarySlice(models []models.Hackathon) []HackathonSummaryResponse {
	responses := make([]HackathonSummaryResponse, 0, len(models))
	for _, model := range models {
		responses = append(responses, HackathonSummaryResponse{
			ID:               model.ID,
			Name:             model.Name,
			StartDate:        model.StartDate,
			EndDate:          model.EndDate,
			Location:         model.Location,
			HostID:           model.HostID,
			Status:           string(model.Status),
			ParticipantCount: model.ParticipantCount,
		})
	}

	return responses
}
