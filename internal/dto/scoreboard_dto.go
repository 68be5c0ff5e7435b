package dto

// ProjectScoreSummary is one ranked scoreboard row. It is derived state,
// recomputed on every read, never stored as source of truth.
type ProjectScoreSummary struct {
	ProjectID    string  `json:"project_id"`
	ProjectName  string  `json:"project_name"`
	TotalScore   float64 `json:"total_score"`
	AverageScore float64 `json:"average_score"`
	ScoreCount   int     `json:"score_count"`
	Rank         int     `json:"rank"`
}

// ScoreboardResponse is the ranked aggregation of all project scores for a
// hackathon at a point in time.
type ScoreboardResponse struct {
	HackathonID uint                  `json:"hackathon_id"`
	Mode        string                `json:"mode"`
	Entries     []ProjectScoreSummary `json:"entries"`
}

// Scoreboard aggregation modes.
const (
	// ScoreboardModeCriteria weights per-criterion judge averages.
	ScoreboardModeCriteria = "criteria"
	// ScoreboardModeOverall sums raw scores when no weighted criteria exist.
	ScoreboardModeOverall = "overall"
)

// WinnerAssignRequest manually assigns a project to a single award.
type WinnerAssignRequest struct {
	ProjectID   string `json:"project_id" validate:"required,max=64"`
	ProjectName string `json:"project_name" validate:"required,max=255"`
}

// FinalizeResponse reports the outcome of award finalization.
type FinalizeResponse struct {
	HackathonID   uint             `json:"hackathon_id"`
	AssignedCount int              `json:"assigned_count"`
	Status        string           `json:"status"`
	Winners       []WinnerResponse `json:"winners"`
}
