package domain

import "time"

// Status values a project moves through. Transitions are owned by the
// backend; clients only observe them.
const (
	StatusPendingReview = "pending_review"
	StatusProcessing    = "processing"
	StatusCompleted     = "completed"
	StatusNeedsInfo     = "needs_info"
	StatusFailed        = "failed"
)

// Project is a business-plan review project.
type Project struct {
	ID             string     `json:"id"`
	EnterpriseName string     `json:"enterprise_name"`
	ProjectName    string     `json:"project_name"`
	Description    string     `json:"description,omitempty"`
	TeamMembers    string     `json:"team_members,omitempty"`
	Status         string     `json:"status"`
	TotalScore     *float64   `json:"total_score"`
	ReviewResult   string     `json:"review_result,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// ProjectCreate is the payload for creating or updating a project.
type ProjectCreate struct {
	EnterpriseName string `json:"enterprise_name" validate:"required,max=128"`
	ProjectName    string `json:"project_name" validate:"required,max=128"`
	Description    string `json:"description,omitempty" validate:"max=2000"`
}

// ProjectListParams filters and paginates project listings. Zero values
// are omitted from the query string.
type ProjectListParams struct {
	Page   int
	Size   int
	Status string
	Search string
}

type ProjectList struct {
	Total int       `json:"total"`
	Items []Project `json:"items"`
}

// Statistics is the dashboard aggregate, recomputed by the backend on
// every request.
type Statistics struct {
	PendingReview  int       `json:"pending_review"`
	Completed      int       `json:"completed"`
	NeedsInfo      int       `json:"needs_info"`
	RecentProjects []Project `json:"recent_projects"`
}

// SubScore is a one-level breakdown under a dimension.
type SubScore struct {
	SubDimension string  `json:"sub_dimension"`
	Score        float64 `json:"score"`
	MaxScore     float64 `json:"max_score"`
	Comments     string  `json:"comments,omitempty"`
}

// Score is one evaluation dimension. Dimension names are unique within
// a project's score set.
type Score struct {
	Dimension     string     `json:"dimension"`
	Score         float64    `json:"score"`
	MaxScore      float64    `json:"max_score"`
	Comments      string     `json:"comments,omitempty"`
	SubDimensions []SubScore `json:"sub_dimensions"`
}

// ProjectScores is both the read shape and the update payload. Updates
// always carry the full dimension set, never a diff.
type ProjectScores struct {
	Dimensions []Score `json:"dimensions"`
}

const (
	MissingInfoPending   = "pending"
	MissingInfoCompleted = "completed"
)

// MissingInfo flags a gap in submitted materials, correlated with a
// dimension by name.
type MissingInfo struct {
	ID              string `json:"id,omitempty"`
	Dimension       string `json:"dimension"`
	InformationType string `json:"information_type"`
	Description     string `json:"description"`
	Status          string `json:"status"`
}

type MissingInfoList struct {
	Items []MissingInfo `json:"items"`
}

// DimensionRollup is a per-dimension slice of the score summary.
type DimensionRollup struct {
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"max_score"`
	Percentage float64 `json:"percentage"`
}

type ScoreSummary struct {
	ProjectID          string                     `json:"project_id"`
	ProjectName        string                     `json:"project_name"`
	EnterpriseName     string                     `json:"enterprise_name"`
	TotalScore         float64                    `json:"total_score"`
	TotalPossible      float64                    `json:"total_possible"`
	OverallPercentage  float64                    `json:"overall_percentage"`
	Recommendation     string                     `json:"recommendation"`
	DimensionBreakdown map[string]DimensionRollup `json:"dimension_breakdown"`
	LastUpdated        time.Time                  `json:"last_updated"`
}

// HistoryDimension is the per-dimension part of a history snapshot.
type HistoryDimension struct {
	Score         float64    `json:"score"`
	MaxScore      float64    `json:"max_score"`
	Comments      string     `json:"comments"`
	SubDimensions []SubScore `json:"sub_dimensions"`
}

// ScoreHistoryItem is an immutable snapshot of a project's score set at
// the moment it was saved. History is append-only.
type ScoreHistoryItem struct {
	ID                string                      `json:"id"`
	TotalScore        float64                     `json:"total_score"`
	ModifiedBy        string                      `json:"modified_by"`
	ModificationNotes string                      `json:"modification_notes"`
	CreatedAt         time.Time                   `json:"created_at"`
	Dimensions        map[string]HistoryDimension `json:"dimensions"`
}

type ScoreHistory struct {
	ProjectID      string             `json:"project_id"`
	ProjectName    string             `json:"project_name"`
	EnterpriseName string             `json:"enterprise_name"`
	History        []ScoreHistoryItem `json:"history"`
}

// BusinessPlanInfo describes the uploaded document, if any.
type BusinessPlanInfo struct {
	FileName   string     `json:"file_name"`
	FileSize   int64      `json:"file_size"`
	UploadedAt *time.Time `json:"uploaded_at,omitempty"`
	Exists     bool       `json:"exists"`
}

// ProcessingStatus is one progress message from the live status channel.
type ProcessingStatus struct {
	Progress int    `json:"progress"`
	Message  string `json:"message"`
}

// Clone returns a deep copy of the score set, used as the rollback
// snapshot when editing begins.
func (s ProjectScores) Clone() ProjectScores {
	out := ProjectScores{Dimensions: make([]Score, len(s.Dimensions))}
	for i, d := range s.Dimensions {
		c := d
		c.SubDimensions = make([]SubScore, len(d.SubDimensions))
		copy(c.SubDimensions, d.SubDimensions)
		out.Dimensions[i] = c
	}
	return out
}
