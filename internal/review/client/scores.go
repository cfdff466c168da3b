package client

import (
	"context"
	"net/http"

	"github.com/bp-review/bp-review-go/internal/review/domain"
)

func (c *Client) GetScores(ctx context.Context, projectID string) (domain.ProjectScores, error) {
	var out domain.ProjectScores
	err := c.doJSON(ctx, http.MethodGet, "/projects/"+projectID+"/scores", nil, nil, &out)
	return out, err
}

// UpdateScores submits the full dimension set. Partial updates are not
// part of the contract; the backend snapshots the set into history.
func (c *Client) UpdateScores(ctx context.Context, projectID string, scores domain.ProjectScores) (domain.ProjectScores, error) {
	var out domain.ProjectScores
	err := c.doJSON(ctx, http.MethodPut, "/projects/"+projectID+"/scores", nil, scores, &out)
	return out, err
}

func (c *Client) GetScoreSummary(ctx context.Context, projectID string) (domain.ScoreSummary, error) {
	var out domain.ScoreSummary
	err := c.doJSON(ctx, http.MethodGet, "/projects/"+projectID+"/scores/summary", nil, nil, &out)
	return out, err
}

// GetScoreHistory returns the append-only change log. A project with no
// prior edits yields an empty history, not an error.
func (c *Client) GetScoreHistory(ctx context.Context, projectID string) (domain.ScoreHistory, error) {
	var out domain.ScoreHistory
	err := c.doJSON(ctx, http.MethodGet, "/projects/"+projectID+"/scores/history", nil, nil, &out)
	return out, err
}
