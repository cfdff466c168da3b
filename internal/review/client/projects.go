package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bp-review/bp-review-go/internal/review/domain"
)

// ListProjects returns a page of projects. Filtering is done by the
// backend; changing a filter means issuing a new call.
func (c *Client) ListProjects(ctx context.Context, params domain.ProjectListParams) (domain.ProjectList, error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Size > 0 {
		query.Set("size", strconv.Itoa(params.Size))
	}
	if params.Status != "" {
		query.Set("status", params.Status)
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}

	var out domain.ProjectList
	err := c.doJSON(ctx, http.MethodGet, "/projects", query, nil, &out)
	return out, err
}

func (c *Client) GetProject(ctx context.Context, projectID string) (domain.Project, error) {
	var out domain.Project
	err := c.doJSON(ctx, http.MethodGet, "/projects/"+projectID, nil, nil, &out)
	return out, err
}

func (c *Client) CreateProject(ctx context.Context, data domain.ProjectCreate) (domain.Project, error) {
	var out domain.Project
	err := c.doJSON(ctx, http.MethodPost, "/projects", nil, data, &out)
	return out, err
}

func (c *Client) UpdateProject(ctx context.Context, projectID string, data domain.ProjectCreate) (domain.Project, error) {
	var out domain.Project
	err := c.doJSON(ctx, http.MethodPut, "/projects/"+projectID, nil, data, &out)
	return out, err
}

// DeleteProject removes a project. Deletion is terminal; callers must
// navigate away and drop any cached copy.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/projects/"+projectID, nil, nil, nil)
}

// GetStatistics fetches the dashboard aggregate. The backend recomputes
// it per request; never cache it across navigations.
func (c *Client) GetStatistics(ctx context.Context) (domain.Statistics, error) {
	var out domain.Statistics
	err := c.doJSON(ctx, http.MethodGet, "/projects/statistics", nil, nil, &out)
	return out, err
}

type teamMembersRequest struct {
	TeamMembers string `json:"team_members"`
}

func (c *Client) UpdateTeamMembers(ctx context.Context, projectID, members string) (domain.Project, error) {
	var out domain.Project
	err := c.doJSON(ctx, http.MethodPut, "/projects/"+projectID+"/team-members", nil, teamMembersRequest{TeamMembers: members}, &out)
	return out, err
}
