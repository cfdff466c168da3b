package view

import (
	"context"

	"github.com/bp-review/bp-review-go/internal/review/client"
	"github.com/bp-review/bp-review-go/internal/review/domain"
)

// ProjectListView is the paginated, filterable project collection.
// Filtering is server-side: changing a filter issues a new fetch with
// the updated parameters rather than filtering the loaded set.
type ProjectListView struct {
	client *client.Client

	Params  domain.ProjectListParams
	Loading bool
	Err     error
	List    domain.ProjectList
}

func NewProjectListView(c *client.Client) *ProjectListView {
	return &ProjectListView{
		client:  c,
		Params:  domain.ProjectListParams{Page: 1, Size: 10},
		Loading: true,
	}
}

func (v *ProjectListView) Load(ctx context.Context) error {
	v.Loading = true
	list, err := v.client.ListProjects(ctx, v.Params)
	v.Loading = false
	if err != nil {
		v.Err = err
		return err
	}
	v.List = list
	v.Err = nil
	return nil
}

// SetSearch resets to the first page and re-fetches with the new query.
func (v *ProjectListView) SetSearch(ctx context.Context, search string) error {
	v.Params.Search = search
	v.Params.Page = 1
	return v.Load(ctx)
}

// SetStatus resets to the first page and re-fetches with the new
// status filter. An empty status clears the filter.
func (v *ProjectListView) SetStatus(ctx context.Context, statusFilter string) error {
	v.Params.Status = statusFilter
	v.Params.Page = 1
	return v.Load(ctx)
}

// SetPage fetches the given page.
func (v *ProjectListView) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	v.Params.Page = page
	return v.Load(ctx)
}

// Empty reports the loaded-but-empty state, rendered distinctly from
// loading and error states.
func (v *ProjectListView) Empty() bool {
	return !v.Loading && v.Err == nil && len(v.List.Items) == 0
}
