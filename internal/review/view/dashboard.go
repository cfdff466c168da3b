// Package view contains the headless page controllers: each one
// fetches its resources, holds the page's transient state and exposes
// the mutations the page offers. Errors are stored for display, never
// propagated past the controller, and never clobber already-loaded
// data.
package view

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bp-review/bp-review-go/internal/review/client"
	"github.com/bp-review/bp-review-go/internal/review/domain"
)

// DashboardView fetches the aggregate statistics and the recent project
// list concurrently on mount.
type DashboardView struct {
	client *client.Client

	Loading  bool
	Err      error
	Stats    domain.Statistics
	Projects domain.ProjectList
}

func NewDashboardView(c *client.Client) *DashboardView {
	return &DashboardView{client: c, Loading: true}
}

func (v *DashboardView) Load(ctx context.Context) error {
	var (
		stats    domain.Statistics
		projects domain.ProjectList
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = v.client.GetStatistics(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = v.client.ListProjects(gctx, domain.ProjectListParams{Page: 1, Size: 5})
		return err
	})

	v.Loading = false
	if err := g.Wait(); err != nil {
		v.Err = err
		return err
	}

	v.Stats = stats
	v.Projects = projects
	v.Err = nil
	return nil
}

// Empty reports whether the populated dashboard has nothing to show.
func (v *DashboardView) Empty() bool {
	return !v.Loading && v.Err == nil && v.Projects.Total == 0
}
