package view

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bp-review/bp-review-go/internal/review/client"
	"github.com/bp-review/bp-review-go/internal/review/domain"
)

// ReportView shows the score rollup and the append-only change history
// for one project, and hands out the PDF report.
type ReportView struct {
	client    *client.Client
	projectID string

	Loading bool
	Err     error
	Summary domain.ScoreSummary
	History domain.ScoreHistory
}

func NewReportView(c *client.Client, projectID string) *ReportView {
	return &ReportView{client: c, projectID: projectID, Loading: true}
}

func (v *ReportView) Load(ctx context.Context) error {
	var (
		summary domain.ScoreSummary
		history domain.ScoreHistory
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = v.client.GetScoreSummary(gctx, v.projectID)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = v.client.GetScoreHistory(gctx, v.projectID)
		return err
	})

	v.Loading = false
	if err := g.Wait(); err != nil {
		v.Err = err
		return err
	}

	v.Summary = summary
	v.History = history
	v.Err = nil
	return nil
}

// EmptyHistory reports the "no history yet" state; a project with no
// prior edits renders this placeholder, not an error.
func (v *ReportView) EmptyHistory() bool {
	return !v.Loading && v.Err == nil && len(v.History.History) == 0
}

// Download fetches the PDF report, preferring the server-reported file
// name over the supplied fallback.
func (v *ReportView) Download(ctx context.Context, fallbackName string) (client.Download, error) {
	dl, err := v.client.DownloadReport(ctx, v.projectID, fallbackName)
	if err != nil {
		v.Err = err
		return client.Download{}, err
	}
	return dl, nil
}
