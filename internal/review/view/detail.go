package view

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bp-review/bp-review-go/internal/review/client"
	"github.com/bp-review/bp-review-go/internal/review/domain"
	"github.com/bp-review/bp-review-go/internal/review/status"
)

// DetailView drives the project detail page: concurrent initial fetch,
// in-place score editing with snapshot/rollback, confirmed deletion and
// the live status subscription while the project is processing.
//
// The editing state machine:
//
//	Viewing --StartEditing--> Editing (snapshot taken)
//	Editing --Cancel--------> Viewing (snapshot restored, no network)
//	Editing --Save----------> Saving --> Viewing (snapshot replaced)
//	                                 \-> Editing (on failure, edits kept)
type DetailView struct {
	client    *client.Client
	wsBase    string
	projectID string

	mu     sync.Mutex
	closed bool

	Loading bool
	Err     error

	Project     domain.Project
	Scores      domain.ProjectScores
	MissingInfo []domain.MissingInfo
	PlanInfo    domain.BusinessPlanInfo

	editing          bool
	saving           bool
	deleting         bool
	confirmingDelete bool
	backup           domain.ProjectScores

	ProcStatus *domain.ProcessingStatus
	sub        *status.Subscription

	// navigate is invoked with a route after a successful delete.
	navigate    func(route string)
	deleteDelay time.Duration
}

// NewDetailView creates the controller for one project. navigate may be
// nil when the host has no routing (e.g. one-shot CLI commands).
func NewDetailView(c *client.Client, wsBase, projectID string, navigate func(route string)) *DetailView {
	return &DetailView{
		client:      c,
		wsBase:      wsBase,
		projectID:   projectID,
		navigate:    navigate,
		deleteDelay: 1500 * time.Millisecond,
		Loading:     true,
	}
}

// SetDeleteDelay overrides the pause between a successful delete and
// navigation. Tests set it to zero.
func (v *DetailView) SetDeleteDelay(d time.Duration) {
	v.deleteDelay = d
}

// Load performs the initial concurrent fetch. Project, scores and
// missing-info must all succeed; business-plan info is optional and its
// absence degrades to the "no document" placeholder.
func (v *DetailView) Load(ctx context.Context) error {
	var (
		project domain.Project
		scores  domain.ProjectScores
		missing []domain.MissingInfo
		plan    domain.BusinessPlanInfo
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		project, err = v.client.GetProject(gctx, v.projectID)
		return err
	})
	g.Go(func() error {
		var err error
		scores, err = v.client.GetScores(gctx, v.projectID)
		return err
	})
	g.Go(func() error {
		var err error
		missing, err = v.client.GetMissingInfo(gctx, v.projectID)
		return err
	})
	g.Go(func() error {
		info, err := v.client.GetBusinessPlanInfo(gctx, v.projectID)
		if errors.Is(err, domain.ErrNoBusinessPlan) {
			plan = domain.BusinessPlanInfo{Exists: false}
			return nil
		}
		if err != nil {
			return err
		}
		plan = info
		return nil
	})

	err := g.Wait()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		// The owning view went away while the fetch was in flight;
		// never apply stale results.
		return domain.ErrViewClosed
	}
	v.Loading = false
	if err != nil {
		v.Err = err
		return err
	}

	v.Project = project
	v.Scores = scores
	v.MissingInfo = missing
	v.PlanInfo = plan
	v.Err = nil

	if project.Status == domain.StatusProcessing {
		v.openSubscriptionLocked(ctx)
	}
	return nil
}

// openSubscriptionLocked starts the live status channel. Caller holds mu.
func (v *DetailView) openSubscriptionLocked(ctx context.Context) {
	sub, err := status.Subscribe(ctx, v.wsBase, v.projectID)
	if err != nil {
		// The page works without the live channel; progress simply
		// stays blank until the next full load.
		return
	}
	v.sub = sub

	go func() {
		for msg := range sub.Messages() {
			v.mu.Lock()
			if v.closed {
				v.mu.Unlock()
				return
			}
			m := msg
			v.ProcStatus = &m
			v.mu.Unlock()
		}
	}()
}

// IsEditing reports whether scores are currently mutable.
func (v *DetailView) IsEditing() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.editing
}

// StartEditing snapshots the current score set as the rollback target
// and switches to the Editing state.
func (v *DetailView) StartEditing() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.editing || v.closed {
		return
	}
	v.backup = v.Scores.Clone()
	v.editing = true
}

// Cancel discards in-progress edits and restores the snapshot exactly.
// No network call is made.
func (v *DetailView) Cancel() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.editing {
		return
	}
	v.Scores = v.backup.Clone()
	v.editing = false
}

// SetScore applies raw input to a dimension's score. Empty input means
// zero, non-numeric input keeps the previous value, and numeric input
// is clamped to [0, max_score].
func (v *DetailView) SetScore(dimension, raw string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.editing {
		return
	}
	for i := range v.Scores.Dimensions {
		d := &v.Scores.Dimensions[i]
		if d.Dimension == dimension {
			d.Score = sanitizeScore(raw, d.Score, d.MaxScore)
			return
		}
	}
}

// SetSubScore applies raw input to a sub-dimension, same policy as
// SetScore.
func (v *DetailView) SetSubScore(dimension, subDimension, raw string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.editing {
		return
	}
	for i := range v.Scores.Dimensions {
		d := &v.Scores.Dimensions[i]
		if d.Dimension != dimension {
			continue
		}
		for j := range d.SubDimensions {
			s := &d.SubDimensions[j]
			if s.SubDimension == subDimension {
				s.Score = sanitizeScore(raw, s.Score, s.MaxScore)
				return
			}
		}
	}
}

// SetComments replaces a dimension's comments; any text is accepted.
func (v *DetailView) SetComments(dimension, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.editing {
		return
	}
	for i := range v.Scores.Dimensions {
		d := &v.Scores.Dimensions[i]
		if d.Dimension == dimension {
			d.Comments = text
			return
		}
	}
}

func sanitizeScore(raw string, previous, max float64) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return previous
	}
	if val < 0 {
		return 0
	}
	if val > max {
		return max
	}
	return val
}

// Save submits the full score set. A save already in flight rejects the
// second attempt; on failure the view stays in Editing with the edits
// preserved.
func (v *DetailView) Save(ctx context.Context) error {
	v.mu.Lock()
	if !v.editing {
		v.mu.Unlock()
		return domain.ErrNotEditing
	}
	if v.saving {
		v.mu.Unlock()
		return domain.ErrSaveInFlight
	}
	v.saving = true
	payload := v.Scores.Clone()
	v.mu.Unlock()

	saved, err := v.client.UpdateScores(ctx, v.projectID, payload)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.saving = false
	if v.closed {
		return domain.ErrViewClosed
	}
	if err != nil {
		v.Err = err
		return err
	}

	if len(saved.Dimensions) > 0 {
		v.Scores = saved
	} else {
		v.Scores = payload
	}
	v.backup = v.Scores.Clone()
	v.editing = false
	v.Err = nil
	return nil
}

// ConfirmDelete opens the mandatory confirmation step.
func (v *DetailView) ConfirmDelete() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.confirmingDelete = true
}

// CancelDelete closes the confirmation dialog without deleting.
func (v *DetailView) CancelDelete() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.deleting {
		v.confirmingDelete = false
	}
}

// IsConfirmingDelete reports whether the confirmation dialog is open.
func (v *DetailView) IsConfirmingDelete() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.confirmingDelete
}

// Delete removes the project. It requires a prior ConfirmDelete. On
// success the view navigates to the project list after a short fixed
// delay; on failure the dialog closes and the project data is kept.
func (v *DetailView) Delete(ctx context.Context) error {
	v.mu.Lock()
	if !v.confirmingDelete {
		v.mu.Unlock()
		return errors.New("delete requires confirmation")
	}
	if v.deleting {
		v.mu.Unlock()
		return domain.ErrDeleteInFlight
	}
	v.deleting = true
	v.mu.Unlock()

	err := v.client.DeleteProject(ctx, v.projectID)

	v.mu.Lock()
	v.deleting = false
	v.confirmingDelete = false
	if v.closed {
		v.mu.Unlock()
		return domain.ErrViewClosed
	}
	if err != nil {
		v.Err = err
		v.mu.Unlock()
		return err
	}
	navigate := v.navigate
	delay := v.deleteDelay
	v.mu.Unlock()

	if navigate != nil {
		time.AfterFunc(delay, func() { navigate("/projects") })
	}
	return nil
}

// Status returns the latest live progress message, if any.
func (v *DetailView) Status() *domain.ProcessingStatus {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ProcStatus
}

// Close tears the view down: the subscription is closed and any results
// from still-inflight fetches are dropped.
func (v *DetailView) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	sub := v.sub
	v.sub = nil
	v.mu.Unlock()

	if sub != nil {
		sub.Close()
	}
}
