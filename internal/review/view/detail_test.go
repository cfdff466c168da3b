package view_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bp-review/bp-review-go/internal/review/client"
	"github.com/bp-review/bp-review-go/internal/review/domain"
	"github.com/bp-review/bp-review-go/internal/review/view"
	"github.com/bp-review/bp-review-go/internal/session"
)

// detailBackend is a minimal canned backend for detail-view tests.
type detailBackend struct {
	scores       domain.ProjectScores
	savedPayload *domain.ProjectScores
	failSave     bool
	failDelete   bool
	deleted      atomic.Bool
}

func (b *detailBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects/1", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, domain.Project{
			ID: "1", EnterpriseName: "测试企业A", ProjectName: "AI智能投研",
			Status: domain.StatusCompleted, CreatedAt: time.Now(),
		})
	})
	mux.HandleFunc("GET /projects/1/scores", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, b.scores)
	})
	mux.HandleFunc("PUT /projects/1/scores", func(w http.ResponseWriter, r *http.Request) {
		if b.failSave {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]any{"code": 500, "message": "保存评分失败", "data": nil})
			return
		}
		var payload domain.ProjectScores
		json.NewDecoder(r.Body).Decode(&payload)
		b.savedPayload = &payload
		writeData(w, payload)
	})
	mux.HandleFunc("GET /projects/1/missing-information", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, domain.MissingInfoList{Items: []domain.MissingInfo{
			{Dimension: "财务情况", InformationType: "财务报表", Description: "缺少2023年财务报表", Status: domain.MissingInfoPending},
		}})
	})
	mux.HandleFunc("GET /projects/1/business-plans/info", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"code": 404, "message": "未找到BP记录", "data": nil})
	})
	mux.HandleFunc("DELETE /projects/1", func(w http.ResponseWriter, r *http.Request) {
		if b.failDelete {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]any{"code": 500, "message": "删除项目失败", "data": nil})
			return
		}
		b.deleted.Store(true)
		writeData(w, map[string]string{"message": "deleted"})
	})
	return mux
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"code": 200, "message": "success", "data": data})
}

func sampleScores() domain.ProjectScores {
	return domain.ProjectScores{Dimensions: []domain.Score{
		{
			Dimension: "团队能力", Score: 30, MaxScore: 40, Comments: "团队经验丰富",
			SubDimensions: []domain.SubScore{
				{SubDimension: "核心成员", Score: 18, MaxScore: 20, Comments: "核心成员背景优秀"},
				{SubDimension: "技术能力", Score: 12, MaxScore: 20},
			},
		},
		{Dimension: "市场前景", Score: 25, MaxScore: 30, Comments: "市场空间大", SubDimensions: []domain.SubScore{}},
	}}
}

func newDetailView(t *testing.T, b *detailBackend, navigate func(string)) *view.DetailView {
	t.Helper()
	server := httptest.NewServer(b.handler())
	t.Cleanup(server.Close)
	c := client.New(server.URL, session.NewStore())
	v := view.NewDetailView(c, "ws://unused", "1", navigate)
	v.SetDeleteDelay(0)
	return v
}

func TestLoad_JoinsFetchesAndTreatsMissingPlanAsOptional(t *testing.T) {
	b := &detailBackend{scores: sampleScores()}
	v := newDetailView(t, b, nil)

	require.NoError(t, v.Load(context.Background()))

	assert.False(t, v.Loading)
	assert.NoError(t, v.Err, "a 404 business plan must not populate the error state")
	assert.Equal(t, "AI智能投研", v.Project.ProjectName)
	assert.Len(t, v.Scores.Dimensions, 2)
	assert.Len(t, v.MissingInfo, 1)
	assert.False(t, v.PlanInfo.Exists, "missing document renders the placeholder")
}

func TestScoreInput_ClampAndSanitize(t *testing.T) {
	b := &detailBackend{scores: sampleScores()}
	v := newDetailView(t, b, nil)
	require.NoError(t, v.Load(context.Background()))

	v.StartEditing()

	v.SetScore("团队能力", "999")
	assert.Equal(t, 40.0, v.Scores.Dimensions[0].Score, "raw above max clamps to max_score")

	v.SetScore("团队能力", "-5")
	assert.Equal(t, 0.0, v.Scores.Dimensions[0].Score, "negative raw clamps to zero")

	v.SetScore("团队能力", "33")
	v.SetScore("团队能力", "abc")
	assert.Equal(t, 33.0, v.Scores.Dimensions[0].Score, "non-numeric input keeps previous value")

	v.SetScore("团队能力", "")
	assert.Equal(t, 0.0, v.Scores.Dimensions[0].Score, "empty input is treated as zero")

	v.SetSubScore("团队能力", "核心成员", "50")
	assert.Equal(t, 20.0, v.Scores.Dimensions[0].SubDimensions[0].Score)

	v.SetComments("市场前景", "")
	assert.Equal(t, "", v.Scores.Dimensions[1].Comments)
}

func TestCancel_RestoresExactSnapshot(t *testing.T) {
	b := &detailBackend{scores: sampleScores()}
	v := newDetailView(t, b, nil)
	require.NoError(t, v.Load(context.Background()))

	before := v.Scores.Clone()

	v.StartEditing()
	v.SetScore("团队能力", "5")
	v.SetSubScore("团队能力", "技术能力", "1")
	v.SetComments("团队能力", "changed")
	v.Cancel()

	assert.False(t, v.IsEditing())
	assert.Equal(t, before, v.Scores, "cancel restores fields the user never touched too")
}

func TestSave_SendsEveryDimension(t *testing.T) {
	b := &detailBackend{scores: sampleScores()}
	v := newDetailView(t, b, nil)
	require.NoError(t, v.Load(context.Background()))

	v.StartEditing()
	v.SetScore("团队能力", "35")
	require.NoError(t, v.Save(context.Background()))

	require.NotNil(t, b.savedPayload)
	assert.Len(t, b.savedPayload.Dimensions, 2, "save payload is the full set, never a partial diff")
	assert.Equal(t, 35.0, b.savedPayload.Dimensions[0].Score)
	assert.Equal(t, "市场前景", b.savedPayload.Dimensions[1].Dimension)

	assert.False(t, v.IsEditing())

	// The snapshot now matches the saved set: editing again and
	// cancelling must roll back to the saved values.
	v.StartEditing()
	v.SetScore("团队能力", "1")
	v.Cancel()
	assert.Equal(t, 35.0, v.Scores.Dimensions[0].Score)
}

func TestSave_FailureKeepsEdits(t *testing.T) {
	b := &detailBackend{scores: sampleScores(), failSave: true}
	v := newDetailView(t, b, nil)
	require.NoError(t, v.Load(context.Background()))

	v.StartEditing()
	v.SetScore("团队能力", "35")
	err := v.Save(context.Background())

	require.Error(t, err)
	assert.True(t, v.IsEditing(), "failure leaves the view in Editing")
	assert.Equal(t, 35.0, v.Scores.Dimensions[0].Score, "live edits are preserved, not rolled back")
	assert.Error(t, v.Err)
	assert.Len(t, v.Scores.Dimensions, 2, "loaded data still renders alongside the error")
}

func TestSave_RequiresEditing(t *testing.T) {
	b := &detailBackend{scores: sampleScores()}
	v := newDetailView(t, b, nil)
	require.NoError(t, v.Load(context.Background()))

	assert.ErrorIs(t, v.Save(context.Background()), domain.ErrNotEditing)
}

func TestDelete_RequiresConfirmationThenNavigates(t *testing.T) {
	b := &detailBackend{scores: sampleScores()}
	navigated := make(chan string, 1)
	v := newDetailView(t, b, func(route string) { navigated <- route })
	require.NoError(t, v.Load(context.Background()))

	assert.Error(t, v.Delete(context.Background()), "delete without confirmation is rejected")

	v.ConfirmDelete()
	require.NoError(t, v.Delete(context.Background()))
	assert.True(t, b.deleted.Load())

	select {
	case route := <-navigated:
		assert.Equal(t, "/projects", route)
	case <-time.After(2 * time.Second):
		t.Fatal("expected navigation after successful delete")
	}
}

func TestDelete_FailureClosesDialogAndKeepsData(t *testing.T) {
	b := &detailBackend{scores: sampleScores(), failDelete: true}
	v := newDetailView(t, b, func(string) { t.Fatal("must not navigate on failure") })
	require.NoError(t, v.Load(context.Background()))

	v.ConfirmDelete()
	err := v.Delete(context.Background())

	require.Error(t, err)
	assert.False(t, v.IsConfirmingDelete(), "dialog closes so the user is not stuck")
	assert.Equal(t, "AI智能投研", v.Project.ProjectName, "project data unchanged")
}

func TestClosedView_DropsStaleResults(t *testing.T) {
	b := &detailBackend{scores: sampleScores()}
	v := newDetailView(t, b, nil)

	v.Close()
	err := v.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrViewClosed)
	assert.Empty(t, v.Project.ID, "results must not be applied after the view is gone")
}
