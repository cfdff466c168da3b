package view_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bp-review/bp-review-go/internal/review/client"
	"github.com/bp-review/bp-review-go/internal/review/domain"
	"github.com/bp-review/bp-review-go/internal/review/view"
	"github.com/bp-review/bp-review-go/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) *client.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return client.New(server.URL, session.NewStore())
}

func TestDashboard_LoadsStatisticsAndRecentProjects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects/statistics", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, domain.Statistics{PendingReview: 3, Completed: 5, NeedsInfo: 1})
	})
	mux.HandleFunc("GET /projects", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		writeData(w, domain.ProjectList{Total: 9, Items: []domain.Project{
			{ID: "1", ProjectName: "AI智能投研", Status: domain.StatusCompleted},
		}})
	})

	v := view.NewDashboardView(newTestClient(t, mux))
	require.NoError(t, v.Load(context.Background()))

	assert.Equal(t, 5, v.Stats.Completed)
	assert.Equal(t, 9, v.Projects.Total)
	assert.False(t, v.Empty())
}

func TestDashboard_SingleFailureSurfacesPageError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects/statistics", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"code": 500, "message": "boom", "data": nil})
	})
	mux.HandleFunc("GET /projects", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, domain.ProjectList{})
	})

	v := view.NewDashboardView(newTestClient(t, mux))
	err := v.Load(context.Background())

	require.Error(t, err)
	assert.Error(t, v.Err)
}

func TestProjectList_FilterChangeTriggersRefetch(t *testing.T) {
	var queries []string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects", func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		writeData(w, domain.ProjectList{Total: 0, Items: []domain.Project{}})
	})

	v := view.NewProjectListView(newTestClient(t, mux))
	ctx := context.Background()

	require.NoError(t, v.Load(ctx))
	require.NoError(t, v.SetStatus(ctx, domain.StatusCompleted))
	require.NoError(t, v.SetSearch(ctx, "测试企业C"))

	require.Len(t, queries, 3, "every filter change issues a new fetch")
	assert.Contains(t, queries[1], "status=completed")
	assert.Contains(t, queries[2], "search=")
	assert.True(t, v.Empty())
}

func TestNewProject_CreateThenUpload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /projects", func(w http.ResponseWriter, r *http.Request) {
		var in domain.ProjectCreate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "测试企业C", in.EnterpriseName)
		assert.Equal(t, "AI智能投研", in.ProjectName)
		writeData(w, domain.Project{
			ID: "3", EnterpriseName: in.EnterpriseName, ProjectName: in.ProjectName,
			Status: domain.StatusProcessing, TotalScore: nil, CreatedAt: time.Now(),
		})
	})
	mux.HandleFunc("POST /projects/3/business-plans", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, map[string]string{"message": "上传成功"})
	})

	v := view.NewNewProjectView(newTestClient(t, mux))
	v.Form = domain.ProjectCreate{EnterpriseName: "测试企业C", ProjectName: "AI智能投研"}

	require.NoError(t, v.Create(context.Background()))
	require.NotNil(t, v.Created)
	assert.Equal(t, domain.StatusProcessing, v.Created.Status)
	assert.Nil(t, v.Created.TotalScore)
	assert.Equal(t, "/projects/3", v.DetailRoute())

	pdf := strings.NewReader("%PDF-1.4 plan")
	require.NoError(t, v.Upload(context.Background(), "plan.pdf", int64(pdf.Len()), pdf))
}

func TestNewProject_ValidationRejectsBeforeNetwork(t *testing.T) {
	v := view.NewNewProjectView(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("invalid form must not reach the API")
	})))

	v.Form = domain.ProjectCreate{EnterpriseName: "", ProjectName: "AI智能投研"}
	assert.Error(t, v.Create(context.Background()))
}

func TestNewProject_UploadRejectsNonPDF(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /projects", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, domain.Project{ID: "3", Status: domain.StatusProcessing})
	})

	v := view.NewNewProjectView(newTestClient(t, mux))
	v.Form = domain.ProjectCreate{EnterpriseName: "测试企业C", ProjectName: "AI智能投研"}
	require.NoError(t, v.Create(context.Background()))

	err := v.Upload(context.Background(), "plan.docx", 10, strings.NewReader("0123456789"))
	assert.Error(t, err)
}

func TestReport_EmptyHistoryIsPlaceholderNotError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects/1/scores/summary", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, domain.ScoreSummary{ProjectID: "1", TotalScore: 88, TotalPossible: 100})
	})
	mux.HandleFunc("GET /projects/1/scores/history", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, domain.ScoreHistory{ProjectID: "1", History: []domain.ScoreHistoryItem{}})
	})

	v := view.NewReportView(newTestClient(t, mux), "1")
	require.NoError(t, v.Load(context.Background()))

	assert.NoError(t, v.Err)
	assert.True(t, v.EmptyHistory())
	assert.Equal(t, 88.0, v.Summary.TotalScore)
}

func TestReport_Download(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects/1/scores/summary", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, domain.ScoreSummary{ProjectID: "1"})
	})
	mux.HandleFunc("GET /projects/1/scores/history", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, domain.ScoreHistory{ProjectID: "1"})
	})
	mux.HandleFunc("GET /projects/1/reports/download", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 report"))
	})

	v := view.NewReportView(newTestClient(t, mux), "1")
	require.NoError(t, v.Load(context.Background()))

	dl, err := v.Download(context.Background(), "评审报告.pdf")
	require.NoError(t, err)
	assert.Equal(t, "评审报告.pdf", dl.FileName)
	assert.NotEmpty(t, dl.Data)
}
