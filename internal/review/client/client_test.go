package client_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/bp-review/bp-review-go/internal/review/client"
	"github.com/bp-review/bp-review-go/internal/review/domain"
	"github.com/bp-review/bp-review-go/internal/session"
)

func newClient(t *testing.T, handler http.Handler) (*client.Client, *session.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	sess := session.NewStore()
	return client.New(server.URL, sess), sess
}

func TestListProjects_QueryParams(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "10", q.Get("size"))
		assert.Equal(t, "completed", q.Get("status"))
		assert.Equal(t, "测试企业C", q.Get("search"))
		w.Write([]byte(`{"code":200,"message":"ok","data":{"total":1,"items":[{"id":"1","enterprise_name":"测试企业C","project_name":"AI智能投研","status":"completed","total_score":88,"created_at":"2024-05-01T12:00:00Z"}]}}`))
	}))

	list, err := c.ListProjects(context.Background(), domain.ProjectListParams{
		Page: 2, Size: 10, Status: "completed", Search: "测试企业C",
	})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, "AI智能投研", list.Items[0].ProjectName)
	require.NotNil(t, list.Items[0].TotalScore)
	assert.Equal(t, 88.0, *list.Items[0].TotalScore)
}

func TestGetProject_BareBodyIsWrapped(t *testing.T) {
	// Backends that reply without the envelope get wrapped with the
	// HTTP status and a literal success message.
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"2","enterprise_name":"测试企业B","project_name":"区块链金融","status":"processing","total_score":null,"created_at":"2024-05-02T12:00:00Z"}`))
	}))

	p, err := c.GetProject(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, p.Status)
	assert.Nil(t, p.TotalScore)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	c, sess := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"code":200,"message":"ok","data":{}}`))
	}))

	sess.SetToken("tok-123")
	_, err := c.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestLogin_StoresToken(t *testing.T) {
	c, sess := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.Write([]byte(`{"code":200,"message":"ok","data":{"token":"issued-token"}}`))
	}))

	token, err := c.Login(context.Background(), "reviewer", "secret")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", token)
	assert.Equal(t, "issued-token", sess.Token())
}

func TestUnauthorized_ExpiresSessionOnce(t *testing.T) {
	c, sess := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":401,"message":"token expired","data":null}`))
	}))

	var fired atomic.Int64
	sess.OnExpired(func() { fired.Add(1) })
	sess.SetToken("stale")

	// Several calls 401 concurrently; the hook must fire exactly once.
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			_, err := c.GetProject(context.Background(), "1")
			if !errors.Is(err, domain.ErrSessionExpired) {
				return errors.New("expected session expired error")
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Empty(t, sess.Token())
	assert.Equal(t, int64(1), fired.Load())
}

func TestBusinessPlanInfo_NotFoundIsOptional(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":404,"message":"未找到BP记录","data":null}`))
	}))

	_, err := c.GetBusinessPlanInfo(context.Background(), "1")
	assert.ErrorIs(t, err, domain.ErrNoBusinessPlan)
	assert.NotErrorIs(t, err, domain.ErrSessionExpired)
}

func TestAddMissingInfo_Duplicate(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"code":409,"message":"missing information already recorded for dimension","data":null}`))
	}))

	_, err := c.AddMissingInfo(context.Background(), "1", domain.MissingInfo{
		Dimension:       "财务情况",
		InformationType: "财务报表",
		Description:     "缺少2023年财务报表",
		Status:          domain.MissingInfoPending,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateMissingInfo)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "already recorded")
}

func TestUpdateScores_SendsFullDimensionSet(t *testing.T) {
	var gotBody string
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/projects/1/scores", r.URL.Path)
		buf, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = string(buf)
		w.Write([]byte(`{"code":200,"message":"ok","data":` + gotBody + `}`))
	}))

	scores := domain.ProjectScores{Dimensions: []domain.Score{
		{Dimension: "团队能力", Score: 32, MaxScore: 40, Comments: "团队经验丰富"},
		{Dimension: "市场前景", Score: 25, MaxScore: 30},
	}}
	out, err := c.UpdateScores(context.Background(), "1", scores)
	require.NoError(t, err)

	assert.Contains(t, gotBody, "团队能力")
	assert.Contains(t, gotBody, "市场前景")
	assert.Len(t, out.Dimensions, 2)
}

func TestUploadBusinessPlan_Multipart(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "plan.pdf", header.Filename)
		w.Write([]byte(`{"code":200,"message":"上传成功","data":{"message":"上传成功"}}`))
	}))

	err := c.UploadBusinessPlan(context.Background(), "1", "plan.pdf", strings.NewReader("%PDF-1.4 fake"))
	require.NoError(t, err)
}

func TestDownloadReport_FilenamePreference(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="review-report.pdf"`)
		w.Write([]byte("%PDF-1.4 report"))
	}))

	dl, err := c.DownloadReport(context.Background(), "1", "fallback.pdf")
	require.NoError(t, err)
	assert.Equal(t, "review-report.pdf", dl.FileName)
	assert.Equal(t, []byte("%PDF-1.4 report"), dl.Data)
}

func TestDownloadReport_FallbackFilename(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 report"))
	}))

	dl, err := c.DownloadReport(context.Background(), "1", "评审报告_AI智能投研.pdf")
	require.NoError(t, err)
	assert.Equal(t, "评审报告_AI智能投研.pdf", dl.FileName)
}

func TestRequestError_WhenServerUnreachable(t *testing.T) {
	sess := session.NewStore()
	c := client.New("http://127.0.0.1:1", sess)

	_, err := c.GetProject(context.Background(), "1")
	assert.Error(t, err)
}

func TestBackendDetailMessageSurfaced(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"只支持PDF文件"}`))
	}))

	err := c.UploadBusinessPlan(context.Background(), "1", "plan.exe", strings.NewReader("xx"))
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "只支持PDF文件", apiErr.Message)
}

func TestValidateUpload(t *testing.T) {
	assert.NoError(t, client.ValidateUpload("plan.pdf", 1024))
	assert.NoError(t, client.ValidateUpload("PLAN.PDF", client.MaxUploadSize))
	assert.Error(t, client.ValidateUpload("plan.docx", 1024))
	assert.Error(t, client.ValidateUpload("plan.pdf", client.MaxUploadSize+1))
	assert.Error(t, client.ValidateUpload("plan.pdf", 0))
	assert.Error(t, client.ValidateUpload("", 1024))
}
