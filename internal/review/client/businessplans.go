package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/bp-review/bp-review-go/internal/review/domain"
)

// UploadBusinessPlan sends the document as multipart form data under
// the "file" field. Callers validate type and size with ValidateUpload
// before invoking; the client does not re-validate.
func (c *Client) UploadBusinessPlan(ctx context.Context, projectID, fileName string, file io.Reader) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finalize form: %w", err)
	}

	path := "/projects/" + projectID + "/business-plans"
	resp, err := c.do(ctx, c.uploadClient, http.MethodPost, path, nil, &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		env, envErr := normalizeEnvelope(resp.StatusCode, raw)
		if envErr != nil {
			return &APIError{StatusCode: resp.StatusCode, Code: resp.StatusCode, Endpoint: path}
		}
		return c.apiError(resp.StatusCode, env, path)
	}
	return nil
}

// GetBusinessPlanStatus reports upload/parse progress. Absence of a
// business-plan record is not an error condition for callers that treat
// the document as optional; they match on domain.ErrNoBusinessPlan.
func (c *Client) GetBusinessPlanStatus(ctx context.Context, projectID string) (domain.ProcessingStatus, error) {
	var out domain.ProcessingStatus
	err := c.doJSON(ctx, http.MethodGet, "/projects/"+projectID+"/business-plans/status", nil, nil, &out)
	if err != nil {
		return domain.ProcessingStatus{}, asNoBusinessPlan(err)
	}
	return out, nil
}

func (c *Client) GetBusinessPlanInfo(ctx context.Context, projectID string) (domain.BusinessPlanInfo, error) {
	var out domain.BusinessPlanInfo
	err := c.doJSON(ctx, http.MethodGet, "/projects/"+projectID+"/business-plans/info", nil, nil, &out)
	if err != nil {
		return domain.BusinessPlanInfo{}, asNoBusinessPlan(err)
	}
	return out, nil
}

// Download is an opaque binary payload plus the name it should be saved
// under. FileName prefers the server-reported name and falls back to
// the caller-supplied default.
type Download struct {
	FileName string
	Data     []byte
}

// DownloadBusinessPlan fetches the uploaded document.
func (c *Client) DownloadBusinessPlan(ctx context.Context, projectID, fallbackName string) (Download, error) {
	return c.download(ctx, "/projects/"+projectID+"/business-plans/download", fallbackName)
}

func (c *Client) download(ctx context.Context, path, fallbackName string) (Download, error) {
	resp, err := c.do(ctx, c.downloadClient, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return Download{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Download{}, fmt.Errorf("read download: %w", err)
	}
	if resp.StatusCode >= 400 {
		env, envErr := normalizeEnvelope(resp.StatusCode, data)
		if envErr != nil {
			return Download{}, &APIError{StatusCode: resp.StatusCode, Code: resp.StatusCode, Endpoint: path}
		}
		return Download{}, c.apiError(resp.StatusCode, env, path)
	}

	name := fallbackName
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil && params["filename"] != "" {
			name = params["filename"]
		}
	}
	return Download{FileName: name, Data: data}, nil
}

// asNoBusinessPlan converts a 404 into the optional-lookup sentinel.
func asNoBusinessPlan(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("business plan: %w", domain.ErrNoBusinessPlan)
	}
	return err
}
