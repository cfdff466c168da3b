// Package client wraps the review backend's REST surface. Every
// operation takes a context, attaches the session's bearer token and
// normalizes the response into the {code, message, data} envelope.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bp-review/bp-review-go/internal/review/domain"
	"github.com/bp-review/bp-review-go/internal/session"
)

// Client handles communication with the review backend API
type Client struct {
	baseURL        string
	session        *session.Store
	defaultClient  *http.Client
	uploadClient   *http.Client // multipart uploads (90s)
	downloadClient *http.Client // binary downloads, cold-start tolerant (3min)
}

// New creates a client against the given base URL, e.g.
// "http://localhost:8000/api/v1".
func New(baseURL string, sess *session.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: sess,
		defaultClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		uploadClient: &http.Client{
			Timeout: UploadTimeout,
		},
		downloadClient: &http.Client{
			Timeout: DownloadTimeout,
		},
	}
}

// Session exposes the injected session store.
func (c *Client) Session() *session.Store {
	return c.session
}

// do builds and issues one request. A 401 from any endpoint expires the
// session (the store guarantees the hook fires once) before the error
// is returned.
func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	logger := NewLogger(ctx)

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		logger.LogError(method+" "+path, err)
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := hc.Do(req)
	if err != nil {
		logger.LogError(method+" "+path, err)
		var urlErr *url.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &urlErr) && urlErr.Timeout()) {
			return nil, fmt.Errorf("%s %s: %w", method, path, ErrTimeout)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		c.session.Expire()
		logger.LogWarnf(method+" "+path, "session expired (401)")
		return nil, &APIError{
			StatusCode: http.StatusUnauthorized,
			Code:       http.StatusUnauthorized,
			Message:    "session expired",
			Endpoint:   path,
			Err:        domain.ErrSessionExpired,
		}
	}

	return resp, nil
}

// doJSON issues a request with an optional JSON body, normalizes the
// envelope and decodes its data into out (when out is non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	resp, err := c.do(ctx, c.defaultClient, method, path, query, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	env, err := normalizeEnvelope(resp.StatusCode, raw)
	if err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{StatusCode: resp.StatusCode, Code: resp.StatusCode, Endpoint: path}
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode >= 400 {
		return c.apiError(resp.StatusCode, env, path)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return nil
}

// apiError maps an HTTP failure to a typed error, attaching domain
// sentinels where the status is unambiguous.
func (c *Client) apiError(status int, env Envelope, path string) error {
	apiErr := &APIError{
		StatusCode: status,
		Code:       env.Code,
		Message:    env.Message,
		Endpoint:   path,
	}
	// FastAPI-style backends put the message under "detail"; keep it if
	// the envelope message came back empty.
	if apiErr.Message == "" {
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(env.Data, &detail) == nil && detail.Detail != "" {
			apiErr.Message = detail.Detail
		}
	}
	switch status {
	case http.StatusNotFound:
		apiErr.Err = domain.ErrNotFound
	case http.StatusConflict:
		apiErr.Err = domain.ErrDuplicateMissingInfo
	}
	return apiErr
}
