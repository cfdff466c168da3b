package client

import (
	"context"
	"net/http"

	"github.com/bp-review/bp-review-go/internal/review/domain"
)

func (c *Client) GetMissingInfo(ctx context.Context, projectID string) ([]domain.MissingInfo, error) {
	var out domain.MissingInfoList
	err := c.doJSON(ctx, http.MethodGet, "/projects/"+projectID+"/missing-information", nil, nil, &out)
	return out.Items, err
}

// AddMissingInfo flags a new gap. A duplicate dimension+type pair is
// rejected by the backend with a 409, surfaced as
// domain.ErrDuplicateMissingInfo.
func (c *Client) AddMissingInfo(ctx context.Context, projectID string, item domain.MissingInfo) (domain.MissingInfo, error) {
	var out domain.MissingInfo
	err := c.doJSON(ctx, http.MethodPost, "/projects/"+projectID+"/missing-information", nil, item, &out)
	return out, err
}

func (c *Client) UpdateMissingInfo(ctx context.Context, projectID, infoID string, item domain.MissingInfo) (domain.MissingInfo, error) {
	var out domain.MissingInfo
	err := c.doJSON(ctx, http.MethodPut, "/projects/"+projectID+"/missing-information/"+infoID, nil, item, &out)
	return out, err
}

func (c *Client) DeleteMissingInfo(ctx context.Context, projectID, infoID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/projects/"+projectID+"/missing-information/"+infoID, nil, nil, nil)
}
