package client

import "context"

// DownloadReport fetches the generated PDF review report.
func (c *Client) DownloadReport(ctx context.Context, projectID, fallbackName string) (Download, error) {
	return c.download(ctx, "/projects/"+projectID+"/reports/download", fallbackName)
}
