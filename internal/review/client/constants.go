package client

import "time"

const (
	// DefaultTimeout is the standard timeout for most API operations
	DefaultTimeout = 30 * time.Second

	// UploadTimeout is for multipart uploads which may take longer
	UploadTimeout = 90 * time.Second

	// DownloadTimeout is for binary downloads and cold-starting backends
	DownloadTimeout = 3 * time.Minute
)
