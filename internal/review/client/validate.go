package client

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxUploadSize is the largest business plan the backend accepts.
const MaxUploadSize = 20 * 1024 * 1024 // 20MB

var validate = validator.New(validator.WithRequiredStructEnabled())

// UploadCheck is the pre-upload validation input. The API itself does
// not re-validate; this runs on the caller's side of the boundary.
type UploadCheck struct {
	FileName string `validate:"required"`
	Size     int64  `validate:"gt=0"`
}

// ValidateUpload enforces the upload contract: PDF only, non-empty,
// at most 20MB.
func ValidateUpload(fileName string, size int64) error {
	if err := validate.Struct(UploadCheck{FileName: fileName, Size: size}); err != nil {
		if size <= 0 {
			return fmt.Errorf("file is empty")
		}
		return fmt.Errorf("invalid upload: %w", err)
	}
	if !strings.EqualFold(filepath.Ext(fileName), ".pdf") {
		return fmt.Errorf("only PDF files are supported")
	}
	if size > MaxUploadSize {
		return fmt.Errorf("file size must not exceed 20MB")
	}
	return nil
}

// ValidateProjectCreate checks the create/update payload before it is
// sent, mirroring the backend's own rules.
func ValidateProjectCreate(v any) error {
	return validate.Struct(v)
}
