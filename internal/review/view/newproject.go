package view

import (
	"context"
	"fmt"
	"io"

	"github.com/bp-review/bp-review-go/internal/review/client"
	"github.com/bp-review/bp-review-go/internal/review/domain"
)

// NewProjectView collects the create-project form and the optional
// business-plan upload. On success the caller navigates to the new
// project's detail page, where the status starts as "processing" with
// no total score yet.
type NewProjectView struct {
	client *client.Client

	Form     domain.ProjectCreate
	Creating bool
	Err      error
	Created  *domain.Project
}

func NewNewProjectView(c *client.Client) *NewProjectView {
	return &NewProjectView{client: c}
}

// Create validates the form and creates the project.
func (v *NewProjectView) Create(ctx context.Context) error {
	if v.Creating {
		return fmt.Errorf("create already in progress")
	}
	if err := client.ValidateProjectCreate(v.Form); err != nil {
		v.Err = err
		return err
	}

	v.Creating = true
	project, err := v.client.CreateProject(ctx, v.Form)
	v.Creating = false
	if err != nil {
		v.Err = err
		return err
	}

	v.Created = &project
	v.Err = nil
	return nil
}

// Upload validates and uploads the business plan for the created
// project. The file type and size checks happen here, before the API
// call, per the upload contract.
func (v *NewProjectView) Upload(ctx context.Context, fileName string, size int64, file io.Reader) error {
	if v.Created == nil {
		return fmt.Errorf("create the project before uploading")
	}
	if err := client.ValidateUpload(fileName, size); err != nil {
		v.Err = err
		return err
	}

	if err := v.client.UploadBusinessPlan(ctx, v.Created.ID, fileName, file); err != nil {
		v.Err = err
		return err
	}
	v.Err = nil
	return nil
}

// DetailRoute is where the page navigates after a successful create.
func (v *NewProjectView) DetailRoute() string {
	if v.Created == nil {
		return ""
	}
	return "/projects/" + v.Created.ID
}
