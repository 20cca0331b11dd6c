package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ingestctl/internal/client/services"
)

type ingestOptions struct {
	JobName          string
	Notes            string
	ApprovalRequired bool
}

// Upload stores the local files through presigned URLs and starts one
// processing job for all of them.
func (a *App) Upload(ctx context.Context, paths []string, opts ingestOptions) error {
	files := make([]services.UploadFile, 0, len(paths))
	for _, p := range paths {
		f, err := services.FileFromPath(p)
		if err != nil {
			return err
		}
		files = append(files, f)
	}

	res, err := a.uploadService.Upload(ctx, services.Submission{
		Files:            files,
		JobName:          opts.JobName,
		ApprovalRequired: opts.ApprovalRequired,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Uploaded %d file(s).\n", len(files))
	renderSubmit(a.out, res)
	return nil
}

// Submit queues web pages for ingestion.
func (a *App) Submit(ctx context.Context, urls []string, opts ingestOptions) error {
	res, err := a.submitService.SubmitURLs(ctx, services.URLSubmission{
		URLs:             urls,
		Notes:            opts.Notes,
		JobName:          opts.JobName,
		ApprovalRequired: opts.ApprovalRequired,
	})
	if err != nil {
		return err
	}
	renderSubmit(a.out, res)
	return nil
}

// Notes prompts for free-form reviewer notes, ending on an empty line.
func (a *App) Notes() (string, error) {
	return getMultiline(a.reader, "Notes for the reviewer", a.out)
}
