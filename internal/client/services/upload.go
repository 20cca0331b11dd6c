package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/ingestctl/internal/client/client"
	"github.com/dmitrijs2005/ingestctl/internal/client/models"
	"github.com/dmitrijs2005/ingestctl/internal/logging"
)

var ErrNoFiles = errors.New("no files to upload")

// UploadFile is one file of a submission. Open is called once, when the
// file's turn for the direct PUT comes.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// FileFromPath describes a local file. The content type is guessed from the
// extension and left empty when unknown.
func FileFromPath(path string) (UploadFile, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return UploadFile{}, err
	}
	if fi.IsDir() {
		return UploadFile{}, fmt.Errorf("%s is a directory", path)
	}
	return UploadFile{
		Name:        filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Size:        fi.Size(),
		Open:        func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// Submission is a batch of files that becomes one job.
type Submission struct {
	Files            []UploadFile
	JobName          string
	ApprovalRequired bool
}

type UploadService interface {
	Upload(ctx context.Context, s Submission) (*models.SubmitResult, error)
}

type uploadService struct {
	client client.Client
	log    logging.Logger
}

func NewUploadService(c client.Client, log logging.Logger) UploadService {
	if log == nil {
		log = logging.Discard()
	}
	return &uploadService{client: c, log: log}
}

// Upload runs the presigned flow: for each file in order, request a write
// location and PUT the bytes there; once every file is stored, notify the
// backend with the full list. The first failure aborts the submission.
// Objects already stored are left in place and the job is never created.
func (u *uploadService) Upload(ctx context.Context, s Submission) (*models.SubmitResult, error) {
	if len(s.Files) == 0 {
		return nil, ErrNoFiles
	}

	uploaded := make([]models.UploadedFile, 0, len(s.Files))
	for i, f := range s.Files {
		key, err := u.uploadOne(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("upload %s (%d of %d): %w", f.Name, i+1, len(s.Files), err)
		}
		uploaded = append(uploaded, models.UploadedFile{FileKey: key, Filename: f.Name})
		u.log.Debug(ctx, "file stored", "filename", f.Name, "file_key", key)
	}

	res, err := u.client.NotifyProcessing(ctx, models.ProcessFilesRequest{
		Files:            uploaded,
		JobName:          s.JobName,
		ApprovalRequired: s.ApprovalRequired,
	})
	if err != nil {
		return nil, fmt.Errorf("start processing: %w", err)
	}
	u.log.Info(ctx, "upload submitted", "job_id", res.JobID, "files", len(uploaded))
	return res, nil
}

func (u *uploadService) uploadOne(ctx context.Context, f UploadFile) (string, error) {
	contentType := f.ContentType
	if contentType == "" {
		contentType = models.DefaultUploadContentType
	}

	p, err := u.client.PresignedURL(ctx, f.Name, contentType)
	if err != nil {
		return "", fmt.Errorf("presigned url: %w", err)
	}

	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open: %w", err)
	}
	defer rc.Close()

	if err := u.client.DirectUpload(ctx, p.UploadURL, contentType, rc, f.Size); err != nil {
		return "", fmt.Errorf("direct upload: %w", err)
	}
	return p.FileKey, nil
}
