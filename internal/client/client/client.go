package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/ingestctl/internal/client/models"
)

// Client is the full set of backend calls the console makes.
type Client interface {
	Health(ctx context.Context) (*models.ServiceHealth, error)

	DashboardJobs(ctx context.Context, limit int) (*models.JobList, error)
	QueueStats(ctx context.Context) (*models.QueueSnapshot, error)
	SystemHealth(ctx context.Context) (*models.HealthSnapshot, error)
	Workers(ctx context.Context) (*models.WorkerStatus, error)

	ListJobs(ctx context.Context) (*models.JobList, error)
	GetJob(ctx context.Context, id string) (*models.Job, error)
	CancelJob(ctx context.Context, id string) (*models.Ack, error)

	PresignedURL(ctx context.Context, filename, contentType string) (*models.PresignedURL, error)
	DirectUpload(ctx context.Context, uploadURL, contentType string, body io.Reader, size int64) error
	NotifyProcessing(ctx context.Context, req models.ProcessFilesRequest) (*models.SubmitResult, error)
	SubmitURLs(ctx context.Context, req models.SubmitURLsRequest) (*models.SubmitResult, error)

	PendingApprovals(ctx context.Context) (*models.ApprovalList, error)
	ApprovalHistory(ctx context.Context) (*models.ApprovalList, error)
	DecideApproval(ctx context.Context, id string, approved bool) (*models.Ack, error)

	ListDocuments(ctx context.Context, limit, offset int) (*models.DocumentList, error)
	GetDocument(ctx context.Context, id string) (*models.DocumentDetail, error)
	SearchDocuments(ctx context.Context, query string, limit int) (*models.SearchResult, error)
	DocumentStats(ctx context.Context) (*models.DocumentStats, error)
	DownloadDocument(ctx context.Context, id string, format models.DownloadFormat) (*models.Download, error)

	ClearBuckets(ctx context.Context) (*models.Ack, error)
	ClearTables(ctx context.Context) (*models.Ack, error)

	Login(ctx context.Context, creds models.Credentials) (*models.TokenSet, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenSet, error)
	Me(ctx context.Context) (*models.UserInfo, error)
}

var _ Client = (*HTTPClient)(nil)
