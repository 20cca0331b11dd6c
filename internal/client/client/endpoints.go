package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/ingestctl/internal/client/auth"
	"github.com/dmitrijs2005/ingestctl/internal/client/models"
	"github.com/dmitrijs2005/ingestctl/internal/netx"
)

func (c *HTTPClient) Health(ctx context.Context) (*models.ServiceHealth, error) {
	var out models.ServiceHealth
	err := c.doJSON(ctx, request{endpoint: EndpointHealth, method: http.MethodGet, path: "/health", anonymous: true}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// getFallback runs a GET under the endpoint's policy.
func getFallback[T any](ctx context.Context, c *HTTPClient, ep Endpoint, path string, q url.Values, mock func() T) (*T, error) {
	var out T
	err := c.doJSON(ctx, request{endpoint: ep, method: http.MethodGet, path: path, query: q}, &out)
	v, err := withFallback(ctx, c, ep, out, err, mock)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *HTTPClient) DashboardJobs(ctx context.Context, limit int) (*models.JobList, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return getFallback(ctx, c, EndpointDashboardJobs, "/dashboard/jobs", q, func() models.JobList { return mockJobs(c.now()) })
}

func (c *HTTPClient) QueueStats(ctx context.Context) (*models.QueueSnapshot, error) {
	return getFallback(ctx, c, EndpointQueueStats, "/dashboard/queues", nil, func() models.QueueSnapshot { return mockQueueStats(c.now()) })
}

func (c *HTTPClient) SystemHealth(ctx context.Context) (*models.HealthSnapshot, error) {
	return getFallback(ctx, c, EndpointSystemHealth, "/dashboard/health", nil, func() models.HealthSnapshot { return mockSystemHealth(c.now()) })
}

func (c *HTTPClient) Workers(ctx context.Context) (*models.WorkerStatus, error) {
	return getFallback(ctx, c, EndpointWorkers, "/dashboard/workers", nil, mockWorkers)
}

func (c *HTTPClient) ListJobs(ctx context.Context) (*models.JobList, error) {
	return getFallback(ctx, c, EndpointListJobs, "/jobs", nil, func() models.JobList { return mockJobs(c.now()) })
}

func (c *HTTPClient) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var out models.Job
	err := c.doJSON(ctx, request{endpoint: EndpointGetJob, method: http.MethodGet, path: "/jobs/" + url.PathEscape(id)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CancelJob(ctx context.Context, id string) (*models.Ack, error) {
	return c.ack(ctx, EndpointCancelJob, http.MethodPost, "/dashboard/jobs/"+url.PathEscape(id)+"/cancel", nil)
}

// PresignedURL asks for a write location for one file. The backend reads
// the fields from a form, so the body is multipart.
func (c *HTTPClient) PresignedURL(ctx context.Context, filename, contentType string) (*models.PresignedURL, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("filename", filename); err != nil {
		return nil, err
	}
	if err := mw.WriteField("content_type", contentType); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out models.PresignedURL
	err := c.doJSON(ctx, request{
		endpoint:    EndpointPresignedURL,
		method:      http.MethodPost,
		path:        "/upload/presigned-url",
		body:        &buf,
		kind:        auth.ContentNone,
		contentType: mw.FormDataContentType(),
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.UploadURL == "" {
		return nil, fmt.Errorf("POST /upload/presigned-url: %w: empty upload_url", ErrDecode)
	}
	return &out, nil
}

// DirectUpload PUTs the file bytes to a presigned location. The location
// is outside the API, so no session header is attached.
func (c *HTTPClient) DirectUpload(ctx context.Context, uploadURL, contentType string, body io.Reader, size int64) error {
	err := netx.UploadToPresignedURL(ctx, c.hc, uploadURL, contentType, body, size)
	if err == nil {
		return nil
	}
	var ue *netx.UploadError
	if errors.As(err, &ue) {
		return &StatusError{StatusCode: ue.StatusCode, Method: http.MethodPut, Path: "<presigned>", Body: ue.Body}
	}
	return fmt.Errorf("PUT <presigned>: %w: %w", ErrUnavailable, err)
}

func (c *HTTPClient) NotifyProcessing(ctx context.Context, req models.ProcessFilesRequest) (*models.SubmitResult, error) {
	return c.submit(ctx, EndpointNotifyProcessing, "/upload/process-s3-files", req)
}

// SubmitURLs propagates failures. With simulated submissions enabled a
// failure answers with a synthetic pending job instead.
func (c *HTTPClient) SubmitURLs(ctx context.Context, req models.SubmitURLsRequest) (*models.SubmitResult, error) {
	res, err := c.submit(ctx, EndpointSubmitURLs, "/process/urls", req)
	if err != nil && c.simulate && ctx.Err() == nil {
		c.log.Warn(ctx, "simulating url submission", "error", err)
		mock := mockSubmitResult(c.now())
		return &mock, nil
	}
	return res, err
}

func (c *HTTPClient) submit(ctx context.Context, ep Endpoint, path string, payload any) (*models.SubmitResult, error) {
	body, err := jsonBody(payload)
	if err != nil {
		return nil, err
	}
	var out models.SubmitResult
	if err := c.doJSON(ctx, request{endpoint: ep, method: http.MethodPost, path: path, body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) PendingApprovals(ctx context.Context) (*models.ApprovalList, error) {
	return getFallback(ctx, c, EndpointPendingApprovals, "/approvals/pending", nil, func() models.ApprovalList { return mockApprovals(c.now()) })
}

func (c *HTTPClient) ApprovalHistory(ctx context.Context) (*models.ApprovalList, error) {
	return getFallback(ctx, c, EndpointApprovalHistory, "/approvals/history", nil, mockApprovalHistory)
}

func (c *HTTPClient) DecideApproval(ctx context.Context, id string, approved bool) (*models.Ack, error) {
	body, err := jsonBody(models.ApprovalDecision{Approved: approved})
	if err != nil {
		return nil, err
	}
	return c.ack(ctx, EndpointDecideApproval, http.MethodPut, "/approvals/"+url.PathEscape(id), body)
}

func (c *HTTPClient) ListDocuments(ctx context.Context, limit, offset int) (*models.DocumentList, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	return getFallback(ctx, c, EndpointListDocuments, "/documents", q, func() models.DocumentList {
		return mockDocuments(c.now(), limit, offset)
	})
}

func (c *HTTPClient) GetDocument(ctx context.Context, id string) (*models.DocumentDetail, error) {
	var out models.DocumentDetail
	err := c.doJSON(ctx, request{endpoint: EndpointGetDocument, method: http.MethodGet, path: "/documents/" + url.PathEscape(id)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SearchDocuments(ctx context.Context, query string, limit int) (*models.SearchResult, error) {
	q := url.Values{"q": {query}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out models.SearchResult
	err := c.doJSON(ctx, request{endpoint: EndpointSearchDocuments, method: http.MethodGet, path: "/documents/search", query: q}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DocumentStats(ctx context.Context) (*models.DocumentStats, error) {
	return getFallback(ctx, c, EndpointDocumentStats, "/documents/stats", nil, func() models.DocumentStats { return mockDocumentStats(c.now()) })
}

// DownloadDocument returns the raw bytes; the body is never decoded.
func (c *HTTPClient) DownloadDocument(ctx context.Context, id string, format models.DownloadFormat) (*models.Download, error) {
	if format == "" {
		format = models.FormatMarkdown
	}
	resp, err := c.do(ctx, request{
		endpoint: EndpointDownloadDocument,
		method:   http.MethodGet,
		path:     "/documents/" + url.PathEscape(id) + "/download",
		query:    url.Values{"format": {string(format)}},
		kind:     auth.ContentNone,
	})
	if err != nil {
		return nil, err
	}
	return &models.Download{
		Data:        resp.body,
		ContentType: resp.header.Get("Content-Type"),
		Filename:    filenameFrom(resp.header),
	}, nil
}

func (c *HTTPClient) ClearBuckets(ctx context.Context) (*models.Ack, error) {
	return c.ack(ctx, EndpointAdminClearBuckets, http.MethodPost, "/admin/clear-buckets", nil)
}

func (c *HTTPClient) ClearTables(ctx context.Context) (*models.Ack, error) {
	return c.ack(ctx, EndpointAdminClearTables, http.MethodPost, "/admin/clear-tables", nil)
}

func (c *HTTPClient) ack(ctx context.Context, ep Endpoint, method, path string, body io.Reader) (*models.Ack, error) {
	var out models.Ack
	if err := c.doJSON(ctx, request{endpoint: ep, method: method, path: path, body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.TokenSet, error) {
	return c.tokens(ctx, EndpointLogin, "/auth/login", creds)
}

// Refresh is sent without the session header: the session store calls it
// while resolving that very header.
func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*models.TokenSet, error) {
	return c.tokens(ctx, EndpointRefresh, "/auth/refresh", models.RefreshRequest{RefreshToken: refreshToken})
}

func (c *HTTPClient) tokens(ctx context.Context, ep Endpoint, path string, payload any) (*models.TokenSet, error) {
	body, err := jsonBody(payload)
	if err != nil {
		return nil, err
	}
	var out models.TokenSet
	err = c.doJSON(ctx, request{endpoint: ep, method: http.MethodPost, path: path, body: body, anonymous: true}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.UserInfo, error) {
	var out models.UserInfo
	if err := c.doJSON(ctx, request{endpoint: EndpointMe, method: http.MethodGet, path: "/auth/me"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
